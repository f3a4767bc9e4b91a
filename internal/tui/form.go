package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Veraticus/churn/internal/common"
	"github.com/Veraticus/churn/internal/model"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldKind int

const (
	kindNumber fieldKind = iota
	kindChoice
	kindToggle
)

// field is one form input bound to a customer column.
type field struct {
	input    textinput.Model
	label    string
	column   string
	options  []string
	kind     fieldKind
	selected int
	checked  bool
	integer  bool
}

func numberField(label, column string, integer bool, value float64) field {
	in := textinput.New()
	in.CharLimit = 12
	in.Width = 14
	in.Prompt = ""
	in.SetValue(strconv.FormatFloat(value, 'f', -1, 64))
	return field{label: label, column: column, kind: kindNumber, integer: integer, input: in}
}

func choiceField[T ~string](label, column string, options []T, value T) field {
	f := field{label: label, column: column, kind: kindChoice}
	for i, o := range options {
		f.options = append(f.options, string(o))
		if o == value {
			f.selected = i
		}
	}
	return f
}

func toggleField(label, column string, value bool) field {
	return field{label: label, column: column, kind: kindToggle, checked: value}
}

// newFields lays out the form in the order the inputs are shown.
func newFields(c model.CustomerData) []field {
	return []field{
		numberField("Credit Score", model.ColumnCreditScore, true, float64(c.CreditScore)),
		choiceField("Geography", model.ColumnGeography, model.Geographies, c.Geography),
		choiceField("Gender", model.ColumnGender, model.Genders, c.Gender),
		numberField("Age", model.ColumnAge, true, float64(c.Age)),
		numberField("Tenure (years)", model.ColumnTenure, true, float64(c.Tenure)),
		numberField("Balance", model.ColumnBalance, false, c.Balance),
		numberField("Number of Products", model.ColumnNumOfProducts, true, float64(c.NumOfProducts)),
		toggleField("Has Credit Card", model.ColumnHasCrCard, c.HasCrCard),
		toggleField("Is Active Member", model.ColumnIsActiveMember, c.IsActiveMember),
		numberField("Estimated Salary", model.ColumnEstimatedSalary, false, c.EstimatedSalary),
	}
}

// accepts reports whether typed runes may go into a number field.
func accepts(runes []rune) bool {
	for _, r := range runes {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			return false
		}
	}
	return true
}

func (f *field) focus() tea.Cmd {
	if f.kind == kindNumber {
		return f.input.Focus()
	}
	return nil
}

func (f *field) blur() {
	if f.kind == kindNumber {
		f.input.Blur()
	}
}

func (f *field) cycle(delta int) {
	switch f.kind {
	case kindChoice:
		n := len(f.options)
		f.selected = ((f.selected+delta)%n + n) % n
	case kindToggle:
		f.checked = !f.checked
	}
}

// display renders the current value without styling.
func (f field) display() string {
	switch f.kind {
	case kindChoice:
		return "‹ " + f.options[f.selected] + " ›"
	case kindToggle:
		if f.checked {
			return "[x]"
		}
		return "[ ]"
	default:
		return f.input.View()
	}
}

func (f field) number() (float64, error) {
	raw := strings.TrimSpace(f.input.Value())
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is required", common.ErrInvalidInput, f.label)
	}
	if f.integer {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be a whole number", common.ErrInvalidInput, f.label)
		}
		return float64(n), nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", common.ErrInvalidInput, f.label)
	}
	return v, nil
}

// collect builds a customer record from the current field values and
// applies the widget ranges.
func collect(fields []field, creditScoreMax int) (model.CustomerData, error) {
	var c model.CustomerData
	for _, f := range fields {
		switch f.kind {
		case kindChoice:
			switch f.column {
			case model.ColumnGeography:
				c.Geography = model.Geography(f.options[f.selected])
			case model.ColumnGender:
				c.Gender = model.Gender(f.options[f.selected])
			}
		case kindToggle:
			switch f.column {
			case model.ColumnHasCrCard:
				c.HasCrCard = f.checked
			case model.ColumnIsActiveMember:
				c.IsActiveMember = f.checked
			}
		case kindNumber:
			v, err := f.number()
			if err != nil {
				return model.CustomerData{}, err
			}
			switch f.column {
			case model.ColumnCreditScore:
				c.CreditScore = int(v)
			case model.ColumnAge:
				c.Age = int(v)
			case model.ColumnTenure:
				c.Tenure = int(v)
			case model.ColumnBalance:
				c.Balance = v
			case model.ColumnNumOfProducts:
				c.NumOfProducts = int(v)
			case model.ColumnEstimatedSalary:
				c.EstimatedSalary = v
			}
		}
	}

	if err := c.Validate(creditScoreMax); err != nil {
		return model.CustomerData{}, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}
	return c, nil
}
