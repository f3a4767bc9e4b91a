// Package batch scores a CSV file of customers with every configured model.
package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Veraticus/churn/internal/common"
	"github.com/Veraticus/churn/internal/model"
	"github.com/schollz/progressbar/v3"
)

// Assessor produces an assessment for one customer.
type Assessor interface {
	Assess(c model.CustomerData) (model.Assessment, error)
}

// Output columns appended after the input columns.
const (
	ColumnAverage = "average_probability"
	ColumnRisk    = "risk_label"
	ColumnError   = "error"
)

// Config controls a batch run.
type Config struct {
	// Progress receives the progress bar. Nil disables it.
	Progress io.Writer
	// Models names the models in the order the assessor reports them.
	Models         []string
	CreditScoreMax int
}

// Summary counts the rows of a finished run.
type Summary struct {
	Rows   int
	Scored int
	Failed int
}

// Scorer runs batch predictions.
type Scorer struct {
	assessor Assessor
	config   Config
}

// NewScorer creates a scorer.
func NewScorer(assessor Assessor, cfg Config) *Scorer {
	return &Scorer{assessor: assessor, config: cfg}
}

// Score reads customers from r and writes them to w with the prediction
// columns appended. Rows are streamed one at a time. A row that cannot be
// scored, including one with the wrong number of fields, is written with its
// error and the run continues.
func (s *Scorer) Score(ctx context.Context, r io.Reader, w io.Writer) (Summary, error) {
	var summary Summary

	in := csv.NewReader(r)
	in.FieldsPerRecord = -1

	header, err := in.Read()
	if errors.Is(err, io.EOF) {
		return summary, fmt.Errorf("%w: csv has no header", common.ErrInvalidInput)
	}
	if err != nil {
		return summary, fmt.Errorf("%w: failed to read csv header: %w", common.ErrInvalidInput, err)
	}

	index, err := columnIndex(header)
	if err != nil {
		return summary, err
	}

	out := csv.NewWriter(w)
	if err := out.Write(append(append([]string{}, header...), s.resultHeader()...)); err != nil {
		return summary, fmt.Errorf("failed to write header: %w", err)
	}

	bar := s.progressBar()
	if bar != nil {
		defer func() {
			if err := bar.Finish(); err != nil {
				slog.Warn("Failed to finish progress bar", "error", err)
			}
		}()
	}

	for {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		row, err := in.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return summary, fmt.Errorf("%w: failed to read csv: %w", common.ErrInvalidInput, err)
		}
		summary.Rows++

		result, rowErr := s.scoreRow(row, header, index)
		if rowErr != nil {
			summary.Failed++
			slog.Warn("Failed to score row", "row", summary.Rows, "error", rowErr)
			result = s.errorColumns(rowErr)
		} else {
			summary.Scored++
		}

		if err := out.Write(append(fit(row, len(header)), result...)); err != nil {
			return summary, fmt.Errorf("failed to write row %d: %w", summary.Rows, err)
		}
		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return summary, fmt.Errorf("failed to flush output: %w", err)
	}
	return summary, nil
}

// fit pads or truncates row to n cells so the output stays rectangular.
func fit(row []string, n int) []string {
	cells := make([]string, n)
	copy(cells, row)
	return cells
}

func (s *Scorer) resultHeader() []string {
	cols := make([]string, 0, len(s.config.Models)*2+3)
	for _, name := range s.config.Models {
		cols = append(cols, name+"_prediction", name+"_probability")
	}
	return append(cols, ColumnAverage, ColumnRisk, ColumnError)
}

func (s *Scorer) scoreRow(row, header []string, index map[string]int) ([]string, error) {
	if len(row) != len(header) {
		return nil, fmt.Errorf("%w: row has %d fields, header has %d", common.ErrInvalidInput, len(row), len(header))
	}
	c, err := parseCustomer(row, index)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(s.config.CreditScoreMax); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}

	a, err := s.assessor.Assess(c)
	if err != nil {
		return nil, err
	}
	if len(a.Models) != len(s.config.Models) {
		return nil, fmt.Errorf("assessor returned %d models, expected %d", len(a.Models), len(s.config.Models))
	}

	cols := make([]string, 0, len(a.Models)*2+3)
	for _, m := range a.Models {
		pred := "0"
		if m.Result.ChurnPrediction {
			pred = "1"
		}
		cols = append(cols, pred, formatProbability(m.Result.ChurnProbability))
	}
	return append(cols, formatProbability(a.AverageProbability), a.RiskLabel, ""), nil
}

func (s *Scorer) errorColumns(err error) []string {
	cols := make([]string, len(s.config.Models)*2+3)
	cols[len(cols)-1] = err.Error()
	return cols
}

// progressBar counts rows as they are scored. The total is unknown while
// streaming, so the bar runs as a spinner that advances on every row.
func (s *Scorer) progressBar() *progressbar.ProgressBar {
	if s.config.Progress == nil {
		return nil
	}
	return progressbar.NewOptions(-1,
		progressbar.OptionSetSpinnerChangeInterval(0),
		progressbar.OptionSetWriter(s.config.Progress),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Scoring customers...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(s.config.Progress); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func formatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', 4, 64)
}

// columnIndex maps every customer column to its position in header.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range model.Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: csv is missing columns: %s", common.ErrInvalidInput, strings.Join(missing, ", "))
	}
	return index, nil
}

func parseCustomer(row []string, index map[string]int) (model.CustomerData, error) {
	p := rowParser{row: row, index: index}
	c := model.CustomerData{
		CreditScore:     p.integer(model.ColumnCreditScore),
		Geography:       model.Geography(p.text(model.ColumnGeography)),
		Gender:          model.Gender(p.text(model.ColumnGender)),
		Age:             p.integer(model.ColumnAge),
		Tenure:          p.integer(model.ColumnTenure),
		Balance:         p.number(model.ColumnBalance),
		NumOfProducts:   p.integer(model.ColumnNumOfProducts),
		HasCrCard:       p.flag(model.ColumnHasCrCard),
		IsActiveMember:  p.flag(model.ColumnIsActiveMember),
		EstimatedSalary: p.number(model.ColumnEstimatedSalary),
	}
	if len(p.errs) > 0 {
		return model.CustomerData{}, fmt.Errorf("%w: %w", common.ErrInvalidInput, errors.Join(p.errs...))
	}
	return c, nil
}

// rowParser collects every field error of a row instead of stopping at the first.
type rowParser struct {
	index map[string]int
	row   []string
	errs  []error
}

func (p *rowParser) text(col string) string {
	i := p.index[col]
	if i >= len(p.row) {
		return ""
	}
	return strings.TrimSpace(p.row[i])
}

func (p *rowParser) integer(col string) int {
	v, err := strconv.Atoi(p.text(col))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a whole number", col, p.text(col)))
	}
	return v
}

func (p *rowParser) number(col string) float64 {
	v, err := strconv.ParseFloat(p.text(col), 64)
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a number", col, p.text(col)))
	}
	return v
}

func (p *rowParser) flag(col string) bool {
	v, err := strconv.ParseBool(p.text(col))
	if err != nil {
		p.errs = append(p.errs, fmt.Errorf("%s: %q is not a boolean", col, p.text(col)))
	}
	return v
}
