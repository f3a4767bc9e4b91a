package model

import (
	"fmt"
	"math"
	"strconv"
)

// Geography is the customer's country of residence.
type Geography string

// Known geographies. Values outside this set are carried through untouched
// and rejected by the preprocessor.
const (
	GeographyFrance  Geography = "France"
	GeographySpain   Geography = "Spain"
	GeographyGermany Geography = "Germany"
)

// Geographies lists the selectable geographies in display order.
var Geographies = []Geography{GeographyFrance, GeographySpain, GeographyGermany}

// Gender is the customer's recorded gender.
type Gender string

// Known genders.
const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Genders lists the selectable genders in display order.
var Genders = []Gender{GenderMale, GenderFemale}

// Column names as they appear in the fitted preprocessor.
const (
	ColumnCreditScore     = "CreditScore"
	ColumnGeography       = "Geography"
	ColumnGender          = "Gender"
	ColumnAge             = "Age"
	ColumnTenure          = "Tenure"
	ColumnBalance         = "Balance"
	ColumnNumOfProducts   = "NumOfProducts"
	ColumnHasCrCard       = "HasCrCard"
	ColumnIsActiveMember  = "IsActiveMember"
	ColumnEstimatedSalary = "EstimatedSalary"
)

// Columns lists every raw input column in form order.
var Columns = []string{
	ColumnCreditScore,
	ColumnGeography,
	ColumnGender,
	ColumnAge,
	ColumnTenure,
	ColumnBalance,
	ColumnNumOfProducts,
	ColumnHasCrCard,
	ColumnIsActiveMember,
	ColumnEstimatedSalary,
}

// Field ranges imposed by the input widgets.
const (
	DefaultCreditScoreMax = 1000
	MinAge                = 18
	MaxAge                = 100
	MinTenure             = 0
	MaxTenure             = 10
	MinProducts           = 1
	MaxProducts           = 4
)

// CustomerData is the raw record collected for a single prediction request.
// It is passed by value and never mutated after construction.
type CustomerData struct {
	Geography       Geography `json:"Geography"`
	Gender          Gender    `json:"Gender"`
	Balance         float64   `json:"Balance"`
	EstimatedSalary float64   `json:"EstimatedSalary"`
	CreditScore     int       `json:"CreditScore"`
	Age             int       `json:"Age"`
	Tenure          int       `json:"Tenure"`
	NumOfProducts   int       `json:"NumOfProducts"`
	HasCrCard       bool      `json:"HasCrCard"`
	IsActiveMember  bool      `json:"IsActiveMember"`
}

// DefaultCustomer returns the values the input form starts with.
func DefaultCustomer() CustomerData {
	return CustomerData{
		CreditScore:     600,
		Geography:       GeographyFrance,
		Gender:          GenderMale,
		Age:             30,
		Tenure:          5,
		Balance:         50000,
		NumOfProducts:   1,
		EstimatedSalary: 50000,
	}
}

// Validate checks the numeric ranges the input widgets enforce.
// Categorical fields are deliberately left to the preprocessor.
// A creditScoreMax of zero or less leaves credit score unbounded above.
func (c CustomerData) Validate(creditScoreMax int) error {
	if c.CreditScore < 0 {
		return fmt.Errorf("credit score must not be negative, got %d", c.CreditScore)
	}
	if creditScoreMax > 0 && c.CreditScore > creditScoreMax {
		return fmt.Errorf("credit score must be at most %d, got %d", creditScoreMax, c.CreditScore)
	}
	if c.Age < MinAge || c.Age > MaxAge {
		return fmt.Errorf("age must be between %d and %d, got %d", MinAge, MaxAge, c.Age)
	}
	if c.Tenure < MinTenure || c.Tenure > MaxTenure {
		return fmt.Errorf("tenure must be between %d and %d, got %d", MinTenure, MaxTenure, c.Tenure)
	}
	if !finite(c.Balance) {
		return fmt.Errorf("balance must be a finite number, got %v", c.Balance)
	}
	if c.Balance < 0 {
		return fmt.Errorf("balance must not be negative, got %.2f", c.Balance)
	}
	if c.NumOfProducts < MinProducts || c.NumOfProducts > MaxProducts {
		return fmt.Errorf("number of products must be between %d and %d, got %d", MinProducts, MaxProducts, c.NumOfProducts)
	}
	if !finite(c.EstimatedSalary) {
		return fmt.Errorf("estimated salary must be a finite number, got %v", c.EstimatedSalary)
	}
	if c.EstimatedSalary < 0 {
		return fmt.Errorf("estimated salary must not be negative, got %.2f", c.EstimatedSalary)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ColumnValue is a single raw field as seen by the preprocessor.
type ColumnValue struct {
	text    string
	number  float64
	numeric bool
}

// Number returns the numeric value and whether the column is numeric.
func (v ColumnValue) Number() (float64, bool) {
	return v.number, v.numeric
}

// Text returns the value in the form categorical encoders match against.
// Numeric values use the shortest exact decimal form, so 1.0 becomes "1".
func (v ColumnValue) Text() string {
	if v.numeric {
		return strconv.FormatFloat(v.number, 'f', -1, 64)
	}
	return v.text
}

// Column returns the named field. Booleans are encoded as 0/1.
func (c CustomerData) Column(name string) (ColumnValue, bool) {
	switch name {
	case ColumnCreditScore:
		return numeric(float64(c.CreditScore)), true
	case ColumnGeography:
		return ColumnValue{text: string(c.Geography)}, true
	case ColumnGender:
		return ColumnValue{text: string(c.Gender)}, true
	case ColumnAge:
		return numeric(float64(c.Age)), true
	case ColumnTenure:
		return numeric(float64(c.Tenure)), true
	case ColumnBalance:
		return numeric(c.Balance), true
	case ColumnNumOfProducts:
		return numeric(float64(c.NumOfProducts)), true
	case ColumnHasCrCard:
		return numeric(boolToFloat(c.HasCrCard)), true
	case ColumnIsActiveMember:
		return numeric(boolToFloat(c.IsActiveMember)), true
	case ColumnEstimatedSalary:
		return numeric(c.EstimatedSalary), true
	default:
		return ColumnValue{}, false
	}
}

func numeric(v float64) ColumnValue {
	return ColumnValue{number: v, numeric: true}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
