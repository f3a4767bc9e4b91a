package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/Veraticus/churn/internal/model"
	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"percent": func(p float64) string { return fmt.Sprintf("%.2f%%", p*100) },
	"lower":   strings.ToLower,
}

// customerForm is the browser form encoding of a customer. Checkboxes are
// absent when unchecked, which binds as false.
type customerForm struct {
	Geography       string  `form:"Geography"`
	Gender          string  `form:"Gender"`
	Balance         float64 `form:"Balance"`
	EstimatedSalary float64 `form:"EstimatedSalary"`
	CreditScore     int     `form:"CreditScore"`
	Age             int     `form:"Age"`
	Tenure          int     `form:"Tenure"`
	NumOfProducts   int     `form:"NumOfProducts"`
	HasCrCard       bool    `form:"HasCrCard"`
	IsActiveMember  bool    `form:"IsActiveMember"`
}

func (f customerForm) customer() model.CustomerData {
	return model.CustomerData{
		CreditScore:     f.CreditScore,
		Geography:       model.Geography(f.Geography),
		Gender:          model.Gender(f.Gender),
		Age:             f.Age,
		Tenure:          f.Tenure,
		Balance:         f.Balance,
		NumOfProducts:   f.NumOfProducts,
		HasCrCard:       f.HasCrCard,
		IsActiveMember:  f.IsActiveMember,
		EstimatedSalary: f.EstimatedSalary,
	}
}

type pageData struct {
	Assessment     *model.Assessment
	Error          string
	Geographies    []model.Geography
	Genders        []model.Gender
	Customer       model.CustomerData
	CreditScoreMax int
}

func (s *Server) page(c model.CustomerData) pageData {
	return pageData{
		Customer:       c,
		Geographies:    model.Geographies,
		Genders:        model.Genders,
		CreditScoreMax: s.config.CreditScoreMax,
	}
}

func (s *Server) form(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", s.page(model.DefaultCustomer()))
}

func (s *Server) submit(c *gin.Context) {
	var f customerForm
	if err := c.ShouldBind(&f); err != nil {
		s.metrics.requests.WithLabelValues(outcomeInvalid).Inc()
		data := s.page(model.DefaultCustomer())
		data.Error = "invalid request: " + err.Error()
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	}

	customer := f.customer()
	data := s.page(customer)
	a, err := s.assess(customer)
	if err != nil {
		status, _ := errorStatus(err)
		data.Error = err.Error()
		c.HTML(status, "index.html", data)
		return
	}

	data.Assessment = &a
	c.HTML(http.StatusOK, "index.html", data)
}
