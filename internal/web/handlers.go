package web

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Veraticus/churn/internal/common"
	"github.com/Veraticus/churn/internal/model"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON body of every failed API request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// assess validates c and runs it through both models.
func (s *Server) assess(c model.CustomerData) (model.Assessment, error) {
	if err := c.Validate(s.config.CreditScoreMax); err != nil {
		s.metrics.requests.WithLabelValues(outcomeInvalid).Inc()
		return model.Assessment{}, fmt.Errorf("%w: %w", common.ErrInvalidInput, err)
	}

	start := time.Now()
	a, err := s.assessor.Assess(c)
	s.metrics.duration.Observe(time.Since(start).Seconds())
	if err != nil {
		outcome := outcomeError
		if common.IsRequestError(err) {
			outcome = outcomeRejected
		}
		s.metrics.requests.WithLabelValues(outcome).Inc()
		return model.Assessment{}, err
	}

	s.metrics.observe(a)
	return a, nil
}

func (s *Server) predict(c *gin.Context) {
	var customer model.CustomerData
	if err := c.ShouldBindJSON(&customer); err != nil {
		s.metrics.requests.WithLabelValues(outcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request", Details: err.Error()})
		return
	}

	a, err := s.assess(customer)
	if err != nil {
		status, msg := errorStatus(err)
		if status == http.StatusInternalServerError {
			common.LogError(err, "Prediction failed", common.Fields{"request_id": c.GetString(requestIDKey)})
		}
		c.JSON(status, ErrorResponse{Error: msg, Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

// errorStatus maps an assessment error to an HTTP status and summary.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrInvalidInput):
		return http.StatusBadRequest, "invalid request"
	case common.IsRequestError(err):
		return http.StatusUnprocessableEntity, "prediction failed"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
