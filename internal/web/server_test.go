package web_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/Veraticus/churn/internal/artifact"
	"github.com/Veraticus/churn/internal/inference"
	"github.com/Veraticus/churn/internal/model"
	"github.com/Veraticus/churn/internal/testutil"
	"github.com/Veraticus/churn/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type assessorFunc func(model.CustomerData) (model.Assessment, error)

func (f assessorFunc) Assess(c model.CustomerData) (model.Assessment, error) {
	return f(c)
}

func newServer(t *testing.T, assessor web.Assessor) *web.Server {
	t.Helper()

	if assessor == nil {
		paths := testutil.WriteArtifacts(t)
		rt, _, err := inference.LoadRuntime(inference.Paths{
			Preprocessor: paths.Preprocessor,
			Forest:       paths.Forest,
			Boosted:      paths.Boosted,
		})
		require.NoError(t, err)
		assessor = rt
	}

	srv, err := web.New(assessor, web.Config{CreditScoreMax: model.DefaultCreditScoreMax})
	require.NoError(t, err)
	return srv
}

func do(t *testing.T, srv *web.Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, srv *web.Server, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return do(t, srv, req)
}

func postForm(t *testing.T, srv *web.Server, c model.CustomerData) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{
		"CreditScore":     {strconv.Itoa(c.CreditScore)},
		"Geography":       {string(c.Geography)},
		"Gender":          {string(c.Gender)},
		"Age":             {strconv.Itoa(c.Age)},
		"Tenure":          {strconv.Itoa(c.Tenure)},
		"Balance":         {fmt.Sprint(c.Balance)},
		"NumOfProducts":   {strconv.Itoa(c.NumOfProducts)},
		"EstimatedSalary": {fmt.Sprint(c.EstimatedSalary)},
	}
	if c.HasCrCard {
		form.Set("HasCrCard", "true")
	}
	if c.IsActiveMember {
		form.Set("IsActiveMember", "true")
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return do(t, srv, req)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) web.ErrorResponse {
	t.Helper()
	var resp web.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestPredictAPI(t *testing.T) {
	srv := newServer(t, nil)

	rec := postJSON(t, srv, testutil.Customer())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var a model.Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &a))
	require.Len(t, a.Models, 2)
	assert.Equal(t, inference.ModelRandomForest, a.Models[0].Name)
	assert.Equal(t, inference.ModelXGBoost, a.Models[1].Name)
	assert.InDelta(t, 0.15, a.Models[0].Result.ChurnProbability, 1e-9)
	assert.False(t, a.Models[0].Result.ChurnPrediction)
	assert.Equal(t, model.RiskLow, a.RiskLabel)
	assert.NotNil(t, a.Recommendations)
	assert.Empty(t, a.Recommendations)
}

func TestPredictAPI_Errors(t *testing.T) {
	srv := newServer(t, nil)

	italy := testutil.Customer()
	italy.Geography = "Italy"

	young := testutil.Customer()
	young.Age = 17

	tests := []struct {
		name    string
		body    any
		status  int
		details string
	}{
		{
			name:    "unknown category",
			body:    italy,
			status:  http.StatusUnprocessableEntity,
			details: `found unknown category "Italy" in column Geography`,
		},
		{
			name:    "out of range",
			body:    young,
			status:  http.StatusBadRequest,
			details: "age must be between 18 and 100, got 17",
		},
		{
			name:    "wrong type",
			body:    map[string]any{"CreditScore": "high"},
			status:  http.StatusBadRequest,
			details: "CreditScore",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, srv, tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, decodeError(t, rec).Details, tt.details)
		})
	}
}

func TestPredictAPI_MalformedBody(t *testing.T) {
	srv := newServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/predict", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec := do(t, srv, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid request", decodeError(t, rec).Error)
}

func TestPredictAPI_ShapeMismatch(t *testing.T) {
	shape := &artifact.ShapeMismatchError{Model: "xgboost", Want: 12, Got: 11}
	srv := newServer(t, assessorFunc(func(model.CustomerData) (model.Assessment, error) {
		return model.Assessment{}, shape
	}))

	rec := postJSON(t, srv, testutil.Customer())
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, shape.Error(), decodeError(t, rec).Details)
}

func TestPredictAPI_InternalError(t *testing.T) {
	srv := newServer(t, assessorFunc(func(model.CustomerData) (model.Assessment, error) {
		return model.Assessment{}, errors.New("boom")
	}))

	rec := postJSON(t, srv, testutil.Customer())
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "boom", decodeError(t, rec).Details)
}

func TestForm(t *testing.T) {
	srv := newServer(t, nil)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Customer Churn Prediction")
	assert.Contains(t, body, `name="CreditScore" value="600"`)
	assert.Contains(t, body, `max="1000"`)
	assert.NotContains(t, body, "Prediction Results")
}

func TestFormSubmit(t *testing.T) {
	srv := newServer(t, nil)

	c := testutil.Customer()
	c.IsActiveMember = false
	rec := postForm(t, srv, c)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, testutil.ContainsInOrder(body,
		"Prediction Results",
		"Random Forest Model:", "Prediction: No Churn", "Probability: 45.00%",
		"XGBoost Model:", "Prediction: No Churn", "Probability: 31.00%",
		"Average churn risk: 38.00%", "Low Risk",
		"Recommendations", "re-engagement offer", "(High priority)",
	), body)
	assert.Contains(t, body, `name="Age" value="30"`)
}

func TestFormSubmit_Errors(t *testing.T) {
	srv := newServer(t, nil)

	italy := testutil.Customer()
	italy.Geography = "Italy"
	rec := postForm(t, srv, italy)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown category")
	assert.NotContains(t, rec.Body.String(), "Prediction Results")

	nan := testutil.Customer()
	nan.Balance = math.NaN()
	rec = postForm(t, srv, nan)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "balance must be a finite number")
	assert.NotContains(t, rec.Body.String(), "Prediction Results")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("Age=old"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = do(t, srv, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request")
}

func TestHealth(t *testing.T) {
	srv := newServer(t, nil)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}

func TestRequestID(t *testing.T) {
	srv := newServer(t, nil)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/health", nil))
	_, err := uuid.Parse(rec.Header().Get(web.RequestIDHeader))
	assert.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(web.RequestIDHeader, id)
	rec = do(t, srv, req)
	assert.Equal(t, id, rec.Header().Get(web.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(web.RequestIDHeader, "not-a-uuid")
	rec = do(t, srv, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(web.RequestIDHeader))
}

func TestMetrics(t *testing.T) {
	srv := newServer(t, nil)

	postJSON(t, srv, testutil.Customer())
	italy := testutil.Customer()
	italy.Geography = "Italy"
	postJSON(t, srv, italy)

	rec := do(t, srv, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	out := string(body)
	assert.Contains(t, out, `churn_prediction_requests_total{outcome="ok"} 1`)
	assert.Contains(t, out, `churn_prediction_requests_total{outcome="rejected"} 1`)
	assert.Contains(t, out, `churn_model_predictions_total{label="No Churn",model="random_forest"} 1`)
	assert.Contains(t, out, `churn_risk_assessments_total{risk="Low Risk"} 1`)
	assert.Contains(t, out, "churn_prediction_duration_seconds_count 2")
}

func TestNew_RequiresAssessor(t *testing.T) {
	_, err := web.New(nil, web.Config{})
	assert.Error(t, err)
}

func TestNew_LeavesGinModeAlone(t *testing.T) {
	require.Equal(t, gin.TestMode, gin.Mode())

	newServer(t, nil)
	assert.Equal(t, gin.TestMode, gin.Mode())
}
