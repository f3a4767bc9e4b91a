package inference

import (
	"errors"
	"testing"

	"github.com/Veraticus/churn/internal/artifact"
	"github.com/Veraticus/churn/internal/common"
	"github.com/Veraticus/churn/internal/model"
	"github.com/Veraticus/churn/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClassifier returns canned answers and counts calls.
type stubClassifier struct {
	err          error
	proba        []float64
	classes      []int
	label        int
	predictCalls int
	probaCalls   int
	lastFeatures []float64
}

func (s *stubClassifier) Predict(x []float64) (int, error) {
	s.predictCalls++
	s.lastFeatures = x
	return s.label, s.err
}

func (s *stubClassifier) PredictProba(x []float64) ([]float64, error) {
	s.probaCalls++
	s.lastFeatures = x
	return s.proba, s.err
}

func (s *stubClassifier) Classes() []int {
	if s.classes == nil {
		return []int{0, 1}
	}
	return s.classes
}

type stubPreprocessor struct {
	err   error
	out   []float64
	calls int
}

func (s *stubPreprocessor) Transform(_ model.CustomerData) ([]float64, error) {
	s.calls++
	return s.out, s.err
}

func loadTestArtifacts(t *testing.T) (*artifact.ColumnTransformer, artifact.Classifier, artifact.Classifier) {
	t.Helper()
	pre, err := artifact.ParsePreprocessor(testutil.MustJSON(t, testutil.Preprocessor()))
	require.NoError(t, err)
	forest, err := artifact.ParseClassifier(testutil.MustJSON(t, testutil.Forest()))
	require.NoError(t, err)
	boosted, err := artifact.ParseClassifier(testutil.MustJSON(t, testutil.Booster()))
	require.NoError(t, err)
	return pre, forest, boosted
}

func TestPredict_LabelAndProbabilityAreIndependent(t *testing.T) {
	tests := []struct {
		name      string
		clf       *stubClassifier
		wantLabel bool
		wantProb  float64
	}{
		{
			name:      "positive label with low probability",
			clf:       &stubClassifier{label: 1, proba: []float64{0.8, 0.2}},
			wantLabel: true,
			wantProb:  0.2,
		},
		{
			name:      "negative label with high probability",
			clf:       &stubClassifier{label: 0, proba: []float64{0.1, 0.9}},
			wantLabel: false,
			wantProb:  0.9,
		},
		{
			name:      "positive class listed first",
			clf:       &stubClassifier{label: 1, proba: []float64{0.7, 0.3}, classes: []int{1, 0}},
			wantLabel: true,
			wantProb:  0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pre := &stubPreprocessor{out: []float64{1, 2, 3}}
			got, err := Predict(testutil.Customer(), pre, tt.clf)
			require.NoError(t, err)

			assert.Equal(t, tt.wantLabel, got.ChurnPrediction)
			assert.InDelta(t, tt.wantProb, got.ChurnProbability, 0)
			assert.Equal(t, 1, tt.clf.predictCalls)
			assert.Equal(t, 1, tt.clf.probaCalls)
			assert.Equal(t, []float64{1, 2, 3}, tt.clf.lastFeatures)
		})
	}
}

func TestPredict_PropagatesErrorsUnchanged(t *testing.T) {
	preErr := &artifact.EncodingError{Column: model.ColumnGeography, Value: "Italy"}
	clf := &stubClassifier{}
	_, err := Predict(testutil.Customer(), &stubPreprocessor{err: preErr}, clf)
	assert.Same(t, preErr, err)
	assert.Zero(t, clf.predictCalls)
	assert.Zero(t, clf.probaCalls)

	shapeErr := &artifact.ShapeMismatchError{Model: "m", Want: 12, Got: 3}
	_, err = Predict(testutil.Customer(), &stubPreprocessor{out: []float64{1}}, &stubClassifier{err: shapeErr})
	assert.Same(t, shapeErr, err)
}

func TestPredict_MissingPositiveClass(t *testing.T) {
	clf := &stubClassifier{proba: []float64{0.5, 0.5}, classes: []int{2, 3}}
	_, err := Predict(testutil.Customer(), &stubPreprocessor{}, clf)
	assert.ErrorIs(t, err, common.ErrShapeMismatch)

	clf = &stubClassifier{proba: []float64{1}}
	_, err = Predict(testutil.Customer(), &stubPreprocessor{}, clf)
	assert.ErrorIs(t, err, common.ErrShapeMismatch)
}

func TestPredict_RealArtifacts(t *testing.T) {
	pre, forest, boosted := loadTestArtifacts(t)

	customers := []model.CustomerData{testutil.Customer()}
	for _, geo := range model.Geographies {
		for _, products := range []int{1, 2, 3, 4} {
			for _, active := range []bool{true, false} {
				c := testutil.Customer()
				c.Geography = geo
				c.NumOfProducts = products
				c.IsActiveMember = active
				c.Age = 20 + products*15
				customers = append(customers, c)
			}
		}
	}

	for _, c := range customers {
		for _, clf := range []artifact.Classifier{forest, boosted} {
			res, err := Predict(c, pre, clf)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, res.ChurnProbability, 0.0)
			assert.LessOrEqual(t, res.ChurnProbability, 1.0)
		}
	}

	res, err := Predict(testutil.Customer(), pre, forest)
	require.NoError(t, err)
	assert.False(t, res.ChurnPrediction)
	assert.InDelta(t, 0.15, res.ChurnProbability, 1e-12)
}

func TestPredict_UnknownGeography(t *testing.T) {
	pre, _, _ := loadTestArtifacts(t)

	c := testutil.Customer()
	c.Geography = "Italy"

	clf := &stubClassifier{label: 1, proba: []float64{0, 1}}
	_, err := Predict(c, pre, clf)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEncoding)
	assert.Zero(t, clf.predictCalls+clf.probaCalls)

	var encErr *artifact.EncodingError
	assert.True(t, errors.As(err, &encErr))
}
