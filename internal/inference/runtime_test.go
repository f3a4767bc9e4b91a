package inference

import (
	"path/filepath"
	"testing"

	"github.com/Veraticus/churn/internal/common"
	"github.com/Veraticus/churn/internal/model"
	"github.com/Veraticus/churn/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRuntime_Validation(t *testing.T) {
	_, err := NewRuntime(nil, NamedModel{Name: "m", Classifier: &stubClassifier{}})
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	_, err = NewRuntime(&stubPreprocessor{})
	assert.ErrorIs(t, err, common.ErrMissingConfig)

	_, err = NewRuntime(&stubPreprocessor{}, NamedModel{Name: "m"})
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestRuntime_Assess(t *testing.T) {
	forest := &stubClassifier{label: 0, proba: []float64{0.7, 0.3}}
	boosted := &stubClassifier{label: 1, proba: []float64{0.3, 0.7}}

	rt, err := NewRuntime(&stubPreprocessor{out: []float64{1}},
		NamedModel{Name: ModelRandomForest, DisplayName: "Random Forest", Classifier: forest},
		NamedModel{Name: ModelXGBoost, DisplayName: "XGBoost", Classifier: boosted},
	)
	require.NoError(t, err)

	c := testutil.Customer()
	c.CreditScore = 500
	c.IsActiveMember = false
	c.NumOfProducts = 1
	c.HasCrCard = false

	got, err := rt.Assess(c)
	require.NoError(t, err)

	require.Len(t, got.Models, 2)
	assert.Equal(t, ModelRandomForest, got.Models[0].Name)
	assert.Equal(t, ModelXGBoost, got.Models[1].Name)
	assert.False(t, got.Models[0].Result.ChurnPrediction)
	assert.True(t, got.Models[1].Result.ChurnPrediction)

	assert.InDelta(t, 0.5, got.AverageProbability, 1e-12)
	assert.Equal(t, model.RiskLow, got.RiskLabel)
	assert.Len(t, got.Recommendations, 3)
}

func TestRuntime_AssessAbortsOnFailure(t *testing.T) {
	forest := &stubClassifier{label: 0, proba: []float64{0.7, 0.3}}
	boosted := &stubClassifier{err: assert.AnError}

	rt, err := NewRuntime(&stubPreprocessor{out: []float64{1}},
		NamedModel{Name: ModelRandomForest, Classifier: forest},
		NamedModel{Name: ModelXGBoost, Classifier: boosted},
	)
	require.NoError(t, err)

	got, err := rt.Assess(testutil.Customer())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, got.Models)
	assert.Equal(t, 1, forest.predictCalls)
}

func TestRuntime_UnknownGeographyNeverReachesModels(t *testing.T) {
	pre, _, _ := loadTestArtifacts(t)
	forest := &stubClassifier{proba: []float64{1, 0}}
	boosted := &stubClassifier{proba: []float64{1, 0}}

	rt, err := NewRuntime(pre,
		NamedModel{Name: ModelRandomForest, Classifier: forest},
		NamedModel{Name: ModelXGBoost, Classifier: boosted},
	)
	require.NoError(t, err)

	c := testutil.Customer()
	c.Geography = "Italy"

	_, err = rt.Assess(c)
	assert.ErrorIs(t, err, common.ErrEncoding)
	assert.Zero(t, forest.predictCalls+forest.probaCalls+boosted.predictCalls+boosted.probaCalls)
}

func TestLoadRuntime(t *testing.T) {
	paths := testutil.WriteArtifacts(t)

	rt, arts, err := LoadRuntime(Paths{
		Preprocessor: paths.Preprocessor,
		Forest:       paths.Forest,
		Boosted:      paths.Boosted,
	})
	require.NoError(t, err)
	require.NotNil(t, arts)

	models := rt.Models()
	require.Len(t, models, 2)
	assert.Equal(t, ModelRandomForest, models[0].Name)
	assert.Equal(t, ModelXGBoost, models[1].Name)

	got, err := rt.Assess(testutil.Customer())
	require.NoError(t, err)
	assert.InDelta(t, 0.15, got.Models[0].Result.ChurnProbability, 1e-12)
	assert.Equal(t, model.RiskLow, got.RiskLabel)
	assert.Empty(t, got.Recommendations)

	_, _, err = LoadRuntime(Paths{Preprocessor: paths.Preprocessor, Forest: paths.Dir + "/nope.json", Boosted: paths.Boosted})
	require.Error(t, err)
	assert.True(t, IsArtifactError(err))
}

func TestLoadRuntime_BundledArtifacts(t *testing.T) {
	dir := filepath.Join("..", "..", "artifacts")
	rt, arts, err := LoadRuntime(Paths{
		Preprocessor: filepath.Join(dir, "preprocessor.json"),
		Forest:       filepath.Join(dir, "random_forest.json"),
		Boosted:      filepath.Join(dir, "xgboost.json"),
	})
	require.NoError(t, err)
	assert.Equal(t, arts.Preprocessor.NumFeatures(), arts.Forest.Info().Features)
	assert.Equal(t, arts.Preprocessor.NumFeatures(), arts.Boosted.Info().Features)

	customers := []model.CustomerData{model.DefaultCustomer(), testutil.Customer()}
	for _, geo := range model.Geographies {
		c := model.DefaultCustomer()
		c.Geography = geo
		c.Age = 60
		c.NumOfProducts = 3
		customers = append(customers, c)
	}

	for _, c := range customers {
		a, err := rt.Assess(c)
		require.NoError(t, err)
		require.Len(t, a.Models, 2)
		for _, m := range a.Models {
			assert.GreaterOrEqual(t, m.Result.ChurnProbability, 0.0)
			assert.LessOrEqual(t, m.Result.ChurnProbability, 1.0)
		}
	}
}
