package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/churn/internal/artifact"
	"github.com/Veraticus/churn/internal/model"
)

// Feature layout produced by Preprocessor.
const (
	FeatureCreditScore = iota
	FeatureAge
	FeatureTenure
	FeatureBalance
	FeatureNumOfProducts
	FeatureEstimatedSalary
	FeatureFrance
	FeatureGermany
	FeatureSpain
	FeatureMale
	FeatureHasCrCard
	FeatureIsActiveMember
	NumFeatures
)

// Preprocessor returns a column transformer with identity scaling, so the
// encoded numeric features equal the raw values.
func Preprocessor() artifact.ColumnTransformer {
	return artifact.ColumnTransformer{
		Kind:    artifact.KindColumnTransformer,
		Version: artifact.FormatVersion,
		Transformers: []artifact.Transformer{
			{
				Name: "num",
				Type: artifact.TransformStandard,
				Columns: []string{
					model.ColumnCreditScore,
					model.ColumnAge,
					model.ColumnTenure,
					model.ColumnBalance,
					model.ColumnNumOfProducts,
					model.ColumnEstimatedSalary,
				},
				Mean:  []float64{0, 0, 0, 0, 0, 0},
				Scale: []float64{1, 1, 1, 1, 1, 1},
			},
			{
				Name:    "cat",
				Type:    artifact.TransformOneHot,
				Columns: []string{model.ColumnGeography, model.ColumnGender},
				Categories: [][]string{
					{"France", "Germany", "Spain"},
					{"Female", "Male"},
				},
				Drop: artifact.DropIfBinary,
			},
			{
				Name:    "flags",
				Type:    artifact.TransformPassthrough,
				Columns: []string{model.ColumnHasCrCard, model.ColumnIsActiveMember},
			},
		},
	}
}

// Forest returns a two-tree forest.
//
// Tree one: inactive members lean towards churn ([0.3, 0.7]), active ones
// away from it ([0.9, 0.1]). Tree two: customers up to 45 get [0.8, 0.2],
// older ones [0.2, 0.8].
func Forest() artifact.RandomForest {
	return artifact.RandomForest{
		Kind:        artifact.KindRandomForest,
		Version:     artifact.FormatVersion,
		ClassLabels: []int{0, 1},
		NFeatures:   NumFeatures,
		Trees: []artifact.Tree{
			stump(FeatureIsActiveMember, 0.5, []float64{3, 7}, []float64{9, 1}),
			stump(FeatureAge, 45, []float64{0.8, 0.2}, []float64{0.2, 0.8}),
		},
	}
}

// Booster returns a two-tree logistic booster with base score 0.5.
//
// Tree one adds 0.8 for a single product and -0.6 otherwise. Tree two adds
// -0.2 outside Germany and 0.5 inside it.
func Booster() artifact.GradientBoosting {
	return artifact.GradientBoosting{
		Kind:      artifact.KindGradientBoosting,
		Version:   artifact.FormatVersion,
		Objective: artifact.ObjectiveBinaryLogistic,
		BaseScore: 0.5,
		NFeatures: NumFeatures,
		Trees: []artifact.Tree{
			stump(FeatureNumOfProducts, 1.5, []float64{0.8}, []float64{-0.6}),
			stump(FeatureGermany, 0.5, []float64{-0.2}, []float64{0.5}),
		},
	}
}

func stump(feature int, threshold float64, left, right []float64) artifact.Tree {
	return artifact.Tree{
		ChildrenLeft:  []int{1, -1, -1},
		ChildrenRight: []int{2, -1, -1},
		Feature:       []int{feature, -2, -2},
		Threshold:     []float64{threshold, -2, -2},
		Value:         [][]float64{{}, left, right},
	}
}

// MustJSON marshals v or fails the test.
func MustJSON(t *testing.T, v any) []byte {
	t.Helper()

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal artifact: %v", err)
	}
	return data
}

// ArtifactPaths locates a set of written artifacts.
type ArtifactPaths struct {
	Dir          string
	Preprocessor string
	Forest       string
	Boosted      string
}

// WriteArtifacts writes the default test artifacts into a temporary directory.
func WriteArtifacts(t *testing.T) ArtifactPaths {
	t.Helper()

	dir := t.TempDir()
	paths := ArtifactPaths{
		Dir:          dir,
		Preprocessor: filepath.Join(dir, "preprocessor.json"),
		Forest:       filepath.Join(dir, "random_forest.json"),
		Boosted:      filepath.Join(dir, "xgboost.json"),
	}

	write := func(path string, v any) {
		if err := os.WriteFile(path, MustJSON(t, v), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
	write(paths.Preprocessor, Preprocessor())
	write(paths.Forest, Forest())
	write(paths.Boosted, Booster())

	return paths
}

// Customer returns a customer with every rule-relevant field set so that no
// recommendation fires.
func Customer() model.CustomerData {
	return model.CustomerData{
		CreditScore:     650,
		Geography:       model.GeographyFrance,
		Gender:          model.GenderFemale,
		Age:             30,
		Tenure:          4,
		Balance:         1000,
		NumOfProducts:   2,
		HasCrCard:       true,
		IsActiveMember:  true,
		EstimatedSalary: 42000,
	}
}
