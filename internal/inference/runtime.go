package inference

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/Veraticus/churn/internal/artifact"
	"github.com/Veraticus/churn/internal/common"
	"github.com/Veraticus/churn/internal/model"
	"github.com/Veraticus/churn/internal/recommend"
)

// Model names as shown to users and used in metrics.
const (
	ModelRandomForest = "random_forest"
	ModelXGBoost      = "xgboost"
)

// NamedModel is a classifier with the names it is reported under.
type NamedModel struct {
	Classifier  Classifier
	Name        string
	DisplayName string
}

// Runtime is the read-only context every prediction runs in. It is built once
// at startup and shared by all requests; nothing in it is mutated after
// construction.
type Runtime struct {
	preprocessor Preprocessor
	models       []NamedModel
}

// NewRuntime builds a runtime. Models are evaluated in the order given.
func NewRuntime(pre Preprocessor, models ...NamedModel) (*Runtime, error) {
	if pre == nil {
		return nil, fmt.Errorf("%w: preprocessor is required", common.ErrMissingConfig)
	}
	if len(models) == 0 {
		return nil, fmt.Errorf("%w: at least one model is required", common.ErrMissingConfig)
	}
	for _, m := range models {
		if m.Classifier == nil || m.Name == "" {
			return nil, fmt.Errorf("%w: model %q is incomplete", common.ErrMissingConfig, m.Name)
		}
	}
	return &Runtime{
		preprocessor: pre,
		models:       slices.Clone(models),
	}, nil
}

// Models returns the configured models in evaluation order.
func (r *Runtime) Models() []NamedModel {
	return slices.Clone(r.models)
}

// Assess predicts with every model in turn, averages the churn
// probabilities and attaches the recommendations for c. The first failure
// aborts the request; no partial assessment is returned.
func (r *Runtime) Assess(c model.CustomerData) (model.Assessment, error) {
	results := make([]model.ModelResult, 0, len(r.models))
	for _, m := range r.models {
		res, err := Predict(c, r.preprocessor, m.Classifier)
		if err != nil {
			common.LogDebug("Prediction failed", common.Fields{"model": m.Name, "error": err.Error()})
			return model.Assessment{}, err
		}
		results = append(results, model.ModelResult{
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Result:      res,
		})
	}

	avg := model.AverageProbability(results)
	return model.Assessment{
		Models:             results,
		AverageProbability: avg,
		RiskLabel:          model.RiskLabelFor(avg),
		Recommendations:    recommend.For(c),
	}, nil
}

// Paths locates the artifact files.
type Paths struct {
	Preprocessor string
	Forest       string
	Boosted      string
}

// Artifacts are the loaded files behind a runtime, kept for inspection.
type Artifacts struct {
	Preprocessor *artifact.ColumnTransformer
	Forest       artifact.Classifier
	Boosted      artifact.Classifier
}

// Load reads all three artifacts. Any failure is an artifact load error.
func Load(paths Paths) (*Artifacts, error) {
	pre, err := artifact.LoadPreprocessor(paths.Preprocessor)
	if err != nil {
		return nil, err
	}
	forest, err := artifact.LoadClassifier(paths.Forest)
	if err != nil {
		return nil, err
	}
	boosted, err := artifact.LoadClassifier(paths.Boosted)
	if err != nil {
		return nil, err
	}

	for _, clf := range []artifact.Classifier{forest, boosted} {
		info := clf.Info()
		if info.Features != pre.NumFeatures() {
			slog.Warn("Model feature width does not match preprocessor; predictions will fail",
				"model", info.Path, "model_features", info.Features, "preprocessor_features", pre.NumFeatures())
		}
	}

	return &Artifacts{Preprocessor: pre, Forest: forest, Boosted: boosted}, nil
}

// LoadRuntime loads the artifacts and wires them into a runtime with the
// forest evaluated before the boosted model.
func LoadRuntime(paths Paths) (*Runtime, *Artifacts, error) {
	arts, err := Load(paths)
	if err != nil {
		return nil, nil, err
	}

	rt, err := NewRuntime(arts.Preprocessor,
		NamedModel{Name: ModelRandomForest, DisplayName: "Random Forest", Classifier: arts.Forest},
		NamedModel{Name: ModelXGBoost, DisplayName: "XGBoost", Classifier: arts.Boosted},
	)
	if err != nil {
		return nil, nil, err
	}

	common.LogInfo("Loaded model artifacts", common.Fields{
		"preprocessor": paths.Preprocessor,
		"forest":       paths.Forest,
		"boosted":      paths.Boosted,
		"features":     arts.Preprocessor.NumFeatures(),
	})
	return rt, arts, nil
}

// IsArtifactError reports whether err came from loading artifacts.
func IsArtifactError(err error) bool {
	return errors.Is(err, common.ErrArtifactLoad)
}
