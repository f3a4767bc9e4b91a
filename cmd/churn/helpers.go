package main

import (
	"github.com/Veraticus/churn/internal/common"
	"github.com/Veraticus/churn/internal/config"
	"github.com/Veraticus/churn/internal/inference"
	"github.com/spf13/viper"
)

func loadSettings() (config.Settings, error) {
	return config.Load(viper.GetViper())
}

// loadRuntime loads the artifacts named by settings. A load failure is fatal
// for every command that needs predictions.
func loadRuntime(settings config.Settings) (*inference.Runtime, *inference.Artifacts, error) {
	rt, arts, err := inference.LoadRuntime(settings.ArtifactPaths())
	if err != nil {
		if inference.IsArtifactError(err) {
			return nil, nil, common.NewUserError("failed to load model artifacts", err)
		}
		return nil, nil, err
	}
	return rt, arts, nil
}
