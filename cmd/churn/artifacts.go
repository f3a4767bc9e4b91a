package main

import (
	"fmt"

	"github.com/Veraticus/churn/internal/artifact"
	"github.com/Veraticus/churn/internal/cli"
	"github.com/Veraticus/churn/internal/inference"
	"github.com/spf13/cobra"
)

func artifactsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "artifacts",
		Short: "Load the model artifacts and summarize them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			_, arts, err := loadRuntime(settings)
			if err != nil {
				return err
			}

			infos := map[string]artifact.Info{
				"preprocessor":              arts.Preprocessor.Info(),
				inference.ModelRandomForest: arts.Forest.Info(),
				inference.ModelXGBoost:      arts.Boosted.Info(),
			}
			order := []string{"preprocessor", inference.ModelRandomForest, inference.ModelXGBoost}
			_, err = fmt.Fprint(cmd.OutOrStdout(), cli.RenderArtifacts(infos, order))
			return err
		},
	}
}
