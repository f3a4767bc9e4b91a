package main

import (
	"github.com/Veraticus/churn/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser form and JSON prediction API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := loadSettings()
			if err != nil {
				return err
			}
			rt, _, err := loadRuntime(settings)
			if err != nil {
				return err
			}

			if settings.Server.Mode != "" {
				gin.SetMode(settings.Server.Mode)
			}
			srv, err := web.New(rt, web.Config{
				Addr:           settings.Server.Addr,
				CreditScoreMax: settings.Form.CreditScoreMax,
			})
			if err != nil {
				return err
			}
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().String("addr", "", "listen address (default :8501)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
