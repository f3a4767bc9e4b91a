// Package config provides configuration loading for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/churn/internal/common"
	"github.com/Veraticus/churn/internal/inference"
	"github.com/Veraticus/churn/internal/model"
	"github.com/spf13/viper"
)

// Settings is the full application configuration.
type Settings struct {
	Artifacts ArtifactSettings `mapstructure:"artifacts"`
	Server    ServerSettings   `mapstructure:"server"`
	TUI       TUISettings      `mapstructure:"tui"`
	Logging   LoggingSettings  `mapstructure:"logging"`
	Form      FormSettings     `mapstructure:"form"`
}

// ArtifactSettings locates the model artifacts. Relative file names are
// resolved against Dir.
type ArtifactSettings struct {
	Dir          string `mapstructure:"dir"`
	Preprocessor string `mapstructure:"preprocessor"`
	Forest       string `mapstructure:"forest"`
	Boosted      string `mapstructure:"boosted"`
}

// FormSettings controls input ranges.
type FormSettings struct {
	CreditScoreMax int `mapstructure:"credit_score_max"`
}

// ServerSettings configures the browser form server.
type ServerSettings struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"`
}

// TUISettings configures the terminal form.
type TUISettings struct {
	Theme string `mapstructure:"theme"`
}

// LoggingSettings configures slog.
type LoggingSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("artifacts.dir", "./artifacts")
	v.SetDefault("artifacts.preprocessor", "preprocessor.json")
	v.SetDefault("artifacts.forest", "random_forest.json")
	v.SetDefault("artifacts.boosted", "xgboost.json")
	v.SetDefault("form.credit_score_max", model.DefaultCreditScoreMax)
	v.SetDefault("server.addr", ":8501")
	v.SetDefault("server.mode", "release")
	v.SetDefault("tui.theme", "default")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Load decodes and validates the settings held by v.
func Load(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return s, fmt.Errorf("%w: %w", common.ErrInvalidConfig, err)
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks values that cannot be defaulted.
func (s Settings) Validate() error {
	if s.Artifacts.Preprocessor == "" || s.Artifacts.Forest == "" || s.Artifacts.Boosted == "" {
		return fmt.Errorf("%w: artifacts.preprocessor, artifacts.forest and artifacts.boosted must be set", common.ErrMissingConfig)
	}
	if s.Form.CreditScoreMax < 0 {
		return fmt.Errorf("%w: form.credit_score_max must not be negative", common.ErrInvalidConfig)
	}
	switch s.Server.Mode {
	case "", "debug", "release", "test":
	default:
		return fmt.Errorf("%w: server.mode must be debug, release or test, got %q", common.ErrInvalidConfig, s.Server.Mode)
	}
	return nil
}

// ArtifactPaths resolves the artifact locations.
func (s Settings) ArtifactPaths() inference.Paths {
	return inference.Paths{
		Preprocessor: resolve(s.Artifacts.Dir, s.Artifacts.Preprocessor),
		Forest:       resolve(s.Artifacts.Dir, s.Artifacts.Forest),
		Boosted:      resolve(s.Artifacts.Dir, s.Artifacts.Boosted),
	}
}

func resolve(dir, name string) string {
	name = ExpandPath(name)
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(ExpandPath(dir), name)
}

// ExpandPath expands a leading ~ and $VAR references in a file path.
func ExpandPath(path string) string {
	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}
