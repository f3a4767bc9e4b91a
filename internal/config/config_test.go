package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/churn/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 1000, s.Form.CreditScoreMax)
	assert.Equal(t, ":8501", s.Server.Addr)
	assert.Equal(t, "release", s.Server.Mode)
	assert.Equal(t, "default", s.TUI.Theme)

	paths := s.ArtifactPaths()
	assert.Equal(t, filepath.Join("artifacts", "preprocessor.json"), paths.Preprocessor)
	assert.Equal(t, filepath.Join("artifacts", "random_forest.json"), paths.Forest)
	assert.Equal(t, filepath.Join("artifacts", "xgboost.json"), paths.Boosted)
}

func TestLoad_FromYAML(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(`
artifacts:
  dir: /srv/models
  boosted: /opt/other/xgb.json
form:
  credit_score_max: 0
server:
  addr: 127.0.0.1:9000
  mode: debug
`)))

	s, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 0, s.Form.CreditScoreMax)
	assert.Equal(t, "127.0.0.1:9000", s.Server.Addr)

	paths := s.ArtifactPaths()
	assert.Equal(t, "/srv/models/preprocessor.json", paths.Preprocessor)
	assert.Equal(t, "/opt/other/xgb.json", paths.Boosted)
}

func TestSettings_Validate(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	base, err := Load(v)
	require.NoError(t, err)

	missing := base
	missing.Artifacts.Forest = ""
	assert.ErrorIs(t, missing.Validate(), common.ErrMissingConfig)

	negative := base
	negative.Form.CreditScoreMax = -1
	assert.ErrorIs(t, negative.Validate(), common.ErrInvalidConfig)

	badMode := base
	badMode.Server.Mode = "production"
	assert.ErrorIs(t, badMode.Validate(), common.ErrInvalidConfig)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("CHURN_TEST_DIR", "/data")

	tests := []struct {
		input string
		want  string
	}{
		{input: "", want: ""},
		{input: "~", want: home},
		{input: "~/models/x.json", want: filepath.Join(home, "models/x.json")},
		{input: "$CHURN_TEST_DIR/x.json", want: "/data/x.json"},
		{input: "relative/x.json", want: "relative/x.json"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.input))
		})
	}
}
