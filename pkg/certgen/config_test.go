package certgen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), *cfg)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "certgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
table: batch12.xlsx
sheet: Graduates
templates_dir: art
fonts:
  name: fonts/name.ttf
output_root: 12th Graduation Certificates
log:
  format: json
`), 0o644))
	t.Setenv("CERTGEN_FONTS_PARAGRAPH", "fonts/body.ttf")
	t.Setenv("CERTGEN_OUTPUT_ROOT", "13th Graduation Certificates")

	cfg, err := LoadConfig(viper.New(), path)
	require.NoError(t, err)

	assert.Equal(t, "batch12.xlsx", cfg.Table)
	assert.Equal(t, "Graduates", cfg.Sheet)
	assert.Equal(t, "art", cfg.TemplatesDir)
	assert.Equal(t, "fonts/name.ttf", cfg.Fonts.Name)
	assert.Equal(t, "fonts/body.ttf", cfg.Fonts.Paragraph)
	assert.Equal(t, "13th Graduation Certificates", cfg.OutputRoot, "environment beats the file")
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfigSetWins(t *testing.T) {
	v := viper.New()
	v.Set("output_root", "from-flag")
	t.Setenv("CERTGEN_OUTPUT_ROOT", "from-env")

	cfg, err := LoadConfig(v, "")
	require.NoError(t, err)
	assert.Equal(t, "from-flag", cfg.OutputRoot)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}

func TestLoadConfigEnvFile(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("CERTGEN_SHEET=Graduates\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("CERTGEN_SHEET") })

	cfg, err := LoadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "Graduates", cfg.Sheet)
}

func TestLoadConfigMalformedEnvFile(t *testing.T) {
	chdir(t, t.TempDir())
	require.NoError(t, os.WriteFile(".env", []byte("CERTGEN-SHEET=Graduates\n"), 0o644))

	_, err := LoadConfig(viper.New(), "")
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), ".env")
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.OutputRoot = " "
	cfg.Fonts.Name = ""
	err := cfg.Validate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.EqualError(t, err, "invalid configuration: fonts.name, output_root must be set")
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for Go < 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
