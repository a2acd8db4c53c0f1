package certgen

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. CERTGEN_OUTPUT_ROOT.
const EnvPrefix = "CERTGEN"

// Config locates the inputs and the output of a run.
type Config struct {
	// Table is the workbook holding one row per recipient.
	Table string `mapstructure:"table"`
	// Sheet is the sheet to read; empty selects Sheet1 or the first sheet.
	Sheet string `mapstructure:"sheet"`
	// Range optionally restricts the table to a cell range or defined name.
	Range string `mapstructure:"range"`
	// TemplatesDir holds the template images named in the Template column.
	TemplatesDir string    `mapstructure:"templates_dir"`
	Fonts        FontPaths `mapstructure:"fonts"`
	// OutputRoot is the graduation folder certificates are written under.
	OutputRoot string    `mapstructure:"output_root"`
	Log        LogConfig `mapstructure:"log"`
}

// FontPaths locates the two fonts drawn with.
type FontPaths struct {
	Name      string `mapstructure:"name"`
	Paragraph string `mapstructure:"paragraph"`
}

// LogConfig selects the log level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Table:        "sample.xlsx",
		Sheet:        "",
		TemplatesDir: "Templates",
		Fonts: FontPaths{
			Name:      "Fonts/times.ttf",
			Paragraph: "Fonts/EBGaramond-Regular.ttf",
		},
		OutputRoot: "Graduation Certificates",
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate checks that every location is set.
func (c Config) Validate() error {
	var missing []string
	for key, value := range map[string]string{
		"table":           c.Table,
		"templates_dir":   c.TemplatesDir,
		"fonts.name":      c.Fonts.Name,
		"fonts.paragraph": c.Fonts.Paragraph,
		"output_root":     c.OutputRoot,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s must be set", ErrInvalidConfig, strings.Join(missing, ", "))
	}
	return nil
}

// SetDefaults registers DefaultConfig on v so that environment variables
// and flags can override every key.
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("table", d.Table)
	v.SetDefault("sheet", d.Sheet)
	v.SetDefault("range", d.Range)
	v.SetDefault("templates_dir", d.TemplatesDir)
	v.SetDefault("fonts.name", d.Fonts.Name)
	v.SetDefault("fonts.paragraph", d.Fonts.Paragraph)
	v.SetDefault("output_root", d.OutputRoot)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// LoadConfig reads configuration into v and returns it.
// Sources in increasing priority: defaults, certgen.yaml (or configFile when
// set), a .env file, CERTGEN_* environment variables, then anything already
// bound or set on v (command-line flags).
func LoadConfig(v *viper.Viper, configFile string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, err
	}

	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: config %s: %v", ErrResourceUnavailable, configFile, err)
		}
	} else {
		v.SetConfigName("certgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadEnvFile loads ./.env when present. Variables already set win.
func loadEnvFile() error {
	if _, err := os.Stat(".env"); err != nil {
		return nil
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("%w: .env: %v", ErrInvalidConfig, err)
	}
	return nil
}
