// ABOUTME: Layered configuration: defaults, optional deskgen.yaml, .env and DESKGEN_ env vars.
// ABOUTME: Produces the Config every stage reads its knobs from.

package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	apperrors "github.com/2389/deskgen/internal/errors"
	"github.com/2389/deskgen/internal/model"
)

type Config struct {
	DataDir       string          `mapstructure:"data_dir"`
	Seed          int64           `mapstructure:"seed"`
	ReferenceDate string          `mapstructure:"reference_date"`
	Customers     CustomersConfig `mapstructure:"customers"`
	Logger        LoggerConfig    `mapstructure:"logger"`
	Store         StoreConfig     `mapstructure:"store"`
	OpenAI        OpenAIConfig    `mapstructure:"openai"`
}

type CustomersConfig struct {
	Targets map[string]int `mapstructure:"targets"`
	Cap     int            `mapstructure:"cap"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type StoreConfig struct {
	// Path of the SQLite export. Empty disables run recording.
	Path string `mapstructure:"path"`
}

type OpenAIConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model"`
	BatchSize int    `mapstructure:"batch_size"`
}

// DefaultTargets is the per-type organization mix.
var DefaultTargets = map[string]int{
	string(model.OrgFaith):       640,
	string(model.OrgSchool):      200,
	string(model.OrgNonprofit):   100,
	string(model.OrgChildcare):   40,
	string(model.OrgCommunityEd): 20,
}

// Load reads configuration. configFile may be empty, in which case deskgen.yaml is
// searched in ./ and ./configs and is optional.
func Load(configFile string) (*Config, error) {
	loadDotEnv()

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("DESKGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// unprefixed names the OpenAI tooling already uses
	v.BindEnv("openai.api_key", "DESKGEN_OPENAI_API_KEY", "OPENAI_API_KEY")
	v.BindEnv("openai.model", "DESKGEN_OPENAI_MODEL", "OPENAI_MODEL")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInvalidConfig, "failed to read config file", err).WithPath(configFile)
		}
	} else {
		v.SetConfigName("deskgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) {
				return nil, apperrors.Wrap(apperrors.ErrInvalidConfig, "failed to read config file", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInvalidConfig, "failed to unmarshal config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration without reading files or the environment.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// defaults are plain literals; Unmarshal cannot fail on them
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "data")
	v.SetDefault("seed", 0)
	v.SetDefault("reference_date", "2024-11-20")

	v.SetDefault("customers.targets", DefaultTargets)
	v.SetDefault("customers.cap", 1000)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")

	v.SetDefault("store.path", "")

	v.SetDefault("openai.enabled", false)
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model", "gpt-5-mini")
	v.SetDefault("openai.batch_size", 20)
}

// loadDotEnv loads .env from the current dir, its parents, then the home directory.
func loadDotEnv() {
	for _, p := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}
	if home, err := os.UserHomeDir(); err == nil {
		godotenv.Load(filepath.Join(home, ".env"))
	}
}

// Validate checks values that would otherwise fail deep inside a stage.
func (c *Config) Validate() error {
	if _, err := c.Reference(); err != nil {
		return err
	}
	if c.Customers.Cap <= 0 {
		return apperrors.New(apperrors.ErrInvalidConfig, "customers.cap must be positive").WithField("customers.cap")
	}
	for orgType, n := range c.Customers.Targets {
		if n < 0 {
			return apperrors.New(apperrors.ErrInvalidConfig, "customer target must not be negative").
				WithField("customers.targets." + orgType)
		}
	}
	if c.OpenAI.BatchSize <= 0 {
		return apperrors.New(apperrors.ErrInvalidConfig, "openai.batch_size must be positive").WithField("openai.batch_size")
	}
	return nil
}

// Reference is the "now" every stage measures ages against.
func (c *Config) Reference() (time.Time, error) {
	t, err := time.Parse(model.DateLayout, c.ReferenceDate)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.ErrInvalidConfig, "invalid reference_date", err).WithField("reference_date")
	}
	return t, nil
}

// Target returns the configured organization count for one type.
func (c *Config) Target(t model.OrgType) int {
	return c.Customers.Targets[string(t)]
}

// ResolveSeed returns the configured seed, or a clock-derived one when it is 0.
func (c *Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func (c *Config) String() string {
	return fmt.Sprintf("data_dir=%s seed=%d reference_date=%s", c.DataDir, c.Seed, c.ReferenceDate)
}
