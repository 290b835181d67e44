package config

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// Config holds all configuration for the sales dashboard renderer
type Config struct {
	// Server configuration
	Port string `env:"PORT,default=8981" validate:"required,numeric"`

	// Backend API the chart datasets are read from
	APIBaseURL   string        `env:"API_BASE_URL,default=http://localhost:5000" validate:"required,url"`
	APIToken     string        `env:"API_TOKEN"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT,default=0s" validate:"gte=0"`
	LoginPath    string        `env:"LOGIN_PATH,default=/login" validate:"required,startswith=/"`

	// Theme configuration
	ThemeFile         string        `env:"THEME_FILE"`
	DefaultTheme      string        `env:"DEFAULT_THEME,default=light" validate:"required"`
	ThemeSettleDelay  time.Duration `env:"THEME_SETTLE_DELAY,default=100ms" validate:"gte=0"`
	ScatterColorMode  string        `env:"SCATTER_COLOR_MODE,default=hashed" validate:"oneof=hashed random"`
	DiscardStaleLoads bool          `env:"DISCARD_STALE_RENDERS,default=false"`

	// Local testing configuration
	MockupMode bool   `env:"MOCKUP_MODE,default=false"`
	MockToken  string `env:"MOCK_API_TOKEN"`

	// Snapshot archive
	StorageMode       string `env:"STORAGE_MODE,default=local" validate:"oneof=local gcs"`
	LocalSnapshotsDir string `env:"LOCAL_SNAPSHOTS_DIR,default=./snapshots"`
	GCPProjectID      string `env:"GCP_PROJECT_ID"`
	GCSBucket         string `env:"GCS_BUCKET" validate:"required_if=StorageMode gcs"`

	// Service configuration
	Environment string `env:"ENVIRONMENT,default=development"`
	LogLevel    string `env:"LOG_LEVEL,default=info"`
	LogFormat   string `env:"LOG_FORMAT,default=json" validate:"oneof=json text console"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// Load loads configuration from environment variables
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints that envconfig cannot express.
func (c *Config) Validate() error {
	if err := validatorInstance().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
