package scene3d

import (
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds the scene settings.
type Config struct {
	// Workers used by Scene.Update to compute world bounds
	Workers int `yaml:"workers"`

	// Defaults given to nodes created through the scene
	MatrixAutoUpdate bool       `yaml:"matrix_auto_update"`
	DefaultUp        [3]float64 `yaml:"default_up,flow"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level       string `yaml:"level"` // debug, info, warn, error
	Development bool   `yaml:"development"`
}

func DefaultConfig() Config {
	return Config{
		Workers:          DEFAULT_WORKERS,
		MatrixAutoUpdate: true,
		DefaultUp:        [3]float64{0, 1, 0},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadConfig reads a YAML file over the defaults. A missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "failed to read config")
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to parse config")
	}

	return cfg, cfg.Validate()
}

// Save writes the configuration as YAML.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(err, "failed to write config")
	}
	return nil
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return errors.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if mgl64.Vec3(c.DefaultUp).LenSqr() == 0 {
		return errors.New("default_up must not be the zero vector")
	}
	if _, err := c.Logging.level(); err != nil {
		return err
	}
	return nil
}

func (c LoggingConfig) level() (zapcore.Level, error) {
	var level zapcore.Level
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return level, errors.Wrapf(err, "invalid log level %q", c.Level)
	}
	return level, nil
}

// Build creates a zap logger from the configuration.
func (c LoggingConfig) Build() (*zap.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	if c.Development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)

	return config.Build()
}

// Logger builds the logger described by the logging section.
func (c Config) Logger() (*zap.Logger, error) {
	return c.Logging.Build()
}
