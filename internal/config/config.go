package config

import (
	"os"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Render   RenderConfig   `yaml:"render" mapstructure:"render"`
	Generate GenerateConfig `yaml:"generate" mapstructure:"generate"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// PathsConfig locates templates, project files, output and the practice profile.
type PathsConfig struct {
	TemplatesDir  string `yaml:"templates_dir" mapstructure:"templates_dir"`
	DataDir       string `yaml:"data_dir" mapstructure:"data_dir"`
	OutputDir     string `yaml:"output_dir" mapstructure:"output_dir"`
	IssuerProfile string `yaml:"issuer_profile" mapstructure:"issuer_profile"`
}

// RenderConfig selects the PDF form filler.
type RenderConfig struct {
	Provider  string        `yaml:"provider" mapstructure:"provider"` // "pdftk" or "xfdf"
	PdftkPath string        `yaml:"pdftk_path" mapstructure:"pdftk_path"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`   // per pdftk run
	Attempts  int           `yaml:"attempts" mapstructure:"attempts"` // pdftk runs per document
}

// GenerateConfig configures document generation.
type GenerateConfig struct {
	MaxConcurrent   int  `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	IncludeOptional bool `yaml:"include_optional" mapstructure:"include_optional"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	RateLimit      float64  `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second
	RateBurst      int      `yaml:"rate_burst" mapstructure:"rate_burst"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("ARCHIBOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("paths.templates_dir", "cerfa_templates")
	v.SetDefault("paths.data_dir", "cerfa_data")
	v.SetDefault("paths.output_dir", "filled_pdfs")
	v.SetDefault("paths.issuer_profile", "mes_infos.json")
	v.SetDefault("render.provider", "pdftk")
	v.SetDefault("render.pdftk_path", "pdftk")
	v.SetDefault("render.timeout", "60s")
	v.SetDefault("render.attempts", 2)
	v.SetDefault("generate.max_concurrent", 4)
	v.SetDefault("generate.include_optional", false)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 10)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks the settings a command needs. Modes: "analyze", "fill",
// "serve".
func (c *Config) Validate(mode string) error {
	var errs []string

	switch mode {
	case "analyze":
	case "fill":
		errs = append(errs, c.validateFill()...)
	case "serve":
		errs = append(errs, c.validateFill()...)
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			errs = append(errs, "server.port must be > 0 and <= 65535")
		}
		if c.Server.RateLimit <= 0 {
			errs = append(errs, "server.rate_limit must be > 0")
		}
		if c.Server.RateBurst < 1 {
			errs = append(errs, "server.rate_burst must be >= 1")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(errs) > 0 {
		return eris.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (c *Config) validateFill() []string {
	var errs []string
	if c.Paths.TemplatesDir == "" {
		errs = append(errs, "paths.templates_dir is required")
	}
	if c.Paths.OutputDir == "" {
		errs = append(errs, "paths.output_dir is required")
	}
	switch c.Render.Provider {
	case "pdftk":
		if c.Render.PdftkPath == "" {
			errs = append(errs, "render.pdftk_path is required for the pdftk provider")
		}
		if c.Render.Attempts < 1 || c.Render.Attempts > 10 {
			errs = append(errs, "render.attempts must be between 1 and 10")
		}
		if c.Render.Timeout < 0 {
			errs = append(errs, "render.timeout must be >= 0")
		}
	case "xfdf":
	default:
		errs = append(errs, "render.provider must be pdftk or xfdf")
	}
	if c.Generate.MaxConcurrent < 1 || c.Generate.MaxConcurrent > 32 {
		errs = append(errs, "generate.max_concurrent must be between 1 and 32")
	}
	return errs
}

// EnsureDirs creates the data, output and template directories.
func EnsureDirs(p PathsConfig) error {
	for _, dir := range []string{p.TemplatesDir, p.DataDir, p.OutputDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "config: create directory %s", dir)
		}
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
