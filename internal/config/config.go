package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Backend  BackendConfig  `mapstructure:"backend"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Models   ModelsConfig   `mapstructure:"models"`
	Export   ExportConfig   `mapstructure:"export"`
	Log      LogConfig      `mapstructure:"log"`
	Server   ServerConfig   `mapstructure:"server"`
	CORS     CORSConfig     `mapstructure:"cors"`
}

// BackendConfig 远端多 Agent 构建服务的连接配置
type BackendConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type PipelineConfig struct {
	// 回放动画每步间隔，默认 400ms
	StepDelay time.Duration `mapstructure:"step_delay"`
}

type ModelsConfig struct {
	Available []string          `mapstructure:"available"`
	Defaults  map[string]string `mapstructure:"defaults"`
}

type ExportConfig struct {
	Dir              string `mapstructure:"dir"`
	BackendFilename  string `mapstructure:"backend_filename"`
	FrontendFilename string `mapstructure:"frontend_filename"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// ServerConfig 本地模拟后端（pocd）使用
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxHeaderBytes int           `mapstructure:"max_header_bytes"`
}

type CORSConfig struct {
	AllowedOrigins   []string `mapstructure:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age"`
}

var cfg *Config

func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("POCB")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	cfg = &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// 配置文件优先，配置文件中没有设置时回退到环境变量
	if cfg.Backend.BaseURL == "" {
		if baseURL := os.Getenv("POCB_BACKEND_URL"); baseURL != "" {
			cfg.Backend.BaseURL = baseURL
		}
	}

	applyDefaults(cfg)

	return cfg, nil
}

func Get() *Config {
	return cfg
}

func applyDefaults(c *Config) {
	if c.Backend.BaseURL == "" {
		c.Backend.BaseURL = "http://localhost:5000"
	}
	if c.Backend.Timeout == 0 {
		c.Backend.Timeout = 5 * time.Minute
	}
	if c.Pipeline.StepDelay == 0 {
		c.Pipeline.StepDelay = 400 * time.Millisecond
	}
	if len(c.Models.Available) == 0 {
		c.Models.Available = []string{"gemini-2.5-flash", "gemini-2.5-pro"}
	}
	if c.Export.BackendFilename == "" {
		c.Export.BackendFilename = "backend.py"
	}
	if c.Export.FrontendFilename == "" {
		c.Export.FrontendFilename = "frontend.html"
	}
	if c.Export.Dir == "" {
		c.Export.Dir = "./exports"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
}
