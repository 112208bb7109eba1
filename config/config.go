package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type ServerConfig struct {
	Port        string `yaml:"port"`
	MetricsPort string `yaml:"metrics_port"`
}

// AssistConfig 可选的 AI 辅助分析服务；BaseURL 为空表示禁用
type AssistConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// AnalysisConfig 分析引擎配置
type AnalysisConfig struct {
	// CorpusFile 关键词表覆盖文件（可选）
	CorpusFile string `yaml:"corpus_file"`
}

// DigestConfig 晨报摘要配置
type DigestConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
	DefaultHours    int `yaml:"default_hours"`
}

type Config struct {
	DB       DBConfig       `yaml:"db"`
	MQ       MQConfig       `yaml:"mq"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Server   ServerConfig   `yaml:"server"`
	Assist   AssistConfig   `yaml:"assist"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Digest   DigestConfig   `yaml:"digest"`
}

func Load() *Config {
	f, err := os.Open("config.yaml")
	if err != nil {
		log.Fatalf("failed to open config.yaml: %v", err)
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		log.Fatalf("failed to decode config.yaml: %v", err)
	}

	applyDefaults(&cfg)

	// 环境变量覆盖（生产环境使用）
	overrideFromEnv(&cfg)

	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Assist.TimeoutSeconds == 0 {
		cfg.Assist.TimeoutSeconds = 5
	}
	if cfg.Digest.CacheTTLSeconds == 0 {
		cfg.Digest.CacheTTLSeconds = 600
	}
	if cfg.Digest.DefaultHours == 0 {
		cfg.Digest.DefaultHours = 24
	}
	if cfg.Server.MetricsPort == "" {
		cfg.Server.MetricsPort = ":9091"
	}
}

func overrideFromEnv(cfg *Config) {
	// DB配置
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.DB.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.DB.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.DB.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.DB.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.DB.Name = name
	}

	// MQ配置
	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	// Redis配置
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}

	// JWT配置
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	// Server配置
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}

	// Assist配置
	if url := os.Getenv("ASSIST_BASE_URL"); url != "" {
		cfg.Assist.BaseURL = url
	}
	if timeout := os.Getenv("ASSIST_TIMEOUT_SECONDS"); timeout != "" {
		if t, err := strconv.Atoi(timeout); err == nil {
			cfg.Assist.TimeoutSeconds = t
		}
	}

	// 分析配置
	if file := os.Getenv("ANALYSIS_CORPUS_FILE"); file != "" {
		cfg.Analysis.CorpusFile = file
	}
}
