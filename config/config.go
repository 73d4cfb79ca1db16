package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSMTPPort      = 587
	DefaultSMTPTimeout   = 10 * time.Second
	DefaultDatabasePath  = "nutrient.db"
	DefaultRecordTimeout = 3 * time.Second
)

// ErrSMTPNotConfigured — не задан один из параметров почтового сервера.
var ErrSMTPNotConfigured = errors.New("SMTP not configured")

type SMTPConfig struct {
	Host     string        `yaml:"host"`
	Port     int           `yaml:"port"`
	User     string        `yaml:"user"`
	Password string        `yaml:"password"`
	From     string        `yaml:"from"`
	Timeout  time.Duration `yaml:"timeout"`
}

// Validate проверяет, что почту можно отправлять, не обращаясь к сети.
func (c SMTPConfig) Validate() error {
	switch {
	case c.Host == "":
		return fmt.Errorf("%w: host is empty", ErrSMTPNotConfigured)
	case c.Port <= 0:
		return fmt.Errorf("%w: port is empty", ErrSMTPNotConfigured)
	case c.User == "" || c.Password == "":
		return fmt.Errorf("%w: credentials are empty", ErrSMTPNotConfigured)
	case c.From == "":
		return fmt.Errorf("%w: from address is empty", ErrSMTPNotConfigured)
	}
	return nil
}

type DatabaseConfig struct {
	Path    string        `yaml:"path"`
	Timeout time.Duration `yaml:"timeout"`
}

type Config struct {
	Telegram struct {
		Token string `yaml:"token"`
	} `yaml:"telegram"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Database DatabaseConfig `yaml:"database"`
}

// Default возвращает конфигурацию со значениями по умолчанию.
func Default() *Config {
	cfg := &Config{}
	cfg.SMTP.Port = DefaultSMTPPort
	cfg.SMTP.Timeout = DefaultSMTPTimeout
	cfg.Database.Path = DefaultDatabasePath
	cfg.Database.Timeout = DefaultRecordTimeout
	return cfg
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Shared загружает конфигурацию один раз за время жизни процесса.
var Shared = sync.OnceValues(Load)

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Telegram.Token, "TELEGRAM_TOKEN")
	setString(&c.SMTP.Host, "SMTP_HOST")
	setString(&c.SMTP.User, "SMTP_USER")
	setString(&c.SMTP.Password, "SMTP_PASS")
	setString(&c.SMTP.From, "SMTP_FROM")

	if v, ok := os.LookupEnv("SMTP_PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid SMTP_PORT %q: %w", v, err)
		}
		c.SMTP.Port = port
	}
	if err := setDuration(&c.SMTP.Timeout, "SMTP_TIMEOUT"); err != nil {
		return err
	}

	// Пустой DATABASE_PATH означает хранение в памяти, поэтому LookupEnv.
	if v, ok := os.LookupEnv("DATABASE_PATH"); ok {
		c.Database.Path = v
	}
	return setDuration(&c.Database.Timeout, "RECORD_TIMEOUT")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	*dst = d
	return nil
}
