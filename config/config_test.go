package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "TELEGRAM_TOKEN", "SMTP_HOST", "SMTP_PORT", "SMTP_USER",
	"SMTP_PASS", "SMTP_FROM", "SMTP_TIMEOUT", "DATABASE_PATH", "RECORD_TIMEOUT",
}

// clearEnv снимает переменные окружения; t.Setenv вернёт их после теста.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, DefaultSMTPPort, cfg.SMTP.Port)
	require.Equal(t, DefaultSMTPTimeout, cfg.SMTP.Timeout)
	require.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	require.Equal(t, DefaultRecordTimeout, cfg.Database.Timeout)
	require.ErrorIs(t, cfg.SMTP.Validate(), ErrSMTPNotConfigured)
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("TELEGRAM_TOKEN", "tg")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("SMTP_USER", "user")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("SMTP_FROM", "alerts@example.com")
	t.Setenv("SMTP_TIMEOUT", "2s")
	t.Setenv("DATABASE_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "tg", cfg.Telegram.Token)
	require.Equal(t, 2525, cfg.SMTP.Port)
	require.Equal(t, 2*time.Second, cfg.SMTP.Timeout)
	require.Empty(t, cfg.Database.Path)
	require.NoError(t, cfg.SMTP.Validate())
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
smtp:
  host: file.example.com
  port: 465
  user: file-user
  password: file-pass
  from: file@example.com
  timeout: 5s
database:
  path: /tmp/records.db
`), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("SMTP_HOST", "env.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "env.example.com", cfg.SMTP.Host)
	require.Equal(t, 465, cfg.SMTP.Port)
	require.Equal(t, "file-user", cfg.SMTP.User)
	require.Equal(t, 5*time.Second, cfg.SMTP.Timeout)
	require.Equal(t, "/tmp/records.db", cfg.Database.Path)
	require.Equal(t, DefaultRecordTimeout, cfg.Database.Timeout)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnv(t)
	t.Setenv("SMTP_PORT", "abc")

	_, err := Load()
	require.Error(t, err)
}

func TestSMTPConfig_Validate(t *testing.T) {
	full := SMTPConfig{Host: "h", Port: 587, User: "u", Password: "p", From: "f@example.com"}
	require.NoError(t, full.Validate())

	cases := map[string]func(c *SMTPConfig){
		"host":     func(c *SMTPConfig) { c.Host = "" },
		"port":     func(c *SMTPConfig) { c.Port = 0 },
		"user":     func(c *SMTPConfig) { c.User = "" },
		"password": func(c *SMTPConfig) { c.Password = "" },
		"from":     func(c *SMTPConfig) { c.From = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := full
			mutate(&c)
			require.ErrorIs(t, c.Validate(), ErrSMTPNotConfigured)
		})
	}
}
