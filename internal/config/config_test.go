package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "wodcal.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoad_FileOverDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("WODCAL_JWT_KEY", "")
	p := writeFile(t, `
addr: ":9000"
jwt_key: "from-file"
access_ttl: 2h
limiter:
  max_fails: 3
ai:
  model: gemini-test
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr)
	require.Equal(t, "from-file", cfg.JWTKey)
	require.Equal(t, 2*time.Hour, cfg.AccessTTL)
	require.Equal(t, 3, cfg.Limiter.MaxFails)
	require.Equal(t, 15*time.Minute, cfg.Limiter.Window)
	require.Equal(t, "gemini-test", cfg.AI.Model)
	require.Empty(t, cfg.AI.APIKey)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "addr: [unterminated"))
	require.Error(t, err)
}

func TestParse_Precedence(t *testing.T) {
	t.Setenv("WODCAL_JWT_KEY", "from-env")
	t.Setenv("GEMINI_API_KEY", "gk")
	p := writeFile(t, "addr: \":9000\"\njwt_key: from-file\n")

	cfg, err := Parse([]string{"-config", p, "-dev"})
	require.NoError(t, err)
	require.Equal(t, ":9000", cfg.Addr)
	require.Equal(t, "from-env", cfg.JWTKey)
	require.Equal(t, "gk", cfg.AI.APIKey)
	require.True(t, cfg.Dev)
	require.False(t, cfg.MigrateStatus)

	cfg, err = Parse([]string{"-config", p, "-addr", ":7000", "-jwt-key", "from-flag"})
	require.NoError(t, err)
	require.Equal(t, ":7000", cfg.Addr)
	require.Equal(t, "from-flag", cfg.JWTKey)
	require.True(t, cfg.UseTLS())

	cfg, err = Parse([]string{"-config", p, "-migrate-status"})
	require.NoError(t, err)
	require.True(t, cfg.MigrateStatus)
}

func TestValidate(t *testing.T) {
	t.Setenv("WODCAL_JWT_KEY", "")

	_, err := Parse(nil)
	require.ErrorContains(t, err, "jwt")

	cfg := Default()
	cfg.JWTKey = "k"
	cfg.TLS = TLSConfig{}
	require.ErrorContains(t, cfg.Validate(), "tls")
	cfg.Dev = true
	require.NoError(t, cfg.Validate())
	require.False(t, cfg.UseTLS())
}
