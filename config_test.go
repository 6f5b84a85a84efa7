/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		chatBurst:      5,
		chatRate:       2,
		maxMessageSize: 1024,
		port:           8080,
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "words.csv")
	require.NoError(t, os.WriteFile(words, []byte("kite\nboat\ntrain\n"), 0o600))
	short := filepath.Join(dir, "short.csv")
	require.NoError(t, os.WriteFile(short, []byte("kite\n"), 0o600))

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}},
		{name: "tls pair", mutate: func(c *Config) { c.tlsCert, c.tlsKey = "a.pem", "a.key" }},
		{name: "tls cert only", mutate: func(c *Config) { c.tlsCert = "a.pem" }, wantErr: true},
		{name: "port zero", mutate: func(c *Config) { c.port = 0 }, wantErr: true},
		{name: "port too high", mutate: func(c *Config) { c.port = 70000 }, wantErr: true},
		{name: "negative choose timeout", mutate: func(c *Config) { c.chooseTimeout = -time.Second }, wantErr: true},
		{name: "negative round timeout", mutate: func(c *Config) { c.roundTimeout = -time.Second }, wantErr: true},
		{name: "zero chat rate", mutate: func(c *Config) { c.chatRate = 0 }, wantErr: true},
		{name: "zero chat burst", mutate: func(c *Config) { c.chatBurst = 0 }, wantErr: true},
		{name: "zero message size", mutate: func(c *Config) { c.maxMessageSize = 0 }, wantErr: true},
		{name: "word file", mutate: func(c *Config) { c.words = words }},
		{name: "short word file", mutate: func(c *Config) { c.words = short }, wantErr: true},
		{name: "missing word file", mutate: func(c *Config) { c.words = filepath.Join(dir, "nope.csv") }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, cfg.pool)
		})
	}
}

func TestConfigScheme(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "http", cfg.scheme())

	cfg.tlsCert, cfg.tlsKey = "a.pem", "a.key"
	assert.Equal(t, "https", cfg.scheme())
}

func TestNewCmdDefaults(t *testing.T) {
	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, "0.0.0.0", cfg.bind)
	assert.Equal(t, 8080, cfg.port)
	assert.Equal(t, 5, cfg.chatBurst)
	assert.InDelta(t, 2.0, cfg.chatRate, 0.0001)
	assert.Zero(t, cfg.chooseTimeout)
	assert.Zero(t, cfg.roundTimeout)
	assert.Equal(t, int64(64*1024), cfg.maxMessageSize)
	assert.False(t, cfg.debug)
}

func TestNewCmdEnvironment(t *testing.T) {
	t.Setenv("SCRIBBLE_PORT", "9090")
	t.Setenv("SCRIBBLE_CHOOSE_TIMEOUT", "30s")
	t.Setenv("SCRIBBLE_VERBOSE", "true")
	t.Setenv("SCRIBBLE_DEBUG", "true")

	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.ParseFlags(nil))

	assert.Equal(t, 9090, cfg.port)
	assert.Equal(t, 30*time.Second, cfg.chooseTimeout)
	assert.True(t, cfg.verbose)
	assert.True(t, cfg.debug)
}

func TestNewCmdFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("SCRIBBLE_PORT", "9090")

	cfg := &Config{}
	cmd := newCmd(cfg)
	require.NoError(t, cmd.ParseFlags([]string{"--port", "7000", "--round_timeout", "2m"}))

	assert.Equal(t, 7000, cfg.port)
	assert.Equal(t, 2*time.Minute, cfg.roundTimeout)
}

func TestNewCmdRejectsArgs(t *testing.T) {
	cmd := newCmd(&Config{})
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})

	assert.Error(t, cmd.Execute())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))

	const key = "SCRIBBLE_TEST_DOTENV_VALUE"
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-file\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv(key))
}

func TestNewLogger(t *testing.T) {
	var quiet, loud bytes.Buffer

	q := newLogger(&quiet, false, false)
	q.Info().Msg("hidden")
	q.Error().Msg("shown")
	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "shown")

	l := newLogger(&loud, true, false)
	l.Info().Msg("visible")
	l.Debug().Msg("internal")
	assert.Contains(t, loud.String(), "visible")
	assert.NotContains(t, loud.String(), "internal")

	var trace bytes.Buffer
	d := newLogger(&trace, false, true)
	d.Debug().Msg("word chosen")
	assert.Contains(t, trace.String(), "word chosen")
}
