package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	name := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, ioutil.WriteFile(name, []byte("[defaults]\nconcurrency = 8\nbar-width = 30\n"), 0644))

	c, err := loadConfig(name)
	require.NoError(t, err)
	require.Equal(t, 8, c.Concurrency)
	require.Equal(t, 30, c.BarWidth)
}

func TestLoadConfigPartial(t *testing.T) {
	name := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, ioutil.WriteFile(name, []byte("[defaults]\nconcurrency = 16\n"), 0644))

	c, err := loadConfig(name)
	require.NoError(t, err)
	require.Equal(t, 16, c.Concurrency)
	require.Equal(t, 50, c.BarWidth, "unset keys keep their defaults")
}

func TestLoadConfigErrors(t *testing.T) {
	for _, test := range []struct {
		name    string
		content string
	}{
		{"bad concurrency", "[defaults]\nconcurrency = many\n"},
		{"bad bar width", "[defaults]\nbar-width = wide\n"},
	} {
		t.Run(test.name, func(t *testing.T) {
			name := filepath.Join(t.TempDir(), "config.ini")
			require.NoError(t, ioutil.WriteFile(name, []byte(test.content), 0644))
			_, err := loadConfig(name)
			require.Error(t, err)
		})
	}
}

func TestLoadConfigMissing(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.ini"))
	require.Error(t, err)
}
