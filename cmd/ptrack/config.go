package main

import (
	"os"
	"path/filepath"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"
)

// Config holds defaults that would otherwise have to be passed on the
// command line with every invocation.
type Config struct {
	Concurrency int
	BarWidth    int
}

var cfg = Config{
	Concurrency: 4,
	BarWidth:    50,
}

// configFile returns the config file location, either from --config or the
// default in the user's config directory.
func configFile() string {
	if cfgFile != "" {
		return cfgFile
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ptrack", "config.ini")
}

// loadConfig reads the defaults section of an INI file on top of the
// built-in defaults.
func loadConfig(name string) (Config, error) {
	c := cfg
	f, err := ini.Load(name)
	if err != nil {
		return c, errors.Wrap(err, "reading config file")
	}
	sec := f.Section("defaults")
	if sec.HasKey("concurrency") {
		c.Concurrency, err = sec.Key("concurrency").Int()
		if err != nil {
			return c, errors.Wrap(err, "concurrency in config file")
		}
	}
	if sec.HasKey("bar-width") {
		c.BarWidth, err = sec.Key("bar-width").Int()
		if err != nil {
			return c, errors.Wrap(err, "bar-width in config file")
		}
	}
	return c, nil
}

// initConfig runs on startup and loads the config file if there is one. A
// missing default config file is fine, a missing --config file is not.
func initConfig() {
	name := configFile()
	if name == "" {
		return
	}
	if _, err := os.Stat(name); err != nil {
		if cfgFile != "" {
			die(errors.Wrap(err, "config file"))
		}
		return
	}
	c, err := loadConfig(name)
	if err != nil {
		die(err)
	}
	cfg = c
}
