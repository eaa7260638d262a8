package main

import (
	"os"
	"path/filepath"
	"sync"
)

const appName = "bconf"

// configDir returns the directory holding the tool's own bconf-formatted
// configuration file.
var configDir = sync.OnceValue(func() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err != nil {
			dir, _ = os.Getwd()
		} else {
			dir = filepath.Join(dir, ".config")
		}
	}

	return filepath.Join(dir, appName)
})

// cacheDir returns the directory used for transient files such as profiles.
var cacheDir = sync.OnceValue(func() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err != nil {
			dir, _ = os.Getwd()
		} else {
			dir = filepath.Join(dir, ".cache")
		}
	}

	return filepath.Join(dir, appName)
})

// configPath joins elem onto the configuration directory.
func configPath(elem ...string) string {
	return filepath.Join(append([]string{configDir()}, elem...)...)
}
