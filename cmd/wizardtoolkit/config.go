package main

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const stateDirName = ".wizard"
const defaultKeyringName = "keyring.xdm"

// homeDir resolves the per-user state directory per spec.md §6:
// WIZARD_HOME overrides; otherwise HOME (or USERPROFILE on Windows) plus a
// .wizard subdirectory, created mode 0700 on first use.
func homeDir() (string, error) {
	if flagHome := viper.GetString("home"); flagHome != "" {
		return ensureDir(flagHome)
	}
	if envHome := os.Getenv("WIZARD_HOME"); envHome != "" {
		return ensureDir(envHome)
	}

	base := os.Getenv("HOME")
	if base == "" {
		base = os.Getenv("USERPROFILE")
	}
	if base == "" {
		base, _ = os.UserHomeDir()
	}
	return ensureDir(filepath.Join(base, stateDirName))
}

func ensureDir(path string) (string, error) {
	if err := os.MkdirAll(path, 0o700); err != nil {
		return "", err
	}
	return path, nil
}

func defaultKeyringPath() (string, error) {
	dir, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, defaultKeyringName), nil
}
