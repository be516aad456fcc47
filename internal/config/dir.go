// Package config provides configuration resolution for hooksmith: the
// global configuration directory and the repo-level .hooksmith.yaml file.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "hooksmith"

// Dir returns the global hooksmith configuration directory. Resolution
// order, first match wins:
//
//	$HOOKSMITH_CONFIG_HOME          explicit override
//	$XDG_CONFIG_HOME/hooksmith      XDG, honored on every platform
//	%AppData%\hooksmith             Windows
//	~/.config/hooksmith             everywhere else
//
// An empty string means the home directory could not be determined.
func Dir() string {
	if dir := os.Getenv("HOOKSMITH_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, appDirName)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}
