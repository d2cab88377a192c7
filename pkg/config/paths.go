package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvVCLinkConfig = "VCLINK_CONFIG"
	EnvVCLinkHome   = "VCLINK_HOME"
)

type RuntimePaths struct {
	HomeDir    string
	ConfigPath string
}

func ResolveRuntimePaths() RuntimePaths {
	if configPath := expandHome(strings.TrimSpace(os.Getenv(EnvVCLinkConfig))); configPath != "" {
		return buildRuntimePaths(filepath.Dir(configPath), configPath)
	}

	homeDir := expandHome(strings.TrimSpace(os.Getenv(EnvVCLinkHome)))
	if homeDir == "" {
		homeDir = defaultVCLinkHome()
	}

	return buildRuntimePaths(homeDir, filepath.Join(homeDir, "config.json"))
}

func defaultVCLinkHome() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".vclink"
	}
	return filepath.Join(home, ".vclink")
}

func buildRuntimePaths(homeDir, configPath string) RuntimePaths {
	return RuntimePaths{
		HomeDir:    homeDir,
		ConfigPath: configPath,
	}
}

func expandHome(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
