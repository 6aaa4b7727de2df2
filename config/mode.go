package config

import (
	"os"
	"strings"
)

// ModeEnv selects which layered configuration files are loaded.
const ModeEnv = "PLMINIFY_MODE"

type Mode string

const (
	DevMode  Mode = "development"
	ProMode  Mode = "production"
	TestMode Mode = "test"
)

func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production", "prod", "pro":
		return ProMode
	case "test", "testing":
		return TestMode
	default:
		return DevMode
	}
}

// CurrentMode reads the mode from the environment.
func CurrentMode() Mode {
	return ParseMode(os.Getenv(ModeEnv))
}

// aliases lists the file suffixes accepted for a mode.
func (m Mode) aliases() []string {
	switch m {
	case ProMode:
		return []string{"production", "prod", "pro"}
	case TestMode:
		return []string{"test"}
	default:
		return []string{"development", "dev"}
	}
}
