package configloader

import (
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"contract_cli/internal/pkg/utils"
)

// Environment variables read by LoadSettings.
const (
	EnvConfigPath       = "CONTRACT_CLI_CONFIG"
	EnvAPIKey           = "CONTRACT_CLI_API_KEY"
	EnvLogLevel         = "CONTRACT_CLI_LOG_LEVEL"
	EnvRequestTimeoutMS = "CONTRACT_CLI_REQUEST_TIMEOUT_MS"
)

// Settings are process-level options taken from the environment. Flags override them.
type Settings struct {
	ConfigPath string
	APIKey     string
	LogLevel   string
	// RequestTimeout is zero unless explicitly configured.
	RequestTimeout time.Duration
}

// LoadSettings reads Settings from the environment.
func LoadSettings() Settings {
	s := Settings{
		ConfigPath: utils.GetEnv(EnvConfigPath, DefaultConfigFile),
		APIKey:     utils.GetEnv(EnvAPIKey, ""),
		LogLevel:   utils.GetEnv(EnvLogLevel, "warn"),
	}
	if raw := utils.GetEnv(EnvRequestTimeoutMS, ""); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms < 0 {
			logrus.Warnf("%s=%q is not a valid millisecond count, ignoring", EnvRequestTimeoutMS, raw)
		} else {
			s.RequestTimeout = time.Duration(ms) * time.Millisecond
		}
	}
	return s
}
