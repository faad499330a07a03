// Package config resolves feeschart settings from flags, FEESCHART_*
// environment variables and defaults through viper.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/HaPhanBaoMinh/feeschart/internal/chart"
	"github.com/HaPhanBaoMinh/feeschart/internal/infrastructure/llama"
)

const EnvPrefix = "feeschart"

// viper keys
const (
	KeyBaseURL      = "base_url"
	KeyProtocol     = "protocol"
	KeyDataType     = "data_type"
	KeyFetchTimeout = "fetch_timeout"
	KeyTimezone     = "timezone"
	KeyTimeLayout   = "time_layout"
	KeyLogFile      = "log_file"
	KeyLogLevel     = "log_level"
	KeyMetricsAddr  = "metrics_addr"
	KeyMock         = "mock"
	KeyLocale       = "locale"
	KeyDebugHTTP    = "debug_http"
)

type Config struct {
	BaseURL      string
	Protocol     string
	DataType     string
	FetchTimeout time.Duration
	Location     *time.Location
	TimeLayout   string
	LogFile      string
	LogLevel     string
	MetricsAddr  string
	Mock         bool
	DebugHTTP    bool
}

func DefaultLogFile() string {
	return filepath.Join(homeDir(), ".feeschart", "feeschart.log")
}

func homeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if u, err := user.Current(); err == nil {
		return u.HomeDir
	}
	// Windows
	if h := os.Getenv("USERPROFILE"); h != "" {
		return h
	}
	return "."
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, llama.DefaultBaseURL)
	v.SetDefault(KeyProtocol, llama.DefaultProtocol)
	v.SetDefault(KeyDataType, llama.DefaultDataType)
	v.SetDefault(KeyFetchTimeout, time.Duration(0))
	v.SetDefault(KeyTimezone, "Local")
	v.SetDefault(KeyTimeLayout, "")
	v.SetDefault(KeyLocale, "")
	v.SetDefault(KeyLogFile, DefaultLogFile())
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyMetricsAddr, "")
	v.SetDefault(KeyMock, false)
	v.SetDefault(KeyDebugHTTP, false)
}

// BindEnv makes every key readable from FEESCHART_<KEY>.
func BindEnv(v *viper.Viper) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, k := range []string{
		KeyBaseURL, KeyProtocol, KeyDataType, KeyFetchTimeout, KeyTimezone,
		KeyTimeLayout, KeyLogFile, KeyLogLevel, KeyMetricsAddr, KeyMock,
		KeyLocale, KeyDebugHTTP,
	} {
		if err := v.BindEnv(k); err != nil {
			return fmt.Errorf("bind %s: %w", k, err)
		}
	}
	return nil
}

func Load(v *viper.Viper) (Config, error) {
	c := Config{
		BaseURL:      strings.TrimSpace(v.GetString(KeyBaseURL)),
		Protocol:     strings.TrimSpace(v.GetString(KeyProtocol)),
		DataType:     strings.TrimSpace(v.GetString(KeyDataType)),
		FetchTimeout: v.GetDuration(KeyFetchTimeout),
		TimeLayout:   v.GetString(KeyTimeLayout),
		LogFile:      v.GetString(KeyLogFile),
		LogLevel:     v.GetString(KeyLogLevel),
		MetricsAddr:  v.GetString(KeyMetricsAddr),
		Mock:         v.GetBool(KeyMock),
		DebugHTTP:    v.GetBool(KeyDebugHTTP),
	}
	if c.BaseURL == "" {
		return Config{}, fmt.Errorf("%s must be set", KeyBaseURL)
	}
	if c.Protocol == "" {
		return Config{}, fmt.Errorf("%s must be set", KeyProtocol)
	}
	if c.DataType == "" {
		return Config{}, fmt.Errorf("%s must be set", KeyDataType)
	}
	if c.FetchTimeout < 0 {
		return Config{}, fmt.Errorf("%s must not be negative", KeyFetchTimeout)
	}
	loc, err := time.LoadLocation(v.GetString(KeyTimezone))
	if err != nil {
		return Config{}, fmt.Errorf("load timezone: %w", err)
	}
	c.Location = loc
	// an explicit layout wins over the locale
	if c.TimeLayout == "" {
		locale := strings.TrimSpace(v.GetString(KeyLocale))
		if locale == "" {
			locale = chart.LocaleFromEnv(os.Getenv)
		}
		c.TimeLayout = chart.LayoutForLocale(locale)
	}
	return c, nil
}

func (c Config) LlamaConfig() *llama.Config {
	return &llama.Config{
		BaseURL:  c.BaseURL,
		Protocol: c.Protocol,
		DataType: c.DataType,
		Timeout:  c.FetchTimeout,
		Debug:    c.DebugHTTP,
	}
}
