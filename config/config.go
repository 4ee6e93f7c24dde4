package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// New returns a configuration source backed by the process environment.
// Values loaded from a .env file by godotenv are visible here as well.
func New() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	return v
}

func GetString(config *viper.Viper, key string, defaultValue string) string {
	if config == nil || !config.IsSet(key) {
		return defaultValue
	}
	return config.GetString(key)
}

func GetInt(config *viper.Viper, key string, defaultValue int) int {
	s := GetString(config, key, "")
	if s == "" {
		return defaultValue
	}

	asInt, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asInt
}

func GetBool(config *viper.Viper, key string, defaultValue bool) bool {
	s := GetString(config, key, "")
	if s == "" {
		return defaultValue
	}

	asBool, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return defaultValue
	}

	return asBool
}

// GetDuration accepts Go duration strings ("5s", "1h"). A bare integer is read as seconds.
func GetDuration(config *viper.Viper, key string, defaultValue time.Duration) time.Duration {
	s := strings.TrimSpace(GetString(config, key, ""))
	if s == "" {
		return defaultValue
	}

	if secs, err := strconv.Atoi(s); err == nil {
		return time.Duration(secs) * time.Second
	}

	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

// GetList splits a comma separated value, dropping empty entries.
func GetList(config *viper.Viper, key string, defaultValue []string) []string {
	s := GetString(config, key, "")
	if s == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
