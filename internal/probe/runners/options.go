package runner

import (
	"strconv"
	"time"
)

func getStringOption(options map[string]interface{}, key, defaultValue string) string {
	if value, ok := options[key].(string); ok && value != "" {
		return value
	}
	return defaultValue
}

func getDurationOption(options map[string]interface{}, key string, defaultValue time.Duration) time.Duration {
	switch value := options[key].(type) {
	case time.Duration:
		if value > 0 {
			return value
		}
	case string:
		if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parsePort(port interface{}) (int, bool) {
	switch v := port.(type) {
	case int:
		if v > 0 && v <= 65535 {
			return v, true
		}
	case string:
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p <= 65535 {
			return p, true
		}
	}
	return 0, false
}
