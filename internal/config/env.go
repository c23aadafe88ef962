// Package config provides shared configuration utilities: environment
// lookups, .env loading and the logger factory used by every binary.
package config

import (
	"os"
	"strconv"
	"strings"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvBool parses the environment variable named by the key as a bool
// (1, true, on, yes and their negatives), or returns fallback if it is
// unset or unparsable.
func GetEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch value {
	case "on", "yes", "ON", "YES":
		return true
	case "off", "no", "OFF", "NO":
		return false
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return b
}

// GetEnvList splits the environment variable named by the key on commas,
// dropping blank entries. It returns nil when the variable is unset.
func GetEnvList(key string) []string {
	var list []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
