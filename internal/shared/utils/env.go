package utils

import (
	"os"
	"strconv"
	"strings"
)

func GetEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt returns defaultValue when the variable is unset or not a number.
func GetEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(GetEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return n
}

func GetEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(GetEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return b
}
