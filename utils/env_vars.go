package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type envValue interface {
	string | int | bool | time.Duration
}

// GetEnv reads an environment variable, parsed to the type of the default value. It panics on a value that does not parse.
func GetEnv[T envValue](name string, defaultValue T) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		return defaultValue
	}
	value, err := parseEnv[T](raw)
	if err != nil {
		panic(fmt.Sprintf("environment variable %s is not valid: %s", name, err))
	}
	return value
}

func GetRequiredEnv[T envValue](name string) T {
	raw, ok := os.LookupEnv(name)
	if !ok || raw == "" {
		panic(fmt.Sprintf("environment variable %s is required", name))
	}
	value, err := parseEnv[T](raw)
	if err != nil {
		panic(fmt.Sprintf("environment variable %s is not valid: %s", name, err))
	}
	return value
}

func parseEnv[T envValue](raw string) (T, error) {
	var value T
	var parsed any
	var err error
	switch any(value).(type) {
	case string:
		parsed = raw
	case int:
		parsed, err = strconv.Atoi(raw)
	case bool:
		parsed, err = strconv.ParseBool(raw)
	case time.Duration:
		parsed, err = time.ParseDuration(raw)
	}
	if err != nil {
		return value, err
	}
	return parsed.(T), nil
}
