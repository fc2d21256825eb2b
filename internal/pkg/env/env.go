package env

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

func RequireString(key string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		panic(fmt.Sprintf("environment variable %q is required", key))
	}

	return val
}

func String(key, def string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	return val
}

func Int(key string, def int) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return def
	}

	return val
}

func Int64(key string, def int64) int64 {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		return def
	}

	return val
}

func Bool(key string, def bool) bool {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	switch valStr {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}

	return def
}

func Duration(key string, def time.Duration) time.Duration {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		return def
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return def
	}

	return val
}
