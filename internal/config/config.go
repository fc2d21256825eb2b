package config

import (
	"time"

	"github.com/gamma-omg/linguaflow/internal/pkg/env"
)

type Config struct {
	AnnotationMaxKeys int64
	AnnotationMaxCost int64
	SeedDemoData      bool
	Http              httpConfig
}

type httpConfig struct {
	ListenAddr      string
	IdleTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func FromEnv() Config {
	return Config{
		AnnotationMaxKeys: env.Int64("ANNOTATION_CACHE_KEYS", 10000),
		AnnotationMaxCost: env.Int64("ANNOTATION_CACHE_COST", 10000),
		SeedDemoData:      env.Bool("SEED_DEMO_DATA", false),
		Http: httpConfig{
			ListenAddr:      env.String("HTTP_LISTEN_ADDR", ":8080"),
			IdleTimeout:     env.Duration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ReadTimeout:     env.Duration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    env.Duration("HTTP_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: env.Duration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
	}
}
