// Package config loads typed configuration from environment variables.
//
// A .env file in the working directory is loaded on first use when present;
// variables already set in the environment take precedence. Parsing is done
// by github.com/caarlos0/env using struct tags. Each configuration type is
// loaded once and cached for subsequent calls.
//
//	type ServerConfig struct {
//		Addr string `env:"SERVER_ADDR" envDefault:":8080"`
//	}
//
//	var cfg ServerConfig
//	if err := config.Load(&cfg); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure during startup
//	config.MustLoad(&cfg)
package config
