// Package config provides configuration loading and validation for the
// graph-engine CLI binaries.
//
// It uses Viper to load an EngineConfig from a YAML file, an optional .env
// file, and environment variables, in that precedence order.
//
// # Usage
//
//	var cfg config.EngineConfig
//	err := config.LoadConfig(&cfg, config.WithConfigFile("config.yml"))
//	cfg.ApplyDefaults()
//	err = cfg.Validate()
package config
