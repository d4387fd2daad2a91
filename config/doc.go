// Package config loads and validates configuration for binaries built on
// divide.
//
// It uses Viper to read a YAML file, overlays environment variables (and an
// optional .env file via godotenv) and finally explicitly set command-line
// flags, then unmarshals the result into the caller's struct.
//
// # Usage
//
//	var cfg BenchConfig
//	err := config.LoadConfig("divide-bench", &cfg, config.WithFlags(fs, keys))
//
// Environment variables map onto nested keys by splitting on underscores,
// so DIVIDE_THRESHOLD=32 sets divide.threshold.
package config
