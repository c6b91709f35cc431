// Package config loads typed configuration structs from environment
// variables with optional .env file support for local development.
//
// Each config type is parsed once per process and cached, so packages can
// load their own configuration independently without coordinating startup
// order:
//
//	var cfg redis.Config
//	config.MustLoad(&cfg)
package config
