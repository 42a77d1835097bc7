// Package config loads typed configuration structs from environment
// variables, with an optional .env file for local development.
//
// Configuration is declared as plain structs with `env` tags (parsed by
// caarlos0/env); each struct type is parsed once per process and cached so
// independently wired components observe the same values.
package config
