// Package config loads environment-based configuration into tagged structs.
//
// It combines godotenv (optional .env file for local development) with
// caarlos0/env struct tag parsing. Every component in this repo declares its
// own small config struct (pg.Config, redis.Config, billing.StripeConfig, ...)
// and loads it through config.Load, so there is no central configuration tree
// to keep in sync.
package config
