// Package config loads typed configuration from environment variables.
//
// Every package that needs settings owns a Config struct tagged for
// github.com/caarlos0/env (mongo.Config, cache.Config, alert.Config and so
// on); the commands load each of them with Load:
//
//	var cacheCfg cache.Config
//	if err := config.Load(&cacheCfg); err != nil {
//		return err
//	}
//
// On first use Load reads .env.<APP_ENV> and .env from the working directory
// through github.com/joho/godotenv. Real environment variables always win
// over dotenv files, and the environment-specific file wins over .env.
//
// Parsed configs are cached per type, so repeated Loads are cheap and
// consistent. ResetCache and ForceReloadConfig exist for tests.
package config
