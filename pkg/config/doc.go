// Package config loads typed configuration structs from environment
// variables using github.com/caarlos0/env/v11, with optional .env support
// via github.com/joho/godotenv.
//
// Load caches one value per struct type for the life of the process, so
// the backend origin and timeouts read at startup stay fixed. Parse skips
// the cache.
package config
