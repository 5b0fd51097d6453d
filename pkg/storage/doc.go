// Package storage holds the console's durable local state: the session
// token and the serialized user record (KeyToken, KeyUser).
//
// Three backends implement Storage:
//
//   - File: a 0600 JSON file, replaced atomically on every write. This is
//     the default for the adminctl CLI.
//   - Redis: plain keys under a prefix in github.com/redis/go-redis/v9,
//     for hosts where several console processes share one login.
//   - Memory: process memory, used by tests and one-shot scripts.
//
// Open picks a backend from Config, which is populated from STORAGE_*
// and REDIS_* environment variables.
package storage
