package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverMemory = "memory"
)

// Config selects and configures a backend.
type Config struct {
	Driver string `env:"STORAGE_DRIVER" envDefault:"file"`
	// File defaults to $HOME/.marketadmin/session.json.
	File  string `env:"STORAGE_FILE"`
	Redis RedisConfig
}

// Open builds the backend named by cfg.Driver. The returned closer releases
// backend resources and is never nil.
func Open(ctx context.Context, cfg Config) (Storage, io.Closer, error) {
	switch cfg.Driver {
	case DriverFile, "":
		path := cfg.File
		if path == "" {
			p, err := DefaultFilePath()
			if err != nil {
				return nil, nil, err
			}
			path = p
		}
		return NewFile(path), nopCloser{}, nil
	case DriverRedis:
		client, err := ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		r := NewRedis(client, cfg.Redis.Prefix)
		return r, r, nil
	case DriverMemory:
		return NewMemory(), nopCloser{}, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// DefaultFilePath returns $HOME/.marketadmin/session.json.
func DefaultFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".marketadmin", "session.json"), nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
