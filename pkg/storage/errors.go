package storage

import "errors"

var (
	ErrEmptyKey           = errors.New("storage: empty key")
	ErrUnknownDriver      = errors.New("storage: unknown driver")
	ErrCorruptFile        = errors.New("storage: state file is corrupt")
	ErrFailedToParseURL   = errors.New("storage: failed to parse redis connection string")
	ErrRedisNotReady      = errors.New("storage: redis did not become ready within the given time period")
	ErrEmptyConnectionURL = errors.New("storage: empty redis connection URL")
)
