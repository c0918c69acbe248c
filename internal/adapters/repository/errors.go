package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrOpen   = errors.New("open kv store failed")
	ErrClosed = errors.New("kv store closed")
	ErrQuery  = errors.New("kv query failed")
)
