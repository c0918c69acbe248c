package source

import "errors"

// Sentinel kinds for source errors.
var (
	ErrDecode    = errors.New("decode league data failed")
	ErrRead      = errors.New("read league data failed")
	ErrTransport = errors.New("fetch league data failed")
	ErrStatus    = errors.New("unexpected status fetching league data")
)
