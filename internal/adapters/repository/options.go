package repository

import "time"

// Option applies a configuration option to the SQLiteStore.
type Option func(*SQLiteStore)

// WithBusyTimeout sets how long SQLite waits on a locked database.
func WithBusyTimeout(d time.Duration) Option {
	return func(s *SQLiteStore) {
		if d > 0 {
			s.busyTimeout = d
		}
	}
}

// WithTable overrides the table name.
func WithTable(name string) Option {
	return func(s *SQLiteStore) {
		if name != "" {
			s.table = name
		}
	}
}
