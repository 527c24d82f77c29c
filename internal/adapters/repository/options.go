package repository

import "time"

// PostgresOption applies a configuration option to the PostgresStore.
type PostgresOption func(*PostgresStore)

// WithMaxOpenConns caps the connection pool size.
func WithMaxOpenConns(n int) PostgresOption {
	return func(s *PostgresStore) {
		if n > 0 {
			s.maxOpenConns = n
		}
	}
}

// WithMaxIdleConns sets the idle connection count.
func WithMaxIdleConns(n int) PostgresOption {
	return func(s *PostgresStore) {
		if n > 0 {
			s.maxIdleConns = n
		}
	}
}

// WithConnMaxLifetime bounds how long a pooled connection is reused.
func WithConnMaxLifetime(d time.Duration) PostgresOption {
	return func(s *PostgresStore) {
		if d > 0 {
			s.connMaxLifetime = d
		}
	}
}
