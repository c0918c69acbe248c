package service

import (
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/okian/matchday/internal/adapters/repository"
	"github.com/okian/matchday/internal/adapters/source"
	"github.com/okian/matchday/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithSource sets where league data is loaded from.
func WithSource(src source.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithFavorites sets the key/value slot backing the favorite team.
func WithFavorites(kv repository.KV) Option {
	return func(s *Service) {
		if kv != nil {
			s.kv = kv
		}
	}
}

// WithClock sets the clock used for the load delay and the success notice.
func WithClock(c clockwork.Clock) Option {
	return func(s *Service) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithSuccessNoticeDuration sets how long the save notice stays raised.
func WithSuccessNoticeDuration(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.noticeDuration = d
		}
	}
}

// WithLoadDelay adds simulated latency before every load.
func WithLoadDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.loadDelay = d
		}
	}
}

// WithMaxScore sets the inclusive upper bound for edited scores.
func WithMaxScore(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxScore = n
		}
	}
}

// WithRecentMatchesLimit caps FavoriteRecentMatches.
func WithRecentMatchesLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.recentLimit = n
		}
	}
}
