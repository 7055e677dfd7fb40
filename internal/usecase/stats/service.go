// Package stats provides the global-counters read use case backing the
// public stats endpoint and the business metrics gauges.
package stats

import (
	"context"
	"log/slog"

	"github.com/Aywac/tawzifak1122/internal/cache"
	"github.com/Aywac/tawzifak1122/internal/domain/entity"
	"github.com/Aywac/tawzifak1122/internal/repository"
)

const cacheKey = "stats:global"

// Service provides the global stats use case.
type Service struct {
	Repo   repository.StatsRepository
	Cache  *cache.Tagged
	Logger *slog.Logger
}

// Get returns the global counters. A read failure is logged and swallowed
// into zero counters so the public stats strip never errors.
func (s *Service) Get(ctx context.Context) *entity.GlobalStats {
	if s.Cache != nil {
		if v, ok := s.Cache.Get(cacheKey); ok {
			if st, ok := v.(*entity.GlobalStats); ok {
				return st
			}
		}
	}

	st, err := s.Repo.Get(ctx)
	if err != nil {
		s.logger().Error("get global stats failed", slog.Any("error", err))
		return &entity.GlobalStats{}
	}

	if s.Cache != nil {
		s.Cache.Put(cacheKey, st, []string{"stats"}, 0)
	}
	return st
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
