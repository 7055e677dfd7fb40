package pagination

import (
	"github.com/Aywac/tawzifak1122/pkg/config"
)

// Config holds the default page sizes per entity surface.
// These values can be overridden through environment variables.
type Config struct {
	ListingLimit int // listings, competitions, immigration lists
	ArticleLimit int // articles and testimonials lists
	UserLimit    int // admin user list
	MaxLimit     int // upper bound accepted from clients
	FeedLimit    int // syndication feed cap
}

// DefaultConfig returns the built-in page sizes.
func DefaultConfig() Config {
	return Config{
		ListingLimit: 16,
		ArticleLimit: 8,
		UserLimit:    20,
		MaxLimit:     100,
		FeedLimit:    1000,
	}
}

// LoadFromEnv loads the pagination config from environment variables,
// falling back to DefaultConfig values.
//
// Supported variables: PAGINATION_LISTING_LIMIT, PAGINATION_ARTICLE_LIMIT,
// PAGINATION_USER_LIMIT, PAGINATION_MAX_LIMIT, PAGINATION_FEED_LIMIT.
func LoadFromEnv() Config {
	def := DefaultConfig()
	return Config{
		ListingLimit: config.GetEnvInt("PAGINATION_LISTING_LIMIT", def.ListingLimit),
		ArticleLimit: config.GetEnvInt("PAGINATION_ARTICLE_LIMIT", def.ArticleLimit),
		UserLimit:    config.GetEnvInt("PAGINATION_USER_LIMIT", def.UserLimit),
		MaxLimit:     config.GetEnvInt("PAGINATION_MAX_LIMIT", def.MaxLimit),
		FeedLimit:    config.GetEnvInt("PAGINATION_FEED_LIMIT", def.FeedLimit),
	}
}

// ClampLimit bounds a client-supplied limit to [1, MaxLimit], substituting
// def when the input is zero or negative.
func (c Config) ClampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > c.MaxLimit {
		return c.MaxLimit
	}
	return limit
}
