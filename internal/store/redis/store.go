package redis

import (
	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for the bookmark set
type Store struct {
	client redis.UniversalClient
	prefix string
}

// NewStore creates a new Redis store. An empty prefix selects DefaultKeyPrefix.
func NewStore(client redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Store{
		client: client,
		prefix: prefix,
	}
}

// Name identifies the backend in logs and /infra.
func (s *Store) Name() string {
	return "redis"
}
