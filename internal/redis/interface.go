package redis

import (
	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -destination=mock/mock_client.go -package=redismock github.com/KirkDiggler/pokeduel/internal/redis Client

// Client is the go-redis client the stores depend on.
type Client interface {
	redis.UniversalClient
}
