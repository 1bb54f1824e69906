package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	adaptercache "github.com/marcos-nsantos/petfinder-backend/internal/adapter/cache"
	"github.com/marcos-nsantos/petfinder-backend/internal/infrastructure/config"
)

func NewValkeyClient(cfg config.ValkeyConfig) (valkey.Client, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{cfg.Addr()},
		Password:    cfg.Password,
		SelectDB:    cfg.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to valkey: %w", err)
	}
	return client, nil
}

// Store is a key/value cache backed by Valkey. Keys are namespaced with
// prefix.
type Store struct {
	client valkey.Client
	prefix string
}

func NewStore(client valkey.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(s.prefix+key).Build())
	if err := resp.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, adaptercache.ErrCacheMiss
		}
		return nil, fmt.Errorf("valkey get: %w", err)
	}
	b, err := resp.AsBytes()
	if err != nil {
		return nil, fmt.Errorf("valkey get: %w", err)
	}
	return b, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	cmd := s.client.B().Set().Key(s.prefix + key).Value(valkey.BinaryString(value)).Ex(ttl).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Do(ctx, s.client.B().Del().Key(s.prefix+key).Build()).Error(); err != nil {
		return fmt.Errorf("valkey del: %w", err)
	}
	return nil
}
