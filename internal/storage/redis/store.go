package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/julianstephens/jagruk/internal/constants"
	"github.com/julianstephens/jagruk/internal/storage"
)

const (
	keyPrefix = constants.AppName + ":"
	// markerKey records that Init ran. Clear leaves it in place.
	markerKey = keyPrefix + "__initialized"

	opTimeout = 5 * time.Second
	scanBatch = 100
)

// Store keeps each blob under jagruk:<key> in a Redis database.
type Store struct {
	url    string
	client *goredis.Client
}

var _ storage.BlobStore = (*Store)(nil)

// New takes a redis:// or rediss:// URL.
func New(url string) *Store {
	return &Store{url: url}
}

// NewWithClient wraps an existing client; Close will close it.
func NewWithClient(client *goredis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) connect(ctx context.Context) error {
	if s.client == nil {
		opts, err := goredis.ParseURL(s.url)
		if err != nil {
			return fmt.Errorf("invalid redis url: %w", err)
		}
		s.client = goredis.NewClient(opts)
	}
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

func (s *Store) Init() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.connect(ctx); err != nil {
		return err
	}
	return s.client.Set(ctx, markerKey, time.Now().UTC().Format(time.RFC3339), 0).Err()
}

func (s *Store) Load() error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()
	if err := s.connect(ctx); err != nil {
		return err
	}
	n, err := s.client.Exists(ctx, markerKey).Result()
	if err != nil {
		return fmt.Errorf("failed to inspect redis: %w", err)
	}
	if n == 0 {
		return storage.ErrNotInitialized
	}
	return nil
}

func (s *Store) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

func (s *Store) Get(key string) ([]byte, error) {
	if s.client == nil {
		return nil, storage.ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	v, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(key string, value []byte) error {
	if s.client == nil {
		return storage.ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	if s.client == nil {
		return storage.ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

// Clear removes every jagruk:* key except the init marker. Other applications
// sharing the database are untouched.
func (s *Store) Clear() error {
	if s.client == nil {
		return storage.ErrNotInitialized
	}
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	iter := s.client.Scan(ctx, 0, keyPrefix+"*", scanBatch).Iterator()
	var batch []string
	for iter.Next(ctx) {
		if k := iter.Val(); k != markerKey {
			batch = append(batch, k)
		}
		if len(batch) == scanBatch {
			if err := s.client.Del(ctx, batch...).Err(); err != nil {
				return fmt.Errorf("failed to clear storage: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan storage: %w", err)
	}
	if len(batch) > 0 {
		if err := s.client.Del(ctx, batch...).Err(); err != nil {
			return fmt.Errorf("failed to clear storage: %w", err)
		}
	}
	return nil
}

func (s *Store) Location() string {
	return "redis"
}
