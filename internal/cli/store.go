package cli

import (
	"errors"
	"fmt"

	"github.com/julianstephens/jagruk/internal/config"
	apperrors "github.com/julianstephens/jagruk/internal/errors"
	"github.com/julianstephens/jagruk/internal/keyring"
	"github.com/julianstephens/jagruk/internal/logger"
	"github.com/julianstephens/jagruk/internal/storage"
	"github.com/julianstephens/jagruk/internal/storage/postgres"
	"github.com/julianstephens/jagruk/internal/storage/redis"
	"github.com/julianstephens/jagruk/internal/storage/sqlite"
)

// NewStore picks the blob store for a DSN. PostgreSQL DSNs must not embed a password;
// a full connection string may come from JAGRUK_DB_CONNECTION or the OS keyring instead.
func NewStore(dsn string) (storage.BlobStore, error) {
	switch config.StorageKind(dsn) {
	case config.KindMemory:
		return storage.NewMemoryStore(), nil
	case config.KindJSON:
		return storage.NewFileStore(config.ExpandHome(dsn)), nil
	case config.KindRedis:
		return redis.New(dsn), nil
	case config.KindPostgres:
		if _, err := postgres.ValidateConnString(dsn); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, apperrors.WithHint(
					errors.New("PostgreSQL connection strings with embedded credentials are not allowed"),
					"store it with 'jagruk keyring set', export JAGRUK_DB_CONNECTION or use .pgpass",
				)
			}
			return nil, err
		}
		connStr, source, err := keyring.LookupConnectionString()
		switch {
		case err == nil:
			logger.Debug("using stored connection string", "source", source)
			return postgres.New(connStr), nil
		case errors.Is(err, keyring.ErrNotFound), errors.Is(err, keyring.ErrKeyringUnavailable):
			return postgres.New(dsn), nil
		default:
			return nil, fmt.Errorf("failed to read connection string: %w", err)
		}
	}
	return sqlite.NewStore(config.ExpandHome(dsn)), nil
}
