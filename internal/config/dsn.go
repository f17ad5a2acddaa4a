package config

import "strings"

// Kind identifies a blob store backend.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
	KindJSON     Kind = "json"
	KindMemory   Kind = "memory"
)

// MemoryDSN selects the in-process store; nothing survives the process.
const MemoryDSN = ":memory:"

// StorageKind picks the backend for a DSN by scheme or file extension.
func StorageKind(dsn string) Kind {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case lower == MemoryDSN:
		return KindMemory
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return KindPostgres
	case strings.HasPrefix(lower, "redis://"), strings.HasPrefix(lower, "rediss://"):
		return KindRedis
	case strings.HasSuffix(lower, ".json"):
		return KindJSON
	}
	return KindSQLite
}
