package storage

import (
	"context"
	"fmt"
	"strings"
)

// Options selects and configures a backend.
type Options struct {
	Backend       string // file, mongo, postgres or memory
	DataDir       string
	MongoURI      string
	MongoDatabase string
	PostgresURL   string
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", "file":
		return NewFileStore(opts.DataDir)
	case "mongo", "mongodb":
		if opts.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI is required for the mongo backend")
		}
		return ConnectMongo(ctx, opts.MongoURI, opts.MongoDatabase)
	case "postgres", "postgresql":
		if opts.PostgresURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
		return OpenPostgres(ctx, opts.PostgresURL)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
