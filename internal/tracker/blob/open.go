package blob

import (
	"context"
	"fmt"
	"io"

	"jobhunt-tracker/internal/common/config"
	"jobhunt-tracker/internal/common/database"
	"jobhunt-tracker/internal/common/errors"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open connects to the configured storage backend and returns a Blob bound
// to storage.key. The closer releases the backend connection.
func Open(ctx context.Context, cfg *config.Config) (Blob, io.Closer, error) {
	key := cfg.Storage.Key

	switch cfg.Storage.Backend {
	case config.BackendRedis:
		client, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return nil, nil, errors.NewStorageConnectionError(config.BackendRedis, err)
		}
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, errors.NewStorageConnectionError(config.BackendRedis, err)
		}
		return NewRedis(client.Client, key), client, nil

	case config.BackendPostgres:
		client, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, nil, errors.NewStorageConnectionError(config.BackendPostgres, err)
		}
		if err := client.Ping(ctx); err != nil {
			client.Close()
			return nil, nil, errors.NewStorageConnectionError(config.BackendPostgres, err)
		}
		pg, err := NewPostgres(client.DB, cfg.Database.Postgres.Table, key)
		if err != nil {
			client.Close()
			return nil, nil, err
		}
		if err := pg.EnsureTable(ctx); err != nil {
			client.Close()
			return nil, nil, errors.NewStorageConnectionError(config.BackendPostgres, err)
		}
		return pg, client, nil

	case config.BackendElasticsearch:
		client, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return nil, nil, errors.NewStorageConnectionError(config.BackendElasticsearch, err)
		}
		if err := client.Ping(ctx); err != nil {
			return nil, nil, errors.NewStorageConnectionError(config.BackendElasticsearch, err)
		}
		return NewElasticsearch(client.Client, cfg.Database.Elasticsearch.Index, key), client, nil

	case config.BackendMemory:
		return NewMemory(), nopCloser{}, nil
	}

	return nil, nil, fmt.Errorf("unsupported storage backend %q", cfg.Storage.Backend)
}
