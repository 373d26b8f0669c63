// Package config builds archdocs services from declarative server
// configuration: an env-driven mapping of repository, blob store and auth
// settings onto the library's functional options.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
	repomemory "github.com/raelgalvan/archdocs/pkg/archdocs/repo/memory"
	repopg "github.com/raelgalvan/archdocs/pkg/archdocs/repo/postgres"
	fsstorage "github.com/raelgalvan/archdocs/pkg/archdocs/storage/fs"
	memorystorage "github.com/raelgalvan/archdocs/pkg/archdocs/storage/memory"
	s3storage "github.com/raelgalvan/archdocs/pkg/archdocs/storage/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:                  "8080",
		Environment:           "development",
		DatabaseType:          "memory",
		DefaultStorageBackend: "memory",
		StorageBackends: []StorageBackendConfig{
			{
				Name:   "memory",
				Type:   "memory",
				Config: map[string]interface{}{},
			},
		},
		EnableEventLogging: true,
	}
}

// ServerConfig represents server configuration for the archdocs service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Workspace the server persists documentation under. Empty means a
	// random workspace identifier per process.
	WorkspaceID string

	// Database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"

	// Snapshot storage configuration
	DefaultStorageBackend string
	StorageBackends       []StorageBackendConfig

	// Auth
	EnableAuth bool
	AuthSecret string

	// Server options
	EnableEventLogging bool
}

// StorageBackendConfig represents configuration for a snapshot storage backend
type StorageBackendConfig struct {
	Name   string
	Type   string // "memory", "fs", "s3"
	Config map[string]interface{}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	if c.EnableAuth && c.AuthSecret == "" {
		return errors.New("auth_secret is required when auth is enabled")
	}

	if c.WorkspaceID != "" {
		if _, err := uuid.Parse(c.WorkspaceID); err != nil {
			return fmt.Errorf("workspace_id must be a UUID: %w", err)
		}
	}

	found := false
	for _, backend := range c.StorageBackends {
		if backend.Name == c.DefaultStorageBackend {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("default storage backend '%s' not found in configured backends", c.DefaultStorageBackend)
	}

	return nil
}

// BuildRepository creates the documentation repository selected by the
// configuration.
func (c *ServerConfig) BuildRepository(ctx context.Context) (archdocs.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return repomemory.New(), nil
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return repopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// BuildBlobStores creates the configured snapshot storage backends keyed by
// name.
func (c *ServerConfig) BuildBlobStores() (map[string]archdocs.BlobStore, error) {
	stores := make(map[string]archdocs.BlobStore, len(c.StorageBackends))

	for _, backend := range c.StorageBackends {
		store, err := buildBlobStore(backend)
		if err != nil {
			return nil, fmt.Errorf("backend %q: %w", backend.Name, err)
		}
		stores[backend.Name] = store
	}

	return stores, nil
}

func buildBlobStore(backend StorageBackendConfig) (archdocs.BlobStore, error) {
	switch backend.Type {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir: stringValue(backend.Config, "base_dir"),
		})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 stringValue(backend.Config, "region"),
			Bucket:                 stringValue(backend.Config, "bucket"),
			AccessKeyID:            stringValue(backend.Config, "access_key_id"),
			SecretAccessKey:        stringValue(backend.Config, "secret_access_key"),
			Endpoint:               stringValue(backend.Config, "endpoint"),
			UsePathStyle:           boolValue(backend.Config, "use_path_style"),
			CreateBucketIfNotExist: boolValue(backend.Config, "create_bucket_if_not_exist"),
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend type: %s", backend.Type)
	}
}

// BuildService assembles a documentation service for the given model from
// the configuration.
func (c *ServerConfig) BuildService(ctx context.Context, model archdocs.Model) (archdocs.Service, error) {
	repo, err := c.BuildRepository(ctx)
	if err != nil {
		return nil, err
	}

	stores, err := c.BuildBlobStores()
	if err != nil {
		return nil, err
	}

	options := []archdocs.Option{
		archdocs.WithRepository(repo),
	}
	for name, store := range stores {
		options = append(options, archdocs.WithBlobStore(name, store))
	}
	if c.EnableEventLogging {
		options = append(options, archdocs.WithEventSink(archdocs.NewLoggingEventSink(slog.Default())))
	}
	if c.WorkspaceID != "" {
		id, err := uuid.Parse(c.WorkspaceID)
		if err != nil {
			return nil, fmt.Errorf("workspace_id must be a UUID: %w", err)
		}
		options = append(options, archdocs.WithWorkspaceID(id))
	}

	return archdocs.New(model, options...)
}

func stringValue(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

func boolValue(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}
