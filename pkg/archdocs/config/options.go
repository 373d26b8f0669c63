package config

import (
	"fmt"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithWorkspace sets the workspace identifier the documentation persists
// under
func WithWorkspace(id string) Option {
	return func(c *ServerConfig) error {
		if id == "" {
			return fmt.Errorf("workspace id cannot be empty")
		}
		c.WorkspaceID = id
		return nil
	}
}

// WithDatabase configures the repository backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDefaultStorage sets the default snapshot storage backend name
func WithDefaultStorage(name string) Option {
	return func(c *ServerConfig) error {
		if name == "" {
			return fmt.Errorf("default storage backend name cannot be empty")
		}
		c.DefaultStorageBackend = name
		return nil
	}
}

// WithFilesystemStorage adds a filesystem snapshot storage backend.
// If name is empty, defaults to "fs".
func WithFilesystemStorage(name, baseDir string) Option {
	return func(c *ServerConfig) error {
		if name == "" {
			name = "fs"
		}
		if baseDir == "" {
			return fmt.Errorf("filesystem base directory cannot be empty")
		}

		c.StorageBackends = upsertStorageBackend(c.StorageBackends, StorageBackendConfig{
			Name: name,
			Type: "fs",
			Config: map[string]interface{}{
				"base_dir": baseDir,
			},
		})
		return nil
	}
}

// WithS3Storage adds an S3 snapshot storage backend. If name is empty,
// defaults to "s3".
func WithS3Storage(name, bucket, region string, extra map[string]interface{}) Option {
	return func(c *ServerConfig) error {
		if name == "" {
			name = "s3"
		}
		if bucket == "" {
			return fmt.Errorf("s3 bucket cannot be empty")
		}

		cfg := map[string]interface{}{
			"bucket": bucket,
			"region": region,
		}
		for k, v := range extra {
			cfg[k] = v
		}

		c.StorageBackends = upsertStorageBackend(c.StorageBackends, StorageBackendConfig{
			Name:   name,
			Type:   "s3",
			Config: cfg,
		})
		return nil
	}
}

// WithAuth enables JWT verification on the HTTP API
func WithAuth(secret string) Option {
	return func(c *ServerConfig) error {
		if secret == "" {
			return fmt.Errorf("auth secret cannot be empty")
		}
		c.EnableAuth = true
		c.AuthSecret = secret
		return nil
	}
}

// WithEventLogging toggles lifecycle event logging
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}
