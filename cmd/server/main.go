package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/raelgalvan/archdocs/pkg/archdocs/api"
	"github.com/raelgalvan/archdocs/pkg/archdocs/config"
	"github.com/raelgalvan/archdocs/pkg/archdocs/model"
)

// Config is the server's environment block
type Config struct {
	Port        string `env:"ARCHDOCS_PORT" env-default:"8080"`
	Environment string `env:"ARCHDOCS_ENVIRONMENT" env-default:"development"`
	WorkspaceID string `env:"ARCHDOCS_WORKSPACE_ID" env-default:""`
	ModelPath   string `env:"ARCHDOCS_MODEL_PATH" env-default:""`
	AuthSecret  string `env:"ARCHDOCS_AUTH_SECRET" env-default:""`
	StorageURL  string `env:"ARCHDOCS_STORAGE_URL" env-default:"memory://"`

	DB DbConfig
	S3 S3Config
}

// DbConfig selects the repository. An empty host means the in-memory
// repository.
type DbConfig struct {
	Host     string `env:"ARCHDOCS_PG_HOST" env-default:""`
	Port     uint16 `env:"ARCHDOCS_PG_PORT" env-default:"5432"`
	Name     string `env:"ARCHDOCS_PG_NAME" env-default:"archdocs_db"`
	User     string `env:"ARCHDOCS_PG_USER" env-default:"archdocs"`
	Password string `env:"ARCHDOCS_PG_PASSWORD" env-default:"pwd"`
}

func (c DbConfig) toDatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   c.Name,
	}
	return u.String()
}

// S3Config configures the optional S3 snapshot backend
type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	Bucket          string `env:"AWS_S3_BUCKET" env-default:""`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
}

func main() {
	var env Config
	if err := cleanenv.ReadEnv(&env); err != nil {
		slog.Error("failed to read environment", "error", err)
		os.Exit(1)
	}

	serverConfig, err := buildServerConfig(env)
	if err != nil {
		slog.Error("failed to load server configuration", "error", err)
		os.Exit(1)
	}

	m, err := loadModel(env.ModelPath)
	if err != nil {
		slog.Error("failed to load model definition", "path", env.ModelPath, "error", err)
		os.Exit(1)
	}

	svc, err := serverConfig.BuildService(context.Background(), m)
	if err != nil {
		slog.Error("failed to build documentation service", "error", err)
		os.Exit(1)
	}

	handler := api.NewDocumentationHandler(svc, m)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		if serverConfig.EnableAuth {
			for _, mw := range api.JWTVerifier(serverConfig.AuthSecret) {
				r.Use(mw)
			}
		}
		r.Mount("/workspace", handler.Routes())
	})

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: r,
	}

	go func() {
		slog.Info("archdocs server starting",
			"port", serverConfig.Port,
			"env", serverConfig.Environment,
			"workspace_id", svc.WorkspaceID(),
			"default_storage", serverConfig.DefaultStorageBackend)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server exiting")
}

// buildServerConfig maps the env block onto config options
func buildServerConfig(env Config) (*config.ServerConfig, error) {
	opts := []config.Option{
		config.WithPort(env.Port),
		config.WithEnvironment(env.Environment),
	}

	if env.WorkspaceID != "" {
		opts = append(opts, config.WithWorkspace(env.WorkspaceID))
	}
	if env.AuthSecret != "" {
		opts = append(opts, config.WithAuth(env.AuthSecret))
	}
	if env.DB.Host != "" {
		opts = append(opts, config.WithDatabase("postgres", env.DB.toDatabaseURL()))
	}

	switch {
	case env.S3.Bucket != "":
		extra := map[string]interface{}{
			"access_key_id":     env.S3.AccessKeyID,
			"secret_access_key": env.S3.SecretAccessKey,
		}
		if env.S3.Endpoint != "" {
			extra["endpoint"] = env.S3.Endpoint
			extra["use_path_style"] = true
			extra["create_bucket_if_not_exist"] = true
		}
		opts = append(opts,
			config.WithS3Storage("s3", env.S3.Bucket, env.S3.Region, extra),
			config.WithDefaultStorage("s3"))

	case strings.HasPrefix(env.StorageURL, "file://"):
		opts = append(opts,
			config.WithFilesystemStorage("fs", strings.TrimPrefix(env.StorageURL, "file://")),
			config.WithDefaultStorage("fs"))
	}

	return config.Load(opts...)
}

// loadModel reads the model definition file, or starts with an empty model
// populated over the elements API.
func loadModel(path string) (*model.Model, error) {
	if path == "" {
		return model.New(), nil
	}
	return model.LoadFile(path)
}
