package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
	"github.com/raelgalvan/archdocs/pkg/archdocs/config"
	"github.com/raelgalvan/archdocs/pkg/archdocs/model"
)

// rootFlags are shared by every subcommand
type rootFlags struct {
	modelPath string
	workspace string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "docctl",
		Short: "Manage the documentation attached to an architecture-model workspace",
		Long: `docctl imports documentation sections and images into a workspace and
exports documentation snapshots. Repository and storage backends are
configured through ARCHDOCS_* environment variables.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flags.modelPath, "model", "", "path to the model definition file (JSON)")
	cmd.PersistentFlags().StringVar(&flags.workspace, "workspace", "", "workspace UUID (overrides ARCHDOCS_WORKSPACE_ID)")

	cmd.AddCommand(newImportCmd(flags))
	cmd.AddCommand(newExportCmd(flags))
	cmd.AddCommand(newShowCmd(flags))

	return cmd
}

// buildService assembles the documentation service from the environment and
// root flags, restoring any documentation already persisted for the
// workspace.
func buildService(ctx context.Context, flags *rootFlags) (archdocs.Service, error) {
	opts := []config.Option{config.WithEnv("ARCHDOCS_")}
	if flags.workspace != "" {
		opts = append(opts, config.WithWorkspace(flags.workspace))
	}

	cfg, err := config.Load(opts...)
	if err != nil {
		return nil, err
	}

	var m *model.Model
	if flags.modelPath != "" {
		m, err = model.LoadFile(flags.modelPath)
		if err != nil {
			return nil, err
		}
	} else {
		m = model.New()
	}

	svc, err := cfg.BuildService(ctx, m)
	if err != nil {
		return nil, err
	}

	if err := svc.Load(ctx); err != nil && !errors.Is(err, archdocs.ErrWorkspaceNotFound) {
		return nil, fmt.Errorf("restore workspace documentation: %w", err)
	}

	return svc, nil
}
