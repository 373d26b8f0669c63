package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	var (
		backend string
		key     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the documentation snapshot to a storage backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, err := buildService(ctx, flags)
			if err != nil {
				return err
			}

			if err := svc.ExportSnapshot(ctx, backend, key); err != nil {
				return err
			}

			cmd.Printf("exported snapshot to %s backend as %s\n", backend, key)
			return nil
		},
	}

	cmd.Flags().StringVar(&backend, "backend", "fs", "snapshot storage backend name")
	cmd.Flags().StringVar(&key, "key", "documentation.json", "snapshot key")

	return cmd
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the workspace documentation as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, err := buildService(ctx, flags)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(svc.Documentation().Record())
		},
	}

	return cmd
}
