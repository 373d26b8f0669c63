package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
)

func newImportCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import documentation into the workspace",
	}

	cmd.AddCommand(newImportSectionCmd(flags))
	cmd.AddCommand(newImportImagesCmd(flags))

	return cmd
}

func newImportSectionCmd(flags *rootFlags) *cobra.Command {
	var (
		elementID string
		typ       string
		format    string
		file      string
		container bool
	)

	cmd := &cobra.Command{
		Use:   "section",
		Short: "Import a documentation section from a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, err := buildService(ctx, flags)
			if err != nil {
				return err
			}

			f := archdocs.Format(format)
			if !f.IsValid() {
				return fmt.Errorf("invalid format %q (use Markdown, AsciiDoc or Text)", format)
			}

			var section *archdocs.Section
			if container {
				content, err := readFileArg(file)
				if err != nil {
					return err
				}
				section, err = svc.AddContainerSection(ctx, archdocs.AddContainerSectionRequest{
					ContainerID: elementID,
					Format:      f,
					Content:     content,
				})
				if err != nil {
					return err
				}
			} else {
				t := archdocs.SectionType(typ)
				if !t.IsValid() {
					return fmt.Errorf("invalid section type %q", typ)
				}
				section, err = svc.AddSectionFromFile(ctx, archdocs.AddSectionFromFileRequest{
					ElementID: elementID,
					Type:      t,
					Format:    f,
					Path:      file,
				})
				if err != nil {
					return err
				}
			}

			if err := svc.Save(ctx); err != nil {
				return err
			}

			cmd.Printf("imported %s section for element %s\n", section.Type, section.ElementID)
			return nil
		},
	}

	cmd.Flags().StringVar(&elementID, "element", "", "identifier of the owning element")
	cmd.Flags().StringVar(&typ, "type", string(archdocs.SectionTypeContext), "section type")
	cmd.Flags().StringVar(&format, "format", string(archdocs.FormatMarkdown), "content format")
	cmd.Flags().StringVar(&file, "file", "", "path to the section content")
	cmd.Flags().BoolVar(&container, "container", false, "element is a container (type fixed to Components)")
	_ = cmd.MarkFlagRequired("element")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func readFileArg(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(content), nil
}

func newImportImagesCmd(flags *rootFlags) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "images",
		Short: "Import the png/jpg/gif images from a directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			svc, err := buildService(ctx, flags)
			if err != nil {
				return err
			}

			count, err := svc.IngestImages(ctx, dir)
			if err != nil {
				return err
			}

			if err := svc.Save(ctx); err != nil {
				return err
			}

			cmd.Printf("imported %d image(s) from %s\n", count, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to ingest")
	_ = cmd.MarkFlagRequired("dir")

	return cmd
}
