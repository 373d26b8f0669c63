// Package postgres implements archdocs.Repository on PostgreSQL.
//
// Schema:
//
//	CREATE TABLE documentation_section (
//	    workspace_id UUID NOT NULL,
//	    element_id   TEXT NOT NULL,
//	    type         TEXT NOT NULL,
//	    format       TEXT NOT NULL,
//	    content      TEXT NOT NULL,
//	    PRIMARY KEY (workspace_id, element_id, type)
//	);
//
//	CREATE TABLE documentation_image (
//	    workspace_id UUID NOT NULL,
//	    name         TEXT NOT NULL,
//	    content_type TEXT NOT NULL,
//	    content      TEXT NOT NULL,
//	    PRIMARY KEY (workspace_id, name, content_type)
//	);
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
)

// DBTX is an interface that allows us to use either a database connection or
// a transaction. SaveDocumentation issues a delete followed by inserts;
// callers needing the replace to be atomic pass a pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Repository implements archdocs.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) archdocs.Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with a connection pool
func NewWithPool(pool *pgxpool.Pool) archdocs.Repository {
	return &Repository{db: pool}
}

// handlePostgresError maps driver errors onto domain errors
func (r *Repository) handlePostgresError(operation string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w", operation, archdocs.ErrDuplicateSection)
		case "42P01": // undefined_table
			return fmt.Errorf("table does not exist - database migration required")
		default:
			return fmt.Errorf("database error in %s: %s (code: %s)", operation, pgErr.Message, pgErr.Code)
		}
	}

	return fmt.Errorf("database error in %s: %w", operation, err)
}

func (r *Repository) SaveDocumentation(ctx context.Context, workspaceID uuid.UUID, rec *archdocs.DocumentationRecord) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM documentation_section WHERE workspace_id = $1`, workspaceID); err != nil {
		return r.handlePostgresError("save documentation", err)
	}
	if _, err := r.db.Exec(ctx,
		`DELETE FROM documentation_image WHERE workspace_id = $1`, workspaceID); err != nil {
		return r.handlePostgresError("save documentation", err)
	}

	for _, section := range rec.Sections {
		_, err := r.db.Exec(ctx, `
			INSERT INTO documentation_section (workspace_id, element_id, type, format, content)
			VALUES ($1, $2, $3, $4, $5)`,
			workspaceID, section.ElementID, string(section.Type), string(section.Format), section.Content)
		if err != nil {
			return r.handlePostgresError("save section", err)
		}
	}

	for _, img := range rec.Images {
		_, err := r.db.Exec(ctx, `
			INSERT INTO documentation_image (workspace_id, name, content_type, content)
			VALUES ($1, $2, $3, $4)`,
			workspaceID, img.Name, img.ContentType, img.Content)
		if err != nil {
			return r.handlePostgresError("save image", err)
		}
	}

	return nil
}

func (r *Repository) LoadDocumentation(ctx context.Context, workspaceID uuid.UUID) (*archdocs.DocumentationRecord, error) {
	rec := &archdocs.DocumentationRecord{}

	rows, err := r.db.Query(ctx, `
		SELECT element_id, type, format, content
		FROM documentation_section WHERE workspace_id = $1
		ORDER BY element_id, type`, workspaceID)
	if err != nil {
		return nil, r.handlePostgresError("load sections", err)
	}
	defer rows.Close()

	for rows.Next() {
		var section archdocs.Section
		if err := rows.Scan(&section.ElementID, &section.Type, &section.Format, &section.Content); err != nil {
			return nil, err
		}
		rec.Sections = append(rec.Sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, r.handlePostgresError("load sections", err)
	}

	imgRows, err := r.db.Query(ctx, `
		SELECT name, content_type, content
		FROM documentation_image WHERE workspace_id = $1
		ORDER BY name`, workspaceID)
	if err != nil {
		return nil, r.handlePostgresError("load images", err)
	}
	defer imgRows.Close()

	for imgRows.Next() {
		var img archdocs.Image
		if err := imgRows.Scan(&img.Name, &img.ContentType, &img.Content); err != nil {
			return nil, err
		}
		rec.Images = append(rec.Images, img)
	}
	if err := imgRows.Err(); err != nil {
		return nil, r.handlePostgresError("load images", err)
	}

	if len(rec.Sections) == 0 && len(rec.Images) == 0 {
		return nil, archdocs.ErrWorkspaceNotFound
	}

	return rec, nil
}

func (r *Repository) DeleteDocumentation(ctx context.Context, workspaceID uuid.UUID) error {
	tagSections, err := r.db.Exec(ctx,
		`DELETE FROM documentation_section WHERE workspace_id = $1`, workspaceID)
	if err != nil {
		return r.handlePostgresError("delete documentation", err)
	}
	tagImages, err := r.db.Exec(ctx,
		`DELETE FROM documentation_image WHERE workspace_id = $1`, workspaceID)
	if err != nil {
		return r.handlePostgresError("delete documentation", err)
	}

	if tagSections.RowsAffected() == 0 && tagImages.RowsAffected() == 0 {
		return archdocs.ErrWorkspaceNotFound
	}
	return nil
}

func (r *Repository) ListWorkspaces(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `
		SELECT workspace_id FROM documentation_section
		UNION
		SELECT workspace_id FROM documentation_image`)
	if err != nil {
		return nil, r.handlePostgresError("list workspaces", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
