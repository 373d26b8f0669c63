package archdocs

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// NoopEventSink is a no-operation implementation of EventSink
type NoopEventSink struct{}

// NewNoopEventSink creates a new no-operation event sink
func NewNoopEventSink() EventSink {
	return &NoopEventSink{}
}

// SectionAdded does nothing and returns nil
func (n *NoopEventSink) SectionAdded(ctx context.Context, section *Section) error {
	return nil
}

// ImagesIngested does nothing and returns nil
func (n *NoopEventSink) ImagesIngested(ctx context.Context, dir string, count int) error {
	return nil
}

// DocumentationHydrated does nothing and returns nil
func (n *NoopEventSink) DocumentationHydrated(ctx context.Context, sections int) error {
	return nil
}

// DocumentationSaved does nothing and returns nil
func (n *NoopEventSink) DocumentationSaved(ctx context.Context, workspaceID uuid.UUID) error {
	return nil
}

// LoggingEventSink is an event sink that logs events but takes no other
// action. Useful for development and debugging.
type LoggingEventSink struct {
	logger *slog.Logger
}

// NewLoggingEventSink creates an event sink that logs to the given logger.
// A nil logger falls back to slog.Default.
func NewLoggingEventSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingEventSink{logger: logger}
}

func (l *LoggingEventSink) SectionAdded(ctx context.Context, section *Section) error {
	l.logger.InfoContext(ctx, "section added",
		"element_id", section.ElementID,
		"type", section.Type,
		"format", section.Format)
	return nil
}

func (l *LoggingEventSink) ImagesIngested(ctx context.Context, dir string, count int) error {
	l.logger.InfoContext(ctx, "images ingested", "dir", dir, "count", count)
	return nil
}

func (l *LoggingEventSink) DocumentationHydrated(ctx context.Context, sections int) error {
	l.logger.InfoContext(ctx, "documentation hydrated", "sections", sections)
	return nil
}

func (l *LoggingEventSink) DocumentationSaved(ctx context.Context, workspaceID uuid.UUID) error {
	l.logger.InfoContext(ctx, "documentation saved", "workspace_id", workspaceID)
	return nil
}
