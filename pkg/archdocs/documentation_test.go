package archdocs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
)

func TestDocumentationHydrate(t *testing.T) {
	systemA := stubElement("1")
	systemB := stubElement("2")
	m := stubModel{"1": systemA, "2": systemB}

	restored := func(t *testing.T) *archdocs.Documentation {
		t.Helper()
		doc := archdocs.NewDocumentation(m)
		doc.SetSections([]archdocs.Section{
			{ElementID: "1", Type: archdocs.SectionTypeContext, Format: archdocs.FormatMarkdown, Content: "a"},
			{ElementID: "2", Type: archdocs.SectionTypeData, Format: archdocs.FormatMarkdown, Content: "b"},
		})
		return doc
	}

	t.Run("resolves every section against the model", func(t *testing.T) {
		doc := restored(t)

		for _, section := range doc.Sections() {
			assert.False(t, section.Hydrated())
		}

		require.NoError(t, doc.Hydrate())

		sections := doc.Sections()
		require.Len(t, sections, 2)
		for _, section := range sections {
			element, ok := section.Element()
			require.True(t, ok)
			assert.Equal(t, section.ElementID, element.ElementID())
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		doc := restored(t)
		require.NoError(t, doc.Hydrate())
		require.NoError(t, doc.Hydrate())

		for _, section := range doc.Sections() {
			assert.True(t, section.Hydrated())
		}
	})

	t.Run("dangling reference fails the call", func(t *testing.T) {
		doc := archdocs.NewDocumentation(m)
		doc.SetSections([]archdocs.Section{
			{ElementID: "1", Type: archdocs.SectionTypeContext, Format: archdocs.FormatMarkdown, Content: "a"},
			{ElementID: "99", Type: archdocs.SectionTypeData, Format: archdocs.FormatMarkdown, Content: "orphan"},
		})

		err := doc.Hydrate()
		require.Error(t, err)
		assert.ErrorIs(t, err, archdocs.ErrDanglingReference)

		var sectionErr *archdocs.SectionError
		require.ErrorAs(t, err, &sectionErr)
		assert.Equal(t, "99", sectionErr.ElementID)
	})

	t.Run("missing model fails", func(t *testing.T) {
		doc := archdocs.NewDocumentation(nil)
		assert.ErrorIs(t, doc.Hydrate(), archdocs.ErrModelNotBound)
	})

	t.Run("empty documentation hydrates cleanly", func(t *testing.T) {
		doc := archdocs.NewDocumentation(m)
		require.NoError(t, doc.Hydrate())
	})
}

func TestDocumentationRecord(t *testing.T) {
	systemA := stubElement("1")
	doc := archdocs.NewDocumentation(stubModel{"1": systemA})

	_, err := doc.AddSection(systemA, archdocs.SectionTypeContext, archdocs.FormatMarkdown, "context")
	require.NoError(t, err)
	doc.SetImages([]archdocs.Image{{Name: "a.png", ContentType: "image/png", Content: "YQ=="}})

	record := doc.Record()
	require.Len(t, record.Sections, 1)
	require.Len(t, record.Images, 1)
	assert.Equal(t, "context", record.Sections[0].Content)
	assert.Equal(t, "a.png", record.Images[0].Name)

	// The record is a snapshot, not a live view
	record.Sections[0].Content = "mutated"
	assert.Equal(t, "context", doc.Sections()[0].Content)
}
