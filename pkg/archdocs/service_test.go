package archdocs_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
	"github.com/raelgalvan/archdocs/pkg/archdocs/model"
	memoryrepo "github.com/raelgalvan/archdocs/pkg/archdocs/repo/memory"
	memorystorage "github.com/raelgalvan/archdocs/pkg/archdocs/storage/memory"
)

type testFixture struct {
	svc       archdocs.Service
	model     *model.Model
	system    *model.SoftwareSystem
	container *model.Container
	repo      archdocs.Repository
}

func setupTestService(t *testing.T, extra ...archdocs.Option) *testFixture {
	t.Helper()

	m := model.New()
	system, err := m.AddSoftwareSystem("Internet Banking System", "Online banking")
	require.NoError(t, err)
	container, err := m.AddContainer(system, "API Application", "Go", "Backend API")
	require.NoError(t, err)

	repo := memoryrepo.New()
	options := append([]archdocs.Option{
		archdocs.WithRepository(repo),
		archdocs.WithBlobStore("memory", memorystorage.New()),
	}, extra...)

	svc, err := archdocs.New(m, options...)
	require.NoError(t, err)

	return &testFixture{svc: svc, model: m, system: system, container: container, repo: repo}
}

func TestServiceAddSection(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the element before adding", func(t *testing.T) {
		fx := setupTestService(t)

		section, err := fx.svc.AddSection(ctx, archdocs.AddSectionRequest{
			ElementID: fx.system.ID,
			Type:      archdocs.SectionTypeContext,
			Format:    archdocs.FormatMarkdown,
			Content:   "# Context",
		})
		require.NoError(t, err)
		assert.True(t, section.Hydrated())

		element, ok := section.Element()
		require.True(t, ok)
		assert.Equal(t, fx.system.ID, element.ElementID())
	})

	t.Run("unknown element fails fast", func(t *testing.T) {
		fx := setupTestService(t)

		_, err := fx.svc.AddSection(ctx, archdocs.AddSectionRequest{
			ElementID: "99",
			Type:      archdocs.SectionTypeContext,
			Format:    archdocs.FormatMarkdown,
			Content:   "orphan",
		})
		assert.ErrorIs(t, err, archdocs.ErrDanglingReference)

		sections, err := fx.svc.ListSections(ctx)
		require.NoError(t, err)
		assert.Empty(t, sections)
	})

	t.Run("duplicate surfaces the store error", func(t *testing.T) {
		fx := setupTestService(t)

		req := archdocs.AddSectionRequest{
			ElementID: fx.system.ID,
			Type:      archdocs.SectionTypeQualityAttributes,
			Format:    archdocs.FormatMarkdown,
			Content:   "quality",
		}
		_, err := fx.svc.AddSection(ctx, req)
		require.NoError(t, err)
		_, err = fx.svc.AddSection(ctx, req)
		assert.ErrorIs(t, err, archdocs.ErrDuplicateSection)
	})

	t.Run("container sections use the Components type", func(t *testing.T) {
		fx := setupTestService(t)

		section, err := fx.svc.AddContainerSection(ctx, archdocs.AddContainerSectionRequest{
			ContainerID: fx.container.ID,
			Format:      archdocs.FormatMarkdown,
			Content:     "## Components",
		})
		require.NoError(t, err)
		assert.Equal(t, archdocs.SectionTypeComponents, section.Type)
	})
}

func TestServiceSaveLoad(t *testing.T) {
	ctx := context.Background()
	workspaceID := uuid.New()

	fx := setupTestService(t, archdocs.WithWorkspaceID(workspaceID))
	assert.Equal(t, workspaceID, fx.svc.WorkspaceID())

	_, err := fx.svc.AddSection(ctx, archdocs.AddSectionRequest{
		ElementID: fx.system.ID,
		Type:      archdocs.SectionTypeContext,
		Format:    archdocs.FormatMarkdown,
		Content:   "# Context",
	})
	require.NoError(t, err)
	_, err = fx.svc.AddContainerSection(ctx, archdocs.AddContainerSectionRequest{
		ContainerID: fx.container.ID,
		Format:      archdocs.FormatAsciiDoc,
		Content:     "== Components",
	})
	require.NoError(t, err)
	require.NoError(t, fx.svc.Save(ctx))

	t.Run("load restores and hydrates", func(t *testing.T) {
		// A second service over the same repository and workspace, as a
		// fresh process would build it.
		restored, err := archdocs.New(fx.model,
			archdocs.WithRepository(fx.repo),
			archdocs.WithWorkspaceID(workspaceID),
		)
		require.NoError(t, err)
		require.NoError(t, restored.Load(ctx))

		sections, err := restored.ListSections(ctx)
		require.NoError(t, err)
		require.Len(t, sections, 2)
		for _, section := range sections {
			assert.True(t, section.Hydrated())
		}
	})

	t.Run("load of an unknown workspace fails", func(t *testing.T) {
		other, err := archdocs.New(fx.model,
			archdocs.WithRepository(fx.repo),
			archdocs.WithWorkspaceID(uuid.New()),
		)
		require.NoError(t, err)
		assert.ErrorIs(t, other.Load(ctx), archdocs.ErrWorkspaceNotFound)
	})

	t.Run("load fails when a persisted reference dangles", func(t *testing.T) {
		restored, err := archdocs.New(model.New(),
			archdocs.WithRepository(fx.repo),
			archdocs.WithWorkspaceID(workspaceID),
		)
		require.NoError(t, err)
		assert.ErrorIs(t, restored.Load(ctx), archdocs.ErrDanglingReference)
	})
}

func TestServiceSnapshots(t *testing.T) {
	ctx := context.Background()

	fx := setupTestService(t)
	_, err := fx.svc.AddSection(ctx, archdocs.AddSectionRequest{
		ElementID: fx.system.ID,
		Type:      archdocs.SectionTypeContext,
		Format:    archdocs.FormatMarkdown,
		Content:   "# Context",
	})
	require.NoError(t, err)

	t.Run("export then import round trips", func(t *testing.T) {
		require.NoError(t, fx.svc.ExportSnapshot(ctx, "memory", "snap.json"))

		other := setupTestService(t)
		backend, err := fx.svc.GetBackend("memory")
		require.NoError(t, err)
		other.svc.RegisterBackend("shared", backend)

		require.NoError(t, other.svc.ImportSnapshot(ctx, "shared", "snap.json"))

		sections, err := other.svc.ListSections(ctx)
		require.NoError(t, err)
		require.Len(t, sections, 1)
		assert.Equal(t, "# Context", sections[0].Content)
		assert.True(t, sections[0].Hydrated())
	})

	t.Run("unknown backend fails", func(t *testing.T) {
		err := fx.svc.ExportSnapshot(ctx, "s3", "snap.json")
		assert.ErrorIs(t, err, archdocs.ErrBackendNotFound)
	})

	t.Run("missing snapshot key fails", func(t *testing.T) {
		err := fx.svc.ImportSnapshot(ctx, "memory", "does-not-exist.json")
		assert.ErrorIs(t, err, archdocs.ErrBlobNotFound)
	})
}

func TestServiceWithoutRepository(t *testing.T) {
	ctx := context.Background()

	m := model.New()
	svc, err := archdocs.New(m)
	require.NoError(t, err)

	assert.Error(t, svc.Save(ctx))
	assert.Error(t, svc.Load(ctx))
}

func TestServiceRequiresModel(t *testing.T) {
	_, err := archdocs.New(nil)
	assert.Error(t, err)
}
