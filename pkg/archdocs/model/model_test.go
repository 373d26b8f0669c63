package model_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raelgalvan/archdocs/pkg/archdocs/model"
)

func TestModelAddSoftwareSystem(t *testing.T) {
	m := model.New()

	system, err := m.AddSoftwareSystem("Internet Banking System", "Online banking")
	require.NoError(t, err)
	assert.Equal(t, "1", system.ID)
	assert.Equal(t, "Internet Banking System", system.Name)

	t.Run("identifiers are sequential", func(t *testing.T) {
		second, err := m.AddSoftwareSystem("Mainframe", "")
		require.NoError(t, err)
		assert.Equal(t, "2", second.ID)
	})

	t.Run("duplicate names are rejected", func(t *testing.T) {
		_, err := m.AddSoftwareSystem("Internet Banking System", "again")
		assert.Error(t, err)
	})
}

func TestModelAddContainer(t *testing.T) {
	m := model.New()
	system, err := m.AddSoftwareSystem("Internet Banking System", "")
	require.NoError(t, err)

	container, err := m.AddContainer(system, "API Application", "Go", "Backend API")
	require.NoError(t, err)
	assert.Equal(t, "2", container.ID)
	assert.Equal(t, system.ID, container.SystemID)

	t.Run("duplicate names within a system are rejected", func(t *testing.T) {
		_, err := m.AddContainer(system, "API Application", "Go", "again")
		assert.Error(t, err)
	})

	t.Run("same name in another system is fine", func(t *testing.T) {
		other, err := m.AddSoftwareSystem("Mainframe", "")
		require.NoError(t, err)
		_, err = m.AddContainer(other, "API Application", "COBOL", "")
		assert.NoError(t, err)
	})

	t.Run("foreign system is rejected", func(t *testing.T) {
		foreign := &model.SoftwareSystem{ID: "99", Name: "Elsewhere"}
		_, err := m.AddContainer(foreign, "Thing", "", "")
		assert.Error(t, err)
	})
}

func TestModelElement(t *testing.T) {
	m := model.New()
	system, err := m.AddSoftwareSystem("Internet Banking System", "")
	require.NoError(t, err)
	container, err := m.AddContainer(system, "API Application", "Go", "")
	require.NoError(t, err)

	assert.Equal(t, system.ID, m.Element(system.ID).ElementID())
	assert.Equal(t, container.ID, m.Element(container.ID).ElementID())
	assert.Nil(t, m.Element("99"))
	assert.Nil(t, m.Element(""))
}

func TestLoadFile(t *testing.T) {
	t.Run("builds the model in file order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.json")
		require.NoError(t, os.WriteFile(path, []byte(`{
			"softwareSystems": [
				{
					"name": "Internet Banking System",
					"description": "Online banking",
					"containers": [
						{"name": "Web Application", "technology": "Go"},
						{"name": "Database", "technology": "PostgreSQL"}
					]
				},
				{"name": "Mainframe"}
			]
		}`), 0644))

		m, err := model.LoadFile(path)
		require.NoError(t, err)

		systems := m.SoftwareSystems()
		require.Len(t, systems, 2)
		assert.Equal(t, "1", systems[0].ID)
		require.Len(t, systems[0].Containers, 2)
		assert.Equal(t, "2", systems[0].Containers[0].ID)
		assert.Equal(t, "3", systems[0].Containers[1].ID)
		assert.Equal(t, "4", systems[1].ID)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := model.LoadFile(filepath.Join(t.TempDir(), "missing.json"))
		assert.Error(t, err)
	})

	t.Run("invalid JSON fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))
		_, err := model.LoadFile(path)
		assert.Error(t, err)
	})
}
