// Package model provides a minimal in-memory architecture model: software
// systems and their containers, addressable by stable identifiers. It
// implements the archdocs.Model collaborator used for hydrating
// documentation sections.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
)

// SoftwareSystem is a top-level element of the model
type SoftwareSystem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Containers []*Container `json:"containers,omitempty"`
}

// ElementID returns the system's stable identifier
func (s *SoftwareSystem) ElementID() string {
	return s.ID
}

// Container is a deployable/runnable unit within a software system
type Container struct {
	ID          string `json:"id"`
	SystemID    string `json:"systemId"`
	Name        string `json:"name"`
	Technology  string `json:"technology,omitempty"`
	Description string `json:"description,omitempty"`
}

// ElementID returns the container's stable identifier
func (c *Container) ElementID() string {
	return c.ID
}

// Model holds the elements of a workspace. Identifiers are assigned
// sequentially and are stable for the lifetime of the model.
type Model struct {
	mu       sync.RWMutex
	elements map[string]archdocs.Element
	systems  []*SoftwareSystem
	nextID   int
}

// New creates an empty model
func New() *Model {
	return &Model{
		elements: make(map[string]archdocs.Element),
	}
}

// AddSoftwareSystem adds a named software system. Names are unique across
// the model.
func (m *Model) AddSoftwareSystem(name, description string) (*SoftwareSystem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.systems {
		if existing.Name == name {
			return nil, fmt.Errorf("a software system named %q already exists", name)
		}
	}

	system := &SoftwareSystem{
		ID:          m.newElementID(),
		Name:        name,
		Description: description,
	}
	m.elements[system.ID] = system
	m.systems = append(m.systems, system)

	return system, nil
}

// AddContainer adds a named container to a software system. Names are unique
// within the owning system.
func (m *Model) AddContainer(system *SoftwareSystem, name, technology, description string) (*Container, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.elements[system.ID]; !ok {
		return nil, fmt.Errorf("software system %q is not part of this model", system.Name)
	}
	for _, existing := range system.Containers {
		if existing.Name == name {
			return nil, fmt.Errorf("a container named %q already exists in %q", name, system.Name)
		}
	}

	container := &Container{
		ID:          m.newElementID(),
		SystemID:    system.ID,
		Name:        name,
		Technology:  technology,
		Description: description,
	}
	m.elements[container.ID] = container
	system.Containers = append(system.Containers, container)

	return container, nil
}

// newElementID mints the next identifier. Caller holds the lock.
func (m *Model) newElementID() string {
	m.nextID++
	return strconv.Itoa(m.nextID)
}

// Element resolves an identifier to its element, or nil when unknown
func (m *Model) Element(id string) archdocs.Element {
	m.mu.RLock()
	defer m.mu.RUnlock()

	element, ok := m.elements[id]
	if !ok {
		return nil
	}
	return element
}

// SoftwareSystems returns the model's software systems in insertion order
func (m *Model) SoftwareSystems() []*SoftwareSystem {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*SoftwareSystem, len(m.systems))
	copy(result, m.systems)
	return result
}

// Definition is the JSON form of a model definition file
type Definition struct {
	SoftwareSystems []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Containers  []struct {
			Name        string `json:"name"`
			Technology  string `json:"technology"`
			Description string `json:"description"`
		} `json:"containers"`
	} `json:"softwareSystems"`
}

// LoadFile builds a model from a JSON definition file listing software
// systems and their containers. Identifiers are assigned in file order.
func LoadFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model definition: %w", err)
	}

	var def Definition
	if err := json.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parse model definition: %w", err)
	}

	m := New()
	for _, sys := range def.SoftwareSystems {
		system, err := m.AddSoftwareSystem(sys.Name, sys.Description)
		if err != nil {
			return nil, err
		}
		for _, c := range sys.Containers {
			if _, err := m.AddContainer(system, c.Name, c.Technology, c.Description); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}
