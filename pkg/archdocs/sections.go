package archdocs

import (
	"sort"
	"sync"
)

// sectionKey is the uniqueness key for sections: one section per owning
// element and section type.
type sectionKey struct {
	elementID string
	typ       SectionType
}

// SectionStore holds the documentation sections of a workspace and enforces
// the one-section-per-(element, type) invariant with an O(1) keyed lookup.
type SectionStore struct {
	mu       sync.RWMutex
	sections map[sectionKey]*Section
}

// NewSectionStore creates an empty section store
func NewSectionStore() *SectionStore {
	return &SectionStore{
		sections: make(map[sectionKey]*Section),
	}
}

// Add constructs a section owned by the given element and inserts it. If a
// section with the same element and type already exists the store is left
// unchanged and the error wraps ErrDuplicateSection.
func (st *SectionStore) Add(owner Element, typ SectionType, format Format, content string) (*Section, error) {
	key := sectionKey{elementID: owner.ElementID(), typ: typ}

	st.mu.Lock()
	defer st.mu.Unlock()

	if _, exists := st.sections[key]; exists {
		return nil, &SectionError{
			ElementID: key.elementID,
			Type:      typ,
			Op:        "add",
			Err:       ErrDuplicateSection,
		}
	}

	section := &Section{
		ElementID: key.elementID,
		Type:      typ,
		Format:    format,
		Content:   content,
		element:   owner,
	}
	st.sections[key] = section

	return section, nil
}

// All returns a copy of the stored sections, ordered by element identifier
// and type. Mutating the returned slice does not affect the store.
func (st *SectionStore) All() []Section {
	st.mu.RLock()
	defer st.mu.RUnlock()

	result := make([]Section, 0, len(st.sections))
	for _, section := range st.sections {
		result = append(result, *section)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ElementID != result[j].ElementID {
			return result[i].ElementID < result[j].ElementID
		}
		return result[i].Type < result[j].Type
	})

	return result
}

// Len returns the number of stored sections
func (st *SectionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sections)
}

// ReplaceAll replaces the store contents with the given sections. It is the
// restore path used when loading persisted state, which is trusted to be
// valid already: no duplicate checking happens here.
func (st *SectionStore) ReplaceAll(sections []Section) {
	next := make(map[sectionKey]*Section, len(sections))
	for i := range sections {
		section := sections[i]
		next[sectionKey{elementID: section.ElementID, typ: section.Type}] = &section
	}

	st.mu.Lock()
	st.sections = next
	st.mu.Unlock()
}

// hydrate resolves every section's element identifier against the model and
// attaches the live element in place. Resolution failures abort with an
// error wrapping ErrDanglingReference; sections resolved before the failing
// one keep their references, and a later successful call produces the same
// links (resolution is re-run for every section each time).
func (st *SectionStore) hydrate(model Model) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	for key, section := range st.sections {
		element := model.Element(key.elementID)
		if element == nil {
			return &SectionError{
				ElementID: key.elementID,
				Type:      key.typ,
				Op:        "hydrate",
				Err:       ErrDanglingReference,
			}
		}
		section.element = element
	}

	return nil
}
