package archdocs

import (
	"crypto/sha256"
	"encoding/hex"
)

// SectionType is the domain type for documentation section categories.
type SectionType string

// Section type constants (typed).
const (
	SectionTypeContext                    SectionType = "Context"
	SectionTypeFunctionalOverview         SectionType = "FunctionalOverview"
	SectionTypeQualityAttributes          SectionType = "QualityAttributes"
	SectionTypeConstraints                SectionType = "Constraints"
	SectionTypePrinciples                 SectionType = "Principles"
	SectionTypeSoftwareArchitecture       SectionType = "SoftwareArchitecture"
	SectionTypeContainers                 SectionType = "Containers"
	SectionTypeComponents                 SectionType = "Components"
	SectionTypeData                       SectionType = "Data"
	SectionTypeInfrastructureArchitecture SectionType = "InfrastructureArchitecture"
	SectionTypeDeployment                 SectionType = "Deployment"
	SectionTypeOperationAndSupport        SectionType = "OperationAndSupport"
	SectionTypeUsage                      SectionType = "Usage"
	SectionTypeDecisionLog                SectionType = "DecisionLog"
)

// IsValid reports whether t is one of the known section types.
func (t SectionType) IsValid() bool {
	switch t {
	case SectionTypeContext, SectionTypeFunctionalOverview,
		SectionTypeQualityAttributes, SectionTypeConstraints,
		SectionTypePrinciples, SectionTypeSoftwareArchitecture,
		SectionTypeContainers, SectionTypeComponents, SectionTypeData,
		SectionTypeInfrastructureArchitecture, SectionTypeDeployment,
		SectionTypeOperationAndSupport, SectionTypeUsage,
		SectionTypeDecisionLog:
		return true
	}
	return false
}

// Format is the domain type for section content formats.
type Format string

// Format constants (typed).
const (
	FormatMarkdown Format = "Markdown"
	FormatAsciiDoc Format = "AsciiDoc"
	FormatText     Format = "Text"
)

// IsValid reports whether f is one of the known formats.
func (f Format) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatAsciiDoc, FormatText:
		return true
	}
	return false
}

// Element is any addressable architecture-model entity (software system,
// container, ...). The documentation layer never looks past its stable
// identifier.
type Element interface {
	ElementID() string
}

// Model resolves element identifiers to live elements. Element returns nil
// for identifiers with no corresponding element.
type Model interface {
	Element(id string) Element
}

// Section is a block of documentation text tied to one model element and one
// section type. At most one section per (element, type) pair exists in a
// store.
//
// ElementID is always present and is what gets persisted. The resolved
// element is populated either at construction time (when the section is
// added with a live element) or by Documentation.Hydrate after a restore.
type Section struct {
	ElementID string      `json:"elementId"`
	Type      SectionType `json:"type"`
	Format    Format      `json:"format"`
	Content   string      `json:"content"`

	element Element
}

// Element returns the resolved model element, if the section has been
// hydrated.
func (s *Section) Element() (Element, bool) {
	if s.element == nil {
		return nil, false
	}
	return s.element, true
}

// Hydrated reports whether the section's element reference has been resolved.
func (s *Section) Hydrated() bool {
	return s.element != nil
}

// Image is a named, content-typed, base64-encoded binary asset attached to
// the workspace. Two images with the same name, content type and payload are
// the same image.
type Image struct {
	Name        string `json:"name"`
	ContentType string `json:"type"`
	Content     string `json:"content"`
}

// Key returns the identity of the image under set semantics: a hash over all
// three attributes.
func (i Image) Key() string {
	h := sha256.New()
	h.Write([]byte(i.Name))
	h.Write([]byte{0})
	h.Write([]byte(i.ContentType))
	h.Write([]byte{0})
	h.Write([]byte(i.Content))
	return hex.EncodeToString(h.Sum(nil))
}
