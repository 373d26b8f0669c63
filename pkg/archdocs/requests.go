package archdocs

// Request DTOs

// AddSectionRequest contains parameters for adding a software system section.
// The element identifier is resolved against the bound model before the
// section is created.
type AddSectionRequest struct {
	ElementID string
	Type      SectionType
	Format    Format
	Content   string
}

// AddSectionFromFileRequest contains parameters for adding a software system
// section read from a file
type AddSectionFromFileRequest struct {
	ElementID string
	Type      SectionType
	Format    Format
	Path      string
}

// AddContainerSectionRequest contains parameters for adding a container
// section. The section type is always Components.
type AddContainerSectionRequest struct {
	ContainerID string
	Format      Format
	Content     string
}
