package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/raelgalvan/archdocs/pkg/archdocs"
	"github.com/raelgalvan/archdocs/pkg/archdocs/model"
)

// DocumentationHandler handles HTTP requests for workspace documentation
type DocumentationHandler struct {
	service archdocs.Service
	model   *model.Model
}

// NewDocumentationHandler creates a new documentation handler
func NewDocumentationHandler(service archdocs.Service, m *model.Model) *DocumentationHandler {
	return &DocumentationHandler{
		service: service,
		model:   m,
	}
}

// Routes returns the routes for workspace documentation
func (h *DocumentationHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/elements", h.CreateElement)
	r.Get("/elements", h.ListElements)

	r.Post("/sections", h.CreateSection)
	r.Get("/sections", h.ListSections)

	r.Get("/images", h.ListImages)
	r.Post("/images/ingest", h.IngestImages)

	r.Post("/hydrate", h.Hydrate)

	r.Post("/snapshot/export", h.ExportSnapshot)
	r.Post("/snapshot/import", h.ImportSnapshot)

	return r
}

// CreateElementRequest is the request body for registering a model element
type CreateElementRequest struct {
	Kind        string `json:"kind"` // "softwareSystem" or "container"
	SystemID    string `json:"system_id,omitempty"`
	Name        string `json:"name"`
	Technology  string `json:"technology,omitempty"`
	Description string `json:"description,omitempty"`
}

// ElementResponse is the response body for a model element
type ElementResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	SystemID    string `json:"system_id,omitempty"`
	Name        string `json:"name"`
	Technology  string `json:"technology,omitempty"`
	Description string `json:"description,omitempty"`
}

// CreateElement registers a software system or container in the model
func (h *DocumentationHandler) CreateElement(w http.ResponseWriter, r *http.Request) {
	var req CreateElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	switch req.Kind {
	case "softwareSystem":
		system, err := h.model.AddSoftwareSystem(req.Name, req.Description)
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, ElementResponse{
			ID:          system.ID,
			Kind:        "softwareSystem",
			Name:        system.Name,
			Description: system.Description,
		})

	case "container":
		var system *model.SoftwareSystem
		for _, s := range h.model.SoftwareSystems() {
			if s.ID == req.SystemID {
				system = s
				break
			}
		}
		if system == nil {
			http.Error(w, "software system not found", http.StatusNotFound)
			return
		}
		container, err := h.model.AddContainer(system, req.Name, req.Technology, req.Description)
		if err != nil {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		render.Status(r, http.StatusCreated)
		render.JSON(w, r, ElementResponse{
			ID:          container.ID,
			Kind:        "container",
			SystemID:    container.SystemID,
			Name:        container.Name,
			Technology:  container.Technology,
			Description: container.Description,
		})

	default:
		http.Error(w, "kind must be 'softwareSystem' or 'container'", http.StatusBadRequest)
	}
}

// ListElements lists the model's elements
func (h *DocumentationHandler) ListElements(w http.ResponseWriter, r *http.Request) {
	var elements []ElementResponse
	for _, system := range h.model.SoftwareSystems() {
		elements = append(elements, ElementResponse{
			ID:          system.ID,
			Kind:        "softwareSystem",
			Name:        system.Name,
			Description: system.Description,
		})
		for _, container := range system.Containers {
			elements = append(elements, ElementResponse{
				ID:          container.ID,
				Kind:        "container",
				SystemID:    container.SystemID,
				Name:        container.Name,
				Technology:  container.Technology,
				Description: container.Description,
			})
		}
	}
	render.JSON(w, r, elements)
}

// CreateSectionRequest is the request body for adding a section
type CreateSectionRequest struct {
	ElementID string `json:"element_id"`
	Container bool   `json:"container,omitempty"` // container section (type fixed to Components)
	Type      string `json:"type,omitempty"`
	Format    string `json:"format"`
	Content   string `json:"content"`
}

// SectionResponse is the response body for a section
type SectionResponse struct {
	ElementID string `json:"element_id"`
	Type      string `json:"type"`
	Format    string `json:"format"`
	Content   string `json:"content"`
	Hydrated  bool   `json:"hydrated"`
}

func sectionResponse(s archdocs.Section) SectionResponse {
	return SectionResponse{
		ElementID: s.ElementID,
		Type:      string(s.Type),
		Format:    string(s.Format),
		Content:   s.Content,
		Hydrated:  s.Hydrated(),
	}
}

// CreateSection adds a documentation section for a model element
func (h *DocumentationHandler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req CreateSectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := archdocs.Format(req.Format)
	if !format.IsValid() {
		http.Error(w, "invalid format", http.StatusBadRequest)
		return
	}

	var section *archdocs.Section
	var err error
	if req.Container {
		section, err = h.service.AddContainerSection(r.Context(), archdocs.AddContainerSectionRequest{
			ContainerID: req.ElementID,
			Format:      format,
			Content:     req.Content,
		})
	} else {
		typ := archdocs.SectionType(req.Type)
		if !typ.IsValid() {
			http.Error(w, "invalid section type", http.StatusBadRequest)
			return
		}
		section, err = h.service.AddSection(r.Context(), archdocs.AddSectionRequest{
			ElementID: req.ElementID,
			Type:      typ,
			Format:    format,
			Content:   req.Content,
		})
	}
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, sectionResponse(*section))
}

// ListSections lists the workspace's documentation sections
func (h *DocumentationHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.service.ListSections(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]SectionResponse, 0, len(sections))
	for _, s := range sections {
		resp = append(resp, sectionResponse(s))
	}
	render.JSON(w, r, resp)
}

// ImageResponse is the response body for an image. The base64 payload is
// omitted from listings.
type ImageResponse struct {
	Name        string `json:"name"`
	ContentType string `json:"type"`
	Size        int    `json:"size"`
}

// ListImages lists the workspace's images
func (h *DocumentationHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListImages(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		resp = append(resp, ImageResponse{
			Name:        img.Name,
			ContentType: img.ContentType,
			Size:        len(img.Content),
		})
	}
	render.JSON(w, r, resp)
}

// IngestImagesRequest is the request body for directory ingestion
type IngestImagesRequest struct {
	Dir string `json:"dir"`
}

// IngestImages imports the image files from a directory on the server
func (h *DocumentationHandler) IngestImages(w http.ResponseWriter, r *http.Request) {
	var req IngestImagesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	count, err := h.service.IngestImages(r.Context(), req.Dir)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	render.JSON(w, r, map[string]int{"ingested": count})
}

// Hydrate resolves section element references against the model
func (h *DocumentationHandler) Hydrate(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Hydrate(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"status": "hydrated"})
}

// SnapshotRequest is the request body for snapshot export/import
type SnapshotRequest struct {
	Backend string `json:"backend"`
	Key     string `json:"key"`
}

// ExportSnapshot writes the documentation snapshot to a storage backend
func (h *DocumentationHandler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	var req SnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.ExportSnapshot(r.Context(), req.Backend, req.Key); err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"status": "exported", "key": req.Key})
}

// ImportSnapshot restores the documentation from a stored snapshot
func (h *DocumentationHandler) ImportSnapshot(w http.ResponseWriter, r *http.Request) {
	var req SnapshotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.ImportSnapshot(r.Context(), req.Backend, req.Key); err != nil {
		h.writeError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]string{"status": "imported", "key": req.Key})
}

// writeError maps domain errors onto HTTP status codes
func (h *DocumentationHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, archdocs.ErrDuplicateSection):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, archdocs.ErrDanglingReference),
		errors.Is(err, archdocs.ErrWorkspaceNotFound),
		errors.Is(err, archdocs.ErrBlobNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, archdocs.ErrBackendNotFound),
		errors.Is(err, archdocs.ErrModelNotBound):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		slog.Error("documentation request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
