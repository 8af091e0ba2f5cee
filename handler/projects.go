package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mstgnz/checkout/infra/config"
	"github.com/mstgnz/checkout/infra/response"
)

// ProjectStore defines the storage operations of merchant projects
type ProjectStore interface {
	ProjectResolver
	SaveProject(ctx context.Context, p config.Project) error
	ListProjects(ctx context.Context) ([]config.Project, error)
	DeleteProject(ctx context.Context, name string) error
}

// ProjectHandler manages merchant project credentials
type ProjectHandler struct {
	store ProjectStore
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(store ProjectStore) *ProjectHandler {
	return &ProjectHandler{store: store}
}

// ProjectRequest is the body of a project upsert
type ProjectRequest struct {
	Name      string `json:"name"`
	ProjectID int    `json:"projectId"`
	Password  string `json:"password"`
}

// SaveProject creates a project or replaces its credentials
func (h *ProjectHandler) SaveProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	project := config.Project{Name: req.Name, ProjectID: req.ProjectID, Password: req.Password}
	if err := config.App().Validator.Struct(project); err != nil {
		response.Error(w, http.StatusBadRequest, "Validation error", err)
		return
	}

	if err := h.store.SaveProject(r.Context(), project); err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to save project", err)
		return
	}

	saved, err := h.store.GetProject(r.Context(), project.Name)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to load project", err)
		return
	}

	response.Success(w, http.StatusOK, "Project saved", saved)
}

// ListProjects lists the configured projects without their passwords
func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.store.ListProjects(r.Context())
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}

	response.Success(w, http.StatusOK, "Projects retrieved", map[string]any{
		"count":    len(projects),
		"projects": projects,
	})
}

// GetProject returns one project
func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.store.GetProject(r.Context(), chi.URLParam(r, "project"))
	if err != nil {
		writeProjectError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Project retrieved", project)
}

// DeleteProject removes a project
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "project")
	if err := h.store.DeleteProject(r.Context(), name); err != nil {
		writeProjectError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Project deleted", map[string]string{"name": name})
}

func writeProjectError(w http.ResponseWriter, err error) {
	if errors.Is(err, config.ErrProjectNotFound) {
		response.Error(w, http.StatusNotFound, "Project not found", err)
		return
	}
	response.Error(w, http.StatusInternalServerError, "Project storage error", err)
}
