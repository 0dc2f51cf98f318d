package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/noteful/internal/errs"
	"github.com/deppfellow/noteful/internal/middleware"
	"github.com/deppfellow/noteful/internal/model"
	"github.com/deppfellow/noteful/internal/server"
	"github.com/deppfellow/noteful/internal/service"
	"github.com/deppfellow/noteful/internal/validation"
)

// FolderNotFoundMessage is the 404 message for /api/folders/:id.
const FolderNotFoundMessage = "Folder doesn't exist"

// CreateFolderRequest is the body of POST /api/folders.
type CreateFolderRequest struct {
	FolderName string `json:"folder_name" validate:"required"`
}

func (r *CreateFolderRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return errs.NewBadRequestError(service.MissingFolderNameMessage, nil)
	}
	return nil
}

// UpdateFolderRequest is the body of PATCH /api/folders/:id.
type UpdateFolderRequest struct {
	FolderName string `json:"folder_name" validate:"required"`
}

func (r *UpdateFolderRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return errs.NewBadRequestError(service.FolderUpdateRequiredMessage, nil)
	}
	return nil
}

// FolderHandler serves the /api/folders routes.
type FolderHandler struct {
	Handler
	folders *service.FolderService
}

// NewFolderHandler creates a FolderHandler over the folder service.
func NewFolderHandler(s *server.Server, folders *service.FolderService) *FolderHandler {
	return &FolderHandler{
		Handler: NewHandler(s),
		folders: folders,
	}
}

// Resolve feeds the existence middleware of /api/folders/:id.
func (h *FolderHandler) Resolve() echo.MiddlewareFunc {
	return middleware.RequireEntity[model.Folder](middleware.FolderKey, h.folders.Resolve, FolderNotFoundMessage)
}

// ListFolders returns every folder.
func (h *FolderHandler) ListFolders(c echo.Context, _ *EmptyRequest) ([]FolderResponse, error) {
	folders, err := h.folders.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return serializeAll(folders, serializeFolder), nil
}

// CreateFolder stores a folder and points Location at it.
func (h *FolderHandler) CreateFolder(c echo.Context, req *CreateFolderRequest) (FolderResponse, error) {
	folder, err := h.folders.Insert(c.Request().Context(), model.NewFolder{FolderName: req.FolderName})
	if err != nil {
		return FolderResponse{}, err
	}

	middleware.GetLogger(c).Info().Int64("folder_id", folder.ID).Msg("folder created")
	setLocation(c, folder.ID)
	return serializeFolder(folder), nil
}

// GetFolder returns the folder resolved by the existence middleware.
func (h *FolderHandler) GetFolder(c echo.Context, _ *EmptyRequest) (FolderResponse, error) {
	folder, err := resolved[model.Folder](c, middleware.FolderKey)
	if err != nil {
		return FolderResponse{}, err
	}
	return serializeFolder(folder), nil
}

// DeleteFolder removes the folder and, through the schema, its notes.
func (h *FolderHandler) DeleteFolder(c echo.Context, _ *EmptyRequest) error {
	folder, err := resolved[model.Folder](c, middleware.FolderKey)
	if err != nil {
		return err
	}

	affected, err := h.folders.Delete(c.Request().Context(), folder.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.NewNotFoundError(FolderNotFoundMessage, nil)
	}

	middleware.GetLogger(c).Info().Int64("folder_id", folder.ID).Msg("folder deleted")
	return nil
}

// UpdateFolder renames the folder.
func (h *FolderHandler) UpdateFolder(c echo.Context, req *UpdateFolderRequest) error {
	folder, err := resolved[model.Folder](c, middleware.FolderKey)
	if err != nil {
		return err
	}

	_, err = h.folders.Update(c.Request().Context(), folder.ID, model.FolderUpdate{FolderName: &req.FolderName})
	return err
}
