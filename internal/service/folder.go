package service

import (
	"context"

	"github.com/deppfellow/noteful/internal/errs"
	"github.com/deppfellow/noteful/internal/model"
	"github.com/deppfellow/noteful/internal/repository"
)

const (
	MissingFolderNameMessage    = "Missing folder name in request body"
	FolderUpdateRequiredMessage = "Request body must contain 'folder_name'"
)

type FolderService struct {
	store repository.FolderStore
}

func NewFolderService(store repository.FolderStore) *FolderService {
	return &FolderService{store: store}
}

func (s *FolderService) List(ctx context.Context) ([]model.Folder, error) {
	return s.store.List(ctx)
}

// GetByID returns nil without an error when the folder does not exist.
func (s *FolderService) GetByID(ctx context.Context, id int64) (*model.Folder, error) {
	return s.store.GetByID(ctx, id)
}

// Resolve is GetByID as a Lookup, for the existence middleware.
func (s *FolderService) Resolve(ctx context.Context, id int64) (model.Lookup[model.Folder], error) {
	folder, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.NotFound[model.Folder](), err
	}
	if folder == nil {
		return model.NotFound[model.Folder](), nil
	}
	return model.Found(*folder), nil
}

func (s *FolderService) Insert(ctx context.Context, newFolder model.NewFolder) (model.Folder, error) {
	if newFolder.FolderName == "" {
		return model.Folder{}, errs.NewBadRequestError(MissingFolderNameMessage, nil)
	}
	return s.store.Insert(ctx, newFolder)
}

// Delete returns the number of deleted rows.
func (s *FolderService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.store.Delete(ctx, id)
}

// Update renames the folder. An update without folder_name is rejected.
func (s *FolderService) Update(ctx context.Context, id int64, fields model.FolderUpdate) (int64, error) {
	if fields.IsEmpty() || *fields.FolderName == "" {
		return 0, errs.NewBadRequestError(FolderUpdateRequiredMessage, nil)
	}
	return s.store.Update(ctx, id, fields)
}
