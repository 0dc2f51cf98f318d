package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/noteful/internal/model"
)

const (
	listFolders = `
		SELECT id, folder_name, date_created
		FROM folders
		ORDER BY id`

	getFolderByID = `
		SELECT id, folder_name, date_created
		FROM folders
		WHERE id = @id`

	insertFolder = `
		INSERT INTO folders (folder_name)
		VALUES (@folder_name)
		RETURNING id, folder_name, date_created`

	deleteFolder = `DELETE FROM folders WHERE id = @id`

	// COALESCE keeps the stored value for every parameter passed as NULL.
	updateFolder = `
		UPDATE folders
		SET folder_name = COALESCE(@folder_name, folder_name)
		WHERE id = @id`
)

// FolderRepository is the PostgreSQL FolderStore.
type FolderRepository struct {
	db DBTX
}

func NewFolderRepository(db DBTX) *FolderRepository {
	return &FolderRepository{db: db}
}

func (r *FolderRepository) List(ctx context.Context) ([]model.Folder, error) {
	rows, err := r.db.Query(ctx, listFolders)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	folders, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Folder])
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return folders, nil
}

func (r *FolderRepository) GetByID(ctx context.Context, id int64) (*model.Folder, error) {
	rows, err := r.db.Query(ctx, getFolderByID, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, Error.Wrap(err)
	}

	folder, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Folder])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return &folder, nil
}

func (r *FolderRepository) Insert(ctx context.Context, newFolder model.NewFolder) (model.Folder, error) {
	rows, err := r.db.Query(ctx, insertFolder, pgx.NamedArgs{
		"folder_name": newFolder.FolderName,
	})
	if err != nil {
		return model.Folder{}, Error.Wrap(err)
	}

	folder, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Folder])
	if err != nil {
		return model.Folder{}, Error.Wrap(err)
	}
	return folder, nil
}

func (r *FolderRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteFolder, pgx.NamedArgs{"id": id})
	if err != nil {
		return 0, Error.Wrap(err)
	}
	return tag.RowsAffected(), nil
}

func (r *FolderRepository) Update(ctx context.Context, id int64, fields model.FolderUpdate) (int64, error) {
	tag, err := r.db.Exec(ctx, updateFolder, pgx.NamedArgs{
		"id":          id,
		"folder_name": fields.FolderName,
	})
	if err != nil {
		return 0, Error.Wrap(err)
	}
	return tag.RowsAffected(), nil
}
