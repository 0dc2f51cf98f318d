package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/zeebo/errs"

	"github.com/deppfellow/noteful/internal/model"
)

// Error is the class of every error returned by the PostgreSQL
// repositories. The driver error stays reachable with errors.As.
var Error = errs.Class("repository")

// DBTX is the subset of pgxpool.Pool the repositories use.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// FolderStore is the capability the folder service needs from a store.
//
// GetByID returns (nil, nil) when no row matches. Delete and Update return
// the number of affected rows; zero is not an error.
type FolderStore interface {
	List(ctx context.Context) ([]model.Folder, error)
	GetByID(ctx context.Context, id int64) (*model.Folder, error)
	Insert(ctx context.Context, newFolder model.NewFolder) (model.Folder, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Update(ctx context.Context, id int64, fields model.FolderUpdate) (int64, error)
}

// NoteStore is the capability the note service needs from a store. Same
// contract as FolderStore; Update also refreshes modified.
type NoteStore interface {
	List(ctx context.Context) ([]model.Note, error)
	GetByID(ctx context.Context, id int64) (*model.Note, error)
	Insert(ctx context.Context, newNote model.NewNote) (model.Note, error)
	Delete(ctx context.Context, id int64) (int64, error)
	Update(ctx context.Context, id int64, fields model.NoteUpdate) (int64, error)
}
