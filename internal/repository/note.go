package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/noteful/internal/model"
)

const (
	listNotes = `
		SELECT id, note_name, note_text, modified, folderid
		FROM notes
		ORDER BY id`

	getNoteByID = `
		SELECT id, note_name, note_text, modified, folderid
		FROM notes
		WHERE id = @id`

	insertNote = `
		INSERT INTO notes (note_name, note_text, folderid)
		VALUES (@note_name, @note_text, @folderid)
		RETURNING id, note_name, note_text, modified, folderid`

	deleteNote = `DELETE FROM notes WHERE id = @id`

	updateNote = `
		UPDATE notes
		SET note_name = COALESCE(@note_name, note_name),
		    note_text = COALESCE(@note_text, note_text),
		    folderid  = COALESCE(@folderid, folderid),
		    modified  = now()
		WHERE id = @id`
)

// NoteRepository is the PostgreSQL NoteStore. The folderid foreign key is
// enforced by the schema, not here.
type NoteRepository struct {
	db DBTX
}

func NewNoteRepository(db DBTX) *NoteRepository {
	return &NoteRepository{db: db}
}

func (r *NoteRepository) List(ctx context.Context) ([]model.Note, error) {
	rows, err := r.db.Query(ctx, listNotes)
	if err != nil {
		return nil, Error.Wrap(err)
	}

	notes, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Note])
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return notes, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id int64) (*model.Note, error) {
	rows, err := r.db.Query(ctx, getNoteByID, pgx.NamedArgs{"id": id})
	if err != nil {
		return nil, Error.Wrap(err)
	}

	note, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Note])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, Error.Wrap(err)
	}
	return &note, nil
}

func (r *NoteRepository) Insert(ctx context.Context, newNote model.NewNote) (model.Note, error) {
	rows, err := r.db.Query(ctx, insertNote, pgx.NamedArgs{
		"note_name": newNote.NoteName,
		"note_text": newNote.NoteText,
		"folderid":  newNote.FolderID,
	})
	if err != nil {
		return model.Note{}, Error.Wrap(err)
	}

	note, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Note])
	if err != nil {
		return model.Note{}, Error.Wrap(err)
	}
	return note, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, deleteNote, pgx.NamedArgs{"id": id})
	if err != nil {
		return 0, Error.Wrap(err)
	}
	return tag.RowsAffected(), nil
}

func (r *NoteRepository) Update(ctx context.Context, id int64, fields model.NoteUpdate) (int64, error) {
	tag, err := r.db.Exec(ctx, updateNote, pgx.NamedArgs{
		"id":        id,
		"note_name": fields.NoteName,
		"note_text": fields.NoteText,
		"folderid":  fields.FolderID,
	})
	if err != nil {
		return 0, Error.Wrap(err)
	}
	return tag.RowsAffected(), nil
}
