package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/noteful/internal/errs"
	"github.com/deppfellow/noteful/internal/model"
	"github.com/deppfellow/noteful/internal/repository"
)

const NoteUpdateRequiredMessage = "Request body must contain 'note_name', 'note_text', or 'folderid'"

// MissingFieldMessage is the 400 message for a required note field.
func MissingFieldMessage(field string) string {
	return fmt.Sprintf("Missing '%s' in request body", field)
}

type NoteService struct {
	store repository.NoteStore
}

func NewNoteService(store repository.NoteStore) *NoteService {
	return &NoteService{store: store}
}

func (s *NoteService) List(ctx context.Context) ([]model.Note, error) {
	return s.store.List(ctx)
}

// GetByID returns nil without an error when the note does not exist.
func (s *NoteService) GetByID(ctx context.Context, id int64) (*model.Note, error) {
	return s.store.GetByID(ctx, id)
}

// Resolve is GetByID as a Lookup, for the existence middleware.
func (s *NoteService) Resolve(ctx context.Context, id int64) (model.Lookup[model.Note], error) {
	note, err := s.store.GetByID(ctx, id)
	if err != nil {
		return model.NotFound[model.Note](), err
	}
	if note == nil {
		return model.NotFound[model.Note](), nil
	}
	return model.Found(*note), nil
}

// Insert requires all three fields, reported in declaration order. Whether
// folderid points at a folder is left to the store's foreign key.
func (s *NoteService) Insert(ctx context.Context, newNote model.NewNote) (model.Note, error) {
	if field := newNote.MissingField(); field != "" {
		return model.Note{}, errs.NewBadRequestError(MissingFieldMessage(field), nil)
	}
	return s.store.Insert(ctx, newNote)
}

// Delete returns the number of deleted rows.
func (s *NoteService) Delete(ctx context.Context, id int64) (int64, error) {
	return s.store.Delete(ctx, id)
}

// Update applies the supplied fields and refreshes modified.
func (s *NoteService) Update(ctx context.Context, id int64, fields model.NoteUpdate) (int64, error) {
	if fields.IsEmpty() {
		return 0, errs.NewBadRequestError(NoteUpdateRequiredMessage, nil)
	}
	return s.store.Update(ctx, id, fields)
}
