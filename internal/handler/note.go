package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/noteful/internal/errs"
	"github.com/deppfellow/noteful/internal/middleware"
	"github.com/deppfellow/noteful/internal/model"
	"github.com/deppfellow/noteful/internal/server"
	"github.com/deppfellow/noteful/internal/service"
)

// NoteNotFoundMessage is the 404 message for /api/notes/:id.
const NoteNotFoundMessage = "Note doesn't exist"

// CreateNoteRequest is the body of POST /api/notes. Its fields are pointers
// so that an absent or null field can be told apart from an empty one. Only
// absence is rejected.
type CreateNoteRequest struct {
	NoteName *string `json:"note_name"`
	NoteText *string `json:"note_text"`
	FolderID *int64  `json:"folderid"`
}

func (r *CreateNoteRequest) toModel() model.NewNote {
	return model.NewNote{NoteName: r.NoteName, NoteText: r.NoteText, FolderID: r.FolderID}
}

func (r *CreateNoteRequest) Validate() error {
	if field := r.toModel().MissingField(); field != "" {
		return errs.NewBadRequestError(service.MissingFieldMessage(field), nil)
	}
	return nil
}

// UpdateNoteRequest is the body of PATCH /api/notes/:id. It needs at least
// one non-empty field. Supplied fields are all written, empty ones included.
type UpdateNoteRequest struct {
	NoteName *string `json:"note_name"`
	NoteText *string `json:"note_text"`
	FolderID *int64  `json:"folderid"`
}

func (r *UpdateNoteRequest) Validate() error {
	hasName := r.NoteName != nil && *r.NoteName != ""
	hasText := r.NoteText != nil && *r.NoteText != ""
	hasFolder := r.FolderID != nil && *r.FolderID != 0
	if !hasName && !hasText && !hasFolder {
		return errs.NewBadRequestError(service.NoteUpdateRequiredMessage, nil)
	}
	return nil
}

// NoteHandler serves the /api/notes routes.
type NoteHandler struct {
	Handler
	notes *service.NoteService
}

// NewNoteHandler creates a NoteHandler over the note service.
func NewNoteHandler(s *server.Server, notes *service.NoteService) *NoteHandler {
	return &NoteHandler{
		Handler: NewHandler(s),
		notes:   notes,
	}
}

// Resolve feeds the existence middleware of /api/notes/:id.
func (h *NoteHandler) Resolve() echo.MiddlewareFunc {
	return middleware.RequireEntity[model.Note](middleware.NoteKey, h.notes.Resolve, NoteNotFoundMessage)
}

// ListNotes returns every note.
func (h *NoteHandler) ListNotes(c echo.Context, _ *EmptyRequest) ([]NoteResponse, error) {
	notes, err := h.notes.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return serializeAll(notes, serializeNote), nil
}

// CreateNote stores a note and points Location at it.
func (h *NoteHandler) CreateNote(c echo.Context, req *CreateNoteRequest) (NoteResponse, error) {
	note, err := h.notes.Insert(c.Request().Context(), req.toModel())
	if err != nil {
		return NoteResponse{}, err
	}

	middleware.GetLogger(c).Info().
		Int64("note_id", note.ID).
		Int64("folder_id", note.FolderID).
		Msg("note created")
	setLocation(c, note.ID)
	return serializeNote(note), nil
}

// GetNote returns the note resolved by the existence middleware.
func (h *NoteHandler) GetNote(c echo.Context, _ *EmptyRequest) (NoteResponse, error) {
	note, err := resolved[model.Note](c, middleware.NoteKey)
	if err != nil {
		return NoteResponse{}, err
	}
	return serializeNote(note), nil
}

// DeleteNote removes the note.
func (h *NoteHandler) DeleteNote(c echo.Context, _ *EmptyRequest) error {
	note, err := resolved[model.Note](c, middleware.NoteKey)
	if err != nil {
		return err
	}

	affected, err := h.notes.Delete(c.Request().Context(), note.ID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return errs.NewNotFoundError(NoteNotFoundMessage, nil)
	}
	return nil
}

// UpdateNote writes the supplied fields and refreshes modified.
func (h *NoteHandler) UpdateNote(c echo.Context, req *UpdateNoteRequest) error {
	note, err := resolved[model.Note](c, middleware.NoteKey)
	if err != nil {
		return err
	}

	_, err = h.notes.Update(c.Request().Context(), note.ID, model.NoteUpdate{
		NoteName: req.NoteName,
		NoteText: req.NoteText,
		FolderID: req.FolderID,
	})
	return err
}
