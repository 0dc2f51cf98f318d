package handler

import (
	"time"

	"github.com/deppfellow/noteful/internal/lib/sanitize"
	"github.com/deppfellow/noteful/internal/model"
)

// FolderResponse is the JSON shape of a folder.
type FolderResponse struct {
	ID          int64     `json:"id"`
	FolderName  string    `json:"folder_name"`
	DateCreated time.Time `json:"date_created"`
}

// NoteResponse is the JSON shape of a note.
type NoteResponse struct {
	ID       int64     `json:"id"`
	NoteName string    `json:"note_name"`
	NoteText string    `json:"note_text"`
	Modified time.Time `json:"modified"`
	FolderID int64     `json:"folderid"`
}

// serializeFolder sanitizes user text; ids and timestamps pass through.
func serializeFolder(f model.Folder) FolderResponse {
	return FolderResponse{
		ID:          f.ID,
		FolderName:  sanitize.Text(f.FolderName),
		DateCreated: f.DateCreated,
	}
}

func serializeNote(n model.Note) NoteResponse {
	return NoteResponse{
		ID:       n.ID,
		NoteName: sanitize.Text(n.NoteName),
		NoteText: sanitize.Text(n.NoteText),
		Modified: n.Modified,
		FolderID: n.FolderID,
	}
}

func serializeAll[T, R any](items []T, serialize func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, serialize(item))
	}
	return out
}
