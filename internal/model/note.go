package model

import "time"

// Note is a row of the notes table.
type Note struct {
	ID       int64     `db:"id"`
	NoteName string    `db:"note_name"`
	NoteText string    `db:"note_text"`
	Modified time.Time `db:"modified"`
	FolderID int64     `db:"folderid"`
}

// NewNote is the input of a note insert. Every field is required; a nil
// pointer means the value was not supplied.
type NewNote struct {
	NoteName *string
	NoteText *string
	FolderID *int64
}

// NoteUpdate carries the fields of a partial update. A nil field is left
// untouched; modified is refreshed by every update.
type NoteUpdate struct {
	NoteName *string
	NoteText *string
	FolderID *int64
}

// IsEmpty reports whether the update would not touch any user column.
func (u NoteUpdate) IsEmpty() bool {
	return u.NoteName == nil && u.NoteText == nil && u.FolderID == nil
}

// MissingField names the first required field that was not supplied, in
// the order note_name, note_text, folderid, or "" when all are present.
func (n NewNote) MissingField() string {
	switch {
	case n.NoteName == nil:
		return "note_name"
	case n.NoteText == nil:
		return "note_text"
	case n.FolderID == nil:
		return "folderid"
	}
	return ""
}
