package model

import "time"

// Folder is a row of the folders table.
type Folder struct {
	ID          int64     `db:"id"`
	FolderName  string    `db:"folder_name"`
	DateCreated time.Time `db:"date_created"`
}

// NewFolder is the input of a folder insert. id and date_created are
// assigned by the store.
type NewFolder struct {
	FolderName string
}

// FolderUpdate carries the fields of a partial update. A nil field is left
// untouched.
type FolderUpdate struct {
	FolderName *string
}

// IsEmpty reports whether the update would not touch any column.
func (u FolderUpdate) IsEmpty() bool {
	return u.FolderName == nil
}
