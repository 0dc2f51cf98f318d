package repository

import (
	"github.com/deppfellow/noteful/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Folder FolderStore
	Note   NoteStore
}

// NewRepositories picks the store from the configured driver: the pgx pool
// owned by the server, or a fresh in-process store.
func NewRepositories(s *server.Server) *Repositories {
	if s.Config.Database.IsMemory() {
		return NewMemoryRepositories()
	}

	return &Repositories{
		Folder: NewFolderRepository(s.DB.Pool),
		Note:   NewNoteRepository(s.DB.Pool),
	}
}

// NewMemoryRepositories returns repositories backed by one shared
// in-process store.
func NewMemoryRepositories() *Repositories {
	db := NewMemoryDB()

	return &Repositories{
		Folder: NewMemoryFolderRepository(db),
		Note:   NewMemoryNoteRepository(db),
	}
}
