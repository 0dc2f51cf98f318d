package service

import (
	"github.com/deppfellow/noteful/internal/repository"
)

type Services struct {
	Folder *FolderService
	Note   *NoteService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Folder: NewFolderService(repos.Folder),
		Note:   NewNoteService(repos.Note),
	}
}
