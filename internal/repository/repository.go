// Package repository handles all interactions with the database.
//
// It contains the SQL for folders and notes and the store capabilities
// (FolderStore, NoteStore) the service layer is written against, plus an
// in-process implementation of the same capabilities.
package repository
