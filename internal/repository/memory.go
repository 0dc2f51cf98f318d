package repository

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/deppfellow/noteful/internal/model"
)

// MemoryDB is an in-process store with the same observable behavior as the
// PostgreSQL schema: ids come from per-table sequences and are never reused,
// notes.folderid must reference a folder, and deleting a folder deletes its
// notes.
type MemoryDB struct {
	mu           sync.RWMutex
	folders      map[int64]model.Folder
	notes        map[int64]model.Note
	nextFolderID int64
	nextNoteID   int64
	now          func() time.Time
}

func NewMemoryDB() *MemoryDB {
	return &MemoryDB{
		folders: make(map[int64]model.Folder),
		notes:   make(map[int64]model.Note),
		now: func() time.Time {
			return time.Now().UTC().Truncate(time.Microsecond)
		},
	}
}

// folderFKViolation mirrors what PostgreSQL reports for a dangling folderid.
func folderFKViolation(folderID int64) error {
	return &pgconn.PgError{
		Severity:       "ERROR",
		Code:           pgerrcode.ForeignKeyViolation,
		Message:        `insert or update on table "notes" violates foreign key constraint "notes_folderid_fkey"`,
		Detail:         fmt.Sprintf("Key (folderid)=(%d) is not present in table \"folders\".", folderID),
		TableName:      "notes",
		ConstraintName: "notes_folderid_fkey",
	}
}

// MemoryFolderRepository is the in-process FolderStore.
type MemoryFolderRepository struct {
	db *MemoryDB
}

func NewMemoryFolderRepository(db *MemoryDB) *MemoryFolderRepository {
	return &MemoryFolderRepository{db: db}
}

func (r *MemoryFolderRepository) List(ctx context.Context) ([]model.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	folders := make([]model.Folder, 0, len(r.db.folders))
	for _, id := range slices.Sorted(maps.Keys(r.db.folders)) {
		folders = append(folders, r.db.folders[id])
	}
	return folders, nil
}

func (r *MemoryFolderRepository) GetByID(ctx context.Context, id int64) (*model.Folder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	folder, ok := r.db.folders[id]
	if !ok {
		return nil, nil
	}
	return &folder, nil
}

func (r *MemoryFolderRepository) Insert(ctx context.Context, newFolder model.NewFolder) (model.Folder, error) {
	if err := ctx.Err(); err != nil {
		return model.Folder{}, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.db.nextFolderID++
	folder := model.Folder{
		ID:          r.db.nextFolderID,
		FolderName:  newFolder.FolderName,
		DateCreated: r.db.now(),
	}
	r.db.folders[folder.ID] = folder

	return folder, nil
}

func (r *MemoryFolderRepository) Delete(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.folders[id]; !ok {
		return 0, nil
	}
	delete(r.db.folders, id)

	// ON DELETE CASCADE
	for noteID, note := range r.db.notes {
		if note.FolderID == id {
			delete(r.db.notes, noteID)
		}
	}

	return 1, nil
}

func (r *MemoryFolderRepository) Update(ctx context.Context, id int64, fields model.FolderUpdate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	folder, ok := r.db.folders[id]
	if !ok {
		return 0, nil
	}
	if fields.FolderName != nil {
		folder.FolderName = *fields.FolderName
	}
	r.db.folders[id] = folder

	return 1, nil
}

// MemoryNoteRepository is the in-process NoteStore.
type MemoryNoteRepository struct {
	db *MemoryDB
}

func NewMemoryNoteRepository(db *MemoryDB) *MemoryNoteRepository {
	return &MemoryNoteRepository{db: db}
}

func (r *MemoryNoteRepository) List(ctx context.Context) ([]model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	notes := make([]model.Note, 0, len(r.db.notes))
	for _, id := range slices.Sorted(maps.Keys(r.db.notes)) {
		notes = append(notes, r.db.notes[id])
	}
	return notes, nil
}

func (r *MemoryNoteRepository) GetByID(ctx context.Context, id int64) (*model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	note, ok := r.db.notes[id]
	if !ok {
		return nil, nil
	}
	return &note, nil
}

func (r *MemoryNoteRepository) Insert(ctx context.Context, newNote model.NewNote) (model.Note, error) {
	if err := ctx.Err(); err != nil {
		return model.Note{}, err
	}
	if newNote.NoteName == nil || newNote.NoteText == nil || newNote.FolderID == nil {
		return model.Note{}, &pgconn.PgError{
			Severity:  "ERROR",
			Code:      pgerrcode.NotNullViolation,
			TableName: "notes",
		}
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.folders[*newNote.FolderID]; !ok {
		return model.Note{}, folderFKViolation(*newNote.FolderID)
	}

	r.db.nextNoteID++
	note := model.Note{
		ID:       r.db.nextNoteID,
		NoteName: *newNote.NoteName,
		NoteText: *newNote.NoteText,
		Modified: r.db.now(),
		FolderID: *newNote.FolderID,
	}
	r.db.notes[note.ID] = note

	return note, nil
}

func (r *MemoryNoteRepository) Delete(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.notes[id]; !ok {
		return 0, nil
	}
	delete(r.db.notes, id)

	return 1, nil
}

func (r *MemoryNoteRepository) Update(ctx context.Context, id int64, fields model.NoteUpdate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	note, ok := r.db.notes[id]
	if !ok {
		return 0, nil
	}

	if fields.FolderID != nil {
		if _, ok := r.db.folders[*fields.FolderID]; !ok {
			return 0, folderFKViolation(*fields.FolderID)
		}
		note.FolderID = *fields.FolderID
	}
	if fields.NoteName != nil {
		note.NoteName = *fields.NoteName
	}
	if fields.NoteText != nil {
		note.NoteText = *fields.NoteText
	}
	note.Modified = r.db.now()
	r.db.notes[id] = note

	return 1, nil
}
