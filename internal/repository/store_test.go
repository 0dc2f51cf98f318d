package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/noteful/internal/database"
	"github.com/deppfellow/noteful/internal/model"
	"github.com/deppfellow/noteful/internal/repository"
	"github.com/deppfellow/noteful/internal/sqlerr"
)

// testDatabaseURLEnv points the contract tests at a disposable PostgreSQL
// database. Its tables are truncated before every test.
const testDatabaseURLEnv = "NOTEFUL_TEST_DATABASE_URL"

type storeFactory func(t *testing.T) *repository.Repositories

func factories(t *testing.T) map[string]storeFactory {
	stores := map[string]storeFactory{
		"memory": func(t *testing.T) *repository.Repositories {
			return repository.NewMemoryRepositories()
		},
	}

	dsn := os.Getenv(testDatabaseURLEnv)
	if dsn == "" {
		return stores
	}

	ctx := context.Background()
	log := zerolog.Nop()
	require.NoError(t, database.Migrate(ctx, &log, dsn))

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	stores["postgres"] = func(t *testing.T) *repository.Repositories {
		_, err := pool.Exec(ctx, "TRUNCATE folders, notes RESTART IDENTITY CASCADE")
		require.NoError(t, err)
		return &repository.Repositories{
			Folder: repository.NewFolderRepository(pool),
			Note:   repository.NewNoteRepository(pool),
		}
	}
	return stores
}

func ptr[T any](v T) *T { return &v }

func TestFolderStore(t *testing.T) {
	for name, newStore := range factories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			folders := newStore(t).Folder

			all, err := folders.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, all)

			missing, err := folders.GetByID(ctx, 42)
			require.NoError(t, err)
			assert.Nil(t, missing)

			first, err := folders.Insert(ctx, model.NewFolder{FolderName: "Important"})
			require.NoError(t, err)
			assert.Equal(t, int64(1), first.ID)
			assert.Equal(t, "Important", first.FolderName)
			assert.False(t, first.DateCreated.IsZero())

			second, err := folders.Insert(ctx, model.NewFolder{FolderName: "Super"})
			require.NoError(t, err)
			assert.Equal(t, int64(2), second.ID)

			got, err := folders.GetByID(ctx, first.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, first.ID, got.ID)
			assert.Equal(t, first.FolderName, got.FolderName)
			assert.True(t, first.DateCreated.Equal(got.DateCreated))

			affected, err := folders.Update(ctx, first.ID, model.FolderUpdate{FolderName: ptr("Renamed")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), affected)

			affected, err = folders.Update(ctx, first.ID, model.FolderUpdate{})
			require.NoError(t, err)
			assert.Equal(t, int64(1), affected)

			got, err = folders.GetByID(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, "Renamed", got.FolderName)
			assert.True(t, first.DateCreated.Equal(got.DateCreated))

			affected, err = folders.Update(ctx, 999, model.FolderUpdate{FolderName: ptr("x")})
			require.NoError(t, err)
			assert.Zero(t, affected)

			affected, err = folders.Delete(ctx, first.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), affected)

			affected, err = folders.Delete(ctx, first.ID)
			require.NoError(t, err)
			assert.Zero(t, affected)

			// ids are never reused after a delete
			third, err := folders.Insert(ctx, model.NewFolder{FolderName: "Spangley"})
			require.NoError(t, err)
			assert.Equal(t, int64(3), third.ID)

			all, err = folders.List(ctx)
			require.NoError(t, err)
			require.Len(t, all, 2)
			assert.Equal(t, second.ID, all[0].ID)
			assert.Equal(t, third.ID, all[1].ID)
		})
	}
}

func TestNoteStore(t *testing.T) {
	for name, newStore := range factories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos := newStore(t)

			folder, err := repos.Folder.Insert(ctx, model.NewFolder{FolderName: "Important"})
			require.NoError(t, err)
			other, err := repos.Folder.Insert(ctx, model.NewFolder{FolderName: "Super"})
			require.NoError(t, err)

			note, err := repos.Note.Insert(ctx, model.NewNote{
				NoteName: ptr("Dogs"),
				NoteText: ptr("Corgis are the best"),
				FolderID: ptr(folder.ID),
			})
			require.NoError(t, err)
			assert.Equal(t, int64(1), note.ID)
			assert.Equal(t, folder.ID, note.FolderID)
			assert.False(t, note.Modified.IsZero())

			// partial update keeps the untouched fields
			affected, err := repos.Note.Update(ctx, note.ID, model.NoteUpdate{NoteName: ptr("Cats")})
			require.NoError(t, err)
			assert.Equal(t, int64(1), affected)

			got, err := repos.Note.GetByID(ctx, note.ID)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Cats", got.NoteName)
			assert.Equal(t, "Corgis are the best", got.NoteText)
			assert.Equal(t, folder.ID, got.FolderID)
			assert.False(t, got.Modified.Before(note.Modified))

			_, err = repos.Note.Insert(ctx, model.NewNote{
				NoteName: ptr("Orphan"),
				NoteText: ptr("no folder"),
				FolderID: ptr(int64(999)),
			})
			require.Error(t, err)
			assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(sqlerrConvert(err)))

			_, err = repos.Note.Update(ctx, note.ID, model.NoteUpdate{FolderID: ptr(int64(999))})
			require.Error(t, err)

			affected, err = repos.Note.Update(ctx, note.ID, model.NoteUpdate{FolderID: ptr(other.ID)})
			require.NoError(t, err)
			assert.Equal(t, int64(1), affected)

			affected, err = repos.Note.Delete(ctx, note.ID)
			require.NoError(t, err)
			assert.Equal(t, int64(1), affected)

			missing, err := repos.Note.GetByID(ctx, note.ID)
			require.NoError(t, err)
			assert.Nil(t, missing)
		})
	}
}

func TestFolderDeleteCascadesToNotes(t *testing.T) {
	for name, newStore := range factories(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			repos := newStore(t)

			folder, err := repos.Folder.Insert(ctx, model.NewFolder{FolderName: "Important"})
			require.NoError(t, err)
			_, err = repos.Note.Insert(ctx, model.NewNote{
				NoteName: ptr("Dogs"),
				NoteText: ptr("text"),
				FolderID: ptr(folder.ID),
			})
			require.NoError(t, err)

			_, err = repos.Folder.Delete(ctx, folder.ID)
			require.NoError(t, err)

			notes, err := repos.Note.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, notes)
		})
	}
}

// sqlerrConvert digs the driver error out so both stores can be asserted
// the same way.
func sqlerrConvert(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	return sqlerr.ConvertPgError(pgErr)
}
