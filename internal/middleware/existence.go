package middleware

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/noteful/internal/errs"
	"github.com/deppfellow/noteful/internal/model"
)

// Context keys for entities resolved by RequireEntity.
const (
	FolderKey = "folder"
	NoteKey   = "note"
)

// Resolver looks an entity up by id. A missing row is NotFound, not an error.
type Resolver[T any] func(ctx context.Context, id int64) (model.Lookup[T], error)

// RequireEntity resolves the :id path parameter before the handler runs.
// When nothing matches, including ids that are not positive integers, it
// answers 404 with notFoundMessage and the handler is skipped. Otherwise the
// entity is stored under key for Entity.
func RequireEntity[T any](key string, resolve Resolver[T], notFoundMessage string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := strconv.ParseInt(c.Param("id"), 10, 64)
			if err != nil || id <= 0 {
				return errs.NewNotFoundError(notFoundMessage, nil)
			}

			lookup, err := resolve(c.Request().Context(), id)
			if err != nil {
				return err
			}

			entity, ok := lookup.Get()
			if !ok {
				return errs.NewNotFoundError(notFoundMessage, nil)
			}

			c.Set(key, entity)
			return next(c)
		}
	}
}

// Entity returns what RequireEntity stored under key.
func Entity[T any](c echo.Context, key string) (T, bool) {
	entity, ok := c.Get(key).(T)
	return entity, ok
}
