// Package handler is the HTTP layer. It binds and validates requests, calls
// the services and shapes responses.
package handler

import (
	"path"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/noteful/internal/errs"
	"github.com/deppfellow/noteful/internal/middleware"
	"github.com/deppfellow/noteful/internal/server"
	"github.com/deppfellow/noteful/internal/service"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Folder  *FolderHandler
	Note    *NoteHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
}

// NewHandlers builds the handlers over the service layer.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Folder:  NewFolderHandler(s, services.Folder),
		Note:    NewNoteHandler(s, services.Note),
		Health:  NewHealthHandler(s),
		OpenAPI: NewOpenAPIHandler(s),
	}
}

// setLocation points the Location header at the created resource, relative
// to the collection path the request was made on.
func setLocation(c echo.Context, id int64) {
	c.Response().Header().Set(echo.HeaderLocation, path.Join(c.Request().URL.Path, strconv.FormatInt(id, 10)))
}

// resolved returns the entity the existence middleware attached. Missing
// means the route was registered without it.
func resolved[T any](c echo.Context, key string) (T, error) {
	entity, ok := middleware.Entity[T](c, key)
	if !ok {
		middleware.GetLogger(c).Error().Str("key", key).Msg("route is missing its existence middleware")
		return entity, errs.NewInternalServerError()
	}
	return entity, nil
}
