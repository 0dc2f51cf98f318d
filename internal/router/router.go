// Package router builds the echo instance: global middleware, the error
// handler, the /api resource groups and the system routes.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/deppfellow/noteful/internal/handler"
	"github.com/deppfellow/noteful/internal/middleware"
	"github.com/deppfellow/noteful/internal/server"
)

func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mws := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mws.Global.GlobalErrorHandler

	router.Pre(echoMiddleware.RemoveTrailingSlash())

	router.Use(
		mws.Global.CORS(),
		mws.Global.Secure(),
		middleware.RequestID(),
		mws.Tracing.NewRelicMiddleware(),
		mws.Tracing.EnhanceTracing(),
		mws.ContextEnhancer.EnhanceContext(),
		mws.Global.RequestLogger(),
		mws.RateLimit.Limit(),
		mws.Global.Recover(),
	)

	registerSystemRoutes(router, h)

	api := router.Group("/api")
	registerFolderRoutes(api, h.Folder, s.Config.Features.FolderPatch)
	registerNoteRoutes(api, h.Note)

	return router
}

func registerFolderRoutes(api *echo.Group, h *handler.FolderHandler, withPatch bool) {
	folders := api.Group("/folders")
	folders.GET("", handler.Handle(h.ListFolders, http.StatusOK))
	folders.POST("", handler.Handle(h.CreateFolder, http.StatusCreated))

	exists := h.Resolve()
	folders.GET("/:id", handler.Handle(h.GetFolder, http.StatusOK), exists)
	folders.DELETE("/:id", handler.HandleNoContent(h.DeleteFolder, http.StatusNoContent), exists)
	if withPatch {
		folders.PATCH("/:id", handler.HandleNoContent(h.UpdateFolder, http.StatusNoContent), exists)
	}
}

func registerNoteRoutes(api *echo.Group, h *handler.NoteHandler) {
	notes := api.Group("/notes")
	notes.GET("", handler.Handle(h.ListNotes, http.StatusOK))
	notes.POST("", handler.Handle(h.CreateNote, http.StatusCreated))

	exists := h.Resolve()
	notes.GET("/:id", handler.Handle(h.GetNote, http.StatusOK), exists)
	notes.DELETE("/:id", handler.HandleNoContent(h.DeleteNote, http.StatusNoContent), exists)
	notes.PATCH("/:id", handler.HandleNoContent(h.UpdateNote, http.StatusNoContent), exists)
}
