package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/csfinder/internal/httpserver/deps"
	"github.com/MrSnakeDoc/csfinder/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/csfinder/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(
			mw.EnforceHost(d.AllowedHosts, d.Logger),
			mw.RateLimit(d.RateLimit),
			mw.Session(d.Sessions, d.SecureCookie),
		)

		api.Get("/collections", handlers.Collections(d))
		api.Route("/collections/{name}", func(c chi.Router) {
			c.Get("/", handlers.Collection(d))
			c.Post("/filter", handlers.CollectionFilter(d))
			c.Post("/search", handlers.CollectionSearch(d))
			c.Post("/page", handlers.CollectionPage(d))
		})

		api.Get("/search", handlers.Search(d))

		api.Get("/bookmarks", handlers.Bookmarks(d))
		api.Post("/bookmarks", handlers.AddBookmark(d))
		api.Post("/bookmarks/toggle", handlers.ToggleBookmark(d))
		api.Delete("/bookmarks/{index}", handlers.DeleteBookmark(d))
	})
}
