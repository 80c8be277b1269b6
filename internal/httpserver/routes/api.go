package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/wifijump/internal/httpserver/deps"
	"github.com/MrSnakeDoc/wifijump/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/wifijump/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger))
		api.Post("/decide", handlers.Decide(d))
		api.Get("/network", handlers.Network(d))
		api.Put("/network", handlers.PublishNetwork(d))
	})
}
