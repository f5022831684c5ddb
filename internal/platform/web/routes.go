package web

import (
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/vovakirdan/learn-arcade/internal/storage"
)

func addRoutes(r chi.Router, logger *log.Logger, store *storage.Store, tickRate int, quit <-chan struct{}) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Learn Arcade API", "/openapi.json", "/docs"))
	r.Get("/healthz", handleHealth(logger, store))

	r.Route("/api/games", func(r chi.Router) {
		r.Get("/", handleListGames())
		r.Get("/{game}/content", handleGetContent(logger))
		r.Put("/{game}/content", handlePutContent(logger, store))
		r.Get("/{game}/play", handlePlay(logger, tickRate, quit))
	})
}
