package web

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	"github.com/vovakirdan/learn-arcade/internal/registry"
	"github.com/vovakirdan/learn-arcade/internal/session"
	"github.com/vovakirdan/learn-arcade/internal/storage"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GameSummary describes a registered game.
type GameSummary struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Kind  content.Kind `json:"kind,omitempty"`
}

// ContentResponse carries a game's content document.
type ContentResponse struct {
	Game     string           `json:"game"`
	Source   string           `json:"source"`
	Document content.Document `json:"document"`
}

// playable is what the web layer needs from a game beyond registry.Game.
// Every learning game gets it from board.Base.
type playable interface {
	registry.Game
	View() board.View
	Session() *session.Controller
	Preset(d content.Difficulty, level string)
	SetDifficulty(d content.Difficulty) error
}

func createPlayable(id string) (playable, bool) {
	g, err := registry.Create(id)
	if err != nil {
		return nil, false
	}
	p, ok := g.(playable)
	return p, ok
}

func kindOf(id string) content.Kind {
	info, _ := registry.Describe(id)
	return info.Kind
}

func handleListGames() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games := registry.List()
		out := make([]GameSummary, 0, len(games))
		for _, g := range games {
			out = append(out, GameSummary{ID: g.ID, Title: g.Title, Kind: g.Kind})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func handleGetContent(logger *log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "game")
		if !registry.Exists(id) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}

		doc, from, err := board.Loader().Load(r.Context(), id)
		if err != nil {
			logger.Error("loading content", "game", id, "error", err)
			writeError(w, http.StatusInternalServerError, "content unavailable")
			return
		}

		writeJSON(w, http.StatusOK, ContentResponse{
			Game:     id,
			Source:   from,
			Document: doc.WithKind(kindOf(id)),
		})
	}
}

func handlePutContent(logger *log.Logger, store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "game")
		if !registry.Exists(id) {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}
		if store == nil {
			writeError(w, http.StatusServiceUnavailable, "content library disabled")
			return
		}

		data, err := readBody(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "reading body")
			return
		}
		doc, err := content.Parse(data)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errs := doc.WithKind(kindOf(id)).Invalid(); len(errs) > 0 {
			writeError(w, http.StatusBadRequest, errors.Join(errs...).Error())
			return
		}

		if err := store.SaveDocument(r.Context(), id, doc); err != nil {
			logger.Error("saving content", "game", id, "error", err)
			writeError(w, http.StatusInternalServerError, "saving content")
			return
		}
		logger.Info("content imported", "game", id, "levels", len(doc.Scenarios))

		writeJSON(w, http.StatusOK, ContentResponse{Game: id, Source: "library", Document: doc})
	}
}
