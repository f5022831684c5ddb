package web

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/vovakirdan/learn-arcade/internal/content"
)

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Learn Arcade API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Game discovery, content documents and websocket play for the learning games.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the status of the SQLite content library.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/games
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/games")
	listGames.SetSummary("List games")
	listGames.SetDescription("Returns every registered learning game.")
	listGames.AddRespStructure([]GameSummary{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listGames)

	// GET /api/games/{game}/content
	getContent, _ := r.NewOperationContext(http.MethodGet, "/api/games/{game}/content")
	getContent.SetSummary("Get content")
	getContent.SetDescription("Returns the game's content document, resolved the same way the games load it.")
	getContent.AddReqStructure(gamePath{})
	getContent.AddRespStructure(ContentResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getContent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getContent)

	// PUT /api/games/{game}/content
	putContent, _ := r.NewOperationContext(http.MethodPut, "/api/games/{game}/content")
	putContent.SetSummary("Import content")
	putContent.SetDescription("Stores a content document in the library. Every scenario must be playable.")
	putContent.AddReqStructure(contentUpload{})
	putContent.AddRespStructure(ContentResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	putContent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	putContent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	putContent.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(putContent)

	// GET /api/games/{game}/play
	play, _ := r.NewOperationContext(http.MethodGet, "/api/games/{game}/play")
	play.SetSummary("Play over WebSocket")
	play.SetDescription("Upgrades to a WebSocket. The client sends ClientMessage values; " +
		"the server pushes ServerMessage values after input and when the game state changes.")
	play.AddReqStructure(playRequest{})
	play.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("application/json"))
	play.AddRespStructure(ServerMessage{}, openapi.WithHTTPStatus(http.StatusOK))
	play.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(play)

	return r.Spec
}

type gamePath struct {
	Game string `path:"game"`
}

type contentUpload struct {
	Game string `path:"game"`
	content.Document
}

type playRequest struct {
	Game       string `path:"game"`
	Difficulty string `query:"difficulty" enum:"all,easy,medium,hard"`
	Level      string `query:"level"`
	Seed       int64  `query:"seed"`
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
