package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
	_ "github.com/vovakirdan/learn-arcade/internal/games/dots"
	"github.com/vovakirdan/learn-arcade/internal/storage"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "library.db"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// useLoader points the games at a loader that only sees store and the
// embedded defaults.
func useLoader(t *testing.T, store *storage.Store) {
	t.Helper()
	l := &content.Loader{Dir: t.TempDir()}
	if store != nil {
		l.Store = store
	}
	board.SetLoader(l)
	t.Cleanup(func() { board.SetLoader(nil) })
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	closed := openStore(t)
	closed.Close()

	tests := []struct {
		name       string
		store      *storage.Store
		wantStatus int
		wantSQLite string
	}{
		{"sqlite ok", openStore(t), http.StatusOK, "ok"},
		{"no library", nil, http.StatusOK, "disabled"},
		{"sqlite closed", closed, http.StatusServiceUnavailable, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, handleHealth(quietLogger(), tt.store), "/healthz")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body HealthResponse
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding: %v", err)
			}
			if got := body["sqlite"].Status; got != tt.wantSQLite {
				t.Errorf("sqlite = %q, want %q", got, tt.wantSQLite)
			}
		})
	}
}

func TestHandleOpenAPI(t *testing.T) {
	rec := get(t, handleOpenAPI(), "/openapi.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "application/json") {
		t.Fatalf("content-type = %q, want application/json", got)
	}
	body := rec.Body.String()
	for _, path := range []string{`"/healthz"`, `"/api/games"`, `"/api/games/{game}/content"`, `"/api/games/{game}/play"`} {
		if !strings.Contains(body, path) {
			t.Errorf("spec missing %s", path)
		}
	}
}

func TestSwaggerUI(t *testing.T) {
	rec := get(t, NewRouter(quietLogger(), nil, 10, nil), "/docs")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "/openapi.json") {
		t.Error("docs page does not reference /openapi.json")
	}
}

func TestListGames(t *testing.T) {
	rec := get(t, NewRouter(quietLogger(), nil, 10, nil), "/api/games")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var games []GameSummary
	if err := json.NewDecoder(rec.Body).Decode(&games); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	var found bool
	for _, g := range games {
		if g.ID == "dots" {
			found = true
			if g.Kind != content.KindOrderedPath {
				t.Errorf("dots kind = %q", g.Kind)
			}
		}
	}
	if !found {
		t.Errorf("dots not listed: %+v", games)
	}
}

func TestGetContent(t *testing.T) {
	useLoader(t, nil)
	h := NewRouter(quietLogger(), nil, 10, nil)

	rec := get(t, h, "/api/games/dots/content")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp ContentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.Source != "builtin" || len(resp.Document.Scenarios) == 0 {
		t.Errorf("source %q with %d scenarios", resp.Source, len(resp.Document.Scenarios))
	}
	for _, l := range resp.Document.Scenarios {
		if l.Kind != content.KindOrderedPath {
			t.Errorf("level %q kind = %q", l.ID, l.Kind)
		}
	}

	if rec := get(t, h, "/api/games/nope/content"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown game status = %d, want 404", rec.Code)
	}
}

func TestPutContent(t *testing.T) {
	store := openStore(t)
	useLoader(t, store)
	h := NewRouter(quietLogger(), store, 10, nil)

	put := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPut, "/api/games/dots/content", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	valid := `{"gameTitle":"Shapes","scenarios":[{"id":"line","name":"Line","difficulty":"easy",` +
		`"waypoints":[{"pos":{"x":10,"y":50}},{"pos":{"x":90,"y":50}}]}]}`
	if rec := put(valid); rec.Code != http.StatusOK {
		t.Fatalf("valid upload status = %d: %s", rec.Code, rec.Body.String())
	}

	rec := get(t, h, "/api/games/dots/content")
	var resp ContentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if resp.Source != "library" || resp.Document.GameTitle != "Shapes" {
		t.Errorf("got %q from %q, want library document", resp.Document.GameTitle, resp.Source)
	}

	tests := []struct {
		name string
		body string
	}{
		{"not a document", `[1, 2`},
		{"no waypoints", `{"scenarios":[{"id":"x","name":"X","difficulty":"easy"}]}`},
		{"bad difficulty", `{"scenarios":[{"id":"x","name":"X","difficulty":"extreme","waypoints":[{"pos":{"x":1,"y":1}}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := put(tt.body); rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestPutContentWithoutLibrary(t *testing.T) {
	h := NewRouter(quietLogger(), nil, 10, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/games/dots/content", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rec.Code)
	}
}

func dialPlay(t *testing.T, query string) *websocket.Conn {
	t.Helper()
	return dialPlayUntil(t, nil, query)
}

func dialPlayUntil(t *testing.T, quit <-chan struct{}, query string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(NewRouter(quietLogger(), nil, 50, quit))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/games/dots/play?" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) ServerMessage {
	t.Helper()
	var msg ServerMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestPlayCompletesSquare(t *testing.T) {
	useLoader(t, nil)
	conn := dialPlay(t, "level=square&seed=1")

	first := readMessage(t, conn)
	if first.Type != "events" || first.Session == "" {
		t.Fatalf("first message = %+v", first)
	}
	if first.View == nil || first.View.Level == nil || first.View.Level.ID != "square" {
		t.Fatalf("expected the square level, got %+v", first.View)
	}

	box := &core.Container{Bounds: core.Bounds{Width: 100, Height: 100}}
	path := []struct {
		kind string
		x, y float64
	}{
		{"down", 20, 20},
		{"move", 50, 20},
		{"move", 80, 20},
		{"move", 80, 80},
		{"move", 20, 80},
		{"move", 20, 20},
		{"up", 20, 20},
	}
	for _, p := range path {
		msg := ClientMessage{Type: "pointer", Kind: p.kind, X: p.x, Y: p.y, Container: box}
		if err := conn.WriteJSON(msg); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	reached := 0
	for {
		msg := readMessage(t, conn)
		if msg.Type != "events" {
			t.Fatalf("unexpected %q message: %s", msg.Type, msg.Error)
		}
		for _, ev := range msg.Events {
			switch ev.Type {
			case "waypointReached":
				reached++
			case "wrongAttempt":
				t.Fatalf("unexpected wrong attempt")
			case "levelComplete":
				if reached != 5 {
					t.Errorf("reached %d waypoints before completion, want 5", reached)
				}
				if !msg.State.Complete {
					t.Error("state should report the level complete")
				}
				return
			}
		}
	}
}

func TestPlayRejectsBadInput(t *testing.T) {
	useLoader(t, nil)
	conn := dialPlay(t, "")
	readMessage(t, conn)

	tests := []struct {
		name string
		raw  string
	}{
		{"unknown type", `{"type":"teleport"}`},
		{"pointer without container", `{"type":"pointer","kind":"down","x":1,"y":1}`},
		{"unknown pointer kind", `{"type":"pointer","kind":"wiggle","container":{}}`},
		{"unknown action", `{"type":"action","action":"dance"}`},
		{"bad difficulty", `{"type":"action","action":"difficulty","value":"impossible"}`},
		{"malformed json", `{not json`},
	}
	for _, tt := range tests {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.raw)); err != nil {
			t.Fatalf("%s: write: %v", tt.name, err)
		}
		for {
			msg := readMessage(t, conn)
			if msg.Type == "error" {
				if msg.Error == "" {
					t.Errorf("%s: empty error", tt.name)
				}
				break
			}
		}
	}

	// the session survives bad input
	if err := conn.WriteJSON(ClientMessage{Type: "action", Action: "pause"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	for {
		if msg := readMessage(t, conn); msg.State.Paused {
			return
		}
	}
}

func TestPlayEndsOnShutdown(t *testing.T) {
	useLoader(t, nil)
	quit := make(chan struct{})
	conn := dialPlayUntil(t, quit, "")
	readMessage(t, conn)

	close(quit)
	for {
		_, _, err := conn.ReadMessage()
		if err == nil {
			continue
		}
		if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
			t.Fatalf("read error = %v, want going-away close", err)
		}
		return
	}
}

func TestPlayPauseAction(t *testing.T) {
	useLoader(t, nil)
	conn := dialPlay(t, "difficulty=easy")
	readMessage(t, conn)

	if err := conn.WriteJSON(ClientMessage{Type: "action", Action: "pause"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	for {
		if msg := readMessage(t, conn); msg.State.Paused {
			return
		}
	}
}

func TestPlayUnknownGame(t *testing.T) {
	rec := get(t, NewRouter(quietLogger(), nil, 10, nil), "/api/games/nope/play")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
