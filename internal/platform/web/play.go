package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/learn-arcade/internal/content"
	"github.com/vovakirdan/learn-arcade/internal/core"
	"github.com/vovakirdan/learn-arcade/internal/games/board"
)

const (
	writeWait = 5 * time.Second
	// play sessions are laid out for an 80x24 terminal; web clients send
	// their own container so the size only matters for the text snapshot
	playW, playH = 80, 24
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ClientMessage is sent by the browser.
//
//	{"type":"pointer","kind":"down","x":10,"y":20,"container":{...}}
//	{"type":"action","action":"pause|restart|next|difficulty|select|grab","value":"..."}
type ClientMessage struct {
	Type      string          `json:"type"`
	Kind      string          `json:"kind,omitempty"`
	X         float64         `json:"x"`
	Y         float64         `json:"y"`
	Container *core.Container `json:"container,omitempty"`
	Action    string          `json:"action,omitempty"`
	Value     string          `json:"value,omitempty"`
}

// ServerMessage is pushed to the browser.
type ServerMessage struct {
	Type    string         `json:"type"` // "events" or "error"
	Session string         `json:"session"`
	Events  []core.Notice  `json:"events"`
	State   core.GameState `json:"state"`
	View    *board.View    `json:"view,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// handlePlay upgrades to a websocket and runs one game session on it until
// the client leaves or quit is closed. Query parameters: difficulty, level, seed.
func handlePlay(logger *log.Logger, tickRate int, quit <-chan struct{}) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "game")
		game, ok := createPlayable(id)
		if !ok {
			writeError(w, http.StatusNotFound, "game not found")
			return
		}

		q := r.URL.Query()
		var diff content.Difficulty
		if v := q.Get("difficulty"); v != "" {
			d, err := content.ParseDifficulty(v)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			diff = d
		}
		seed, _ := strconv.ParseInt(q.Get("seed"), 10, 64)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Error("websocket upgrade failed", "error", err)
			return
		}
		defer conn.Close()

		game.Preset(diff, q.Get("level"))
		game.Reset(core.RuntimeConfig{ScreenW: playW, ScreenH: playH, TickRate: tickRate, Seed: seed})

		p := &player{
			id:     uuid.NewString(),
			game:   game,
			conn:   conn,
			logger: logger,
			frame:  core.NewInputFrame(),
		}
		logger.Info("play session started", "session", p.id, "game", id, "remote", r.RemoteAddr)
		p.run(time.Second/time.Duration(tickRate), quit)
		logger.Info("play session ended", "session", p.id, "game", id)
	}
}

// player owns one game instance. Only run touches the game and writes to the
// connection; the reader goroutine just decodes messages.
type player struct {
	id     string
	game   playable
	conn   *websocket.Conn
	logger *log.Logger
	frame  core.InputFrame
	last   core.GameState
}

// inbound is one decoded client message, or the reason it could not be decoded.
type inbound struct {
	msg ClientMessage
	err error
}

func (p *player) run(tick time.Duration, quit <-chan struct{}) {
	in := make(chan inbound, 64)
	done := make(chan struct{})
	defer close(done)
	go p.read(in, done)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	p.last = p.game.State()
	if err := p.send(nil, p.last); err != nil {
		return
	}

	pending := false
	for {
		select {
		case <-quit:
			p.logger.Debug("closing play session for shutdown", "session", p.id)
			p.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(writeWait))
			return

		case m, ok := <-in:
			if !ok {
				return
			}
			err := m.err
			if err == nil {
				err = p.apply(m.msg)
			}
			if err != nil {
				if p.sendError(err) != nil {
					return
				}
				continue
			}
			pending = true

		case <-ticker.C:
			res := p.game.Step(p.frame)
			p.frame.Clear()
			if pending || len(res.Notices) > 0 || changed(p.last, res.State) {
				if err := p.send(res.Notices, res.State); err != nil {
					return
				}
			}
			p.last = res.State
			pending = false
		}
	}
}

func (p *player) read(in chan<- inbound, done <-chan struct{}) {
	defer close(in)
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			p.logger.Debug("websocket read ended", "session", p.id, "error", err)
			return
		}
		var m inbound
		if err := json.Unmarshal(data, &m.msg); err != nil {
			p.logger.Debug("bad websocket message", "session", p.id, "error", err)
			m = inbound{err: fmt.Errorf("malformed message: %w", err)}
		}
		select {
		case in <- m:
		case <-done:
			return
		}
	}
}

// apply queues a client message for the next tick. Label actions go
// straight to the session; their events are drained by the next Step.
func (p *player) apply(msg ClientMessage) error {
	switch msg.Type {
	case "pointer":
		kind, ok := core.ParsePointerKind(msg.Kind)
		if !ok {
			return fmt.Errorf("unknown pointer kind %q", msg.Kind)
		}
		if msg.Container == nil {
			return errors.New("pointer events need a container")
		}
		p.frame.AddPointer(core.PointerEvent{Kind: kind, Pos: core.Pt(msg.X, msg.Y), Container: msg.Container})
		return nil

	case "action":
		return p.action(msg.Action, msg.Value)
	}
	return fmt.Errorf("unknown message type %q", msg.Type)
}

func (p *player) action(name, value string) error {
	switch name {
	case "pause":
		p.frame.Set(core.ActionPause)
	case "restart":
		p.frame.Set(core.ActionRestart)
	case "next":
		p.frame.Set(core.ActionNext)
	case "difficulty":
		if value == "" {
			p.frame.Set(core.ActionDifficulty)
			return nil
		}
		d, err := content.ParseDifficulty(value)
		if err != nil {
			return err
		}
		return p.game.SetDifficulty(d)
	case "select", "grab":
		s := p.game.Session()
		if s == nil {
			return errors.New("no level loaded")
		}
		if name == "select" {
			s.Select(value)
		} else {
			s.Grab(value)
		}
	default:
		return fmt.Errorf("unknown action %q", name)
	}
	return nil
}

// changed ignores clock movement below a second so idle sessions stay quiet.
func changed(a, b core.GameState) bool {
	a.Elapsed, b.Elapsed = a.Elapsed.Truncate(time.Second), b.Elapsed.Truncate(time.Second)
	a.Remaining, b.Remaining = a.Remaining.Truncate(time.Second), b.Remaining.Truncate(time.Second)
	return a != b
}

func (p *player) send(events []core.Notice, state core.GameState) error {
	if events == nil {
		events = []core.Notice{}
	}
	view := p.game.View()
	return p.write(ServerMessage{
		Type:    "events",
		Session: p.id,
		Events:  events,
		State:   state,
		View:    &view,
	})
}

func (p *player) sendError(err error) error {
	return p.write(ServerMessage{
		Type:    "error",
		Session: p.id,
		Events:  []core.Notice{},
		State:   p.last,
		Error:   err.Error(),
	})
}

func (p *player) write(msg ServerMessage) error {
	p.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return p.conn.WriteJSON(msg)
}
