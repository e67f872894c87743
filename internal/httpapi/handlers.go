// Package httpapi exposes games over HTTP as a thin translation layer:
// it parses requests, drives the session registry and the engine, and
// owns no chess rules of its own.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/colmak/rustychess/internal/board"
	"github.com/colmak/rustychess/internal/engine"
	"github.com/colmak/rustychess/internal/game"
	"github.com/colmak/rustychess/internal/session"
	"github.com/colmak/rustychess/internal/storage"
)

// maxSearchDepth bounds the depth query parameter; deeper searches take
// longer than an HTTP request should.
const maxSearchDepth = 8

// errGameOver rejects moves on finished games.
var errGameOver = errors.New("game is over")

// Handler serves the game API.
type Handler struct {
	log      zerolog.Logger
	registry *session.Registry
	engine   *engine.Engine
	depth    int
}

// NewRouter builds the API routes wrapped in the middleware chain. depth
// is the default search depth for best-move requests. staticDir, when not
// empty, is served at the root for the browser UI.
func NewRouter(log zerolog.Logger, reg *session.Registry, eng *engine.Engine, depth int, staticDir string) http.Handler {
	h := &Handler{
		log:      log,
		registry: reg,
		engine:   eng,
		depth:    depth,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", h.health)
	mux.HandleFunc("POST /api/games", h.createGame)
	mux.HandleFunc("GET /api/games", h.listGames)
	mux.HandleFunc("GET /api/games/{id}", h.getGame)
	mux.HandleFunc("DELETE /api/games/{id}", h.deleteGame)
	mux.HandleFunc("POST /api/games/{id}/moves", h.applyMove)
	mux.HandleFunc("GET /api/games/{id}/legal-moves", h.legalMoves)
	mux.HandleFunc("GET /api/games/{id}/best-move", h.bestMove)

	if staticDir != "" {
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	return CORS(RequestID(AccessLog(log, mux)))
}

// gameDoc is the JSON shape of a game.
type gameDoc struct {
	ID      string   `json:"id"`
	FEN     string   `json:"fen"`
	Turn    string   `json:"turn"`
	Status  string   `json:"status"`
	InCheck bool     `json:"in_check"`
	Moves   []string `json:"moves"`
}

// snapshot renders a game document. Callers hold the game's lock through
// the registry.
func snapshot(id string, g *game.Game) gameDoc {
	moves := g.Moves()
	uci := make([]string, len(moves))
	for i, m := range moves {
		uci[i] = m.String()
	}
	return gameDoc{
		ID:      id,
		FEN:     g.FEN(),
		Turn:    strings.ToLower(g.Turn().String()),
		Status:  string(g.Status()),
		InCheck: g.InCheck(),
		Moves:   uci,
	}
}

type moveRequest struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

type moveDoc struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Promotion string `json:"promotion,omitempty"`
}

type bestMoveResponse struct {
	From          string `json:"from"`
	To            string `json:"to"`
	Promotion     string `json:"promotion,omitempty"`
	Evaluation    int    `json:"evaluation"`
	NodesSearched uint64 `json:"nodes_searched"`
	Depth         int    `json:"depth"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) createGame(w http.ResponseWriter, r *http.Request) {
	id, err := h.registry.Create()
	if err != nil {
		h.writeGameError(w, r, err)
		return
	}

	var doc gameDoc
	if err := h.registry.Get(id, func(g *game.Game) error {
		doc = snapshot(id, g)
		return nil
	}); err != nil {
		h.writeGameError(w, r, err)
		return
	}

	h.log.Info().Str("rid", GetRequestID(r.Context())).Str("game", id).Msg("game created")
	writeJSON(w, http.StatusCreated, struct {
		ID   string  `json:"id"`
		Game gameDoc `json:"game"`
	}{ID: id, Game: doc})
}

func (h *Handler) listGames(w http.ResponseWriter, r *http.Request) {
	recs, err := h.registry.List()
	if err != nil {
		h.writeGameError(w, r, err)
		return
	}
	if recs == nil {
		recs = []*storage.GameRecord{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": recs})
}

func (h *Handler) getGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var doc gameDoc
	if err := h.registry.Get(id, func(g *game.Game) error {
		doc = snapshot(id, g)
		return nil
	}); err != nil {
		h.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) deleteGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.registry.Remove(id); err != nil {
		h.writeGameError(w, r, err)
		return
	}
	h.log.Info().Str("rid", GetRequestID(r.Context())).Str("game", id).Msg("game deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) applyMove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request", err.Error())
		return
	}

	m, err := parseMove(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed move", err.Error())
		return
	}

	var doc gameDoc
	err = h.registry.With(id, func(g *game.Game) error {
		if g.IsOver() {
			return errGameOver
		}
		if err := g.ApplyMove(m); err != nil {
			return err
		}
		doc = snapshot(id, g)
		return nil
	})
	if err != nil {
		h.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) legalMoves(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	docs := []moveDoc{}
	if err := h.registry.Get(id, func(g *game.Game) error {
		for _, m := range g.LegalMoves() {
			docs = append(docs, moveDoc{
				From:      m.From.String(),
				To:        m.To.String(),
				Promotion: promoString(m.Promotion),
			})
		}
		return nil
	}); err != nil {
		h.writeGameError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"moves": docs})
}

func (h *Handler) bestMove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	depth := h.depth
	if d := r.URL.Query().Get("depth"); d != "" {
		n, err := strconv.Atoi(d)
		if err != nil || n < 1 || n > maxSearchDepth {
			writeError(w, http.StatusBadRequest, "invalid depth",
				"depth must be an integer between 1 and "+strconv.Itoa(maxSearchDepth))
			return
		}
		depth = n
	}

	var pos board.Position
	if err := h.registry.Get(id, func(g *game.Game) error {
		pos = g.Position()
		return nil
	}); err != nil {
		h.writeGameError(w, r, err)
		return
	}

	// Search on the snapshot, outside the game's lock.
	res, err := h.engine.BestMove(r.Context(), pos, depth)
	if err != nil {
		h.writeGameError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bestMoveResponse{
		From:          res.Move.From.String(),
		To:            res.Move.To.String(),
		Promotion:     promoString(res.Move.Promotion),
		Evaluation:    res.Score,
		NodesSearched: res.Nodes,
		Depth:         res.Depth,
	})
}

// writeGameError maps the error taxonomy of the lower layers onto HTTP
// status codes.
func (h *Handler) writeGameError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		writeError(w, http.StatusNotFound, "game not found", err.Error())
	case errors.Is(err, errGameOver), errors.Is(err, engine.ErrNoLegalMoves):
		writeError(w, http.StatusConflict, "game is over", err.Error())
	case errors.Is(err, game.ErrIllegalMove):
		writeError(w, http.StatusBadRequest, "illegal move", err.Error())
	case errors.Is(err, context.Canceled):
		// Client went away; there is nobody to answer.
	default:
		h.log.Error().Err(err).Str("rid", GetRequestID(r.Context())).Msg("internal error")
		writeError(w, http.StatusInternalServerError, "internal error", "")
	}
}

// parseMove builds the move named by a request; legality is the game's
// business.
func parseMove(req moveRequest) (board.Move, error) {
	from, err := board.ParseSquare(req.From)
	if err != nil {
		return board.Move{}, err
	}
	to, err := board.ParseSquare(req.To)
	if err != nil {
		return board.Move{}, err
	}

	m := board.Move{From: from, To: to}
	if req.Promotion != "" {
		if len(req.Promotion) != 1 {
			return board.Move{}, errors.New("promotion must be one of n, b, r, q")
		}
		promo, err := board.ParsePromotion(req.Promotion[0])
		if err != nil {
			return board.Move{}, err
		}
		m.Promotion = promo
	}
	return m, nil
}

func promoString(pt board.PieceType) string {
	switch pt {
	case board.Knight:
		return "n"
	case board.Bishop:
		return "b"
	case board.Rook:
		return "r"
	case board.Queen:
		return "q"
	}
	return ""
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg, details string) {
	writeJSON(w, status, errorResponse{Error: msg, Details: details})
}
