package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/ThunderKey/sudoku-solver/registry"
	"github.com/ThunderKey/sudoku-solver/service/solverapi"
	"github.com/ThunderKey/sudoku-solver/solver"
	"github.com/ThunderKey/sudoku-solver/sudoku"
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type streamEvent struct {
	Type  string       `json:"type"` // "step", "done", "error"
	Index int          `json:"index,omitempty"`
	Total int          `json:"total,omitempty"`
	Step  *solver.Step `json:"step,omitempty"`
	Error string       `json:"error,omitempty"`
}

// SolveStream runs a solve with step recording and pushes every step over a
// websocket. The trace is recorded first and then replayed to the client,
// so a slow reader never stalls the search.
func (h *SudokuHandler) SolveStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Err(err).Msg("upgrade websocket")
		return
	}
	defer conn.Close()

	var req solverapi.SolveRequest
	if err := conn.ReadJSON(&req); err != nil {
		log.Err(err).Msg("read solve request from websocket")
		return
	}

	strategy, err := h.reg.Lookup(req.SolverName)
	if err != nil {
		reason := "internal error"
		if errors.Is(err, registry.ErrUnknownSolver) {
			reason = err.Error()
		}
		_ = conn.WriteJSON(streamEvent{Type: "error", Error: reason})
		return
	}

	sess := h.session(c)
	grid := sess.Grid()
	// Search strategies only guard their own placements; a grid that already
	// holds a conflict has no solution, and searching it anyway never
	// terminates in useful time.
	if valid, _ := sudoku.Validity(grid); !valid {
		_ = conn.WriteJSON(streamEvent{Type: "error", Error: "no solution found"})
		return
	}

	_, ok, steps := strategy.SolveWithSteps(grid)
	if !ok {
		_ = conn.WriteJSON(streamEvent{Type: "error", Error: "no solution found"})
		return
	}

	for i := range steps {
		event := streamEvent{Type: "step", Index: i, Total: len(steps), Step: &steps[i]}
		if err := conn.WriteJSON(event); err != nil {
			log.Err(err).Msg("write step to websocket")
			return
		}
	}
	_ = conn.WriteJSON(streamEvent{Type: "done", Total: len(steps)})
}
