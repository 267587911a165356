package main

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ThunderKey/sudoku-solver/registry"
	"github.com/ThunderKey/sudoku-solver/service/solverapi"
	"github.com/ThunderKey/sudoku-solver/session"
	"github.com/ThunderKey/sudoku-solver/storage"
	"github.com/ThunderKey/sudoku-solver/sudoku"
)

func newStreamServer(t *testing.T) (*SudokuHandler, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg, diags := registry.New(zerolog.Nop(), registry.Builtins())
	if len(diags) != 0 {
		t.Fatalf("builtin discovery produced diagnostics: %+v", diags)
	}
	store, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	h := NewSudokuHandler(reg, store, session.NewManager())
	e := gin.New()
	e.GET("/api/v1/solve/stream", h.SolveStream)

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return h, srv
}

func dialStream(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/solve/stream"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func TestSolveStreamRejectsConflictedGrid(t *testing.T) {
	h, srv := newStreamServer(t)

	// Two fives in row 0: the grid is unsatisfiable, and the strategies
	// only guard their own placements, so the stream must answer without
	// ever starting the search.
	var conflicted sudoku.Grid
	conflicted[0][0], conflicted[0][1] = 5, 5
	h.fallback.LoadPuzzle(conflicted)

	conn := dialStream(t, srv)
	if err := conn.WriteJSON(solverapi.SolveRequest{SolverName: "Backtracking Solver", WithSteps: true}); err != nil {
		t.Fatalf("write solve request: %v", err)
	}

	var event streamEvent
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if event.Type != "error" || event.Error != "no solution found" {
		t.Errorf("event = %+v, want a no-solution error", event)
	}
}

func TestSolveStreamReplaysTrace(t *testing.T) {
	h, srv := newStreamServer(t)
	h.fallback.LoadPuzzle(samplePuzzle)

	conn := dialStream(t, srv)
	if err := conn.WriteJSON(solverapi.SolveRequest{SolverName: "Constraint Propagation", WithSteps: true}); err != nil {
		t.Fatalf("write solve request: %v", err)
	}

	var steps int
	for {
		var event streamEvent
		if err := conn.ReadJSON(&event); err != nil {
			t.Fatalf("read event after %d steps: %v", steps, err)
		}
		switch event.Type {
		case "step":
			if event.Step == nil {
				t.Fatalf("step event %d without a step payload", event.Index)
			}
			steps++
		case "done":
			if steps == 0 || steps != event.Total {
				t.Errorf("streamed %d steps, done reported %d", steps, event.Total)
			}
			return
		default:
			t.Fatalf("unexpected event %+v", event)
		}
	}
}

func TestSolveStreamUnknownSolver(t *testing.T) {
	_, srv := newStreamServer(t)

	conn := dialStream(t, srv)
	if err := conn.WriteJSON(solverapi.SolveRequest{SolverName: "No Such Solver"}); err != nil {
		t.Fatalf("write solve request: %v", err)
	}

	var event streamEvent
	if err := conn.ReadJSON(&event); err != nil {
		t.Fatalf("read event: %v", err)
	}
	if event.Type != "error" {
		t.Errorf("event = %+v, want an error event", event)
	}
}
