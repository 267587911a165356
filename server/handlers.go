package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/ThunderKey/sudoku-solver/navigator"
	"github.com/ThunderKey/sudoku-solver/puzzlefile"
	"github.com/ThunderKey/sudoku-solver/registry"
	"github.com/ThunderKey/sudoku-solver/service/solverapi"
	"github.com/ThunderKey/sudoku-solver/session"
	"github.com/ThunderKey/sudoku-solver/storage"
	"github.com/ThunderKey/sudoku-solver/sudoku"
)

// sessionHeader selects the caller's session; without it the shared default
// session is used, matching the single-user behavior of the original app.
const sessionHeader = "X-Session-ID"

var samplePuzzle = sudoku.Grid{
	{5, 3, 0, 0, 7, 0, 0, 0, 0},
	{6, 0, 0, 1, 9, 5, 0, 0, 0},
	{0, 9, 8, 0, 0, 0, 0, 6, 0},
	{8, 0, 0, 0, 6, 0, 0, 0, 3},
	{4, 0, 0, 8, 0, 3, 0, 0, 1},
	{7, 0, 0, 0, 2, 0, 0, 0, 6},
	{0, 6, 0, 0, 0, 0, 2, 8, 0},
	{0, 0, 0, 4, 1, 9, 0, 0, 5},
	{0, 0, 0, 0, 8, 0, 0, 7, 9},
}

type SudokuHandler struct {
	reg      *registry.Registry
	store    *storage.Store
	sessions *session.Manager
	fallback *session.Session
}

func NewSudokuHandler(reg *registry.Registry, store *storage.Store, sessions *session.Manager) *SudokuHandler {
	return &SudokuHandler{reg: reg, store: store, sessions: sessions, fallback: sessions.Create()}
}

func (h *SudokuHandler) session(c *gin.Context) *session.Session {
	if id := c.GetHeader(sessionHeader); id != "" {
		if s, ok := h.sessions.Get(id); ok {
			return s
		}
	}
	return h.fallback
}

func (h *SudokuHandler) GridState(c *gin.Context) {
	sess := h.session(c)
	c.JSON(http.StatusOK, stateResponse(sess, sess.State(), ""))
}

func (h *SudokuHandler) UpdateCell(c *gin.Context) {
	var req solverapi.CellUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	sess := h.session(c)
	state, err := sess.UpdateCell(req.Row, req.Col, req.Value)
	if err != nil {
		log.Err(err).Int("row", req.Row).Int("col", req.Col).Msg("update cell")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cell update", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stateResponse(sess, state, "Cell updated"))
}

func (h *SudokuHandler) LoadPuzzle(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		log.Err(err).Msg("read file from form")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read form file", "message": err.Error()})
		return
	}

	f, err := file.Open()
	if err != nil {
		log.Err(err).Msg("open file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open form file", "message": err.Error()})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		log.Err(err).Msg("read file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read form file", "message": err.Error()})
		return
	}

	grid, err := puzzlefile.Parse(data)
	if err != nil {
		log.Err(err).Str("filename", file.Filename).Msg("parse puzzle file")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid puzzle file", "message": err.Error()})
		return
	}

	sess := h.session(c)
	c.JSON(http.StatusOK, stateResponse(sess, sess.LoadPuzzle(grid), "Puzzle loaded"))
}

func (h *SudokuHandler) LoadSample(c *gin.Context) {
	sess := h.session(c)
	c.JSON(http.StatusOK, stateResponse(sess, sess.LoadPuzzle(samplePuzzle), "Sample puzzle loaded"))
}

func (h *SudokuHandler) ClearGrid(c *gin.Context) {
	var req solverapi.ClearRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Invalid request body", err)
		return
	}
	sess := h.session(c)
	c.JSON(http.StatusOK, stateResponse(sess, sess.Clear(req.KeepGiven), "Grid cleared"))
}

func (h *SudokuHandler) SavePuzzle(c *gin.Context) {
	sess := h.session(c)
	var data []byte
	var err error
	var ext, contentType string

	switch c.Query("format") {
	case "text":
		data, ext, contentType = puzzlefile.MarshalText(sess.Grid()), "txt", "text/plain"
	case "solution":
		metrics, ok := sess.Metrics()
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No solution to export", "message": "solve the puzzle first"})
			return
		}
		data, err = puzzlefile.ExportSolution(sess.Original(), sess.Grid(), metrics.Solver, metrics.Duration)
		ext, contentType = "json", "application/json"
	default:
		data, err = puzzlefile.MarshalJSON(sess.Grid())
		ext, contentType = "json", "application/json"
	}
	if err != nil {
		internalError(c, "Failed to serialize puzzle", err)
		return
	}

	filename := fmt.Sprintf("sudoku_puzzle_%d.%s", time.Now().Unix(), ext)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}

func (h *SudokuHandler) Solvers(c *gin.Context) {
	c.JSON(http.StatusOK, h.reg.List())
}

func (h *SudokuHandler) Solve(c *gin.Context) {
	var req solverapi.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	sess := h.session(c)
	res, err := sess.Solve(h.reg, req.SolverName, req.WithSteps)
	if err != nil {
		if errors.Is(err, registry.ErrUnknownSolver) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unknown solver", "message": err.Error()})
			return
		}
		internalError(c, "Solve failed", err)
		return
	}
	if !res.Solved {
		c.JSON(http.StatusOK, solverapi.StateResponse{
			Success:   false,
			Message:   "No solution found",
			GridState: res.State,
		})
		return
	}
	c.JSON(http.StatusOK, solverapi.StateResponse{
		Success:      true,
		Message:      fmt.Sprintf("Puzzle solved using %s", req.SolverName),
		GridState:    res.State,
		SolutionInfo: res.Info,
		Metrics:      res.Metrics,
	})
}

func (h *SudokuHandler) SolutionInfo(c *gin.Context) {
	sess := h.session(c)
	info, ok := sess.SolutionInfo()
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *SudokuHandler) NextStep(c *gin.Context) {
	h.step(c, func(s *session.Session) (sudoku.GridState, navigator.State, error) { return s.StepNext() })
}

func (h *SudokuHandler) PrevStep(c *gin.Context) {
	h.step(c, func(s *session.Session) (sudoku.GridState, navigator.State, error) { return s.StepPrev() })
}

func (h *SudokuHandler) JumpStep(c *gin.Context) {
	var req solverapi.JumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	h.step(c, func(s *session.Session) (sudoku.GridState, navigator.State, error) {
		return s.StepJump(req.StepIndex)
	})
}

func (h *SudokuHandler) step(c *gin.Context, move func(*session.Session) (sudoku.GridState, navigator.State, error)) {
	sess := h.session(c)
	state, info, err := move(sess)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot navigate", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, solverapi.StateResponse{Success: true, GridState: state, SolutionInfo: &info})
}

func (h *SudokuHandler) Performance(c *gin.Context) {
	sess := h.session(c)
	metrics, ok := sess.Metrics()
	if !ok {
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, metrics)
}

func (h *SudokuHandler) ReloadPlugins(c *gin.Context) {
	solvers, diags := h.reg.Reload()
	c.JSON(http.StatusOK, solverapi.ReloadResponse{Success: true, Solvers: solvers, Diagnostics: diags})
}

func (h *SudokuHandler) ListPuzzles(c *gin.Context) {
	puzzles, err := h.store.List(c)
	if err != nil {
		internalError(c, "Failed to list puzzles", err)
		return
	}
	c.JSON(http.StatusOK, puzzles)
}

func (h *SudokuHandler) StorePuzzle(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Invalid request body", err)
		return
	}

	sess := h.session(c)
	state := sess.State()
	saved, err := h.store.Save(c, storage.SavedPuzzle{
		Name:   req.Name,
		Grid:   state.Grid,
		Givens: state.Givens,
	})
	if err != nil {
		internalError(c, "Failed to save puzzle", err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *SudokuHandler) LoadStoredPuzzle(c *gin.Context) {
	saved, err := h.store.Load(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Puzzle not found", "message": err.Error()})
			return
		}
		internalError(c, "Failed to load puzzle", err)
		return
	}

	sess := h.session(c)
	c.JSON(http.StatusOK, stateResponse(sess, sess.LoadPuzzle(saved.Grid), "Puzzle loaded"))
}

func (h *SudokuHandler) DeletePuzzle(c *gin.Context) {
	if err := h.store.Delete(c, c.Param("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Puzzle not found", "message": err.Error()})
			return
		}
		internalError(c, "Failed to delete puzzle", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func stateResponse(sess *session.Session, state sudoku.GridState, msg string) solverapi.StateResponse {
	res := solverapi.StateResponse{Success: true, Message: msg, GridState: state}
	if info, ok := sess.SolutionInfo(); ok {
		res.SolutionInfo = &info
	}
	return res
}

func badRequest(c *gin.Context, msg string, err error) {
	log.Err(err).Msg(msg)
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "message": err.Error()})
}

func internalError(c *gin.Context, msg string, err error) {
	log.Err(err).Msg(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg, "message": err.Error()})
}
