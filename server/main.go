package main

import (
	"flag"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	_ "github.com/ThunderKey/sudoku-solver/plugins/randomfill"
	"github.com/ThunderKey/sudoku-solver/registry"
	"github.com/ThunderKey/sudoku-solver/session"
	"github.com/ThunderKey/sudoku-solver/storage"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dbPath := flag.String("db", "sudoku.db", "puzzle library database path")
	flag.Parse()

	reg, diags := registry.New(log.Logger, registry.Builtins(), registry.Extensions())
	for _, d := range diags {
		log.Warn().Str("source", d.Source).Str("reason", d.Reason).Msg("solver rejected at startup")
	}

	store, err := storage.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open puzzle store")
	}
	defer store.Close()

	sessions := session.NewManager()
	sudokuHandler := NewSudokuHandler(reg, store, sessions)

	e := gin.Default()
	v1 := e.Group("/api").
		Group("/v1")

	v1.GET("/grid", sudokuHandler.GridState)
	v1.POST("/grid/cell", sudokuHandler.UpdateCell)
	v1.POST("/grid/load", sudokuHandler.LoadPuzzle)
	v1.GET("/grid/sample", sudokuHandler.LoadSample)
	v1.POST("/grid/clear", sudokuHandler.ClearGrid)
	v1.GET("/grid/save", sudokuHandler.SavePuzzle)
	v1.GET("/solvers", sudokuHandler.Solvers)
	v1.POST("/solve", sudokuHandler.Solve)
	v1.GET("/solve/stream", sudokuHandler.SolveStream)
	v1.GET("/solution", sudokuHandler.SolutionInfo)
	v1.POST("/solution/next", sudokuHandler.NextStep)
	v1.POST("/solution/prev", sudokuHandler.PrevStep)
	v1.POST("/solution/jump", sudokuHandler.JumpStep)
	v1.GET("/performance", sudokuHandler.Performance)
	v1.POST("/plugins/reload", sudokuHandler.ReloadPlugins)
	v1.GET("/puzzles", sudokuHandler.ListPuzzles)
	v1.POST("/puzzles", sudokuHandler.StorePuzzle)
	v1.GET("/puzzles/:id", sudokuHandler.LoadStoredPuzzle)
	v1.DELETE("/puzzles/:id", sudokuHandler.DeletePuzzle)

	if err = e.Run(*addr); err != nil {
		log.Fatal().Err(err).Msg("run server")
	}
}
