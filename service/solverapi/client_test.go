package solverapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ThunderKey/sudoku-solver/registry"
)

func TestClientSolvers(t *testing.T) {
	want := []registry.Descriptor{
		{Name: "Backtracking Solver", Description: "Classic recursive backtracking algorithm", Source: "builtin"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/solvers" || r.Method != http.MethodGet {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(want)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	got, err := client.Solvers(context.Background())
	if err != nil {
		t.Fatalf("Solvers() error = %v", err)
	}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("Solvers() = %+v, want %+v", got, want)
	}
}

func TestClientSolve(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/solve" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var req SolveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.SolverName != "Smart Backtracking" || !req.WithSteps {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(StateResponse{Success: true, Message: "solved"})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	got, err := client.Solve(context.Background(), &SolveRequest{SolverName: "Smart Backtracking", WithSteps: true})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}
	if !got.Success || got.Message != "solved" {
		t.Errorf("Solve() = %+v", got)
	}
}

func TestClientLoadPuzzle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/grid/load" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("read form file: %v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()
		if header.Filename != "puzzle.txt" {
			t.Errorf("filename = %q", header.Filename)
		}
		json.NewEncoder(w).Encode(StateResponse{Success: true})
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	got, err := client.LoadPuzzle(context.Background(), "puzzle.txt", []byte("530070000"))
	if err != nil {
		t.Fatalf("LoadPuzzle() error = %v", err)
	}
	if !got.Success {
		t.Errorf("LoadPuzzle() = %+v", got)
	}
}

func TestClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Unknown solver"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client, err := NewClient(srv.URL, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Solve(context.Background(), &SolveRequest{SolverName: "nope"}); err == nil {
		t.Error("Solve() did not surface the server error")
	}
}

func TestNewClientBadURL(t *testing.T) {
	if _, err := NewClient("://bad", nil); err == nil {
		t.Error("NewClient() accepted an invalid URL")
	}
}
