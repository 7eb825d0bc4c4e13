// Package main runs the sudoku scanning service: image upload in,
// recognized and solved grid out.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"

	"sudoku-scan/internal/pipeline"
	"sudoku-scan/internal/recognize"
	"sudoku-scan/internal/vision"
)

const (
	appTitle   = "Sudoku Scan"
	appVersion = "1.0.0"

	// maxUploadBytes bounds a /solve request body.
	maxUploadBytes = 16 << 20
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	host := flag.String("host", envOr("SUDOKU_HOST", "0.0.0.0"), "host to bind")
	port := flag.Int("port", envIntOr("SUDOKU_PORT", 8000), "port to listen on")
	flag.Parse()

	log.Printf("Starting %s v%s", appTitle, appVersion)

	engine, err := recognize.NewEngine()
	if err != nil {
		log.Fatalf("Failed to initialize recognition engine: %v", err)
	}
	defer engine.Close()

	matcher := recognize.NewTemplateMatcher()
	defer matcher.Close()

	p := pipeline.New(engine, matcher)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /solve", solveHandler(p))
	mux.HandleFunc("POST /correct", correctHandler(p))
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})
	mux.HandleFunc("GET /api", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": appTitle + " API",
			"version": appVersion,
		})
	})

	addr := fmt.Sprintf("%s:%d", *host, *port)
	log.Printf("Listening on http://%s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}

// solveHandler accepts an image (multipart field "file", or the raw
// request body) and runs the full pipeline.
func solveHandler(p *pipeline.Pipeline) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := readImage(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		result, err := p.Process(data)
		if err != nil {
			switch {
			case errors.Is(err, vision.ErrDecode):
				writeError(w, http.StatusBadRequest, err)
			case errors.Is(err, vision.ErrGridNotFound):
				writeError(w, http.StatusUnprocessableEntity, err)
			default:
				log.Printf("solve failed: %v", err)
				writeError(w, http.StatusInternalServerError, err)
			}
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// correctHandler re-validates and re-solves a caller-supplied grid,
// bypassing the vision stages.
func correctHandler(p *pipeline.Pipeline) http.HandlerFunc {
	type request struct {
		Grid [][]int `json:"grid"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
			return
		}

		result, err := p.Correct(req.Grid)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}

// readImage extracts upload bytes from a multipart form or raw body.
func readImage(r *http.Request) ([]byte, error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)

	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("reading upload: %w", err)
		}
		return data, nil
	}

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty request body")
	}
	return data, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"detail": err.Error()})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Ignoring non-numeric %s=%q", key, v)
	}
	return fallback
}
