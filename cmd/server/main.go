package main

import (
	"log"
	"net/http"
	"strings"

	"panchayath-ops/internal/config"
	"panchayath-ops/internal/db"
	"panchayath-ops/internal/handlers"

	"github.com/google/uuid"
)

func main() {
	cfg := config.Load()

	// Connect to database
	if err := db.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := db.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	agentHandler := handlers.NewAgentHandler(cfg)
	reportHandler := handlers.NewReportHandler(cfg)
	notesHandler := handlers.NewNotesHandler(cfg)
	panchayathHandler := handlers.NewPanchayathHandler(cfg)

	mux := http.NewServeMux()

	// Request logging middleware - concise request log
	requestLogMiddleware := func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cfg.Debugf("REQUEST: %s %s", r.Method, r.URL.Path)
			next(w, r)
		}
	}

	mux.HandleFunc("/api/panchayaths", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			panchayathHandler.List(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/api/check-mobile", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			agentHandler.CheckMobile(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/api/report", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			reportHandler.Generate(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	mux.HandleFunc("/api/notes", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			notesHandler.Upsert(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// /api/agents (list/create) - register before the catch-all
	mux.HandleFunc("/api/agents", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/agents" {
			http.NotFound(w, r)
			return
		}
		switch r.Method {
		case http.MethodGet:
			agentHandler.List(w, r)
		case http.MethodPost:
			agentHandler.Create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	// Routes with path parameters - handle manually (Go stdlib mux doesn't support {id})
	// /api/agents/{id} and /api/agents/{id}/delete
	mux.HandleFunc("/api/agents/", requestLogMiddleware(func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/agents/")
		if rest == "" {
			http.NotFound(w, r)
			return
		}

		idStr, action := rest, ""
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			idStr, action = rest[:i], rest[i+1:]
		}

		id, err := uuid.Parse(idStr)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		switch {
		case action == "" && r.Method == http.MethodGet:
			agentHandler.Detail(w, r, id)
		case action == "" && r.Method == http.MethodPost:
			agentHandler.Update(w, r, id)
		case action == "delete" && r.Method == http.MethodPost:
			agentHandler.Delete(w, r, id)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	}))

	port := cfg.Port
	if port == "" {
		port = "3000"
	}

	log.Printf("Server starting on http://localhost:%s", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
