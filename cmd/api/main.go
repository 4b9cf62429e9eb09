package main

import (
	"context"
	"net/http"
	"os"

	"github.com/rs/cors"

	"sup-routine-backend/internal/auth"
	"sup-routine-backend/internal/catalog"
	"sup-routine-backend/internal/config"
	"sup-routine-backend/internal/directory"
	"sup-routine-backend/internal/duty"
	"sup-routine-backend/internal/logging"
	"sup-routine-backend/internal/remote"
	"sup-routine-backend/internal/routine"
	"sup-routine-backend/internal/store"
	"sup-routine-backend/internal/week"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFile)

	st, err := store.Open(cfg.StoreDriver, cfg.RedisURL, cfg.ConnString())
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Ping(context.Background()); err != nil {
		logger.Error("store is unreachable", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	logger.Info("connected to store", "driver", cfg.StoreDriver)

	weeks := week.New(cfg.Location())
	cat := catalog.New(st)
	dir := directory.New(st)
	tracker := routine.NewTracker(st, cfg.Location())
	duties := duty.NewManager(st, dir, weeks)
	remotes := remote.NewScheduler(dir, weeks)

	catalogAPI := catalog.NewHandler(cat, weeks)
	directoryAPI := directory.NewHandler(dir)
	routineAPI := routine.NewHandler(tracker, cat)
	dutyAPI := duty.NewHandler(duties, dir, weeks)
	remoteAPI := remote.NewHandler(remotes, weeks)

	guard := auth.New([]byte(cfg.APISecret))

	mux := http.NewServeMux()

	// Health endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// ----- TASK CATALOG API -----
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			catalogAPI.Tasks(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/tasks/duties", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			catalogAPI.Duties(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/tasks/assignments", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			directoryAPI.Assignments(w, r)
		case http.MethodPost:
			guard.Wrap(directoryAPI.Assignments)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- ROUTINE SESSION API -----
	mux.HandleFunc("/session/open", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			guard.Wrap(routineAPI.OpenSession)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/session/complete", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			guard.Wrap(routineAPI.RecordCompletion)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/session/completions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			routineAPI.Completions(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/session/outstanding", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			routineAPI.OutstandingTasks(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- DUTY ROTATION API -----
	mux.HandleFunc("/duty/assign", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			guard.Wrap(dutyAPI.Assign)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/duty/remove", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			guard.Wrap(dutyAPI.Remove)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/duty/week", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			dutyAPI.Week(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- REMOTE DAYS API -----
	mux.HandleFunc("/remote/set", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			guard.Wrap(remoteAPI.Set)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/remote/clear", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			guard.Wrap(remoteAPI.Clear)(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/remote/on", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			remoteAPI.OnDate(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/remote/summary", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			remoteAPI.Summary(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// ----- DIRECTORY API -----
	mux.HandleFunc("/employees/working", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			directoryAPI.Working(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/special", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			directoryAPI.SpecialDate(w, r)
		case http.MethodOptions:
			w.WriteHeader(http.StatusOK)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	logger.Info("API server is running", "addr", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, handler); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
