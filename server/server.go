package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kasuboski/episodez/pkg/catalog"
	"github.com/kasuboski/episodez/pkg/logger"
	"github.com/kasuboski/episodez/pkg/manager"
	"github.com/kasuboski/episodez/pkg/pagination"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server exposes the manager over http
type Server struct {
	baseLogger *zap.SugaredLogger
	manager    *manager.Manager
}

// New creates a new server
func New(logger *zap.SugaredLogger, manager *manager.Manager) Server {
	return Server{
		baseLogger: logger,
		manager:    manager,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	_, err = w.Write(b)
	return err
}

// statusFor maps lookup failures to not found and everything else to an internal error
func statusFor(err error) int {
	switch {
	case errors.Is(err, manager.ErrShowNotFound),
		errors.Is(err, catalog.ErrSeriesNotFound),
		errors.Is(err, catalog.ErrEpisodeNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Router builds the routes with logging and CORS applied
func (s Server) Router() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/identify", s.Identify()).Methods(http.MethodGet)
	v1.HandleFunc("/rules", s.ListRules()).Methods(http.MethodGet)
	v1.HandleFunc("/shows", s.ListShows()).Methods(http.MethodGet)
	v1.HandleFunc("/shows/{id:[0-9]+}/seasons/{season:[0-9]+}/episodes/{episode:[0-9]+}/files", s.EpisodeFiles()).Methods(http.MethodGet)
	v1.HandleFunc("/downloads", s.ListDownloads()).Methods(http.MethodGet)
	v1.HandleFunc("/jobs/downloads", s.DownloadJob()).Methods(http.MethodGet)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)
}

// Serve starts the http server and blocks until ctx is done
func (s Server) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		s.baseLogger.Info("serving...", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Healthz is an endpoint that can be used for probes
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

// Identify reports the season and episode for the path query param, optionally for a configured show
func (s Server) Identify() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		qps := r.URL.Query()

		path := qps.Get("path")
		if path == "" {
			writeErrorResponse(w, http.StatusBadRequest, errors.New("path is required"))
			return
		}

		var showID int64
		if raw := qps.Get("show"); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid show parameter: %w", err))
				return
			}
			showID = id
		}

		result, err := s.manager.Identify(r.Context(), path, showID)
		if err != nil {
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: IdentifyResponse{
			Path:     path,
			Season:   result.Season,
			Episode:  result.Episode,
			Matched:  result.Success(),
			Rule:     result.Rule,
			Readable: result.String(),
		}})
		if err != nil {
			log.Error("failed to write response", zap.Error(err))
		}
	}
}

func (s Server) ListRules() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: s.manager.Rules()})
	}
}

// DownloadJob reports the latest scheduled download reconciliation
func (s Server) DownloadJob() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeResponse(w, http.StatusOK, GenericResponse{Response: s.manager.DownloadJob()})
	}
}

func (s Server) ListShows() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shows := s.manager.Shows()
		if shows == nil {
			shows = []catalog.Show{}
		}
		writeResponse(w, http.StatusOK, GenericResponse{Response: shows})
	}
}

// EpisodeFiles lists the library files holding an episode
func (s Server) EpisodeFiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())
		vars := mux.Vars(r)

		id, err := strconv.ParseInt(vars["id"], 10, 64)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid show id: %w", err))
			return
		}
		season, err := strconv.Atoi(vars["season"])
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid season: %w", err))
			return
		}
		episode, err := strconv.Atoi(vars["episode"])
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid episode: %w", err))
			return
		}

		files, err := s.manager.EpisodeFiles(r.Context(), id, season, episode)
		if err != nil {
			log.Debug("failed to find episode files", zap.Error(err))
			writeErrorResponse(w, statusFor(err), err)
			return
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: files})
		if err != nil {
			log.Error("failed to write response", zap.Error(err))
		}
	}
}

// ListDownloads reconciles the download clients and pages through the decisions.
// needed=true limits the result to downloads the library still wants.
func (s Server) ListDownloads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromCtx(r.Context())

		query, err := parseDownloadsQuery(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		decisions, err := s.manager.ReconcileDownloads(r.Context())
		if err != nil {
			log.Error("failed to reconcile downloads", zap.Error(err))
			writeErrorResponse(w, http.StatusInternalServerError, err)
			return
		}

		if query.OnlyNeeded {
			filtered := make([]manager.DownloadDecision, 0, len(decisions))
			for _, d := range decisions {
				if d.Needed {
					filtered = append(filtered, d)
				}
			}
			decisions = filtered
		}

		err = writeResponse(w, http.StatusOK, GenericResponse{Response: pagination.Apply(decisions, query.Params)})
		if err != nil {
			log.Error("failed to write response", zap.Error(err))
		}
	}
}
