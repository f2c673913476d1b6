package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jsphweid/capo/chord"
	"github.com/jsphweid/capo/db"
	"github.com/jsphweid/capo/file"
	"github.com/jsphweid/capo/model"
	"github.com/jsphweid/capo/sequence"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the analyzer over HTTP",
	Long:  `Serves chord analysis, transposition and saved progressions as a JSON API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

var errBadRequest = errors.New("bad request")

type Deps struct {
	Store      db.Store
	Logger     *zap.Logger
	OpenChords sequence.Sequence
	Style      chord.NoteStyle
}

type server struct {
	Deps
}

func NewRouter(deps Deps) *mux.Router {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.OpenChords.Len() == 0 {
		deps.OpenChords = sequence.DefaultOpenChords()
	}
	s := &server{deps}

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", s.handleAnalyze).Methods("POST")
	router.HandleFunc("/transpose", s.handleTranspose).Methods("POST")
	router.HandleFunc("/progressions", s.handleCreateProgression).Methods("POST")
	router.HandleFunc("/progressions", s.handleListProgressions).Methods("GET")
	router.HandleFunc("/progressions/{id}", s.handleGetProgression).Methods("GET")
	router.HandleFunc("/progressions/{id}", s.handleDeleteProgression).Methods("DELETE")
	return router
}

func serve(ctx context.Context) error {
	store, err := db.New(cfg.Store)
	if err != nil {
		return err
	}
	ref, err := openChords("")
	if err != nil {
		return err
	}

	router := NewRouter(Deps{Store: store, Logger: logger, OpenChords: ref, Style: noteStyle()})
	handler := withCORS(router, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Backend))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func withCORS(h http.Handler, origins []string) http.Handler {
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(h)
}

func (s *server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var input model.AnalyzeRequestBody
	if err := decodeBody(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	seq, err := sequence.New(input.Chords)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ref := s.OpenChords
	if len(input.OpenChords) > 0 {
		ref, err = sequence.New(input.OpenChords)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	positions := []model.OpenPositionResult{}
	for _, p := range seq.FindOpenPositionsIn(ref) {
		positions = append(positions, model.OpenPositionResult{
			Fret:     p.Fret,
			Display:  p.Sequence.Format(s.Style),
			Sequence: p.Sequence,
		})
	}

	s.writeJSON(w, http.StatusOK, model.AnalyzeResponse{
		Display:   seq.Format(s.Style),
		Chords:    seq,
		Keys:      seq.FindKeys(),
		Open:      seq.IsOpenIn(ref),
		Positions: positions,
	})
}

func (s *server) handleTranspose(w http.ResponseWriter, r *http.Request) {
	var input model.TransposeRequestBody
	if err := decodeBody(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}

	seq, err := sequence.New(input.Chords)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	moved, err := seq.TransposeString(input.SemitonesString())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, model.TransposeResponse{
		Display:  moved.Format(s.Style),
		Sequence: moved,
	})
}

func (s *server) handleCreateProgression(w http.ResponseWriter, r *http.Request) {
	var input model.ProgressionRequestBody
	if err := decodeBody(r, &input); err != nil {
		s.writeError(w, r, err)
		return
	}
	if input.Name == "" {
		s.writeError(w, r, fmt.Errorf("%w: name is required", errBadRequest))
		return
	}

	seq, err := sequence.New(input.Chords)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.Store.Save(r.Context(), input.Name, seq)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.Logger.Info("Saved progression", zap.String("id", p.ID), zap.String("name", p.Name))
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *server) handleListProgressions(w http.ResponseWriter, r *http.Request) {
	list, err := s.Store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *server) handleGetProgression(w http.ResponseWriter, r *http.Request) {
	p, err := s.Store.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *server) handleDeleteProgression(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), mux.Vars(r)["id"]); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: could not unmarshal request body: %v", errBadRequest, err)
	}
	return nil
}

func statusOf(err error) int {
	var seqErr *sequence.SequenceError
	var parseErr *file.ParseError
	switch {
	case errors.Is(err, errBadRequest), errors.As(err, &seqErr), errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.Logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
	} else {
		s.Logger.Debug("Rejected request", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	s.writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("Could not encode response", zap.Error(err))
	}
}
