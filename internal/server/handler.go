// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package server is the development backend: it answers POST /get_country_data from a
// dataset, serves a small landing page on / and reports health over gRPC.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"countrydata/cli/internal/backend"
	"countrydata/cli/internal/dataset"
	"countrydata/cli/internal/logging"
	"countrydata/cli/internal/record"

	"github.com/gorilla/mux"
)

// Error bodies returned by the country data endpoint.
const (
	MsgBodyRequired    = "Request body is required"
	MsgCountryRequired = "Country name is required"
	MsgNotFound        = "Country not found"
	MsgInternal        = "An internal error occurred"
)

// Handler serves the HTTP side of the development backend.
type Handler struct {
	src       dataset.Source
	countries []string
	log       *slog.Logger
}

// NewHandler creates a handler over src. countries is the selector list offered on
// the landing page.
func NewHandler(src dataset.Source, countries []string, log *slog.Logger) *Handler {
	if log == nil {
		log = logging.Discard()
	}
	return &Handler{src: src, countries: countries, log: log}
}

// Routes returns the router with CORS and request logging applied.
func (h *Handler) Routes() http.Handler {
	router := mux.NewRouter()
	router.HandleFunc(backend.DefaultEndpoint, h.GetCountryData).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/", h.Index).Methods(http.MethodGet, http.MethodHead)
	router.Use(mux.CORSMethodMiddleware(router))
	return h.logRequests(cors(router))
}

// GetCountryData looks up the country named in {"countryName": ...}.
func (h *Handler) GetCountryData(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		preflight(w)
		return
	}
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || len(body) == 0 {
		writeError(w, http.StatusBadRequest, MsgBodyRequired)
		return
	}
	name, _ := body["countryName"].(string)
	if name == "" {
		writeError(w, http.StatusBadRequest, MsgCountryRequired)
		return
	}

	rec, err := h.src.Lookup(r.Context(), name)
	if errors.Is(err, dataset.ErrNotFound) {
		writeError(w, http.StatusNotFound, MsgNotFound)
		return
	}
	if err != nil {
		h.log.Error("fetch country data", "country", name, "error", err)
		writeError(w, http.StatusInternalServerError, MsgInternal)
		return
	}
	writeRecord(w, rec)
}

// writeRecord writes rec with its keys in stored order.
func writeRecord(w http.ResponseWriter, rec record.Record) {
	data, err := rec.MarshalJSON()
	if err != nil {
		writeError(w, http.StatusInternalServerError, MsgInternal)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		next.ServeHTTP(w, r)
	})
}

// preflight answers a CORS preflight; the allowed methods are set by the router.
func preflight(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "600")
	w.WriteHeader(http.StatusNoContent)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
