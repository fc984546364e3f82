// Package api serves the chart widget host over HTTP.
package api

import (
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/cors"
	"github.com/scom-repos/scom-scatter-chart-sub000/datasource"
	"github.com/scom-repos/scom-scatter-chart-sub000/services"
	"github.com/scom-repos/scom-scatter-chart-sub000/widget"
	"github.com/yaoapp/kun/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server holds the collaborators of the handlers.
type Server struct {
	factory  widget.SourceFactory
	llm      services.LLM
	registry *Registry
}

// NewServer returns a server opening data sources with factory. llm may be
// nil, which disables suggestions. A nil factory serves inline rows only.
func NewServer(factory widget.SourceFactory, llm services.LLM) *Server {
	if factory == nil {
		factory = datasource.Factory{NoFiles: true}
	}
	return &Server{factory: factory, llm: llm, registry: NewRegistry()}
}

// Handler returns the routes wrapped in CORS for allowFrom origins.
func (s *Server) Handler(allowFrom []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/register", methods{http.MethodGet: s.handleRegister}.serve)
	mux.HandleFunc("/form-schema", methods{http.MethodPost: s.handleFormSchema}.serve)
	mux.HandleFunc("/chart", methods{http.MethodPost: s.handleChart}.serve)
	mux.HandleFunc("/render", methods{http.MethodPost: s.handleRender}.serve)
	mux.HandleFunc("/suggest", methods{http.MethodPost: s.handleSuggest}.serve)
	mux.HandleFunc("/widgets", methods{http.MethodPost: s.handleCreateWidget}.serve)
	mux.HandleFunc("/widgets/{id}", methods{
		http.MethodGet:    s.handleGetWidget,
		http.MethodPut:    s.handleUpdateWidget,
		http.MethodDelete: s.handleDeleteWidget,
	}.serve)
	mux.HandleFunc("/widgets/{id}/chart", methods{http.MethodGet: s.handleWidgetChart}.serve)

	c := cors.New(cors.Options{
		AllowedOrigins: allowFrom,
		AllowedMethods: []string{"POST", "GET", "OPTIONS", "PUT", "DELETE"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
	})
	return c.Handler(mux)
}

type methods map[string]http.HandlerFunc

func (m methods) serve(w http.ResponseWriter, r *http.Request) {
	h, has := m[r.Method]
	if !has {
		writeError(w, http.StatusMethodNotAllowed, "method "+r.Method+" is not allowed")
		return
	}
	h(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("[api] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// writeFailure maps err to a status code.
func writeFailure(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, widget.ErrInvalidData),
		errors.Is(err, datasource.ErrForbiddenQuery),
		errors.Is(err, datasource.ErrForbiddenPath),
		errors.Is(err, datasource.ErrUnsupported):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		log.Error("[api] %v", err)
	}
	writeError(w, status, err.Error())
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
