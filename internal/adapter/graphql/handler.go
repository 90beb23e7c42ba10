package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/portfolio-rebalancer/backend/internal/domain"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

type graphqlError struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions"`
}

type graphqlResponse struct {
	Data   interface{}    `json:"data"`
	Errors []graphqlError `json:"errors,omitempty"`
}

// Handler serves GraphQL requests over HTTP POST
type Handler struct {
	schema graphql.Schema
	log    zerolog.Logger
}

// NewHandler creates a Handler around an executable schema
func NewHandler(schema graphql.Schema, logger zerolog.Logger) *Handler {
	return &Handler{
		schema: schema,
		log:    logger.With().Str("component", "graphql").Logger(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, codeInvalidInput, "only POST is supported")
		return
	}

	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, codeInvalidInput, "invalid request body")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	response := graphqlResponse{Data: result.Data}
	for _, gqlErr := range result.Errors {
		code := classifyError(gqlErr.OriginalError())
		if code == codeInternal {
			h.log.Error().Str("error", gqlErr.Message).Msg("query execution failed")
		}
		response.Errors = append(response.Errors, graphqlError{
			Message:    gqlErr.Message,
			Path:       gqlErr.Path,
			Extensions: map[string]interface{}{"code": code},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		h.log.Error().Err(err).Msg("failed to write response")
	}
}

// NewRouter assembles the HTTP surface: the GraphQL endpoint behind bearer
// auth plus an unauthenticated health check.
func NewRouter(handler http.Handler, userRepo domain.UserRepository, logger zerolog.Logger) chi.Router {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	router.Group(func(protected chi.Router) {
		protected.Use(AuthMiddleware(userRepo))
		protected.Post("/graphql", handler.ServeHTTP)
	})

	return router
}
