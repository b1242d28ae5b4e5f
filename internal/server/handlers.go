package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/agbru/progsquare/internal/progressive"
	"github.com/agbru/progsquare/pkg/models"
)

// handleHealth responds to health check requests.
// It returns a 200 OK status with a JSON payload indicating the service is healthy.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleStrategies returns the list of available search strategies.
// It queries the internal registry and returns the keys as a JSON array.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	response := map[string]any{
		"strategies": s.service.Strategies(),
	}

	s.writeJSONResponse(w, http.StatusOK, response)
}

// handleSearch processes requests to run the progressive square search.
// It parses the optional query parameter 'strategy', executes the search,
// and returns the result in JSON format. The bound is fixed; repeated
// requests are served from the service's cache.
//
// Parameters:
//   - w: The HTTP response writer.
//   - r: The HTTP request.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	strategy := r.URL.Query().Get("strategy")

	// Create a context with timeout for the search
	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	sols, duration, err := s.service.Search(ctx, strategy)
	if err != nil {
		if errors.Is(err, progressive.ErrUnknownStrategy) {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		s.writeErrorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp := buildSearchSummary(strategy, sols, duration)
	s.writeJSONResponse(w, http.StatusOK, resp)
}

// buildSearchSummary constructs the response payload for a completed search.
//
// Parameters:
//   - strategy: The strategy name requested (empty selects the default).
//   - sols: The solution set found.
//   - duration: The time taken for the search.
//
// Returns:
//   - models.SearchSummary: The constructed response struct.
func buildSearchSummary(strategy string, sols *progressive.SolutionSet, duration time.Duration) models.SearchSummary {
	if strategy == "" {
		strategy = "parallel"
	}
	return models.SearchSummary{
		Strategy: strings.ToLower(strategy),
		Bound:    progressive.Bound,
		Count:    sols.Len(),
		Sum:      sols.Sum(),
		Roots:    sols.Roots(),
		Duration: duration.String(),
	}
}

// writeJSONResponse helper function to write a JSON response with the correct content type.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - data: The data to be encoded as JSON.
func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

// writeErrorResponse helper function to write a standardized error response.
//
// Parameters:
//   - w: The HTTP response writer.
//   - statusCode: The HTTP status code to write.
//   - message: The error message to be included in the response body.
func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	errResp := models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	}
	s.writeJSONResponse(w, statusCode, errResp)
}
