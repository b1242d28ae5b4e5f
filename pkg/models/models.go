// Package models defines the shared data structures exchanged between the
// CLI, the HTTP API and their clients. Keeping them in pkg/ lets external
// consumers decode the JSON payloads without importing internal packages.
package models

// SearchSummary describes the outcome of one search strategy run.
// It is the JSON payload returned by the /search endpoint and emitted by
// the CLI in -json mode.
type SearchSummary struct {
	// Strategy is the name of the strategy that produced the result.
	Strategy string `json:"strategy"`
	// Bound is the exclusive upper limit the search ran against.
	Bound int64 `json:"bound"`
	// Count is the number of distinct progressive perfect squares found.
	Count int `json:"count"`
	// Sum is the sum of the progressive perfect squares.
	Sum int64 `json:"sum"`
	// Roots lists the square roots of the solutions in ascending order.
	Roots []int64 `json:"roots"`
	// Duration is the wall-clock search time in Go duration format.
	Duration string `json:"duration"`
	// Error carries the failure message when the search did not complete.
	Error string `json:"error,omitempty"`
}

// ErrorResponse is the standardized error payload of the HTTP API.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message is a human-readable description of what went wrong.
	Message string `json:"message,omitempty"`
}
