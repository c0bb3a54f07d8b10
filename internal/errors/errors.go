// Package errors provides domain-specific error types and sentinel errors
// for improved error handling across the application.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common scenarios.
// Use errors.Is() to check these errors in your code.
var (
	// ErrNoDocuments indicates the ingest pipeline produced no usable data.
	ErrNoDocuments = errors.New("no documents ingested")

	// ErrProviderUnavailable indicates a chat provider could not be reached.
	ErrProviderUnavailable = errors.New("chat provider unavailable")

	// ErrAllProvidersFailed indicates every configured chat provider failed.
	ErrAllProvidersFailed = errors.New("all chat providers failed")

	// ErrSnapshotMissing indicates no database snapshot exists in object storage.
	ErrSnapshotMissing = errors.New("snapshot missing")
)

// ParseError represents a document parsing failure with source context.
type ParseError struct {
	Source string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error (source=%s, line=%d): %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error (source=%s): %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new parse error.
func NewParseError(source string, line int, err error) *ParseError {
	return &ParseError{
		Source: source,
		Line:   line,
		Err:    err,
	}
}

// ProviderError represents a chat provider failure with provider context.
type ProviderError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("provider error (provider=%s, model=%s): %v", e.Provider, e.Model, e.Err)
	}
	return fmt.Sprintf("provider error (provider=%s): %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a new provider error.
func NewProviderError(provider, model string, err error) *ProviderError {
	return &ProviderError{
		Provider: provider,
		Model:    model,
		Err:      err,
	}
}
