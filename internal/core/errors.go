// ABOUTME: Error taxonomy for the triage engine
// ABOUTME: Sentinel errors classified with errors.Is at the pipeline boundary
package core

import "errors"

var (
	// ErrConfiguration marks invalid chunking or retrieval parameters.
	// Fatal; surfaced at startup or build time, never silently clamped.
	ErrConfiguration = errors.New("configuration error")

	// ErrProvider marks an unreachable, rate-limited, or malformed
	// embedding/LLM service response. Recoverable via the degraded path.
	ErrProvider = errors.New("provider error")

	// ErrParse marks an LLM completion that failed schema validation.
	// Treated like ErrProvider by the pipeline; fields are never guessed.
	ErrParse = errors.New("completion parse error")

	// ErrIndexMismatch marks a query-time embedding model that differs from
	// the model recorded when the index was built.
	ErrIndexMismatch = errors.New("index built with a different embedding model")
)
