package domain

import "errors"

// Error taxonomy for the advisory engine. Unresolved-entity errors surface to
// the caller as clarification questions, not failures; snapshot errors are
// user-visible but recoverable and never replaced with fabricated weather.
var (
	// ErrUnresolvedCity means a weather-related query named no city and no
	// carry-over applied.
	ErrUnresolvedCity = errors.New("no city resolved from message")

	// ErrUnresolvedActivity means an activity-planning query named no known
	// activity.
	ErrUnresolvedActivity = errors.New("no activity resolved from message")

	// ErrUnknownActivity means an activity name has no profile entry.
	// Lookups are exact, lowercase, no fuzzy matching.
	ErrUnknownActivity = errors.New("unknown activity")

	// ErrSnapshotUnavailable means the weather provider failed or does not
	// know the city.
	ErrSnapshotUnavailable = errors.New("weather snapshot unavailable")

	// ErrUnsupportedLanguage is non-fatal; composition falls back to the
	// default language.
	ErrUnsupportedLanguage = errors.New("unsupported language")
)
