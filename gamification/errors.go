package gamification

import "errors"

// Error taxonomy for the engine. Handlers map these onto HTTP statuses;
// everything else is propagated unchanged.
var (
	// ErrInvalidArgument marks caller mistakes: out-of-range values,
	// malformed dates, unknown tags. Never silently clamped.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState marks a loaded record that violates an invariant the
	// engine cannot repair by recomputing from raw history.
	ErrInvalidState = errors.New("invalid record state")

	// ErrStorageUnavailable wraps failures of the injected Store. The engine
	// never retries; retry policy belongs to the storage adapter.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
