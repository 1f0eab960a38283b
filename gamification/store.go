package gamification

// Store is the persisted-record boundary. Load returns nil (no error) when
// no record exists yet; the engine creates the zero-valued default. Save
// overwrites the whole record; last writer wins, no merge logic.
//
// Implementations should wrap medium failures with ErrStorageUnavailable so
// callers can tell a broken backend from a validation error.
type Store interface {
	Load(userID uint) (*Record, error)
	Save(userID uint, r *Record) error
}
