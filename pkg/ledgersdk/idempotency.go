package ledgersdk

import "github.com/google/uuid"

// NewIdempotencyKey returns a fresh random key. Generate one per user action
// and reuse it for every retry of that action.
func NewIdempotencyKey() string {
	return uuid.NewString()
}
