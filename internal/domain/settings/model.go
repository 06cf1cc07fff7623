package settings

import "time"

// UserSettings stores a user's defaults, keyed by the issuer's user ID.
// Upserted on every invoice save and read back to prefill the next new
// invoice.
type UserSettings struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}
