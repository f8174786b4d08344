package models

import "time"

// MasterModel is one entry of the canonical device-name list. The document is
// keyed by the model name itself, which makes upserts idempotent by name.
type MasterModel struct {
	Name      string    `json:"name" firestore:"name"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
