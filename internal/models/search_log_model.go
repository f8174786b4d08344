package models

import "time"

// SearchLog is an append-only record of a search the UI performed. It is only
// read back for in-memory analytics aggregation.
type SearchLog struct {
	ID        string    `json:"id" firestore:"-"` // Document ID, auto-generated
	Term      string    `json:"term" firestore:"term"`
	Category  string    `json:"category,omitempty" firestore:"category,omitempty"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp,serverTimestamp"`
	Date      string    `json:"date" firestore:"date"` // YYYY-MM-DD, for cheap per-day grouping
}

// SearchTermCount is an aggregated analytics row: how often a term was
// searched within the queried window.
type SearchTermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}
