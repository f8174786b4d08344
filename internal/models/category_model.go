package models

import "time"

// Category is an accessory category. Accessories and contributions reference
// categories by name, not by ID, so renaming or deleting a category can leave
// orphaned references. That denormalization is part of the stored data
// contract and is kept as-is.
type Category struct {
	ID        string    `json:"id" firestore:"-"` // Document ID, auto-generated
	Name      string    `json:"name" firestore:"name"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
