package models

import "time"

// Contribution lifecycle states.
const (
	ContributionStatusPending  = "pending"
	ContributionStatusApproved = "approved"
	ContributionStatusRejected = "rejected"
)

// Contribution is a user-proposed addition to a compatibility group, pending
// admin review.
type Contribution struct {
	ID               string     `json:"id" firestore:"-"` // Document ID, auto-generated
	AccessoryType    string     `json:"accessoryType" firestore:"accessoryType"`
	Models           []string   `json:"models" firestore:"models"`
	SubmittedBy      string     `json:"submittedBy" firestore:"submittedBy"` // Firebase Auth UID
	SubmittedAt      time.Time  `json:"submittedAt" firestore:"submittedAt,serverTimestamp"`
	Status           string     `json:"status" firestore:"status"` // pending|approved|rejected
	Source           string     `json:"source,omitempty" firestore:"source,omitempty"`
	AddToAccessoryID string     `json:"addToAccessoryId,omitempty" firestore:"addToAccessoryId,omitempty"`
	ReviewedAt       *time.Time `json:"reviewedAt,omitempty" firestore:"reviewedAt,omitempty"`
	ReviewedBy       string     `json:"reviewedBy,omitempty" firestore:"reviewedBy,omitempty"`
	PointsAwarded    int        `json:"pointsAwarded,omitempty" firestore:"pointsAwarded,omitempty"`
}

// IsPending reports whether the contribution is still awaiting review.
func (c *Contribution) IsPending() bool {
	return c.Status == ContributionStatusPending
}
