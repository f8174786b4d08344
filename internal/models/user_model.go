package models

import "time"

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a user in the system. The Firebase Auth UID is the
// Firestore document ID.
type User struct {
	ID          string    `json:"id" firestore:"-"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	Email       string    `json:"email" firestore:"email"`
	PhotoURL    string    `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	Points      int       `json:"points" firestore:"points"` // Monotonically increased by approvals
	Role        string    `json:"role" firestore:"role"`     // user|admin
	IsSuspended bool      `json:"isSuspended" firestore:"isSuspended"`
	FCMTokens   []string  `json:"-" firestore:"fcmTokens,omitempty"` // Device tokens, never exposed via JSON
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
