package models

// CreateContributionRequest represents the request body for submitting a new
// contribution.
type CreateContributionRequest struct {
	AccessoryType    string   `json:"accessoryType" binding:"required"`
	Models           []string `json:"models" binding:"required,min=1,dive,min=1"`
	Source           string   `json:"source,omitempty"`
	AddToAccessoryID string   `json:"addToAccessoryId,omitempty"` // Target group, when known
}

// UpdateContributionRequest represents the request body for editing a pending
// contribution. Pointers distinguish "clear this field" from "not provided".
type UpdateContributionRequest struct {
	AccessoryType    *string   `json:"accessoryType,omitempty"`
	Models           *[]string `json:"models,omitempty"`
	Source           *string   `json:"source,omitempty"`
	AddToAccessoryID *string   `json:"addToAccessoryId,omitempty"`
}

// ApproveContributionRequest carries the optional reviewer-defined points
// override. When omitted, the configured default reward applies.
type ApproveContributionRequest struct {
	Points *int `json:"points,omitempty" binding:"omitempty,min=0"`
}

// CreateCategoryRequest represents the request body for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateMasterModelRequest adds a single device name to the canonical list.
type CreateMasterModelRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

// UpdateSuspensionRequest suspends or reinstates a user. A pointer is used so
// that an explicit false is distinguishable from a missing field.
type UpdateSuspensionRequest struct {
	IsSuspended *bool `json:"isSuspended" binding:"required"`
}

// RegisterFCMTokenRequest registers a device token for push notifications.
type RegisterFCMTokenRequest struct {
	Token string `json:"token" binding:"required"`
}
