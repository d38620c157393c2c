package dto

// ProfileResponse represents a user's own profile (non-password fields)
type ProfileResponse struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Role              string   `json:"role"`
	Location          string   `json:"location"`
	PreferredDistance float64  `json:"preferredDistance"`
	Preferences       []string `json:"preferences"`
}

// UpdateProfileRequest represents a partial profile update. Only the fields
// present in the request are applied.
type UpdateProfileRequest struct {
	Name              *string   `json:"name,omitempty"`
	Email             *string   `json:"email,omitempty" binding:"omitempty,email"`
	Password          *string   `json:"password,omitempty" binding:"omitempty,min=6"`
	Location          *string   `json:"location,omitempty"`
	PreferredDistance *float64  `json:"preferredDistance,omitempty"`
	Preferences       *[]string `json:"preferences,omitempty"`
}

// UserSummary represents minimal user information for directory listings
type UserSummary struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Location string `json:"location"`
}

// LookupUsersRequest asks for summaries of a set of user IDs
type LookupUsersRequest struct {
	UserIDs []int64 `json:"userIds" binding:"required"`
}

// PromoteUserRequest sets a user's role
type PromoteUserRequest struct {
	Role string `json:"role" binding:"required,oneof=regular moderator admin"`
}

// AdminUserResponse represents a user row in the admin listing
type AdminUserResponse struct {
	ID                int64    `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email"`
	Role              string   `json:"role"`
	Location          string   `json:"location"`
	PreferredDistance float64  `json:"preferredDistance"`
	Preferences       []string `json:"preferences"`
}
