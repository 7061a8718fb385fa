package dto

type RegisterUserRequest struct {
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	ID       uint   `json:"idUsuario"`
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type PromoteRequest struct {
	Requester uint `json:"requester"`
	NewAdmin  uint `json:"newAdmin"`
}

// UserResponse is the only shape a user ever leaves the service in; there is
// no password field to forget to strip.
type UserResponse struct {
	ID      uint   `json:"idUsuario"`
	Name    string `json:"nombre"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}
