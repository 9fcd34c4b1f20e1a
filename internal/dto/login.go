package dto

type LoginRequest struct {
	Email string `json:"email"`
}

type UserView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResponse struct {
	User  UserView `json:"user"`
	Token string   `json:"token"`
}
