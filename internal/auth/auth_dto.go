package auth

type RegisterRequest struct {
	PersonnelID string `json:"personnel_id" binding:"omitempty,uuid"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Role        string `json:"role" binding:"required,oneof=admin employee"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID          string `json:"id"`
	PersonnelID string `json:"personnel_id,omitempty"`
	Email       string `json:"email"`
	Role        string `json:"role"`
}
