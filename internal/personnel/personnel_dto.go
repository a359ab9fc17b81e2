package personnel

type CreatePersonnelRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Gender   string `json:"gender" binding:"required,oneof=male female"`
	HireDate string `json:"hire_date" binding:"required"`
}

type UpdatePersonnelRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Gender   string `json:"gender" binding:"required,oneof=male female"`
	HireDate string `json:"hire_date" binding:"required"`
}

type PersonnelResponse struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Gender   string `json:"gender"`
	HireDate string `json:"hire_date"`
}
