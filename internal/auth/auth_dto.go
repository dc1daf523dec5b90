package auth

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	EmployeeID int64  `json:"employee_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

type LoginResponse struct {
	Employee    AuthResponse `json:"employee"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   int64        `json:"expires_at"`
}
