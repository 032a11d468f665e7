package user

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=SEEKER EMPLOYER"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type RegisterResponse struct {
	RegistrationToken string `json:"registration_token"`
	Email             string `json:"email"`
}

type VerifyEmailRequest struct {
	RegistrationToken string `json:"registration_token" binding:"required"`
	Otp               string `json:"otp" binding:"required,len=6"`
}

type ResendOtpRequest struct {
	RegistrationToken string `json:"registration_token" binding:"required"`
}

type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Avatar   string `json:"avatar"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type UserResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Avatar        string `json:"avatar,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Address       string `json:"address,omitempty"`
	Role          string `json:"role"`
	Active        bool   `json:"active"`
	EmailVerified bool   `json:"email_verified"`
	CreatedAt     string `json:"created_at"`
}

// pendingRegistration is what sits in Redis between Register and VerifyEmail.
// The password is already bcrypt-hashed at this point.
type pendingRegistration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}
