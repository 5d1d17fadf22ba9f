package models

// UserRole is the role the upstream assigns to an account.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleParent  UserRole = "PARENT"
	RoleStudent UserRole = "STUDENT"
)

// Valid reports whether r is one of the known roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleParent, RoleStudent:
		return true
	}
	return false
}

// User mirrors the upstream user record.
type User struct {
	ID             string   `json:"id"`
	Email          string   `json:"email"`
	FullName       string   `json:"full_name"`
	Role           UserRole `json:"role"`
	PhoneNumber    string   `json:"phone_number,omitempty"`
	IsActiveDriver bool     `json:"is_active_driver"`
	HomeAddress    string   `json:"home_address,omitempty"`
	CreatedAt      string   `json:"created_at,omitempty"`
	UpdatedAt      string   `json:"updated_at,omitempty"`
}

// AuthResponse is the upstream answer to a successful token request.
type AuthResponse struct {
	AccessToken string   `json:"access_token"`
	TokenType   string   `json:"token_type"`
	UserID      string   `json:"user_id"`
	Email       string   `json:"email"`
	Role        UserRole `json:"role"`
}

// LoginInput is the login form. Username is the account email.
type LoginInput struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserCreateInput is the admin "create user" form.
type UserCreateInput struct {
	Email           string   `json:"email" binding:"required,email"`
	FullName        string   `json:"full_name" binding:"required"`
	Role            UserRole `json:"role" binding:"required,oneof=ADMIN PARENT STUDENT"`
	InitialPassword string   `json:"initial_password" binding:"required,min=8"`
	ConfirmPassword string   `json:"confirm_password" binding:"required,eqfield=InitialPassword"`
	PhoneNumber     string   `json:"phone_number"`
	IsActiveDriver  bool     `json:"is_active_driver"`
	HomeAddress     string   `json:"home_address"`
}

// UserCreate is the upstream payload for creating an account.
type UserCreate struct {
	Email           string   `json:"email"`
	FullName        string   `json:"full_name"`
	Role            UserRole `json:"role"`
	InitialPassword string   `json:"initial_password"`
	PhoneNumber     string   `json:"phone_number,omitempty"`
	IsActiveDriver  bool     `json:"is_active_driver"`
	HomeAddress     string   `json:"home_address,omitempty"`
}

// ToUserCreate drops the confirmation field. Only parents can be active drivers.
func (in UserCreateInput) ToUserCreate() UserCreate {
	return UserCreate{
		Email:           in.Email,
		FullName:        in.FullName,
		Role:            in.Role,
		InitialPassword: in.InitialPassword,
		PhoneNumber:     in.PhoneNumber,
		IsActiveDriver:  in.IsActiveDriver && in.Role == RoleParent,
		HomeAddress:     in.HomeAddress,
	}
}

// ProfileUpdate is the editable subset of the caller's own profile.
type ProfileUpdate struct {
	FullName       string `json:"full_name" binding:"required"`
	PhoneNumber    string `json:"phone_number,omitempty"`
	HomeAddress    string `json:"home_address,omitempty"`
	IsActiveDriver *bool  `json:"is_active_driver,omitempty"`
}

// PasswordChangeInput is the change-password form.
type PasswordChangeInput struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// PasswordChange is the upstream payload for a password change.
type PasswordChange struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
