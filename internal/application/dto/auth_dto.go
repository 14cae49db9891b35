package dto

// RegisterRequest entrada de registro. RoleID solo se respeta en /register; /register-client fuerza cliente.
type RegisterRequest struct {
	Name     string `json:"nombre" validate:"required,notblank,max=100"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"contraseña" validate:"required,min=6,max=72,maxbytes=72"`
	RoleID   *int   `json:"role_id,omitempty"`
}

// LoginRequest credenciales.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"contraseña" validate:"required"`
}

// LoginResponse tokens y proyección pública del usuario.
type LoginResponse struct {
	Success      bool       `json:"success"`
	Message      string     `json:"message"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         UserPublic `json:"user"`
}

// RefreshRequest refresh token en el body.
type RefreshRequest struct {
	Token string `json:"token" validate:"required"`
}

// RefreshResponse nuevo access token.
type RefreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// LogoutRequest refresh token opcional a revocar.
type LogoutRequest struct {
	Token string `json:"token,omitempty"`
}
