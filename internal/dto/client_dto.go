package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Name           string  `json:"name"            validate:"required,min=2,max=255"`
	IdentityType   string  `json:"identity_type"   validate:"required,oneof=CC CE NIT Passport"`
	IdentityNumber string  `json:"identity_number" validate:"required,max=255"`
	PhoneNumber    string  `json:"phone_number"    validate:"required,max=255"`
	Email          *string `json:"email"           validate:"omitempty,email"`
}

type ActualizarClienteRequest struct {
	Name        *string `json:"name"         validate:"omitempty,min=2,max=255"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=255"`
	Email       *string `json:"email"        validate:"omitempty,email"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type ClientFilter struct {
	Name           string `form:"name"`
	IdentityNumber string `form:"identity_number"`
	PhoneNumber    string `form:"phone_number"`
	Page           int    `form:"page,default=1"   validate:"min=1"`
	Limit          int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	IdentityType   string        `json:"identity_type"`
	IdentityNumber string        `json:"identity_number"`
	PhoneNumber    string        `json:"phone_number"`
	Email          *string       `json:"email"`
	Cars           []CarResponse `json:"cars,omitempty"`
}

type ClienteListResponse struct {
	Data  []ClienteResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
