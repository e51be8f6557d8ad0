package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCarRequest struct {
	ClientID    string `json:"client_id"    validate:"required,uuid"`
	PlateNumber string `json:"plate_number" validate:"required,min=5,max=10"`
	Brand       string `json:"brand"        validate:"required,max=100"`
	Model       string `json:"model"        validate:"required,max=100"`
	Year        string `json:"year"         validate:"required,len=4,numeric"`
	Color       string `json:"color"        validate:"omitempty,max=50"`
}

type ActualizarCarRequest struct {
	Brand *string `json:"brand" validate:"omitempty,max=100"`
	Model *string `json:"model" validate:"omitempty,max=100"`
	Year  *string `json:"year"  validate:"omitempty,len=4,numeric"`
	Color *string `json:"color" validate:"omitempty,max=50"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type CarFilter struct {
	Brand    string `form:"brand"`
	Plate    string `form:"plate"`
	ClientID string `form:"client_id"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CarResponse struct {
	ID          string `json:"id"`
	ClientID    string `json:"client_id"`
	PlateNumber string `json:"plate_number"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Year        string `json:"year"`
	Color       string `json:"color"`
	FullName    string `json:"full_name"`
}

type CarListResponse struct {
	Data  []CarResponse `json:"data"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}
