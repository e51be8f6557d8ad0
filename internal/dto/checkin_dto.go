package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearCheckInRequest struct {
	CarID      string   `json:"car_id"      validate:"required,uuid"`
	Mileage    int      `json:"mileage"     validate:"min=0"`
	FuelLevel  string   `json:"fuel_level"  validate:"required"`
	Comments   *string  `json:"comments"`
	VideoURL   string   `json:"video_url"   validate:"omitempty,url"`
	ServiceIDs []string `json:"service_ids" validate:"omitempty,dive,uuid"`
}

type AttachServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
}

// ─── Filter / Pagination ─────────────────────────────────────────────────────

type CheckInFilter struct {
	Status   string `form:"status" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	CarID    string `form:"car_id"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=20" validate:"min=1,max=100"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CheckInResponse struct {
	ID           string            `json:"id"`
	CarID        string            `json:"car_id"`
	Car          *CarResponse      `json:"car,omitempty"`
	CheckInDate  string            `json:"check_in_date"`
	CheckInTime  string            `json:"check_in_time"`
	Status       string            `json:"status"`
	CheckOutDate *string           `json:"check_out_date"`
	CheckOutTime *string           `json:"check_out_time"`
	Mileage      int               `json:"mileage"`
	FuelLevel    string            `json:"fuel_level"`
	Comments     *string           `json:"comments"`
	VideoURL     string            `json:"video_url"`
	Services     []ServicioResponse `json:"services,omitempty"`
}

type CheckInListResponse struct {
	Data  []CheckInResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
