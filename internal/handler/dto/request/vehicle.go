package request

type RegisterVehicleRequest struct {
	Brand          string `json:"brand" binding:"required"`
	Model          string `json:"model" binding:"required"`
	Year           int    `json:"year" binding:"required"`
	Color          string `json:"color" binding:"required"`
	DailyRateCents int64  `json:"daily_rate_cents" binding:"required,gt=0"`
}
