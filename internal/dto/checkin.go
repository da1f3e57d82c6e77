package dto

// ── 签到模块 DTO ──

// CreateCheckinRequest 签到请求
type CreateCheckinRequest struct {
	ClientID  int64    `json:"client_id" binding:"required,min=1"`
	Latitude  *float64 `json:"latitude"  binding:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	Notes     string   `json:"notes"     binding:"max=500"`
}

// CheckinHistoryRequest 签到历史查询参数（YYYY-MM-DD，可空）
type CheckinHistoryRequest struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// CheckinResponse 签到记录
type CheckinResponse struct {
	ID                 int64    `json:"id"`
	EmployeeID         int64    `json:"employee_id"`
	ClientID           int64    `json:"client_id"`
	ClientName         string   `json:"client_name,omitempty"`
	ClientAddress      string   `json:"client_address,omitempty"`
	CheckinTime        string   `json:"checkin_time"`
	CheckoutTime       *string  `json:"checkout_time"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	DistanceFromClient *float64 `json:"distance_from_client"`
	Notes              string   `json:"notes"`
	Status             string   `json:"status"`
}

// ClientResponse 客户站点
type ClientResponse struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
