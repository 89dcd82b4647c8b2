package models

type DashboardStats struct {
	TotalUsers     int     `json:"total_users"`
	TotalCheckIns  int     `json:"total_check_ins"`
	TotalDocuments int     `json:"total_documents"`
	TotalHours     float64 `json:"total_hours"`
}

// Distribution — подписи и значения для графиков на дашборде.
type Distribution struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

type DashboardResponse struct {
	Stats              DashboardStats `json:"stats"`
	TimeDistribution   Distribution   `json:"time_distribution"`
	StatusDistribution Distribution   `json:"status_distribution"`
}
