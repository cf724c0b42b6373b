package model

// Statistics holds the aggregate account counts shown on the dashboard.
type Statistics struct {
	TotalUsers          int64 `json:"total_usuarios"`
	ActiveUsers         int64 `json:"usuarios_activos"`
	InactiveUsers       int64 `json:"usuarios_inactivos"`
	RegisteredToday     int64 `json:"registros_hoy"`
	RegisteredThisWeek  int64 `json:"registros_esta_semana"`
	RegisteredThisMonth int64 `json:"registros_este_mes"`
}
