package domain

import (
	"context"
	"time"
)

type Appointment struct {
	ID             string    `json:"id"`
	ClientName     string    `json:"client_name"`
	EventDate      time.Time `json:"event_date"`
	EventType      *string   `json:"event_type"`
	Status         *string   `json:"status"`
	EstimatedValue *float64  `json:"estimated_value"`
}

var appointmentStatusLabels = map[string]string{
	"pending":   "Pendente",
	"confirmed": "Confirmado",
	"completed": "Concluído",
	"cancelled": "Cancelado",
}

// AppointmentStatusLabel maps a status code to its label, passing unknown codes through.
func AppointmentStatusLabel(status string) string {
	if label, ok := appointmentStatusLabels[status]; ok {
		return label
	}
	return status
}

type AppointmentRepository interface {
	ListByTenant(ctx context.Context, tenantID string) ([]Appointment, error)
}

type NamedValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

type MonthlyStat struct {
	Name    string  `json:"name"`
	Events  int     `json:"eventos"`
	Revenue float64 `json:"receita"`
}

type DashboardStats struct {
	TotalAppointments     int           `json:"totalAppointments"`
	TotalRevenue          float64       `json:"totalRevenue"`
	ThisMonthAppointments int           `json:"thisMonthAppointments"`
	UniqueClients         int           `json:"uniqueClients"`
	MonthlyData           []MonthlyStat `json:"monthlyData"`
	EventTypeData         []NamedValue  `json:"eventTypeData"`
	StatusData            []NamedValue  `json:"statusData"`
}

type DashboardUsecase interface {
	GetStats(ctx context.Context, ownerID string) (*DashboardStats, error)
	ExportAppointments(ctx context.Context, ownerID string) ([]byte, string, error)
}
