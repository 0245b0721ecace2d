package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"celebrai-backend/internal/domain"
)

type appointmentRepo struct {
	db *pgxpool.Pool
}

func NewAppointmentRepository(db *pgxpool.Pool) domain.AppointmentRepository {
	return &appointmentRepo{db: db}
}

// ListByTenant returns every appointment of the tenant ordered by event date
func (r *appointmentRepo) ListByTenant(ctx context.Context, tenantID string) ([]domain.Appointment, error) {
	query := `
		SELECT id::text, client_name, event_date, event_type, status, estimated_value::float8
		FROM appointments
		WHERE tenant_id = $1
		ORDER BY event_date ASC`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Appointment, error) {
		var a domain.Appointment
		err := row.Scan(&a.ID, &a.ClientName, &a.EventDate, &a.EventType, &a.Status, &a.EstimatedValue)
		return a, err
	})
}
