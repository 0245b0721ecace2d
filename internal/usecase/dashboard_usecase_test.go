package usecase_test

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"celebrai-backend/internal/domain"
	"celebrai-backend/internal/usecase"
)

func strPtr(s string) *string { return &s }
func fltPtr(f float64) *float64 { return &f }
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func sampleAppointments() []domain.Appointment {
	return []domain.Appointment{
		{ID: "1", ClientName: "Ana", EventDate: day(2026, 10, 2), EventType: strPtr("Aniversário"), Status: strPtr("confirmed"), EstimatedValue: fltPtr(500)},
		{ID: "2", ClientName: "ana", EventDate: day(2026, 10, 25), EventType: strPtr("Aniversário"), EstimatedValue: fltPtr(300)},
		{ID: "3", ClientName: "Bia", EventDate: day(2026, 8, 10), EventType: strPtr("Casamento"), Status: strPtr("completed"), EstimatedValue: fltPtr(1200)},
		{ID: "4", ClientName: "Caio", EventDate: day(2026, 5, 1), Status: strPtr("archived")},
		{ID: "5", ClientName: "Duda", EventDate: day(2025, 12, 24), EventType: strPtr("Natal"), Status: strPtr("cancelled"), EstimatedValue: fltPtr(50)},
	}
}

func TestComputeDashboardStats(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, brt)
	stats := usecase.ComputeDashboardStats(sampleAppointments(), now)

	assert.Equal(t, 5, stats.TotalAppointments)
	assert.Equal(t, 2050.0, stats.TotalRevenue)
	assert.Equal(t, 2, stats.ThisMonthAppointments)
	assert.Equal(t, 4, stats.UniqueClients)

	require.Len(t, stats.MonthlyData, 6)
	assert.Equal(t, domain.MonthlyStat{Name: "mai", Events: 1, Revenue: 0}, stats.MonthlyData[0])
	assert.Equal(t, domain.MonthlyStat{Name: "ago", Events: 1, Revenue: 1200}, stats.MonthlyData[3])
	assert.Equal(t, domain.MonthlyStat{Name: "out", Events: 2, Revenue: 800}, stats.MonthlyData[5])

	assert.Equal(t, []domain.NamedValue{
		{Name: "Aniversário", Value: 2},
		{Name: "Casamento", Value: 1},
		{Name: "Não especificado", Value: 1},
		{Name: "Natal", Value: 1},
	}, stats.EventTypeData)

	assert.Equal(t, []domain.NamedValue{
		{Name: "Confirmado", Value: 1},
		{Name: "Pendente", Value: 1},
		{Name: "Concluído", Value: 1},
		{Name: "archived", Value: 1},
		{Name: "Cancelado", Value: 1},
	}, stats.StatusData)
}

func TestComputeDashboardStatsMonthsAcrossYear(t *testing.T) {
	stats := usecase.ComputeDashboardStats(sampleAppointments(), time.Date(2026, 2, 10, 0, 0, 0, 0, brt))

	names := make([]string, 0, len(stats.MonthlyData))
	for _, m := range stats.MonthlyData {
		names = append(names, m.Name)
	}
	assert.Equal(t, []string{"set", "out", "nov", "dez", "jan", "fev"}, names)
	assert.Equal(t, 1, stats.MonthlyData[3].Events)
}

func TestComputeDashboardStatsEventTypesCappedAtSix(t *testing.T) {
	var appts []domain.Appointment
	for i, typ := range []string{"a", "b", "c", "d", "e", "f", "g", "g"} {
		appts = append(appts, domain.Appointment{ID: string(rune('0' + i)), ClientName: "x", EventType: strPtr(typ)})
	}

	stats := usecase.ComputeDashboardStats(appts, time.Now())
	require.Len(t, stats.EventTypeData, 6)
	assert.Equal(t, domain.NamedValue{Name: "g", Value: 2}, stats.EventTypeData[0])
	assert.Equal(t, "a", stats.EventTypeData[1].Name)
}

func TestComputeDashboardStatsEmpty(t *testing.T) {
	stats := usecase.ComputeDashboardStats(nil, time.Now())
	assert.Zero(t, stats.TotalAppointments)
	assert.Empty(t, stats.MonthlyData)
	assert.NotNil(t, stats.MonthlyData)
	assert.NotNil(t, stats.StatusData)
}

func TestGetStatsWithoutTenant(t *testing.T) {
	tenants := new(MockTenantRepo)
	tenants.On("GetByOwnerID", mock.Anything, "owner-1").Return(nil, domain.ErrNotFound)
	uc := usecase.NewDashboardUsecase(tenants, new(MockAppointmentRepo), brt)

	_, err := uc.GetStats(context.Background(), "owner-1")
	assert.Equal(t, http.StatusNotFound, appCode(t, err))
}

func TestExportAppointments(t *testing.T) {
	tenants := new(MockTenantRepo)
	appts := new(MockAppointmentRepo)
	tenants.On("GetByOwnerID", mock.Anything, "owner-1").Return(&domain.Tenant{ID: "t-1"}, nil)
	appts.On("ListByTenant", mock.Anything, "t-1").Return(sampleAppointments(), nil)
	uc := usecase.NewDashboardUsecase(tenants, appts, brt)

	data, filename, err := uc.ExportAppointments(context.Background(), "owner-1")
	require.NoError(t, err)
	assert.Regexp(t, `^agendamentos-\d{4}-\d{2}-\d{2}\.xlsx$`, filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Agendamentos")
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, "CLIENTE", rows[0][0])
	assert.Equal(t, []string{"Ana", "02/10/2026", "Aniversário", "Confirmado", "500"}, rows[1])
	assert.Equal(t, "Não especificado", rows[4][2])
	assert.Equal(t, "archived", rows[4][3])
}
