package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"celebrai-backend/internal/domain"
	"celebrai-backend/pkg/apperror"
)

const unspecifiedEventType = "Não especificado"

var ptBRMonthAbbr = [12]string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}

type dashboardUsecase struct {
	tenants      domain.TenantRepository
	appointments domain.AppointmentRepository
	loc          *time.Location
	now          func() time.Time
}

func NewDashboardUsecase(tenants domain.TenantRepository, appointments domain.AppointmentRepository, loc *time.Location) domain.DashboardUsecase {
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardUsecase{tenants: tenants, appointments: appointments, loc: loc, now: time.Now}
}

func (u *dashboardUsecase) GetStats(ctx context.Context, ownerID string) (*domain.DashboardStats, error) {
	appts, err := u.ownerAppointments(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return ComputeDashboardStats(appts, u.now().In(u.loc)), nil
}

func (u *dashboardUsecase) ownerAppointments(ctx context.Context, ownerID string) ([]domain.Appointment, error) {
	tenant, err := u.tenants.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Tenant not found")
		}
		return nil, apperror.Internal(fmt.Errorf("failed to load tenant: %w", err))
	}
	appts, err := u.appointments.ListByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to list appointments: %w", err))
	}
	return appts, nil
}

// ComputeDashboardStats aggregates appointments relative to now. Event dates
// are calendar dates and are compared by their own year and month.
func ComputeDashboardStats(appts []domain.Appointment, now time.Time) *domain.DashboardStats {
	stats := &domain.DashboardStats{
		MonthlyData:   []domain.MonthlyStat{},
		EventTypeData: []domain.NamedValue{},
		StatusData:    []domain.NamedValue{},
	}
	if len(appts) == 0 {
		return stats
	}

	clients := make(map[string]struct{})
	for _, a := range appts {
		stats.TotalAppointments++
		stats.TotalRevenue += valueOrZero(a.EstimatedValue)
		if sameMonth(a.EventDate, now) {
			stats.ThisMonthAppointments++
		}
		clients[strings.ToLower(a.ClientName)] = struct{}{}
	}
	stats.UniqueClients = len(clients)

	for i := 5; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month()-time.Month(i), 1, 0, 0, 0, 0, now.Location())
		ms := domain.MonthlyStat{Name: ptBRMonthAbbr[month.Month()-1]}
		for _, a := range appts {
			if sameMonth(a.EventDate, month) {
				ms.Events++
				ms.Revenue += valueOrZero(a.EstimatedValue)
			}
		}
		stats.MonthlyData = append(stats.MonthlyData, ms)
	}

	types := countInOrder(appts, func(a domain.Appointment) string {
		if a.EventType == nil || *a.EventType == "" {
			return unspecifiedEventType
		}
		return *a.EventType
	})
	sort.SliceStable(types, func(i, j int) bool { return types[i].Value > types[j].Value })
	if len(types) > 6 {
		types = types[:6]
	}
	stats.EventTypeData = types

	statuses := countInOrder(appts, func(a domain.Appointment) string {
		if a.Status == nil || *a.Status == "" {
			return "pending"
		}
		return *a.Status
	})
	for i := range statuses {
		statuses[i].Name = domain.AppointmentStatusLabel(statuses[i].Name)
	}
	stats.StatusData = statuses

	return stats
}

// countInOrder counts by key, keeping first-seen order.
func countInOrder(appts []domain.Appointment, key func(domain.Appointment) string) []domain.NamedValue {
	index := make(map[string]int)
	var out []domain.NamedValue
	for _, a := range appts {
		k := key(a)
		if i, ok := index[k]; ok {
			out[i].Value++
			continue
		}
		index[k] = len(out)
		out = append(out, domain.NamedValue{Name: k, Value: 1})
	}
	return out
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// ExportAppointments returns an xlsx workbook and its filename.
func (u *dashboardUsecase) ExportAppointments(ctx context.Context, ownerID string) ([]byte, string, error) {
	appts, err := u.ownerAppointments(ctx, ownerID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Agendamentos"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{"CLIENTE", "DATA DO EVENTO", "TIPO DE EVENTO", "STATUS", "VALOR ESTIMADO (R$)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#8B5CF6"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, a := range appts {
		eventType := unspecifiedEventType
		if a.EventType != nil && *a.EventType != "" {
			eventType = *a.EventType
		}
		status := "pending"
		if a.Status != nil && *a.Status != "" {
			status = *a.Status
		}
		row := []interface{}{
			a.ClientName,
			a.EventDate.Format("02/01/2006"),
			eventType,
			domain.AppointmentStatusLabel(status),
			valueOrZero(a.EstimatedValue),
		}
		for colIdx, v := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", apperror.Internal(fmt.Errorf("failed to write workbook: %w", err))
	}

	filename := fmt.Sprintf("agendamentos-%s.xlsx", u.now().In(u.loc).Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}
