package contractdoc

import (
	"fmt"
	"time"
)

const descriptionMaxRunes = 35

// formatCurrency renders "R$ " followed by the value with two decimals.
func formatCurrency(v float64) string {
	return fmt.Sprintf("R$ %.2f", v)
}

func formatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/2006")
}

func formatDateTime(t time.Time, loc *time.Location) string {
	return t.In(loc).Format("02/01/2006, 15:04:05")
}

// truncateDescription keeps the first 35 runes and appends an ellipsis when
// anything was cut.
func truncateDescription(s string) string {
	runes := []rune(s)
	if len(runes) <= descriptionMaxRunes {
		return s
	}
	return string(runes[:descriptionMaxRunes]) + "..."
}

// DefaultLocation is São Paulo time, falling back to a fixed UTC-3 zone when
// the tz database is unavailable.
func DefaultLocation() *time.Location {
	if loc, err := time.LoadLocation("America/Sao_Paulo"); err == nil {
		return loc
	}
	return time.FixedZone("BRT", -3*60*60)
}
