package domain

import (
	"strings"
	"time"
)

// PeriodKind selects the reporting bucket size
type PeriodKind string

const (
	PeriodMonthly    PeriodKind = "mensal"
	PeriodQuarterly  PeriodKind = "trimestral"
	PeriodSemiannual PeriodKind = "semestral"
)

// ParsePeriodKind accepts the Portuguese names and their English equivalents
func ParsePeriodKind(s string) (PeriodKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mensal", "monthly":
		return PeriodMonthly, nil
	case "trimestral", "quarterly":
		return PeriodQuarterly, nil
	case "semestral", "semiannual":
		return PeriodSemiannual, nil
	}
	return "", NewValidationError("Tipo de relatório inválido. Use 'mensal', 'trimestral' ou 'semestral'.")
}

// Months is the span of one bucket
func (k PeriodKind) Months() int {
	switch k {
	case PeriodQuarterly:
		return 3
	case PeriodSemiannual:
		return 6
	}
	return 1
}

// PeriodInterval returns the half-open UTC interval [start, end) for the
// index-th bucket of the given kind in year.
func PeriodInterval(year int, kind PeriodKind, index int) (time.Time, time.Time, error) {
	var maxIndex int
	var msg string
	switch kind {
	case PeriodMonthly:
		maxIndex, msg = 12, "Mês inválido. Use 1-12."
	case PeriodQuarterly:
		maxIndex, msg = 4, "Trimestre inválido. Use 1-4."
	case PeriodSemiannual:
		maxIndex, msg = 2, "Semestre inválido. Use 1-2."
	default:
		return time.Time{}, time.Time{}, NewValidationError("Tipo de relatório inválido. Use 'mensal', 'trimestral' ou 'semestral'.")
	}
	if index < 1 || index > maxIndex {
		return time.Time{}, time.Time{}, NewValidationError(msg)
	}
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, NewValidationError("Data inválida. Verifique o ano e o período.")
	}

	span := kind.Months()
	startMonth := (index-1)*span + 1
	start := time.Date(year, time.Month(startMonth), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, span, 0), nil
}
