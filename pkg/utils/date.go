package utils

import "time"

// ParseDate interpreta datas no formato 2006-01-02. Texto vazio devolve a data zero,
// que o motor de filtros troca pelo limite do dataset.
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	return time.ParseInLocation(time.DateOnly, dateStr, time.UTC)
}

// FormatDate é o inverso de ParseDate
func FormatDate(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format(time.DateOnly)
}
