package catalog

import "time"

// El API usa fechas calendario día-mes-año.
const dateLayout = "02-01-2006"

// ParseDate valida un string DD-MM-YYYY.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

// CompareDates compara dos strings DD-MM-YYYY.
// Devuelve negativo si a<b, 0 si son iguales, positivo si a>b.
func CompareDates(a, b string) (int, error) {
	da, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	db, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	switch {
	case da.Before(db):
		return -1, nil
	case da.After(db):
		return 1, nil
	default:
		return 0, nil
	}
}
