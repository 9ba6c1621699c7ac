package utils

import (
	"time"

	"github.com/pkg/errors"
)

// Formatos aceitos nos parâmetros de data da query string.
var queryDateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
}

// ParseDate interpreta uma data vinda da query string, aceitando o formato
// ISO (2006-01-02) e o formato brasileiro (02/01/2006).
func ParseDate(dateStr string) (*time.Time, error) {
	for _, layout := range queryDateLayouts {
		if date, err := time.Parse(layout, dateStr); err == nil {
			return &date, nil
		}
	}

	return nil, errors.Errorf("data inválida: %s", dateStr)
}
