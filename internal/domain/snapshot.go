package domain

import (
	"time"
)

// Snapshot é o conjunto canônico e imutável de vendas produzido por uma
// carga da planilha. Todo relatório é recalculado a partir de um snapshot;
// recarregar os dados significa construir um snapshot novo, nunca alterar
// um existente.
type Snapshot struct {
	ID          string        `json:"id"`
	Source      string        `json:"source"`
	LoadedAt    time.Time     `json:"loaded_at"`
	Records     []*SaleRecord `json:"-"`
	TotalRows   int           `json:"total_rows"`
	DroppedRows int           `json:"dropped_rows"`
	Warnings    []string      `json:"warnings,omitempty"`
}

// IsEmpty indica se o snapshot não possui registros válidos.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || len(s.Records) == 0
}

// DateBounds retorna a menor e a maior data presentes no snapshot.
func (s *Snapshot) DateBounds() (min, max time.Time, ok bool) {
	if s.IsEmpty() {
		return time.Time{}, time.Time{}, false
	}

	min, max = s.Records[0].Date, s.Records[0].Date
	for _, r := range s.Records[1:] {
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}

	return min, max, true
}

// RawTable é a tabela bruta extraída da planilha antes da normalização.
// Cada linha é uma lista de células em texto, na ordem original do arquivo.
type RawTable struct {
	Source string
	Sheet  string
	Rows   [][]string
}
