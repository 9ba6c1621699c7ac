package domain

import (
	"fmt"
	"time"
)

// PeriodMode é a estratégia de janela de tempo escolhida pelo usuário.
type PeriodMode string

const (
	PeriodAll           PeriodMode = "todos"
	PeriodLast7Days     PeriodMode = "ultimos-7-dias"
	PeriodLast15Days    PeriodMode = "ultimos-15-dias"
	PeriodLast30Days    PeriodMode = "ultimos-30-dias"
	PeriodCurrentMonth  PeriodMode = "mes-atual"
	PeriodToday         PeriodMode = "diario"
	PeriodCustom        PeriodMode = "personalizado"
)

// ValidPeriodModes lista os modos aceitos pela API.
var ValidPeriodModes = []PeriodMode{
	PeriodAll,
	PeriodLast7Days,
	PeriodLast15Days,
	PeriodLast30Days,
	PeriodCurrentMonth,
	PeriodToday,
	PeriodCustom,
}

// Valid informa se o modo de período é reconhecido.
func (m PeriodMode) Valid() bool {
	for _, mode := range ValidPeriodModes {
		if m == mode {
			return true
		}
	}
	return false
}

// DateRange é uma janela de datas. Limites nulos significam janela aberta
// naquela direção (ex.: "últimos 7 dias" não impõe limite superior).
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Contains informa se a data está dentro da janela (limites inclusivos).
func (r DateRange) Contains(date time.Time) bool {
	day := truncateToDay(date)
	if r.Start != nil && day.Before(truncateToDay(*r.Start)) {
		return false
	}
	if r.End != nil && day.After(truncateToDay(*r.End)) {
		return false
	}
	return true
}

// ResolveWindow converte o modo de período na janela corrente, relativa à
// data de referência. Retorna nil quando o modo não restringe datas
// ("todos"). Para o modo personalizado os dois limites são obrigatórios.
func ResolveWindow(mode PeriodMode, reference time.Time, start, end *time.Time) (*DateRange, error) {
	today := truncateToDay(reference)

	switch mode {
	case "", PeriodAll:
		return nil, nil
	case PeriodLast7Days:
		from := today.AddDate(0, 0, -7)
		return &DateRange{Start: &from}, nil
	case PeriodLast15Days:
		from := today.AddDate(0, 0, -15)
		return &DateRange{Start: &from}, nil
	case PeriodLast30Days:
		from := today.AddDate(0, 0, -30)
		return &DateRange{Start: &from}, nil
	case PeriodCurrentMonth:
		first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		last := first.AddDate(0, 1, -1)
		return &DateRange{Start: &first, End: &last}, nil
	case PeriodToday:
		return &DateRange{Start: &today, End: &today}, nil
	case PeriodCustom:
		if start == nil || end == nil {
			return nil, fmt.Errorf("período personalizado exige data de início e fim")
		}
		if start.After(*end) {
			return nil, fmt.Errorf("a data de início não pode ser posterior à data de fim")
		}
		s, e := truncateToDay(*start), truncateToDay(*end)
		return &DateRange{Start: &s, End: &e}, nil
	default:
		return nil, fmt.Errorf("período inválido: %s", mode)
	}
}

// PreviousWindow calcula a janela imediatamente anterior à janela corrente
// observada nos dados. O comprimento usa a diferença simples em dias entre
// os extremos (mínimo 1), e a janela anterior termina um dia antes do
// início da corrente:
//
//	length = max(1, dias(fim - início))
//	anterior = [início - (length+1) dias, início - 1 dia]
//
// As janelas nunca se sobrepõem e têm extensão equivalente. O deslocamento
// de +1 dia reproduz o comportamento histórico dos relatórios e é mantido
// de propósito.
func PreviousWindow(currentMin, currentMax time.Time) DateRange {
	start := truncateToDay(currentMin)
	end := truncateToDay(currentMax)

	length := int(end.Sub(start).Hours() / 24)
	if length < 1 {
		length = 1
	}

	prevStart := start.AddDate(0, 0, -(length + 1))
	prevEnd := start.AddDate(0, 0, -1)

	return DateRange{Start: &prevStart, End: &prevEnd}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
