package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestResolveWindow(t *testing.T) {
	reference := time.Date(2025, 7, 16, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mode      PeriodMode
		start     *time.Time
		end       *time.Time
		wantStart *time.Time
		wantEnd   *time.Time
		wantNil   bool
		wantErr   bool
	}{
		{
			name:    "Todos os períodos não restringe datas",
			mode:    PeriodAll,
			wantNil: true,
		},
		{
			name:    "Modo vazio equivale a todos",
			mode:    PeriodMode(""),
			wantNil: true,
		},
		{
			name:      "Últimos 7 dias só tem limite inferior",
			mode:      PeriodLast7Days,
			wantStart: datePtr(2025, 7, 9),
		},
		{
			name:      "Últimos 30 dias",
			mode:      PeriodLast30Days,
			wantStart: datePtr(2025, 6, 16),
		},
		{
			name:      "Mês atual vai do dia 1 ao último dia do mês",
			mode:      PeriodCurrentMonth,
			wantStart: datePtr(2025, 7, 1),
			wantEnd:   datePtr(2025, 7, 31),
		},
		{
			name:      "Diário é o próprio dia de referência",
			mode:      PeriodToday,
			wantStart: datePtr(2025, 7, 16),
			wantEnd:   datePtr(2025, 7, 16),
		},
		{
			name:      "Personalizado usa os limites informados",
			mode:      PeriodCustom,
			start:     datePtr(2025, 3, 1),
			end:       datePtr(2025, 3, 15),
			wantStart: datePtr(2025, 3, 1),
			wantEnd:   datePtr(2025, 3, 15),
		},
		{
			name:    "Personalizado sem limites é inválido",
			mode:    PeriodCustom,
			wantErr: true,
		},
		{
			name:    "Personalizado com início após o fim é inválido",
			mode:    PeriodCustom,
			start:   datePtr(2025, 3, 20),
			end:     datePtr(2025, 3, 10),
			wantErr: true,
		},
		{
			name:    "Modo desconhecido é inválido",
			mode:    PeriodMode("semana-passada"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window, err := ResolveWindow(tt.mode, reference, tt.start, tt.end)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			if tt.wantNil {
				assert.Nil(t, window)
				return
			}

			require.NotNil(t, window)
			if tt.wantStart != nil {
				require.NotNil(t, window.Start)
				assert.Equal(t, *tt.wantStart, *window.Start)
			}
			if tt.wantEnd != nil {
				require.NotNil(t, window.End)
				assert.Equal(t, *tt.wantEnd, *window.End)
			} else {
				assert.Nil(t, window.End)
			}
		})
	}
}

func TestPreviousWindow(t *testing.T) {
	tests := []struct {
		name      string
		min       time.Time
		max       time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			// Cenário de referência: julho inteiro gera a janela
			// [31/mai, 30/jun] na comparação com o período anterior.
			name:      "Mês de julho completo",
			min:       time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			max:       time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Dia único usa comprimento mínimo de 1",
			min:       time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
			max:       time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 7, 9, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "Janela de uma semana",
			min:       time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC),
			max:       time.Date(2025, 7, 14, 0, 0, 0, 0, time.UTC),
			wantStart: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			wantEnd:   time.Date(2025, 7, 7, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := PreviousWindow(tt.min, tt.max)

			require.NotNil(t, prev.Start)
			require.NotNil(t, prev.End)
			assert.Equal(t, tt.wantStart, *prev.Start)
			assert.Equal(t, tt.wantEnd, *prev.End)

			// A janela anterior nunca alcança o início da corrente.
			assert.True(t, prev.End.Before(tt.min))
		})
	}
}

func TestDateRangeContains(t *testing.T) {
	window := DateRange{
		Start: datePtr(2025, 7, 1),
		End:   datePtr(2025, 7, 31),
	}

	assert.True(t, window.Contains(time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, window.Contains(time.Date(2025, 7, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.False(t, window.Contains(time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC)))

	open := DateRange{Start: datePtr(2025, 7, 9)}
	assert.True(t, open.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.False(t, open.Contains(time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC)))
}
