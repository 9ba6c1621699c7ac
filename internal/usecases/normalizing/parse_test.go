package normalizing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"Formato brasileiro completo", "R$ 1.234,56", "1234.56"},
		{"Formato brasileiro sem milhar", "R$ 56,90", "56.9"},
		{"Negativo brasileiro", "-R$ 10,00", "-10"},
		{"Já numérico com ponto decimal", "1234.56", "1234.56"},
		{"Inteiro", "150", "150"},
		{"Milhar sem símbolo", "1.234,56", "1234.56"},
		{"Vazio vira zero", "", "0"},
		{"Ilegível vira zero", "abc", "0"},
		{"NaN vira zero", "NaN", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want, err := decimal.NewFromString(tt.want)
			require.NoError(t, err)
			assert.True(t, want.Equal(ParseMoney(tt.raw)),
				"ParseMoney(%q) = %s, esperado %s", tt.raw, ParseMoney(tt.raw), want)
		})
	}
}

func TestParseMoneyIsIdempotent(t *testing.T) {
	// Um valor já limpo precisa sobreviver a uma segunda passada:
	// "1234.56" não pode virar 123456 por remoção indevida do ponto.
	first := ParseMoney("R$ 1.234,56")
	second := ParseMoney(first.String())

	assert.True(t, first.Equal(second))
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{"Texto com símbolo", "45,5%", 0.455},
		{"Texto com ponto decimal", "45.5%", 0.455},
		{"Fração numérica passa direto", "0.455", 0.455},
		{"Fração com vírgula", "0,3", 0.3},
		{"Cem por cento", "100%", 1.0},
		{"Vazio vira zero", "", 0},
		{"Ilegível vira zero", "x%y", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParsePercent(tt.raw), 0.0001)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	assert.Equal(t, int64(3), ParseQuantity("3"))
	assert.Equal(t, int64(2), ParseQuantity("2.0"))
	assert.Equal(t, int64(0), ParseQuantity(""))
	assert.Equal(t, int64(0), ParseQuantity("muitos"))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   time.Time
		wantOK bool
	}{
		{
			name:   "Dia primeiro",
			raw:    "05/03/2025",
			want:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "Dia primeiro desambiguado",
			raw:    "13/02/2025",
			want:   time.Date(2025, 2, 13, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "ISO já convertido",
			raw:    "2025-03-05",
			want:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{
			name:   "Com hora",
			raw:    "05/03/2025 14:30:00",
			want:   time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			wantOK: true,
		},
		{name: "Vazio", raw: "", wantOK: false},
		{name: "NaT", raw: "NaT", wantOK: false},
		{name: "Ilegível", raw: "ontem", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
