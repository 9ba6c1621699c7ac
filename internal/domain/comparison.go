package domain

import (
	"github.com/shopspring/decimal"
)

// GrowthPercent calcula o crescimento relativo em % entre o valor corrente
// e o anterior. Quando o anterior é zero (ou negativo) não existe base de
// comparação e o resultado é 0, nunca infinito.
func GrowthPercent(current, previous decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	pct, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// GrowthPercentInt é a variante de GrowthPercent para contagens e
// quantidades inteiras.
func GrowthPercentInt(current, previous int64) float64 {
	if previous <= 0 {
		return 0
	}
	return float64(current-previous) / float64(previous) * 100
}

// PointsDelta calcula a variação entre duas taxas já expressas em %, em
// pontos percentuais. Taxas nunca são comparadas com crescimento relativo.
func PointsDelta(current, previous float64) float64 {
	return current - previous
}
