package domain

import (
	"github.com/shopspring/decimal"
)

// AggregateBucket acumula as métricas de um grupo de vendas (um canal, um
// mês, um SKU etc). Os valores monetários são somados em decimal e as
// razões derivadas só são calculadas a partir dos totais já somados, nunca
// pela média de razões por linha.
type AggregateBucket struct {
	Key string `json:"key"`
	// FirstSeen é a posição da primeira venda do grupo na ordem original
	// dos dados, usada como desempate estável em rankings.
	FirstSeen          int             `json:"-"`
	GrossRevenue       decimal.Decimal `json:"gross_revenue"`
	ApprovedRevenue    decimal.Decimal `json:"approved_revenue"`
	CancelledRevenue   decimal.Decimal `json:"cancelled_revenue"`
	ContributionMargin decimal.Decimal `json:"contribution_margin"`
	Tax                decimal.Decimal `json:"tax"`
	Cost               decimal.Decimal `json:"cost"`
	Quantity           int64           `json:"quantity"`
	TotalCount         int             `json:"total_count"`
	ApprovedCount      int             `json:"approved_count"`
	CancelledCount     int             `json:"cancelled_count"`
}

// NewAggregateBucket cria um bucket vazio identificado pela chave do grupo.
func NewAggregateBucket(key string) *AggregateBucket {
	return &AggregateBucket{Key: key}
}

// Observe acumula uma venda no bucket. Pedidos cancelados entram no bruto
// e no cancelado, mas ficam fora da margem de contribuição; todos os
// demais entram no aprovado, de modo que bruto = aprovado + cancelado
// sempre vale.
func (b *AggregateBucket) Observe(r *SaleRecord) {
	b.GrossRevenue = b.GrossRevenue.Add(r.Revenue)
	b.Tax = b.Tax.Add(r.Tax)
	b.Cost = b.Cost.Add(r.Cost)
	b.Quantity += r.Quantity
	b.TotalCount++

	if r.IsCancelled() {
		b.CancelledRevenue = b.CancelledRevenue.Add(r.Revenue)
		b.CancelledCount++
		return
	}

	b.ApprovedRevenue = b.ApprovedRevenue.Add(r.Revenue)
	b.ContributionMargin = b.ContributionMargin.Add(r.ContributionMargin)
	b.ApprovedCount++
}

// CancellationPctByRevenue retorna o % do faturamento bruto que foi
// cancelado. Zero quando não há faturamento.
func (b *AggregateBucket) CancellationPctByRevenue() float64 {
	if !b.GrossRevenue.IsPositive() {
		return 0
	}
	pct, _ := b.CancelledRevenue.Div(b.GrossRevenue).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// CancellationPctByCount retorna o % de pedidos cancelados sobre o total.
func (b *AggregateBucket) CancellationPctByCount() float64 {
	if b.TotalCount == 0 {
		return 0
	}
	return float64(b.CancelledCount) / float64(b.TotalCount) * 100
}

// MarginPct retorna a margem de contribuição como % do faturamento
// aprovado. Pedidos cancelados não entram nem no numerador nem no
// denominador.
func (b *AggregateBucket) MarginPct() float64 {
	if !b.ApprovedRevenue.IsPositive() {
		return 0
	}
	pct, _ := b.ContributionMargin.Div(b.ApprovedRevenue).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// TaxPctOfRevenue retorna o imposto como % do faturamento bruto.
func (b *AggregateBucket) TaxPctOfRevenue() float64 {
	if !b.GrossRevenue.IsPositive() {
		return 0
	}
	pct, _ := b.Tax.Div(b.GrossRevenue).Mul(decimal.NewFromInt(100)).Float64()
	return pct
}

// AverageTicket retorna o faturamento aprovado médio por pedido aprovado.
// Zero quando não há pedidos aprovados.
func (b *AggregateBucket) AverageTicket() decimal.Decimal {
	if b.ApprovedCount == 0 {
		return decimal.Zero
	}
	return b.ApprovedRevenue.Div(decimal.NewFromInt(int64(b.ApprovedCount))).Round(2)
}

// AverageUnitPrice retorna o preço médio por unidade, ponderado pela
// quantidade vendida (faturamento total / unidades totais).
func (b *AggregateBucket) AverageUnitPrice() decimal.Decimal {
	if b.Quantity == 0 {
		return decimal.Zero
	}
	return b.GrossRevenue.Div(decimal.NewFromInt(b.Quantity)).Round(2)
}

// UnitMargin retorna a margem de contribuição média por unidade.
func (b *AggregateBucket) UnitMargin() decimal.Decimal {
	if b.Quantity == 0 {
		return decimal.Zero
	}
	return b.ContributionMargin.Div(decimal.NewFromInt(b.Quantity)).Round(2)
}
