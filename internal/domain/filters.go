package domain

// StatusBasis seleciona quais pedidos entram em um relatório.
type StatusBasis string

const (
	StatusBasisAll       StatusBasis = "todos"
	StatusBasisApproved  StatusBasis = "aprovados"
	StatusBasisCancelled StatusBasis = "cancelados"
)

// Valid informa se a base de status é reconhecida.
func (s StatusBasis) Valid() bool {
	switch s {
	case "", StatusBasisAll, StatusBasisApproved, StatusBasisCancelled:
		return true
	}
	return false
}

// MetricBasis seleciona a métrica monetária dos relatórios mensais.
type MetricBasis string

const (
	MetricRevenue MetricBasis = "faturamento"
	MetricMargin  MetricBasis = "margem"
)

// Valid informa se a métrica é reconhecida.
func (m MetricBasis) Valid() bool {
	switch m {
	case "", MetricRevenue, MetricMargin:
		return true
	}
	return false
}

// ViewBy seleciona a dimensão da evolução de produtos: por SKU ou pelo
// código do anúncio.
type ViewBy string

const (
	ViewBySKU  ViewBy = "sku"
	ViewByCode ViewBy = "codigo"
)

// Valid informa se a visão é reconhecida.
func (v ViewBy) Valid() bool {
	switch v {
	case "", ViewBySKU, ViewByCode:
		return true
	}
	return false
}

// ReportFilters agrupa os filtros aceitos por todos os relatórios.
// Campos vazios não restringem nada; Window nulo significa "todos os
// períodos".
type ReportFilters struct {
	Period      PeriodMode
	Window      *DateRange
	Channel     string
	Account     string
	Origin      string
	Search      string
	StatusBasis StatusBasis
	Metric      MetricBasis
	View        ViewBy
}
