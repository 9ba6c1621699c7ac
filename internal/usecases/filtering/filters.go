package filtering

import (
	"strings"

	"github.com/xrack/sales-insights-api/internal/domain"
)

// Predicate decide se uma venda entra no conjunto filtrado.
type Predicate func(*domain.SaleRecord) bool

// ByChannel restringe ao canal de venda informado. Vazio não restringe.
func ByChannel(channel string) Predicate {
	return func(r *domain.SaleRecord) bool {
		return channel == "" || r.Channel == channel
	}
}

// ByAccount restringe à conta informada. Vazio não restringe.
func ByAccount(account string) Predicate {
	return func(r *domain.SaleRecord) bool {
		return account == "" || r.Account == account
	}
}

// ByOrigin restringe à origem de aquisição informada. Vazio não restringe.
func ByOrigin(origin string) Predicate {
	return func(r *domain.SaleRecord) bool {
		return origin == "" || r.AcquisitionOrigin == origin
	}
}

// ByStatusBasis restringe à base de pedidos do relatório: todos,
// apenas aprovados (não cancelados) ou apenas cancelados.
func ByStatusBasis(basis domain.StatusBasis) Predicate {
	return func(r *domain.SaleRecord) bool {
		switch basis {
		case domain.StatusBasisApproved:
			return !r.IsCancelled()
		case domain.StatusBasisCancelled:
			return r.IsCancelled()
		default:
			return true
		}
	}
}

// BySearch faz busca textual, sem diferenciar maiúsculas, no SKU, no
// código do anúncio e na descrição do produto.
func BySearch(term string) Predicate {
	needle := strings.ToLower(strings.TrimSpace(term))
	return func(r *domain.SaleRecord) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(strings.ToLower(r.SKU), needle) ||
			strings.Contains(strings.ToLower(r.Code), needle) ||
			strings.Contains(strings.ToLower(r.Description), needle)
	}
}

// ByDateRange restringe à janela de datas. Janela nula não restringe.
func ByDateRange(window *domain.DateRange) Predicate {
	return func(r *domain.SaleRecord) bool {
		return window == nil || window.Contains(r.Date)
	}
}

// Apply retorna as vendas que satisfazem todos os predicados. A fatia
// canônica nunca é alterada; o resultado é sempre uma fatia nova.
func Apply(records []*domain.SaleRecord, predicates ...Predicate) []*domain.SaleRecord {
	filtered := make([]*domain.SaleRecord, 0, len(records))

record:
	for _, r := range records {
		for _, accept := range predicates {
			if !accept(r) {
				continue record
			}
		}
		filtered = append(filtered, r)
	}

	return filtered
}

// FromFilters monta os predicados correspondentes aos filtros comuns de
// relatório.
func FromFilters(f domain.ReportFilters) []Predicate {
	return []Predicate{
		ByDateRange(f.Window),
		ByChannel(f.Channel),
		ByAccount(f.Account),
		ByOrigin(f.Origin),
		ByStatusBasis(f.StatusBasis),
		BySearch(f.Search),
	}
}
