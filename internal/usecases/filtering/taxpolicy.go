package filtering

import (
	"fmt"
	"strings"
	"time"

	"github.com/xrack/sales-insights-api/internal/domain"
)

// InclusionRule é a regra de quais pedidos entram na análise de impostos
// de um mês.
type InclusionRule string

const (
	// RuleAllOrders inclui todos os pedidos do mês, pagos ou não.
	RuleAllOrders InclusionRule = "todos os pedidos"
	// RulePaidOnly inclui apenas pedidos com status "Pago".
	RulePaidOnly InclusionRule = "apenas pedidos pagos"
)

// TaxPolicy mapeia (ano, mês) na regra de inclusão. Meses sem entrada
// explícita usam a regra padrão (apenas pagos). As exceções vêm da
// configuração; o regime de abr-jun/2025 tributou pedidos independente
// do pagamento.
type TaxPolicy struct {
	exceptions map[domain.MonthKey]InclusionRule
}

// NewTaxPolicy monta a política a partir da lista de meses de exceção no
// formato "MM-YYYY" (o mesmo formato de mês usado nos agendamentos).
// Meses ilegíveis são rejeitados para não silenciar erro de configuração.
func NewTaxPolicy(exceptionMonths []string) (*TaxPolicy, error) {
	policy := &TaxPolicy{exceptions: make(map[domain.MonthKey]InclusionRule, len(exceptionMonths))}

	for _, raw := range exceptionMonths {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		var month, year int
		if _, err := fmt.Sscanf(entry, "%02d-%04d", &month, &year); err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("mês de exceção inválido na política de impostos: %q", raw)
		}

		policy.exceptions[domain.MonthKey{Year: year, Month: time.Month(month)}] = RuleAllOrders
	}

	return policy, nil
}

// RuleFor retorna a regra de inclusão do mês.
func (p *TaxPolicy) RuleFor(key domain.MonthKey) InclusionRule {
	if rule, ok := p.exceptions[key]; ok {
		return rule
	}
	return RulePaidOnly
}

// TaggedRecord é uma venda retida pela política, anotada com a regra que
// a incluiu, para o resumo de auditoria do relatório de impostos.
type TaggedRecord struct {
	Record *domain.SaleRecord
	Rule   InclusionRule
}

// ApplyTaxPolicy aplica a regra mês a mês: nos meses de exceção todos os
// pedidos entram; nos demais só os pagos. A fatia original não é alterada.
func (p *TaxPolicy) ApplyTaxPolicy(records []*domain.SaleRecord) []TaggedRecord {
	tagged := make([]TaggedRecord, 0, len(records))

	for _, r := range records {
		rule := p.RuleFor(r.MonthKey())
		if rule == RulePaidOnly && !r.IsPaid() {
			continue
		}
		tagged = append(tagged, TaggedRecord{Record: r, Rule: rule})
	}

	return tagged
}
