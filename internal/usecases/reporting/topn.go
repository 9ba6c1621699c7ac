package reporting

import (
	"sort"

	"github.com/xrack/sales-insights-api/internal/domain"
)

// topProductsLimit é quantos produtos aparecem no ranking de mais vendidos.
const topProductsLimit = 20

// TopByRevenue ordena os buckets por faturamento bruto decrescente e corta
// nos n primeiros. Empates são decididos pela ordem de primeira ocorrência
// do grupo nos dados (e pela chave em último caso), então o ranking é
// estável entre execuções com a mesma entrada.
func TopByRevenue(buckets map[string]*domain.AggregateBucket, n int) []*domain.AggregateBucket {
	ranked := make([]*domain.AggregateBucket, 0, len(buckets))
	for _, b := range buckets {
		ranked = append(ranked, b)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].GrossRevenue.Equal(ranked[j].GrossRevenue) {
			return ranked[i].GrossRevenue.GreaterThan(ranked[j].GrossRevenue)
		}
		if ranked[i].FirstSeen != ranked[j].FirstSeen {
			return ranked[i].FirstSeen < ranked[j].FirstSeen
		}
		return ranked[i].Key < ranked[j].Key
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	return ranked
}
