package reporting

import (
	"sort"

	"github.com/xrack/sales-insights-api/internal/domain"
)

// KeyFunc extrai a chave de agrupamento de uma venda.
type KeyFunc func(*domain.SaleRecord) string

// Dimensões de agrupamento usadas pelos relatórios.
func byChannel(r *domain.SaleRecord) string  { return r.Channel }
func byAccount(r *domain.SaleRecord) string  { return r.Account }
func byOrigin(r *domain.SaleRecord) string   { return r.AcquisitionOrigin }
func byStatus(r *domain.SaleRecord) string   { return r.Status }
func byShipping(r *domain.SaleRecord) string { return r.ShippingMethod }
func bySKU(r *domain.SaleRecord) string      { return r.SKU }
func byCode(r *domain.SaleRecord) string     { return r.Code }
func byMonth(r *domain.SaleRecord) string    { return r.MonthKey().String() }

// GroupBy agrega as vendas por chave. O mapa retornado tem um bucket por
// valor distinto da dimensão; cada bucket registra a posição da primeira
// venda do grupo para desempates estáveis.
func GroupBy(records []*domain.SaleRecord, key KeyFunc) map[string]*domain.AggregateBucket {
	buckets := make(map[string]*domain.AggregateBucket)

	for pos, r := range records {
		k := key(r)
		bucket, ok := buckets[k]
		if !ok {
			bucket = domain.NewAggregateBucket(k)
			bucket.FirstSeen = pos
			buckets[k] = bucket
		}
		bucket.Observe(r)
	}

	return buckets
}

// Observe agrega todas as vendas em um único bucket (linha de totais).
func Observe(records []*domain.SaleRecord, key string) *domain.AggregateBucket {
	bucket := domain.NewAggregateBucket(key)
	for _, r := range records {
		bucket.Observe(r)
	}
	return bucket
}

// sortedKeys retorna as chaves do mapa em ordem lexicográfica, para que a
// mesma entrada produza sempre a mesma saída.
func sortedKeys(buckets map[string]*domain.AggregateBucket) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// distinctValues coleta os valores distintos e não vazios de uma dimensão,
// em ordem alfabética.
func distinctValues(records []*domain.SaleRecord, key KeyFunc) []string {
	seen := make(map[string]struct{})
	for _, r := range records {
		if v := key(r); v != "" {
			seen[v] = struct{}{}
		}
	}

	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// monthKeysInOrder retorna os meses presentes nas vendas, do mais antigo
// para o mais recente.
func monthKeysInOrder(records []*domain.SaleRecord) []domain.MonthKey {
	seen := make(map[domain.MonthKey]struct{})
	for _, r := range records {
		seen[r.MonthKey()] = struct{}{}
	}

	keys := make([]domain.MonthKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	return keys
}
