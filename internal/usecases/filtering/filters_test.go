package filtering

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xrack/sales-insights-api/internal/domain"
)

func sale(date time.Time, channel, account, sku, status string) *domain.SaleRecord {
	return &domain.SaleRecord{
		Date:    date,
		Year:    date.Year(),
		Month:   int(date.Month()),
		Channel: channel,
		Account: account,
		SKU:     sku,
		Status:  status,
	}
}

func TestApplyConjunction(t *testing.T) {
	jul10 := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	jul20 := time.Date(2025, 7, 20, 0, 0, 0, 0, time.UTC)

	records := []*domain.SaleRecord{
		sale(jul10, "Mercado Livre", "XRack", "S1", domain.StatusPago),
		sale(jul10, "Shopee", "XRack", "S2", domain.StatusPago),
		sale(jul20, "Mercado Livre", "EvolutionX", "S3", domain.StatusCancelado),
	}

	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)
	window := &domain.DateRange{Start: &start, End: &end}

	filtered := Apply(records,
		ByDateRange(window),
		ByChannel("Mercado Livre"),
	)

	require.Len(t, filtered, 1)
	assert.Equal(t, "S1", filtered[0].SKU)

	// A fatia original permanece intacta.
	assert.Len(t, records, 3)
}

func TestByStatusBasis(t *testing.T) {
	jul := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	records := []*domain.SaleRecord{
		sale(jul, "Shopee", "XRack", "S1", domain.StatusPago),
		sale(jul, "Shopee", "XRack", "S2", "Pendente"),
		sale(jul, "Shopee", "XRack", "S3", domain.StatusCancelado),
	}

	all := Apply(records, ByStatusBasis(domain.StatusBasisAll))
	approved := Apply(records, ByStatusBasis(domain.StatusBasisApproved))
	cancelled := Apply(records, ByStatusBasis(domain.StatusBasisCancelled))

	assert.Len(t, all, 3)
	// Aprovado significa "não cancelado": pendente conta como aprovado.
	assert.Len(t, approved, 2)
	assert.Len(t, cancelled, 1)
}

func TestBySearch(t *testing.T) {
	jul := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	r1 := sale(jul, "Shopee", "XRack", "SUP-042", domain.StatusPago)
	r1.Description = "Suporte de TV articulado"
	r2 := sale(jul, "Shopee", "XRack", "CAB-001", domain.StatusPago)
	r2.Description = "Cabo HDMI"
	r2.Code = "MLB12345"

	records := []*domain.SaleRecord{r1, r2}

	assert.Len(t, Apply(records, BySearch("sup")), 1)
	assert.Len(t, Apply(records, BySearch("mlb123")), 1)
	assert.Len(t, Apply(records, BySearch("hdmi")), 1)
	assert.Len(t, Apply(records, BySearch("")), 2)
	assert.Empty(t, Apply(records, BySearch("inexistente")))
}

func TestFromFilters(t *testing.T) {
	jul := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	records := []*domain.SaleRecord{
		sale(jul, "Mercado Livre", "XRack", "S1", domain.StatusPago),
		sale(jul, "Shopee", "EvolutionX", "S2", domain.StatusCancelado),
	}

	filtered := Apply(records, FromFilters(domain.ReportFilters{
		Channel:     "Shopee",
		StatusBasis: domain.StatusBasisCancelled,
	})...)

	require.Len(t, filtered, 1)
	assert.Equal(t, "S2", filtered[0].SKU)
}
