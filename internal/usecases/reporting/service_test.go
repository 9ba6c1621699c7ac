package reporting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xrack/sales-insights-api/infrastructure/repository/mocks"
	"github.com/xrack/sales-insights-api/internal/domain"
	"github.com/xrack/sales-insights-api/internal/usecases/filtering"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T, snapshot *domain.Snapshot) *Service {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSnapshotRepository(ctrl)
	repo.EXPECT().Current().Return(snapshot).AnyTimes()

	policy, err := filtering.NewTaxPolicy([]string{"04-2025", "05-2025", "06-2025"})
	require.NoError(t, err)

	service := NewService(repo, policy)
	service.WithClock(func() time.Time {
		return time.Date(2025, 7, 31, 12, 0, 0, 0, time.UTC)
	})
	return service
}

func record(date time.Time, channel, account, sku, status string, revenue, margin float64, qty int64) *domain.SaleRecord {
	return &domain.SaleRecord{
		Date:               date,
		Year:               date.Year(),
		Month:              int(date.Month()),
		Day:                date.Day(),
		Channel:            channel,
		Account:            account,
		SKU:                sku,
		Description:        "Produto " + sku,
		Status:             status,
		Quantity:           qty,
		Revenue:            decimal.NewFromFloat(revenue),
		ContributionMargin: decimal.NewFromFloat(margin),
	}
}

func snapshotWith(records ...*domain.SaleRecord) *domain.Snapshot {
	return &domain.Snapshot{
		ID:       "snap-teste",
		Source:   "financeiro.xlsx",
		LoadedAt: time.Now(),
		Records:  records,
	}
}

func jul(day int) time.Time {
	return time.Date(2025, 7, day, 0, 0, 0, 0, time.UTC)
}

// Cenário de referência: três vendas em dois canais, uma delas cancelada.
func referenceSnapshot() *domain.Snapshot {
	return snapshotWith(
		record(jul(1), "Mercado Livre", "XRack", "S1", domain.StatusPago, 100, 30, 1),
		record(jul(2), "Mercado Livre", "XRack", "S2", domain.StatusCancelado, 50, 0, 1),
		record(jul(3), "Shopee", "EvolutionX", "S3", domain.StatusPago, 200, 80, 2),
	)
}

func TestChannelsReferenceScenario(t *testing.T) {
	service := newTestService(t, referenceSnapshot())

	report, err := service.Channels(domain.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, report.Channels, 2)

	ml := report.Channels[0]
	require.Equal(t, "Mercado Livre", ml.Channel)
	assert.True(t, decimal.NewFromInt(150).Equal(ml.Metrics.GrossRevenue))
	assert.True(t, decimal.NewFromInt(50).Equal(ml.Metrics.CancelledRevenue))
	assert.True(t, decimal.NewFromInt(100).Equal(ml.Metrics.ApprovedRevenue))
	assert.InDelta(t, 33.33, ml.Metrics.CancellationPctRevenue, 0.01)
	// MC% sobre o faturamento aprovado: 30/100.
	assert.InDelta(t, 30.0, ml.Metrics.MarginPct, 0.01)
	// Ticket médio sobre os pedidos aprovados: 100/1.
	assert.True(t, decimal.NewFromInt(100).Equal(ml.Metrics.AverageTicket))

	shopee := report.Channels[1]
	require.Equal(t, "Shopee", shopee.Channel)
	assert.True(t, decimal.NewFromInt(200).Equal(shopee.Metrics.GrossRevenue))
	assert.Zero(t, shopee.Metrics.CancellationPctRevenue)
	assert.InDelta(t, 40.0, shopee.Metrics.MarginPct, 0.01)

	require.Len(t, report.Accounts, 2)
	assert.Equal(t, "XRack", report.Accounts[0].Account)
	assert.Equal(t, "EvolutionX", report.Accounts[1].Account)
}

func TestOverviewConservation(t *testing.T) {
	service := newTestService(t, referenceSnapshot())

	report, err := service.Overview(domain.ReportFilters{})
	require.NoError(t, err)

	current := report.Current
	assert.True(t, current.GrossRevenue.Equal(current.ApprovedRevenue.Add(current.CancelledRevenue)))
	assert.Equal(t, current.Orders, current.ApprovedOrders+current.CancelledOrders)
	assert.Equal(t, int64(4), current.Quantity)
}

func TestOverviewPreviousWindow(t *testing.T) {
	// Julho inteiro no conjunto corrente; o período anterior deve ser
	// [31/mai, 30/jun] e conter apenas a venda de junho.
	snapshot := snapshotWith(
		record(jul(1), "Shopee", "XRack", "S1", domain.StatusPago, 100, 30, 1),
		record(jul(31), "Shopee", "XRack", "S2", domain.StatusPago, 200, 60, 1),
		record(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), "Shopee", "XRack", "S3", domain.StatusPago, 150, 45, 1),
		record(time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC), "Shopee", "XRack", "S4", domain.StatusPago, 999, 99, 1),
	)
	service := newTestService(t, snapshot)

	start := jul(1)
	end := jul(31)
	report, err := service.Overview(domain.ReportFilters{
		Period: domain.PeriodCustom,
		Window: &domain.DateRange{Start: &start, End: &end},
	})
	require.NoError(t, err)

	require.NotNil(t, report.PreviousWindow)
	assert.Equal(t, time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), *report.PreviousWindow.Start)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), *report.PreviousWindow.End)

	require.NotNil(t, report.Previous)
	assert.True(t, decimal.NewFromInt(150).Equal(report.Previous.GrossRevenue))

	require.NotNil(t, report.Growth)
	assert.InDelta(t, 100.0, report.Growth.RevenuePct, 0.01) // 300 vs 150
}

func TestOverviewGrowthWithZeroBaseline(t *testing.T) {
	snapshot := snapshotWith(
		record(jul(10), "Shopee", "XRack", "S1", domain.StatusPago, 100, 30, 1),
	)
	service := newTestService(t, snapshot)

	report, err := service.Overview(domain.ReportFilters{})
	require.NoError(t, err)

	// Sem vendas no período anterior a base é zero e o crescimento é 0,
	// nunca infinito.
	require.NotNil(t, report.Growth)
	assert.Zero(t, report.Growth.RevenuePct)
	assert.Zero(t, report.Growth.QuantityPct)
}

func TestOverviewWithoutSnapshot(t *testing.T) {
	service := newTestService(t, nil)

	_, err := service.Overview(domain.ReportFilters{})
	assert.ErrorIs(t, err, ErrSnapshotUnavailable)
}

func TestDailyPivotDoesNotDoubleCount(t *testing.T) {
	snapshot := snapshotWith(
		record(jul(1), "Mercado Livre", "XRack", "S1", domain.StatusPago, 100, 30, 1),
		record(jul(1), "Mercado Livre", "EvolutionX", "S2", domain.StatusPago, 50, 10, 1),
		record(jul(1), "Shopee", "XRack", "S3", domain.StatusPago, 200, 80, 2),
	)
	service := newTestService(t, snapshot)

	report, err := service.Daily(domain.ReportFilters{})
	require.NoError(t, err)

	require.Len(t, report.Revenue.Rows, 1)
	row := report.Revenue.Rows[0]

	// O total geral soma só as colunas-folha: 100 + 50 + 200, sem somar
	// também os subtotais por canal.
	assert.True(t, decimal.NewFromInt(350).Equal(row.Total))
	assert.True(t, decimal.NewFromInt(150).Equal(row.ChannelTotals["Mercado Livre"]))
	assert.True(t, decimal.NewFromInt(200).Equal(row.ChannelTotals["Shopee"]))

	assert.True(t, decimal.NewFromInt(350).Equal(report.Revenue.Totals.Total))
	assert.True(t, decimal.NewFromInt(4).Equal(report.Quantity.Totals.Total))
}

func TestSKUsWeightedUnitPrice(t *testing.T) {
	r1 := record(jul(1), "Shopee", "XRack", "S1", domain.StatusPago, 20, 5, 2)
	r1.UnitPrice = decimal.NewFromInt(10)
	r2 := record(jul(2), "Shopee", "XRack", "S1", domain.StatusPago, 160, 40, 8)
	r2.UnitPrice = decimal.NewFromInt(20)

	service := newTestService(t, snapshotWith(r1, r2))

	report, err := service.SKUs(domain.ReportFilters{}, nil)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)

	// Preço médio ponderado pela quantidade: 180/10, não (10+20)/2.
	assert.True(t, decimal.NewFromInt(18).Equal(report.Rows[0].AverageUnitPrice))
	// MC% calculada dos totais: 45/180.
	assert.InDelta(t, 25.0, report.Rows[0].MarginPct, 0.01)
}

func TestSKUsColumnSelectionKeepsCanonicalOrder(t *testing.T) {
	service := newTestService(t, referenceSnapshot())

	report, err := service.SKUs(domain.ReportFilters{}, []string{"Faturamento", "SKU", "Qtd."})
	require.NoError(t, err)

	assert.Equal(t, []string{"SKU", "Qtd.", "Faturamento"}, report.Columns)
}

func TestTopByRevenueIsStable(t *testing.T) {
	// Empate proposital de faturamento entre C, A e B; D fica na frente.
	// O desempate segue a ordem de primeira ocorrência nos dados.
	records := []*domain.SaleRecord{
		record(jul(1), "Shopee", "XRack", "C", domain.StatusPago, 100, 10, 1),
		record(jul(2), "Shopee", "XRack", "A", domain.StatusPago, 100, 10, 1),
		record(jul(3), "Shopee", "XRack", "B", domain.StatusPago, 100, 10, 1),
		record(jul(4), "Shopee", "XRack", "D", domain.StatusPago, 500, 50, 1),
	}
	buckets := GroupBy(records, bySKU)

	for i := 0; i < 10; i++ {
		top := TopByRevenue(buckets, 3)
		require.Len(t, top, 3)
		assert.Equal(t, "D", top[0].Key)
		assert.Equal(t, "C", top[1].Key)
		assert.Equal(t, "A", top[2].Key)
	}
}

func TestSKUEvolutionVariation(t *testing.T) {
	jun := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	snapshot := snapshotWith(
		record(jun, "Shopee", "XRack", "S1", domain.StatusPago, 100, 30, 1),
		record(jul(10), "Shopee", "XRack", "S1", domain.StatusPago, 150, 45, 1),
	)
	service := newTestService(t, snapshot)

	report, err := service.SKUEvolution(domain.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)

	// O primeiro mês não tem base de comparação: variação 0.
	assert.Equal(t, "2025-06", report.Rows[0].Month)
	assert.Zero(t, report.Rows[0].VariationPct)

	assert.Equal(t, "2025-07", report.Rows[1].Month)
	assert.InDelta(t, 50.0, report.Rows[1].VariationPct, 0.01)
}

func TestTaxesAppliesMonthlyPolicy(t *testing.T) {
	may := time.Date(2025, 5, 15, 0, 0, 0, 0, time.UTC)
	aug := time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC)

	r1 := record(may, "Shopee", "XRack", "S1", "Pendente", 100, 30, 1)
	r1.Tax = decimal.NewFromInt(10)
	r2 := record(aug, "Shopee", "XRack", "S2", "Pendente", 200, 60, 1)
	r2.Tax = decimal.NewFromInt(20)
	r3 := record(aug, "Shopee", "XRack", "S3", domain.StatusPago, 300, 90, 1)
	r3.Tax = decimal.NewFromInt(30)

	service := newTestService(t, snapshotWith(r1, r2, r3))

	report, err := service.Taxes(domain.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, report.Months, 2)

	// Maio/2025 é exceção: o pedido pendente entra.
	assert.Equal(t, "2025-05", report.Months[0].Month)
	assert.Equal(t, filtering.RuleAllOrders, report.Months[0].Rule)
	assert.True(t, decimal.NewFromInt(100).Equal(report.Months[0].Revenue))
	assert.InDelta(t, 10.0, report.Months[0].TaxPct, 0.01)

	// Agosto/2025 segue a regra padrão: só o pedido pago conta.
	assert.Equal(t, "2025-08", report.Months[1].Month)
	assert.Equal(t, filtering.RulePaidOnly, report.Months[1].Rule)
	assert.True(t, decimal.NewFromInt(300).Equal(report.Months[1].Revenue))

	assert.Equal(t, 2, report.Audit.OrdersIncluded)
	assert.Equal(t, 1, report.Audit.OrdersExcluded)
	assert.Equal(t, 1, report.Audit.MonthsAllOrders)
	assert.Equal(t, 1, report.Audit.MonthsPaidOnly)
}

func TestMonthlyMetricBasis(t *testing.T) {
	service := newTestService(t, referenceSnapshot())

	revenue, err := service.Monthly(domain.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, revenue.Rows, 2) // Cancelado e Pago em jul/2025
	assert.Equal(t, domain.MetricRevenue, revenue.Metric)

	margin, err := service.Monthly(domain.ReportFilters{Metric: domain.MetricMargin})
	require.NoError(t, err)

	var paid *MonthlyRow
	for _, row := range margin.Rows {
		if row.Status == domain.StatusPago {
			paid = row
		}
	}
	require.NotNil(t, paid)
	assert.True(t, decimal.NewFromInt(110).Equal(paid.Value)) // 30 + 80
}

func TestOriginsShare(t *testing.T) {
	r1 := record(jul(1), "Shopee", "XRack", "S1", domain.StatusPago, 75, 20, 1)
	r1.AcquisitionOrigin = "Orgânico"
	r2 := record(jul(2), "Shopee", "XRack", "S2", domain.StatusPago, 25, 5, 1)
	r2.AcquisitionOrigin = "Ads"

	service := newTestService(t, snapshotWith(r1, r2))

	report, err := service.Origins(domain.ReportFilters{})
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)

	assert.Equal(t, "Ads", report.Rows[0].Origin)
	assert.InDelta(t, 25.0, report.Rows[0].SharePct, 0.01)
	assert.Equal(t, "Orgânico", report.Rows[1].Origin)
	assert.InDelta(t, 75.0, report.Rows[1].SharePct, 0.01)
}

func TestOptionsAndStatus(t *testing.T) {
	service := newTestService(t, referenceSnapshot())

	options, err := service.Options()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mercado Livre", "Shopee"}, options.Channels)
	assert.Equal(t, []string{"EvolutionX", "XRack"}, options.Accounts)
	assert.Equal(t, []string{"2025-07"}, options.Months)
	require.NotNil(t, options.MinDate)
	assert.Equal(t, jul(1), *options.MinDate)

	status, err := service.Status()
	require.NoError(t, err)
	assert.Equal(t, "snap-teste", status.SnapshotID)
	assert.Equal(t, 3, status.Records)
}
