package reporting

import (
	"sort"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/xrack/sales-insights-api/infrastructure/repository"
	"github.com/xrack/sales-insights-api/internal/domain"
	"github.com/xrack/sales-insights-api/internal/usecases/filtering"
	"github.com/xrack/sales-insights-api/internal/usecases/normalizing"
	"github.com/xrack/sales-insights-api/pkg/utils"
)

// ErrSnapshotUnavailable indica que nenhuma carga da planilha foi
// concluída com sucesso ainda.
var ErrSnapshotUnavailable = errors.New("nenhum snapshot de vendas disponível")

type Service struct {
	snapshots repository.SnapshotRepository
	taxPolicy *filtering.TaxPolicy
	now       func() time.Time
}

// NewService cria o serviço de relatórios sobre o repositório de snapshots.
func NewService(snapshots repository.SnapshotRepository, taxPolicy *filtering.TaxPolicy) *Service {
	return &Service{
		snapshots: snapshots,
		taxPolicy: taxPolicy,
		now:       time.Now,
	}
}

// WithClock troca o relógio usado na resolução de períodos relativos.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// selection resolve a janela do período e aplica os filtros comuns,
// devolvendo o conjunto corrente de vendas.
func (s *Service) selection(filters domain.ReportFilters) (*domain.Snapshot, []*domain.SaleRecord, domain.ReportFilters, error) {
	snapshot := s.snapshots.Current()
	if snapshot.IsEmpty() {
		return nil, nil, filters, ErrSnapshotUnavailable
	}

	var start, end *time.Time
	if filters.Window != nil {
		start, end = filters.Window.Start, filters.Window.End
	}

	window, err := domain.ResolveWindow(filters.Period, s.now(), start, end)
	if err != nil {
		return nil, nil, filters, err
	}
	filters.Window = window

	records := filtering.Apply(snapshot.Records, filtering.FromFilters(filters)...)
	return snapshot, records, filters, nil
}

// previousSelection retorna as vendas do período imediatamente anterior ao
// intervalo de datas realmente observado no conjunto corrente. Conjunto
// corrente vazio não tem período anterior.
func (s *Service) previousSelection(snapshot *domain.Snapshot, current []*domain.SaleRecord, filters domain.ReportFilters) ([]*domain.SaleRecord, *domain.DateRange) {
	if len(current) == 0 {
		return nil, nil
	}

	min, max := current[0].Date, current[0].Date
	for _, r := range current[1:] {
		if r.Date.Before(min) {
			min = r.Date
		}
		if r.Date.After(max) {
			max = r.Date
		}
	}

	previous := domain.PreviousWindow(min, max)
	filters.Window = &previous
	filters.Period = domain.PeriodCustom

	return filtering.Apply(snapshot.Records, filtering.FromFilters(filters)...), &previous
}

func summarize(records []*domain.SaleRecord) *SummaryMetrics {
	bucket := Observe(records, "resumo")

	return &SummaryMetrics{
		GrossRevenue:           bucket.GrossRevenue,
		ApprovedRevenue:        bucket.ApprovedRevenue,
		CancelledRevenue:       bucket.CancelledRevenue,
		ContributionMargin:     bucket.ContributionMargin,
		MarginPct:              utils.RoundWithTwoDecimalPlace(bucket.MarginPct()),
		Orders:                 bucket.TotalCount,
		ApprovedOrders:         bucket.ApprovedCount,
		CancelledOrders:        bucket.CancelledCount,
		Quantity:               bucket.Quantity,
		AverageTicket:          bucket.AverageTicket(),
		CancellationPctRevenue: utils.RoundWithTwoDecimalPlace(bucket.CancellationPctByRevenue()),
		CancellationPctOrders:  utils.RoundWithTwoDecimalPlace(bucket.CancellationPctByCount()),
	}
}

func growthBetween(current, previous *SummaryMetrics) *GrowthMetrics {
	if previous == nil {
		return nil
	}

	return &GrowthMetrics{
		RevenuePct:  utils.RoundWithTwoDecimalPlace(domain.GrowthPercent(current.GrossRevenue, previous.GrossRevenue)),
		MarginPct:   utils.RoundWithTwoDecimalPlace(domain.GrowthPercent(current.ContributionMargin, previous.ContributionMargin)),
		OrdersPct:   utils.RoundWithTwoDecimalPlace(domain.GrowthPercentInt(int64(current.Orders), int64(previous.Orders))),
		QuantityPct: utils.RoundWithTwoDecimalPlace(domain.GrowthPercentInt(current.Quantity, previous.Quantity)),
		TicketPct:   utils.RoundWithTwoDecimalPlace(domain.GrowthPercent(current.AverageTicket, previous.AverageTicket)),
		MarginPoints: utils.RoundWithTwoDecimalPlace(
			domain.PointsDelta(current.MarginPct, previous.MarginPct)),
		CancellationRevenuePoints: utils.RoundWithTwoDecimalPlace(
			domain.PointsDelta(current.CancellationPctRevenue, previous.CancellationPctRevenue)),
		CancellationOrdersPoints: utils.RoundWithTwoDecimalPlace(
			domain.PointsDelta(current.CancellationPctOrders, previous.CancellationPctOrders)),
	}
}

// Overview monta a visão geral com comparação frente ao período anterior.
func (s *Service) Overview(filters domain.ReportFilters) (*OverviewReport, error) {
	snapshot, current, resolved, err := s.selection(filters)
	if err != nil {
		return nil, err
	}

	report := &OverviewReport{
		Window:  resolved.Window,
		Current: summarize(current),
	}

	previousRecords, previousWindow := s.previousSelection(snapshot, current, resolved)
	if previousWindow != nil {
		report.PreviousWindow = previousWindow
		report.Previous = summarize(previousRecords)
		report.Growth = growthBetween(report.Current, report.Previous)
	}

	return report, nil
}

// Channels monta os painéis por canal e por canal × conta, cada um com o
// crescimento frente ao período anterior do mesmo recorte.
func (s *Service) Channels(filters domain.ReportFilters) (*ChannelReport, error) {
	snapshot, current, resolved, err := s.selection(filters)
	if err != nil {
		return nil, err
	}

	previousRecords, previousWindow := s.previousSelection(snapshot, current, resolved)

	report := &ChannelReport{
		Window:         resolved.Window,
		PreviousWindow: previousWindow,
	}

	channelKey := func(r *domain.SaleRecord) string { return r.Channel }
	accountKey := func(r *domain.SaleRecord) string { return r.Channel + "\x00" + r.Account }

	report.Channels = buildEntries(current, previousRecords, channelKey, func(entry *ChannelEntry, key string) {
		entry.Channel = key
	})
	report.Accounts = buildEntries(current, previousRecords, accountKey, func(entry *ChannelEntry, key string) {
		for i := 0; i < len(key); i++ {
			if key[i] == 0 {
				entry.Channel, entry.Account = key[:i], key[i+1:]
				return
			}
		}
		entry.Channel = key
	})

	return report, nil
}

func buildEntries(current, previous []*domain.SaleRecord, key KeyFunc, decorate func(*ChannelEntry, string)) []*ChannelEntry {
	currentGroups := groupRecords(current, key)
	previousGroups := groupRecords(previous, key)

	keys := make([]string, 0, len(currentGroups))
	for k := range currentGroups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]*ChannelEntry, 0, len(keys))
	for _, k := range keys {
		entry := &ChannelEntry{Metrics: summarize(currentGroups[k])}
		decorate(entry, k)

		if prev, ok := previousGroups[k]; ok && len(prev) > 0 {
			entry.Growth = growthBetween(entry.Metrics, summarize(prev))
		}

		entries = append(entries, entry)
	}

	return entries
}

func groupRecords(records []*domain.SaleRecord, key KeyFunc) map[string][]*domain.SaleRecord {
	groups := make(map[string][]*domain.SaleRecord)
	for _, r := range records {
		k := key(r)
		groups[k] = append(groups[k], r)
	}
	return groups
}

func metricValue(bucket *domain.AggregateBucket, metric domain.MetricBasis) decimal.Decimal {
	if metric == domain.MetricMargin {
		return bucket.ContributionMargin
	}
	return bucket.GrossRevenue
}

// Monthly monta o relatório mensal aberto por status do pedido.
func (s *Service) Monthly(filters domain.ReportFilters) (*MonthlyReport, error) {
	_, current, resolved, err := s.selection(filters)
	if err != nil {
		return nil, err
	}

	report := &MonthlyReport{Metric: normalizeMetric(resolved.Metric)}

	months := monthKeysInOrder(current)
	byMonthStatus := make(map[string]map[string]*domain.AggregateBucket)
	for _, r := range current {
		month := r.MonthKey().String()
		if byMonthStatus[month] == nil {
			byMonthStatus[month] = make(map[string]*domain.AggregateBucket)
		}
		bucket, ok := byMonthStatus[month][r.Status]
		if !ok {
			bucket = domain.NewAggregateBucket(r.Status)
			byMonthStatus[month][r.Status] = bucket
		}
		bucket.Observe(r)
	}

	for _, month := range months {
		statuses := byMonthStatus[month.String()]
		for _, status := range sortedKeys(statuses) {
			bucket := statuses[status]
			report.Rows = append(report.Rows, &MonthlyRow{
				Month:    month.String(),
				Label:    month.Label(),
				Status:   status,
				Value:    metricValue(bucket, report.Metric),
				Quantity: bucket.Quantity,
				Orders:   bucket.TotalCount,
			})
		}
	}

	return report, nil
}

// Origins monta a quebra mensal por origem de aquisição com a
// participação de cada origem dentro do mês.
func (s *Service) Origins(filters domain.ReportFilters) (*OriginReport, error) {
	_, current, resolved, err := s.selection(filters)
	if err != nil {
		return nil, err
	}

	report := &OriginReport{Metric: normalizeMetric(resolved.Metric)}

	months := monthKeysInOrder(current)
	byMonthOrigin := make(map[string]map[string]*domain.AggregateBucket)
	for _, r := range current {
		month := r.MonthKey().String()
		origin := r.AcquisitionOrigin
		if origin == "" {
			origin = "Não informada"
		}
		if byMonthOrigin[month] == nil {
			byMonthOrigin[month] = make(map[string]*domain.AggregateBucket)
		}
		bucket, ok := byMonthOrigin[month][origin]
		if !ok {
			bucket = domain.NewAggregateBucket(origin)
			byMonthOrigin[month][origin] = bucket
		}
		bucket.Observe(r)
	}

	for _, month := range months {
		origins := byMonthOrigin[month.String()]

		monthTotal := decimal.Zero
		for _, bucket := range origins {
			monthTotal = monthTotal.Add(metricValue(bucket, report.Metric))
		}

		for _, origin := range sortedKeys(origins) {
			bucket := origins[origin]
			value := metricValue(bucket, report.Metric)

			share := 0.0
			if monthTotal.IsPositive() {
				share, _ = value.Div(monthTotal).Mul(decimal.NewFromInt(100)).Float64()
			}

			report.Rows = append(report.Rows, &OriginRow{
				Month:    month.String(),
				Label:    month.Label(),
				Origin:   origin,
				Value:    value,
				SharePct: utils.RoundWithTwoDecimalPlace(share),
			})
		}
	}

	return report, nil
}

// Daily monta as tabelas dinâmicas diárias de quantidade e faturamento.
func (s *Service) Daily(filters domain.ReportFilters) (*DailyReport, error) {
	_, current, _, err := s.selection(filters)
	if err != nil {
		return nil, err
	}

	return &DailyReport{
		Quantity: BuildDailyPivot(current, "quantidade", func(r *domain.SaleRecord) decimal.Decimal {
			return decimal.NewFromInt(r.Quantity)
		}),
		Revenue: BuildDailyPivot(current, "faturamento", func(r *domain.SaleRecord) decimal.Decimal {
			return r.Revenue
		}),
	}, nil
}

// SKUs monta o relatório de produtos: painel geral, tabela consolidada por
// SKU, ranking dos mais vendidos e a seleção de colunas ecoada na ordem
// canônica da tabela.
func (s *Service) SKUs(filters domain.ReportFilters, columns []string) (*SKUReport, error) {
	_, current, _, err := s.selection(filters)
	if err != nil {
		return nil, err
	}

	buckets := GroupBy(current, bySKU)
	descriptions := make(map[string]string)
	for _, r := range current {
		if _, ok := descriptions[r.SKU]; !ok {
			descriptions[r.SKU] = r.Description
		}
	}

	rows := make([]*SKURow, 0, len(buckets))
	for _, sku := range sortedKeys(buckets) {
		rows = append(rows, buildSKURow(buckets[sku], descriptions[sku], current))
	}

	top := make([]*SKURow, 0, topProductsLimit)
	for _, bucket := range TopByRevenue(buckets, topProductsLimit) {
		top = append(top, buildSKURow(bucket, descriptions[bucket.Key], current))
	}

	total := Observe(current, "total")
	summary := &SKUSummary{
		DistinctSKUs:       len(buckets),
		Quantity:           total.Quantity,
		Orders:             total.TotalCount,
		Revenue:            total.GrossRevenue,
		ContributionMargin: total.ContributionMargin,
		MarginPct:          utils.RoundWithTwoDecimalPlace(total.MarginPct()),
		AverageUnitPrice:   total.AverageUnitPrice(),
		UnitMargin:         total.UnitMargin(),
	}

	return &SKUReport{
		Summary: summary,
		Rows:    rows,
		Top:     top,
		Columns: selectColumns(columns),
	}, nil
}

func buildSKURow(bucket *domain.AggregateBucket, description string, records []*domain.SaleRecord) *SKURow {
	row := &SKURow{
		SKU:                bucket.Key,
		Description:        description,
		Quantity:           bucket.Quantity,
		Orders:             bucket.TotalCount,
		Revenue:            bucket.GrossRevenue,
		Cost:               bucket.Cost,
		Tax:                bucket.Tax,
		ContributionMargin: bucket.ContributionMargin,
		MarginPct:          utils.RoundWithTwoDecimalPlace(bucket.MarginPct()),
		AverageUnitPrice:   bucket.AverageUnitPrice(),
		UnitMargin:         bucket.UnitMargin(),
	}

	for _, r := range records {
		if r.SKU != bucket.Key {
			continue
		}
		row.SaleFee = row.SaleFee.Add(r.SaleFee)
		row.BuyerShipping = row.BuyerShipping.Add(r.BuyerShipping)
		row.SellerShipping = row.SellerShipping.Add(r.SellerShipping)
	}

	return row
}

// selectColumns filtra a seleção do usuário mantendo a ordem canônica da
// tabela de produtos. Seleção vazia devolve todas as colunas.
func selectColumns(selected []string) []string {
	if len(selected) == 0 {
		return normalizing.SKUTableColumns
	}

	wanted := make(map[string]struct{}, len(selected))
	for _, c := range selected {
		wanted[c] = struct{}{}
	}

	columns := make([]string, 0, len(selected))
	for _, c := range normalizing.SKUTableColumns {
		if _, ok := wanted[c]; ok {
			columns = append(columns, c)
		}
	}

	return columns
}

// SKUEvolution monta a série mensal por SKU ou por código de anúncio, com
// a variação percentual frente ao mês anterior da mesma chave.
func (s *Service) SKUEvolution(filters domain.ReportFilters) (*SKUEvolutionReport, error) {
	_, current, resolved, err := s.selection(filters)
	if err != nil {
		return nil, err
	}

	view := resolved.View
	if view == "" {
		view = domain.ViewBySKU
	}

	keyOf := bySKU
	if view == domain.ViewByCode {
		keyOf = byCode
	}

	report := &SKUEvolutionReport{View: view, Metric: normalizeMetric(resolved.Metric)}

	months := monthKeysInOrder(current)
	series := make(map[string]map[string]*domain.AggregateBucket)
	for _, r := range current {
		key := keyOf(r)
		if key == "" {
			continue
		}
		month := r.MonthKey().String()
		if series[key] == nil {
			series[key] = make(map[string]*domain.AggregateBucket)
		}
		bucket, ok := series[key][month]
		if !ok {
			bucket = domain.NewAggregateBucket(key)
			series[key][month] = bucket
		}
		bucket.Observe(r)
	}

	seriesKeys := make([]string, 0, len(series))
	for k := range series {
		seriesKeys = append(seriesKeys, k)
	}
	sort.Strings(seriesKeys)

	for _, key := range seriesKeys {
		var previous decimal.Decimal
		hasPrevious := false

		for _, month := range months {
			bucket, ok := series[key][month.String()]
			if !ok {
				continue
			}

			value := metricValue(bucket, report.Metric)

			variation := 0.0
			if hasPrevious {
				variation = utils.RoundWithTwoDecimalPlace(domain.GrowthPercent(value, previous))
			}

			report.Rows = append(report.Rows, &EvolutionRow{
				Month:        month.String(),
				Label:        month.Label(),
				Key:          key,
				Value:        value,
				Quantity:     bucket.Quantity,
				VariationPct: variation,
			})

			previous = value
			hasPrevious = true
		}
	}

	return report, nil
}

// SKUPricing acompanha o preço médio unitário e a margem unitária mês a mês.
func (s *Service) SKUPricing(filters domain.ReportFilters) (*SKUPricingReport, error) {
	_, current, _, err := s.selection(filters)
	if err != nil {
		return nil, err
	}

	report := &SKUPricingReport{}

	byMonthBuckets := GroupBy(current, byMonth)
	for _, month := range monthKeysInOrder(current) {
		bucket, ok := byMonthBuckets[month.String()]
		if !ok {
			continue
		}

		report.Rows = append(report.Rows, &PricingRow{
			Month:            month.String(),
			Label:            month.Label(),
			AverageUnitPrice: bucket.AverageUnitPrice(),
			UnitMargin:       bucket.UnitMargin(),
			MarginPct:        utils.RoundWithTwoDecimalPlace(bucket.MarginPct()),
			Quantity:         bucket.Quantity,
		})
	}

	return report, nil
}

// Shipping monta a distribuição de pedidos por tipo de frete.
func (s *Service) Shipping(filters domain.ReportFilters) (*ShippingReport, error) {
	_, current, _, err := s.selection(filters)
	if err != nil {
		return nil, err
	}

	report := &ShippingReport{}

	buckets := GroupBy(current, byShipping)
	totalOrders := len(current)

	for _, method := range sortedKeys(buckets) {
		bucket := buckets[method]

		label := method
		if label == "" {
			label = "Não informado"
		}

		share := 0.0
		if totalOrders > 0 {
			share = float64(bucket.TotalCount) / float64(totalOrders) * 100
		}

		report.Rows = append(report.Rows, &ShippingRow{
			Method:   label,
			Orders:   bucket.TotalCount,
			Quantity: bucket.Quantity,
			Revenue:  bucket.GrossRevenue,
			SharePct: utils.RoundWithTwoDecimalPlace(share),
		})
	}

	return report, nil
}

// Taxes monta a análise de impostos aplicando a política mensal: nos meses
// de exceção todos os pedidos entram, nos demais apenas os pagos. O imposto
// em % só é calculado quando há faturamento.
func (s *Service) Taxes(filters domain.ReportFilters) (*TaxReport, error) {
	_, current, _, err := s.selection(filters)
	if err != nil {
		return nil, err
	}

	tagged := s.taxPolicy.ApplyTaxPolicy(current)

	report := &TaxReport{
		Audit: &TaxAudit{
			OrdersIncluded: len(tagged),
			OrdersExcluded: len(current) - len(tagged),
		},
	}

	included := make([]*domain.SaleRecord, 0, len(tagged))
	for _, t := range tagged {
		included = append(included, t.Record)
	}

	monthBuckets := GroupBy(included, byMonth)
	for _, month := range monthKeysInOrder(included) {
		bucket, ok := monthBuckets[month.String()]
		if !ok {
			continue
		}

		rule := s.taxPolicy.RuleFor(month)
		if rule == filtering.RuleAllOrders {
			report.Audit.MonthsAllOrders++
		} else {
			report.Audit.MonthsPaidOnly++
		}

		report.Months = append(report.Months, &TaxMonthRow{
			Month:   month.String(),
			Label:   month.Label(),
			Revenue: bucket.GrossRevenue,
			Tax:     bucket.Tax,
			TaxPct:  utils.RoundWithTwoDecimalPlace(bucket.TaxPctOfRevenue()),
			Rule:    rule,
			Orders:  bucket.TotalCount,
		})
	}

	accountKey := func(r *domain.SaleRecord) string { return r.Channel + "\x00" + r.Account }
	breakdownBuckets := GroupBy(included, accountKey)
	for _, key := range sortedKeys(breakdownBuckets) {
		bucket := breakdownBuckets[key]

		row := &TaxBreakdownRow{
			Revenue: bucket.GrossRevenue,
			Tax:     bucket.Tax,
			TaxPct:  utils.RoundWithTwoDecimalPlace(bucket.TaxPctOfRevenue()),
		}
		for i := 0; i < len(key); i++ {
			if key[i] == 0 {
				row.Channel, row.Account = key[:i], key[i+1:]
				break
			}
		}

		report.Breakdown = append(report.Breakdown, row)
	}

	return report, nil
}

// Options lista os valores disponíveis para os seletores da interface.
func (s *Service) Options() (*ReportOptions, error) {
	snapshot := s.snapshots.Current()
	if snapshot.IsEmpty() {
		return nil, ErrSnapshotUnavailable
	}

	options := &ReportOptions{
		Periods:  domain.ValidPeriodModes,
		Channels: distinctValues(snapshot.Records, byChannel),
		Accounts: distinctValues(snapshot.Records, byAccount),
		Origins:  distinctValues(snapshot.Records, byOrigin),
		Statuses: distinctValues(snapshot.Records, byStatus),
	}

	for _, month := range monthKeysInOrder(snapshot.Records) {
		options.Months = append(options.Months, month.String())
	}

	if min, max, ok := snapshot.DateBounds(); ok {
		options.MinDate, options.MaxDate = &min, &max
	}

	return options, nil
}

// Status retorna os metadados da última carga concluída.
func (s *Service) Status() (*SnapshotStatus, error) {
	snapshot := s.snapshots.Current()
	if snapshot == nil {
		return nil, ErrSnapshotUnavailable
	}

	return &SnapshotStatus{
		SnapshotID:  snapshot.ID,
		Source:      snapshot.Source,
		LoadedAt:    snapshot.LoadedAt,
		Records:     len(snapshot.Records),
		TotalRows:   snapshot.TotalRows,
		DroppedRows: snapshot.DroppedRows,
		Warnings:    snapshot.Warnings,
	}, nil
}

func normalizeMetric(metric domain.MetricBasis) domain.MetricBasis {
	if metric == "" {
		return domain.MetricRevenue
	}
	return metric
}
