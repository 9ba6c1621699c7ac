package reporting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/xrack/sales-insights-api/internal/domain"
	"github.com/xrack/sales-insights-api/internal/usecases/filtering"
)

// SummaryMetrics é o painel de métricas de um conjunto de vendas, usado
// tanto na visão geral quanto nos recortes por canal e conta.
type SummaryMetrics struct {
	GrossRevenue           decimal.Decimal `json:"gross_revenue"`
	ApprovedRevenue        decimal.Decimal `json:"approved_revenue"`
	CancelledRevenue       decimal.Decimal `json:"cancelled_revenue"`
	ContributionMargin     decimal.Decimal `json:"contribution_margin"`
	MarginPct              float64         `json:"margin_pct"`
	Orders                 int             `json:"orders"`
	ApprovedOrders         int             `json:"approved_orders"`
	CancelledOrders        int             `json:"cancelled_orders"`
	Quantity               int64           `json:"quantity"`
	AverageTicket          decimal.Decimal `json:"average_ticket"`
	CancellationPctRevenue float64         `json:"cancellation_pct_revenue"`
	CancellationPctOrders  float64         `json:"cancellation_pct_orders"`
}

// GrowthMetrics compara dois painéis: crescimentos relativos em % para
// valores e volumes, variações em pontos percentuais para taxas.
type GrowthMetrics struct {
	RevenuePct                float64 `json:"revenue_pct"`
	MarginPct                 float64 `json:"margin_pct"`
	OrdersPct                 float64 `json:"orders_pct"`
	QuantityPct               float64 `json:"quantity_pct"`
	TicketPct                 float64 `json:"ticket_pct"`
	MarginPoints              float64 `json:"margin_points"`
	CancellationRevenuePoints float64 `json:"cancellation_revenue_points"`
	CancellationOrdersPoints  float64 `json:"cancellation_orders_points"`
}

// OverviewReport é a visão geral: painel corrente, painel do período
// anterior e os crescimentos entre eles.
type OverviewReport struct {
	Window         *domain.DateRange `json:"window,omitempty"`
	PreviousWindow *domain.DateRange `json:"previous_window,omitempty"`
	Current        *SummaryMetrics   `json:"current"`
	Previous       *SummaryMetrics   `json:"previous,omitempty"`
	Growth         *GrowthMetrics    `json:"growth,omitempty"`
}

// ChannelEntry é o painel de um canal (ou de um par canal × conta) com o
// crescimento frente ao período anterior.
type ChannelEntry struct {
	Channel string          `json:"channel"`
	Account string          `json:"account,omitempty"`
	Metrics *SummaryMetrics `json:"metrics"`
	Growth  *GrowthMetrics  `json:"growth,omitempty"`
}

// ChannelReport é o relatório "Por Canal e Conta".
type ChannelReport struct {
	Window         *domain.DateRange `json:"window,omitempty"`
	PreviousWindow *domain.DateRange `json:"previous_window,omitempty"`
	Channels       []*ChannelEntry   `json:"channels"`
	Accounts       []*ChannelEntry   `json:"accounts"`
}

// MonthlyRow é um mês × status com o valor da métrica escolhida.
type MonthlyRow struct {
	Month    string          `json:"month"`
	Label    string          `json:"label"`
	Status   string          `json:"status"`
	Value    decimal.Decimal `json:"value"`
	Quantity int64           `json:"quantity"`
	Orders   int             `json:"orders"`
}

// MonthlyReport é o faturamento (ou margem) mensal aberto por status.
type MonthlyReport struct {
	Metric domain.MetricBasis `json:"metric"`
	Rows   []*MonthlyRow      `json:"rows"`
}

// OriginRow é um mês × origem de aquisição com participação no mês.
type OriginRow struct {
	Month    string          `json:"month"`
	Label    string          `json:"label"`
	Origin   string          `json:"origin"`
	Value    decimal.Decimal `json:"value"`
	SharePct float64         `json:"share_pct"`
}

// OriginReport é a quebra mensal por origem de aquisição.
type OriginReport struct {
	Metric domain.MetricBasis `json:"metric"`
	Rows   []*OriginRow       `json:"rows"`
}

// DailyReport traz as duas tabelas dinâmicas diárias.
type DailyReport struct {
	Quantity *DailyPivotReport `json:"quantity"`
	Revenue  *DailyPivotReport `json:"revenue"`
}

// SKURow é a linha consolidada de um produto na tabela de SKUs.
type SKURow struct {
	SKU                string          `json:"sku"`
	Description        string          `json:"description"`
	Quantity           int64           `json:"quantity"`
	Orders             int             `json:"orders"`
	Revenue            decimal.Decimal `json:"revenue"`
	Cost               decimal.Decimal `json:"cost"`
	Tax                decimal.Decimal `json:"tax"`
	SaleFee            decimal.Decimal `json:"sale_fee"`
	BuyerShipping      decimal.Decimal `json:"buyer_shipping"`
	SellerShipping     decimal.Decimal `json:"seller_shipping"`
	ContributionMargin decimal.Decimal `json:"contribution_margin"`
	MarginPct          float64         `json:"margin_pct"`
	AverageUnitPrice   decimal.Decimal `json:"average_unit_price"`
	UnitMargin         decimal.Decimal `json:"unit_margin"`
}

// SKUSummary é o painel geral do relatório de produtos.
type SKUSummary struct {
	DistinctSKUs       int             `json:"distinct_skus"`
	Quantity           int64           `json:"quantity"`
	Orders             int             `json:"orders"`
	Revenue            decimal.Decimal `json:"revenue"`
	ContributionMargin decimal.Decimal `json:"contribution_margin"`
	MarginPct          float64         `json:"margin_pct"`
	AverageUnitPrice   decimal.Decimal `json:"average_unit_price"`
	UnitMargin         decimal.Decimal `json:"unit_margin"`
}

// SKUReport é o relatório de produtos: painel, tabela completa, ranking e
// a seleção de colunas ecoada na ordem canônica.
type SKUReport struct {
	Summary *SKUSummary `json:"summary"`
	Rows    []*SKURow   `json:"rows"`
	Top     []*SKURow   `json:"top"`
	Columns []string    `json:"columns"`
}

// EvolutionRow é um mês de um produto na evolução mensal.
type EvolutionRow struct {
	Month        string          `json:"month"`
	Label        string          `json:"label"`
	Key          string          `json:"key"`
	Value        decimal.Decimal `json:"value"`
	Quantity     int64           `json:"quantity"`
	VariationPct float64         `json:"variation_pct"`
}

// SKUEvolutionReport é a evolução mensal por SKU ou por código de anúncio.
type SKUEvolutionReport struct {
	View   domain.ViewBy      `json:"view"`
	Metric domain.MetricBasis `json:"metric"`
	Rows   []*EvolutionRow    `json:"rows"`
}

// PricingRow é um mês do relatório de precificação.
type PricingRow struct {
	Month            string          `json:"month"`
	Label            string          `json:"label"`
	AverageUnitPrice decimal.Decimal `json:"average_unit_price"`
	UnitMargin       decimal.Decimal `json:"unit_margin"`
	MarginPct        float64         `json:"margin_pct"`
	Quantity         int64           `json:"quantity"`
}

// SKUPricingReport acompanha preço e margem unitária mês a mês.
type SKUPricingReport struct {
	Rows []*PricingRow `json:"rows"`
}

// ShippingRow é um tipo de frete com sua participação nos pedidos.
type ShippingRow struct {
	Method   string          `json:"method"`
	Orders   int             `json:"orders"`
	Quantity int64           `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	SharePct float64         `json:"share_pct"`
}

// ShippingReport é a distribuição de pedidos por tipo de frete.
type ShippingReport struct {
	Rows []*ShippingRow `json:"rows"`
}

// TaxMonthRow é um mês da análise de impostos, com a regra aplicada.
type TaxMonthRow struct {
	Month   string                  `json:"month"`
	Label   string                  `json:"label"`
	Revenue decimal.Decimal         `json:"revenue"`
	Tax     decimal.Decimal         `json:"tax"`
	TaxPct  float64                 `json:"tax_pct"`
	Rule    filtering.InclusionRule `json:"rule"`
	Orders  int                     `json:"orders"`
}

// TaxBreakdownRow é o recorte canal × conta dos impostos.
type TaxBreakdownRow struct {
	Channel string          `json:"channel"`
	Account string          `json:"account"`
	Revenue decimal.Decimal `json:"revenue"`
	Tax     decimal.Decimal `json:"tax"`
	TaxPct  float64         `json:"tax_pct"`
}

// TaxAudit resume quais regras foram aplicadas na análise.
type TaxAudit struct {
	MonthsAllOrders int `json:"months_all_orders"`
	MonthsPaidOnly  int `json:"months_paid_only"`
	OrdersIncluded  int `json:"orders_included"`
	OrdersExcluded  int `json:"orders_excluded"`
}

// TaxReport é a análise de impostos com política mensal condicional.
type TaxReport struct {
	Months    []*TaxMonthRow     `json:"months"`
	Breakdown []*TaxBreakdownRow `json:"breakdown"`
	Audit     *TaxAudit          `json:"audit"`
}

// ReportOptions alimenta os seletores da interface.
type ReportOptions struct {
	Periods  []domain.PeriodMode `json:"periods"`
	Channels []string            `json:"channels"`
	Accounts []string            `json:"accounts"`
	Origins  []string            `json:"origins"`
	Statuses []string            `json:"statuses"`
	Months   []string            `json:"months"`
	MinDate  *time.Time          `json:"min_date,omitempty"`
	MaxDate  *time.Time          `json:"max_date,omitempty"`
}

// SnapshotStatus é o estado da última carga da planilha.
type SnapshotStatus struct {
	SnapshotID  string    `json:"snapshot_id"`
	Source      string    `json:"source"`
	LoadedAt    time.Time `json:"loaded_at"`
	Records     int       `json:"records"`
	TotalRows   int       `json:"total_rows"`
	DroppedRows int       `json:"dropped_rows"`
	Warnings    []string  `json:"warnings,omitempty"`
}
