package reporting

import (
	"github.com/xrack/sales-insights-api/internal/domain"
)

// Reporter expõe todos os relatórios calculados sobre o snapshot corrente.
type Reporter interface {
	Overview(filters domain.ReportFilters) (*OverviewReport, error)
	Channels(filters domain.ReportFilters) (*ChannelReport, error)
	Monthly(filters domain.ReportFilters) (*MonthlyReport, error)
	Origins(filters domain.ReportFilters) (*OriginReport, error)
	Daily(filters domain.ReportFilters) (*DailyReport, error)
	SKUs(filters domain.ReportFilters, columns []string) (*SKUReport, error)
	SKUEvolution(filters domain.ReportFilters) (*SKUEvolutionReport, error)
	SKUPricing(filters domain.ReportFilters) (*SKUPricingReport, error)
	Shipping(filters domain.ReportFilters) (*ShippingReport, error)
	Taxes(filters domain.ReportFilters) (*TaxReport, error)
	Options() (*ReportOptions, error)
	Status() (*SnapshotStatus, error)
}
