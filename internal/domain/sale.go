package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Status de pedido reconhecidos na planilha financeira.
const (
	StatusPago      = "Pago"
	StatusCancelado = "Cancelado"
)

// SemDescricao é o valor usado quando a planilha não traz descrição do produto.
const SemDescricao = "Sem descrição"

// SaleRecord representa uma linha normalizada da planilha financeira.
// Os campos monetários usam decimal para evitar erros de ponto flutuante
// na agregação. SKU e Code são sempre texto, mesmo quando parecem números.
type SaleRecord struct {
	SaleID             int             `json:"sale_id"`
	Date               time.Time       `json:"date"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`
	Day                int             `json:"day"`
	Week               int             `json:"week"`
	Channel            string          `json:"channel"`
	Account            string          `json:"account"`
	SKU                string          `json:"sku"`
	Code               string          `json:"code,omitempty"`
	Description        string          `json:"description"`
	AcquisitionOrigin  string          `json:"acquisition_origin,omitempty"`
	Status             string          `json:"status"`
	ShippingMethod     string          `json:"shipping_method,omitempty"`
	Quantity           int64           `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	Revenue            decimal.Decimal `json:"revenue"`
	Cost               decimal.Decimal `json:"cost"`
	Tax                decimal.Decimal `json:"tax"`
	SaleFee            decimal.Decimal `json:"sale_fee"`
	BuyerShipping      decimal.Decimal `json:"buyer_shipping"`
	SellerShipping     decimal.Decimal `json:"seller_shipping"`
	ContributionMargin decimal.Decimal `json:"contribution_margin"`
	MarginPercent      float64         `json:"margin_percent"` // fração 0-1
}

// IsCancelled indica se o pedido foi cancelado.
func (r *SaleRecord) IsCancelled() bool {
	return r.Status == StatusCancelado
}

// IsPaid indica se o pedido está pago (usado pela regra de impostos).
func (r *SaleRecord) IsPaid() bool {
	return r.Status == StatusPago
}

// MonthKey retorna a chave do mês calendário da venda.
func (r *SaleRecord) MonthKey() MonthKey {
	return MonthKey{Year: r.Year, Month: time.Month(r.Month)}
}

// MonthKey identifica um mês calendário de forma ordenável.
type MonthKey struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// String retorna o período no formato "2006-01", igual ao usado nas tabelas
// mensais do dashboard.
func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// Label retorna o período no formato curto "Jan/2006" usado nos gráficos.
func (k MonthKey) Label() string {
	return time.Date(k.Year, k.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan/2006")
}

// Before informa se o mês k antecede o mês other.
func (k MonthKey) Before(other MonthKey) bool {
	if k.Year != other.Year {
		return k.Year < other.Year
	}
	return k.Month < other.Month
}
