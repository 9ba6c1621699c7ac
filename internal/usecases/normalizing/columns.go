package normalizing

import "strings"

// Nomes canônicos das colunas da planilha financeira do MercadoTurbo.
// O casamento com o cabeçalho real é feito sem distinguir maiúsculas e
// ignorando espaços nas pontas.
const (
	ColDate           = "Data"
	ColChannel        = "Canal de Venda"
	ColAccount        = "Conta"
	ColSKU            = "SKU"
	ColCode           = "Código"
	ColDescription    = "Descrição do Produto"
	ColOrigin         = "Origem de Aquisição"
	ColStatus         = "Status Pedido"
	ColQuantity       = "Qtd."
	ColUnitPrice      = "Valor Unit."
	ColRevenue        = "Faturamento"
	ColCost           = "Custo (-)"
	ColTax            = "Imposto (-)"
	ColSaleFee        = "Tarifa de Venda (-)"
	ColBuyerShipping  = "Frete Comprador (-)"
	ColSellerShipping = "Frete Vendedor (-)"
	ColMargin         = "Margem Contrib. (=)"
	ColMarginPct      = "MC em %"
	ColSaleID         = "ID da venda"
	ColShipping       = "Frete"
)

// SKUTableColumns é a ordem canônica das colunas exibidas na tabela de
// produtos, usada para preservar a ordem na seleção de colunas.
var SKUTableColumns = []string{
	ColSKU,
	ColDescription,
	ColQuantity,
	ColRevenue,
	ColCost,
	ColTax,
	ColSaleFee,
	ColBuyerShipping,
	ColSellerShipping,
	ColMargin,
	ColMarginPct,
	ColUnitPrice,
}

// columnIndex mapeia nome canônico -> posição no cabeçalho real.
type columnIndex map[string]int

// normalizeHeader prepara uma célula de cabeçalho para comparação.
func normalizeHeader(cell string) string {
	return strings.ToLower(strings.TrimSpace(cell))
}

// isSyntheticHeader identifica colunas artificiais criadas por exports
// (cabeçalho vazio ou "Unnamed: N"), que devem ser descartadas.
func isSyntheticHeader(cell string) bool {
	normalized := normalizeHeader(cell)
	return normalized == "" || strings.HasPrefix(normalized, "unnamed")
}

// buildColumnIndex casa o cabeçalho real com os nomes canônicos.
// Colunas sintéticas não entram no índice; colunas extras desconhecidas
// são simplesmente ignoradas.
func buildColumnIndex(header []string) columnIndex {
	known := []string{
		ColDate, ColChannel, ColAccount, ColSKU, ColCode, ColDescription,
		ColOrigin, ColStatus, ColQuantity, ColUnitPrice, ColRevenue,
		ColCost, ColTax, ColSaleFee, ColBuyerShipping, ColSellerShipping,
		ColMargin, ColMarginPct, ColSaleID, ColShipping,
	}

	byNormalized := make(map[string]string, len(known))
	for _, name := range known {
		byNormalized[normalizeHeader(name)] = name
	}

	index := make(columnIndex)
	for pos, cell := range header {
		if isSyntheticHeader(cell) {
			continue
		}
		if canonical, ok := byNormalized[normalizeHeader(cell)]; ok {
			if _, seen := index[canonical]; !seen {
				index[canonical] = pos
			}
		}
	}

	return index
}

// cell retorna a célula da coluna canônica na linha, ou vazio quando a
// coluna não existe ou a linha é curta.
func (c columnIndex) cell(row []string, column string) string {
	pos, ok := c[column]
	if !ok || pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}
