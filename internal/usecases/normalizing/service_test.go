package normalizing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xrack/sales-insights-api/internal/domain"
)

func rawTable(rows [][]string) *domain.RawTable {
	return &domain.RawTable{Source: "financeiro.xlsx", Sheet: "Planilha1", Rows: rows}
}

var standardHeader = []string{
	"Data", "Canal de Venda", "Conta", "SKU", "Descrição do Produto",
	"Status Pedido", "Qtd.", "Valor Unit.", "Faturamento", "Margem Contrib. (=)",
	"MC em %",
}

func TestBuildSnapshot(t *testing.T) {
	service := NewService(0)

	table := rawTable([][]string{
		standardHeader,
		{"01/07/2025", "Mercado Livre", "XRack", "0042", "Suporte TV", "Pago", "2", "R$ 50,00", "R$ 100,00", "R$ 30,00", "30%"},
		{"02/07/2025", "Shopee", "EvolutionX", "AB-1", "", "Cancelado", "1", "R$ 200,00", "R$ 200,00", "R$ 80,00", "0.4"},
	})

	snapshot, err := service.BuildSnapshot(table)
	require.NoError(t, err)
	require.Len(t, snapshot.Records, 2)

	first := snapshot.Records[0]
	assert.Equal(t, 2025, first.Year)
	assert.Equal(t, 7, first.Month)
	assert.Equal(t, 1, first.Day)
	assert.Equal(t, 27, first.Week) // semana ISO de 01/07/2025
	assert.Equal(t, "Mercado Livre", first.Channel)
	// SKU é texto: zeros à esquerda são preservados.
	assert.Equal(t, "0042", first.SKU)
	assert.Equal(t, "100", first.Revenue.String())
	assert.InDelta(t, 0.30, first.MarginPercent, 0.0001)

	second := snapshot.Records[1]
	assert.Equal(t, domain.SemDescricao, second.Description)
	assert.InDelta(t, 0.40, second.MarginPercent, 0.0001)

	// IDs sintéticos sequenciais quando a planilha não traz "ID da venda".
	assert.Equal(t, 1, first.SaleID)
	assert.Equal(t, 2, second.SaleID)

	assert.NotEmpty(t, snapshot.ID)
	assert.Equal(t, "financeiro.xlsx", snapshot.Source)
	assert.Equal(t, 2, snapshot.TotalRows)
	assert.Zero(t, snapshot.DroppedRows)
}

func TestBuildSnapshotHeaderAfterTitleRows(t *testing.T) {
	service := NewService(0)

	table := rawTable([][]string{
		{"Relatório Financeiro"},
		{""},
		standardHeader,
		{"01/07/2025", "Shopee", "XRack", "S1", "Produto", "Pago", "1", "10", "10", "3", "30%"},
	})

	snapshot, err := service.BuildSnapshot(table)
	require.NoError(t, err)
	assert.Len(t, snapshot.Records, 1)
}

func TestBuildSnapshotPrunesSyntheticColumns(t *testing.T) {
	service := NewService(0)

	header := append([]string{"Unnamed: 0"}, standardHeader...)
	header = append(header, "Unnamed: 12", "")

	row := append([]string{"lixo"},
		"01/07/2025", "Shopee", "XRack", "S1", "Produto", "Pago", "1", "10", "10", "3", "30%")
	row = append(row, "x", "y")

	snapshot, err := service.BuildSnapshot(rawTable([][]string{header, row}))
	require.NoError(t, err)
	require.Len(t, snapshot.Records, 1)

	record := snapshot.Records[0]
	assert.Equal(t, "Shopee", record.Channel)
	assert.Equal(t, "10", record.Revenue.String())
}

func TestBuildSnapshotDropsRowsWithoutDate(t *testing.T) {
	service := NewService(0)

	table := rawTable([][]string{
		standardHeader,
		{"01/07/2025", "Shopee", "XRack", "S1", "P", "Pago", "1", "10", "10", "3", "30%"},
		{"", "Shopee", "XRack", "S2", "P", "Pago", "1", "10", "10", "3", "30%"},
		{"data inválida", "Shopee", "XRack", "S3", "P", "Pago", "1", "10", "10", "3", "30%"},
	})

	snapshot, err := service.BuildSnapshot(table)
	require.NoError(t, err)
	assert.Len(t, snapshot.Records, 1)
	assert.Equal(t, 3, snapshot.TotalRows)
	assert.Equal(t, 2, snapshot.DroppedRows)
	require.Len(t, snapshot.Warnings, 1)
	assert.Contains(t, snapshot.Warnings[0], "2 linha(s) descartada(s)")
}

func TestBuildSnapshotSchemaError(t *testing.T) {
	service := NewService(0)

	table := rawTable([][]string{
		{"Coluna A", "Coluna B"},
		{"1", "2"},
	})

	snapshot, err := service.BuildSnapshot(table)
	assert.Nil(t, snapshot)

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "financeiro.xlsx", schemaErr.Source)
}

func TestBuildSnapshotDataError(t *testing.T) {
	service := NewService(0)

	table := rawTable([][]string{
		standardHeader,
		{"sem data", "Shopee", "XRack", "S1", "P", "Pago", "1", "10", "10", "3", "30%"},
	})

	snapshot, err := service.BuildSnapshot(table)
	assert.Nil(t, snapshot)

	var dataErr *DataError
	require.ErrorAs(t, err, &dataErr)
}

func TestBuildSnapshotKeepsSaleIDFromSheet(t *testing.T) {
	service := NewService(0)

	header := append([]string{"ID da venda"}, standardHeader...)
	table := rawTable([][]string{
		header,
		append([]string{"10"}, "01/07/2025", "Shopee", "XRack", "S1", "P", "Pago", "1", "10", "10", "3", "30%"),
		append([]string{""}, "02/07/2025", "Shopee", "XRack", "S2", "P", "Pago", "1", "10", "10", "3", "30%"),
	})

	snapshot, err := service.BuildSnapshot(table)
	require.NoError(t, err)
	require.Len(t, snapshot.Records, 2)

	assert.Equal(t, 10, snapshot.Records[0].SaleID)
	// Sem ID na célula, o sequencial continua depois do maior ID visto.
	assert.Equal(t, 11, snapshot.Records[1].SaleID)
}
