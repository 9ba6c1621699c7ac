package spreadsheet

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, sheet string, rows [][]interface{}) string {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	if sheet != "Sheet1" {
		_, err := file.NewSheet(sheet)
		require.NoError(t, err)
		require.NoError(t, file.DeleteSheet("Sheet1"))
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, file.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "financeiro.xlsx")
	require.NoError(t, file.SaveAs(path))
	return path
}

func TestXLSXLoaderLoad(t *testing.T) {
	path := writeWorkbook(t, "Financeiro", [][]interface{}{
		{"Data", "Canal de Venda", "Faturamento"},
		{"01/07/2025", "Shopee", "R$ 100,00"},
	})

	table, err := NewXLSXLoader(path, "Financeiro").Load()
	require.NoError(t, err)

	assert.Equal(t, "financeiro.xlsx", table.Source)
	assert.Equal(t, "Financeiro", table.Sheet)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Data", table.Rows[0][0])
	assert.Equal(t, "Shopee", table.Rows[1][1])
}

func TestXLSXLoaderFallsBackToFirstSheet(t *testing.T) {
	path := writeWorkbook(t, "Financeiro", [][]interface{}{
		{"Data"},
	})

	table, err := NewXLSXLoader(path, "Inexistente").Load()
	require.NoError(t, err)
	assert.Equal(t, "Financeiro", table.Sheet)
}

func TestXLSXLoaderMissingFile(t *testing.T) {
	_, err := NewXLSXLoader(filepath.Join(t.TempDir(), "nao-existe.xlsx"), "").Load()

	var unavailable *SourceUnavailableError
	require.ErrorAs(t, err, &unavailable)
}
