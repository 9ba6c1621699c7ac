package normalizing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/xrack/sales-insights-api/internal/domain"
)

// headerScanRows é quantas linhas iniciais são inspecionadas à procura do
// cabeçalho real. Exports do MercadoTurbo costumam trazer linhas de título
// antes da tabela.
const headerScanRows = 5

// Normalizer transforma a tabela bruta da planilha no snapshot canônico.
type Normalizer interface {
	BuildSnapshot(table *domain.RawTable) (*domain.Snapshot, error)
}

type Service struct {
	scanRows int
}

// NewService cria o normalizador. scanRows <= 0 usa o padrão de 5 linhas.
func NewService(scanRows int) *Service {
	if scanRows <= 0 {
		scanRows = headerScanRows
	}
	return &Service{scanRows: scanRows}
}

// BuildSnapshot normaliza todas as linhas da tabela. Linhas sem data válida
// são descartadas com aviso; a carga só falha quando a planilha não tem
// coluna de data (SchemaError) ou nenhuma linha aproveitável (DataError).
// O snapshot retornado é imutável: recargas geram um snapshot novo.
func (s *Service) BuildSnapshot(table *domain.RawTable) (*domain.Snapshot, error) {
	if table == nil || len(table.Rows) == 0 {
		return nil, &DataError{Source: sourceName(table), Reason: "planilha vazia"}
	}

	headerRow := s.findHeaderRow(table.Rows)
	if headerRow < 0 {
		return nil, &SchemaError{
			Source: table.Source,
			Reason: fmt.Sprintf("coluna %q não encontrada nas primeiras %d linhas", ColDate, s.scanRows),
		}
	}

	index := buildColumnIndex(table.Rows[headerRow])

	snapshot := &domain.Snapshot{
		ID:       uuid.NewString(),
		Source:   table.Source,
		LoadedAt: time.Now().UTC(),
	}

	hasSaleID := false
	if _, ok := index[ColSaleID]; ok {
		hasSaleID = true
	}

	nextID := 1
	for _, row := range table.Rows[headerRow+1:] {
		if isBlankRow(row) {
			continue
		}
		snapshot.TotalRows++

		record, ok := s.buildRecord(index, row, hasSaleID, &nextID)
		if !ok {
			snapshot.DroppedRows++
			continue
		}

		snapshot.Records = append(snapshot.Records, record)
	}

	if snapshot.DroppedRows > 0 {
		snapshot.Warnings = append(snapshot.Warnings, fmt.Sprintf(
			"%d linha(s) descartada(s) por data ausente ou inválida", snapshot.DroppedRows,
		))
		logrus.WithFields(logrus.Fields{
			"source":  table.Source,
			"dropped": snapshot.DroppedRows,
		}).Warn("Linhas descartadas durante a normalização da planilha")
	}

	if len(snapshot.Records) == 0 {
		return nil, &DataError{Source: table.Source, Reason: "nenhuma linha com data válida"}
	}

	return snapshot, nil
}

// findHeaderRow procura, nas primeiras linhas, a linha cujo cabeçalho
// contém a coluna de data. Retorna -1 quando não encontra.
func (s *Service) findHeaderRow(rows [][]string) int {
	limit := s.scanRows
	if limit > len(rows) {
		limit = len(rows)
	}

	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			if normalizeHeader(cell) == normalizeHeader(ColDate) {
				return i
			}
		}
	}

	return -1
}

func (s *Service) buildRecord(index columnIndex, row []string, hasSaleID bool, nextID *int) (*domain.SaleRecord, bool) {
	date, ok := ParseDate(index.cell(row, ColDate))
	if !ok {
		return nil, false
	}

	_, week := date.ISOWeek()

	record := &domain.SaleRecord{
		Date:               date,
		Year:               date.Year(),
		Month:              int(date.Month()),
		Day:                date.Day(),
		Week:               week,
		Channel:            index.cell(row, ColChannel),
		Account:            index.cell(row, ColAccount),
		SKU:                index.cell(row, ColSKU),
		Code:               index.cell(row, ColCode),
		Description:        index.cell(row, ColDescription),
		AcquisitionOrigin:  index.cell(row, ColOrigin),
		Status:             index.cell(row, ColStatus),
		ShippingMethod:     index.cell(row, ColShipping),
		Quantity:           ParseQuantity(index.cell(row, ColQuantity)),
		UnitPrice:          ParseMoney(index.cell(row, ColUnitPrice)),
		Revenue:            ParseMoney(index.cell(row, ColRevenue)),
		Cost:               ParseMoney(index.cell(row, ColCost)),
		Tax:                ParseMoney(index.cell(row, ColTax)),
		SaleFee:            ParseMoney(index.cell(row, ColSaleFee)),
		BuyerShipping:      ParseMoney(index.cell(row, ColBuyerShipping)),
		SellerShipping:     ParseMoney(index.cell(row, ColSellerShipping)),
		ContributionMargin: ParseMoney(index.cell(row, ColMargin)),
		MarginPercent:      ParsePercent(index.cell(row, ColMarginPct)),
	}

	if record.Description == "" {
		record.Description = domain.SemDescricao
	}

	if hasSaleID {
		record.SaleID = parseSaleID(index.cell(row, ColSaleID), nextID)
	} else {
		record.SaleID = *nextID
		*nextID++
	}

	return record, true
}

// parseSaleID aproveita o ID vindo da planilha quando é numérico; caso
// contrário sintetiza um sequencial, mantendo a unicidade dentro da carga.
func parseSaleID(raw string, nextID *int) int {
	if raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			if id >= *nextID {
				*nextID = id + 1
			}
			return id
		}
	}

	id := *nextID
	*nextID++
	return id
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func sourceName(table *domain.RawTable) string {
	if table == nil {
		return "desconhecida"
	}
	return table.Source
}
