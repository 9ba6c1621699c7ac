package reporting

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xrack/sales-insights-api/internal/domain"
)

// PivotColumn é uma coluna-folha do relatório diário: um par canal × conta
// realmente presente nos dados.
type PivotColumn struct {
	Channel string `json:"channel"`
	Account string `json:"account"`
}

// DailyPivotRow é um dia do relatório: os valores das colunas-folha, os
// subtotais por canal e o total geral do dia.
type DailyPivotRow struct {
	Day           string                     `json:"day"`
	Values        []decimal.Decimal          `json:"values"`
	ChannelTotals map[string]decimal.Decimal `json:"channel_totals"`
	Total         decimal.Decimal            `json:"total"`
}

// DailyPivotReport é a tabela dinâmica diária (quantidade ou faturamento)
// por canal × conta.
type DailyPivotReport struct {
	Metric   string          `json:"metric"`
	Columns  []PivotColumn   `json:"columns"`
	Channels []string        `json:"channels"`
	Rows     []DailyPivotRow `json:"rows"`
	Totals   DailyPivotRow   `json:"totals"`
}

// BuildDailyPivot monta a tabela dinâmica diária. O total geral de cada
// linha soma apenas as colunas-folha originais; os subtotais por canal são
// colunas derivadas e ficam de fora da soma para não contar duas vezes.
func BuildDailyPivot(records []*domain.SaleRecord, metric string, valueOf func(*domain.SaleRecord) decimal.Decimal) *DailyPivotReport {
	type leaf struct {
		channel string
		account string
	}

	leaves := make(map[leaf]struct{})
	days := make(map[string]struct{})
	cells := make(map[string]map[leaf]decimal.Decimal)

	for _, r := range records {
		l := leaf{channel: r.Channel, account: r.Account}
		day := r.Date.Format("2006-01-02")

		leaves[l] = struct{}{}
		days[day] = struct{}{}

		if cells[day] == nil {
			cells[day] = make(map[leaf]decimal.Decimal)
		}
		cells[day][l] = cells[day][l].Add(valueOf(r))
	}

	columns := make([]PivotColumn, 0, len(leaves))
	for l := range leaves {
		columns = append(columns, PivotColumn{Channel: l.channel, Account: l.account})
	}
	sort.Slice(columns, func(i, j int) bool {
		if columns[i].Channel != columns[j].Channel {
			return columns[i].Channel < columns[j].Channel
		}
		return columns[i].Account < columns[j].Account
	})

	channels := make([]string, 0)
	seenChannels := make(map[string]struct{})
	for _, c := range columns {
		if _, ok := seenChannels[c.Channel]; !ok {
			seenChannels[c.Channel] = struct{}{}
			channels = append(channels, c.Channel)
		}
	}

	orderedDays := make([]string, 0, len(days))
	for d := range days {
		orderedDays = append(orderedDays, d)
	}
	sort.Strings(orderedDays)

	report := &DailyPivotReport{
		Metric:   metric,
		Columns:  columns,
		Channels: channels,
		Rows:     make([]DailyPivotRow, 0, len(orderedDays)),
	}

	totals := DailyPivotRow{
		Day:           "Total Geral",
		Values:        make([]decimal.Decimal, len(columns)),
		ChannelTotals: make(map[string]decimal.Decimal, len(channels)),
	}

	for _, day := range orderedDays {
		row := DailyPivotRow{
			Day:           day,
			Values:        make([]decimal.Decimal, len(columns)),
			ChannelTotals: make(map[string]decimal.Decimal, len(channels)),
		}

		for i, col := range columns {
			value := cells[day][leaf{channel: col.Channel, account: col.Account}]
			row.Values[i] = value
			row.ChannelTotals[col.Channel] = row.ChannelTotals[col.Channel].Add(value)
			row.Total = row.Total.Add(value)

			totals.Values[i] = totals.Values[i].Add(value)
			totals.ChannelTotals[col.Channel] = totals.ChannelTotals[col.Channel].Add(value)
			totals.Total = totals.Total.Add(value)
		}

		report.Rows = append(report.Rows, row)
	}

	report.Totals = totals
	return report
}
