package normalizing

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseMoney converte um valor monetário da planilha em decimal. Aceita
// tanto células já numéricas ("1234.56") quanto o formato brasileiro
// ("R$ 1.234,56"). A tentativa numérica vem primeiro: remover os pontos
// de um valor já limpo corromperia o número, então a limpeza brasileira
// só roda quando a conversão direta falha. Valores vazios ou ilegíveis
// viram zero.
func ParseMoney(raw string) decimal.Decimal {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, "nan") {
		return decimal.Zero
	}

	if parsed, err := decimal.NewFromString(value); err == nil {
		return parsed
	}

	cleaned := strings.ReplaceAll(value, "R$", "")
	cleaned = strings.TrimSpace(cleaned)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}

	return parsed
}

// ParsePercent converte a coluna "MC em %" em fração (0.455 para 45,5%).
// Células em texto vêm como "45,5%"; células já numéricas vêm como fração
// entre 0 e 1 e passam direto. Ilegível vira zero.
func ParsePercent(raw string) float64 {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, "nan") {
		return 0
	}

	if strings.Contains(value, "%") {
		cleaned := strings.ReplaceAll(value, "%", "")
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
		cleaned = strings.TrimSpace(cleaned)

		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0
		}
		return parsed / 100
	}

	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return 0
	}

	return parsed
}

// ParseQuantity converte a quantidade vendida. A planilha às vezes traz
// a célula como "2.0"; o valor é truncado para inteiro. Ilegível vira zero.
func ParseQuantity(raw string) int64 {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0
	}

	if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
		return parsed
	}

	parsed, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64)
	if err != nil {
		return 0
	}

	return int64(parsed)
}

// Formatos de data aceitos, sempre com o dia primeiro como no export
// brasileiro. O formato ISO fica por último para células já convertidas.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02-01-2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseDate converte a célula de data da planilha. Retorna ok=false para
// células vazias ou em formato irreconhecível; essas linhas são descartadas
// com aviso, nunca com erro fatal.
func ParseDate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" || strings.EqualFold(value, "nat") || strings.EqualFold(value, "nan") {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}
