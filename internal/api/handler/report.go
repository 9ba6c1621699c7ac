package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xrack/sales-insights-api/internal/domain"
	"github.com/xrack/sales-insights-api/internal/usecases/reporting"
	"github.com/xrack/sales-insights-api/pkg/apiErrors"
	"github.com/xrack/sales-insights-api/pkg/utils"
)

// parseReportFilters extrai os filtros comuns de relatório da query string.
// Parâmetros aceitos: periodo, data_inicio, data_fim, canal, conta, origem,
// busca, status, metrica, visao.
func parseReportFilters(r *http.Request) (domain.ReportFilters, error) {
	query := r.URL.Query()

	filters := domain.ReportFilters{
		Period:      domain.PeriodMode(query.Get("periodo")),
		Channel:     query.Get("canal"),
		Account:     query.Get("conta"),
		Origin:      query.Get("origem"),
		Search:      query.Get("busca"),
		StatusBasis: domain.StatusBasis(query.Get("status")),
		Metric:      domain.MetricBasis(query.Get("metrica")),
		View:        domain.ViewBy(query.Get("visao")),
	}

	if !filters.Period.Valid() {
		return filters, errors.Errorf("período inválido: %s", filters.Period)
	}
	if !filters.StatusBasis.Valid() {
		return filters, errors.Errorf("status inválido: %s", filters.StatusBasis)
	}
	if !filters.Metric.Valid() {
		return filters, errors.Errorf("métrica inválida: %s", filters.Metric)
	}
	if !filters.View.Valid() {
		return filters, errors.Errorf("visão inválida: %s", filters.View)
	}

	window := &domain.DateRange{}
	if raw := query.Get("data_inicio"); raw != "" {
		start, err := utils.ParseDate(raw)
		if err != nil {
			return filters, errors.Wrap(err, "data_inicio inválida")
		}
		window.Start = start
	}
	if raw := query.Get("data_fim"); raw != "" {
		end, err := utils.ParseDate(raw)
		if err != nil {
			return filters, errors.Wrap(err, "data_fim inválida")
		}
		window.End = end
	}
	if window.Start != nil || window.End != nil {
		filters.Window = window
	}

	return filters, nil
}

// writeReport serializa a resposta ou traduz o erro do serviço em um erro
// de API com código apropriado.
func writeReport(w http.ResponseWriter, payload any, err error) {
	if err != nil {
		if errors.Is(err, reporting.ErrSnapshotUnavailable) {
			apiErrors.WriteError(w, apiErrors.ErrSnapshotUnavailable, err.Error(), nil)
			return
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if encodeErr := json.NewEncoder(w).Encode(payload); encodeErr != nil {
		logrus.WithError(encodeErr).Error("Erro ao serializar resposta de relatório")
	}
}

func GetOverview(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseReportFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		report, err := service.Overview(filters)
		writeReport(w, report, err)
	}
}

func GetChannels(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseReportFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		report, err := service.Channels(filters)
		writeReport(w, report, err)
	}
}

func GetMonthly(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseReportFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		report, err := service.Monthly(filters)
		writeReport(w, report, err)
	}
}

func GetOrigins(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseReportFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		report, err := service.Origins(filters)
		writeReport(w, report, err)
	}
}

func GetDaily(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseReportFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		report, err := service.Daily(filters)
		writeReport(w, report, err)
	}
}

func GetSKUs(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseReportFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		var columns []string
		if raw := r.URL.Query().Get("colunas"); raw != "" {
			for _, c := range strings.Split(raw, ",") {
				if trimmed := strings.TrimSpace(c); trimmed != "" {
					columns = append(columns, trimmed)
				}
			}
		}

		report, err := service.SKUs(filters, columns)
		writeReport(w, report, err)
	}
}

func GetSKUEvolution(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseReportFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		report, err := service.SKUEvolution(filters)
		writeReport(w, report, err)
	}
}

func GetSKUPricing(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseReportFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		report, err := service.SKUPricing(filters)
		writeReport(w, report, err)
	}
}

func GetShipping(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseReportFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		report, err := service.Shipping(filters)
		writeReport(w, report, err)
	}
}

func GetTaxes(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseReportFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
			return
		}

		report, err := service.Taxes(filters)
		writeReport(w, report, err)
	}
}

func GetReportOptions(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.Options()
		writeReport(w, report, err)
	}
}

func GetReportStatus(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report, err := service.Status()
		writeReport(w, report, err)
	}
}
