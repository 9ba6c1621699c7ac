package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/xrack/sales-insights-api/infrastructure/spreadsheet"
	"github.com/xrack/sales-insights-api/internal/scheduler"
	"github.com/xrack/sales-insights-api/internal/usecases/normalizing"
	"github.com/xrack/sales-insights-api/pkg/apiErrors"
)

// ReloadReport dispara a recarga da planilha financeira. Por padrão a
// recarga roda em segundo plano e a resposta é 202; com aguardar=true a
// recarga roda na própria requisição e falhas de carga voltam com o
// código de erro correspondente.
func ReloadReport(service *scheduler.ReportReloadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - ReloadReport")

		if r.URL.Query().Get("aguardar") == "true" {
			if err := service.ReloadNow(); err != nil {
				writeReloadError(w, err)
				return
			}

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"message": "Recarga da planilha concluída",
			})
			return
		}

		service.TriggerManualSync()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"message": "Recarga da planilha iniciada",
		})
	}
}

// GetSyncStatus retorna o estado do agendador de recarga.
func GetSyncStatus(service *scheduler.ReportReloadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(service.GetStatus())
	}
}

// writeReloadError traduz os erros tipados da carga nos códigos da API.
func writeReloadError(w http.ResponseWriter, err error) {
	var schemaErr *normalizing.SchemaError
	var dataErr *normalizing.DataError
	var sourceErr *spreadsheet.SourceUnavailableError

	switch {
	case errors.As(err, &schemaErr):
		apiErrors.WriteError(w, apiErrors.ErrReportSchema, err.Error(), nil)
	case errors.As(err, &dataErr):
		apiErrors.WriteError(w, apiErrors.ErrReportData, err.Error(), nil)
	case errors.As(err, &sourceErr):
		apiErrors.WriteError(w, apiErrors.ErrReportSource, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, err.Error(), nil)
	}
}
