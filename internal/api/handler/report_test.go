package handler

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xrack/sales-insights-api/internal/domain"
)

func TestParseReportFilters(t *testing.T) {
	t.Run("todos os parâmetros", func(t *testing.T) {
		r := httptest.NewRequest("GET",
			"/v1/report/overview?periodo=personalizado&data_inicio=2025-07-01&data_fim=2025-07-31"+
				"&canal=Mercado%20Livre&conta=Conta%20A&origem=Anuncio&busca=kit&status=aprovados&metrica=margem&visao=codigo",
			nil)

		filters, err := parseReportFilters(r)
		require.NoError(t, err)

		assert.Equal(t, domain.PeriodCustom, filters.Period)
		assert.Equal(t, "Mercado Livre", filters.Channel)
		assert.Equal(t, "Conta A", filters.Account)
		assert.Equal(t, "Anuncio", filters.Origin)
		assert.Equal(t, "kit", filters.Search)
		assert.Equal(t, domain.StatusBasisApproved, filters.StatusBasis)
		assert.Equal(t, domain.MetricMargin, filters.Metric)
		assert.Equal(t, domain.ViewByCode, filters.View)

		require.NotNil(t, filters.Window)
		assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), *filters.Window.Start)
		assert.Equal(t, time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC), *filters.Window.End)
	})

	t.Run("sem parâmetros", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/report/overview", nil)

		filters, err := parseReportFilters(r)
		require.NoError(t, err)
		assert.Nil(t, filters.Window)
		assert.Empty(t, filters.Period)
	})

	t.Run("data no formato brasileiro", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/report/overview?data_inicio=01%2F07%2F2025", nil)

		filters, err := parseReportFilters(r)
		require.NoError(t, err)
		require.NotNil(t, filters.Window)
		assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), *filters.Window.Start)
		assert.Nil(t, filters.Window.End)
	})

	t.Run("período inválido", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/report/overview?periodo=quinzenal", nil)

		_, err := parseReportFilters(r)
		assert.Error(t, err)
	})

	t.Run("data inválida", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/report/overview?data_inicio=ontem", nil)

		_, err := parseReportFilters(r)
		assert.Error(t, err)
	})

	t.Run("status inválido", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/v1/report/overview?status=em-transito", nil)

		_, err := parseReportFilters(r)
		assert.Error(t, err)
	})
}
