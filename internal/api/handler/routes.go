package handler

import (
	"net/http"

	"github.com/xrack/sales-insights-api/internal/api/handler/router"
	"github.com/xrack/sales-insights-api/internal/scheduler"
	"github.com/xrack/sales-insights-api/internal/usecases/authenticating"
	"github.com/xrack/sales-insights-api/internal/usecases/reporting"
	"github.com/xrack/sales-insights-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.Authenticated()},
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	authenticated := []func(http.Handler) http.Handler{middleware.Authenticated()}

	return []router.Route{
		{
			Path:        "/v1/report/overview",
			Method:      http.MethodGet,
			Handler:     GetOverview(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/channels",
			Method:      http.MethodGet,
			Handler:     GetChannels(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/monthly",
			Method:      http.MethodGet,
			Handler:     GetMonthly(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/origins",
			Method:      http.MethodGet,
			Handler:     GetOrigins(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/daily",
			Method:      http.MethodGet,
			Handler:     GetDaily(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/skus",
			Method:      http.MethodGet,
			Handler:     GetSKUs(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/skus/evolution",
			Method:      http.MethodGet,
			Handler:     GetSKUEvolution(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/skus/pricing",
			Method:      http.MethodGet,
			Handler:     GetSKUPricing(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/shipping",
			Method:      http.MethodGet,
			Handler:     GetShipping(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/taxes",
			Method:      http.MethodGet,
			Handler:     GetTaxes(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/options",
			Method:      http.MethodGet,
			Handler:     GetReportOptions(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/status",
			Method:      http.MethodGet,
			Handler:     GetReportStatus(service),
			Middlewares: authenticated,
		},
	}
}

func Sync(service *scheduler.ReportReloadService) []router.Route {
	authenticated := []func(http.Handler) http.Handler{middleware.Authenticated()}

	return []router.Route{
		{
			Path:        "/v1/report/reload",
			Method:      http.MethodPost,
			Handler:     ReloadReport(service),
			Middlewares: authenticated,
		},
		{
			Path:        "/v1/report/sync-status",
			Method:      http.MethodGet,
			Handler:     GetSyncStatus(service),
			Middlewares: authenticated,
		},
	}
}
