package handler

import (
	"net/http"

	"github.com/vfg2006/superstore-dashboard/internal/api/handler/router"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/dashboard"
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

// Metrics expõe o handler do Prometheus
func Metrics(handler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: handler,
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
			Path:    "/v1/logout",
			Method:  http.MethodPost,
			Handler: Logout(service),
		},
	}
}

func Dataset(service dashboard.Service, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dataset",
			Method:  http.MethodPost,
			Handler: UploadDataset(service, maxUploadBytes),
		},
		{
			Path:    "/v1/dataset",
			Method:  http.MethodDelete,
			Handler: ClearDataset(service),
		},
	}
}

func Dashboard(service dashboard.Service) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/filters",
			Method:  http.MethodGet,
			Handler: GetFilters(service),
		},
		{
			Path:    "/v1/selection",
			Method:  http.MethodPut,
			Handler: UpdateSelection(service),
		},
		{
			Path:    "/v1/dashboard",
			Method:  http.MethodGet,
			Handler: GetDashboard(service),
		},
		{
			Path:    "/v1/downloads/:name",
			Method:  http.MethodGet,
			Handler: Download(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/run/:type",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
