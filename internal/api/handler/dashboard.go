package handler

import (
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/dashboard"
	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
	"github.com/vfg2006/superstore-dashboard/pkg/log"
	"github.com/vfg2006/superstore-dashboard/pkg/utils"
)

// SelectionRequest substitui a seleção inteira da sessão. Listas vazias não filtram
// e datas ausentes usam os limites do dataset.
type SelectionRequest struct {
	Regions   []string       `json:"regions" validate:"omitempty,dive,required"`
	States    []string       `json:"states" validate:"omitempty,dive,required"`
	Cities    []string       `json:"cities" validate:"omitempty,dive,required"`
	StartDate string         `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string         `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Metrics   MetricsRequest `json:"metrics"`
}

type MetricsRequest struct {
	TimeSeries  string `json:"time_series" validate:"omitempty,max=128"`
	ScatterX    string `json:"scatter_x" validate:"omitempty,max=128"`
	ScatterY    string `json:"scatter_y" validate:"omitempty,max=128"`
	ScatterSize string `json:"scatter_size" validate:"omitempty,max=128"`
}

func (req SelectionRequest) toDomain() (domain.FilterSelection, domain.MetricSelection, error) {
	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return domain.FilterSelection{}, domain.MetricSelection{}, err
	}
	end, err := utils.ParseDate(req.EndDate)
	if err != nil {
		return domain.FilterSelection{}, domain.MetricSelection{}, err
	}

	selection := domain.FilterSelection{
		Regions: req.Regions,
		States:  req.States,
		Cities:  req.Cities,
		Start:   start,
		End:     end,
	}
	metrics := domain.MetricSelection{
		TimeSeries:  req.Metrics.TimeSeries,
		ScatterX:    req.Metrics.ScatterX,
		ScatterY:    req.Metrics.ScatterY,
		ScatterSize: req.Metrics.ScatterSize,
	}
	return selection, metrics, nil
}

func GetDashboard(service dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}

		view, err := service.Build(r.Context(), session)
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

func GetFilters(service dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}

		view, err := service.Filters(r.Context(), session)
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

func UpdateSelection(service dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}

		var req SelectionRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		selection, metrics, err := req.toDomain()
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Data inválida", nil)
			return
		}

		view, err := service.UpdateSelection(r.Context(), session, selection, metrics)
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, view)
	}
}

// Download envia um dos CSVs do dashboard como anexo
func Download(service dashboard.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}

		name := httprouter.ParamsFromContext(r.Context()).ByName("name")
		file, err := service.Download(r.Context(), session, name)
		if err != nil {
			handleError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(file.Content); err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("download: erro ao enviar arquivo")
		}
	}
}
