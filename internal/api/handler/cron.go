package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
	"github.com/vfg2006/superstore-dashboard/pkg/log"
)

const CronJobTypeSessionSweep = "session-sweep"

// SessionSweeper é a parte do agendador de limpeza usada pela API
type SessionSweeper interface {
	TriggerManualSweep(ctx context.Context) int
	GetStatus() map[string]any
}

// CronJobServices contém os jobs que podem ser executados manualmente
type CronJobServices struct {
	SessionSweeper SessionSweeper
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")

		switch cronType {
		case CronJobTypeSessionSweep:
			if services.SessionSweeper == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de limpeza de sessões não disponível", nil)
				return
			}

			removed := services.SessionSweeper.TriggerManualSweep(r.Context())
			log.ForContext(r.Context()).Infof("cron: limpeza manual removeu %d sessões", removed)

			writeJSON(w, http.StatusOK, map[string]any{
				"message": "Cron job executada com sucesso",
				"type":    cronType,
				"removed": removed,
			})
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: "+CronJobTypeSessionSweep, nil)
		}
	}
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := map[string]any{}
		if services.SessionSweeper != nil {
			status[CronJobTypeSessionSweep] = services.SessionSweeper.GetStatus()
		}

		writeJSON(w, http.StatusOK, status)
	}
}
