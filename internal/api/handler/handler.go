package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/aggregating"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/dashboard"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/loading"
	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
	"github.com/vfg2006/superstore-dashboard/pkg/log"
	"github.com/vfg2006/superstore-dashboard/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var validate = newValidator()

// newValidator usa os nomes das tags json nas mensagens de erro
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decodeAndValidate lê o corpo JSON e aplica as regras das tags validate
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make(map[string]string, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields[fieldErr.Field()] = fieldErr.Tag()
			}
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Dados inválidos", fields)
			return false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.L.WithError(err).Error("handler: erro ao enviar resposta")
	}
}

// sessionOrUnauthorized obtém a sessão do contexto ou responde 401
func sessionOrUnauthorized(w http.ResponseWriter, r *http.Request) (*domain.SessionState, bool) {
	session, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		apiErrors.WriteError(w, apiErrors.ErrSessionNotFound, "Sessão não encontrada", nil)
		return nil, false
	}
	return session, true
}

// handleError traduz os erros tipados dos casos de uso para o código de API
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	var pipelineErr *dashboard.PipelineError
	var loadErr *loading.LoadError
	var stageErr *aggregating.StageError
	var authErr *authenticating.AuthError

	switch {
	case errors.As(err, &pipelineErr):
		apiErrors.WriteError(w, pipelineErr.Code, pipelineErr.Err.Error(), detailsOf(pipelineErr.Stage, pipelineErr.Details))
	case errors.As(err, &loadErr):
		apiErrors.WriteError(w, loadErr.Code, loadErr.Err.Error(), detailsOf(loadErr.Source, loadErr.Details))
	case errors.As(err, &stageErr):
		apiErrors.WriteError(w, stageErr.Code, stageErr.Err.Error(), detailsOf(stageErr.Stage, stageErr.Details))
	case errors.As(err, &authErr):
		apiErrors.WriteError(w, authErr.Code, authErr.Err.Error(), nil)
	default:
		log.ForContext(r.Context()).WithError(err).Error("handler: erro inesperado")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno", nil)
	}
}

func detailsOf(origin string, details string) map[string]string {
	body := map[string]string{"origin": origin}
	if details != "" {
		body["details"] = details
	}
	return body
}
