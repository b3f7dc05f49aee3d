package handler

import (
	"net/http"

	"github.com/vfg2006/superstore-dashboard/internal/domain"
	"github.com/vfg2006/superstore-dashboard/internal/usecases/authenticating"
	"github.com/vfg2006/superstore-dashboard/pkg/apiErrors"
)

type LogoutResponse struct {
	Authenticated bool `json:"authenticated"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.Credentials
		if !decodeAndValidate(w, r, &req) {
			return
		}

		response, err := service.Login(r.Context(), req)
		if err != nil {
			handleLoginError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, response)
	}
}

// handleLoginError mantém a mensagem genérica para não indicar qual campo estava errado
func handleLoginError(w http.ResponseWriter, r *http.Request, err error) {
	if authenticating.IsCredentialsError(err) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "Usuário ou senha incorretos", nil)
		return
	}

	handleError(w, r, err)
}

// Logout encerra a sessão. O upload e a seleção são descartados e o token deixa de valer.
func Logout(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionOrUnauthorized(w, r)
		if !ok {
			return
		}

		closed, err := service.Logout(r.Context(), session.ID)
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, LogoutResponse{Authenticated: closed.Authenticated})
	}
}
