package http

import (
	"errors"
	"net/http"

	"edublog/internal/domain"
	"edublog/internal/httpx"
	"edublog/internal/observability/middleware"
)

const (
	msgMissingToken    = "Token não fornecido"
	msgInvalidToken    = "Token inválido"
	msgInvalidSession  = "Sessão inválida"
	msgExpiredSession  = "Sessão expirada"
	msgUnauthenticated = "Usuário não autenticado"
	msgForbidden       = "Acesso negado. Permissão insuficiente."
	msgEmailUnknown    = "Email não cadastrado"
	msgPostNotFound    = "Post não encontrado"
	msgRouteNotFound   = "Rota não encontrada"
	msgMethodNotAllow  = "Método não permitido"
	msgInternal        = "Erro interno do servidor"
	msgBadBody         = "Corpo da requisição inválido"
	msgTooManyLogins   = "Muitas tentativas de login. Tente novamente mais tarde."

	msgDisciplineInvalid = "ID da disciplina deve ser um UUID válido"
)

type forbiddenBody struct {
	Error    string        `json:"error"`
	Required []domain.Role `json:"required"`
	Current  domain.Role   `json:"current"`
}

// writeError maps a service error to its status code and public message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *domain.ValidationError
		fe *domain.ForbiddenError
	)
	switch {
	case errors.As(err, &ve):
		httpx.WriteError(w, http.StatusBadRequest, ve.Message)
	case errors.As(err, &fe):
		httpx.WriteJSON(w, http.StatusForbidden, forbiddenBody{Error: msgForbidden, Required: fe.Required, Current: fe.Current})
	case errors.Is(err, httpx.ErrBadJSON):
		httpx.WriteError(w, http.StatusBadRequest, msgBadBody)
	case errors.Is(err, domain.ErrMissingToken):
		httpx.WriteError(w, http.StatusUnauthorized, msgMissingToken)
	case errors.Is(err, domain.ErrInvalidToken):
		httpx.WriteError(w, http.StatusUnauthorized, msgInvalidToken)
	case errors.Is(err, domain.ErrInvalidSession):
		httpx.WriteError(w, http.StatusUnauthorized, msgInvalidSession)
	case errors.Is(err, domain.ErrExpiredSession):
		httpx.WriteError(w, http.StatusUnauthorized, msgExpiredSession)
	case errors.Is(err, domain.ErrUnauthenticated):
		httpx.WriteError(w, http.StatusUnauthorized, msgUnauthenticated)
	case errors.Is(err, domain.ErrEmailNotRegistered):
		httpx.WriteError(w, http.StatusNotFound, msgEmailUnknown)
	case errors.Is(err, domain.ErrPostNotFound):
		httpx.WriteError(w, http.StatusNotFound, msgPostNotFound)
	default:
		middleware.Logger(r.Context()).Error("unhandled error",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		httpx.WriteError(w, http.StatusInternalServerError, msgInternal)
	}
}
