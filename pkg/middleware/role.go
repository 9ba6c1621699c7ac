package middleware

import (
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/xrack/sales-insights-api/internal/domain"
	"github.com/xrack/sales-insights-api/pkg/apiErrors"
)

// Authenticated garante que a rota só é servida com um usuário válido no
// contexto. O AuthMiddleware já validou o token; aqui apenas reforçamos a
// presença das claims para rotas que dependem delas.
func Authenticated() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Obter claims do usuário do contexto
			userClaims, ok := r.Context().Value(ContextKeyUser).(*domain.Claims)
			if !ok || userClaims == nil {
				logrus.Warning("Tentativa de acesso sem autenticação")
				apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
