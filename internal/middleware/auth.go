package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/phone-directory-api/internal/auth"
	"github.com/phone-directory-api/internal/authz"
	"github.com/phone-directory-api/internal/domain"
)

type ctxKey int

const (
	ctxKeyActor ctxKey = iota
	ctxKeyClaims
)

// Auth разбирает bearer-токен и кладёт актора политики в контекст запроса.
// Запрос без валидного токена проходит дальше неаутентифицированным:
// решение об отказе принимают обработчики.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			actor := actorFromClaims(claims)
			if actor == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyActor, actor)
			ctx = context.WithValue(ctx, ctxKeyClaims, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// actorFromClaims восстанавливает вариант роли из состава токена
func actorFromClaims(claims *auth.Claims) authz.Actor {
	switch claims.Role {
	case domain.RoleAdmin:
		return authz.Admin{}
	case domain.RoleDepartmentHead:
		return authz.NewDepartmentHead(claims.DepartmentAccess)
	case domain.RoleUser:
		return authz.Member{EmployeeID: claims.EmployeeID}
	}
	return nil
}

// GetActor возвращает актора текущего запроса
func GetActor(ctx context.Context) (authz.Actor, bool) {
	actor, ok := ctx.Value(ctxKeyActor).(authz.Actor)
	return actor, ok
}

// GetClaims возвращает состав токена текущего запроса
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ctxKeyClaims).(*auth.Claims)
	return claims, ok
}
