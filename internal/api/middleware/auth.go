package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/arcana-platform/Arcana-SchedulingService/internal/domain"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	userRoleKey
)

const (
	// HeaderUserID заголовок с ID пользователя, проставляется API-шлюзом
	HeaderUserID = "X-User-ID"
	// HeaderUserRole заголовок с ролью пользователя (client | admin)
	HeaderUserRole = "X-User-Role"
)

// Auth проверяет наличие X-User-ID и кладёт ID и роль в контекст
// Роль по умолчанию client: отсутствие заголовка не повышает права
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(HeaderUserID)
		if rawID == "" {
			http.Error(w, `{"error":"отсутствует заголовок X-User-ID"}`, http.StatusUnauthorized)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			http.Error(w, `{"error":"некорректный заголовок X-User-ID"}`, http.StatusUnauthorized)
			return
		}

		role := domain.RoleClient
		if parsed, ok := domain.ParseActorRole(r.Header.Get(HeaderUserRole)); ok {
			role = parsed
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, userRoleKey, role)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin пропускает только запросы с ролью admin
// Должен стоять после Auth
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := GetUserRole(r.Context())
		if !ok || !role.IsAdmin() {
			http.Error(w, `{"error":"требуются права администратора"}`, http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetUserRole возвращает роль пользователя из контекста
func GetUserRole(ctx context.Context) (domain.ActorRole, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.ActorRole)
	return role, ok
}
