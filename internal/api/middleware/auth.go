package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

// HeaderStaffID заголовок с идентификатором сотрудника
const HeaderStaffID = "X-Staff-ID"

type staffIDKey struct{}

// Auth требует валидный заголовок X-Staff-ID для операций персонала.
// Идентификация доверенная: сервис живёт за внутренним gateway,
// который уже аутентифицировал сотрудника
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderStaffID)
		if raw == "" {
			respondUnauthorized(w, "требуется заголовок X-Staff-ID")
			return
		}

		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			respondUnauthorized(w, "некорректный заголовок X-Staff-ID")
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey{}, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// StaffIDFromContext возвращает ID сотрудника, положенный Auth middleware
func StaffIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(staffIDKey{}).(int64)
	return id, ok
}

func respondUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
