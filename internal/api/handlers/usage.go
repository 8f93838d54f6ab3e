package handlers

import (
	"net/http"

	"github.com/speech-subs/backend/internal/api/middleware"
	"github.com/speech-subs/backend/internal/db"
)

type UsageHandler struct {
	db *db.Database
}

func NewUsageHandler(database *db.Database) *UsageHandler {
	return &UsageHandler{db: database}
}

// GetUsage returns the caller's conversion quota status.
func (h *UsageHandler) GetUsage(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.db.GetUserByID(claims.UserID)
	if err != nil {
		jsonError(w, "user not found", http.StatusNotFound)
		return
	}

	limit := db.FreeConversionLimit
	if user.Role == "admin" {
		limit = -1 // unlimited
	}

	jsonResponse(w, map[string]interface{}{
		"conversions_used":   user.ConversionsUsed,
		"limit":              limit,
		"can_convert":        h.db.CanConvert(user),
		"last_conversion_at": user.LastConversionAt,
	}, http.StatusOK)
}
