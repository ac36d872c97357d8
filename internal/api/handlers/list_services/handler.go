package list_services

import (
	"net/http"

	"github.com/vmrkv/CST-BookingService/internal/api/handlers"
)

type Handler struct {
	catalogRepo CatalogRepository
	logger      Logger
}

func NewHandler(catalogRepo CatalogRepository, logger Logger) *Handler {
	return &Handler{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogRepo.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services fetched: count=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, FromDomainServices(services))
}
