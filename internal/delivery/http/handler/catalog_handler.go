package handler

import (
	"net/http"

	"vetadmin/internal/converter"
	"vetadmin/internal/usecase"
	"vetadmin/pkg/response"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUsecase: catalogUsecase}
}

func (h *CatalogHandler) Specialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.catalogUsecase.Specialties(r.Context())
	if err != nil {
		response.BadGateway(w, "Failed to load specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", converter.SpecialtiesToResponses(specialties))
}

func (h *CatalogHandler) Services(w http.ResponseWriter, r *http.Request) {
	services, err := h.catalogUsecase.Services(r.Context())
	if err != nil {
		response.BadGateway(w, "Failed to load services")
		return
	}

	response.Success(w, http.StatusOK, "Services retrieved successfully", converter.ClinicServicesToResponses(services))
}
