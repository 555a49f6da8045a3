package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"vetadmin/internal/converter"
	"vetadmin/internal/delivery/dto"
	"vetadmin/internal/domain/entity"
	"vetadmin/internal/usecase"
	"vetadmin/pkg/response"

	"github.com/gorilla/mux"
)

var rolePathNames = map[string]entity.Role{
	"veterinarians":  entity.RoleVeterinarian,
	"receptionists":  entity.RoleReceptionist,
	"administrators": entity.RoleAdministrator,
}

// StaffHandler serves all three staff-management call sites through the one
// parameterized provisioning protocol.
type StaffHandler struct {
	staffUsecase usecase.StaffUsecase
}

func NewStaffHandler(staffUsecase usecase.StaffUsecase) *StaffHandler {
	return &StaffHandler{staffUsecase: staffUsecase}
}

func (h *StaffHandler) Provision(w http.ResponseWriter, r *http.Request) {
	role, ok := rolePathNames[mux.Vars(r)["role"]]
	if !ok {
		response.NotFound(w, "Unknown staff role")
		return
	}

	var req dto.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	staff, err := h.staffUsecase.Provision(r.Context(), role, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusCreated, "Staff member created successfully", staff)
}

func (h *StaffHandler) Get(w http.ResponseWriter, r *http.Request) {
	role, id, ok := h.target(w, r)
	if !ok {
		return
	}

	staff, err := h.staffUsecase.Get(r.Context(), role, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Staff member retrieved successfully", staff)
}

func (h *StaffHandler) List(w http.ResponseWriter, r *http.Request) {
	role, ok := rolePathNames[mux.Vars(r)["role"]]
	if !ok {
		response.NotFound(w, "Unknown staff role")
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("per_page"))

	staffPage, err := h.staffUsecase.List(r.Context(), role, usecase.StaffListQuery{
		Page:    page,
		PerPage: perPage,
		Shift:   query.Get("shift"),
		Search:  query.Get("search"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = 10
	}

	// Totals come from the clinic API and are intentionally not adjusted for
	// rows removed by search narrowing or the status filter.
	response.SuccessWithMeta(w, http.StatusOK, "Staff retrieved successfully",
		dto.StaffListResponse{Staff: converter.EnrichedStaffToResponses(staffPage.Items)},
		&response.Meta{
			Page:       page,
			Limit:      perPage,
			Total:      staffPage.Total,
			TotalPages: staffPage.TotalPages,
		})
}

func (h *StaffHandler) Update(w http.ResponseWriter, r *http.Request) {
	role, id, ok := h.target(w, r)
	if !ok {
		return
	}

	var req dto.UpdateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.staffUsecase.Update(r.Context(), role, id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.Success(w, http.StatusOK, "Staff member updated", result)
}

func (h *StaffHandler) Remove(w http.ResponseWriter, r *http.Request) {
	role, id, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.staffUsecase.Remove(r.Context(), role, id); err != nil {
		h.writeError(w, err)
		return
	}

	message := "Staff member deactivated"
	if role == entity.RoleAdministrator {
		message = "Administrator permanently deleted"
	}
	response.Success(w, http.StatusOK, message, nil)
}

func (h *StaffHandler) target(w http.ResponseWriter, r *http.Request) (entity.Role, int64, bool) {
	vars := mux.Vars(r)

	role, ok := rolePathNames[vars["role"]]
	if !ok {
		response.NotFound(w, "Unknown staff role")
		return "", 0, false
	}

	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid staff ID", nil)
		return "", 0, false
	}

	return role, id, true
}

// writeError maps protocol outcomes onto the response envelope. Step errors
// keep the failed step visible so the panel can explain that a partial record
// may exist after a failed second phase.
func (h *StaffHandler) writeError(w http.ResponseWriter, err error) {
	var verr *usecase.ValidationError
	if errors.As(err, &verr) {
		response.ValidationError(w, verr.Fields)
		return
	}

	var serr *usecase.StepError
	if errors.As(err, &serr) {
		detail := map[string]interface{}{"step": string(serr.Step)}
		if serr.OrphanAccountID != 0 {
			detail["orphan_account_id"] = serr.OrphanAccountID
		}
		response.Error(w, http.StatusBadGateway, serr.Err.Error(), detail)
		return
	}

	switch err {
	case usecase.ErrStaffNotFound:
		response.NotFound(w, "Staff member not found")
	case usecase.ErrUnknownRole:
		response.Error(w, http.StatusBadRequest, "Unknown staff role", nil)
	default:
		response.InternalServerError(w, "Failed to process staff request")
	}
}
