package handler

import (
	"net/http"

	marriagedomain "family-tree-go/internal/domain/marriage"
	"github.com/go-chi/chi/v5"
)

type createMarriageRequest struct {
	HusbandID   string `json:"husbandId"`
	WifeID      string `json:"wifeId"`
	MarriedDate string `json:"marriedDate"`
}

type updateMarriageRequest struct {
	IsDivorced   *bool   `json:"isDivorced"`
	MarriedDate  *string `json:"marriedDate"`
	DivorcedDate *string `json:"divorcedDate"`
}

func (h *Handlers) CreateMarriage(w http.ResponseWriter, r *http.Request) {
	var req createMarriageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.HusbandID == "" || req.WifeID == "" {
		writeError(w, http.StatusBadRequest, "husbandId and wifeId are required")
		return
	}

	married, err := parseDateParam(req.MarriedDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid marriedDate")
		return
	}

	result, err := h.Marriages.CreateMarriage(r.Context(), marriagedomain.CreateInput{
		HusbandID:   req.HusbandID,
		WifeID:      req.WifeID,
		MarriedDate: married,
	})
	if err != nil {
		h.writeMemberError(w, "marriages.create", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) GetMarriage(w http.ResponseWriter, r *http.Request) {
	result, err := h.Marriages.GetMarriageByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeMemberError(w, "marriages.get", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) ListMarriages(w http.ResponseWriter, r *http.Request) {
	result, err := h.Marriages.ListMarriages(r.Context())
	if err != nil {
		h.log.InternalError("marriages.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) UpdateMarriage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateMarriageRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	married, err := parseOptionalDate(req.MarriedDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid marriedDate")
		return
	}
	divorced, err := parseOptionalDate(req.DivorcedDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid divorcedDate")
		return
	}

	result, err := h.Marriages.UpdateMarriage(r.Context(), id, marriagedomain.UpdateInput{
		IsDivorced:   req.IsDivorced,
		MarriedDate:  married,
		DivorcedDate: divorced,
	})
	if err != nil {
		h.writeMemberError(w, "marriages.update", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) DeleteMarriage(w http.ResponseWriter, r *http.Request) {
	if err := h.Marriages.DeleteMarriage(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeMemberError(w, "marriages.delete", err)
		return
	}

	writeMessage(w, http.StatusOK, "marriage deleted")
}
