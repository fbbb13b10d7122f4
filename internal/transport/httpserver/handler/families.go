package handler

import (
	"errors"
	"net/http"
	"strings"

	familydomain "family-tree-go/internal/domain/family"
	"github.com/go-chi/chi/v5"
)

type familyRequest struct {
	FamilyName string `json:"familyName"`
}

func (h *Handlers) CreateFamily(w http.ResponseWriter, r *http.Request) {
	var req familyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.FamilyName = strings.TrimSpace(req.FamilyName)
	if req.FamilyName == "" {
		writeError(w, http.StatusBadRequest, "familyName is required")
		return
	}

	result, err := h.Families.CreateFamily(r.Context(), req.FamilyName)
	if err != nil {
		h.log.InternalError("families.create: create failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) GetFamily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.Families.GetFamilyByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, familydomain.ErrFamilyNotFound) {
			h.log.BusinessError("families.get: family not found", err, "family_id", id)
			writeError(w, http.StatusNotFound, "family not found")
			return
		}
		h.log.InternalError("families.get: get failed", err, "family_id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) UpdateFamily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req familyRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.FamilyName = strings.TrimSpace(req.FamilyName)
	if req.FamilyName == "" {
		writeError(w, http.StatusBadRequest, "familyName is required")
		return
	}

	result, err := h.Families.UpdateFamily(r.Context(), id, req.FamilyName)
	if err != nil {
		if errors.Is(err, familydomain.ErrFamilyNotFound) {
			h.log.BusinessError("families.update: family not found", err, "family_id", id)
			writeError(w, http.StatusNotFound, "family not found")
			return
		}
		h.log.InternalError("families.update: update failed", err, "family_id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) DeleteFamily(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Families.DeleteFamily(r.Context(), id); err != nil {
		if errors.Is(err, familydomain.ErrFamilyNotFound) {
			h.log.BusinessError("families.delete: family not found", err, "family_id", id)
			writeError(w, http.StatusNotFound, "family not found")
			return
		}
		h.log.InternalError("families.delete: delete failed", err, "family_id", id)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeMessage(w, http.StatusOK, "family deleted")
}
