package handler

import (
	"net/http"
	"strings"

	reldomain "family-tree-go/internal/domain/relationship"
	"github.com/go-chi/chi/v5"
)

type createRelationshipRequest struct {
	ParentID   string `json:"parentId"`
	ChildID    string `json:"childId"`
	RelaTypeID string `json:"relaTypeId"`
	BirthOrder int    `json:"birthOrder"`
}

type updateRelationshipRequest struct {
	RelaTypeID *string `json:"relaTypeId"`
	BirthOrder *int    `json:"birthOrder"`
}

type relationshipTypeRequest struct {
	RelaTypeName string `json:"relaTypeName"`
}

func (h *Handlers) CreateRelationship(w http.ResponseWriter, r *http.Request) {
	var req createRelationshipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.ParentID == "" || req.ChildID == "" || req.RelaTypeID == "" {
		writeError(w, http.StatusBadRequest, "parentId, childId and relaTypeId are required")
		return
	}

	result, err := h.Relationships.CreateRelationship(r.Context(), reldomain.CreateInput{
		ParentID:   req.ParentID,
		ChildID:    req.ChildID,
		RelaTypeID: req.RelaTypeID,
		BirthOrder: req.BirthOrder,
	})
	if err != nil {
		h.writeMemberError(w, "relationships.create", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) GetRelationship(w http.ResponseWriter, r *http.Request) {
	result, err := h.Relationships.GetRelationshipByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeMemberError(w, "relationships.get", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) ListRelationships(w http.ResponseWriter, r *http.Request) {
	result, err := h.Relationships.ListRelationships(r.Context())
	if err != nil {
		h.log.InternalError("relationships.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) UpdateRelationship(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRelationshipRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	result, err := h.Relationships.UpdateRelationship(r.Context(), id, reldomain.UpdateInput{
		RelaTypeID: req.RelaTypeID,
		BirthOrder: req.BirthOrder,
	})
	if err != nil {
		h.writeMemberError(w, "relationships.update", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) DeleteRelationship(w http.ResponseWriter, r *http.Request) {
	if err := h.Relationships.DeleteRelationship(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeMemberError(w, "relationships.delete", err)
		return
	}

	writeMessage(w, http.StatusOK, "relationship deleted")
}

func (h *Handlers) ListRelationshipTypes(w http.ResponseWriter, r *http.Request) {
	result, err := h.Relationships.ListTypes(r.Context())
	if err != nil {
		h.log.InternalError("relationship_types.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) GetRelationshipType(w http.ResponseWriter, r *http.Request) {
	result, err := h.Relationships.GetTypeByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeMemberError(w, "relationship_types.get", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) CreateRelationshipType(w http.ResponseWriter, r *http.Request) {
	var req relationshipTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.RelaTypeName = strings.TrimSpace(req.RelaTypeName)
	if req.RelaTypeName == "" {
		writeError(w, http.StatusBadRequest, "relaTypeName is required")
		return
	}

	result, err := h.Relationships.CreateType(r.Context(), req.RelaTypeName)
	if err != nil {
		h.writeMemberError(w, "relationship_types.create", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) UpdateRelationshipType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req relationshipTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.RelaTypeName = strings.TrimSpace(req.RelaTypeName)
	if req.RelaTypeName == "" {
		writeError(w, http.StatusBadRequest, "relaTypeName is required")
		return
	}

	result, err := h.Relationships.UpdateType(r.Context(), id, req.RelaTypeName)
	if err != nil {
		h.writeMemberError(w, "relationship_types.update", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) DeleteRelationshipType(w http.ResponseWriter, r *http.Request) {
	if err := h.Relationships.DeleteType(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeMemberError(w, "relationship_types.delete", err)
		return
	}

	writeMessage(w, http.StatusOK, "relationship type deleted")
}
