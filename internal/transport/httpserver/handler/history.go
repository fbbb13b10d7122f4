package handler

import (
	"net/http"
	"strings"

	historydomain "family-tree-go/internal/domain/history"
	"github.com/go-chi/chi/v5"
)

type updateHistoryRequest struct {
	HistoricalRecordTitle   *string `json:"historicalRecordTitle"`
	HistoricalRecordSummary *string `json:"historicalRecordSummary"`
	HistoricalRecordDetails *string `json:"historicalRecordDetails"`
	StartDate               *string `json:"startDate"`
	EndDate                 *string `json:"endDate"`
}

// CreateHistoryRecord is a multipart form: record fields as values,
// attachments under "files".
func (h *Handlers) CreateHistoryRecord(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	familyID := r.FormValue("familyId")
	title := strings.TrimSpace(r.FormValue("historicalRecordTitle"))
	if familyID == "" || title == "" {
		writeError(w, http.StatusBadRequest, "familyId and historicalRecordTitle are required")
		return
	}

	start, err := parseDateRequired(r.FormValue("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "valid startDate is required")
		return
	}
	end, err := parseDateParam(r.FormValue("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}

	files, err := filesFromMultipart(r, "files")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file upload")
		return
	}

	result, err := h.History.CreateRecord(r.Context(), historydomain.CreateInput{
		FamilyID:  familyID,
		Title:     title,
		Summary:   r.FormValue("historicalRecordSummary"),
		Details:   r.FormValue("historicalRecordDetails"),
		StartDate: start,
		EndDate:   end,
	}, files)
	if err != nil {
		h.writeMemberError(w, "history.create", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) GetHistoryRecord(w http.ResponseWriter, r *http.Request) {
	result, err := h.History.GetRecordByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeMemberError(w, "history.get", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) GetFamilyHistory(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "familyId")

	result, err := h.History.GetRecordsByFamily(r.Context(), familyID)
	if err != nil {
		h.log.InternalError("history.family: list failed", err, "family_id", familyID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) SearchFamilyHistory(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "familyId")
	q := r.URL.Query()

	page, err := parseIntParam(q.Get("page"), 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid page")
		return
	}
	limit, err := parseIntParam(q.Get("limit"), 0)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid limit")
		return
	}
	start, err := parseDateParam(q.Get("startDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	end, err := parseDateParam(q.Get("endDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}

	result, err := h.History.SearchRecords(r.Context(), familyID, historydomain.SearchFilter{
		Title:     q.Get("title"),
		StartDate: start,
		EndDate:   end,
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		h.log.InternalError("history.search: search failed", err, "family_id", familyID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) UpdateHistoryRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateHistoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	start, err := parseOptionalDate(req.StartDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid startDate")
		return
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endDate")
		return
	}

	result, err := h.History.UpdateRecord(r.Context(), id, historydomain.UpdateInput{
		Title:     req.HistoricalRecordTitle,
		Summary:   req.HistoricalRecordSummary,
		Details:   req.HistoricalRecordDetails,
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		h.writeMemberError(w, "history.update", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) DeleteHistoryRecord(w http.ResponseWriter, r *http.Request) {
	result, err := h.History.DeleteRecord(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeMemberError(w, "history.delete", err)
		return
	}

	writeData(w, http.StatusOK, result)
}
