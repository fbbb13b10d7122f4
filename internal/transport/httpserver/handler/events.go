package handler

import (
	"net/http"
	"strconv"
	"strings"

	eventdomain "family-tree-go/internal/domain/event"
	"family-tree-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

// CreateEvent accepts a multipart form: event fields as form values plus any
// number of attachments under "files".
func (h *Handlers) CreateEvent(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	name := strings.TrimSpace(r.FormValue("eventName"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "eventName is required")
		return
	}

	gregorian, err := parseDateParam(r.FormValue("gregorianEventDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid gregorianEventDate")
		return
	}
	endRecurrence, err := parseDateParam(r.FormValue("endRecurrenceDate"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid endRecurrenceDate")
		return
	}

	files, err := filesFromMultipart(r, "files")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file upload")
		return
	}

	result, err := h.Events.CreateEvent(r.Context(), eventdomain.CreateInput{
		CreatedBy:         claims.MemberID,
		RelaTypeName:      r.FormValue("relaTypeName"),
		EventScope:        r.FormValue("eventScope"),
		EventType:         r.FormValue("eventType"),
		EventName:         name,
		EventDescription:  r.FormValue("eventDescription"),
		GregorianDate:     gregorian,
		LunarDate:         r.FormValue("lunarEventDate"),
		RecurrenceRule:    r.FormValue("recurrenceRule"),
		EndRecurrenceDate: endRecurrence,
		Location:          r.FormValue("location"),
	}, files)
	if err != nil {
		h.writeMemberError(w, "events.create", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) GetEvent(w http.ResponseWriter, r *http.Request) {
	result, err := h.Events.GetEventByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeMemberError(w, "events.get", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) ListEvents(w http.ResponseWriter, r *http.Request) {
	result, err := h.Events.ListEvents(r.Context())
	if err != nil {
		h.log.InternalError("events.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

// UpdateEvent is multipart like CreateEvent. Absent form values leave the
// stored fields untouched; "isChangeImage" replaces attachments rather than
// merging; "deleteImageIds" is a comma separated list.
func (h *Handlers) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	input := eventdomain.UpdateInput{
		RelaTypeName:     formValuePtr(r, "relaTypeName"),
		EventScope:       formValuePtr(r, "eventScope"),
		EventType:        formValuePtr(r, "eventType"),
		EventName:        formValuePtr(r, "eventName"),
		EventDescription: formValuePtr(r, "eventDescription"),
		LunarDate:        formValuePtr(r, "lunarEventDate"),
		RecurrenceRule:   formValuePtr(r, "recurrenceRule"),
		Location:         formValuePtr(r, "location"),
		DeleteImageIDs:   parseCSV(r.FormValue("deleteImageIds")),
	}

	if v := r.FormValue("gregorianEventDate"); v != "" {
		parsed, err := parseDateRequired(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid gregorianEventDate")
			return
		}
		input.GregorianDate = &parsed
	}
	if v := r.FormValue("endRecurrenceDate"); v != "" {
		parsed, err := parseDateRequired(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid endRecurrenceDate")
			return
		}
		input.EndRecurrenceDate = &parsed
	}
	if v := r.FormValue("isChangeImage"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid isChangeImage")
			return
		}
		input.IsChangeImage = parsed
	}

	files, err := filesFromMultipart(r, "files")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file upload")
		return
	}

	result, err := h.Events.UpdateEvent(r.Context(), id, input, files)
	if err != nil {
		h.writeMemberError(w, "events.update", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.Events.DeleteEvent(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeMemberError(w, "events.delete", err)
		return
	}

	writeMessage(w, http.StatusOK, "event deleted")
}

// formValuePtr distinguishes "field absent" from "field set to empty": only
// fields present in the form produce a pointer.
func formValuePtr(r *http.Request, field string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[field]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}
