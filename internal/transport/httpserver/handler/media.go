package handler

import (
	"net/http"

	mediadomain "family-tree-go/internal/domain/media"
	"github.com/go-chi/chi/v5"
)

type updateMediaRequest struct {
	FileName *string `json:"fileName"`
	MimeType *string `json:"mimeType"`
}

type bulkDeleteMediaRequest struct {
	MediaIDs []string `json:"mediaIds"`
}

// UploadMedia accepts one or many files under "files" plus ownerId and
// ownerType form values.
func (h *Handlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	ownerID := r.FormValue("ownerId")
	ownerType := mediadomain.OwnerType(r.FormValue("ownerType"))
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "ownerId is required")
		return
	}
	if !ownerType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid owner type")
		return
	}

	files, err := filesFromMultipart(r, "files")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid file upload")
		return
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	result, err := h.Media.UploadMany(r.Context(), files, ownerID, ownerType)
	if err != nil {
		h.writeMemberError(w, "media.upload", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) GetMedia(w http.ResponseWriter, r *http.Request) {
	result, err := h.Media.GetMediaByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeMemberError(w, "media.get", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateMediaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	result, err := h.Media.UpdateMedia(r.Context(), id, mediadomain.UpdateInput{
		FileName: req.FileName,
		MimeType: req.MimeType,
	})
	if err != nil {
		h.writeMemberError(w, "media.update", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	result, err := h.Media.DeleteMedia(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeMemberError(w, "media.delete", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) BulkDeleteMedia(w http.ResponseWriter, r *http.Request) {
	var req bulkDeleteMediaRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if len(req.MediaIDs) == 0 {
		writeError(w, http.StatusBadRequest, "mediaIds is required")
		return
	}

	if err := h.Media.DeleteManyMedia(r.Context(), req.MediaIDs); err != nil {
		h.writeMemberError(w, "media.bulk_delete", err)
		return
	}

	writeMessage(w, http.StatusOK, "media deleted")
}
