package handler

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	memberdomain "family-tree-go/internal/domain/member"
	"family-tree-go/internal/export"
	"family-tree-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createMemberRequest struct {
	FamilyID     string `json:"familyId"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	DateOfBirth  string `json:"dateOfBirth"`
	DateOfDeath  string `json:"dateOfDeath"`
	PlaceOfBirth string `json:"placeOfBirth"`
	PlaceOfDeath string `json:"placeOfDeath"`
	IsAlive      *bool  `json:"isAlive"`
	Generation   int    `json:"generation"`
	Gender       string `json:"gender"`
	ShortSummary string `json:"shortSummary"`
}

type updateMemberRequest struct {
	FirstName    *string `json:"firstName"`
	MiddleName   *string `json:"middleName"`
	LastName     *string `json:"lastName"`
	DateOfBirth  *string `json:"dateOfBirth"`
	DateOfDeath  *string `json:"dateOfDeath"`
	PlaceOfBirth *string `json:"placeOfBirth"`
	PlaceOfDeath *string `json:"placeOfDeath"`
	IsAlive      *bool   `json:"isAlive"`
	Generation   *int    `json:"generation"`
	Gender       *string `json:"gender"`
	ShortSummary *string `json:"shortSummary"`
}

type createSpouseRequest struct {
	MemberID     string `json:"memberId"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	DateOfBirth  string `json:"dateOfBirth"`
	DateOfDeath  string `json:"dateOfDeath"`
	PlaceOfBirth string `json:"placeOfBirth"`
	PlaceOfDeath string `json:"placeOfDeath"`
	IsAlive      *bool  `json:"isAlive"`
	ShortSummary string `json:"shortSummary"`
}

type createChildRequest struct {
	ParentID       string `json:"parentId"`
	ParentSpouseID string `json:"parentSpouseId"`
	FirstName      string `json:"firstName"`
	MiddleName     string `json:"middleName"`
	LastName       string `json:"lastName"`
	DateOfBirth    string `json:"dateOfBirth"`
	DateOfDeath    string `json:"dateOfDeath"`
	PlaceOfBirth   string `json:"placeOfBirth"`
	PlaceOfDeath   string `json:"placeOfDeath"`
	IsAlive        *bool  `json:"isAlive"`
	Gender         string `json:"gender"`
	ShortSummary   string `json:"shortSummary"`
	BirthOrder     int    `json:"birthOrder"`
}

type createLeaderRequest struct {
	FamilyID     string `json:"familyId"`
	FirstName    string `json:"firstName"`
	MiddleName   string `json:"middleName"`
	LastName     string `json:"lastName"`
	DateOfBirth  string `json:"dateOfBirth"`
	PlaceOfBirth string `json:"placeOfBirth"`
	Gender       string `json:"gender"`
	ShortSummary string `json:"shortSummary"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	Email        string `json:"email"`
}

func (h *Handlers) CreateMember(w http.ResponseWriter, r *http.Request) {
	var req createMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.FamilyID == "" || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		writeError(w, http.StatusBadRequest, "familyId, firstName and lastName are required")
		return
	}

	born, died, err := parseLifeDates(req.DateOfBirth, req.DateOfDeath)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Members.CreateMember(r.Context(), memberdomain.CreateInput{
		FamilyID:     req.FamilyID,
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		DateOfBirth:  born,
		DateOfDeath:  died,
		PlaceOfBirth: req.PlaceOfBirth,
		PlaceOfDeath: req.PlaceOfDeath,
		IsAlive:      orTrue(req.IsAlive),
		Generation:   req.Generation,
		Gender:       req.Gender,
		ShortSummary: req.ShortSummary,
	})
	if err != nil {
		h.writeMemberError(w, "members.create", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) GetMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.Members.GetMemberByID(r.Context(), id)
	if err != nil {
		h.writeMemberError(w, "members.get", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	result, err := h.Members.ListMembers(r.Context())
	if err != nil {
		h.log.InternalError("members.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateMemberRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	born, err := parseOptionalDate(req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dateOfBirth")
		return
	}
	died, err := parseOptionalDate(req.DateOfDeath)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dateOfDeath")
		return
	}

	result, err := h.Members.UpdateMember(r.Context(), id, memberdomain.UpdateInput{
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		DateOfBirth:  born,
		DateOfDeath:  died,
		PlaceOfBirth: req.PlaceOfBirth,
		PlaceOfDeath: req.PlaceOfDeath,
		IsAlive:      req.IsAlive,
		Generation:   req.Generation,
		Gender:       req.Gender,
		ShortSummary: req.ShortSummary,
	})
	if err != nil {
		h.writeMemberError(w, "members.update", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.Members.DeleteMember(r.Context(), id); err != nil {
		h.writeMemberError(w, "members.delete", err)
		return
	}

	writeMessage(w, http.StatusOK, "member deleted")
}

func (h *Handlers) GetFamilyMembers(w http.ResponseWriter, r *http.Request) {
	familyID := chi.URLParam(r, "familyId")

	result, err := h.Members.FindMembersInFamily(r.Context(), familyID)
	if err != nil {
		h.log.InternalError("members.family: enrichment failed", err, "family_id", familyID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) CreateSpouse(w http.ResponseWriter, r *http.Request) {
	var req createSpouseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.MemberID == "" || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		writeError(w, http.StatusBadRequest, "memberId, firstName and lastName are required")
		return
	}

	born, died, err := parseLifeDates(req.DateOfBirth, req.DateOfDeath)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Members.CreateSpouse(r.Context(), memberdomain.CreateSpouseInput{
		MemberID:     req.MemberID,
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		DateOfBirth:  born,
		DateOfDeath:  died,
		PlaceOfBirth: req.PlaceOfBirth,
		PlaceOfDeath: req.PlaceOfDeath,
		IsAlive:      orTrue(req.IsAlive),
		ShortSummary: req.ShortSummary,
	})
	if err != nil {
		h.writeMemberError(w, "members.create_spouse", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) CreateChild(w http.ResponseWriter, r *http.Request) {
	var req createChildRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.ParentID == "" || strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		writeError(w, http.StatusBadRequest, "parentId, firstName and lastName are required")
		return
	}

	born, died, err := parseLifeDates(req.DateOfBirth, req.DateOfDeath)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Members.CreateChild(r.Context(), memberdomain.CreateChildInput{
		ParentID:       req.ParentID,
		ParentSpouseID: req.ParentSpouseID,
		FirstName:      req.FirstName,
		MiddleName:     req.MiddleName,
		LastName:       req.LastName,
		DateOfBirth:    born,
		DateOfDeath:    died,
		PlaceOfBirth:   req.PlaceOfBirth,
		PlaceOfDeath:   req.PlaceOfDeath,
		IsAlive:        orTrue(req.IsAlive),
		Gender:         req.Gender,
		ShortSummary:   req.ShortSummary,
		BirthOrder:     req.BirthOrder,
	})
	if err != nil {
		h.writeMemberError(w, "members.create_child", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) CreateFamilyLeader(w http.ResponseWriter, r *http.Request) {
	var req createLeaderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if req.FamilyID == "" || strings.TrimSpace(req.FirstName) == "" ||
		strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "familyId, firstName, username and password are required")
		return
	}

	born, err := parseDateParam(req.DateOfBirth)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid dateOfBirth")
		return
	}

	result, err := h.Members.CreateFamilyLeader(r.Context(), memberdomain.CreateLeaderInput{
		FamilyID:     req.FamilyID,
		FirstName:    req.FirstName,
		MiddleName:   req.MiddleName,
		LastName:     req.LastName,
		DateOfBirth:  born,
		PlaceOfBirth: req.PlaceOfBirth,
		Gender:       req.Gender,
		ShortSummary: req.ShortSummary,
		Username:     req.Username,
		Password:     req.Password,
		Email:        req.Email,
	})
	if err != nil {
		h.writeMemberError(w, "members.create_leader", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) GetMemberDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.Members.GetMemberDetails(r.Context(), id)
	if err != nil {
		h.writeMemberError(w, "members.details", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) SearchMembers(w http.ResponseWriter, r *http.Request) {
	familyID, filter, err := memberSearchQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Members.SearchMembers(r.Context(), familyID, filter)
	if err != nil {
		h.log.InternalError("members.search: search failed", err, "family_id", familyID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

// ExportMembers streams the current search result as an xlsx workbook.
func (h *Handlers) ExportMembers(w http.ResponseWriter, r *http.Request) {
	familyID, filter, err := memberSearchQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.Members.SearchMembers(r.Context(), familyID, filter)
	if err != nil {
		h.log.InternalError("members.export: search failed", err, "family_id", familyID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	data, err := export.MembersXLSX(page.Items)
	if err != nil {
		h.log.InternalError("members.export: workbook failed", err, "family_id", familyID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="members.xlsx"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// UploadAvatar runs the face-crop pipeline on an uploaded portrait. The
// member whose avatar is replaced is taken from the token claims.
func (h *Handlers) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	files, err := filesFromMultipart(r, "file")
	if err != nil || len(files) == 0 {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}

	result, err := h.Media.ProcessAvatar(r.Context(), files[0], claims.MemberID)
	if err != nil {
		if isValidation(err) {
			h.log.BusinessError("members.avatar: rejected", err, "member_id", claims.MemberID)
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.log.InternalError("members.avatar: pipeline failed", err, "member_id", claims.MemberID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusCreated, result)
}

func memberSearchQuery(r *http.Request) (string, memberdomain.SearchFilter, error) {
	q := r.URL.Query()

	familyID := q.Get("familyId")
	if familyID == "" {
		return "", memberdomain.SearchFilter{}, fmt.Errorf("familyId is required")
	}

	page, err := parseIntParam(q.Get("page"), 1)
	if err != nil {
		return "", memberdomain.SearchFilter{}, fmt.Errorf("invalid page")
	}
	limit, err := parseIntParam(q.Get("limit"), 0)
	if err != nil {
		return "", memberdomain.SearchFilter{}, fmt.Errorf("invalid limit")
	}
	alive, err := parseBoolParam(q.Get("isAlive"))
	if err != nil {
		return "", memberdomain.SearchFilter{}, fmt.Errorf("invalid isAlive")
	}

	return familyID, memberdomain.SearchFilter{
		Search:  q.Get("search"),
		Email:   q.Get("email"),
		IsAlive: alive,
		Gender:  q.Get("gender"),
		Page:    page,
		Limit:   limit,
	}, nil
}

func (h *Handlers) writeMemberError(w http.ResponseWriter, op string, err error) {
	switch {
	case isNotFound(err):
		h.log.BusinessError(op+": not found", err)
		writeError(w, http.StatusNotFound, err.Error())
	case isConflict(err):
		h.log.BusinessError(op+": conflict", err)
		writeError(w, http.StatusConflict, err.Error())
	case isValidation(err):
		h.log.BusinessError(op+": rejected", err)
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.InternalError(op+": failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func parseLifeDates(birth, death string) (*time.Time, *time.Time, error) {
	born, err := parseDateParam(birth)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid dateOfBirth")
	}
	died, err := parseDateParam(death)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid dateOfDeath")
	}
	return born, died, nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseDateParam(*value)
}

func orTrue(value *bool) bool {
	if value == nil {
		return true
	}
	return *value
}
