package handler

import (
	"errors"
	"net/http"
	"strings"

	authdomain "family-tree-go/internal/domain/auth"
	"family-tree-go/internal/transport/httpserver/middleware"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type registerRequest struct {
	FamilyName string `json:"familyName"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	pair, err := h.Auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidCredentials) {
			h.log.BusinessError("auth.login: invalid credentials", err, "username", req.Username)
			writeError(w, http.StatusUnauthorized, "username or password is incorrect")
			return
		}
		h.log.InternalError("auth.login: login failed", err, "username", req.Username)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, pair)
}

func (h *Handlers) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		writeError(w, http.StatusBadRequest, "refreshToken is required")
		return
	}

	pair, err := h.Auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, authdomain.ErrInvalidToken) {
			h.log.BusinessError("auth.refresh: token rejected", err)
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		h.log.InternalError("auth.refresh: refresh failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, pair)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid or missing token")
		return
	}

	if err := h.Auth.Logout(r.Context(), claims.MemberID); err != nil {
		h.log.InternalError("auth.logout: logout failed", err, "member_id", claims.MemberID)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeMessage(w, http.StatusOK, "logged out")
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.FamilyName = strings.TrimSpace(req.FamilyName)
	req.Username = strings.TrimSpace(req.Username)
	if req.FamilyName == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "familyName, username and password are required")
		return
	}

	leader, err := h.Auth.Register(r.Context(), authdomain.RegisterInput{
		FamilyName: req.FamilyName,
		Username:   req.Username,
		Password:   req.Password,
		Email:      req.Email,
	})
	if err != nil {
		if isConflict(err) {
			h.log.BusinessError("auth.register: username taken", err, "username", req.Username)
			writeError(w, http.StatusConflict, "username already exists")
			return
		}
		h.log.InternalError("auth.register: register failed", err, "username", req.Username)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusCreated, leader)
}
