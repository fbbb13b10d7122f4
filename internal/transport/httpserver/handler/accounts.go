package handler

import (
	"net/http"
	"strings"

	accountdomain "family-tree-go/internal/domain/account"
	"github.com/go-chi/chi/v5"
)

type createAccountRequest struct {
	MemberID string `json:"memberId"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

type updateAccountRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	Email    *string `json:"email"`
	IsAdmin  *bool   `json:"isAdmin"`
}

func (h *Handlers) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.MemberID == "" || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "memberId, username and password are required")
		return
	}

	result, err := h.Accounts.CreateAccountStrict(r.Context(), accountdomain.CreateInput{
		MemberID: req.MemberID,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.writeMemberError(w, "accounts.create", err)
		return
	}

	writeData(w, http.StatusCreated, result)
}

func (h *Handlers) GetAccount(w http.ResponseWriter, r *http.Request) {
	result, err := h.Accounts.GetAccountByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeMemberError(w, "accounts.get", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	result, err := h.Accounts.ListAccounts(r.Context())
	if err != nil {
		h.log.InternalError("accounts.list: list failed", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) UpdateAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateAccountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	result, err := h.Accounts.UpdateAccount(r.Context(), id, accountdomain.UpdateInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		h.writeMemberError(w, "accounts.update", err)
		return
	}

	writeData(w, http.StatusOK, result)
}

func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := h.Accounts.DeleteAccount(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.writeMemberError(w, "accounts.delete", err)
		return
	}

	writeMessage(w, http.StatusOK, "account deleted")
}
