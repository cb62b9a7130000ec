package hrest

import (
	"encoding/json"
	"net/http"

	"cleverbank/internal/domain"

	"github.com/go-chi/chi/v5"
)

func (h *BankRestHandler) SaveUser(w http.ResponseWriter, r *http.Request) {
	var req domain.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.userUC.Save(r.Context(), &req)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *BankRestHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	resp, err := h.userUC.FindByID(r.Context(), id)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)

	resp, err := h.userUC.FindAll(r.Context(), page, size)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var req domain.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.userUC.Update(r.Context(), id, &req)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	resp, err := h.userUC.DeleteByID(r.Context(), id)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
