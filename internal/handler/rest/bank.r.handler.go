package hrest

import (
	"encoding/json"
	"net/http"

	"cleverbank/internal/domain"

	"github.com/go-chi/chi/v5"
)

func (h *BankRestHandler) SaveBank(w http.ResponseWriter, r *http.Request) {
	var req domain.BankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.bankUC.Save(r.Context(), &req)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *BankRestHandler) GetBank(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bank id")
		return
	}

	resp, err := h.bankUC.FindByID(r.Context(), id)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) ListBanks(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)

	resp, err := h.bankUC.FindAll(r.Context(), page, size)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) UpdateBank(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bank id")
		return
	}

	var req domain.BankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.bankUC.Update(r.Context(), id, &req)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) DeleteBank(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid bank id")
		return
	}

	resp, err := h.bankUC.DeleteByID(r.Context(), id)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
