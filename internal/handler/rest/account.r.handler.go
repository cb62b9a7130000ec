package hrest

import (
	"encoding/json"
	"net/http"

	"cleverbank/internal/domain"

	"github.com/go-chi/chi/v5"
)

func (h *BankRestHandler) SaveAccount(w http.ResponseWriter, r *http.Request) {
	var req domain.AccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.accountUC.Save(r.Context(), &req)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *BankRestHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	resp, err := h.accountUC.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)

	resp, err := h.accountUC.FindAll(r.Context(), page, size)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	resp, err := h.accountUC.DeleteByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetAccountRecord renders the per-transaction account record. The
// optional period query param takes CREATION, MONTH or YEAR and
// defaults to the account's creation date.
func (h *BankRestHandler) GetAccountRecord(w http.ResponseWriter, r *http.Request) {
	period := domain.ParseStatementPeriod(r.URL.Query().Get("period"))

	resp, err := h.statementUC.GetAccountRecord(r.Context(), chi.URLParam(r, "id"), period)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) GetStatement(w http.ResponseWriter, r *http.Request) {
	resp, err := h.statementUC.GetStatement(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
