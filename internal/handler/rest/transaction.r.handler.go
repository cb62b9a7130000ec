package hrest

import (
	"encoding/json"
	"net/http"

	"cleverbank/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

func (h *BankRestHandler) SaveTransaction(w http.ResponseWriter, r *http.Request) {
	var req domain.TransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.txUC.Save(r.Context(), &req)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *BankRestHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	resp, err := h.txUC.FindByID(r.Context(), id)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	page, size := parsePage(r)

	resp, err := h.txUC.FindAll(r.Context(), page, size)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *BankRestHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return
	}

	resp, err := h.txUC.DeleteByID(r.Context(), id)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// ===============================
// Balance mutations
// ===============================

// ReplenishBalance handles PATCH /transactions/replenishBalance?accountId=&amount=
func (h *BankRestHandler) ReplenishBalance(w http.ResponseWriter, r *http.Request) {
	accountID, amount, ok := parseMutationParams(w, r)
	if !ok {
		return
	}

	resp, err := h.txUC.ReplenishBalance(r.Context(), accountID, amount)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// WithdrawBalance handles PATCH /transactions/withdrawBalance?accountId=&amount=
func (h *BankRestHandler) WithdrawBalance(w http.ResponseWriter, r *http.Request) {
	accountID, amount, ok := parseMutationParams(w, r)
	if !ok {
		return
	}

	resp, err := h.txUC.WithdrawBalance(r.Context(), accountID, amount)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// TransferFunds handles PATCH /transactions/transferFunds?supplierId=&consumerId=&amount=
func (h *BankRestHandler) TransferFunds(w http.ResponseWriter, r *http.Request) {
	supplierID := r.URL.Query().Get("supplierId")
	consumerID := r.URL.Query().Get("consumerId")
	if supplierID == "" || consumerID == "" {
		writeError(w, http.StatusBadRequest, "supplierId and consumerId are required")
		return
	}

	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return
	}

	resp, err := h.txUC.TransferFunds(r.Context(), supplierID, consumerID, amount)
	if err != nil {
		h.writeUsecaseError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func parseMutationParams(w http.ResponseWriter, r *http.Request) (string, decimal.Decimal, bool) {
	accountID := r.URL.Query().Get("accountId")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "accountId is required")
		return "", decimal.Zero, false
	}

	amount, err := decimal.NewFromString(r.URL.Query().Get("amount"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return "", decimal.Zero, false
	}
	return accountID, amount, true
}
