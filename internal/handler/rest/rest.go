// Package hrest exposes the banking operations over HTTP, JSON in and
// out, mounted under /api/v0.
package hrest

import (
	"cleverbank/internal/usecase"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BankRestHandler struct {
	userUC      *usecase.UserUsecase
	bankUC      *usecase.BankUsecase
	accountUC   *usecase.AccountUsecase
	txUC        *usecase.TransactionUsecase
	statementUC *usecase.StatementUsecase
	log         *zap.Logger
}

func NewBankRestHandler(
	userUC *usecase.UserUsecase,
	bankUC *usecase.BankUsecase,
	accountUC *usecase.AccountUsecase,
	txUC *usecase.TransactionUsecase,
	statementUC *usecase.StatementUsecase,
	log *zap.Logger,
) *BankRestHandler {
	return &BankRestHandler{
		userUC:      userUC,
		bankUC:      bankUC,
		accountUC:   accountUC,
		txUC:        txUC,
		statementUC: statementUC,
		log:         log,
	}
}

func (h *BankRestHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v0", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", h.SaveUser)
			r.Get("/", h.ListUsers)
			r.Get("/{id}", h.GetUser)
			r.Put("/{id}", h.UpdateUser)
			r.Delete("/{id}", h.DeleteUser)
		})

		r.Route("/banks", func(r chi.Router) {
			r.Post("/", h.SaveBank)
			r.Get("/", h.ListBanks)
			r.Get("/{id}", h.GetBank)
			r.Put("/{id}", h.UpdateBank)
			r.Delete("/{id}", h.DeleteBank)
		})

		r.Route("/accounts", func(r chi.Router) {
			r.Post("/", h.SaveAccount)
			r.Get("/", h.ListAccounts)
			r.Get("/{id}", h.GetAccount)
			r.Delete("/{id}", h.DeleteAccount)
			r.Get("/{id}/record", h.GetAccountRecord)
			r.Get("/{id}/statement", h.GetStatement)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Post("/", h.SaveTransaction)
			r.Get("/", h.ListTransactions)
			r.Get("/{id}", h.GetTransaction)
			r.Delete("/{id}", h.DeleteTransaction)

			r.Patch("/replenishBalance", h.ReplenishBalance)
			r.Patch("/withdrawBalance", h.WithdrawBalance)
			r.Patch("/transferFunds", h.TransferFunds)
		})
	})
}
