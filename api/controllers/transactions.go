package controllers

import (
	"net/http"

	"github.com/paysecure/paysecure-backend/api/responses"
	"github.com/paysecure/paysecure-backend/api/validators"
	"github.com/paysecure/paysecure-backend/internal/transactions"
	pkgerrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"github.com/paysecure/paysecure-backend/pkg/logger"
)

const maxTransactionPageSize = 500

// TransactionsList returns the caller's wallet transaction history, newest
// first.
func TransactionsList(svc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "transactions service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, maxTransactionPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.ListByAccount(r.Context(), accountID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list transactions"))
			return
		}

		responses.WriteSuccess(w, transactions.FromModels(items))
	}
}
