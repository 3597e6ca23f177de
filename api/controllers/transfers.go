package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/paysecure/paysecure-backend/api/responses"
	"github.com/paysecure/paysecure-backend/api/validators"
	"github.com/paysecure/paysecure-backend/internal/accounts"
	"github.com/paysecure/paysecure-backend/internal/transactions"
	"github.com/paysecure/paysecure-backend/internal/transfers"
	"github.com/paysecure/paysecure-backend/internal/users"
	"github.com/paysecure/paysecure-backend/pkg/enums"
	pkgerrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"github.com/paysecure/paysecure-backend/pkg/logger"
)

type transferRequest struct {
	RecipientEmail string `json:"recipient_email" validate:"required,email"`
	BalanceKind    string `json:"balance_kind" validate:"required,oneof=coins cash"`
	Amount         string `json:"amount" validate:"required"`
}

// TransferFunds sends coins or cash from the caller to the account owned by
// the recipient email. Coin amounts are whole integers; cash amounts are
// decimal dollar strings converted to cents at the boundary.
func TransferFunds(svc transfers.Service, userRepo *users.Repository, accountsSvc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || userRepo == nil || accountsSvc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "transfer service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fromAccountID, err := requireAccountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body transferRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		kind, err := enums.ParseBalanceKind(body.BalanceKind)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid balance kind"))
			return
		}

		amount, err := parseTransferAmount(kind, body.Amount)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(body.RecipientEmail))
		recipient, err := userRepo.FindByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "recipient not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup recipient"))
			return
		}

		toAccount, err := accountsSvc.GetByUserID(r.Context(), recipient.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Transfer(r.Context(), transfers.TransferInput{
			FromAccountID: fromAccountID,
			ToAccountID:   toAccount.ID,
			Kind:          kind,
			Amount:        amount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, transactions.FromModel(record))
	}
}

func parseTransferAmount(kind enums.BalanceKind, raw string) (int64, error) {
	if kind == enums.BalanceKindCash {
		return validators.ParseCashAmount("amount", raw)
	}
	amount, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "coin amount must be a whole number").WithDetails(map[string]any{"field": "amount"})
	}
	if amount <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive").WithDetails(map[string]any{"field": "amount"})
	}
	return amount, nil
}
