package controllers

import (
	"net/http"

	"github.com/paysecure/paysecure-backend/api/responses"
	"github.com/paysecure/paysecure-backend/api/validators"
	"github.com/paysecure/paysecure-backend/internal/accounts"
	"github.com/paysecure/paysecure-backend/internal/exchange"
	"github.com/paysecure/paysecure-backend/pkg/enums"
	pkgerrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"github.com/paysecure/paysecure-backend/pkg/logger"
)

type exchangeRequest struct {
	Direction string `json:"direction" validate:"required,oneof=coins_to_cash cash_to_coins"`
	Amount    int64  `json:"amount" validate:"required,gt=0"`
}

// ExchangeFunds converts between the caller's coin and cash balances and
// returns the refreshed account. Amount is whole coins in either direction.
func ExchangeFunds(svc exchange.Service, accountsSvc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || accountsSvc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "exchange service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body exchangeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		direction, err := enums.ParseExchangeDirection(body.Direction)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction"))
			return
		}

		if err := svc.Exchange(r.Context(), exchange.ExchangeInput{
			AccountID: accountID,
			Direction: direction,
			Amount:    body.Amount,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		account, err := accountsSvc.GetByID(r.Context(), accountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, accounts.FromModel(account))
	}
}
