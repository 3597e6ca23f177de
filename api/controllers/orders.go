package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/paysecure/paysecure-backend/api/responses"
	"github.com/paysecure/paysecure-backend/api/validators"
	"github.com/paysecure/paysecure-backend/internal/accounts"
	"github.com/paysecure/paysecure-backend/internal/orders"
	"github.com/paysecure/paysecure-backend/internal/transactions"
	"github.com/paysecure/paysecure-backend/internal/users"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	pkgerrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"github.com/paysecure/paysecure-backend/pkg/logger"
)

type placeOrderRequest struct {
	SellerEmail string `json:"seller_email" validate:"required,email"`
	ProductName string `json:"product_name" validate:"required,max=200"`
	Description string `json:"description" validate:"required,max=2000"`
	AmountCoins int64  `json:"amount_coins" validate:"required,gt=0"`
}

type resolveOrderRequest struct {
	Resolution string `json:"resolution" validate:"required,oneof=release_to_seller refund_buyer"`
}

// OrdersPlace opens an escrow order against the seller owning the given email.
func OrdersPlace(svc orders.Service, userRepo *users.Repository, accountsSvc accounts.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || userRepo == nil || accountsSvc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		buyerID, err := requireAccountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body placeOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(body.SellerEmail))
		seller, err := userRepo.FindByEmail(r.Context(), email)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "seller not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup seller"))
			return
		}

		sellerAccount, err := accountsSvc.GetByUserID(r.Context(), seller.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Place(r.Context(), orders.PlaceOrderInput{
			BuyerID:     buyerID,
			SellerID:    sellerAccount.ID,
			ProductName: body.ProductName,
			Description: body.Description,
			AmountCoins: body.AmountCoins,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, orders.FromModel(order))
	}
}

// OrdersList returns the caller's orders, optionally filtered by side via
// the role query parameter (buyer, seller, all).
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role := orders.ListRoleAll
		if raw := strings.TrimSpace(r.URL.Query().Get("role")); raw != "" {
			role = orders.ListRole(raw)
		}

		items, err := svc.ListForAccount(r.Context(), accountID, role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders.FromModels(items))
	}
}

type orderDetailResponse struct {
	Order        *orders.OrderDTO              `json:"order"`
	Transactions []transactions.TransactionDTO `json:"transactions"`
}

// OrdersGet returns one order the caller participates in, together with the
// transaction log entries tied to it (the escrow release, once settled).
func OrdersGet(svc orders.Service, txSvc transactions.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || txSvc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), orderID, accountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := txSvc.ListByOrder(r.Context(), order.ID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orderDetailResponse{
			Order:        orders.FromModel(order),
			Transactions: transactions.FromModels(records),
		})
	}
}

// OrdersAccept transitions an initiated order to accepted (seller only).
func OrdersAccept(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return orderTransition(svc, logg, svc.Accept)
}

// OrdersReject cancels an initiated order and refunds the escrow (seller only).
func OrdersReject(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return orderTransition(svc, logg, svc.Reject)
}

// OrdersShip transitions an accepted order to shipped (seller only).
func OrdersShip(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return orderTransition(svc, logg, svc.Ship)
}

// OrdersConfirm completes a shipped order and releases the escrow to the
// seller (buyer only).
func OrdersConfirm(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return orderTransition(svc, logg, svc.ConfirmDelivery)
}

// OrdersDispute flags a shipped order for arbitration (buyer only).
func OrdersDispute(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return orderTransition(svc, logg, svc.Dispute)
}

// OrdersResolve settles a disputed order. Exposed outside production only;
// there is no arbitration UI yet.
func OrdersResolve(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body resolveOrderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.ResolveDispute(r.Context(), orderID, orders.DisputeResolution(body.Resolution))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders.FromModel(order))
	}
}

type transitionFunc func(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error)

func orderTransition(svc orders.Service, logg *logger.Logger, fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || fn == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		accountID, err := requireAccountID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParseUUIDParam(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := fn(r.Context(), orderID, accountID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, orders.FromModel(order))
	}
}
