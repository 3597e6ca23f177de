package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/paysecure/paysecure-backend/internal/ledger"
	"github.com/paysecure/paysecure-backend/internal/transactions"
	"github.com/paysecure/paysecure-backend/pkg/db"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	"github.com/paysecure/paysecure-backend/pkg/enums"
	apperrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"github.com/paysecure/paysecure-backend/pkg/metrics"
	"gorm.io/gorm"
)

// Service drives the escrow order lifecycle. Every transition that moves
// money runs the status flip and the balance deltas in one transaction, so a
// lost race on the status guard also rolls back the money.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (*models.EscrowOrder, error)
	Accept(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error)
	Reject(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error)
	Ship(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error)
	ConfirmDelivery(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error)
	Dispute(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error)
	ResolveDispute(ctx context.Context, orderID uuid.UUID, resolution DisputeResolution) (*models.EscrowOrder, error)
	Get(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error)
	ListForAccount(ctx context.Context, accountID uuid.UUID, role ListRole) ([]models.EscrowOrder, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo    Repository
	ledger  ledger.Service
	txns    transactions.Service
	runner  txRunner
	metrics *metrics.WalletMetrics
}

// ServiceParams bundles the dependencies required to build an orders service.
type ServiceParams struct {
	Repo         Repository
	Ledger       ledger.Service
	Transactions transactions.Service
	TxRunner     txRunner
	Metrics      *metrics.WalletMetrics
}

// NewService constructs an orders service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger service is required")
	}
	if params.Transactions == nil {
		return nil, fmt.Errorf("transactions service is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	return &service{
		repo:    params.Repo,
		ledger:  params.Ledger,
		txns:    params.Transactions,
		runner:  params.TxRunner,
		metrics: params.Metrics,
	}, nil
}

// Place opens an order and moves the purchase amount from the buyer's coins
// into the buyer's escrow balance.
func (s *service) Place(ctx context.Context, input PlaceOrderInput) (*models.EscrowOrder, error) {
	if input.BuyerID == uuid.Nil || input.SellerID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "buyer and seller account ids are required")
	}
	if input.BuyerID == input.SellerID {
		return nil, apperrors.New(apperrors.CodeValidation, "cannot open an order with yourself")
	}
	if strings.TrimSpace(input.ProductName) == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "product name is required")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.New(apperrors.CodeValidation, "description is required")
	}
	if input.AmountCoins <= 0 {
		return nil, apperrors.New(apperrors.CodeValidation, "amount must be positive")
	}

	order := &models.EscrowOrder{
		ID:          uuid.New(),
		BuyerID:     input.BuyerID,
		SellerID:    input.SellerID,
		ProductName: strings.TrimSpace(input.ProductName),
		Description: strings.TrimSpace(input.Description),
		AmountCoins: input.AmountCoins,
		Status:      enums.OrderStatusInitiated,
	}

	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.ledger.Apply(ctx, tx, []ledger.Entry{
			{AccountID: input.BuyerID, Field: ledger.FieldCoins, Delta: -input.AmountCoins},
			{AccountID: input.BuyerID, Field: ledger.FieldEscrow, Delta: input.AmountCoins},
		}); err != nil {
			return err
		}
		return s.repo.WithTx(tx).Create(ctx, order)
	})
	if err != nil {
		return nil, mapTxErr(err)
	}

	s.metrics.IncOrderEvent("placed")
	return s.repo.GetByID(ctx, order.ID)
}

// Accept marks an initiated order accepted. Seller only; no money moves.
func (s *service) Accept(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error) {
	order, err := s.transition(ctx, orderID, actorID, actorSeller, enums.OrderStatusInitiated, enums.OrderStatusAccepted, nil)
	if err != nil {
		return nil, err
	}
	s.metrics.IncOrderEvent("accepted")
	return order, nil
}

// Reject cancels an initiated order and returns the escrowed coins to the
// buyer. The reversal is deliberately absent from the transaction log: the
// hold never completed, so the ledger shows no movement for it.
func (s *service) Reject(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error) {
	order, err := s.transition(ctx, orderID, actorID, actorSeller, enums.OrderStatusInitiated, enums.OrderStatusCancelled,
		func(tx *gorm.DB, order *models.EscrowOrder) error {
			return s.ledger.Apply(ctx, tx, []ledger.Entry{
				{AccountID: order.BuyerID, Field: ledger.FieldEscrow, Delta: -order.AmountCoins},
				{AccountID: order.BuyerID, Field: ledger.FieldCoins, Delta: order.AmountCoins},
			})
		})
	if err != nil {
		return nil, err
	}
	s.metrics.IncOrderEvent("rejected")
	return order, nil
}

// Ship marks an accepted order shipped. Seller only; no money moves.
func (s *service) Ship(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error) {
	order, err := s.transition(ctx, orderID, actorID, actorSeller, enums.OrderStatusAccepted, enums.OrderStatusShipped, nil)
	if err != nil {
		return nil, err
	}
	s.metrics.IncOrderEvent("shipped")
	return order, nil
}

// ConfirmDelivery completes a shipped order: the escrowed coins leave the
// buyer and land in the seller's spendable balance, and the release is
// recorded in the transaction log.
func (s *service) ConfirmDelivery(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error) {
	order, err := s.transition(ctx, orderID, actorID, actorBuyer, enums.OrderStatusShipped, enums.OrderStatusCompleted,
		func(tx *gorm.DB, order *models.EscrowOrder) error {
			return s.releaseEscrow(ctx, tx, order)
		})
	if err != nil {
		return nil, err
	}
	s.metrics.IncOrderEvent("completed")
	return order, nil
}

// Dispute flags a shipped order for arbitration. Buyer only; the coins stay
// in escrow until the dispute resolves.
func (s *service) Dispute(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error) {
	order, err := s.transition(ctx, orderID, actorID, actorBuyer, enums.OrderStatusShipped, enums.OrderStatusDisputed, nil)
	if err != nil {
		return nil, err
	}
	s.metrics.IncOrderEvent("disputed")
	return order, nil
}

// ResolveDispute settles a disputed order. This is an arbitration entry
// point, not a buyer/seller operation, so no actor check applies.
func (s *service) ResolveDispute(ctx context.Context, orderID uuid.UUID, resolution DisputeResolution) (*models.EscrowOrder, error) {
	if !resolution.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid dispute resolution %q", resolution))
	}

	to := enums.OrderStatusCompleted
	settle := func(tx *gorm.DB, order *models.EscrowOrder) error {
		return s.releaseEscrow(ctx, tx, order)
	}
	if resolution == ResolutionRefundBuyer {
		to = enums.OrderStatusCancelled
		settle = func(tx *gorm.DB, order *models.EscrowOrder) error {
			return s.ledger.Apply(ctx, tx, []ledger.Entry{
				{AccountID: order.BuyerID, Field: ledger.FieldEscrow, Delta: -order.AmountCoins},
				{AccountID: order.BuyerID, Field: ledger.FieldCoins, Delta: order.AmountCoins},
			})
		}
	}

	order, err := s.transition(ctx, orderID, uuid.Nil, actorAny, enums.OrderStatusDisputed, to, settle)
	if err != nil {
		return nil, err
	}
	s.metrics.IncOrderEvent("dispute_" + string(resolution))
	return order, nil
}

// Get loads an order for one of its parties.
func (s *service) Get(ctx context.Context, orderID, actorID uuid.UUID) (*models.EscrowOrder, error) {
	if orderID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.CodeNotFound, "order not found")
		}
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "load order")
	}
	if actorID != order.BuyerID && actorID != order.SellerID {
		return nil, apperrors.New(apperrors.CodeForbidden, "order belongs to another account")
	}
	return order, nil
}

func (s *service) ListForAccount(ctx context.Context, accountID uuid.UUID, role ListRole) ([]models.EscrowOrder, error) {
	if accountID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "account id is required")
	}
	if role == "" {
		role = ListRoleAll
	}
	if !role.IsValid() {
		return nil, apperrors.New(apperrors.CodeValidation, fmt.Sprintf("invalid role filter %q", role))
	}
	return s.repo.ListByAccount(ctx, accountID, role)
}

type actorRole int

const (
	actorAny actorRole = iota
	actorBuyer
	actorSeller
)

// transition is the shared path for every status change: load, authorize,
// flip the status under its guard, then run the money hook. All inside one
// transaction.
func (s *service) transition(
	ctx context.Context,
	orderID, actorID uuid.UUID,
	role actorRole,
	from, to enums.OrderStatus,
	settle func(tx *gorm.DB, order *models.EscrowOrder) error,
) (*models.EscrowOrder, error) {
	if orderID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "order id is required")
	}
	if role != actorAny && actorID == uuid.Nil {
		return nil, apperrors.New(apperrors.CodeValidation, "actor account id is required")
	}

	var updated *models.EscrowOrder
	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.GetByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.New(apperrors.CodeNotFound, "order not found")
			}
			return apperrors.Wrap(apperrors.CodeInternal, err, "load order")
		}

		switch role {
		case actorBuyer:
			if actorID != order.BuyerID {
				return apperrors.New(apperrors.CodeForbidden, "only the buyer may perform this action")
			}
		case actorSeller:
			if actorID != order.SellerID {
				return apperrors.New(apperrors.CodeForbidden, "only the seller may perform this action")
			}
		}

		if order.Status != from || !from.CanTransitionTo(to) {
			return apperrors.New(apperrors.CodeStateConflict,
				fmt.Sprintf("order is %s, cannot move to %s", order.Status, to)).
				WithDetails(map[string]any{"status": order.Status.String(), "target": to.String()})
		}

		var closedAt *time.Time
		if to.IsTerminal() && to != enums.OrderStatusDisputed {
			now := time.Now().UTC()
			closedAt = &now
		}

		affected, err := repo.UpdateStatus(ctx, orderID, from, to, closedAt)
		if err != nil {
			return err
		}
		if affected == 0 {
			// Lost the race: someone else transitioned first.
			return apperrors.New(apperrors.CodeStateConflict,
				fmt.Sprintf("order left %s before this transition applied", from))
		}

		if settle != nil {
			if err := settle(tx, order); err != nil {
				return err
			}
		}

		order.Status = to
		order.ClosedAt = closedAt
		updated = order
		return nil
	})
	if err != nil {
		return nil, mapTxErr(err)
	}
	return updated, nil
}

// releaseEscrow pays the seller from the buyer's escrow and records the
// release in the transaction log.
func (s *service) releaseEscrow(ctx context.Context, tx *gorm.DB, order *models.EscrowOrder) error {
	if err := s.ledger.Apply(ctx, tx, []ledger.Entry{
		{AccountID: order.BuyerID, Field: ledger.FieldEscrow, Delta: -order.AmountCoins},
		{AccountID: order.SellerID, Field: ledger.FieldCoins, Delta: order.AmountCoins},
	}); err != nil {
		return err
	}

	orderID := order.ID
	_, err := s.txns.Record(ctx, tx, transactions.RecordTransactionInput{
		Type:          enums.TransactionTypeEscrowRelease,
		FromAccountID: order.BuyerID,
		ToAccountID:   order.SellerID,
		Amount:        order.AmountCoins,
		OrderID:       &orderID,
	})
	return err
}

func mapTxErr(err error) error {
	if err == nil {
		return nil
	}
	if db.IsLockContention(err) {
		return apperrors.Wrap(apperrors.CodeBusy, err, "account rows are contended")
	}
	return err
}
