package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/paysecure/paysecure-backend/pkg/config"
	"github.com/paysecure/paysecure-backend/pkg/db/models"
	apperrors "github.com/paysecure/paysecure-backend/pkg/errors"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Snapshot is a flat export of the wallet state. Postgres stays the durable
// store; the blob exists for operator inspection and dev-environment reloads.
type Snapshot struct {
	TakenAt      time.Time                  `json:"taken_at"`
	Users        []models.User              `json:"users"`
	Accounts     []models.Account           `json:"accounts"`
	Orders       []models.EscrowOrder       `json:"orders"`
	Transactions []models.WalletTransaction `json:"transactions"`
}

// Service exports wallet state to Redis and restores it back.
type Service interface {
	Export(ctx context.Context) (*Snapshot, error)
	Restore(ctx context.Context) (*Snapshot, error)
}

type blobStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	SnapshotKey(namespace string) string
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	db     *gorm.DB
	store  blobStore
	runner txRunner
	cfg    config.SnapshotConfig
}

// ServiceParams bundles the dependencies required to build a snapshot service.
type ServiceParams struct {
	DB       *gorm.DB
	Store    blobStore
	TxRunner txRunner
	Config   config.SnapshotConfig
}

// NewService constructs a snapshot service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("db is required")
	}
	if params.Store == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	return &service{
		db:     params.DB,
		store:  params.Store,
		runner: params.TxRunner,
		cfg:    params.Config,
	}, nil
}

// Export reads all wallet tables inside one transaction and writes the JSON
// blob to Redis under the configured namespace.
func (s *service) Export(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{TakenAt: time.Now().UTC()}

	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Order("created_at ASC").Find(&snap.Users).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Order("created_at ASC").Find(&snap.Accounts).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).Order("created_at ASC").Find(&snap.Orders).Error; err != nil {
			return err
		}
		return tx.WithContext(ctx).Order("created_at ASC").Find(&snap.Transactions).Error
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "read wallet state")
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "encode snapshot")
	}
	if err := s.store.Set(ctx, s.store.SnapshotKey(s.cfg.Namespace), payload, s.cfg.TTL); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "store snapshot")
	}
	return snap, nil
}

// Restore replaces the wallet tables with the stored blob's contents, all in
// one transaction. Child tables are cleared first to respect foreign keys.
func (s *service) Restore(ctx context.Context) (*Snapshot, error) {
	raw, err := s.store.Get(ctx, s.store.SnapshotKey(s.cfg.Namespace))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, apperrors.New(apperrors.CodeNotFound, "no snapshot stored")
		}
		return nil, apperrors.Wrap(apperrors.CodeDependency, err, "fetch snapshot")
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "decode snapshot")
	}

	err = s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		for _, table := range []string{"wallet_transactions", "escrow_orders", "accounts", "users"} {
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		if len(snap.Users) > 0 {
			if err := tx.Create(&snap.Users).Error; err != nil {
				return err
			}
		}
		if len(snap.Accounts) > 0 {
			if err := tx.Create(&snap.Accounts).Error; err != nil {
				return err
			}
		}
		if len(snap.Orders) > 0 {
			if err := tx.Create(&snap.Orders).Error; err != nil {
				return err
			}
		}
		if len(snap.Transactions) > 0 {
			if err := tx.Create(&snap.Transactions).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "reload wallet state")
	}
	return &snap, nil
}
