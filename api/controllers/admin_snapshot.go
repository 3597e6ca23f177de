package controllers

import (
	"net/http"

	"github.com/paysecure/paysecure-backend/api/responses"
	"github.com/paysecure/paysecure-backend/internal/snapshot"
	pkgerrors "github.com/paysecure/paysecure-backend/pkg/errors"
	"github.com/paysecure/paysecure-backend/pkg/logger"
)

// AdminSnapshotExport dumps the wallet state to the Redis snapshot blob.
// Mounted outside production only.
func AdminSnapshotExport(svc snapshot.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "snapshot service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Export(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"taken_at":     snap.TakenAt,
			"users":        len(snap.Users),
			"accounts":     len(snap.Accounts),
			"orders":       len(snap.Orders),
			"transactions": len(snap.Transactions),
		})
	}
}

// AdminSnapshotRestore replaces the wallet state with the stored blob.
// Mounted outside production only.
func AdminSnapshotRestore(svc snapshot.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "snapshot service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Restore(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"taken_at":     snap.TakenAt,
			"users":        len(snap.Users),
			"accounts":     len(snap.Accounts),
			"orders":       len(snap.Orders),
			"transactions": len(snap.Transactions),
		})
	}
}
