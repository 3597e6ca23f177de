package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/paysecure/paysecure-backend/api/middleware"
	pkgerrors "github.com/paysecure/paysecure-backend/pkg/errors"
)

// requireAccountID reads the authenticated wallet account from the request
// context. The auth middleware seeds it, so a miss means an unauthenticated
// call reached an authed handler.
func requireAccountID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.AccountIDFromContext(r.Context())
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return id, nil
}

func requireUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	return id, nil
}
