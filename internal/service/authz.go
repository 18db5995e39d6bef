package service

import (
	"github.com/AmarWhoo/cookboxd/internal/domain"
	"github.com/AmarWhoo/cookboxd/internal/platform/metrics"
)

// requireActor fails with ErrUnauthenticated unless actor carries a usable identity.
func requireActor(op string, actor domain.Actor) error {
	if !actor.Authenticated() {
		return unauthenticated(op)
	}
	return nil
}

// requireRole fails with ErrUnauthenticated or ErrForbidden unless the actor
// holds one of roles.
func requireRole(op string, actor domain.Actor, roles ...domain.Role) error {
	if err := requireActor(op, actor); err != nil {
		return err
	}
	if !actor.HasRole(roles...) {
		metrics.RecordDenied(op)
		return forbidden(op, "Insufficient permissions")
	}
	return nil
}

// requireOwnerOrAdmin fails with ErrForbidden and message unless the actor
// owns ownerID or is an admin.
func requireOwnerOrAdmin(op string, actor domain.Actor, ownerID int64, message string) error {
	if err := requireActor(op, actor); err != nil {
		return err
	}
	if !actor.CanModify(ownerID) {
		metrics.RecordDenied(op)
		return forbidden(op, message)
	}
	return nil
}
