package application

import (
	"github.com/revuehub/api/internal/apperr"
	"github.com/revuehub/api/internal/domain/authz"
)

// requireAllowed turns a denied authorization decision into the right error:
// 401 for anonymous callers, 403 for authenticated ones. Identity-based
// denials deliberately carry no resource detail.
func requireAllowed(actor authz.Actor, allowed bool) error {
	if allowed {
		return nil
	}
	if !actor.Authenticated() {
		return apperr.Unauthenticated("authentication required")
	}
	return apperr.Permission("you do not have permission to perform this action")
}
