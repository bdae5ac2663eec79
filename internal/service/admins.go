package service

import (
	"context"

	"github.com/aliskhannn/lingua/internal/requestctx"
)

// adminSet holds the configured administrator user ids.
type adminSet map[string]struct{}

func newAdminSet(ids []string) adminSet {
	set := make(adminSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (a adminSet) contains(ctx context.Context) bool {
	userID := requestctx.UserIDFromContext(ctx)
	if userID == "" {
		return false
	}
	_, ok := a[userID]
	return ok
}
