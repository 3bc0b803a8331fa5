package service

import (
	"github.com/kalendo/kalendo/internal/domain"
	"github.com/kalendo/kalendo/internal/errors"
)

// ensureOwner gates operations on resources that carry no owner column of
// their own. The caller resolves ownerId first; events take it from their
// parent calendar. Calendars themselves gate through Calendar.OwnedBy.
func ensureOwner(user domain.User, ownerId domain.UserId) error {
	if ownerId != user.Id {
		return errors.Forbidden()
	}
	return nil
}
