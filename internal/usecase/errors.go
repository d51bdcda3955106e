package usecase

import (
	"hotel-reservations/internal/infra"
	"hotel-reservations/internal/pkg/errs"
)

// translateRepoErr maps infrastructure error kinds onto the public failure
// taxonomy. Anything unclassified stays a plain wrapped error and surfaces
// as a 500 at the edge.
func translateRepoErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return errs.Mark(err, errs.ErrNotFound)
	case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindDuplicateKey):
		return errs.Mark(err, errs.ErrConflict)
	case infra.IsKind(err, infra.KindInvalidState):
		return errs.Mark(err, errs.ErrInvalidState)
	default:
		return err
	}
}
