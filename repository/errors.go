package repository

import (
	"errors"

	"github.com/lib/pq"

	"jobly/apperr"
)

// Postgres error codes the stores care about.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapPGError reclassifies constraint failures from the driver. Duplicate
// unique columns and dangling foreign keys are data-layer failures, not
// validation failures, so they surface as the 500-class Constraint kind.
func mapPGError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgUniqueViolation:
			return apperr.Constraint("duplicate value violates unique constraint: " + pqErr.Constraint)
		case pgForeignKeyViolation:
			return apperr.Constraint("foreign key violation: " + pqErr.Constraint)
		}
	}
	return err
}
