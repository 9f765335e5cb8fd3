package remote

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
	"github.com/muhammadolammi/careercompass/internal/domain"
)

// classify maps driver errors onto domain.StoreError kinds. Anything that is
// not a recognised SQLSTATE is treated as a network problem and may be
// retried.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	kind := domain.KindNetwork

	var pqErr *pq.Error
	switch {
	case errors.Is(err, sql.ErrNoRows):
		kind = domain.KindNotFound
	case errors.As(err, &pqErr):
		switch pqErr.Code.Class() {
		case "22", "23":
			kind = domain.KindValidation
		case "28":
			kind = domain.KindPermission
		case "42":
			if pqErr.Code == "42501" {
				kind = domain.KindPermission
			} else {
				kind = domain.KindValidation // schema mismatch
			}
		}
	}
	return &domain.StoreError{Op: op, Kind: kind, Err: err}
}
