package ports

import "github.com/aalvaropc/mkr1/internal/domain"

// RunStore persists run records for later inspection.
type RunStore interface {
	SaveRun(run domain.RunRecord) (id string, err error)
}
