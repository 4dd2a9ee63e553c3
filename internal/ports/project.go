package ports

import "github.com/aalvaropc/mkr1/internal/domain"

type ProjectInitializer interface {
	Init(spec domain.ProjectSpec, force bool) error
}
