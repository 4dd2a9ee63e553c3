package ports

type DerangementCalculator interface {
	Calculate(n int) (int64, error)
}
