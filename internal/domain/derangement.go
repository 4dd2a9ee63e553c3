package domain

import "fmt"

// Calculator counts derangements: permutations of n elements that leave no
// element in its original position.
type Calculator struct{}

func NewCalculator() *Calculator {
	return &Calculator{}
}

// Calculate returns D(n) using D(n) = (n-1) * (D(n-1) + D(n-2)).
//
// The result is a signed 64-bit integer; D(20) is the largest value that
// fits. Larger inputs wrap like any int64 multiplication.
func (c *Calculator) Calculate(n int) (int64, error) {
	if n < 0 {
		return 0, &OpError{
			Op:   "derangement.calculate",
			Kind: KindInvalidArgument,
			Err:  fmt.Errorf("%w: input must be non-negative", ErrInvalidArgument),
		}
	}
	if n == 0 {
		return 1, nil
	}
	if n == 1 {
		return 0, nil
	}

	prev2, prev1 := int64(1), int64(0)
	for i := 2; i <= n; i++ {
		prev2, prev1 = prev1, int64(i-1)*(prev1+prev2)
	}
	return prev1, nil
}
