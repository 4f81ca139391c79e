package reciprocal

import "github.com/agbru/recipsum/internal/chunk"

// SeqSum returns the sum of 1/x over input, accumulated left to right.
// It is the reference result the parallel drivers are checked against.
// An empty input sums to 0.
func SeqSum(input []float64) float64 {
	return seqRange(input, chunk.Range{Start: 0, End: len(input)})
}

// seqRange is the leaf body shared by every task.
func seqRange(input []float64, r chunk.Range) float64 {
	var sum float64
	for _, x := range input[r.Start:r.End] {
		sum += 1 / x
	}
	return sum
}
