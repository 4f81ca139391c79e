// Package chunk turns a chunk count and an element count into contiguous,
// non-overlapping half-open index ranges covering [0, numElements).
//
// Every chunk except possibly the last has Size elements. When numChunks
// exceeds numElements the trailing chunks are empty (Start == End ==
// numElements); Plan reports them by count rather than materializing them.
package chunk

import (
	apperrors "github.com/agbru/recipsum/internal/errors"
)

// Range is a half-open interval [Start, End) of array indices.
// A valid Range satisfies 0 <= Start <= End.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices covered by r.
func (r Range) Len() int { return r.End - r.Start }

// Empty reports whether r covers no index.
func (r Range) Empty() bool { return r.End <= r.Start }

// Split halves r at its midpoint. The left half is [Start, mid) and the
// right half is [mid, End) with mid = (Start+End)/2, so the right half is
// one element longer when Len is odd.
func (r Range) Split() (left, right Range) {
	mid := r.Start + (r.End-r.Start)/2
	return Range{Start: r.Start, End: mid}, Range{Start: mid, End: r.End}
}

// Size returns the default chunk length, ceil(numElements / numChunks).
//
// Parameters:
//   - numChunks: The number of chunks to create; must be positive.
//   - numElements: The number of elements to divide; must be non-negative.
//
// Returns:
//   - int: The chunk length.
//   - error: An InvalidArgumentError if either count is out of range.
func Size(numChunks, numElements int) (int, error) {
	if err := validateCounts(numChunks, numElements); err != nil {
		return 0, err
	}
	return ceilDiv(numElements, numChunks), nil
}

// Start returns the inclusive start index of chunk chunkIndex,
// min(chunkIndex*Size, numElements). The plain product can exceed
// numElements for trailing chunks (7 elements in 6 chunks puts chunk 5 at
// 10); the clamp makes those chunks empty ranges at numElements instead.
func Start(chunkIndex, numChunks, numElements int) (int, error) {
	r, err := Bounds(chunkIndex, numChunks, numElements)
	return r.Start, err
}

// End returns the exclusive end index of chunk chunkIndex,
// min((chunkIndex+1)*Size, numElements).
func End(chunkIndex, numChunks, numElements int) (int, error) {
	r, err := Bounds(chunkIndex, numChunks, numElements)
	return r.End, err
}

// Bounds returns the range of chunk chunkIndex out of numChunks over
// numElements elements.
//
// Parameters:
//   - chunkIndex: Zero-based chunk index in [0, numChunks).
//   - numChunks: The number of chunks; must be positive.
//   - numElements: The number of elements; must be non-negative.
//
// Returns:
//   - Range: The chunk's [Start, End) range, possibly empty.
//   - error: An InvalidArgumentError if any argument is out of range.
func Bounds(chunkIndex, numChunks, numElements int) (Range, error) {
	if err := validateCounts(numChunks, numElements); err != nil {
		return Range{}, err
	}
	if chunkIndex < 0 || chunkIndex >= numChunks {
		return Range{}, apperrors.NewInvalidArgument("chunkIndex",
			"must be in [0, %d), got %d", numChunks, chunkIndex)
	}
	return bounds(chunkIndex, ceilDiv(numElements, numChunks), numElements), nil
}

// Plan partitions [0, numElements) into numChunks chunks, in chunk order.
// Only the leading chunks that hold at least one element are returned; the
// remaining empty chunks, each [numElements, numElements), are counted in
// empty. len(ranges)+empty == numChunks and len(ranges) <= min(numChunks,
// numElements).
func Plan(numChunks, numElements int) (ranges []Range, empty int, err error) {
	if err := validateCounts(numChunks, numElements); err != nil {
		return nil, 0, err
	}
	size := ceilDiv(numElements, numChunks)
	occupied := 0
	if size > 0 {
		occupied = ceilDiv(numElements, size)
	}
	ranges = make([]Range, occupied)
	for i := range ranges {
		ranges[i] = bounds(i, size, numElements)
	}
	return ranges, numChunks - occupied, nil
}

func bounds(chunkIndex, size, numElements int) Range {
	// Guards keep chunkIndex*size <= numElements, so huge chunk indices
	// cannot overflow.
	start := numElements
	if size > 0 && chunkIndex <= numElements/size {
		start = min(chunkIndex*size, numElements)
	}
	end := numElements
	if size > 0 && chunkIndex < numElements/size {
		end = min((chunkIndex+1)*size, numElements)
	}
	return Range{Start: start, End: end}
}

func ceilDiv(a, b int) int {
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

func validateCounts(numChunks, numElements int) error {
	if numChunks <= 0 {
		return apperrors.NewInvalidArgument("numChunks", "must be positive, got %d", numChunks)
	}
	if numElements < 0 {
		return apperrors.NewInvalidArgument("numElements", "must be non-negative, got %d", numElements)
	}
	return nil
}
