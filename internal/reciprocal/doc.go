// Package reciprocal computes the sum of reciprocals of a float64 slice,
// sequentially or with divide-and-conquer parallelism on a shared
// parallel.Scheduler.
//
// Two parallel drivers are provided. Engine.Sum forks a binary task tree
// over the whole slice: a range longer than the maximum leaf size is halved
// and both halves run concurrently before their sums are added, left plus
// right. Engine.SumChunked cuts the slice into a fixed number of chunks
// (see package chunk), runs one task per chunk as a batch, and adds the
// partial sums in chunk order.
//
// The default maximum leaf size is half the input length, which makes the
// tree a single split into two leaves. WithMaxLeafSize selects deeper
// trees. For a given input, leaf size and task count the tree shape and
// every addition order are fixed, so repeated runs are bit-identical.
//
// Zero and NaN elements are not errors: 1/0 is +Inf and NaN propagates,
// exactly as in SeqSum.
package reciprocal
