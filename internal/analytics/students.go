// Package analytics answers aggregate queries over student rosters, both
// with plain loops and as chunked map/reduce batches on the shared
// scheduler.
package analytics

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/agbru/recipsum/internal/chunk"
	"github.com/agbru/recipsum/internal/parallel"
)

// Student is one roster record.
type Student struct {
	FirstName           string
	LastName            string
	Age                 int
	Grade               int
	IsCurrentlyEnrolled bool
}

// AverageAgeOfEnrolled returns the mean age of enrolled students, or NaN
// when nobody is enrolled.
func AverageAgeOfEnrolled(students []Student) float64 {
	return ageStatsOf(students).mean()
}

// MostCommonFirstNameOfInactive returns the most frequent first name among
// students not currently enrolled. Ties go to the lexicographically
// smallest name. ok is false when there is no inactive student.
func MostCommonFirstNameOfInactive(students []Student) (name string, ok bool) {
	return mostCommon(nameCountsOf(students))
}

// CountInactiveOlderThan20Failing counts students not enrolled, older than
// 20, with a grade below 65.
func CountInactiveOlderThan20Failing(students []Student) int {
	n := 0
	for _, s := range students {
		if !s.IsCurrentlyEnrolled && s.Age > 20 && s.Grade < 65 {
			n++
		}
	}
	return n
}

// Analyzer runs the same queries as chunked batches on a scheduler. Each
// chunk produces a partial aggregate; partials are merged in chunk order.
type Analyzer struct {
	sched  *parallel.Scheduler
	chunks int
}

// NewAnalyzer creates an Analyzer splitting rosters into chunks pieces.
// A non-positive chunk count uses the scheduler's worker count.
func NewAnalyzer(s *parallel.Scheduler, chunks int) *Analyzer {
	if chunks <= 0 {
		chunks = s.Workers()
	}
	return &Analyzer{sched: s, chunks: chunks}
}

// AverageAgeOfEnrolled is the batch form of the package-level function.
func (a *Analyzer) AverageAgeOfEnrolled(ctx context.Context, students []Student) (float64, error) {
	stats, err := mapReduce(ctx, a, students, ageStatsOf, ageStats.merge)
	if err != nil {
		return 0, err
	}
	return stats.mean(), nil
}

// MostCommonFirstNameOfInactive is the batch form of the package-level
// function, with the same tie rule.
func (a *Analyzer) MostCommonFirstNameOfInactive(ctx context.Context, students []Student) (string, bool, error) {
	counts, err := mapReduce(ctx, a, students, nameCountsOf, mergeCounts)
	if err != nil {
		return "", false, err
	}
	name, ok := mostCommon(counts)
	return name, ok, nil
}

// CountInactiveOlderThan20Failing is the batch form of the package-level
// function.
func (a *Analyzer) CountInactiveOlderThan20Failing(ctx context.Context, students []Student) (int, error) {
	return mapReduce(ctx, a, students, CountInactiveOlderThan20Failing, func(x, y int) int { return x + y })
}

// Report bundles the answers to every roster query.
type Report struct {
	Students               int
	AverageEnrolledAge     float64
	MostCommonInactiveName string
	HasInactive            bool
	InactiveFailingOver20  int
}

// Equal reports whether two reports hold the same answers. Averages are
// compared within a relative tolerance since chunked sums may round
// differently; two NaN averages are equal.
func (r Report) Equal(o Report, epsilon float64) bool {
	if r.Students != o.Students || r.MostCommonInactiveName != o.MostCommonInactiveName ||
		r.HasInactive != o.HasInactive || r.InactiveFailingOver20 != o.InactiveFailingOver20 {
		return false
	}
	a, b := r.AverageEnrolledAge, o.AverageEnrolledAge
	if math.IsNaN(a) || math.IsNaN(b) {
		return math.IsNaN(a) && math.IsNaN(b)
	}
	return math.Abs(a-b) <= epsilon*math.Max(math.Abs(a), math.Abs(b))
}

// ImperativeReport answers every query with the loop forms.
func ImperativeReport(students []Student) Report {
	name, ok := MostCommonFirstNameOfInactive(students)
	return Report{
		Students:               len(students),
		AverageEnrolledAge:     AverageAgeOfEnrolled(students),
		MostCommonInactiveName: name,
		HasInactive:            ok,
		InactiveFailingOver20:  CountInactiveOlderThan20Failing(students),
	}
}

// Report answers every query with the batch forms.
func (a *Analyzer) Report(ctx context.Context, students []Student) (Report, error) {
	avg, err := a.AverageAgeOfEnrolled(ctx, students)
	if err != nil {
		return Report{}, err
	}
	name, ok, err := a.MostCommonFirstNameOfInactive(ctx, students)
	if err != nil {
		return Report{}, err
	}
	count, err := a.CountInactiveOlderThan20Failing(ctx, students)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Students:               len(students),
		AverageEnrolledAge:     avg,
		MostCommonInactiveName: name,
		HasInactive:            ok,
		InactiveFailingOver20:  count,
	}, nil
}

func mapReduce[P any](ctx context.Context, a *Analyzer, students []Student, leaf func([]Student) P, merge func(P, P) P) (P, error) {
	var result P
	plan, _, err := chunk.Plan(a.chunks, len(students))
	if err != nil {
		return result, err
	}
	if len(plan) == 0 {
		// An empty roster still runs one empty batch.
		plan = []chunk.Range{{}}
	}
	partials := make([]P, len(plan))
	tasks := make([]func() error, len(plan))
	for i, r := range plan {
		tasks[i] = func() error {
			partials[i] = leaf(students[r.Start:r.End])
			return nil
		}
	}
	if err := a.sched.RunAll(ctx, tasks); err != nil {
		return result, err
	}
	result = partials[0]
	for _, p := range partials[1:] {
		result = merge(result, p)
	}
	return result, nil
}

type ageStats struct {
	sum   float64
	count int
}

func ageStatsOf(students []Student) ageStats {
	var st ageStats
	for _, s := range students {
		if s.IsCurrentlyEnrolled {
			st.sum += float64(s.Age)
			st.count++
		}
	}
	return st
}

func (a ageStats) merge(b ageStats) ageStats {
	return ageStats{sum: a.sum + b.sum, count: a.count + b.count}
}

func (a ageStats) mean() float64 {
	if a.count == 0 {
		return math.NaN()
	}
	return a.sum / float64(a.count)
}

func nameCountsOf(students []Student) map[string]int {
	counts := make(map[string]int)
	for _, s := range students {
		if !s.IsCurrentlyEnrolled {
			counts[s.FirstName]++
		}
	}
	return counts
}

func mergeCounts(a, b map[string]int) map[string]int {
	for name, n := range b {
		a[name] += n
	}
	return a
}

func mostCommon(counts map[string]int) (string, bool) {
	best, bestCount := "", 0
	for name, n := range counts {
		if n > bestCount || (n == bestCount && name < best) {
			best, bestCount = name, n
		}
	}
	return best, bestCount > 0
}

var (
	firstNames = []string{"Ana", "Bruno", "Camila", "Diego", "Elena", "Felipe", "Gabriela", "Hugo", "Isabel", "Juan"}
	lastNames  = []string{"Garcia", "Lopez", "Martinez", "Rodriguez", "Perez", "Gomez", "Diaz", "Torres"}
)

// Generate builds a deterministic roster of n students.
func Generate(n int, seed uint64) []Student {
	r := rand.New(rand.NewPCG(seed, seed+1))
	students := make([]Student, n)
	for i := range students {
		students[i] = Student{
			FirstName:           firstNames[r.IntN(len(firstNames))],
			LastName:            lastNames[r.IntN(len(lastNames))],
			Age:                 17 + r.IntN(14),
			Grade:               r.IntN(101),
			IsCurrentlyEnrolled: r.IntN(2) == 0,
		}
	}
	return students
}
