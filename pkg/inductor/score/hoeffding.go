package score

import (
	"math"
	"sort"

	"github.com/cognicore/inductor/pkg/inductor/term"
)

// Specialize implements the per-example specialization decision of §4.4
// steps 1–7: it picks the best and second-best candidate among c and its
// refinements, folds their score gap into c's running mean, and returns
// the updated mean together with the two candidates. It is not eligible
// (returns (0, c, c)) when c has no support, its body is already as long
// as the body of its first bottom-rule (c.Support[0]), or it has no
// refinements to compare.
func Specialize(c *term.Clause, m Mode) (newMean float64, best, second *term.Clause) {
	if len(c.Support) == 0 || len(c.Refinements) == 0 {
		return 0, c, c
	}
	if len(c.Body) >= len(c.Support[0].Body) {
		return 0, c, c
	}

	pool := candidatePool(c, m)
	sortPool(pool, m)

	best = pool[0]
	if len(pool) > 1 {
		second = pool[1]
	} else {
		second = pool[0]
	}

	newDiff := Score(best, m) - Score(second, m)
	newMean = updateRunningMean(c, newDiff)
	return newMean, best, second
}

func candidatePool(c *term.Clause, m Mode) []*term.Clause {
	if m == ModeFOILGain {
		return append([]*term.Clause{}, c.Refinements...)
	}
	pool := make([]*term.Clause, 0, len(c.Refinements)+1)
	pool = append(pool, c)
	pool = append(pool, c.Refinements...)
	return pool
}

// sortPool orders candidates descending by (score, precision, weight,
// -body length): a higher score wins; ties break toward higher precision,
// then higher weight, then a shorter body.
func sortPool(pool []*term.Clause, m Mode) {
	sort.SliceStable(pool, func(i, j int) bool {
		si, sj := Score(pool[i], m), Score(pool[j], m)
		if si != sj {
			return si > sj
		}
		pi, pj := Precision(pool[i]), Precision(pool[j])
		if pi != pj {
			return pi > pj
		}
		if pool[i].Weight != pool[j].Weight {
			return pool[i].Weight > pool[j].Weight
		}
		return len(pool[i].Body) < len(pool[j].Body)
	})
}

// updateRunningMean folds diff into c's running mean of score
// differences, per §4.4 step 6, and returns the new mean. It does not
// touch c.Seen; that counter is advanced separately, once per example,
// by score/scorer.go's ScoreAndUpdateWeights.
func updateRunningMean(c *term.Clause, diff float64) float64 {
	mean := (c.PrevMeanDiff*float64(c.PrevMeanDiffCount) + diff) / float64(c.PrevMeanDiffCount+1)
	c.PrevMeanDiffCount++
	c.PrevMeanDiff = mean
	return mean
}

// HoeffdingEpsilon returns ε = sqrt(ln(1/delta) / (2n)), the Hoeffding
// bound for confidence 1-delta over n samples.
func HoeffdingEpsilon(delta float64, n uint64) float64 {
	if n == 0 {
		return math.Inf(1)
	}
	return math.Sqrt(math.Log(1/delta) / (2 * float64(n)))
}

// HoeffdingTest reports whether newMean exceeds the Hoeffding bound for
// confidence 1-delta over n samples, i.e. whether the observed gap is
// statistically significant enough to justify specializing.
func HoeffdingTest(newMean, delta float64, n uint64) bool {
	return newMean > HoeffdingEpsilon(delta, n)
}
