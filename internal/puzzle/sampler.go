// Package puzzle generates star counts that can always be matched by some
// subset of the numbers still in play.
package puzzle

// Source is the randomness the sampler draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// AchievableSums returns the sum of every non-empty subset of pool whose sum
// does not exceed ceiling. Sums reached by several subsets appear once per
// subset, so the slice is weighted by subset count.
//
// Subsets are grown one pool element at a time. A subset over the ceiling is
// never extended since pool elements are positive and every superset would
// overflow as well.
func AchievableSums(pool []int, ceiling int) []int {
	sets := []int{0} // sums of the subsets built so far, starting with the empty set
	var sums []int
	for _, n := range pool {
		built := len(sets)
		for j := 0; j < built; j++ {
			sum := sets[j] + n
			if sum > ceiling {
				continue
			}
			sets = append(sets, sum)
			sums = append(sums, sum)
		}
	}
	return sums
}

// SampleAchievableSum picks one entry of AchievableSums(pool, ceiling)
// uniformly by index. It panics if rng is nil or nothing in pool fits under
// the ceiling; callers never ask for a target once the pool is exhausted.
func SampleAchievableSum(rng Source, pool []int, ceiling int) int {
	if rng == nil {
		panic("rng is required to sample a sum")
	}
	sums := AchievableSums(pool, ceiling)
	if len(sums) == 0 {
		panic("no achievable sum: pool is empty or every element exceeds the ceiling")
	}
	return sums[rng.IntN(len(sums))]
}

// Distribution counts how many subsets of pool produce each achievable sum.
func Distribution(pool []int, ceiling int) map[int]int {
	counts := make(map[int]int)
	for _, sum := range AchievableSums(pool, ceiling) {
		counts[sum]++
	}
	return counts
}
