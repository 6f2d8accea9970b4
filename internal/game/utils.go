package game

import (
	"fmt"
	"slices"
)

const (
	MinNumber = 1
	MaxNumber = 9

	// MaxStars is the ceiling passed to the sampler. No target exceeds the
	// largest button.
	MaxStars = 9

	// RoundSeconds is the countdown every round starts with.
	RoundSeconds = 10
)

// NumberPool returns a fresh copy of the numbers in play, 1 through 9.
func NumberPool() []int {
	pool := make([]int, 0, MaxNumber-MinNumber+1)
	for n := MinNumber; n <= MaxNumber; n++ {
		pool = append(pool, n)
	}
	return pool
}

// InPool reports whether n is one of the numbered buttons.
func InPool(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

func sum(nums []int) int {
	total := 0
	for _, n := range nums {
		total += n
	}
	return total
}

// without returns a new slice holding the elements of nums not in drop.
func without(nums, drop []int) []int {
	out := make([]int, 0, len(nums))
	for _, n := range nums {
		if !slices.Contains(drop, n) {
			out = append(out, n)
		}
	}
	return out
}

func mustInPool(n int) {
	if !InPool(n) {
		panic(fmt.Sprintf("number %d is outside the pool %d-%d", n, MinNumber, MaxNumber))
	}
}
