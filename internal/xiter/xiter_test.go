package xiter

import (
	"errors"
	"iter"
	"slices"
	"testing"
)

func TestSortedKeys(t *testing.T) {
	input := map[string]int{"c": 3, "a": 1, "b": 2}
	got := slices.Collect(SortedKeys(input))
	want := []string{"a", "b", "c"}
	if !slices.Equal(got, want) {
		t.Fatalf("SortedKeys() = %v, want %v", got, want)
	}
}

func pairs(values []int, failAt int, failure error) iter.Seq2[int, error] {
	return func(yield func(int, error) bool) {
		for i, v := range values {
			if i == failAt {
				yield(0, failure)
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}

func TestUntilStopsAtError(t *testing.T) {
	boom := errors.New("boom")
	var err error
	got := slices.Collect(Until(pairs([]int{1, 2, 3, 4}, 2, boom), &err))
	if !slices.Equal(got, []int{1, 2}) {
		t.Fatalf("Until() = %v, want [1 2]", got)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestUntilEarlyStop(t *testing.T) {
	var err error
	sum := 0
	for v := range Until(pairs([]int{1, 2, 3, 4, 5}, -1, nil), &err) {
		sum += v
		if v == 3 {
			break
		}
	}
	if sum != 6 || err != nil {
		t.Fatalf("sum = %d, err = %v, want 6, nil", sum, err)
	}
}
