package utils

import (
	"fmt"
	"strconv"
	"time"
)

// Pair is an [x, y] data point.
type Pair [2]interface{}

// GroupArrayByKey coalesces pairs that share an x value when merge is set.
// Numeric values are summed, anything else is replaced by the later value.
// Without merge the pairs are returned unchanged.
func GroupArrayByKey(pairs []Pair, merge bool) []Pair {
	if !merge {
		return pairs
	}

	result := make([]Pair, 0, len(pairs))
	index := map[string]int{}
	for _, pair := range pairs {
		id := pairKey(pair[0])
		i, has := index[id]
		if !has {
			index[id] = len(result)
			result = append(result, pair)
			continue
		}

		acc, ok := ToDecimal(result[i][1])
		incoming, ok2 := ToDecimal(pair[1])
		if ok && ok2 {
			sum, _ := acc.Add(incoming).Float64()
			result[i][1] = sum
			continue
		}
		result[i][1] = pair[1]
	}
	return result
}

// pairKey compares times by epoch millisecond and everything else by type and value.
func pairKey(x interface{}) string {
	switch v := x.(type) {
	case time.Time:
		return "t:" + strconv.FormatInt(v.UnixMilli(), 10)
	case nil:
		return "nil"
	}
	return fmt.Sprintf("%T:%v", x, x)
}

// GroupByCategory maps every distinct categoryKey value to the x -> y values
// of its rows. The last row wins when a category repeats an x value.
func GroupByCategory[R ~map[string]interface{}](rows []R, categoryKey, xKey, yKey string) *OrderedMap[*OrderedMap[interface{}]] {
	groups := NewOrderedMap[*OrderedMap[interface{}]]()
	for _, row := range rows {
		category := row[categoryKey]
		group, has := groups.Get(category)
		if !has {
			group = NewOrderedMap[interface{}]()
			groups.Set(category, group)
		}
		group.Set(row[xKey], row[yKey])
	}
	return groups
}

// ExtractUniqueTimes returns every distinct xKey value across rows, each
// mapped to a nil placeholder.
func ExtractUniqueTimes[R ~map[string]interface{}](rows []R, xKey string) *OrderedMap[interface{}] {
	times := NewOrderedMap[interface{}]()
	for _, row := range rows {
		x := row[xKey]
		if _, has := times.Get(x); !has {
			times.Set(x, nil)
		}
	}
	return times
}

// ConcatUnique merges b into a copy of a. Values of b win on collision.
func ConcatUnique[V any](a, b *OrderedMap[V]) *OrderedMap[V] {
	merged := NewOrderedMap[V]()
	if a != nil {
		a.Each(func(key interface{}, value V) {
			merged.Set(key, value)
		})
	}
	if b != nil {
		b.Each(func(key interface{}, value V) {
			merged.Set(key, value)
		})
	}
	return merged
}
