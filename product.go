package goqubo

import (
	"sort"
	"strconv"
	"strings"
)

// A product is the variable part of a monomial: a sorted, duplicate-free
// sequence of variable indices. The empty product is the multiplicative
// identity and keys the offset term. Because every variable is binary,
// x*x = x, so merging two products is set union.
type product struct {
	indexes []int
}

// emptyProduct is the multiplicative identity.
var emptyProduct = product{}

func productOf(indexes ...int) product {
	return newProduct(indexes)
}

// newProduct canonicalizes an arbitrary index sequence: sorted, no
// duplicates. The argument is not retained when it needs rewriting.
func newProduct(indexes []int) product {
	if len(indexes) <= 1 {
		return product{indexes: indexes}
	}
	sorted := sort.IntsAreSorted(indexes)
	if !sorted {
		indexes = append([]int(nil), indexes...)
		sort.Ints(indexes)
	}
	for i := 1; i < len(indexes); i++ {
		if indexes[i] == indexes[i-1] {
			if sorted {
				indexes = append([]int(nil), indexes...)
			}
			return product{indexes: dedupSorted(indexes)}
		}
	}
	return product{indexes: indexes}
}

func dedupSorted(indexes []int) []int {
	result := indexes[:1]
	for _, v := range indexes[1:] {
		if v != result[len(result)-1] {
			result = append(result, v)
		}
	}
	return result
}

func (p product) size() int { return len(p.indexes) }

// key returns the canonical map key. Products that denote the same index
// set always render the same key, whatever order they were built in.
func (p product) key() string {
	if len(p.indexes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, idx := range p.indexes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}

// mul merges two products by set union.
func (p product) mul(q product) product {
	if len(p.indexes) == 0 {
		return q
	}
	if len(q.indexes) == 0 {
		return p
	}
	result := make([]int, 0, len(p.indexes)+len(q.indexes))
	i, j := 0, 0
	for i < len(p.indexes) && j < len(q.indexes) {
		switch {
		case p.indexes[i] < q.indexes[j]:
			result = append(result, p.indexes[i])
			i++
		case p.indexes[i] > q.indexes[j]:
			result = append(result, q.indexes[j])
			j++
		default:
			result = append(result, p.indexes[i])
			i++
			j++
		}
	}
	result = append(result, p.indexes[i:]...)
	result = append(result, q.indexes[j:]...)
	return product{indexes: result}
}

// contains reports whether idx is in the product.
func (p product) contains(idx int) bool {
	n := len(p.indexes)
	i := sort.SearchInts(p.indexes, idx)
	return i < n && p.indexes[i] == idx
}

// without returns a product with the given indices removed.
func (p product) without(remove ...int) product {
	result := make([]int, 0, len(p.indexes))
outer:
	for _, idx := range p.indexes {
		for _, r := range remove {
			if idx == r {
				continue outer
			}
		}
		result = append(result, idx)
	}
	return product{indexes: result}
}

func (p product) equals(q product) bool {
	if len(p.indexes) != len(q.indexes) {
		return false
	}
	for i, idx := range p.indexes {
		if idx != q.indexes[i] {
			return false
		}
	}
	return true
}

func (p product) String() string {
	if len(p.indexes) == 0 {
		return "Prod()"
	}
	return "Prod(" + p.key() + ")"
}
