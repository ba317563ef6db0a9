package goqubo

import "fmt"

type indexPair struct {
	a, b int // a < b
}

func (p indexPair) less(q indexPair) bool {
	if p.a != q.a {
		return p.a < q.a
	}
	return p.b < q.b
}

// convertToQuadratic rewrites p into an equivalent polynomial of degree at
// most two. Each round substitutes the variable pair that co-occurs in the
// most higher-degree terms with a fresh auxiliary variable and adds the
// AND penalty forcing aux = a*b at optimality. Every round strictly
// shrinks the total excess degree, which bounds the iteration count.
func convertToQuadratic(p *poly, strength Coeff, vars *VariableTable, logger Logger) (*poly, error) {
	bound := 0
	p.each(func(t *term) {
		if t.prod.size() > 2 {
			bound += t.prod.size() - 2
		}
	})

	for iter := 0; ; iter++ {
		pair, ok := findReplacingPair(p)
		if !ok {
			break
		}
		if iter >= bound {
			return nil, fmt.Errorf("%w: order reduction failed to converge", ErrInternal)
		}

		nameA, err := vars.Name(pair.a)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		nameB, err := vars.Name(pair.b)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
		aux := vars.Index(nameA + " * " + nameB)
		logger.Debugf("reducing pair (%d, %d) with auxiliary %d", pair.a, pair.b, aux)

		// Replace every occurrence of the pair with the auxiliary.
		p.toMulti()
		var replaced []*term
		for _, t := range p.terms {
			if t.prod.contains(pair.a) && t.prod.contains(pair.b) {
				replaced = append(replaced, t)
			}
		}
		for _, t := range replaced {
			delete(p.terms, t.prod.key())
		}
		for _, t := range replaced {
			p.fold(t.prod.without(pair.a, pair.b).mul(productOf(aux)), t.coeff)
		}

		// Penalty forcing aux = a*b on {0,1}: zero when satisfied, at
		// least one strength unit otherwise.
		p.fold(productOf(aux), mulCoeffNum(strength, 3))
		p.fold(productOf(pair.a, aux), mulCoeffNum(strength, -2))
		p.fold(productOf(pair.b, aux), mulCoeffNum(strength, -2))
		p.fold(productOf(pair.a, pair.b), strength)
	}
	return p, nil
}

// findReplacingPair counts co-occurring index pairs over all terms of
// degree above two and returns the most frequent one. Ties break toward
// the lexicographically smallest pair so reduction is reproducible.
func findReplacingPair(p *poly) (indexPair, bool) {
	counts := make(map[indexPair]int)
	p.each(func(t *term) {
		idx := t.prod.indexes
		if len(idx) <= 2 {
			return
		}
		for i := 0; i < len(idx)-1; i++ {
			for j := i + 1; j < len(idx); j++ {
				counts[indexPair{a: idx[i], b: idx[j]}]++
			}
		}
	})
	if len(counts) == 0 {
		return indexPair{}, false
	}
	var best indexPair
	bestCount := 0
	for pair, count := range counts {
		if count > bestCount || (count == bestCount && pair.less(best)) {
			best = pair
			bestCount = count
		}
	}
	return best, true
}
