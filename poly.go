package goqubo

import (
	"sort"
	"strings"
)

// A term is one monomial: a product of binary variables scaled by a
// deferred coefficient.
type term struct {
	prod  product
	coeff Coeff
}

// A poly is a sparse polynomial mapping products to coefficients. A node
// that expands to a single monomial is kept in the mono fast path; the map
// is materialized on the first fold that needs it. A poly is exclusively
// owned by whatever is transforming it; copy forks the term storage while
// sharing the immutable coefficient nodes.
type poly struct {
	mono  *term            // non-nil for the single-term representation
	terms map[string]*term // keyed by product.key()
}

func newMonoPoly(c Coeff, p product) *poly {
	return &poly{mono: &term{prod: p, coeff: c}}
}

func newZeroPoly() *poly {
	return &poly{terms: map[string]*term{}}
}

func (p *poly) size() int {
	if p.mono != nil {
		return 1
	}
	return len(p.terms)
}

// each visits every term. The visited terms belong to the poly; callers
// must not retain them across mutations.
func (p *poly) each(fn func(*term)) {
	if p.mono != nil {
		fn(p.mono)
		return
	}
	for _, t := range p.terms {
		fn(t)
	}
}

// sortedTerms returns the terms ordered by degree, then by index sequence, for deterministic
// iteration where output order is observable.
func (p *poly) sortedTerms() []*term {
	result := make([]*term, 0, p.size())
	p.each(func(t *term) { result = append(result, t) })
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].prod, result[j].prod
		if a.size() != b.size() {
			return a.size() < b.size()
		}
		for k := 0; k < a.size(); k++ {
			if a.indexes[k] != b.indexes[k] {
				return a.indexes[k] < b.indexes[k]
			}
		}
		return false
	})
	return result
}

// toMulti switches the poly to the map representation in place.
func (p *poly) toMulti() {
	if p.mono == nil {
		return
	}
	p.terms = map[string]*term{p.mono.prod.key(): p.mono}
	p.mono = nil
}

// fold adds a single monomial, combining coefficients on a product hit.
func (p *poly) fold(prod product, c Coeff) {
	p.toMulti()
	key := prod.key()
	if t, ok := p.terms[key]; ok {
		t.coeff = addCoeff(t.coeff, c)
	} else {
		p.terms[key] = &term{prod: prod, coeff: c}
	}
}

// copy forks the polynomial. Term records are duplicated; coefficient
// nodes are immutable and shared.
func (p *poly) copy() *poly {
	if p.mono != nil {
		return &poly{mono: &term{prod: p.mono.prod, coeff: p.mono.coeff}}
	}
	terms := make(map[string]*term, len(p.terms))
	for k, t := range p.terms {
		terms[k] = &term{prod: t.prod, coeff: t.coeff}
	}
	return &poly{terms: terms}
}

// addPoly folds b into a (or a into b, whichever is larger) and returns
// the merged polynomial. Both arguments are consumed.
func addPoly(a, b *poly) *poly {
	if a.mono != nil && b.mono != nil {
		if a.mono.prod.equals(b.mono.prod) {
			a.mono.coeff = addCoeff(a.mono.coeff, b.mono.coeff)
			return a
		}
	}
	if b.size() > a.size() {
		a, b = b, a
	}
	a.toMulti()
	b.each(func(t *term) { a.fold(t.prod, t.coeff) })
	return a
}

// mulPoly returns the product of two polynomials. Neither argument is
// modified.
func mulPoly(a, b *poly) *poly {
	if a.mono != nil && b.mono != nil {
		return newMonoPoly(mulCoeff(a.mono.coeff, b.mono.coeff), a.mono.prod.mul(b.mono.prod))
	}
	result := &poly{terms: make(map[string]*term, a.size()*b.size())}
	a.each(func(ta *term) {
		b.each(func(tb *term) {
			result.fold(ta.prod.mul(tb.prod), mulCoeff(ta.coeff, tb.coeff))
		})
	})
	return result
}

func (p *poly) String() string {
	var b strings.Builder
	b.WriteString("Poly(")
	for i, t := range p.sortedTerms() {
		if i > 0 {
			b.WriteString(" + ")
		}
		b.WriteString(t.coeff.String())
		b.WriteByte('*')
		b.WriteString(t.prod.String())
	}
	b.WriteByte(')')
	return b.String()
}
