package goqubo

import (
	"fmt"

	"github.com/ising-lab/goqubo/bqm"
)

// Model is the result of a compile: the quadratic polynomial with deferred
// coefficients, the original (possibly higher-degree) sub-Hamiltonian and
// constraint polynomials used for decoding, and the variable table.
// A Model is immutable once built.
type Model struct {
	quadratic   *poly
	subHs       map[string]*poly
	constraints map[string]compiledConstraint
	vars        *VariableTable
}

// Variables returns the variable labels in index order, auxiliary
// variables included.
func (m *Model) Variables() []string { return m.vars.Names() }

// ToBQM evaluates the model's coefficients against the bindings and
// returns a binary quadratic model keyed by variable label.
func (m *Model) ToBQM(feed map[string]float64) (*bqm.Model[string], error) {
	ev := newCoeffEvaluator(feed)
	linear := make(map[string]float64)
	quadratic := make(map[bqm.Pair[string]]float64)
	offset := 0.0

	var outerErr error
	m.quadratic.each(func(t *term) {
		if outerErr != nil {
			return
		}
		value, err := ev.evaluate(t.coeff)
		if err != nil {
			outerErr = err
			return
		}
		switch t.prod.size() {
		case 0:
			// The empty product keys a single offset term.
			offset = value
		case 1:
			name, err := m.vars.Name(t.prod.indexes[0])
			if err != nil {
				outerErr = fmt.Errorf("%w: %v", ErrInternal, err)
				return
			}
			linear[name] = value
		case 2:
			nameA, err := m.vars.Name(t.prod.indexes[0])
			if err != nil {
				outerErr = fmt.Errorf("%w: %v", ErrInternal, err)
				return
			}
			nameB, err := m.vars.Name(t.prod.indexes[1])
			if err != nil {
				outerErr = fmt.Errorf("%w: %v", ErrInternal, err)
				return
			}
			quadratic[bqm.NewPair(nameA, nameB)] = value
		default:
			outerErr = fmt.Errorf("%w: term of degree %d survived order reduction", ErrInternal, t.prod.size())
		}
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return bqm.New(linear, quadratic, offset, bqm.Binary), nil
}

// ToIndexedBQM is ToBQM with variables identified by dense index.
func (m *Model) ToIndexedBQM(feed map[string]float64) (*bqm.Model[int], error) {
	ev := newCoeffEvaluator(feed)
	linear := make(map[int]float64)
	quadratic := make(map[bqm.Pair[int]]float64)
	offset := 0.0

	var outerErr error
	m.quadratic.each(func(t *term) {
		if outerErr != nil {
			return
		}
		value, err := ev.evaluate(t.coeff)
		if err != nil {
			outerErr = err
			return
		}
		switch t.prod.size() {
		case 0:
			offset = value
		case 1:
			linear[t.prod.indexes[0]] = value
		case 2:
			quadratic[bqm.NewPair(t.prod.indexes[0], t.prod.indexes[1])] = value
		default:
			outerErr = fmt.Errorf("%w: term of degree %d survived order reduction", ErrInternal, t.prod.size())
		}
	})
	if outerErr != nil {
		return nil, outerErr
	}
	return bqm.New(linear, quadratic, offset, bqm.Binary), nil
}

// ToQUBO returns the QUBO coefficients (diagonal carries the linear part)
// and the offset, keyed by label.
func (m *Model) ToQUBO(feed map[string]float64) (map[bqm.Pair[string]]float64, float64, error) {
	b, err := m.ToBQM(feed)
	if err != nil {
		return nil, 0, err
	}
	q, offset := b.ToQUBO()
	return q, offset, nil
}

// ToIndexedQUBO is ToQUBO keyed by dense index.
func (m *Model) ToIndexedQUBO(feed map[string]float64) (map[bqm.Pair[int]]float64, float64, error) {
	b, err := m.ToIndexedBQM(feed)
	if err != nil {
		return nil, 0, err
	}
	q, offset := b.ToQUBO()
	return q, offset, nil
}

// ToIsing returns the Ising coefficients (linear, quadratic, offset),
// keyed by label.
func (m *Model) ToIsing(feed map[string]float64) (map[string]float64, map[bqm.Pair[string]]float64, float64, error) {
	b, err := m.ToBQM(feed)
	if err != nil {
		return nil, nil, 0, err
	}
	h, j, offset := b.ToIsing()
	return h, j, offset, nil
}

// ToIndexedIsing is ToIsing keyed by dense index.
func (m *Model) ToIndexedIsing(feed map[string]float64) (map[int]float64, map[bqm.Pair[int]]float64, float64, error) {
	b, err := m.ToIndexedBQM(feed)
	if err != nil {
		return nil, nil, 0, err
	}
	h, j, offset := b.ToIsing()
	return h, j, offset, nil
}

// Energy scores a sample keyed by label. Spin samples are converted with
// b = (s+1)/2 before evaluation.
func (m *Model) Energy(sample map[string]int, vartype bqm.Vartype, feed map[string]float64) (float64, error) {
	binary, err := m.binarySample(sample, vartype)
	if err != nil {
		return 0, err
	}
	b, err := m.ToBQM(feed)
	if err != nil {
		return 0, err
	}
	return b.Energy(binary)
}

// DecodeSample scores a sample and reports per-sub-Hamiltonian energies
// and the state of every constraint. Sub-Hamiltonian and constraint
// energies are computed on the original polynomials, which may be of
// degree above two.
func (m *Model) DecodeSample(sample map[string]int, vartype bqm.Vartype, feed map[string]float64) (*DecodedSolution, error) {
	binary, err := m.binarySample(sample, vartype)
	if err != nil {
		return nil, err
	}
	b, err := m.ToBQM(feed)
	if err != nil {
		return nil, err
	}
	energy, err := b.Energy(binary)
	if err != nil {
		return nil, err
	}

	ev := newCoeffEvaluator(feed)
	subHEnergies := make(map[string]float64, len(m.subHs))
	for label, p := range m.subHs {
		e, err := m.evaluatePoly(p, binary, ev)
		if err != nil {
			return nil, err
		}
		subHEnergies[label] = e
	}
	constraints := make(map[string]ConstraintState, len(m.constraints))
	for label, c := range m.constraints {
		e, err := m.evaluatePoly(c.poly, binary, ev)
		if err != nil {
			return nil, err
		}
		constraints[label] = ConstraintState{Satisfied: c.condition(e), Energy: e}
	}

	return &DecodedSolution{
		Sample:       binary,
		Energy:       energy,
		SubHEnergies: subHEnergies,
		constraints:  constraints,
	}, nil
}

// DecodeSamples decodes each sample in order.
func (m *Model) DecodeSamples(samples []map[string]int, vartype bqm.Vartype, feed map[string]float64) ([]*DecodedSolution, error) {
	result := make([]*DecodedSolution, 0, len(samples))
	for _, sample := range samples {
		s, err := m.DecodeSample(sample, vartype, feed)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// DecodeIndexedSample decodes a sample keyed by dense variable index. The
// returned solution's sample is keyed by label.
func (m *Model) DecodeIndexedSample(sample map[int]int, vartype bqm.Vartype, feed map[string]float64) (*DecodedSolution, error) {
	byLabel, err := m.labelSample(sample)
	if err != nil {
		return nil, err
	}
	return m.DecodeSample(byLabel, vartype, feed)
}

// DecodeIndexedSamples decodes each indexed sample in order.
func (m *Model) DecodeIndexedSamples(samples []map[int]int, vartype bqm.Vartype, feed map[string]float64) ([]*DecodedSolution, error) {
	result := make([]*DecodedSolution, 0, len(samples))
	for _, sample := range samples {
		s, err := m.DecodeIndexedSample(sample, vartype, feed)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// DenseSample converts a dense value sequence (indexed 0..n-1) into an
// indexed sample.
func DenseSample(values []int) map[int]int {
	sample := make(map[int]int, len(values))
	for i, v := range values {
		sample[i] = v
	}
	return sample
}

// binarySample validates a label-keyed sample and converts it to binary
// values. Every compiled variable must be assigned.
func (m *Model) binarySample(sample map[string]int, vartype bqm.Vartype) (map[string]int, error) {
	for _, name := range m.vars.names {
		if _, ok := sample[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingVariable, name)
		}
	}
	return bqm.ConvertSample(sample, vartype, bqm.Binary), nil
}

// labelSample validates an index-keyed sample and rekeys it by label.
func (m *Model) labelSample(sample map[int]int) (map[string]int, error) {
	result := make(map[string]int, len(sample))
	for i, v := range sample {
		name, err := m.vars.Name(i)
		if err != nil {
			return nil, err
		}
		result[name] = v
	}
	return result, nil
}

// evaluatePoly computes the energy of a polynomial at a binary sample.
func (m *Model) evaluatePoly(p *poly, binary map[string]int, ev *coeffEvaluator) (float64, error) {
	sum := 0.0
	var outerErr error
	p.each(func(t *term) {
		if outerErr != nil {
			return
		}
		value := 1
		for _, idx := range t.prod.indexes {
			name, err := m.vars.Name(idx)
			if err != nil {
				outerErr = fmt.Errorf("%w: %v", ErrInternal, err)
				return
			}
			sampleValue, ok := binary[name]
			if !ok {
				outerErr = fmt.Errorf("%w: %q", ErrMissingVariable, name)
				return
			}
			value *= sampleValue
		}
		coeff, err := ev.evaluate(t.coeff)
		if err != nil {
			outerErr = err
			return
		}
		sum += float64(value) * coeff
	})
	if outerErr != nil {
		return 0, outerErr
	}
	return sum, nil
}
