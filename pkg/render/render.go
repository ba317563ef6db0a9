// Package render formats compiler outputs for humans: QUBO and Ising
// matrices as tables or TSV, decoded solutions as tables, and per-sample
// energies as an HTML bar chart.
package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	goqubo "github.com/ising-lab/goqubo"
	"github.com/ising-lab/goqubo/bqm"
	"github.com/olekukonko/tablewriter"
)

func formatBias(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func quboVariables(q map[bqm.Pair[string]]float64) []string {
	seen := make(map[string]bool, len(q))
	for p := range q {
		seen[p.A] = true
		seen[p.B] = true
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	return vars
}

// QUBOTable renders the QUBO coefficients as an upper-triangular matrix.
func QUBOTable(w io.Writer, q map[bqm.Pair[string]]float64, offset float64) {
	vars := quboVariables(q)

	table := tablewriter.NewWriter(w)
	table.SetHeader(append([]string{""}, vars...))
	for i, a := range vars {
		row := make([]string, len(vars)+1)
		row[0] = a
		for j, b := range vars {
			if j < i {
				continue
			}
			if bias, ok := q[bqm.NewPair(a, b)]; ok {
				row[j+1] = formatBias(bias)
			}
		}
		table.Append(row)
	}
	table.Render()
	fmt.Fprintf(w, "offset: %s\n", formatBias(offset))
}

// QUBOTSV writes the QUBO as a dense tab-separated matrix, the format
// solver pipelines consume.
func QUBOTSV(w io.Writer, q map[bqm.Pair[string]]float64, offset float64) {
	vars := quboVariables(q)
	for _, a := range vars {
		for j, b := range vars {
			if j > 0 {
				fmt.Fprint(w, "\t")
			}
			fmt.Fprint(w, formatBias(q[bqm.NewPair(a, b)]))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "# offset\t%s\n", formatBias(offset))
}

// IsingTable renders Ising coefficients: a linear-bias table followed by a
// coupling table.
func IsingTable(w io.Writer, h map[string]float64, j map[bqm.Pair[string]]float64, offset float64) {
	vars := make([]string, 0, len(h))
	for v := range h {
		vars = append(vars, v)
	}
	sort.Strings(vars)

	linear := tablewriter.NewWriter(w)
	linear.SetHeader([]string{"variable", "h"})
	for _, v := range vars {
		linear.Append([]string{v, formatBias(h[v])})
	}
	linear.Render()

	pairs := make([]bqm.Pair[string], 0, len(j))
	for p := range j {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a].A != pairs[b].A {
			return pairs[a].A < pairs[b].A
		}
		return pairs[a].B < pairs[b].B
	})

	quad := tablewriter.NewWriter(w)
	quad.SetHeader([]string{"pair", "J"})
	for _, p := range pairs {
		quad.Append([]string{p.A + "," + p.B, formatBias(j[p])})
	}
	quad.Render()
	fmt.Fprintf(w, "offset: %s\n", formatBias(offset))
}

// SolutionsTable renders decoded solutions: energy, broken constraints and
// sub-Hamiltonian energies per sample.
func SolutionsTable(w io.Writer, solutions []*goqubo.DecodedSolution) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "energy", "broken", "subh"})
	for i, s := range solutions {
		broken := make([]string, 0)
		for label := range s.Constraints(true) {
			broken = append(broken, label)
		}
		sort.Strings(broken)

		subLabels := make([]string, 0, len(s.SubHEnergies))
		for label := range s.SubHEnergies {
			subLabels = append(subLabels, label)
		}
		sort.Strings(subLabels)
		subs := ""
		for k, label := range subLabels {
			if k > 0 {
				subs += " "
			}
			subs += label + "=" + formatBias(s.SubHEnergies[label])
		}

		table.Append([]string{
			strconv.Itoa(i),
			formatBias(s.Energy),
			joinOrDash(broken),
			subs,
		})
	}
	table.Render()
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	result := items[0]
	for _, s := range items[1:] {
		result += " " + s
	}
	return result
}
