// Command quboc compiles YAML Hamiltonian descriptions into QUBO or Ising
// form and decodes solver samples against a compiled model.
//
// Usage:
//
//	quboc compile -f problem.yaml [-feed bindings.yaml] [-ising] [-format auto|table|tsv]
//	quboc decode  -f problem.yaml -samples samples.yaml [-feed bindings.yaml] [-chart out.html]
package main

import (
	"flag"
	"fmt"
	"os"

	goqubo "github.com/ising-lab/goqubo"
	"github.com/ising-lab/goqubo/bqm"
	"github.com/ising-lab/goqubo/pkg/problem"
	"github.com/ising-lab/goqubo/pkg/render"
	"github.com/mattn/go-isatty"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "compile":
		err = runCompile(os.Args[2:])
	case "decode":
		err = runDecode(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "quboc:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  quboc compile -f problem.yaml [-feed bindings.yaml] [-ising] [-format auto|table|tsv] [-v]
  quboc decode  -f problem.yaml -samples samples.yaml [-feed bindings.yaml] [-chart out.html] [-v]`)
}

func compileProblem(path string, verbose bool) (*goqubo.Model, error) {
	prob, err := problem.LoadFile(path)
	if err != nil {
		return nil, err
	}
	expr, err := prob.Expression()
	if err != nil {
		return nil, err
	}
	opts := prob.Options()
	if verbose {
		opts.Logger = goqubo.NewLogger(goqubo.LevelDebug, os.Stderr)
	}
	return goqubo.CompileWithOptions(expr, opts)
}

func loadFeed(path string) (map[string]float64, error) {
	if path == "" {
		return nil, nil
	}
	return problem.LoadBindingsFile(path)
}

func runCompile(args []string) error {
	fs := flag.NewFlagSet("compile", flag.ExitOnError)
	file := fs.String("f", "", "problem file (YAML)")
	feedFile := fs.String("feed", "", "placeholder bindings file (YAML)")
	ising := fs.Bool("ising", false, "emit Ising coefficients instead of QUBO")
	format := fs.String("format", "auto", "output format: auto, table or tsv")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	fs.Parse(args)
	if *file == "" {
		return fmt.Errorf("compile needs -f")
	}

	model, err := compileProblem(*file, *verbose)
	if err != nil {
		return err
	}
	feed, err := loadFeed(*feedFile)
	if err != nil {
		return err
	}

	table := *format == "table" || (*format == "auto" && isatty.IsTerminal(os.Stdout.Fd()))

	if *ising {
		h, j, offset, err := model.ToIsing(feed)
		if err != nil {
			return err
		}
		render.IsingTable(os.Stdout, h, j, offset)
		return nil
	}

	q, offset, err := model.ToQUBO(feed)
	if err != nil {
		return err
	}
	if table {
		render.QUBOTable(os.Stdout, q, offset)
	} else {
		render.QUBOTSV(os.Stdout, q, offset)
	}
	return nil
}

func runDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	file := fs.String("f", "", "problem file (YAML)")
	feedFile := fs.String("feed", "", "placeholder bindings file (YAML)")
	samplesFile := fs.String("samples", "", "samples file (YAML)")
	chartFile := fs.String("chart", "", "write an HTML energy chart")
	verbose := fs.Bool("v", false, "debug logging to stderr")
	fs.Parse(args)
	if *file == "" || *samplesFile == "" {
		return fmt.Errorf("decode needs -f and -samples")
	}

	model, err := compileProblem(*file, *verbose)
	if err != nil {
		return err
	}
	feed, err := loadFeed(*feedFile)
	if err != nil {
		return err
	}
	samples, err := problem.LoadSamplesFile(*samplesFile)
	if err != nil {
		return err
	}
	vartype, err := bqm.ParseVartype(samples.Vartype)
	if err != nil {
		return err
	}

	solutions, err := model.DecodeSamples(samples.Samples, vartype, feed)
	if err != nil {
		return err
	}
	render.SolutionsTable(os.Stdout, solutions)

	if *chartFile != "" {
		f, err := os.Create(*chartFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := render.EnergyChart(f, "sample energies", solutions); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "wrote", *chartFile)
	}
	return nil
}
