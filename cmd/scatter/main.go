// Package main provides the scatter CLI: compute wavelet scattering
// coefficients of a signal and inspect filter banks.
//
// Usage:
//
//	scatter run -dim 2 -shape 64,64 -J 3 -signal impulse -out coeffs.safetensors
//	scatter run -config geometry.yaml -in signal.safetensors -plot energy.png
//	scatter filters -dim 1 -shape 1024 -J 6 -out bank.safetensors
package main

import (
	"fmt"
	"io"
	"os"
)

const version = "v0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 2
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "scatter %s\n", version)
		return 0
	case "run":
		err = runScatter(args[1:], stdout, stderr)
	case "filters":
		err = runFilters(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
	if err != nil {
		fmt.Fprintf(stderr, "scatter %s: %v\n", args[0], err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "scatter - wavelet scattering transforms")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run        Scatter a signal and report coefficient energy")
	fmt.Fprintln(w, "  filters    Build a filter bank and optionally save it")
	fmt.Fprintln(w, "  version    Show version")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'scatter <command> -h' for flags.")
}
