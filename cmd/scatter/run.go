package main

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/born-ml/scatter/scattering"
	"github.com/born-ml/scatter/tensor"
)

// runScatter implements "scatter run".
func runScatter(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var common commonFlags
	common.register(fs)
	in := fs.String("in", "", "SafeTensors file holding the input signal")
	name := fs.String("tensor", "", "tensor name inside -in (default: the signal tensor)")
	kind := fs.String("signal", "impulse", "synthetic signal when -in is empty: impulse, noise or sine")
	seed := fs.Uint64("seed", 1, "seed for the noise signal")
	out := fs.String("out", "", "write coefficients to this SafeTensors file")
	plotPath := fs.String("plot", "", "write a per-path energy chart (png, svg or pdf)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	common.markExplicit(fs)

	logger := common.logger(stderr)
	cfg, backendName, err := common.resolve(logger)
	if err != nil {
		return err
	}

	backend, release, err := openBackend(backendName)
	if err != nil {
		return err
	}
	defer release()

	scat, err := scattering.New(backend, cfg)
	if err != nil {
		return err
	}

	var x *tensor.RawTensor
	source := *kind
	if *in != "" {
		if x, err = scattering.LoadSignal(*in, *name); err != nil {
			return err
		}
		source = *in
	} else if x, err = synthesize(*kind, cfg.Shape, *seed); err != nil {
		return err
	}

	began := time.Now()
	res, err := scat.Scatter(x)
	if err != nil {
		return err
	}
	logger.Info("scattered", "source", source, "backend", backend.Name(),
		"paths", res.NumPaths(), "elapsed", time.Since(began))

	fmt.Fprintf(stdout, "input:   %v (%s)\n", x.Shape(), source)
	fmt.Fprintf(stdout, "output:  %v\n", res.Stacked.Shape())
	for k, e := range orderEnergies(res) {
		start, end := res.Order(k)
		fmt.Fprintf(stdout, "order %d: %4d paths, energy %.6g\n", k, end-start, e)
	}

	if *out != "" {
		meta := map[string]string{
			"source":  source,
			"backend": backend.Name(),
			"method":  string(cfg.Method),
		}
		if err := scattering.SaveResult(*out, res, meta); err != nil {
			return err
		}
		logger.Info("coefficients saved", "path", *out)
	}
	if *plotPath != "" {
		if err := savePathEnergyPlot(res, *plotPath); err != nil {
			return err
		}
		logger.Info("plot saved", "path", *plotPath)
	}
	return nil
}
