package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/born-ml/scatter/backend/cpu"
	"github.com/born-ml/scatter/scattering"
)

// runFilters implements "scatter filters".
func runFilters(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("filters", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var common commonFlags
	common.register(fs)
	out := fs.String("out", "", "write every filter to this SafeTensors file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	common.markExplicit(fs)

	logger := common.logger(stderr)
	cfg, _, err := common.resolve(logger)
	if err != nil {
		return err
	}
	// Filters are built on the host whatever the compute backend.
	scat, err := scattering.New(cpu.New(), cfg)
	if err != nil {
		return err
	}
	bank := scat.Bank()

	fmt.Fprintf(stdout, "geometry: dim=%d shape=%v J=%d L=%d order=%d\n",
		cfg.Dim, cfg.Shape, cfg.J, cfg.L, cfg.MaxOrder)
	fmt.Fprintf(stdout, "padded:   %v\n", bank.Layout.Padded)
	fmt.Fprintf(stdout, "crop:     start=%v size=%v\n", bank.Layout.CropStart, bank.Layout.CropSize)
	fmt.Fprintf(stdout, "filters:  %d wavelets, %d low-pass scales, %d tensors\n",
		len(bank.Psi), len(bank.Phi), bank.NumFilters())

	if *out != "" {
		meta := map[string]string{"sigma0": fmt.Sprint(cfg.Sigma0)}
		if err := scattering.SaveBank(*out, bank, meta); err != nil {
			return err
		}
		logger.Info("filter bank saved", "path", *out)
	}
	return nil
}
