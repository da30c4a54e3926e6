package main

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/born-ml/scatter/scattering"
)

// orderEnergies returns the coefficient energy summed per scattering order.
func orderEnergies(res *scattering.Result) []float64 {
	energies := make([]float64, 0, 3)
	for k := 0; k <= 2; k++ {
		start, end := res.Order(k)
		if start == end {
			continue
		}
		var e float64
		for i := start; i < end; i++ {
			e += res.Energy(i)
		}
		energies = append(energies, e)
	}
	return energies
}

// savePathEnergyPlot draws the energy of every path as a bar chart.
func savePathEnergyPlot(res *scattering.Result, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Scattering energy (%d paths)", res.NumPaths())
	p.X.Label.Text = "path"
	p.Y.Label.Text = "energy"

	values := make(plotter.Values, res.NumPaths())
	for i := range values {
		values[i] = res.Energy(i)
	}
	bars, err := plotter.NewBarChart(values, vg.Points(2))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	bars.LineStyle.Width = 0
	p.Add(bars)

	// Mark where each order starts.
	for k := 1; k <= 2; k++ {
		start, end := res.Order(k)
		if start == end {
			continue
		}
		line, err := plotter.NewLine(plotter.XYs{{X: float64(start), Y: 0}, {X: float64(start), Y: maxValue(values)}})
		if err != nil {
			return fmt.Errorf("failed to build order marker: %w", err)
		}
		line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("order %d", k), line)
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot: %w", err)
	}
	return nil
}

func maxValue(values plotter.Values) float64 {
	m := 0.0
	for _, v := range values {
		if v > m {
			m = v
		}
	}
	return m
}
