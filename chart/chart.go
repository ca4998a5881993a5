// Package chart renders sequence statistics as bar charts.
package chart

import (
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"bitbucket.org/Davydov/peploc/bio"
)

// Default image size.
var (
	Width  = 8 * vg.Inch
	Height = 4 * vg.Inch
)

// Bar is a single labelled value.
type Bar struct {
	Label string
	Value float64
}

// BarPlot creates a plot with one bar per value.
func BarPlot(title, ylabel string, bars []Bar) (*plot.Plot, error) {
	p, err := plot.New()
	if err != nil {
		return nil, err
	}
	p.Title.Text = title
	p.Y.Label.Text = ylabel

	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	bc, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return nil, err
	}
	bc.LineStyle.Width = vg.Length(0)
	bc.Color = plotutil.Color(0)
	p.Add(bc)
	p.NominalX(labels...)
	p.X.Tick.Label.Rotation = 1.2
	return p, nil
}

// Trigrams plots the most common trigrams of a sequence.
func Trigrams(seq string, top int) (*plot.Plot, error) {
	grams := bio.TopNGrams(seq, 3, top)
	bars := make([]Bar, len(grams))
	for i, g := range grams {
		bars[i] = Bar{g.Seq, float64(g.Count)}
	}
	return BarPlot("Most common trigrams", "count", bars)
}

// Candidates plots the number of candidate codons per residue.
func Candidates(protein string, cands [][]string) (*plot.Plot, error) {
	bars := make([]Bar, len(cands))
	for i, c := range cands {
		bars[i] = Bar{protein[i : i+1], float64(len(c))}
	}
	return BarPlot("Codons per residue", "codons", bars)
}

// Save writes a plot to a file; the format is taken from the
// extension.
func Save(p *plot.Plot, path string) error {
	return p.Save(Width, Height, path)
}

// Write writes a plot to w in the given format (png, svg, pdf, ...).
func Write(p *plot.Plot, w io.Writer, format string) error {
	wt, err := p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
