package export

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/san-kum/springsim/internal/storage"
)

var ErrNoData = errors.New("no data to plot")

const (
	plotWidth  = 8 * vg.Inch
	plotHeight = 5 * vg.Inch
	plotDPI    = 150
)

// Series is one line of a time plot.
type Series struct {
	Title, XLabel, YLabel string
	X, Y                  []float64
}

// SeriesFromSamples extracts a named column against time. Known names
// are x, theta, x_prime, theta_prime and energy.
func SeriesFromSamples(samples []storage.Sample, name string) (Series, error) {
	pick, label, err := column(name)
	if err != nil {
		return Series{}, err
	}
	s := Series{Title: label + " vs time", XLabel: "time (s)", YLabel: label}
	for _, smp := range samples {
		s.X = append(s.X, smp.Time)
		s.Y = append(s.Y, pick(smp))
	}
	return s, nil
}

func column(name string) (func(storage.Sample) float64, string, error) {
	switch name {
	case "x":
		return func(s storage.Sample) float64 { return s.State.X }, "x (m)", nil
	case "theta":
		return func(s storage.Sample) float64 { return s.State.Theta }, "theta (rad)", nil
	case "x_prime":
		return func(s storage.Sample) float64 { return s.State.XPrime }, "x' (m/s)", nil
	case "theta_prime":
		return func(s storage.Sample) float64 { return s.State.ThetaPrime }, "theta' (rad/s)", nil
	case "energy":
		return func(s storage.Sample) float64 { return s.Energy }, "energy (J/kg)", nil
	}
	return nil, "", fmt.Errorf("unknown column %q", name)
}

// Columns lists what SeriesFromSamples accepts.
var Columns = []string{"x", "theta", "x_prime", "theta_prime", "energy"}

func newPlot(s Series) (*plot.Plot, error) {
	if len(s.X) == 0 || len(s.X) != len(s.Y) {
		return nil, ErrNoData
	}
	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.XLabel
	p.Y.Label.Text = s.YLabel
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Padding = vg.Points(10)
	p.Y.Padding = vg.Points(10)
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, 0, len(s.X))
	for i := range s.X {
		if math.IsNaN(s.Y[i]) || math.IsInf(s.Y[i], 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: s.X[i], Y: s.Y[i]})
	}
	if len(pts) == 0 {
		return nil, ErrNoData
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	return p, nil
}

// WritePNG renders one series as a line plot.
func WritePNG(w io.Writer, s Series) error {
	p, err := newPlot(s)
	if err != nil {
		return err
	}
	c := vgimg.NewWith(vgimg.UseWH(plotWidth, plotHeight), vgimg.UseDPI(plotDPI))
	p.Draw(draw.New(c))

	bw := bufio.NewWriter(w)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}

// SavePNG writes one series to path, creating its directory.
func SavePNG(path string, s Series) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create png: %w", err)
	}
	defer f.Close()
	return WritePNG(f, s)
}

// SaveRunPNGs writes one plot per column into dir and returns the paths.
func SaveRunPNGs(dir string, samples []storage.Sample, columns []string) ([]string, error) {
	if len(columns) == 0 {
		columns = Columns
	}
	var paths []string
	for _, name := range columns {
		s, err := SeriesFromSamples(samples, name)
		if err != nil {
			return paths, err
		}
		path := filepath.Join(dir, name+".png")
		if err := SavePNG(path, s); err != nil {
			return paths, fmt.Errorf("%s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
