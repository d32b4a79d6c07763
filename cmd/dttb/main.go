// Command dttb computes DVB-T2 minimum field strength figures for
// coverage planning, following the Rec. ITU-R BT.2033-2 / GE06 chain.
package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/murzabaevb/dttb/internal/fieldstrength"
	"github.com/murzabaevb/dttb/internal/logging"
	"github.com/murzabaevb/dttb/internal/report"
	"github.com/murzabaevb/dttb/internal/sweep"
	"github.com/murzabaevb/dttb/internal/ui"
	"github.com/murzabaevb/dttb/internal/version"
)

const usage = `dttb v%s - DVB-T2 minimum field strength calculator

Usage:
  dttb <command> [flags]

Commands:
  summary   Full line-item breakdown for one scenario
  emed      Bare E_med value for scripting
  debug     Breakdown plus table-selection diagnostics
  sweep     CSV across a frequency range
  tui       Interactive scenario explorer

Run 'dttb <command> -h' for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, version.Version)
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "summary":
		err = runSummary(os.Args[2:])
	case "emed":
		err = runEmed(os.Args[2:])
	case "debug":
		err = runDebug(os.Args[2:])
	case "sweep":
		err = runSweep(os.Args[2:])
	case "tui":
		err = runTUI(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Printf(usage, version.Version)
		return
	case "version", "--version":
		fmt.Printf("dttb v%s\n", version.Version)
		return
	default:
		fmt.Fprintf(os.Stderr, "dttb: unknown command %q\n\n", os.Args[1])
		fmt.Fprintf(os.Stderr, usage, version.Version)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// profileFlags carries the scenario flags shared by every command.
type profileFlags struct {
	freq        float64
	mode        string
	environment string
	modulation  string
	codeRate    string
	receiver    string
	antenna     string
	building    string
	probability float64

	// overrides; NaN means not set
	noiseFigure   float64
	noiseBW       float64
	feederLoss    float64
	antGain       float64
	heightLoss    float64
	buildingLoss  float64
	sigmaMacro    float64
	sigmaBuilding float64

	logLevel string
}

func registerProfileFlags(fs *flag.FlagSet) *profileFlags {
	pf := &profileFlags{}
	fs.Float64Var(&pf.freq, "freq", 650, "Frequency in MHz")
	fs.StringVar(&pf.mode, "mode", "FX", "Reception mode (FX, PO, PI, MO)")
	fs.StringVar(&pf.environment, "environment", "urban", "Environment (urban, rural)")
	fs.StringVar(&pf.modulation, "modulation", "64QAM", "Modulation (QPSK, 16QAM, 64QAM, 256QAM)")
	fs.StringVar(&pf.codeRate, "code-rate", "3/5", "Code rate (1/2, 3/5, 2/3, 3/4, 4/5, 5/6)")
	fs.StringVar(&pf.receiver, "receiver-type", "", "Receiver type for PO/PI (portable, handheld)")
	fs.StringVar(&pf.antenna, "handheld-antenna", "", "Handheld antenna type (integrated, external)")
	fs.StringVar(&pf.building, "building-class", "", "Building class for PI (high, medium, low)")
	fs.Float64Var(&pf.probability, "location-probability", fieldstrength.DefaultLocationProbability,
		"Location probability (0.01 to 0.99)")

	nan := math.NaN()
	fs.Float64Var(&pf.noiseFigure, "noise-figure", nan, "Override receiver noise figure F (dB)")
	fs.Float64Var(&pf.noiseBW, "noise-bw", nan, "Override noise bandwidth B (Hz)")
	fs.Float64Var(&pf.feederLoss, "feeder-loss", nan, "Override feeder loss Lf (dB)")
	fs.Float64Var(&pf.antGain, "ant-gain", nan, "Override antenna gain G (dBd)")
	fs.Float64Var(&pf.heightLoss, "height-loss", nan, "Override height loss Lh (dB)")
	fs.Float64Var(&pf.buildingLoss, "building-loss", nan, "Override building entry loss Lb (dB)")
	fs.Float64Var(&pf.sigmaMacro, "sigma-macro", nan, "Override macro-scale sigma (dB)")
	fs.Float64Var(&pf.sigmaBuilding, "sigma-building", nan, "Override building sigma (dB)")

	fs.StringVar(&pf.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return pf
}

// buildProfile assembles a Profile from the parsed flags. Structural
// validation beyond parsing is left to Evaluate.
func (pf *profileFlags) buildProfile() (fieldstrength.Profile, error) {
	var p fieldstrength.Profile
	var err error

	if p.Mode, err = fieldstrength.ParseMode(pf.mode); err != nil {
		return p, err
	}
	if p.Environment, err = fieldstrength.ParseEnvironment(pf.environment); err != nil {
		return p, err
	}
	if p.Modulation, err = fieldstrength.ParseModulation(pf.modulation); err != nil {
		return p, err
	}
	if p.CodeRate, err = fieldstrength.ParseCodeRate(pf.codeRate); err != nil {
		return p, err
	}
	if pf.receiver != "" {
		if p.Receiver, err = fieldstrength.ParseReceiverType(pf.receiver); err != nil {
			return p, err
		}
	}
	if pf.antenna != "" {
		if p.Antenna, err = fieldstrength.ParseAntennaType(pf.antenna); err != nil {
			return p, err
		}
	}
	if pf.building != "" {
		if p.Building, err = fieldstrength.ParseBuildingClass(pf.building); err != nil {
			return p, err
		}
	}

	p.FreqMHz = pf.freq
	p.LocationProbability = pf.probability

	p.Overrides = fieldstrength.Overrides{
		NoiseFigureDB:    setOverride(pf.noiseFigure),
		NoiseBandwidthHz: setOverride(pf.noiseBW),
		FeederLossDB:     setOverride(pf.feederLoss),
		AntennaGainDBD:   setOverride(pf.antGain),
		HeightLossDB:     setOverride(pf.heightLoss),
		BuildingLossDB:   setOverride(pf.buildingLoss),
		SigmaMacroDB:     setOverride(pf.sigmaMacro),
		SigmaBuildingDB:  setOverride(pf.sigmaBuilding),
	}
	return p, nil
}

func setOverride(v float64) *float64 {
	if math.IsNaN(v) {
		return nil
	}
	return &v
}

func (pf *profileFlags) logger() *logging.Logger {
	return logging.New(logging.ParseLevel(pf.logLevel))
}

func runSummary(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	pf := registerProfileFlags(fs)
	asJSON := fs.Bool("json", false, "Emit JSON instead of the text table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := pf.buildProfile()
	if err != nil {
		return err
	}

	logger := pf.logger()
	logger.Debug("Evaluating %v %v %v %v at %g MHz", p.Mode, p.Environment, p.Modulation, p.CodeRate, p.FreqMHz)

	r, err := fieldstrength.Evaluate(p)
	if err != nil {
		return err
	}

	if *asJSON {
		return report.WriteJSON(os.Stdout, r)
	}
	report.WriteSummary(os.Stdout, r)
	return nil
}

func runEmed(args []string) error {
	fs := flag.NewFlagSet("emed", flag.ExitOnError)
	pf := registerProfileFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := pf.buildProfile()
	if err != nil {
		return err
	}
	r, err := fieldstrength.Evaluate(p)
	if err != nil {
		return err
	}
	report.WriteEmed(os.Stdout, r)
	return nil
}

func runDebug(args []string) error {
	fs := flag.NewFlagSet("debug", flag.ExitOnError)
	pf := registerProfileFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, err := pf.buildProfile()
	if err != nil {
		return err
	}
	r, d, err := fieldstrength.EvaluateDetailed(p)
	if err != nil {
		return err
	}
	report.WriteDebug(os.Stdout, r, d)
	return nil
}

func runSweep(args []string) error {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	pf := registerProfileFlags(fs)
	from := fs.Float64("from", 470, "Sweep start frequency (MHz)")
	to := fs.Float64("to", 862, "Sweep end frequency (MHz, inclusive)")
	step := fs.Float64("step", 8, "Sweep step (MHz)")
	workers := fs.Int("workers", 4, "Concurrent evaluations")
	progress := fs.Bool("progress", true, "Show progress bar on stderr")
	outPath := fs.String("out", "", "Write CSV to file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	base, err := pf.buildProfile()
	if err != nil {
		return err
	}

	logger := pf.logger()
	logger.Debug("Sweeping %g..%g MHz step %g with %d workers", *from, *to, *step, *workers)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	cfg := sweep.Config{
		FromMHz: *from,
		ToMHz:   *to,
		StepMHz: *step,
		Workers: *workers,
	}
	if *progress {
		cfg.Progress = os.Stderr
	}

	rows, err := sweep.Run(ctx, base, cfg)
	if err != nil {
		return err
	}

	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("create CSV file: %w", err)
		}
		defer f.Close()
		return sweep.WriteCSV(f, rows)
	}
	return sweep.WriteCSV(os.Stdout, rows)
}

func runTUI(args []string) error {
	fs := flag.NewFlagSet("tui", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	p := tea.NewProgram(ui.New(), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
