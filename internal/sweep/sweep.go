// Package sweep evaluates a reception scenario across a frequency range
// and renders the results as CSV, one row per frequency step.
package sweep

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/jszwec/csvutil"
	"github.com/schollz/progressbar/v3"

	"github.com/murzabaevb/dttb/internal/fieldstrength"
)

// Config describes a frequency sweep.
type Config struct {
	FromMHz float64
	ToMHz   float64
	StepMHz float64

	// Workers bounds the number of concurrent evaluations. Zero or
	// negative means serial.
	Workers int

	// Progress, when non-nil, receives a progress bar during Run.
	// Intended for os.Stderr so that CSV on stdout stays clean.
	Progress io.Writer
}

// Row is one CSV line of a sweep.
type Row struct {
	FreqMHz      float64 `csv:"freq_mhz"`
	Band         string  `csv:"band"`
	CNRequiredDB float64 `csv:"cn_required_db"`
	EminDBuVPerM float64 `csv:"emin_dbuv_per_m"`
	PmmnDB       float64 `csv:"pmmn_db"`
	HeightLossDB float64 `csv:"lh_db"`
	BuildingDB   float64 `csv:"lb_db"`
	CorrectionDB float64 `csv:"cl_db"`
	EmedDBuVPerM float64 `csv:"emed_dbuv_per_m"`
}

// Frequencies expands the sweep range into its step points. The upper
// bound is inclusive when it lands on a step.
func (c Config) Frequencies() ([]float64, error) {
	if c.StepMHz <= 0 {
		return nil, fmt.Errorf("sweep: step must be positive, got %g", c.StepMHz)
	}
	if c.ToMHz < c.FromMHz {
		return nil, fmt.Errorf("sweep: empty range %g..%g MHz", c.FromMHz, c.ToMHz)
	}

	var freqs []float64
	for i := 0; ; i++ {
		f := c.FromMHz + float64(i)*c.StepMHz
		if f > c.ToMHz+1e-9 {
			break
		}
		freqs = append(freqs, f)
	}
	return freqs, nil
}

// Run evaluates the base profile at every step frequency. Rows come
// back in ascending frequency order regardless of worker count; the
// first evaluation error cancels the rest.
func Run(ctx context.Context, base fieldstrength.Profile, cfg Config) ([]Row, error) {
	freqs, err := cfg.Frequencies()
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if cfg.Progress != nil {
		bar = progressbar.NewOptions(len(freqs),
			progressbar.OptionSetWriter(cfg.Progress),
			progressbar.OptionSetDescription("sweeping"),
			progressbar.OptionClearOnFinish(),
		)
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(freqs) {
		workers = len(freqs)
	}

	rows := make([]Row, len(freqs))
	idxCh := make(chan int)
	errCh := make(chan error, workers)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxCh {
				p := base
				p.FreqMHz = freqs[i]
				r, err := fieldstrength.Evaluate(p)
				if err != nil {
					errCh <- fmt.Errorf("sweep at %g MHz: %w", freqs[i], err)
					cancel()
					return
				}
				rows[i] = Row{
					FreqMHz:      r.FreqMHz,
					Band:         r.Band,
					CNRequiredDB: r.CNRequiredDB,
					EminDBuVPerM: r.EminDBuVPerM,
					PmmnDB:       r.ManMadeNoiseDB,
					HeightLossDB: r.HeightLossDB,
					BuildingDB:   r.BuildingLossDB,
					CorrectionDB: r.CorrectionDB,
					EmedDBuVPerM: r.EmedDBuVPerM,
				}
				if bar != nil {
					_ = bar.Add(1)
				}
			}
		}()
	}

feed:
	for i := range freqs {
		select {
		case idxCh <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(idxCh)
	wg.Wait()
	if bar != nil {
		_ = bar.Finish()
	}

	select {
	case err := <-errCh:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rows, nil
}

// WriteCSV writes the rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	out, err := csvutil.Marshal(rows)
	if err != nil {
		return fmt.Errorf("sweep: marshal CSV: %w", err)
	}
	_, err = w.Write(out)
	return err
}
