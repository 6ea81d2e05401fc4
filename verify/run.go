package verify

import (
	"context"
	"io"

	"github.com/avdva/floatconv"
	"github.com/charmbracelet/log"
	"github.com/robaho/fixed"
	"golang.org/x/sync/errgroup"
)

// Report sums up the results of one format.
type Report struct {
	Format    string `json:"format" yaml:"format"`
	Total     int    `json:"total" yaml:"total"`
	Exact     int    `json:"exact" yaml:"exact"`
	Rounded   int    `json:"rounded" yaml:"rounded"`
	Overflow  int    `json:"overflow" yaml:"overflow"`
	Underflow int    `json:"underflow" yaml:"underflow"`
	Failed    int    `json:"failed" yaml:"failed"`
	// Failures holds every failed result, in the order of values.
	Failures []Result `json:"-" yaml:"-"`
}

// Passed returns the number of results that did not fail.
func (r Report) Passed() int {
	return r.Total - r.Failed
}

// Count returns the number of results with status s.
func (r Report) Count(s Status) int {
	switch s {
	case Exact:
		return r.Exact
	case Rounded:
		return r.Rounded
	case Overflow:
		return r.Overflow
	case Underflow:
		return r.Underflow
	case Failed:
		return r.Failed
	}
	return 0
}

// SuccessRate returns the percentage of passed results.
// An empty report has a zero rate.
func (r Report) SuccessRate() fixed.Fixed {
	if r.Total == 0 {
		return fixed.NewF(0)
	}
	return fixed.NewF(100 * float64(r.Passed()) / float64(r.Total))
}

func (r *Report) add(res Result) {
	r.Total++
	switch res.Status {
	case Exact:
		r.Exact++
	case Rounded:
		r.Rounded++
	case Overflow:
		r.Overflow++
	case Underflow:
		r.Underflow++
	default:
		r.Failed++
		r.Failures = append(r.Failures, res)
	}
}

type options struct {
	logger *log.Logger
}

// Option configures Run.
type Option func(*options)

// WithLogger makes Run log its progress to l.
// Per-format summaries are logged at debug level, failures at warn level.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Run checks every value in every format, one goroutine per format.
// Reports are returned in the order of formats.
// Run stops and returns ctx.Err() if ctx is cancelled.
func Run(ctx context.Context, formats []floatconv.Format, values []float64, opts ...Option) ([]Report, error) {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}
	reports := make([]Report, len(formats))
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range formats {
		i, f := i, f
		g.Go(func() error {
			r := Report{Format: f.Name()}
			o.logger.Debug("Checking format", "format", f.Name(), "values", len(values))
			for _, v := range values {
				if err := ctx.Err(); err != nil {
					return err
				}
				res := Check(Case{Value: v, Format: f})
				if res.Status == Failed {
					o.logger.Warn("Check failed", "format", f.Name(), "value", v, "bits", res.Bits.String(), "reason", res.Reason)
				}
				r.add(res)
			}
			o.logger.Debug("Format checked", "format", f.Name(), "passed", r.Passed(), "total", r.Total, "rate", r.SuccessRate().String())
			reports[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}
