// Copyright 2020 Aleksandr Demakin. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/avdva/floatconv"
	"github.com/avdva/floatconv/exact"
	"github.com/avdva/floatconv/internal/logger"
	"github.com/avdva/floatconv/verify"
	"github.com/spf13/cobra"
)

func (app *App) encodeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [flags] [--] <value>...",
		Short: "Encode real numbers into the bits of a format",
		Long: `Encode real numbers into the bits of a format.
Values too large for the format become infinities, values too small become zeros.
"inf", "-inf", and "nan" are accepted.
Flags go before the values. Use -- if the first value is negative.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := app.format()
			if err != nil {
				return err
			}
			patterns := make([]pattern, 0, len(args))
			for _, arg := range args {
				v, err := parseValue(arg)
				if err != nil {
					return err
				}
				p, err := newPattern(arg, floatconv.Encode(v, f), f)
				if err != nil {
					return err
				}
				patterns = append(patterns, p)
			}
			return app.print(patterns, func(w io.Writer) error {
				return app.writePatterns(w, patterns, false)
			})
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func (app *App) decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <bits|0xHEX>...",
		Short: "Decode bit patterns of a format into real numbers",
		Long: `Decode bit patterns of a format into real numbers.
Patterns are given as '0' and '1' symbols, optionally grouped with '_', or as hex numbers with the 0x prefix.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			patterns, err := app.parsePatterns(args)
			if err != nil {
				return err
			}
			return app.print(patterns, func(w io.Writer) error {
				return app.writePatterns(w, patterns, false)
			})
		},
	}
}

func (app *App) breakdownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "breakdown <bits|0xHEX>",
		Short: "Show the sign, exponent, and mantissa fields of a bit pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			patterns, err := app.parsePatterns(args)
			if err != nil {
				return err
			}
			return app.print(patterns[0], func(w io.Writer) error {
				return app.writePattern(w, patterns[0], true)
			})
		},
	}
}

type hexResult struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
}

func (app *App) hexCommand() *cobra.Command {
	var reverse bool
	cmd := &cobra.Command{
		Use:   "hex <bits>...",
		Short: "Convert bit strings to hex, or hex to bits of a format with --reverse",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := app.format()
			if err != nil {
				return err
			}
			results := make([]hexResult, 0, len(args))
			for _, arg := range args {
				res := hexResult{Input: arg}
				if reverse {
					b, err := floatconv.FromHex(arg, f.TotalBits())
					if err != nil {
						return err
					}
					res.Output = b.String()
				} else {
					b, err := floatconv.ParseBits(arg)
					if err != nil {
						return err
					}
					res.Output = "0x" + floatconv.ToHex(b)
				}
				results = append(results, res)
			}
			return app.print(results, func(w io.Writer) error {
				for _, res := range results {
					if _, err := fmt.Fprintln(w, res.Output); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&reverse, "reverse", "r", false, "Convert hex to bits of the selected format")
	return cmd
}

func (app *App) formatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List predefined and custom formats",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			formats := app.formats()
			layouts := make([]floatconv.Layout, 0, len(formats))
			rows := make([][]string, 0, len(formats))
			for _, f := range formats {
				layouts = append(layouts, f.Layout())
				rows = append(rows, []string{
					f.Name(),
					strconv.Itoa(f.TotalBits()),
					fmt.Sprintf("E%dM%d", f.ExponentBits(), f.MantissaBits()),
					strconv.Itoa(f.Bias()),
					formatFloat(f.MaxValue()),
					strconv.Itoa(f.DecimalDigits()),
					f.Description(),
				})
			}
			return app.print(layouts, func(w io.Writer) error {
				return app.writeTable(w, []string{"name", "bits", "layout", "bias", "max", "digits", "description"}, rows)
			})
		},
	}
}

type limitsView struct {
	Format           string `json:"format" yaml:"format"`
	Max              string `json:"max" yaml:"max"`
	Min              string `json:"min" yaml:"min"`
	MaxNormal        string `json:"maxNormal" yaml:"maxNormal"`
	MinNormal        string `json:"minNormal" yaml:"minNormal"`
	SmallestPositive string `json:"smallestPositive" yaml:"smallestPositive"`
	DecimalDigits    int    `json:"decimalDigits" yaml:"decimalDigits"`
}

func (app *App) limitsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "limits",
		Short: "Show the exact range of a format",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			f, err := app.format()
			if err != nil {
				return err
			}
			r, err := exact.Limits(f)
			if err != nil {
				return err
			}
			view := limitsView{
				Format:           f.String(),
				Max:              r.Max.String(),
				Min:              r.Min.String(),
				MaxNormal:        r.MaxNormal.String(),
				MinNormal:        r.MinNormal.String(),
				SmallestPositive: r.SmallestPositive.String(),
				DecimalDigits:    f.DecimalDigits(),
			}
			return app.print(view, func(w io.Writer) error {
				pal := app.palette()
				_, err := fmt.Fprintf(w, "%s\n%s %s\n%s %s\n%s %s\n%s %s\n%s %s\n%s %d\n",
					view.Format,
					pal.label.Render("max:              "), view.Max,
					pal.label.Render("min:              "), view.Min,
					pal.label.Render("max normal:       "), view.MaxNormal,
					pal.label.Render("min normal:       "), view.MinNormal,
					pal.label.Render("smallest positive:"), view.SmallestPositive,
					pal.label.Render("decimal digits:   "), view.DecimalDigits)
				return err
			})
		},
	}
}

type lossView struct {
	Input     string `json:"input" yaml:"input"`
	Format    string `json:"format" yaml:"format"`
	Bits      string `json:"bits" yaml:"bits"`
	Exact     string `json:"exact" yaml:"exact"`
	Stored    string `json:"stored" yaml:"stored"`
	AbsError  string `json:"absError" yaml:"absError"`
	RelError  string `json:"relError" yaml:"relError"`
	Overflow  bool   `json:"overflow" yaml:"overflow"`
	Underflow bool   `json:"underflow" yaml:"underflow"`
}

func (app *App) lossCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "loss [flags] [--] <value>...",
		Short: "Show the exact precision loss of storing values in a format",
		Long: `Show the exact precision loss of storing values in a format.
Flags go before the values. Use -- if the first value is negative.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			f, err := app.format()
			if err != nil {
				return err
			}
			views := make([]lossView, 0, len(args))
			for _, arg := range args {
				v, err := parseValue(arg)
				if err != nil {
					return err
				}
				q, err := exact.Quantize(v, f)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				view := lossView{
					Input:     arg,
					Format:    f.Name(),
					Bits:      q.Bits.String(),
					Exact:     q.Input.String(),
					Stored:    q.Stored.String(),
					AbsError:  q.AbsError.String(),
					RelError:  q.RelError.String(),
					Overflow:  q.Overflow,
					Underflow: q.Underflow,
				}
				if q.Overflow {
					view.Stored = formatFloat(q.StoredFloat)
				}
				views = append(views, view)
			}
			return app.print(views, func(w io.Writer) error {
				pal := app.palette()
				for _, view := range views {
					status := pal.ok.Render("ok")
					switch {
					case view.Overflow:
						status = pal.bad.Render("overflow")
					case view.Underflow:
						status = pal.bad.Render("underflow")
					}
					if _, err := fmt.Fprintf(w, "%s in %s: %s\n  exact:  %s\n  stored: %s\n  error:  %s (relative %s)\n",
						view.Input, view.Format, status, view.Exact, view.Stored, view.AbsError, view.RelError); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().SetInterspersed(false)
	return cmd
}

type checkView struct {
	verify.Report `yaml:",inline"`
	SuccessRate   string `json:"successRate" yaml:"successRate"`
}

func (app *App) checkCommand() *cobra.Command {
	var (
		seed       int64
		random     int
		exhaustive bool
		all        bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check that values survive encoding, decoding, and hex conversion",
		Long: `Check that values survive encoding, decoding, and hex conversion.
The built-in samples are always checked. --random adds pseudo-random values,
--exhaustive adds every bit pattern of formats up to 16 bits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			formats := app.formats()
			if !all {
				f, err := app.format()
				if err != nil {
					return err
				}
				formats = []floatconv.Format{f}
			}
			values := verify.Samples()
			if random > 0 {
				values = append(values, verify.Random(seed, random)...)
			}
			opt := verify.WithLogger(logger.NewComponentLogger("verify"))
			var reports []verify.Report
			if exhaustive {
				for _, f := range formats {
					rs, err := verify.Run(cmd.Context(), []floatconv.Format{f}, append(values[:len(values):len(values)], verify.Exhaustive(f)...), opt)
					if err != nil {
						return err
					}
					reports = append(reports, rs...)
				}
			} else {
				var err error
				if reports, err = verify.Run(cmd.Context(), formats, values, opt); err != nil {
					return err
				}
			}
			views := make([]checkView, 0, len(reports))
			failed := 0
			for _, r := range reports {
				views = append(views, checkView{Report: r, SuccessRate: r.SuccessRate().String()})
				failed += r.Failed
			}
			err := app.print(views, func(w io.Writer) error {
				return app.writeReports(w, views)
			})
			if err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d checks failed", failed)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.Int64Var(&seed, "seed", 1, "Seed of random values")
	flags.IntVar(&random, "random", 0, "Number of random values to check")
	flags.BoolVar(&exhaustive, "exhaustive", false, "Check every bit pattern of formats up to 16 bits")
	flags.BoolVar(&all, "all", false, "Check all formats instead of the selected one")
	return cmd
}

func (app *App) writeReports(w io.Writer, views []checkView) error {
	pal := app.palette()
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rate := pal.ok.Render(v.SuccessRate + "%")
		if v.Failed > 0 {
			rate = pal.bad.Render(v.SuccessRate + "%")
		}
		rows = append(rows, []string{
			v.Format,
			fmt.Sprintf("%d/%d", v.Passed(), v.Total),
			rate,
			strconv.Itoa(v.Exact),
			strconv.Itoa(v.Rounded),
			strconv.Itoa(v.Overflow),
			strconv.Itoa(v.Underflow),
			strconv.Itoa(v.Failed),
		})
	}
	if err := app.writeTable(w, []string{"format", "passed", "rate", "exact", "rounded", "overflow", "underflow", "failed"}, rows); err != nil {
		return err
	}
	for _, v := range views {
		for _, res := range v.Failures {
			if _, err := fmt.Fprintln(w, pal.bad.Render(res.String())); err != nil {
				return err
			}
		}
	}
	return nil
}

// parsePatterns parses bit or hex strings as patterns of the selected format.
func (app *App) parsePatterns(args []string) ([]pattern, error) {
	f, err := app.format()
	if err != nil {
		return nil, err
	}
	result := make([]pattern, 0, len(args))
	for _, arg := range args {
		var b floatconv.Bits
		if strings.HasPrefix(arg, "0x") || strings.HasPrefix(arg, "0X") {
			b, err = floatconv.FromHex(arg, f.TotalBits())
		} else {
			b, err = floatconv.ParseBits(arg)
		}
		if err != nil {
			return nil, err
		}
		p, err := newPattern(arg, b, f)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}

// parseValue parses a real number. Values out of the float64 range become infinities or zeros.
func parseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		var ne *strconv.NumError
		if !errors.As(err, &ne) || !errors.Is(ne.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("bad value %q", s)
		}
	}
	return v, nil
}
