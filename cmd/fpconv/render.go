package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/avdva/floatconv"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// pattern is a bit pattern in a format, as shown by encode, decode, and breakdown.
type pattern struct {
	Input  string           `json:"input" yaml:"input"`
	Format string           `json:"format" yaml:"format"`
	Bits   string           `json:"bits" yaml:"bits"`
	Hex    string           `json:"hex" yaml:"hex"`
	Value  string           `json:"value" yaml:"value"`
	Fields floatconv.Fields `json:"fields" yaml:"fields"`
}

func newPattern(input string, b floatconv.Bits, f floatconv.Format) (pattern, error) {
	v, err := floatconv.Decode(b, f)
	if err != nil {
		return pattern{}, err
	}
	fields, err := floatconv.Breakdown(b, f)
	if err != nil {
		return pattern{}, err
	}
	return pattern{
		Input:  input,
		Format: f.Name(),
		Bits:   b.String(),
		Hex:    "0x" + floatconv.ToHex(b),
		Value:  formatFloat(v),
		Fields: fields,
	}, nil
}

type palette struct {
	sign, exponent, mantissa, label, ok, bad lipgloss.Style
}

func (app *App) palette() palette {
	r := app.renderer
	return palette{
		sign:     r.NewStyle().Foreground(lipgloss.Color("196")),
		exponent: r.NewStyle().Foreground(lipgloss.Color("46")),
		mantissa: r.NewStyle().Foreground(lipgloss.Color("39")),
		label:    r.NewStyle().Foreground(lipgloss.Color("240")),
		ok:       r.NewStyle().Foreground(lipgloss.Color("46")),
		bad:      r.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// bits renders the fields of a pattern in their colors, separated by spaces.
func (p palette) bits(fields floatconv.Fields) string {
	return p.sign.Render(fields.Sign) + " " + p.exponent.Render(fields.Exponent) + " " + p.mantissa.Render(fields.Mantissa)
}

func (app *App) writePattern(w io.Writer, p pattern, detailed bool) error {
	pal := app.palette()
	lines := [][2]string{
		{"input", p.Input},
		{"format", p.Format},
		{"bits", pal.bits(p.Fields)},
		{"hex", p.Hex},
		{"value", p.Value},
		{"class", p.Fields.Class.String()},
	}
	if detailed {
		lines = append(lines,
			[2]string{"sign", fmt.Sprintf("%s (%d)", pal.sign.Render(p.Fields.Sign), p.Fields.SignValue)},
			[2]string{"exponent", fmt.Sprintf("%s (%d)", pal.exponent.Render(p.Fields.Exponent), p.Fields.ExponentValue)},
			[2]string{"mantissa", fmt.Sprintf("%s (%d)", pal.mantissa.Render(p.Fields.Mantissa), p.Fields.MantissaValue)},
		)
	}
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(pal.label.Render(fmt.Sprintf("%-9s", l[0]+":")))
		sb.WriteString(" ")
		sb.WriteString(l[1])
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (app *App) writePatterns(w io.Writer, patterns []pattern, detailed bool) error {
	for i, p := range patterns {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := app.writePattern(w, p, detailed); err != nil {
			return err
		}
	}
	return nil
}

func (app *App) writeTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	_, err := fmt.Fprintln(w, t.String())
	return err
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
