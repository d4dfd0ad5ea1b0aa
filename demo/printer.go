package demo

import (
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"

	"github.com/benz9527/xrbtree/lib/tree"
)

type NodeRow struct {
	Val   int
	Color tree.RBColor
}

type SearchResult struct {
	Val   int
	Found bool
}

// RoundReport is the snapshot of one round, taken before the
// round's tree is released.
type RoundReport struct {
	Round    uint64
	Inserted []int
	Searched []SearchResult
	Deleted  []int
	Ordered  []int
	DFS      []NodeRow
	BFS      []NodeRow
}

// Printer renders the reports as the console tables. The red nodes
// are painted in red unless the colors are disabled.
type Printer struct {
	out   io.Writer
	red   *color.Color
	black *color.Color
}

func NewPrinter(out io.Writer, noColor bool) *Printer {
	p := &Printer{
		out:   out,
		red:   color.New(color.FgRed, color.Bold),
		black: color.New(color.FgHiBlack, color.Bold),
	}
	if noColor {
		p.red.DisableColor()
		p.black.DisableColor()
	}
	return p
}

func (p *Printer) colorName(c tree.RBColor) string {
	if c == tree.Red {
		return p.red.Sprint(c.String())
	}
	return p.black.Sprint(c.String())
}

func (p *Printer) writeRows(builder *strings.Builder, title string, rows []NodeRow) {
	builder.WriteString(title)
	builder.WriteString("\nData\tColor\n")
	for _, row := range rows {
		builder.WriteString(strconv.Itoa(row.Val))
		builder.WriteString("\t")
		builder.WriteString(p.colorName(row.Color))
		builder.WriteString("\n")
	}
}

// Print writes the report in one call, so the reports of the
// concurrent rounds never interleave.
func (p *Printer) Print(report *RoundReport, withRoundHeader bool) error {
	if report == nil {
		return nil
	}
	builder := &strings.Builder{}
	if withRoundHeader {
		builder.WriteString("Round ")
		builder.WriteString(strconv.FormatUint(report.Round, 10))
		builder.WriteString("\n")
	}
	builder.WriteString("Inserting\n")
	builder.WriteString("Searching\n")
	for _, res := range report.Searched {
		builder.WriteString(strconv.FormatBool(res.Found))
		builder.WriteString("\n")
	}
	builder.WriteString("Deleting\n")
	for range report.Deleted {
		builder.WriteString("Deleted!\n")
	}
	builder.WriteString("Ordered:\n")
	builder.WriteString(strings.Join(lo.Map(report.Ordered, func(v int, _ int) string {
		return strconv.Itoa(v)
	}), " "))
	builder.WriteString("\n")
	p.writeRows(builder, "DFS Ordered:", report.DFS)
	p.writeRows(builder, "BFS Ordered:", report.BFS)

	_, err := io.WriteString(p.out, builder.String())
	return err
}
