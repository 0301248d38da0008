package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/term"
)

// ANSI color codes
const (
	colorGreen = "\033[38;5;114m"
	colorDim   = "\033[38;5;65m" // borders
	colorReset = "\033[0m"
)

const bannerTitle = "UNIT TEST REPORT GENERATOR"

// BannerOptions contains the information to display in the banner
type BannerOptions struct {
	WorkDir     string
	Version     string
	Module      string
	Environment string
	ToolPath    string
	Compound    bool
}

// PrintBanner prints the run header, adapting to the terminal width
func PrintBanner(w io.Writer, opts BannerOptions) {
	width := getTermWidth()

	if width >= 60 {
		printFullBanner(w, opts, width)
	} else if width >= 40 {
		printCompactBanner(w, opts)
	} else {
		printMinimalBanner(w, opts)
	}
}

// getTermWidth returns the terminal width, defaults to 80 if unavailable
func getTermWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 80
	}
	return width
}

func enabled(b bool) string {
	if b {
		return "Enabled"
	}
	return "Disabled"
}

func bannerLines(opts BannerOptions) []string {
	return []string{
		"Module:      " + opts.Module,
		"Environment: " + opts.Environment,
		"Compound:    " + enabled(opts.Compound),
		"Tool:        " + opts.ToolPath,
		"Directory:   " + opts.WorkDir,
	}
}

// ============== Full Banner (>= 60) ==============

func printFullBanner(w io.Writer, opts BannerOptions, termWidth int) {
	boxWidth := termWidth
	if boxWidth > 72 {
		boxWidth = 72
	}
	innerWidth := boxWidth - 2

	line := func(content, colored string) string {
		padding := innerWidth - runeWidth(content)
		if padding < 0 {
			padding = 0
		}
		return colorDim + "│" + colorReset + colored + strings.Repeat(" ", padding) + colorDim + "│" + colorReset
	}
	simpleLine := func(content string) string {
		return line(content, content)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, colorDim+"╭"+strings.Repeat("─", innerWidth)+"╮"+colorReset)
	title := "  " + bannerTitle + "  " + opts.Version
	fmt.Fprintln(w, line(title, "  "+colorGreen+bannerTitle+colorReset+"  "+opts.Version))
	fmt.Fprintln(w, simpleLine(""))
	for _, l := range bannerLines(opts) {
		fmt.Fprintln(w, simpleLine("  "+truncatePath(l, innerWidth-4)))
	}
	fmt.Fprintln(w, colorDim+"╰"+strings.Repeat("─", innerWidth)+"╯"+colorReset)
	fmt.Fprintln(w)
}

// ============== Compact Banner (40-59) ==============

func printCompactBanner(w io.Writer, opts BannerOptions) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  "+colorGreen+bannerTitle+colorReset+" "+opts.Version)
	for _, l := range bannerLines(opts) {
		fmt.Fprintln(w, "  "+l)
	}
	fmt.Fprintln(w)
}

// ============== Minimal Banner (< 40) ==============

func printMinimalBanner(w io.Writer, opts BannerOptions) {
	fmt.Fprintf(w, "%sutgen%s %s %s\n", colorGreen, colorReset, opts.Version, opts.Module)
}

// ============== Summary ==============

// PrintSummary prints the outcome of a run as tables. detailed adds the
// extracted subprograms and every filed artifact.
func PrintSummary(w io.Writer, s *Summary, detailed bool) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.SetTitle("UNIT TEST GENERATION COMPLETE")
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
	})

	compound := "Not included"
	if s.Compound {
		compound = "Included"
	}
	t.AppendRows([]table.Row{
		{"Module", s.Module},
		{"Environment", s.Environment},
		{"Functions Processed", len(s.Subprograms)},
		{"Reports Generated", len(s.Reports)},
		{"Compound Tests", compound},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Unit Test Scripts", s.ScriptsDir + string(filepath.Separator)},
		{"Reports & Results", s.ResultsDir + string(filepath.Separator)},
	})
	if len(s.Warnings) > 0 {
		t.AppendSeparator()
		t.AppendRow(table.Row{"Warnings", len(s.Warnings)})
	}
	t.Render()

	if len(s.Warnings) > 0 {
		wt := table.NewWriter()
		wt.SetOutputMirror(w)
		wt.SetStyle(table.StyleRounded)
		wt.AppendHeader(table.Row{"Operation", "File", "Error"})
		wt.SetColumnConfigs([]table.ColumnConfig{
			{Number: 3, WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		})
		for _, warn := range s.Warnings {
			wt.AppendRow(table.Row{warn.Op, warn.Path, warn.Message})
		}
		wt.Render()
	}

	if !detailed {
		return
	}

	dt := table.NewWriter()
	dt.SetOutputMirror(w)
	dt.SetStyle(table.StyleRounded)
	dt.AppendHeader(table.Row{"#", "Subprogram"})
	for i, name := range s.Subprograms {
		dt.AppendRow(table.Row{i + 1, name})
	}
	dt.Render()

	ft := table.NewWriter()
	ft.SetOutputMirror(w)
	ft.SetStyle(table.StyleRounded)
	ft.AppendHeader(table.Row{"Kind", "File"})
	ft.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	for _, f := range s.Scripts {
		ft.AppendRow(table.Row{"script", f})
	}
	for _, f := range s.Reports {
		ft.AppendRow(table.Row{"report", f})
	}
	ft.Render()
}

// ============== Helper Functions ==============

// runeWidth calculates the display width of a string
func runeWidth(s string) int {
	width := 0
	for _, r := range s {
		switch {
		case r >= 0x2500 && r <= 0x259F: // box-drawing and block elements
			width += 1
		case r > 127:
			width += 2 // CJK/other wide characters
		default:
			width += 1
		}
	}
	return width
}

// truncatePath truncates s to maxWidth, keeping the tail: "...suffix"
func truncatePath(s string, maxWidth int) string {
	if runeWidth(s) <= maxWidth {
		return s
	}
	for i := 0; i < len(s); i++ {
		sub := "..." + s[i:]
		if runeWidth(sub) <= maxWidth {
			return sub
		}
	}
	return "..."
}
