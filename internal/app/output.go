package app

import (
	"fmt"
	"io"
	"os"

	"github.com/clementatt/Stripe-customers-import/internal/domain/customer"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4CAF50"))
	failureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Italic(true)
)

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// progressBar redraws a single console line after every row.
type progressBar struct {
	out   io.Writer
	bar   progress.Model
	total int
	done  int
}

func newProgressBar(out io.Writer) *progressBar {
	return &progressBar{
		out: out,
		bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
	}
}

func (p *progressBar) Start(total int) {
	p.total = total
	p.done = 0
	fmt.Fprintf(p.out, "Importing %d records...\n", total)
	p.draw()
}

func (p *progressBar) Increment() {
	p.done++
	p.draw()
}

func (p *progressBar) Finish() {
	fmt.Fprintln(p.out)
}

func (p *progressBar) draw() {
	pct := 1.0
	if p.total > 0 {
		pct = float64(p.done) / float64(p.total)
	}
	fmt.Fprintf(p.out, "\r%s %d/%d", p.bar.ViewAs(pct), p.done, p.total)
}

const lineProgressEvery = 50

// lineProgress prints plain counter lines when output is not a terminal.
type lineProgress struct {
	out   io.Writer
	total int
	done  int
}

func newLineProgress(out io.Writer) *lineProgress {
	return &lineProgress{out: out}
}

func (p *lineProgress) Start(total int) {
	p.total = total
	p.done = 0
	fmt.Fprintf(p.out, "Importing %d records...\n", total)
}

func (p *lineProgress) Increment() {
	p.done++
	if p.done%lineProgressEvery == 0 && p.done < p.total {
		fmt.Fprintf(p.out, "Processed %d/%d records\n", p.done, p.total)
	}
}

func (p *lineProgress) Finish() {
	fmt.Fprintf(p.out, "Processed %d/%d records\n", p.done, p.total)
}

func printSummary(out io.Writer, s *customer.Summary) {
	fmt.Fprintln(out, titleStyle.Render("Import finished!"))
	fmt.Fprintln(out, successStyle.Render(fmt.Sprintf("Imported: %d records", s.SuccessCount)))
	fmt.Fprintln(out, failureStyle.Render(fmt.Sprintf("Failed:   %d records", s.ErrorCount)))
	if s.ErrorCount > 0 {
		fmt.Fprintln(out, detailStyle.Render(fmt.Sprintf("See the log file for details: %s", s.LogPath)))
	}
}

// PrintError writes a fatal error for the user.
func PrintError(out io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(out, failureStyle.Bold(true).Render("Error: "+err.Error()))
}
