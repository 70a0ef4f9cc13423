package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/hwdrift/hwdrift/internal/config"
	"github.com/hwdrift/hwdrift/internal/differ"
	"github.com/hwdrift/hwdrift/internal/hardware"
	"github.com/hwdrift/hwdrift/internal/history"
	"github.com/hwdrift/hwdrift/internal/inventory"
	"github.com/hwdrift/hwdrift/internal/lockstate"
	"github.com/hwdrift/hwdrift/internal/logger"
	"github.com/hwdrift/hwdrift/internal/nav"
	"github.com/hwdrift/hwdrift/internal/output"
	"github.com/hwdrift/hwdrift/internal/storage"
	"github.com/hwdrift/hwdrift/pkg/types"
)

// App is the interactive terminal view. Single-threaded and event-driven:
// one input event at a time, side effects run synchronously before the next
// frame, no state escapes the loop.
type App struct {
	cfg      *config.Config
	log      logger.Logger
	provider hardware.Provider
	renderer *output.TableRenderer

	snapshot *types.Snapshot
	state    *nav.State
	hist     *history.Store

	// advancedLines caches the Advanced tab content. It is recomputed on
	// the first Advanced entry after startup or after an export, and holds
	// the diff against the baseline in place at evaluation time.
	advancedLines []string
	status        string
}

func New(cfg *config.Config, log logger.Logger, provider hardware.Provider) *App {
	return &App{
		cfg:      cfg,
		log:      log,
		provider: provider,
		renderer: output.NewTableRenderer(cfg.NoColor),
		state:    nav.NewState(),
	}
}

// Run collects the inventory once, then drives the view until Quit. Total
// provider unavailability is the only fatal startup condition.
func (a *App) Run(ctx context.Context) error {
	if err := a.provider.Ping(ctx); err != nil {
		return fmt.Errorf("hardware inventory provider unavailable: %w", err)
	}

	builder := inventory.NewBuilder(a.provider, a.log)
	a.snapshot = builder.Build(ctx)

	if hist, err := history.Open(a.cfg.HistoryPath); err != nil {
		a.log.WithField("error", err.Error()).Warn("export history unavailable")
	} else {
		a.hist = hist
		defer hist.Close()
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw terminal mode: %w", err)
	}
	defer func() {
		term.Restore(fd, oldState)
		fmt.Print("\x1b[2J\x1b[H")
	}()

	reader := bufio.NewReader(os.Stdin)
	for {
		a.draw()

		ev, err := readEvent(reader)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}

		switch a.state.Apply(ev) {
		case nav.ActionQuit:
			return nil
		case nav.ActionExport:
			a.export(ctx)
		}
	}
}

// export writes the baseline, records history, and invalidates the cached
// Advanced view so the next entry diffs against the new baseline.
func (a *App) export(ctx context.Context) {
	if err := storage.Write(a.snapshot, a.cfg.ExportPath); err != nil {
		a.log.Error("baseline export failed", err)
		a.status = fmt.Sprintf("Export failed: %v", err)
		return
	}
	a.status = fmt.Sprintf("Exported to %s", a.cfg.ExportPath)
	a.advancedLines = nil

	if a.hist == nil {
		return
	}
	if _, err := a.hist.Record(ctx, a.snapshot); err != nil {
		a.log.Error("history record failed", err)
		return
	}
	if a.cfg.HistoryKeep > 0 {
		if _, err := a.hist.Prune(ctx, a.cfg.HistoryKeep); err != nil {
			a.log.Error("history prune failed", err)
		}
	}
}

// advanced returns the Advanced tab content, computing it on demand.
func (a *App) advanced() []string {
	if a.advancedLines != nil {
		return a.advancedLines
	}

	var lines []string
	baseline, err := storage.Read(a.cfg.ExportPath)
	switch {
	case errors.Is(err, storage.ErrNoBaseline):
		lines = append(lines,
			"No baseline available.",
			"Press Tab to export the current identifiers as a baseline.",
			"")
	case errors.Is(err, storage.ErrMalformed):
		lines = append(lines,
			"Baseline export is malformed and cannot be compared.",
			"Press Tab to re-export and repair it.",
			"")
	case err != nil:
		lines = append(lines, fmt.Sprintf("Baseline unreadable: %v", err), "")
	default:
		report, derr := differ.New().Compare(a.snapshot, baseline)
		if derr != nil {
			lines = append(lines, fmt.Sprintf("Comparison failed: %v", derr), "")
		} else {
			lines = append(lines, a.renderer.DiffLines(report)...)
			lines = append(lines, "")
		}
	}

	lock := lockstate.Evaluate(a.snapshot)
	lines = append(lines, a.renderer.LockLines(&lock)...)

	a.advancedLines = lines
	return lines
}

// draw renders one frame: tab bar, windowed body, status, key help.
func (a *App) draw() {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || height <= 0 {
		width, height = 80, 24
	}

	tab := a.state.ActiveTab()
	var body []string
	if tab == types.CategoryAdvanced {
		body = a.advanced()
	} else {
		body = a.renderer.CategoryLines(a.snapshot, tab)
	}

	// Three chrome rows: tab bar, status, help.
	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	maxOffset := len(body) - visible
	a.state.SetMaxOffset(tab, maxOffset)

	offset := a.state.ScrollOffset()
	end := offset + visible
	if end > len(body) {
		end = len(body)
	}

	var sb strings.Builder
	sb.WriteString("\x1b[2J\x1b[H")
	sb.WriteString(a.tabBar(width) + "\r\n")
	for _, line := range body[offset:end] {
		sb.WriteString(truncate(line, width) + "\r\n")
	}
	for i := end - offset; i < visible; i++ {
		sb.WriteString("\r\n")
	}
	status := a.status
	if status == "" {
		status = fmt.Sprintf("%s | %d fields | captured %s",
			a.snapshot.Hostname, a.snapshot.FieldCount(),
			a.snapshot.Timestamp.Format("15:04:05"))
	}
	sb.WriteString(truncate(status, width) + "\r\n")
	sb.WriteString(truncate("j/k tabs  h/l scroll  a advanced  Tab export  q quit", width))
	fmt.Print(sb.String())
}

func (a *App) tabBar(width int) string {
	var parts []string
	for _, tab := range a.state.Tabs() {
		label := tab.Label()
		if tab == a.state.ActiveTab() {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	return truncate(strings.Join(parts, " "), width)
}

// truncate cuts a line to the terminal width on rune boundaries. Monitor
// names are decoded from UTF-16 and are routinely non-ASCII; a byte-index
// cut could emit an invalid UTF-8 tail.
func truncate(s string, width int) string {
	if width <= 0 || len(s) <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
