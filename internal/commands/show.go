package commands

import (
	"bufio"
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/klabast/wb-services/holiday-calendar/internal/app"
	"github.com/klabast/wb-services/holiday-calendar/internal/calendar"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

const defaultWidth = 80

// Show handles the show subcommand: it renders the month view in the
// terminal and, when attached to one, lets the user navigate it.
func Show(args []string) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("show", flag.ExitOnError)
	country := fs.String("country", cfg.Country, "Country code, e.g. US or DE")
	year := fs.Int("year", 0, "Year of the holidays (default: current year)")
	month := fs.Int("month", 0, "Month to show, 1-12 (default: current month)")
	hide := fs.Bool("hide", false, "Start with holidays hidden")
	once := fs.Bool("once", false, "Render once and exit, even on a terminal")
	weekStart := fs.String("week-start", cfg.WeekStart, "First day of the week: sunday or monday")
	source := fs.String("source", cfg.Source, "Holiday source: nager or builtin")
	if err := fs.Parse(args); err != nil {
		return err
	}

	code, ok := app.NormalizeCountry(*country)
	if !ok {
		return fmt.Errorf("invalid country %q", *country)
	}
	ws, err := app.ParseWeekStart(*weekStart)
	if err != nil {
		return err
	}
	if err := app.ValidateSource(*source); err != nil {
		return err
	}
	if *year != 0 {
		if err := app.ValidateYear(*year); err != nil {
			return err
		}
	}
	cfg.Source = *source
	src := cfg.NewHolidaySource()

	now := time.Now()
	opts := []calendar.WidgetOption{
		calendar.WithWeekStart(ws),
		calendar.WithShowHolidays(!*hide),
	}
	if *year != 0 || *month != 0 {
		start := calendar.ThisMonth(now)
		if *year != 0 {
			start.Year = *year
		}
		if *month != 0 {
			if start, err = calendar.NewMonthContext(start.Year, time.Month(*month)); err != nil {
				return err
			}
		}
		opts = append(opts, calendar.WithMonth(start))
	}

	interactive := !*once && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	if interactive {
		src.Next = spinnerSource{next: src.Next, out: os.Stderr}
	}

	ctx := context.Background()
	session := app.NewSession(ctx, src, code, *year, cfg.FetchTimeout, time.Now, opts...)
	if !interactive {
		return render(os.Stdout, session, defaultWidth)
	}
	return runInteractive(ctx, session)
}

// spinnerSource shows a spinner on out while the wrapped source fetches.
// Cache hits never reach it.
type spinnerSource struct {
	next app.HolidaySource
	out  io.Writer
}

func (s spinnerSource) Holidays(ctx context.Context, country string, year int) ([]calendar.Event, error) {
	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(fmt.Sprintf("Fetching holidays for %s %d...", country, year)),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetWidth(20),
		progressbar.OptionSetWriter(s.out),
		progressbar.OptionClearOnFinish(),
	)
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				_ = bar.Add(1)
			}
		}
	}()

	events, err := s.next.Holidays(ctx, country, year)
	close(done)
	_ = bar.Finish()
	return events, err
}

func render(w io.Writer, s *app.Session, width int) error {
	widget := s.Widget()
	return app.RenderTerminal(w, widget.View(), app.TerminalHeader{
		Country:     s.Country(),
		HolidayYear: s.Year(),
		ToggleLabel: widget.ToggleLabel(),
	}, width)
}

func runInteractive(ctx context.Context, s *app.Session) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	keys := bufio.NewReader(os.Stdin)
	for {
		if err := redraw(os.Stdout, s); err != nil {
			return err
		}
		a, err := readAction(keys)
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		if !apply(ctx, s, a) {
			return nil
		}
	}
}

// redraw clears the screen and renders the session; raw mode needs explicit
// carriage returns.
func redraw(w io.Writer, s *app.Session) error {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = defaultWidth
	}
	var buf bytes.Buffer
	buf.WriteString("\x1b[H\x1b[2J")
	if err := render(&buf, s, width); err != nil {
		return err
	}
	if err := app.RenderHelp(&buf); err != nil {
		return err
	}
	_, err = io.WriteString(w, strings.ReplaceAll(buf.String(), "\n", "\r\n"))
	return err
}

type action int

const (
	actionNone action = iota
	actionRetreat
	actionAdvance
	actionToggle
	actionNextCountry
	actionNextYear
	actionPrevYear
	actionQuit
)

// readAction reads one key press, including the escape sequences of the
// left and right arrow keys. Bytes after Esc are only consumed when they
// start a sequence.
func readAction(r *bufio.Reader) (action, error) {
	b, err := r.ReadByte()
	if err != nil {
		return actionNone, err
	}
	switch b {
	case 'p', 'h':
		return actionRetreat, nil
	case 'n', 'l':
		return actionAdvance, nil
	case 't', ' ':
		return actionToggle, nil
	case 'c':
		return actionNextCountry, nil
	case 'y':
		return actionNextYear, nil
	case 'Y':
		return actionPrevYear, nil
	case 'q', 3, 4: // q, Ctrl+C, Ctrl+D
		return actionQuit, nil
	case 0x1b:
		// A lone Esc arrives without a sequence behind it.
		if r.Buffered() == 0 {
			return actionNone, nil
		}
		if next, err := r.Peek(1); err != nil || next[0] != '[' {
			return actionNone, nil
		}
		_, _ = r.Discard(1)
		code, err := r.ReadByte()
		if err != nil {
			return actionNone, err
		}
		switch code {
		case 'D':
			return actionRetreat, nil
		case 'C':
			return actionAdvance, nil
		}
	}
	return actionNone, nil
}

// apply performs a; it returns false when the session should end.
func apply(ctx context.Context, s *app.Session, a action) bool {
	w := s.Widget()
	switch a {
	case actionRetreat:
		w.Retreat()
	case actionAdvance:
		w.Advance()
	case actionToggle:
		w.ToggleHolidays()
	case actionNextCountry:
		s.NextCountry(ctx)
	case actionNextYear:
		s.SetYear(ctx, s.Year()+1)
	case actionPrevYear:
		s.SetYear(ctx, s.Year()-1)
	case actionQuit:
		return false
	}
	return true
}
