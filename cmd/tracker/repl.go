package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"RoundSentinel/internal/importer"
	"RoundSentinel/internal/notifier"
	"RoundSentinel/internal/report"
	"RoundSentinel/internal/tracker"
)

const replHelp = `Commands:
  add <m> [m...]     record one or more round multipliers
  edit <i> <m>       change the multiplier of round i
  delete <i>         remove round i
  window <n>         set the MSI window (10-100)
  pink <x>           set the pink threshold
  strict <on|off>    keep pink zones as recorded (on) or re-judge them (off)
  show               summary
  log                recent rounds and momentum
  pinks              sniper pink projections
  export <file>      write the round log as CSV
  import <file>      append rounds from a CSV
  reset              clear the session
  help               this text
  quit               leave`

type repl struct {
	svc *tracker.Service
	in  io.Reader
	out io.Writer
}

func newREPL(svc *tracker.Service, in io.Reader, out io.Writer) *repl {
	return &repl{svc: svc, in: in, out: out}
}

// Run reads commands until quit or end of input.
func (r *repl) Run() {
	fmt.Fprintln(r.out, "RoundSentinel ready. Type 'help' for commands.")
	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "quit" || fields[0] == "exit" {
			return
		}
		if err := r.exec(fields[0], fields[1:]); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
	}
}

func (r *repl) exec(cmd string, args []string) error {
	switch cmd {
	case "add":
		if len(args) == 0 {
			return fmt.Errorf("usage: add <m> [m...]")
		}
		for _, a := range args {
			m, err := strconv.ParseFloat(a, 64)
			if err != nil {
				return fmt.Errorf("invalid multiplier %q", a)
			}
			round, err := r.svc.RecordRound(m)
			if err != nil {
				return err
			}
			fmt.Fprintf(r.out, "%.2fx %s (score %+d)\n", round.Multiplier, round.Type, round.Score)
		}
		r.printZone()
	case "edit":
		if len(args) != 2 {
			return fmt.Errorf("usage: edit <i> <m>")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		m, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid multiplier %q", args[1])
		}
		if err := r.svc.EditRound(i, m); err != nil {
			return err
		}
		r.printZone()
	case "delete":
		if len(args) != 1 {
			return fmt.Errorf("usage: delete <i>")
		}
		i, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q", args[0])
		}
		if err := r.svc.DeleteRound(i); err != nil {
			return err
		}
		r.printZone()
	case "window", "pink", "strict":
		if len(args) != 1 {
			return fmt.Errorf("usage: %s <value>", cmd)
		}
		settings := r.svc.Snapshot().Settings
		switch cmd {
		case "window":
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid window %q", args[0])
			}
			settings.WindowSize = n
		case "pink":
			x, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid threshold %q", args[0])
			}
			settings.PinkThreshold = x
		case "strict":
			switch args[0] {
			case "on":
				settings.StrictMode = true
			case "off":
				settings.StrictMode = false
			default:
				return fmt.Errorf("usage: strict <on|off>")
			}
		}
		if err := r.svc.SetConfig(settings); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "window=%d pink=%.2f strict=%t\n", settings.WindowSize, settings.PinkThreshold, settings.StrictMode)
	case "show":
		report.Summary(r.out, r.svc.Snapshot())
	case "log":
		snap := r.svc.Snapshot()
		report.RoundLog(r.out, snap, report.RecentRounds)
		report.Momentum(r.out, snap, report.MomentumTail)
	case "pinks":
		report.PinkTable(r.out, r.svc.Snapshot(), report.RecentPinks)
	case "export":
		if len(args) != 1 {
			return fmt.Errorf("usage: export <file>")
		}
		f, err := os.Create(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		snap := r.svc.Snapshot()
		if err := importer.WriteCSV(f, snap.Rounds); err != nil {
			return err
		}
		fmt.Fprintf(r.out, "exported %d rounds to %s\n", len(snap.Rounds), args[0])
	case "import":
		if len(args) != 1 {
			return fmt.Errorf("usage: import <file>")
		}
		n, err := importer.Import(importer.NewCSVSource(args[0]), r.svc)
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "imported %d rounds\n", n)
		r.printZone()
	case "reset":
		r.svc.Reset()
		fmt.Fprintln(r.out, "session cleared")
	case "help":
		fmt.Fprintln(r.out, replHelp)
	default:
		return fmt.Errorf("unknown command %q, type 'help'", cmd)
	}
	return nil
}

func (r *repl) printZone() {
	snap := r.svc.Snapshot()
	fmt.Fprintf(r.out, "MSI %s | %s | danger %d%%\n",
		notifier.FormatMSI(snap.Signal.LatestMSI), snap.Signal.Tier.Zone.Label(), snap.Signal.DangerScore)
	if snap.Signal.WarningMsg != "" {
		fmt.Fprintln(r.out, snap.Signal.WarningMsg)
	}
}
