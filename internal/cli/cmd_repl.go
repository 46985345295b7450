package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/peterh/liner"
	flag "github.com/spf13/pflag"

	"github.com/kvfridge/fridge/internal/config"
	fridgestats "github.com/kvfridge/fridge/internal/stats"
	"github.com/kvfridge/fridge/pkg/fridge"
)

// ReplCmd returns the interactive command: an in-process store with a
// readline-style shell over it. usr1Ch delivers the signal that
// interrupts whichever "wait" command is currently blocked (see cmdWait).
func ReplCmd(cfg config.Config, usr1Ch <-chan os.Signal) *Command {
	return &Command{
		Flags: flag.NewFlagSet("repl", flag.ContinueOnError),
		Usage: "repl",
		Short: "Start an interactive fridge shell",
		Long:  "Start an interactive shell over a fresh, process-local store. Nothing is persisted between runs.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			r := &repl{cfg: cfg, store: fridge.NewStore(fridge.Options{Buckets: cfg.Buckets}), usr1Ch: usr1Ch}
			return r.run(ctx, o)
		},
	}
}

type repl struct {
	cfg    config.Config
	store  *fridge.Store
	liner  *liner.State
	usr1Ch <-chan os.Signal
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".fridgectl_history")
}

func (r *repl) run(ctx context.Context, o *IO) error {
	if err := r.store.Init(fridge.Nonblock); err != nil {
		return fmt.Errorf("init store: %w", err)
	}

	r.liner = liner.NewLiner()
	defer r.liner.Close()

	r.liner.SetCtrlCAborts(true)
	r.liner.SetCompleter(r.completer)

	if f, err := os.Open(historyFile()); err == nil {
		_, _ = r.liner.ReadHistory(f)
		_ = f.Close()
	}

	o.Printf("fridgectl - in-process kv shell (buckets=%d)\n", r.cfg.Buckets)
	o.Println("Type 'help' for available commands.")
	o.Println()

	for {
		line, err := r.liner.Prompt("fridge> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				o.Println("\nBye!")
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		r.liner.AppendHistory(line)

		parts := strings.Fields(line)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "exit", "quit", "q":
			o.Println("Bye!")
			r.saveHistory()

			return nil

		case "help", "?":
			r.printHelp(o)

		case "put":
			r.cmdPut(o, args)

		case "get":
			r.cmdGet(ctx, o, args)

		case "wait":
			r.cmdWait(ctx, o, args)

		case "stats":
			r.cmdStats(o, args)

		case "destroy":
			r.cmdDestroy(o)

		case "init":
			r.cmdInit(o)

		default:
			o.Printf("Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}

	r.saveHistory()

	return nil
}

func (r *repl) saveHistory() {
	path := historyFile()
	if path == "" {
		return
	}

	if f, err := os.Create(path); err == nil {
		_, _ = r.liner.WriteHistory(f)
		_ = f.Close()
	}
}

func (r *repl) completer(line string) []string {
	commands := []string{"put", "get", "wait", "stats", "destroy", "init", "help", "exit", "quit", "q"}

	var completions []string

	lower := strings.ToLower(line)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) {
			completions = append(completions, cmd)
		}
	}

	return completions
}

func (r *repl) printHelp(o *IO) {
	o.Println("Commands:")
	o.Println("  put <key> <value>      Store value under key (non-blocking)")
	o.Println("  get <key>              Fetch and remove value for key (non-blocking)")
	o.Println("  wait <key>             Fetch and remove value for key, blocking until it arrives")
	o.Println("                         (send this process SIGUSR1 to interrupt a pending wait)")
	o.Println("  stats                  Show bucket occupancy diagnostics")
	o.Println("  stats dump [path]      Write a stats snapshot to path (default: config stats_path)")
	o.Println("  destroy                Tear the store down, freeing all entries")
	o.Println("  init                   Bring the store back up after destroy")
	o.Println("  help                   Show this help")
	o.Println("  exit / quit / q        Exit")
}

func (r *repl) cmdPut(o *IO, args []string) {
	if len(args) < 2 {
		o.Println("Usage: put <key> <value>")
		return
	}

	key, err := parseKey(args[0])
	if err != nil {
		o.Printf("Error parsing key: %v\n", err)
		return
	}

	val := strings.Join(args[1:], " ")

	err = r.store.Put(key, strings.NewReader(val), len(val), fridge.Nonblock)
	if err != nil {
		o.Printf("Error: %v\n", err)
		return
	}

	o.Printf("OK: put %d (%d bytes)\n", key, len(val))
}

func (r *repl) cmdGet(ctx context.Context, o *IO, args []string) {
	if len(args) < 1 {
		o.Println("Usage: get <key>")
		return
	}

	r.get(ctx, o, args[0], fridge.Nonblock)
}

// cmdWait blocks until a value for key arrives. It watches r.usr1Ch for
// the duration of the wait so a SIGUSR1 sent to this process interrupts
// this call specifically, without tearing down the rest of the shell.
func (r *repl) cmdWait(ctx context.Context, o *IO, args []string) {
	if len(args) < 1 {
		o.Println("Usage: wait <key>")
		return
	}

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-r.usr1Ch:
			cancel()
		case <-done:
		}
	}()

	r.get(waitCtx, o, args[0], fridge.Block)
}

func (r *repl) get(ctx context.Context, o *IO, keyArg string, flags int) {
	key, err := parseKey(keyArg)
	if err != nil {
		o.Printf("Error parsing key: %v\n", err)
		return
	}

	var buf strings.Builder

	err = r.store.Get(ctx, key, &buf, r.cfg.DefaultCap, flags)
	switch {
	case errors.Is(err, fridge.ErrNotFound):
		o.Println("(not found)")
	case err != nil:
		o.Printf("Error: %v\n", err)
	default:
		o.Printf("%q\n", buf.String())
	}
}

func (r *repl) cmdStats(o *IO, args []string) {
	st, err := r.store.Stats()
	if err != nil {
		o.Printf("Error: %v\n", err)
		return
	}

	if len(args) > 0 && args[0] == "dump" {
		path := r.cfg.StatsPath
		if len(args) > 1 {
			path = args[1]
		}

		snap := fridgestats.FromStore(st, time.Now())
		if err := fridgestats.Dump(path, snap); err != nil {
			o.Printf("Error: %v\n", err)
			return
		}

		o.Printf("OK: wrote stats snapshot to %s\n", path)

		return
	}

	o.Printf("Buckets:         %d\n", st.Buckets)
	o.Printf("Entries:         %d\n", st.Entries)
	o.Printf("Max chain depth: %d\n", st.MaxChainDepth)
	o.Printf("Waiting keys:    %d\n", st.WaitingKeys)
}

func (r *repl) cmdDestroy(o *IO) {
	n, err := r.store.Destroy(fridge.Nonblock)
	if err != nil {
		o.Printf("Error: %v\n", err)
		return
	}

	o.Printf("OK: destroyed store, freed %d entries\n", n)
}

func (r *repl) cmdInit(o *IO) {
	if err := r.store.Init(fridge.Nonblock); err != nil {
		o.Printf("Error: %v\n", err)
		return
	}

	o.Println("OK: store initialized")
}

func parseKey(s string) (uint32, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("key must be a uint32: %w", err)
	}

	return uint32(n), nil
}
