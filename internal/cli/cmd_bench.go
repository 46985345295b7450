package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/kvfridge/fridge/internal/config"
	"github.com/kvfridge/fridge/pkg/fridge"
)

var errUnknownScenario = errors.New("unknown scenario")

// BenchCmd returns the "bench" command: an in-process timing harness
// for concurrency scenarios run directly against a Store, rather than
// shelling out to an external binary - there is no separate process to
// benchmark here.
func BenchCmd(cfg config.Config) *Command {
	flags := flag.NewFlagSet("bench", flag.ContinueOnError)
	workers := flags.IntP("workers", "w", 8, "Number of concurrent workers for the hotpotato scenario")
	iterations := flags.IntP("iterations", "n", 2000, "Spin-loop iterations per hotpotato worker")

	return &Command{
		Flags: flags,
		Usage: "bench <scenario> [flags]",
		Short: "Run a timed concurrency scenario against an in-process store",
		Long:  "Run a timed concurrency scenario against an in-process store.\n\nScenarios: hotpotato",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("%w: specify a scenario (hotpotato)", errUnknownScenario)
			}

			switch args[0] {
			case "hotpotato":
				return benchHotPotato(ctx, o, cfg, *workers, *iterations)
			default:
				return fmt.Errorf("%w: %s", errUnknownScenario, args[0])
			}
		},
	}
}

// benchHotPotato runs a relay race to completion under real goroutine
// contention: one initial Put, then workers concurrently racing
// non-blocking Gets and re-Puts, each making up to iterations attempts
// to win exactly once. It reports wall time and confirms that every
// worker won and the store ends with exactly one entry holding the
// original value, the same invariant Test_HotPotato_OneWinnerPerPut
// checks.
func benchHotPotato(_ context.Context, o *IO, cfg config.Config, workers, iterations int) error {
	const key = 0xbae
	const value = "hot potato"

	store := fridge.NewStore(fridge.Options{Buckets: cfg.Buckets})
	if err := store.Init(fridge.Nonblock); err != nil {
		return fmt.Errorf("init store: %w", err)
	}
	defer func() { _, _ = store.Destroy(fridge.Nonblock) }()

	if err := store.Put(key, strings.NewReader(value), len(value), fridge.Nonblock); err != nil {
		return fmt.Errorf("seed put: %w", err)
	}

	var (
		wg   sync.WaitGroup
		wins int
		mu   sync.Mutex
	)

	start := time.Now()

	for range workers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for range iterations {
				var buf bytes.Buffer

				err := store.Get(context.Background(), key, &buf, 64, fridge.Nonblock)
				if err == nil {
					mu.Lock()
					wins++
					mu.Unlock()

					_ = store.Put(key, strings.NewReader(buf.String()), buf.Len(), fridge.Nonblock)

					return
				}

				if !errors.Is(err, fridge.ErrNotFound) {
					return
				}
			}
		}()
	}

	wg.Wait()

	elapsed := time.Since(start)

	st, err := store.Stats()
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	o.Printf("hotpotato: %d workers, %d wins, %d entries remaining, elapsed %s\n", workers, wins, st.Entries, elapsed)

	if wins != workers || st.Entries != 1 {
		return fmt.Errorf("hotpotato: invariant violated (wins=%d workers=%d entries=%d)", wins, workers, st.Entries)
	}

	var final bytes.Buffer

	err = store.Get(context.Background(), key, &final, len(value), fridge.Nonblock)
	if err != nil || final.String() != value {
		return fmt.Errorf("hotpotato: invariant violated (final value=%q err=%v, want %q)", final.String(), err, value)
	}

	return nil
}
