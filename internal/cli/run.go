package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kvfridge/fridge/internal/config"
)

// Run is fridgectl's main entry point. It returns the process exit code.
//
// sigCh carries process-lifetime signals (interrupt/terminate): the first
// one starts a graceful shutdown with a timeout; a second forces an
// immediate exit. usr1Ch carries the signal this binary uses to interrupt
// a blocking Get over a real OS signal: the repl command forwards it to
// whichever single blocking "wait" is in flight, interrupting only that
// call rather than the whole process.
func Run(out, errOut io.Writer, args []string, env []string, sigCh <-chan os.Signal, usr1Ch <-chan os.Signal) int {
	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	cfg, err := config.Load(workDir, "", env)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return 1
	}

	commands := allCommands(cfg, usr1Ch)

	commandMap := make(map[string]*Command, len(commands))
	for _, cmd := range commands {
		commandMap[cmd.Name()] = cmd
	}

	if len(args) <= 1 {
		printUsage(out, commands)
		return 0
	}

	cmdName := args[1]

	if cmdName == "-h" || cmdName == "--help" {
		printUsage(out, commands)
		return 0
	}

	cmd, ok := commandMap[cmdName]
	if !ok {
		fmt.Fprintln(errOut, "error: unknown command:", cmdName)
		printUsage(errOut, commands)

		return 1
	}

	cmdIO := NewIO(out, errOut)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan int, 1)

	go func() {
		done <- cmd.Run(ctx, cmdIO, args[2:])
	}()

	select {
	case exitCode := <-done:
		return exitCode
	case <-sigCh:
		fmt.Fprintln(errOut, "shutting down with 5s timeout...")
		cancel()
	}

	select {
	case <-done:
		fmt.Fprintln(errOut, "graceful shutdown ok (130)")
		return 130
	case <-time.After(5 * time.Second):
		fmt.Fprintln(errOut, "graceful shutdown timed out, forced exit (130)")
		return 130
	case <-sigCh:
		fmt.Fprintln(errOut, "graceful shutdown interrupted, forced exit (130)")
		return 130
	}
}

// allCommands returns all top-level commands in display order.
func allCommands(cfg config.Config, usr1Ch <-chan os.Signal) []*Command {
	return []*Command{
		ReplCmd(cfg, usr1Ch),
		BenchCmd(cfg),
	}
}

func printUsage(w io.Writer, commands []*Command) {
	fmt.Fprintln(w, "fridgectl - a shell over the fridge concurrent key-value store")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: fridgectl <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")

	for _, cmd := range commands {
		fmt.Fprintln(w, cmd.HelpLine())
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'fridgectl <command> --help' for command-specific flags.")
}
