// The main package is the entry point of the ssfft application. It handles
// command-line argument parsing, configuration, and dispatch to one-shot
// multiplication, batch multiplication, the interactive REPL, or the HTTP
// server.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/ssfft/internal/cli"
	"github.com/agbru/ssfft/internal/config"
	"github.com/agbru/ssfft/internal/logging"
	"github.com/agbru/ssfft/internal/server"
	"github.com/agbru/ssfft/internal/service"
	"github.com/agbru/ssfft/internal/ui"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorConfig   = 4
	ExitErrorCanceled = 130
)

// ProgressBufferMultiplier sizes the progress channel as a multiple of the
// number of jobs in flight, reducing the risk of a blocked progress update.
const ProgressBufferMultiplier = 10

// MaxOperandBits bounds the size of operands this binary will accept,
// mirroring the server's own default security limit.
const MaxOperandBits = 1 << 24

var availableAlgos = []string{service.AlgoFFT, service.AlgoKaratsuba, service.AlgoAuto}

func main() {
	cfg, positional, err := config.ParseConfig(os.Args[0], os.Args[1:], os.Stderr, availableAlgos)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(ExitSuccess)
		}
		os.Exit(ExitErrorConfig)
	}

	ui.InitTheme(cfg.NoColor)

	exitCode := run(context.Background(), cfg, positional, os.Stdout)
	os.Exit(exitCode)
}

// run orchestrates the application's execution flow based on the resolved
// configuration and any positional arguments remaining after flag parsing.
func run(ctx context.Context, cfg config.AppConfig, args []string, out io.Writer) int {
	logger := logging.NewDefaultLogger()
	svc := service.NewMultiplyService(cfg, MaxOperandBits)

	if cfg.ServerMode {
		return runServer(svc, cfg, logger, out)
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, cfg.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch {
	case len(args) == 2:
		return runOneShot(ctx, svc, cfg, args[0], args[1], out)
	case len(args) == 1 && args[0] == "-":
		return runBatch(ctx, svc, cfg, os.Stdin, out)
	case len(args) == 0:
		repl := cli.NewREPL(svc, cli.REPLConfig{
			DefaultAlgo: cfg.Algo,
			Timeout:     cfg.Timeout,
			HexOutput:   cfg.HexOutput,
		})
		repl.Start()
		return ExitSuccess
	default:
		fmt.Fprintf(out, "%sUsage: %s [flags] <x> <y> | - (batch mode, reads \"x y\" pairs from stdin)%s\n",
			ui.ColorRed(), os.Args[0], ui.ColorReset())
		return ExitErrorConfig
	}
}

func runServer(svc service.Service, cfg config.AppConfig, logger logging.Logger, out io.Writer) int {
	fmt.Fprintf(out, "%sStarting ssfft HTTP server on port %s%s%s%s\n",
		ui.ColorBold(), ui.ColorCyan(), cfg.Port, ui.ColorReset(), ui.ColorReset())
	srv := server.NewServer(svc, cfg, server.WithLogger(logger))
	if err := srv.Start(); err != nil {
		fmt.Fprintf(out, "%sServer error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return ExitErrorGeneric
	}
	return ExitSuccess
}

// runOneShot parses two decimal operands and multiplies them with the
// configured algorithm, reporting progress along the way.
func runOneShot(ctx context.Context, svc service.Service, cfg config.AppConfig, xs, ys string, out io.Writer) int {
	x, ok1 := new(big.Int).SetString(xs, 10)
	y, ok2 := new(big.Int).SetString(ys, 10)
	if !ok1 || !ok2 {
		fmt.Fprintf(out, "%sInvalid integer operand(s)%s\n", ui.ColorRed(), ui.ColorReset())
		return ExitErrorConfig
	}

	cli.PrintExecutionConfig(cfg, out)
	cli.PrintExecutionMode([]string{cfg.Algo}, out)

	var wg sync.WaitGroup
	progressChan := make(chan cli.ProgressUpdate, ProgressBufferMultiplier)
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, 1, out)

	start := time.Now()
	result, err := svc.Multiply(ctx, cfg.Algo, x, y)
	duration := time.Since(start)
	progressChan <- cli.ProgressUpdate{Index: 0, Progress: 1.0}
	close(progressChan)
	wg.Wait()

	if err != nil {
		return handleError(err, duration, cfg.Timeout, out)
	}

	fmt.Fprintf(out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Time:   %s%s%s\n", ui.ColorGreen(), cli.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(out, "  Bits:   %s%d%s\n", ui.ColorCyan(), result.BitLen(), ui.ColorReset())

	resultStr := result.String()
	if cfg.HexOutput {
		fmt.Fprintf(out, "  x*y = 0x%s\n", result.Text(16))
	} else if len(resultStr) > cli.TruncationLimit {
		fmt.Fprintf(out, "  x*y = %s...%s (truncated, %d digits)\n",
			resultStr[:cli.DisplayEdges], resultStr[len(resultStr)-cli.DisplayEdges:], len(resultStr))
	} else {
		fmt.Fprintf(out, "  x*y = %s\n", resultStr)
	}
	return ExitSuccess
}

// batchJob is one "x y" pair read from a batch input stream.
type batchJob struct {
	line int
	x, y *big.Int
}

// runBatch reads whitespace-separated "x y" operand pairs, one per line,
// and multiplies them concurrently via an errgroup, mirroring the way the
// single-binary comparison mode fans independent calculations out across
// goroutines.
func runBatch(ctx context.Context, svc service.Service, cfg config.AppConfig, in io.Reader, out io.Writer) int {
	var jobs []batchJob
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 2 {
			fmt.Fprintf(out, "%sline %d: expected \"x y\", got %q%s\n", ui.ColorRed(), lineNo, line, ui.ColorReset())
			return ExitErrorConfig
		}
		x, ok1 := new(big.Int).SetString(parts[0], 10)
		y, ok2 := new(big.Int).SetString(parts[1], 10)
		if !ok1 || !ok2 {
			fmt.Fprintf(out, "%sline %d: invalid integer operand%s\n", ui.ColorRed(), lineNo, ui.ColorReset())
			return ExitErrorConfig
		}
		jobs = append(jobs, batchJob{line: lineNo, x: x, y: y})
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(out, "%sread error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return ExitErrorGeneric
	}
	if len(jobs) == 0 {
		fmt.Fprintf(out, "%sno operand pairs read from input%s\n", ui.ColorYellow(), ui.ColorReset())
		return ExitSuccess
	}

	results := make([]*big.Int, len(jobs))
	errs := make([]error, len(jobs))

	var wg sync.WaitGroup
	progressChan := make(chan cli.ProgressUpdate, len(jobs)*ProgressBufferMultiplier)
	wg.Add(1)
	go cli.DisplayProgress(&wg, progressChan, len(jobs), out)

	g, gctx := errgroup.WithContext(ctx)
	for i, job := range jobs {
		idx, j := i, job
		g.Go(func() error {
			res, err := svc.Multiply(gctx, cfg.Algo, j.x, j.y)
			results[idx], errs[idx] = res, err
			progressChan <- cli.ProgressUpdate{Index: idx, Progress: 1.0}
			// Every job's outcome is recorded independently; a single
			// failure doesn't cancel its siblings.
			return nil
		})
	}
	_ = g.Wait()
	close(progressChan)
	wg.Wait()

	failures := 0
	for i, job := range jobs {
		if errs[i] != nil {
			failures++
			fmt.Fprintf(out, "line %d: %s%v%s\n", job.line, ui.ColorRed(), errs[i], ui.ColorReset())
			continue
		}
		fmt.Fprintf(out, "line %d: %s%s%s\n", job.line, ui.ColorGreen(), results[i].String(), ui.ColorReset())
	}
	if failures > 0 {
		return ExitErrorGeneric
	}
	return ExitSuccess
}

func handleError(err error, duration time.Duration, timeout time.Duration, out io.Writer) int {
	if errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintf(out, "%sOperation exceeded timeout of %s%s\n", ui.ColorRed(), timeout, ui.ColorReset())
		return ExitErrorTimeout
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintf(out, "%sOperation canceled after %s%s\n", ui.ColorYellow(), cli.FormatExecutionDuration(duration), ui.ColorReset())
		return ExitErrorCanceled
	}
	fmt.Fprintf(out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	return ExitErrorGeneric
}
