package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"time"

	"github.com/agbru/ssfft/internal/service"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the default algorithm to use for multiplications.
	DefaultAlgo string
	// Timeout is the maximum duration for each operation.
	Timeout time.Duration
	// HexOutput displays results in hexadecimal format.
	HexOutput bool
}

// REPL represents an interactive multiplication session.
type REPL struct {
	config      REPLConfig
	svc         service.Service
	currentAlgo string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a new REPL instance.
func NewREPL(svc service.Service, config REPLConfig) *REPL {
	algo := config.DefaultAlgo
	if algo == "" {
		algo = "fft"
	}
	return &REPL{
		config:      config,
		svc:         svc,
		currentAlgo: algo,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start begins the interactive REPL session, reading commands until EOF or
// an exit command.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ColorGreen()+"ssfft> "+ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sSchönhage-Strassen Multiplier - Interactive Mode%s       %s║%s\n",
		ColorCyan(), ColorReset(), ColorBold(), ColorReset(), ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorCyan(), ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %smul <x> <y>%s   - Multiply x by y with the current algorithm\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s   - Change algorithm (fft, karatsuba, auto)\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shex%s           - Toggle hexadecimal display\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current configuration\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s  - Exit interactive mode\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
}

func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "mul", "m":
		r.cmdMul(args)
	case "algo", "a":
		r.cmdAlgo(args)
	case "hex":
		r.cmdHex()
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	default:
		fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ColorRed(), cmd, ColorReset())
		fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ColorYellow(), ColorReset())
	}

	return true
}

func (r *REPL) cmdMul(args []string) {
	if len(args) != 2 {
		fmt.Fprintf(r.out, "%sUsage: mul <x> <y>%s\n", ColorRed(), ColorReset())
		return
	}

	x, ok1 := new(big.Int).SetString(args[0], 10)
	y, ok2 := new(big.Int).SetString(args[1], 10)
	if !ok1 || !ok2 {
		fmt.Fprintf(r.out, "%sInvalid integer operand%s\n", ColorRed(), ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Multiplying %s%d%s-bit x %s%d%s-bit with %s%s%s...\n",
		ColorMagenta(), x.BitLen(), ColorReset(),
		ColorMagenta(), y.BitLen(), ColorReset(),
		ColorCyan(), r.currentAlgo, ColorReset())

	start := time.Now()
	result, err := r.svc.Multiply(ctx, r.currentAlgo, x, y)
	duration := time.Since(start)

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}

	durationStr := FormatExecutionDuration(duration)

	fmt.Fprintf(r.out, "\n%sResult:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  Time:   %s%s%s\n", ColorGreen(), durationStr, ColorReset())
	fmt.Fprintf(r.out, "  Bits:   %s%d%s\n", ColorCyan(), result.BitLen(), ColorReset())

	resultStr := result.String()
	numDigits := len(resultStr)
	fmt.Fprintf(r.out, "  Digits: %s%d%s\n", ColorCyan(), numDigits, ColorReset())

	if r.config.HexOutput {
		fmt.Fprintf(r.out, "  x*y = %s0x%s%s\n", ColorGreen(), result.Text(16), ColorReset())
	} else if numDigits > TruncationLimit {
		fmt.Fprintf(r.out, "  x*y = %s%s...%s%s (truncated)\n",
			ColorGreen(), resultStr[:DisplayEdges], resultStr[numDigits-DisplayEdges:], ColorReset())
	} else {
		fmt.Fprintf(r.out, "  x*y = %s%s%s\n", ColorGreen(), resultStr, ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ColorRed(), ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: fft, karatsuba, auto\n")
		return
	}

	name := strings.ToLower(args[0])
	switch name {
	case service.AlgoFFT, service.AlgoKaratsuba, service.AlgoAuto:
		r.currentAlgo = name
		fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ColorGreen(), name, ColorReset())
	default:
		fmt.Fprintf(r.out, "%sUnknown algorithm: %s%s\n", ColorRed(), name, ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: fft, karatsuba, auto\n")
	}
}

func (r *REPL) cmdHex() {
	r.config.HexOutput = !r.config.HexOutput
	status := "disabled"
	if r.config.HexOutput {
		status = "enabled"
	}
	fmt.Fprintf(r.out, "Hexadecimal display: %s%s%s\n", ColorGreen(), status, ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  Algorithm:   %s%s%s\n", ColorCyan(), r.currentAlgo, ColorReset())
	fmt.Fprintf(r.out, "  Timeout:     %s%s%s\n", ColorCyan(), r.config.Timeout, ColorReset())
	hexStatus := "no"
	if r.config.HexOutput {
		hexStatus = "yes"
	}
	fmt.Fprintf(r.out, "  Hexadecimal: %s%s%s\n", ColorCyan(), hexStatus, ColorReset())
	fmt.Fprintln(r.out)
}
