package cli

import (
	"bytes"
	"context"
	"math/big"
	"strings"
	"testing"
	"time"
)

type stubMultiplyService struct{}

func (stubMultiplyService) Multiply(ctx context.Context, algo string, x, y *big.Int) (*big.Int, error) {
	return new(big.Int).Mul(x, y), nil
}

func newTestREPL() (*REPL, *bytes.Buffer) {
	r := NewREPL(stubMultiplyService{}, REPLConfig{DefaultAlgo: "fft", Timeout: time.Second})
	var out bytes.Buffer
	r.SetOutput(&out)
	return r, &out
}

func TestREPLMul(t *testing.T) {
	r, out := newTestREPL()
	r.cmdMul([]string{"12", "34"})
	if !strings.Contains(out.String(), "408") {
		t.Errorf("expected product 408 in output, got: %s", out.String())
	}
}

func TestREPLMulInvalidInput(t *testing.T) {
	r, out := newTestREPL()
	r.cmdMul([]string{"notanumber", "5"})
	if !strings.Contains(out.String(), "Invalid integer operand") {
		t.Errorf("expected invalid operand message, got: %s", out.String())
	}
}

func TestREPLAlgoSwitch(t *testing.T) {
	r, out := newTestREPL()
	r.cmdAlgo([]string{"karatsuba"})
	if r.currentAlgo != "karatsuba" {
		t.Errorf("expected currentAlgo=karatsuba, got %s", r.currentAlgo)
	}
	if !strings.Contains(out.String(), "karatsuba") {
		t.Errorf("expected confirmation message, got: %s", out.String())
	}
}

func TestREPLAlgoUnknown(t *testing.T) {
	r, out := newTestREPL()
	r.cmdAlgo([]string{"bogus"})
	if r.currentAlgo != "fft" {
		t.Errorf("currentAlgo should not change on unknown algo, got %s", r.currentAlgo)
	}
	if !strings.Contains(out.String(), "Unknown algorithm") {
		t.Errorf("expected unknown algorithm message, got: %s", out.String())
	}
}

func TestREPLHexToggle(t *testing.T) {
	r, out := newTestREPL()
	r.cmdHex()
	if !r.config.HexOutput {
		t.Error("expected HexOutput to be enabled after toggle")
	}
	if !strings.Contains(out.String(), "enabled") {
		t.Errorf("expected enabled message, got: %s", out.String())
	}
}

func TestREPLProcessCommandExit(t *testing.T) {
	r, _ := newTestREPL()
	if r.processCommand("exit") {
		t.Error("processCommand(\"exit\") should return false")
	}
}
