package service

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/agbru/ssfft/internal/bigfft"
	"github.com/agbru/ssfft/internal/config"
)

// ErrOperandTooLarge is returned when an operand exceeds the configured
// maximum bit length.
var ErrOperandTooLarge = errors.New("operand exceeds maximum bit length")

// ErrUnknownAlgorithm is returned for an algo name this service cannot run.
var ErrUnknownAlgorithm = errors.New("unknown multiplication algorithm")

// Algorithm names accepted by Multiply.
const (
	AlgoFFT       = "fft"
	AlgoKaratsuba = "karatsuba"
	AlgoAuto      = "auto"
)

// Service defines the interface for big-integer multiplication services.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Multiply computes x*y using the named algorithm.
	Multiply(ctx context.Context, algoName string, x, y *big.Int) (*big.Int, error)
}

// MultiplyService centralizes validation and algorithm dispatch for
// big-integer multiplication. Implements the Service interface.
type MultiplyService struct {
	config config.AppConfig
	maxBits uint
}

// Ensure MultiplyService implements Service interface.
var _ Service = (*MultiplyService)(nil)

// NewMultiplyService creates a new instance of MultiplyService.
//
// Parameters:
//   - cfg: The application configuration.
//   - maxBits: The maximum allowed operand bit length (0 for no limit).
func NewMultiplyService(cfg config.AppConfig, maxBits uint) *MultiplyService {
	return &MultiplyService{config: cfg, maxBits: maxBits}
}

// Multiply validates the operands and dispatches to the requested
// algorithm, respecting ctx cancellation for the FFT path.
func (s *MultiplyService) Multiply(ctx context.Context, algoName string, x, y *big.Int) (*big.Int, error) {
	if s.maxBits > 0 {
		if uint(x.BitLen()) > s.maxBits || uint(y.BitLen()) > s.maxBits {
			return nil, ErrOperandTooLarge
		}
	}

	switch algoName {
	case "", AlgoAuto:
		return s.multiplyAuto(ctx, x, y)
	case AlgoFFT:
		return s.multiplyFFT(ctx, x, y)
	case AlgoKaratsuba:
		return bigfft.KaratsubaMultiply(x, y), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algoName)
	}
}

// multiplyAuto picks Karatsuba below the configured FFT threshold and the
// FFT path above it, mirroring mul_main's own depth-driven strategy switch
// at a coarser, word-count granularity.
func (s *MultiplyService) multiplyAuto(ctx context.Context, x, y *big.Int) (*big.Int, error) {
	threshold := s.config.FFTThreshold
	if threshold <= 0 {
		threshold = config.DefaultThreshold
	}
	words := (x.BitLen() + y.BitLen()) / 64
	if words < threshold {
		return bigfft.KaratsubaMultiply(x, y), nil
	}
	return s.multiplyFFT(ctx, x, y)
}

func (s *MultiplyService) multiplyFFT(ctx context.Context, x, y *big.Int) (*big.Int, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return bigfft.MulMain(x, y)
}
