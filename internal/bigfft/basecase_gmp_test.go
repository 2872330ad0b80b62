//go:build gmp

// This file cross-checks the basecase (below smallMulThreshold) Fermat-ring
// multiplier against GMP's assembly-optimized bignum routines, conditionally
// compiled with the "gmp" build tag: go test -tags=gmp ./internal/bigfft/...
// GMP is an independent implementation of the same modular arithmetic, so
// agreement here is a second witness beyond the math/big-based tests in
// fermat_test.go and mulmod_test.go.

package bigfft

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/ncw/gmp"
)

// gmpMulMod computes x*y mod 2^(n*_W)+1 via GMP, for comparison against
// fermat.Mul/basicMul on the same operands.
func gmpMulMod(x, y, mod *big.Int) *big.Int {
	gx := gmp.NewInt(0).SetBytes(x.Bytes())
	gy := gmp.NewInt(0).SetBytes(y.Bytes())
	gmod := gmp.NewInt(0).SetBytes(mod.Bytes())

	product := gmp.NewInt(0).Mul(gx, gy)
	product.Mod(product, gmod)
	return new(big.Int).SetBytes(product.Bytes())
}

func TestBasecaseMulVsGMP(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for _, n := range []int{1, 2, 5, 10, smallMulThreshold - 1} {
		mod := fermatModulusInt(n)
		x := new(big.Int).Rand(rng, twoPow(n*_W))
		y := new(big.Int).Rand(rng, twoPow(n*_W))

		xf := make(fermat, n+1)
		xf.setReducedInt(x, n)
		yf := make(fermat, n+1)
		yf.setReducedInt(y, n)

		z := make(fermat, n+1)
		z.Mul(xf, yf)
		got := fermatToInt(z, n)
		got.Mod(got, mod)

		want := gmpMulMod(x, y, mod)
		if got.Cmp(want) != 0 {
			t.Errorf("n=%d: basicMul = %s, GMP = %s", n, got, want)
		}
	}
}

func BenchmarkBasecaseMulVsGMP(b *testing.B) {
	n := smallMulThreshold - 1
	rng := rand.New(rand.NewSource(100))
	mod := fermatModulusInt(n)
	x := new(big.Int).Rand(rng, twoPow(n*_W))
	y := new(big.Int).Rand(rng, twoPow(n*_W))

	xf := make(fermat, n+1)
	xf.setReducedInt(x, n)
	yf := make(fermat, n+1)
	yf.setReducedInt(y, n)

	b.Run("fermat", func(b *testing.B) {
		z := make(fermat, n+1)
		for i := 0; i < b.N; i++ {
			z.Mul(xf, yf)
		}
	})
	b.Run("gmp", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			gmpMulMod(x, y, mod)
		}
	})
}
