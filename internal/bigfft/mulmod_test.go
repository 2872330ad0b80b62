package bigfft

import (
	"math/big"
	"math/rand"
	"testing"
)

// TestFftMulmod2expp1VsBigInt checks fftMulmod2expp1 against an independent
// math/big reference across sizes from smallMulThreshold up. All of them are
// below fftMulmod2expp1Cutoff, so each product is taken by the math/big
// basecase; the recursive negacyclic path is not reached here.
func TestFftMulmod2expp1VsBigInt(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{smallMulThreshold, smallMulThreshold + 1, 2 * smallMulThreshold, 4 * smallMulThreshold} {
		mod := fermatModulusInt(n)
		x := new(big.Int).Rand(rng, twoPow(n*_W))
		y := new(big.Int).Rand(rng, twoPow(n*_W))

		xf := make(fermat, n+1)
		xf.setReducedInt(x, n)
		yf := make(fermat, n+1)
		yf.setReducedInt(y, n)

		dst := make(fermat, 8*n+8)
		got := fftMulmod2expp1(dst, xf, yf, n)

		want := new(big.Int).Mod(new(big.Int).Mul(x, y), mod)
		gotInt := fermatToInt(got, n)
		gotInt.Mod(gotInt, mod)

		if gotInt.Cmp(want) != 0 {
			t.Errorf("n=%d: fftMulmod2expp1 = %s, want %s", n, gotInt, want)
		}
	}
}

func TestFftMulmod2expp1ZeroOperand(t *testing.T) {
	n := 2 * smallMulThreshold
	zero := make(fermat, n+1)
	nonzero := make(fermat, n+1)
	nonzero.setReducedInt(big.NewInt(12345), n)

	dst := make(fermat, 8*n+8)
	got := fftMulmod2expp1(dst, zero, nonzero, n)
	for _, w := range got {
		if w != 0 {
			t.Fatalf("expected all-zero result when one operand is zero, got nonzero word")
		}
	}
}

func TestNegacyclicMulVsBigInt(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, bits := range []int{512, 2048, 8192} {
		x := new(big.Int).Rand(rng, twoPow(bits))
		y := new(big.Int).Rand(rng, twoPow(bits))

		got, ok := negacyclicMul(x.Bits(), y.Bits())
		want := new(big.Int).Mul(x, y)

		if !ok {
			if got != nil {
				t.Fatalf("bits=%d: negacyclicMul reported !ok but returned non-nil", bits)
			}
			continue
		}
		if got.Cmp(want) != 0 {
			t.Errorf("bits=%d: negacyclicMul = %s, want %s", bits, got, want)
		}
	}
}

func TestFftMulmod2expp1SignHandling(t *testing.T) {
	n := 2 * smallMulThreshold
	mod := fermatModulusInt(n)

	x := big.NewInt(-987654321)
	y := big.NewInt(123456789)

	xf := make(fermat, n+1)
	xf.setReducedInt(x, n)
	yf := make(fermat, n+1)
	yf.setReducedInt(y, n)

	dst := make(fermat, 8*n+8)
	got := fftMulmod2expp1(dst, xf, yf, n)

	want := new(big.Int).Mod(new(big.Int).Mul(x, y), mod)
	gotInt := fermatToInt(got, n)
	gotInt.Mod(gotInt, mod)

	if gotInt.Cmp(want) != 0 {
		t.Errorf("fftMulmod2expp1 = %s, want %s", gotInt, want)
	}
}
