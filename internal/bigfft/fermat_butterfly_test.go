package bigfft

import (
	"math/big"
	"testing"
)

func mkFermat(n int, words ...uint64) fermat {
	z := make(fermat, n+1)
	for i, w := range words {
		z[i] = big.Word(w)
	}
	return z
}

func TestSumDiff(t *testing.T) {
	n := 4
	a := mkFermat(n, 7, 3)
	b := mkFermat(n, 2, 1)
	tt := make(fermat, n+1)
	u := make(fermat, n+1)
	sumdiff(tt, u, a, b)

	want := fermatToInt(a, n)
	want.Add(want, fermatToInt(b, n))
	if got := fermatToInt(tt, n); got.Cmp(want) != 0 {
		t.Errorf("sumdiff sum = %v, want %v", got, want)
	}
	wantD := fermatToInt(a, n)
	wantD.Sub(wantD, fermatToInt(b, n))
	if got := fermatToInt(u, n); got.Cmp(wantD) != 0 {
		t.Errorf("sumdiff diff = %v, want %v", got, wantD)
	}
}

func TestButterflyLshBRshBRoundTrip(t *testing.T) {
	n := 4
	a := mkFermat(n, 11, 5, 9)
	b := mkFermat(n, 6, 2, 1)
	x, y := 1, 2

	tt := make(fermat, n+1)
	u := make(fermat, n+1)
	butterflyLshB(tt, u, a, b, x, y)

	// Recover a+b and a-b by undoing the whole-limb shifts, then recombine
	// to recover a and b.
	sum := make(fermat, n+1)
	diff := make(fermat, n+1)
	sum.Shift(tt, -x*_W)
	diff.Shift(u, -y*_W)

	gotA := make(fermat, n+1)
	gotB := make(fermat, n+1)
	gotA.Add(sum, diff)
	gotA.Shift(gotA, -1)
	gotB.Sub(sum, diff)
	gotB.Shift(gotB, -1)

	if want, got := fermatToInt(a, n), fermatToInt(gotA, n); want.Cmp(got) != 0 {
		t.Errorf("recovered a = %v, want %v", got, want)
	}
	if want, got := fermatToInt(b, n), fermatToInt(gotB, n); want.Cmp(got) != 0 {
		t.Errorf("recovered b = %v, want %v", got, want)
	}
}

func TestButterflyRshBIsInverseShift(t *testing.T) {
	n := 4
	a := mkFermat(n, 3, 1)
	b := mkFermat(n, 4, 2)

	t1 := make(fermat, n+1)
	u1 := make(fermat, n+1)
	butterflyLshB(t1, u1, a, b, 2, 1)

	t2 := make(fermat, n+1)
	u2 := make(fermat, n+1)
	butterflyRshB(t2, u2, a, b, -2, -1)

	if fermatToInt(t1, n).Cmp(fermatToInt(t2, n)) != 0 {
		t.Errorf("butterflyLshB(x) and butterflyRshB(-x) disagree on t")
	}
	if fermatToInt(u1, n).Cmp(fermatToInt(u2, n)) != 0 {
		t.Errorf("butterflyLshB(y) and butterflyRshB(-y) disagree on u")
	}
}
