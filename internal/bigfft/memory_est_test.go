package bigfft

import (
	"testing"
)

func TestEstimateMemoryNeeds(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		bitLen uint64
		want   MemoryEstimate
	}{
		{
			name:   "Small operand",
			bitLen: 100,
			want: MemoryEstimate{
				MaxWordSliceSize:   4,
				MaxFermatSize:      2048,
				MaxNatSliceSize:    2048,
				MaxFermatSliceSize: 2048,
			},
		},
		{
			name:   "Medium operand (wordLen > 10000)",
			bitLen: 2000000, // wordLen = 31250
			want: MemoryEstimate{
				MaxWordSliceSize:   62500,
				MaxFermatSize:      131072,
				MaxNatSliceSize:    4096,
				MaxFermatSliceSize: 4096,
			},
		},
		{
			name:   "Large operand (wordLen > 100000)",
			bitLen: 10000000, // wordLen = 156250
			want: MemoryEstimate{
				MaxWordSliceSize:   312500,
				MaxFermatSize:      524288,
				MaxNatSliceSize:    32768,
				MaxFermatSliceSize: 32768,
			},
		},
		{
			name:   "Huge operand (wordLen > 1000000)",
			bitLen: 100000000, // wordLen = 1562500
			want: MemoryEstimate{
				MaxWordSliceSize:   3125000,
				MaxFermatSize:      2097152,
				MaxNatSliceSize:    262144,
				MaxFermatSliceSize: 262144,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := EstimateMemoryNeeds(tt.bitLen)
			if got.MaxWordSliceSize != tt.want.MaxWordSliceSize {
				t.Errorf("MaxWordSliceSize = %v, want %v", got.MaxWordSliceSize, tt.want.MaxWordSliceSize)
			}
			if got.MaxFermatSize != tt.want.MaxFermatSize {
				t.Errorf("MaxFermatSize = %v, want %v", got.MaxFermatSize, tt.want.MaxFermatSize)
			}
			if got.MaxNatSliceSize != tt.want.MaxNatSliceSize {
				t.Errorf("MaxNatSliceSize = %v, want %v", got.MaxNatSliceSize, tt.want.MaxNatSliceSize)
			}
			if got.MaxFermatSliceSize != tt.want.MaxFermatSliceSize {
				t.Errorf("MaxFermatSliceSize = %v, want %v", got.MaxFermatSliceSize, tt.want.MaxFermatSliceSize)
			}
		})
	}
}
