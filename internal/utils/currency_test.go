package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	cases := map[int64]string{
		0:          "Rp 0",
		999:        "Rp 999",
		1000:       "Rp 1.000",
		3000000:    "Rp 3.000.000",
		15000000:   "Rp 15.000.000",
		-2500:      "-Rp 2.500",
		1234567890: "Rp 1.234.567.890",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatRupiah(in), in)
	}
}
