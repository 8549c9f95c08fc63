package utils

import "strconv"

// FormatRupiah renders whole rupiah with id-ID grouping: 15000000 -> "Rp 15.000.000".
func FormatRupiah(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i := 0; i < len(s); i++ {
		out = append(out, s[i])
		if pos := len(s) - i - 1; pos > 0 && pos%3 == 0 {
			out = append(out, '.')
		}
	}
	return sign + "Rp " + string(out)
}
