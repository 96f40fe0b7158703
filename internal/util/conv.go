package util

import "math"

// Round 四舍五入到 n 位小数
func Round(x float64, n int) float64 {
	pow := math.Pow10(n)
	return math.Round(x*pow) / pow
}

func Round1(x float64) float64 { return Round(x, 1) }
func Round2(x float64) float64 { return Round(x, 2) }
func Round3(x float64) float64 { return Round(x, 3) }

// Truncate 截断到最多 n 个字符（按rune计，避免截断多字节字符）
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// Clamp 把 v 限制在 [lo, hi] 区间
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
