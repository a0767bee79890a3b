package dag

import "math"

func minF(x, y float64) float64  { return math.Min(x, y) }
func maxF(x, y float64) float64  { return math.Max(x, y) }
func absF(x float64) float64     { return math.Abs(x) }
func sqrtF(x float64) float64    { return math.Sqrt(x) }
func expF(x float64) float64     { return math.Exp(x) }
func logF(x float64) float64     { return math.Log(x) }
func cosF(x float64) float64     { return math.Cos(x) }
func sinF(x float64) float64     { return math.Sin(x) }
func tanF(x float64) float64     { return math.Tan(x) }
func coshF(x float64) float64    { return math.Cosh(x) }
func sinhF(x float64) float64    { return math.Sinh(x) }
func tanhF(x float64) float64    { return math.Tanh(x) }
func powF(x float64, n int) float64 { return math.Pow(x, float64(n)) }

func sgnF(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
