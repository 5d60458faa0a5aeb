package arena

import "math"

// Vector 世界坐标下的二维向量
type Vector struct {
	X float64 `msgpack:"x" json:"x"`
	Y float64 `msgpack:"y" json:"y"`
}

func (v Vector) Add(o Vector) Vector { return Vector{v.X + o.X, v.Y + o.Y} }
func (v Vector) Sub(o Vector) Vector { return Vector{v.X - o.X, v.Y - o.Y} }
func (v Vector) Scale(k float64) Vector { return Vector{v.X * k, v.Y * k} }
func (v Vector) Rho() float64 { return math.Hypot(v.X, v.Y) }
func (v Vector) Phi() float64 { return math.Atan2(v.Y, v.X) }
func (v Vector) Dist(o Vector) float64 { return v.Sub(o).Rho() }

// Rotate 逆时针旋转 angle 弧度
func (v Vector) Rotate(angle float64) Vector {
	sin, cos := math.Sincos(angle)
	return Vector{
		X: cos*v.X - sin*v.Y,
		Y: sin*v.X + cos*v.Y,
	}
}

// RelativeAngle 把 angle 相对 ref 的差值规约到 [-π, π)
func RelativeAngle(angle, ref float64) float64 {
	d := math.Mod(angle+math.Pi-ref, 2*math.Pi)
	if d < 0 {
		d += 2 * math.Pi
	}
	return d - math.Pi
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

func degrees(rad float64) float64 { return rad * 180 / math.Pi }
