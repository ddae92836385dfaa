// Package geometry holds the small 2D vector type shared by the
// registry and the dispatch loop for positions, sizes, and drag deltas.
package geometry

// Vector2D is a position or size in pixels. Arithmetic is componentwise
// and stays in int32; X11 coordinates fit comfortably.
type Vector2D struct {
	X int32
	Y int32
}

func New(x, y int32) Vector2D {
	return Vector2D{X: x, Y: y}
}

func (v Vector2D) Add(o Vector2D) Vector2D {
	return Vector2D{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector2D) Sub(o Vector2D) Vector2D {
	return Vector2D{X: v.X - o.X, Y: v.Y - o.Y}
}

// Max returns the componentwise maximum of v and o. It is used to clamp
// a size to a floor, never to clamp a position.
func (v Vector2D) Max(o Vector2D) Vector2D {
	r := v
	if o.X > r.X {
		r.X = o.X
	}
	if o.Y > r.Y {
		r.Y = o.Y
	}
	return r
}
