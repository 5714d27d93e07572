package exprbuild

import (
	"strconv"

	"github.com/chewxy/math32"
	"github.com/soypat/gshade"
)

// Expr is a compiled shading expression. Expressions originating from scalar
// literals carry their value so that factors can be folded at compile time.
type Expr struct {
	Text  string
	value float32
	known bool
}

func text(s string) Expr { return Expr{Text: s} }

func (e Expr) String() string { return e.Text }

// Literal returns the statically known scalar value of e and true, or false if e is not a known constant.
func (e Expr) Literal() (float32, bool) { return e.value, e.known }

// LiteralOr returns the statically known scalar value of e or def.
func (e Expr) LiteralOr(def float32) float32 {
	if !e.known {
		return def
	}
	return e.value
}

// AppendFloat appends the shortest representation of v that parses back to
// the same float32. Integral values have no decimal point and negative zero is "0".
func AppendFloat(b []byte, v float32) []byte {
	if v == 0 {
		return append(b, '0')
	}
	return strconv.AppendFloat(b, float64(v), 'f', -1, 32)
}

func finite(v float32) bool { return !math32.IsNaN(v) && !math32.IsInf(v, 0) }

// num formats v, reporting non-finite values for node n and rendering them as 0.
func (c *Context) num(n *gshade.Node, v float32) string {
	if !finite(v) {
		c.diagf(n, ErrInvalidLiteral, "non-finite value %v", v)
		v = 0
	}
	return string(AppendFloat(nil, v))
}

// lit returns a known scalar expression.
func (c *Context) lit(n *gshade.Node, v float32) Expr {
	if !finite(v) {
		c.diagf(n, ErrInvalidLiteral, "non-finite value %v", v)
		v = 0
	}
	return Expr{Text: string(AppendFloat(nil, v)), value: v, known: true}
}

func (c *Context) vec3(n *gshade.Node, arr [4]float32) string {
	return call("vec3", c.num(n, arr[0]), c.num(n, arr[1]), c.num(n, arr[2]))
}

func (c *Context) color(n *gshade.Node, arr [4]float32) string {
	return call("color", c.num(n, arr[0]), c.num(n, arr[1]), c.num(n, arr[2]), c.num(n, arr[3]))
}

// defaultOf renders the default literal of sock.
func (c *Context) defaultOf(sock *gshade.Socket) Expr {
	n := sock.Node()
	def, ok := sock.Default()
	if !ok {
		c.diagf(n, ErrInvalidLiteral, "socket %q has no default value", sock.Name())
		switch sock.Kind() {
		case gshade.KindVector:
			return text("vec3(0)")
		case gshade.KindColor:
			return text("color(0)")
		}
		return c.lit(n, 0)
	}
	arr := def.Array()
	switch sock.Kind() {
	case gshade.KindVector:
		return text(c.vec3(n, arr))
	case gshade.KindColor:
		return text(c.color(n, arr))
	}
	return c.lit(n, arr[0])
}
