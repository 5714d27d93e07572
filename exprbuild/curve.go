package exprbuild

import (
	"strings"

	"github.com/soypat/gshade"
)

// curveLookup returns the expression mapping t through curve. The identity
// curve returns t unchanged and a flat curve returns its value.
func (c *Context) curveLookup(n *gshade.Node, curve gshade.Curve, t string, extrapolate bool) string {
	pts := curve.Points
	if len(pts) == 0 || (len(pts) == 2 && pts[0].X == 0 && pts[0].Y == 0 && pts[1].X == 1 && pts[1].Y == 1) {
		return t
	}
	flat := true
	for _, p := range pts[1:] {
		flat = flat && p.Y == pts[0].Y
	}
	if flat {
		return c.num(n, pts[0].Y)
	}
	fn := "lookup_linear"
	if extrapolate {
		fn = "lookup_linear_extrapolate"
	}
	var b strings.Builder
	b.WriteString(fn)
	b.WriteByte('(')
	b.WriteString(t)
	for _, p := range pts {
		b.WriteString(", ")
		b.WriteString(c.num(n, p.X))
		b.WriteString(", ")
		b.WriteString(c.num(n, p.Y))
	}
	b.WriteByte(')')
	return b.String()
}

// curveAt returns the i'th curve of m or the identity curve if m has fewer curves.
func curveAt(m gshade.CurveMapping, i int) gshade.Curve {
	if i < len(m.Curves) {
		return m.Curves[i]
	}
	return gshade.IdentityCurve()
}

// foldFac selects between the unmapped and mapped expressions by a blend factor.
// Factors known to be exactly 1 or 0 select a branch at compile time.
func foldFac(fac Expr, unmapped, mapped string) Expr {
	switch fac.LiteralOr(-1) {
	case 1:
		return text(mapped)
	case 0:
		return text(unmapped)
	}
	return text(call("mix", unmapped, mapped, fac.Text))
}

func (c *Context) floatCurve(n *gshade.Node, fc *gshade.FloatCurve) Expr {
	fac := c.argNamedExpr(n, "Fac")
	value := c.argNamedExpr(n, "Value")
	lv := c.curveLookup(n, curveAt(fc.Mapping, 0), value.Text, fc.Mapping.Extrapolate)
	if fac.LiteralOr(-1) == 0 {
		return value
	}
	return foldFac(fac, value.Text, lv)
}

func (c *Context) rgbCurve(n *gshade.Node, rc *gshade.RGBCurve) Expr {
	m := rc.Mapping
	fac := c.argNamedExpr(n, "Fac")
	col := c.argNamed(n, "Color")
	combined := curveAt(m, 3)
	var ch [3]string
	for i, sel := range [3]string{".r", ".g", ".b"} {
		lc := c.curveLookup(n, combined, col+sel, m.Extrapolate)
		ch[i] = c.curveLookup(n, curveAt(m, i), lc, m.Extrapolate)
	}
	return foldFac(fac, col, call("color", ch[0], ch[1], ch[2]))
}

func (c *Context) vectorCurve(n *gshade.Node, vc *gshade.VectorCurve) Expr {
	m := vc.Mapping
	fac := c.argNamedExpr(n, "Fac")
	vec := c.argNamed(n, "Vector")
	var ch [3]string
	for i, sel := range [3]string{".x", ".y", ".z"} {
		ch[i] = c.curveLookup(n, curveAt(m, i), vec+sel, m.Extrapolate)
	}
	return foldFac(fac, vec, call("vec3", ch[0], ch[1], ch[2]))
}
