package exprbuild

import (
	"strings"

	"github.com/soypat/gshade"
)

// blendFuncs are blend modes the renderer implements as a mix function of (c1, c2, fac).
var blendFuncs = map[gshade.BlendType]string{
	gshade.BlendMix:         "mix",
	gshade.BlendBurn:        "mix_burn",
	gshade.BlendScreen:      "mix_screen",
	gshade.BlendDodge:       "mix_dodge",
	gshade.BlendOverlay:     "mix_overlay",
	gshade.BlendSoftLight:   "mix_soft",
	gshade.BlendLinearLight: "mix_linear",
	gshade.BlendHue:         "mix_hue",
	gshade.BlendSaturation:  "mix_saturation",
	gshade.BlendValue:       "mix_value",
	gshade.BlendColor:       "mix_color",
}

func (c *Context) mixRGB(n *gshade.Node, m *gshade.MixRGB) Expr {
	fac := c.arg(n, 0)
	c1 := c.arg(n, 1)
	c2 := c.arg(n, 2)
	var ops string
	switch m.Blend {
	case gshade.BlendDarken:
		ops = call("mix", c1, call("min", c1, c2), fac)
	case gshade.BlendLighten:
		ops = call("mix", c1, call("max", c1, c2), fac)
	case gshade.BlendDifference:
		ops = call("mix", c1, call("abs", c1+" - "+c2), fac)
	case gshade.BlendAdd:
		ops = call("mix", c1, c1+" + "+c2, fac)
	case gshade.BlendSubtract:
		ops = call("mix", c1, c1+" - "+c2, fac)
	case gshade.BlendMultiply:
		ops = call("mix", c1, c1+" * "+c2, fac)
	case gshade.BlendDivide:
		ops = call("mix", c1, c1+" / ("+c2+" + color(1))", fac)
	default:
		fn, ok := blendFuncs[m.Blend]
		if !ok {
			c.diagf(n, ErrUnsupported, "blend type %q", m.Blend)
			return text("color(0)")
		}
		ops = call(fn, c1, c2, fac)
	}
	if m.UseClamp {
		return text(call("clamp", ops, "0", "1"))
	}
	return text(ops)
}

func (c *Context) invert(n *gshade.Node) Expr {
	fac := c.arg(n, 0)
	col := c.arg(n, 1)
	ops := "(color(1) - " + col + ")"
	if len(n.Inputs()) > 0 {
		in := n.In(0)
		if def, _ := in.Default(); in.Link() == nil && def.Float() == 1 {
			return text(ops)
		}
	}
	return text(call("mix", col, ops, fac))
}

func (c *Context) gamma(n *gshade.Node) Expr {
	col := c.arg(n, 0)
	g := c.arg(n, 1)
	return text("((" + col + ")^(" + g + "))")
}

func (c *Context) brightContrast(n *gshade.Node) Expr {
	col := c.argNamed(n, "Color")
	bright := c.argNamed(n, "Bright")
	contrast := c.argNamed(n, "Contrast")
	return text("max(color(0), (1+" + contrast + ")*" + col + " + color(" + bright + "-" + contrast + "*0.5))")
}

func (c *Context) hueSaturation(n *gshade.Node) Expr {
	hue := c.arg(n, 0)
	sat := c.arg(n, 1)
	val := c.arg(n, 2)
	fac := c.arg(n, 3)
	col := c.arg(n, 4)
	return text(call("hsvtorgb", call("mix", call("rgbtohsv", col), call("color", hue, sat, val), fac)))
}

func (c *Context) combineHSV(n *gshade.Node) Expr {
	h := c.argNamed(n, "H")
	s := c.argNamed(n, "S")
	v := c.argNamed(n, "V")
	return text(call("hsvtorgb", call("color", h, s, v)))
}

func (c *Context) combineRGB(n *gshade.Node) Expr {
	r := c.argNamed(n, "R")
	g := c.argNamed(n, "G")
	b := c.argNamed(n, "B")
	return text(call("color", r, g, b))
}

func (c *Context) separateHSV(n *gshade.Node, out *gshade.Socket) Expr {
	hsv := call("rgbtohsv", c.arg(n, 0))
	return text(hsv + swizzle(out.Name(), "H", "S", ".r", ".g", ".b"))
}

func (c *Context) separateRGB(n *gshade.Node, out *gshade.Socket) Expr {
	return text(c.arg(n, 0) + swizzle(out.Name(), "R", "G", ".r", ".g", ".b"))
}

// swizzle picks the component selector for a separate node output. Any
// output other than first and second selects the third component.
func swizzle(name, first, second, s0, s1, s2 string) string {
	switch name {
	case first:
		return s0
	case second:
		return s1
	}
	return s2
}

// isDefaultRamp reports whether the ramp is the linear black to white identity.
func isDefaultRamp(cr *gshade.ColorRamp) bool {
	if cr.Interpolation != gshade.InterpLinear || len(cr.Elements) != 2 {
		return false
	}
	def := gshade.DefaultRamp()
	return cr.Elements[0] == def[0] && cr.Elements[1] == def[1]
}

func (c *Context) colorRamp(n *gshade.Node, cr *gshade.ColorRamp, out *gshade.Socket) Expr {
	t := c.arg(n, 0)
	alpha := out.Name() == "Alpha"
	if !alpha && isDefaultRamp(cr) {
		return text(call("color", t))
	}
	fn := "lookup_linear"
	if cr.Interpolation == gshade.InterpConstant {
		fn = "lookup_constant"
	}
	channel := func(idx int) string {
		if len(cr.Elements) == 0 {
			c.diagf(n, ErrUnsupported, "color ramp without elements")
			return "0"
		}
		first := rgba(cr.Elements[0].Color)[idx]
		constant := true
		for _, e := range cr.Elements[1:] {
			constant = constant && rgba(e.Color)[idx] == first
		}
		if constant {
			return c.num(n, first)
		}
		var args strings.Builder
		args.WriteString(t)
		for _, e := range cr.Elements {
			args.WriteString(", ")
			args.WriteString(c.num(n, e.Position))
			args.WriteString(", ")
			args.WriteString(c.num(n, rgba(e.Color)[idx]))
		}
		return fn + "(" + args.String() + ")"
	}
	if alpha {
		return text(channel(3))
	}
	return text(call("color", channel(0), channel(1), channel(2), channel(3)))
}

func rgba(c gshade.Color) [4]float32 { return [4]float32{c.R, c.G, c.B, c.A} }
