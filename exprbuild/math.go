package exprbuild

import "github.com/soypat/gshade"

func (c *Context) math(n *gshade.Node, m *gshade.Math) Expr {
	a := func(i int) string { return c.arg(n, i) }
	var ops string
	switch m.Operation {
	case gshade.OpAdd:
		ops = binop(a(0), "+", a(1))
	case gshade.OpSubtract:
		ops = binop(a(0), "-", a(1))
	case gshade.OpMultiply:
		ops = binop(a(0), "*", a(1))
	case gshade.OpDivide:
		ops = binop(a(0), "/", a(1))
	case gshade.OpMultiplyAdd:
		ops = binop(binop(a(0), "*", a(1)), "+", a(2))
	case gshade.OpPower:
		ops = "((" + a(0) + ")^(" + a(1) + "))"
	case gshade.OpLogarithm:
		ops = call("log", a(0))
	case gshade.OpSqrt:
		ops = call("sqrt", a(0))
	case gshade.OpInverseSqrt:
		ops = "(1/" + call("sqrt", a(0)) + ")"
	case gshade.OpAbsolute:
		ops = call("abs", a(0))
	case gshade.OpExponent:
		ops = call("exp", a(0))
	case gshade.OpMinimum:
		ops = call("min", a(0), a(1))
	case gshade.OpMaximum:
		ops = call("max", a(0), a(1))
	case gshade.OpLessThan:
		ops = call("select", a(0)+" < "+a(1), "1", "0")
	case gshade.OpGreaterThan:
		ops = call("select", a(0)+" > "+a(1), "1", "0")
	case gshade.OpSign:
		// Zero maps to 1.
		ops = call("select", a(0)+" < 0", "-1", "1")
	case gshade.OpCompare:
		ops = call("select", "abs("+a(0)+" - "+a(1)+") <= Eps", "1", "0")
	case gshade.OpRound:
		ops = call("round", a(0))
	case gshade.OpFloor:
		ops = call("floor", a(0))
	case gshade.OpCeil:
		ops = call("ceil", a(0))
	case gshade.OpTrunc:
		ops = call("trunc", a(0))
	case gshade.OpFraction:
		ops = call("fract", a(0))
	case gshade.OpModulo:
		ops = call("fmod", a(0), a(1))
	case gshade.OpSmoothMin:
		ops = call("smin", a(0), a(1), a(2))
	case gshade.OpSmoothMax:
		ops = call("smax", a(0), a(1), a(2))
	case gshade.OpWrap:
		ops = call("wrap", a(0), a(1), a(2))
	case gshade.OpSnap:
		ops = call("snap", a(0), a(1))
	case gshade.OpPingPong:
		ops = call("pingpong", a(0), a(1))
	case gshade.OpRadians:
		ops = "(" + a(0) + " * Pi / 180)"
	case gshade.OpDegrees:
		ops = "(" + a(0) + " * 180 / Pi)"
	default:
		fn, ok := trigFuncs[m.Operation]
		if !ok {
			c.diagf(n, ErrUnsupported, "math operation %q", m.Operation)
			return c.lit(n, 0)
		}
		if m.Operation == gshade.OpArctan2 {
			ops = call(fn, a(0), a(1))
		} else {
			ops = call(fn, a(0))
		}
	}
	if m.UseClamp {
		return text(call("clamp", ops, "0", "1"))
	}
	return text(ops)
}

// trigFuncs are the trigonometric operations shared by scalar and vector math.
var trigFuncs = map[gshade.Operation]string{
	gshade.OpSine:       "sin",
	gshade.OpCosine:     "cos",
	gshade.OpTangent:    "tan",
	gshade.OpArcsine:    "asin",
	gshade.OpArccosine:  "acos",
	gshade.OpArctangent: "atan",
	gshade.OpSinh:       "sinh",
	gshade.OpCosh:       "cosh",
	gshade.OpTanh:       "tanh",
	gshade.OpArctan2:    "atan2",
}

func binop(a, op, b string) string { return "(" + a + " " + op + " " + b + ")" }

func (c *Context) clamp(n *gshade.Node, cl *gshade.Clamp) Expr {
	val := c.argNamed(n, "Value")
	lo := c.argNamed(n, "Min")
	hi := c.argNamed(n, "Max")
	if cl.Type == gshade.ClampRange {
		// Range clamps accept reversed bounds.
		lo, hi = call("min", lo, hi), call("max", lo, hi)
	}
	return text(call("clamp", val, lo, hi))
}

func (c *Context) mapRange(n *gshade.Node, mr *gshade.MapRange) Expr {
	val := c.arg(n, 0)
	fromMin := c.arg(n, 1)
	fromMax := c.arg(n, 2)
	toMin := c.arg(n, 3)
	toMax := c.arg(n, 4)

	toUnit := "((" + val + " - " + fromMin + ") / (" + fromMax + " - " + fromMin + "))"
	var interp string
	switch mr.Interpolation {
	case gshade.InterpLinear:
		interp = toUnit
	case gshade.InterpSmoothstep:
		interp = call("smoothstep", toUnit)
	case gshade.InterpSmootherstep:
		interp = call("smootherstep", toUnit)
	default:
		c.diagf(n, ErrUnsupported, "map range interpolation %q", mr.Interpolation)
		return c.lit(n, 0)
	}
	ops := "(((" + interp + ") * (" + toMax + " - " + toMin + ")) + " + toMin + ")"
	if mr.UseClamp {
		return text(call("clamp", ops, toMin, toMax))
	}
	return text(ops)
}
