package exprbuild

import "github.com/soypat/gshade"

// vectorFuncs are vector operations compiled to a function of the first n inputs.
var vectorFuncs = map[gshade.Operation]struct {
	fn    string
	nargs int
}{
	gshade.OpCrossProduct: {"cross", 2},
	gshade.OpProject:      {"project", 2},
	gshade.OpReflect:      {"reflect", 2},
	gshade.OpDotProduct:   {"dot", 2},
	gshade.OpDistance:     {"dist", 2},
	gshade.OpLength:       {"length", 1},
	gshade.OpNormalize:    {"norm", 1},
	gshade.OpAbsolute:     {"abs", 1},
	gshade.OpExponent:     {"exp", 1},
	gshade.OpMinimum:      {"min", 2},
	gshade.OpMaximum:      {"max", 2},
	gshade.OpWrap:         {"wrap", 3},
	gshade.OpSnap:         {"snap", 2},
	gshade.OpRound:        {"round", 1},
	gshade.OpFloor:        {"floor", 1},
	gshade.OpCeil:         {"ceil", 1},
	gshade.OpFraction:     {"fract", 1},
	gshade.OpModulo:       {"fmod", 2},
}

func (c *Context) vectorMath(n *gshade.Node, vm *gshade.VectorMath) Expr {
	a := func(i int) string { return c.arg(n, i) }
	switch vm.Operation {
	case gshade.OpAdd:
		return text(binop(a(0), "+", a(1)))
	case gshade.OpSubtract:
		return text(binop(a(0), "-", a(1)))
	case gshade.OpMultiply:
		return text(binop(a(0), "*", a(1)))
	case gshade.OpScale:
		return text(binop(a(0), "*", c.argNamed(n, "Scale")))
	case gshade.OpDivide:
		return text(binop(a(0), "/", a(1)))
	case gshade.OpMultiplyAdd:
		return text(binop(binop(a(0), "*", a(1)), "+", a(2)))
	case gshade.OpRefract:
		return text(call("refract", a(0), a(1), c.argNamed(n, "Scale")))
	case gshade.OpFaceforward:
		v := a(0)
		return text(call("select", call("dot", a(1), a(2))+" < 0", v, "-"+v))
	case gshade.OpRadians:
		return text("(" + a(0) + " * Pi / 180)")
	case gshade.OpDegrees:
		return text("(" + a(0) + " * 180 / Pi)")
	}
	if f, ok := vectorFuncs[vm.Operation]; ok {
		args := make([]string, f.nargs)
		for i := range args {
			args[i] = a(i)
		}
		return text(call(f.fn, args...))
	}
	if fn, ok := trigFuncs[vm.Operation]; ok {
		if vm.Operation == gshade.OpArctan2 {
			return text(call(fn, a(0), a(1)))
		}
		return text(call(fn, a(0)))
	}
	c.diagf(n, ErrUnsupported, "vector math operation %q", vm.Operation)
	return text("vec3(0)")
}

func (c *Context) combineXYZ(n *gshade.Node) Expr {
	x := c.argNamed(n, "X")
	y := c.argNamed(n, "Y")
	z := c.argNamed(n, "Z")
	return text(call("vec3", x, y, z))
}

func (c *Context) separateXYZ(n *gshade.Node, out *gshade.Socket) Expr {
	return text(c.arg(n, 0) + swizzle(out.Name(), "X", "Y", ".x", ".y", ".z"))
}

func (c *Context) mapping(n *gshade.Node, m *gshade.Mapping) Expr {
	vec := "vec3(0)"
	if linked(n, "Vector") {
		vec = c.argNamed(n, "Vector")
	}
	sca := c.argNamed(n, "Scale")
	rot := c.argNamed(n, "Rotation")
	switch m.Type {
	case gshade.MappingPoint:
		loc := c.argNamed(n, "Location")
		return text(binop(call("rotate_euler", binop(vec, "*", sca), rot), "+", loc))
	case gshade.MappingTexture:
		loc := c.argNamed(n, "Location")
		return text(binop(call("rotate_euler_inverse", binop(vec, "-", loc), rot), "/", sca))
	case gshade.MappingNormal:
		return text(call("norm", call("rotate_euler", binop(vec, "/", sca), rot)))
	}
	return text(call("rotate_euler", binop(vec, "*", sca), rot))
}

func (c *Context) normal(n *gshade.Node, out *gshade.Socket) Expr {
	dir := c.defaultOf(n.Out(0)).Text
	if out.Name() == "Normal" {
		return text(dir)
	}
	return text(call("dot", dir, c.arg(n, 0)))
}

func (c *Context) normalMap(n *gshade.Node, nm *gshade.NormalMap) Expr {
	if nm.Space != gshade.SpaceTangent {
		c.diagf(n, ErrUnsupported, "normal map space %q, using tangent space", nm.Space)
	}
	col := c.argNamed(n, "Color")
	strength := c.argNamed(n, "Strength")
	ln := "(2*" + col + "-color(1)).xyz"
	dn := call("vec3", call("dot", "Nx", ln), call("dot", "Ny", ln), call("dot", "N", ln))
	return text(call("norm", "("+dn+" - N)*"+strength+" + N"))
}
