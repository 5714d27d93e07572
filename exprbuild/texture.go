package exprbuild

import "github.com/soypat/gshade"

func (c *Context) texImage(n *gshade.Node, ti *gshade.TexImage, out *gshade.Socket) Expr {
	if ti.Image == nil {
		c.diagf(n, ErrMissingResource, "image texture has no image")
		if out.Name() == "Alpha" {
			return c.lit(n, 0)
		}
		return text("color(0)")
	}
	name := c.registerTexture(n, ti.Image, wrapMode(ti.Extension), filterType(ti.Interpolation))
	access := c.texAccess(n, name)
	if out.Name() == "Alpha" {
		return text(access + ".a")
	}
	return text(access)
}

func (c *Context) texEnvironment(n *gshade.Node, te *gshade.TexEnvironment) Expr {
	if te.Image == nil {
		c.diagf(n, ErrMissingResource, "environment texture has no image")
		return text("color(0)")
	}
	name := c.registerTexture(n, te.Image, WrapClamp, filterType(te.Interpolation))
	return text(c.texAccess(n, name))
}

// texAccess samples texture name at the node's Vector input. An unlinked
// Vector samples at the surface coordinate.
func (c *Context) texAccess(n *gshade.Node, name string) string {
	if !linked(n, "Vector") {
		return name
	}
	return name + "((" + c.argNamed(n, "Vector") + ").xy)"
}

func (c *Context) texChecker(n *gshade.Node, out *gshade.Socket) Expr {
	scale := c.argNamed(n, "Scale")
	uv := c.texVector(n)
	raw := "checkerboard(" + uv + " * " + scale + ")"
	if out.Name() != "Color" {
		return text(raw)
	}
	c1 := c.argNamed(n, "Color1")
	c2 := c.argNamed(n, "Color2")
	return text(call("select", raw+" == 1", c1, c2))
}

// noiseVector returns the noise domain coordinate for the node's dimensionality.
func (c *Context) noiseVector(n *gshade.Node, dim gshade.Dimensions) string {
	uv := c.texVector(n)
	switch dim {
	case gshade.Dim1D:
		return c.argNamed(n, "W")
	case gshade.Dim2D:
		return uv + ".xy"
	case gshade.Dim3D:
		return uv
	}
	c.diagf(n, ErrUnsupported, "noise dimensions %q, using 3D", dim)
	return uv
}

func (c *Context) texWhiteNoise(n *gshade.Node, wn *gshade.TexWhiteNoise, out *gshade.Socket) Expr {
	v := c.noiseVector(n, wn.Dimensions)
	if out.Name() == "Color" {
		return text(call("cnoise", v))
	}
	return text(call("noise", v))
}

func (c *Context) texNoise(n *gshade.Node, tn *gshade.TexNoise, out *gshade.Socket) Expr {
	v := c.noiseVector(n, tn.Dimensions)
	scale := c.argNamed(n, "Scale")
	arg := "abs(" + v + "*" + scale + ")"
	if out.Name() == "Color" {
		return text(call("cpnoise", arg))
	}
	return text(call("pnoise", arg))
}

func (c *Context) texVoronoi(n *gshade.Node, tv *gshade.TexVoronoi, out *gshade.Socket) Expr {
	uv := c.texVector(n)
	if tv.Dimensions != gshade.Dim2D {
		c.diagf(n, ErrUnsupported, "voronoi dimensions %q, only 2D supported", tv.Dimensions)
		return text(uv)
	}
	scale := c.argNamed(n, "Scale")
	arg := "abs(" + uv + ".xy*" + scale + ")"
	switch out.Name() {
	case "Color":
		return text(call("cvoronoi", arg))
	case "Position":
		return text(call("vec3", call("voronoi", arg)))
	}
	return text(call("voronoi", arg))
}

func (c *Context) texMusgrave(n *gshade.Node, tm *gshade.TexMusgrave) Expr {
	uv := c.texVector(n)
	if tm.Dimensions != gshade.Dim2D {
		c.diagf(n, ErrUnsupported, "musgrave dimensions %q, only 2D supported", tm.Dimensions)
		return text(uv)
	}
	scale := c.argNamed(n, "Scale")
	return text(call("fbm", "abs("+uv+".xy*"+scale+")"))
}

func (c *Context) texWave(n *gshade.Node, tw *gshade.TexWave, out *gshade.Socket) Expr {
	uv := c.texVector(n)
	scale := c.argNamed(n, "Scale")
	uv = "(" + uv + "*" + scale + ")"

	var coord string
	if tw.Type == gshade.WaveBands {
		switch tw.Direction {
		case gshade.WaveX:
			coord = uv + ".x*20"
		case gshade.WaveY:
			coord = uv + ".y*20"
		case gshade.WaveZ:
			coord = uv + ".z*20"
		default:
			coord = "sum(" + uv + ")*10"
		}
	} else {
		switch tw.Direction {
		case gshade.WaveX:
			coord = "length(" + uv + ".yz)*20"
		case gshade.WaveY:
			coord = "length(" + uv + ".xz)*20"
		case gshade.WaveZ:
			coord = "length(" + uv + ".xy)*20"
		default:
			coord = "length(" + uv + ")*20"
		}
	}
	phase := c.argNamed(n, "Phase Offset")
	coord = "(" + coord + " + " + phase + ")"

	var ops string
	switch tw.Profile {
	case gshade.WaveSin:
		ops = "(0.5 + 0.5 * sin(" + coord + " - Pi/2))"
	case gshade.WaveSaw:
		ops = "fract(0.5*" + coord + "/Pi)"
	default:
		ops = "2*abs(0.5*" + coord + "/Pi - floor(0.5*" + coord + "/Pi + 0.5))"
	}
	if out.Name() == "Color" {
		return text(call("color", ops))
	}
	return text(ops)
}

func (c *Context) texGradient(n *gshade.Node, tg *gshade.TexGradient, out *gshade.Socket) Expr {
	uv := c.texVector(n)
	var fac string
	switch tg.Type {
	case gshade.GradientLinear:
		fac = uv + ".x"
	case gshade.GradientQuadratic:
		fac = "(max(0, " + uv + ".x)^2)"
	case gshade.GradientEasing:
		t := "clamp(" + uv + ".x,0,1)"
		fac = "(3*" + t + "^2 - 2*" + t + "^3)"
	case gshade.GradientDiagonal:
		fac = "avg(" + uv + ".xy)"
	case gshade.GradientSpherical:
		fac = "max(0, 1-length(" + uv + "))"
	case gshade.GradientQuadraticSphere:
		fac = "(max(0, 1-length(" + uv + "))^2)"
	default:
		fac = "(0.5*atan2(" + uv + ".y, " + uv + ".x) / Pi + 0.5)"
	}
	fac = call("clamp", fac, "0", "1")
	if out.Name() == "Color" {
		return text(call("color", fac))
	}
	return text(fac)
}
