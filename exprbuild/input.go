package exprbuild

import "github.com/soypat/gshade"

// TexCoordUV is the surface texture coordinate extended to a vector.
const TexCoordUV = "vec3(uv.x, uv.y, 0)"

func (c *Context) geometry(n *gshade.Node, out *gshade.Socket) Expr {
	switch out.Name() {
	case "Position":
		return text("P")
	case "Normal":
		return text("N")
	}
	c.diagf(n, ErrUnsupported, "geometry attribute %q, using normal", out.Name())
	return text("N")
}

func (c *Context) texCoord(n *gshade.Node, out *gshade.Socket) Expr {
	if out.Name() != "UV" {
		c.diagf(n, ErrUnsupported, "texture coordinate %q, using UV", out.Name())
	}
	return text(TexCoordUV)
}

func (c *Context) uvMap(n *gshade.Node, uv *gshade.UVMap) Expr {
	if uv.Map != "" {
		c.diagf(n, ErrUnsupported, "UV map %q, using the default map", uv.Map)
	}
	return text(TexCoordUV)
}

// texVector compiles the Vector input of a texture node or the surface UV if unlinked.
func (c *Context) texVector(n *gshade.Node) string {
	if linked(n, "Vector") {
		return c.argNamed(n, "Vector")
	}
	return TexCoordUV
}
