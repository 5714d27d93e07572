package exprbuild

import (
	"fmt"

	"github.com/soypat/gshade"
)

// Cast converts expression e of kind from to kind to. Scalars and integers
// convert to each other unchanged and keep their known value.
// Unsupported conversions return e unchanged and an error wrapping [ErrUnsupportedCast].
func Cast(e Expr, from, to gshade.ValueKind) (Expr, error) {
	if from == to || (from.IsNumber() && to.IsNumber()) {
		return e, nil
	}
	x := e.Text
	switch {
	case from.IsNumber() && to == gshade.KindColor:
		return text("color(" + x + ")"), nil
	case from == gshade.KindColor && to.IsNumber():
		return text("luminance(" + x + ")"), nil
	case from.IsNumber() && to == gshade.KindVector:
		return text("vec3(" + x + ")"), nil
	case from == gshade.KindVector && to.IsNumber():
		return text("avg(" + x + ")"), nil
	case from == gshade.KindColor && to == gshade.KindVector:
		return text("(" + x + ").rgb"), nil
	case from == gshade.KindVector && to == gshade.KindColor:
		return text("color(" + x + ".x, " + x + ".y, " + x + ".z, 1)"), nil
	}
	return e, fmt.Errorf("%s to %s: %w", from, to, ErrUnsupportedCast)
}

func (c *Context) cast(e Expr, from, to *gshade.Socket) Expr {
	ce, err := Cast(e, from.Kind(), to.Kind())
	if err != nil {
		c.diagf(to.Node(), ErrUnsupportedCast, "link %s -> %s: %s to %s", from, to, from.Kind(), to.Kind())
	}
	return ce
}
