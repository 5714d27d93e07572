package exprbuild_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gshade"
	"github.com/soypat/gshade/exprbuild"
)

const uv = exprbuild.TexCoordUV

var invertedPoints = []ms2.Vec{{X: 0, Y: 1}, {X: 1, Y: 0}}

type formulaTest struct {
	name     string
	sock     *gshade.Socket
	want     string
	wantDiag error // nil means no diagnostic expected.
}

func runFormulaTests(t *testing.T, tests []formulaTest) {
	t.Helper()
	for _, test := range tests {
		sess := exprbuild.NewSession(exprbuild.Config{})
		got := sess.Compile(test.sock)
		if got != test.want {
			t.Errorf("%s:\nwant %s\ngot  %s", test.name, test.want, got)
		}
		if !balanced(got) {
			t.Errorf("%s: unbalanced parentheses in %s", test.name, got)
		}
		err := sess.Err()
		if test.wantDiag == nil && err != nil {
			t.Errorf("%s: unexpected diagnostic: %v", test.name, err)
		} else if test.wantDiag != nil && !errors.Is(err, test.wantDiag) {
			t.Errorf("%s: want diagnostic %v, got %v", test.name, test.wantDiag, err)
		}
	}
}

func balanced(s string) bool {
	depth := 0
	for _, c := range s {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}

func mathNode(g *gshade.Graph, op gshade.Operation, clamp bool) *gshade.Node {
	m := g.NewMath(op, clamp)
	m.In(0).SetDefault(gshade.Float(1))
	m.In(1).SetDefault(gshade.Float(2))
	m.In(2).SetDefault(gshade.Float(3))
	return m
}

func TestMath(t *testing.T) {
	g := gshade.NewGraph("math")
	op := func(op gshade.Operation) *gshade.Socket { return mathNode(g, op, false).Out(0) }
	runFormulaTests(t, []formulaTest{
		{name: "add", sock: op(gshade.OpAdd), want: "(1 + 2)"},
		{name: "subtract", sock: op(gshade.OpSubtract), want: "(1 - 2)"},
		{name: "divide", sock: op(gshade.OpDivide), want: "(1 / 2)"},
		{name: "multiply add", sock: op(gshade.OpMultiplyAdd), want: "((1 * 2) + 3)"},
		{name: "power", sock: op(gshade.OpPower), want: "((1)^(2))"},
		{name: "log", sock: op(gshade.OpLogarithm), want: "log(1)"},
		{name: "inverse sqrt", sock: op(gshade.OpInverseSqrt), want: "(1/sqrt(1))"},
		{name: "minimum", sock: op(gshade.OpMinimum), want: "min(1, 2)"},
		{name: "less than", sock: op(gshade.OpLessThan), want: "select(1 < 2, 1, 0)"},
		{name: "greater than", sock: op(gshade.OpGreaterThan), want: "select(1 > 2, 1, 0)"},
		{name: "sign", sock: op(gshade.OpSign), want: "select(1 < 0, -1, 1)"},
		{name: "compare", sock: op(gshade.OpCompare), want: "select(abs(1 - 2) <= Eps, 1, 0)"},
		{name: "trunc", sock: op(gshade.OpTrunc), want: "trunc(1)"},
		{name: "fraction", sock: op(gshade.OpFraction), want: "fract(1)"},
		{name: "modulo", sock: op(gshade.OpModulo), want: "fmod(1, 2)"},
		{name: "smooth max", sock: op(gshade.OpSmoothMax), want: "smax(1, 2, 3)"},
		{name: "wrap", sock: op(gshade.OpWrap), want: "wrap(1, 2, 3)"},
		{name: "pingpong", sock: op(gshade.OpPingPong), want: "pingpong(1, 2)"},
		{name: "tanh", sock: op(gshade.OpTanh), want: "tanh(1)"},
		{name: "arctan2", sock: op(gshade.OpArctan2), want: "atan2(1, 2)"},
		{name: "radians", sock: op(gshade.OpRadians), want: "(1 * Pi / 180)"},
		{name: "degrees", sock: op(gshade.OpDegrees), want: "(1 * 180 / Pi)"},
		{name: "clamped", sock: mathNode(g, gshade.OpMultiply, true).Out(0), want: "clamp((1 * 2), 0, 1)"},
		{name: "unsupported", sock: op(gshade.OpCrossProduct), want: "0", wantDiag: exprbuild.ErrUnsupported},
		{name: "unsupported clamped", sock: mathNode(g, gshade.OpScale, true).Out(0), want: "0", wantDiag: exprbuild.ErrUnsupported},
	})
}

func TestMathLazyInputs(t *testing.T) {
	g := gshade.NewGraph("math")
	sqrt := g.NewMath(gshade.OpSqrt, false)
	unused := g.NewCustom("Unknown", nil, []gshade.SocketSpec{{Name: "Value", Kind: gshade.KindScalar}})
	g.Link(unused.Out(0), sqrt.In(1))
	sess := exprbuild.NewSession(exprbuild.Config{})
	if got := sess.Compile(sqrt.Out(0)); got != "sqrt(0.5)" {
		t.Errorf("want sqrt(0.5), got %q", got)
	}
	if err := sess.Err(); err != nil {
		t.Error("unused input must not be compiled:", err)
	}
}

func TestClampMapRange(t *testing.T) {
	g := gshade.NewGraph("range")
	linear := g.NewMapRange(gshade.InterpLinear, false)
	const linearText = "(((((1 - 0) / (1 - 0))) * (1 - 0)) + 0)"
	runFormulaTests(t, []formulaTest{
		{name: "clamp minmax", sock: g.NewClamp(gshade.ClampMinMax).Out(0), want: "clamp(1, 0, 1)"},
		{name: "clamp range", sock: g.NewClamp(gshade.ClampRange).Out(0), want: "clamp(1, min(0, 1), max(0, 1))"},
		{name: "map range linear", sock: linear.Out(0), want: linearText},
		{name: "map range clamped", sock: g.NewMapRange(gshade.InterpLinear, true).Out(0), want: "clamp(" + linearText + ", 0, 1)"},
		{name: "map range smoothstep", sock: g.NewMapRange(gshade.InterpSmoothstep, false).Out(0),
			want: "(((smoothstep(((1 - 0) / (1 - 0)))) * (1 - 0)) + 0)"},
		{name: "map range smootherstep", sock: g.NewMapRange(gshade.InterpSmootherstep, false).Out(0),
			want: "(((smootherstep(((1 - 0) / (1 - 0)))) * (1 - 0)) + 0)"},
		{name: "map range stepped", sock: g.NewMapRange("STEPPED", false).Out(0), want: "0", wantDiag: exprbuild.ErrUnsupported},
	})
}

func TestVectorMath(t *testing.T) {
	const (
		A = "vec3(1, 0, 0)"
		B = "vec3(0, 1, 0)"
		C = "vec3(0, 0, 1)"
	)
	g := gshade.NewGraph("vector")
	op := func(op gshade.Operation) *gshade.Socket {
		vm := g.NewVectorMath(op)
		vm.In(0).SetDefault(gshade.Vec(ms3.Vec{X: 1}))
		vm.In(1).SetDefault(gshade.Vec(ms3.Vec{Y: 1}))
		vm.In(2).SetDefault(gshade.Vec(ms3.Vec{Z: 1}))
		vm.Input("Scale").SetDefault(gshade.Float(2))
		return vm.Out(0)
	}
	runFormulaTests(t, []formulaTest{
		{name: "add", sock: op(gshade.OpAdd), want: "(" + A + " + " + B + ")"},
		{name: "scale", sock: op(gshade.OpScale), want: "(" + A + " * 2)"},
		{name: "multiply add", sock: op(gshade.OpMultiplyAdd), want: "((" + A + " * " + B + ") + " + C + ")"},
		{name: "cross", sock: op(gshade.OpCrossProduct), want: "cross(" + A + ", " + B + ")"},
		{name: "project", sock: op(gshade.OpProject), want: "project(" + A + ", " + B + ")"},
		{name: "refract", sock: op(gshade.OpRefract), want: "refract(" + A + ", " + B + ", 2)"},
		{name: "faceforward", sock: op(gshade.OpFaceforward), want: "select(dot(" + B + ", " + C + ") < 0, " + A + ", -" + A + ")"},
		{name: "dot", sock: op(gshade.OpDotProduct), want: "dot(" + A + ", " + B + ")"},
		{name: "distance", sock: op(gshade.OpDistance), want: "dist(" + A + ", " + B + ")"},
		{name: "length", sock: op(gshade.OpLength), want: "length(" + A + ")"},
		{name: "normalize", sock: op(gshade.OpNormalize), want: "norm(" + A + ")"},
		{name: "wrap", sock: op(gshade.OpWrap), want: "wrap(" + A + ", " + B + ", " + C + ")"},
		{name: "sine", sock: op(gshade.OpSine), want: "sin(" + A + ")"},
		{name: "arctan2", sock: op(gshade.OpArctan2), want: "atan2(" + A + ", " + B + ")"},
		{name: "degrees", sock: op(gshade.OpDegrees), want: "(" + A + " * 180 / Pi)"},
		{name: "power", sock: op(gshade.OpPower), want: "vec3(0)", wantDiag: exprbuild.ErrUnsupported},
		{name: "sign", sock: op(gshade.OpSign), want: "vec3(0)", wantDiag: exprbuild.ErrUnsupported},
	})
}

func TestMixRGB(t *testing.T) {
	const (
		R = "color(1, 0, 0, 1)"
		B = "color(0, 0, 1, 1)"
	)
	g := gshade.NewGraph("mix")
	mix := func(blend gshade.BlendType, clamp bool) *gshade.Socket {
		m := g.NewMixRGB(blend, clamp)
		m.Input("Color1").SetDefault(gshade.RGBA(gshade.Color{R: 1, A: 1}))
		m.Input("Color2").SetDefault(gshade.RGBA(gshade.Color{B: 1, A: 1}))
		return m.Out(0)
	}
	runFormulaTests(t, []formulaTest{
		{name: "mix", sock: mix(gshade.BlendMix, false), want: "mix(" + R + ", " + B + ", 0.5)"},
		{name: "burn", sock: mix(gshade.BlendBurn, false), want: "mix_burn(" + R + ", " + B + ", 0.5)"},
		{name: "soft light", sock: mix(gshade.BlendSoftLight, false), want: "mix_soft(" + R + ", " + B + ", 0.5)"},
		{name: "linear light", sock: mix(gshade.BlendLinearLight, false), want: "mix_linear(" + R + ", " + B + ", 0.5)"},
		{name: "darken", sock: mix(gshade.BlendDarken, false), want: "mix(" + R + ", min(" + R + ", " + B + "), 0.5)"},
		{name: "difference", sock: mix(gshade.BlendDifference, false), want: "mix(" + R + ", abs(" + R + " - " + B + "), 0.5)"},
		{name: "add", sock: mix(gshade.BlendAdd, false), want: "mix(" + R + ", " + R + " + " + B + ", 0.5)"},
		{name: "divide", sock: mix(gshade.BlendDivide, false), want: "mix(" + R + ", " + R + " / (" + B + " + color(1)), 0.5)"},
		{name: "clamped", sock: mix(gshade.BlendMix, true), want: "clamp(mix(" + R + ", " + B + ", 0.5), 0, 1)"},
		{name: "unsupported", sock: mix("EXCLUSION", false), want: "color(0)", wantDiag: exprbuild.ErrUnsupported},
	})
}

func TestColorNodes(t *testing.T) {
	g := gshade.NewGraph("color")
	invertHalf := g.NewInvert()
	invertHalf.Input("Fac").SetDefault(gshade.Float(0.5))
	invertLinked := g.NewInvert()
	g.Link(g.NewValue(1).Out(0), invertLinked.Input("Fac"))
	const black = "color(0, 0, 0, 1)"
	const gray8 = "color(0.8, 0.8, 0.8, 1)"
	runFormulaTests(t, []formulaTest{
		{name: "invert full", sock: g.NewInvert().Out(0), want: "(color(1) - " + black + ")"},
		{name: "invert half", sock: invertHalf.Out(0), want: "mix(" + black + ", (color(1) - " + black + "), 0.5)"},
		{name: "invert linked fac", sock: invertLinked.Out(0), want: "mix(" + black + ", (color(1) - " + black + "), 1)"},
		{name: "gamma", sock: g.NewGamma().Out(0), want: "((color(1, 1, 1, 1))^(1))"},
		{name: "bright contrast", sock: g.NewBrightContrast().Out(0), want: "max(color(0), (1+0)*color(1, 1, 1, 1) + color(0-0*0.5))"},
		{name: "hue saturation", sock: g.NewHueSaturation().Out(0), want: "hsvtorgb(mix(rgbtohsv(" + gray8 + "), color(0.5, 1, 1), 1))"},
		{name: "blackbody", sock: g.NewBlackbody().Out(0), want: "blackbody(1500)"},
		{name: "rgb to bw", sock: g.NewRGBToBW().Out(0), want: "luminance(color(0.5, 0.5, 0.5, 1))"},
		{name: "rgb", sock: g.NewRGB(gshade.Color{R: 0.25, G: 0.5, B: 1, A: 1}).Out(0), want: "color(0.25, 0.5, 1, 1)"},
		{name: "value", sock: g.NewValue(-2.5).Out(0), want: "-2.5"},
		{name: "combine hsv", sock: g.NewCombineHSV().Out(0), want: "hsvtorgb(color(0, 0, 0))"},
		{name: "combine rgb", sock: g.NewCombineRGB().Out(0), want: "color(0, 0, 0)"},
		{name: "combine xyz", sock: g.NewCombineXYZ().Out(0), want: "vec3(0, 0, 0)"},
		{name: "separate hsv", sock: g.NewSeparateHSV().Output("V"), want: "rgbtohsv(" + gray8 + ").b"},
		{name: "separate rgb", sock: g.NewSeparateRGB().Output("G"), want: gray8 + ".g"},
		{name: "separate xyz", sock: g.NewSeparateXYZ().Output("Z"), want: "vec3(0, 0, 0).z"},
	})
}

func TestColorRamp(t *testing.T) {
	g := gshade.NewGraph("ramp")
	elems := []gshade.RampElement{
		{Position: 0, Color: gshade.Color{R: 1, A: 1}},
		{Position: 1, Color: gshade.Color{R: 1, G: 1, A: 1}},
	}
	linear := g.NewColorRamp(gshade.InterpLinear, elems...)
	constant := g.NewColorRamp(gshade.InterpConstant, elems...)
	ease := g.NewColorRamp(gshade.InterpEase)
	runFormulaTests(t, []formulaTest{
		{name: "default", sock: g.NewColorRamp(gshade.InterpLinear).Output("Color"), want: "color(0.5)"},
		{name: "default alpha", sock: g.NewColorRamp(gshade.InterpLinear).Output("Alpha"), want: "1"},
		{name: "constant channels", sock: linear.Output("Color"), want: "color(1, lookup_linear(0.5, 0, 0, 1, 1), 0, 1)"},
		{name: "constant interpolation", sock: constant.Output("Color"), want: "color(1, lookup_constant(0.5, 0, 0, 1, 1), 0, 1)"},
		{name: "alpha", sock: linear.Output("Alpha"), want: "1"},
		{name: "non linear default elements", sock: ease.Output("Color"),
			want: "color(lookup_linear(0.5, 0, 0, 1, 1), lookup_linear(0.5, 0, 0, 1, 1), lookup_linear(0.5, 0, 0, 1, 1), 1)"},
	})
}

func TestFloatCurveFolding(t *testing.T) {
	g := gshade.NewGraph("curve")
	curve := func(fac float32, m gshade.CurveMapping) *gshade.Node {
		n := g.NewFloatCurve(m)
		n.Input("Fac").SetDefault(gshade.Float(fac))
		n.Input("Value").SetDefault(gshade.Float(0.25))
		return n
	}
	inverted := gshade.CurveMapping{Curves: []gshade.Curve{{Points: invertedPoints}}}
	const lookup = "lookup_linear(0.25, 0, 1, 1, 0)"

	linkedFac := curve(1, inverted)
	g.Link(g.NewMath(gshade.OpAdd, false).Out(0), linkedFac.Input("Fac"))
	knownFac := curve(0.5, inverted)
	g.Link(g.NewValue(0).Out(0), knownFac.Input("Fac"))

	extrapolated := inverted
	extrapolated.Extrapolate = true
	flat := gshade.CurveMapping{Curves: []gshade.Curve{{Points: []ms2.Vec{{X: 0, Y: 0.3}, {X: 1, Y: 0.3}}}}}
	runFormulaTests(t, []formulaTest{
		{name: "fac one", sock: curve(1, inverted).Out(0), want: lookup},
		{name: "fac zero", sock: curve(0, inverted).Out(0), want: "0.25"},
		{name: "fac half", sock: curve(0.5, inverted).Out(0), want: "mix(0.25, " + lookup + ", 0.5)"},
		{name: "fac linked", sock: linkedFac.Out(0), want: "mix(0.25, " + lookup + ", (0.5 + 0.5))"},
		{name: "fac linked known", sock: knownFac.Out(0), want: "0.25"},
		{name: "identity", sock: curve(1, gshade.CurveMapping{}).Out(0), want: "0.25"},
		{name: "extrapolate", sock: curve(1, extrapolated).Out(0), want: "lookup_linear_extrapolate(0.25, 0, 1, 1, 0)"},
		{name: "flat", sock: curve(1, flat).Out(0), want: "0.3"},
	})
}

func TestRGBVectorCurves(t *testing.T) {
	const (
		white = "color(1, 1, 1, 1)"
		zero  = "vec3(0, 0, 0)"
	)
	g := gshade.NewGraph("curves")
	inv := gshade.Curve{Points: invertedPoints}
	id := gshade.IdentityCurve()
	rgbInv := g.NewRGBCurve(gshade.CurveMapping{Curves: []gshade.Curve{inv, id, id, inv}})
	vecHalf := g.NewVectorCurve(gshade.CurveMapping{})
	vecHalf.Input("Fac").SetDefault(gshade.Float(0.5))
	runFormulaTests(t, []formulaTest{
		{name: "rgb identity", sock: g.NewRGBCurve(gshade.CurveMapping{}).Out(0),
			want: "color(" + white + ".r, " + white + ".g, " + white + ".b)"},
		{name: "rgb composed", sock: rgbInv.Out(0),
			want: "color(lookup_linear(lookup_linear(" + white + ".r, 0, 1, 1, 0), 0, 1, 1, 0), " +
				"lookup_linear(" + white + ".g, 0, 1, 1, 0), lookup_linear(" + white + ".b, 0, 1, 1, 0))"},
		{name: "vector half", sock: vecHalf.Out(0),
			want: "mix(" + zero + ", vec3(" + zero + ".x, " + zero + ".y, " + zero + ".z), 0.5)"},
	})
}

func TestMappingNormals(t *testing.T) {
	const (
		zero = "vec3(0, 0, 0)"
		one  = "vec3(1, 1, 1)"
		ln   = "(2*color(0.5, 0.5, 1, 1)-color(1)).xyz"
		nmap = "norm((vec3(dot(Nx, " + ln + "), dot(Ny, " + ln + "), dot(N, " + ln + ")) - N)*1 + N)"
	)
	g := gshade.NewGraph("vector")
	linkedMapping := g.NewMapping(gshade.MappingPoint)
	g.Link(g.NewTexCoord().Output("UV"), linkedMapping.Input("Vector"))
	normal := g.NewNormal(ms3.Vec{Y: 1})
	runFormulaTests(t, []formulaTest{
		{name: "point", sock: g.NewMapping(gshade.MappingPoint).Out(0),
			want: "(rotate_euler((vec3(0) * " + one + "), " + zero + ") + " + zero + ")"},
		{name: "point linked", sock: linkedMapping.Out(0),
			want: "(rotate_euler((" + uv + " * " + one + "), " + zero + ") + " + zero + ")"},
		{name: "texture", sock: g.NewMapping(gshade.MappingTexture).Out(0),
			want: "(rotate_euler_inverse((vec3(0) - " + zero + "), " + zero + ") / " + one + ")"},
		{name: "normal", sock: g.NewMapping(gshade.MappingNormal).Out(0),
			want: "norm(rotate_euler((vec3(0) / " + one + "), " + zero + "))"},
		{name: "vector", sock: g.NewMapping(gshade.MappingVector).Out(0),
			want: "rotate_euler((vec3(0) * " + one + "), " + zero + ")"},
		{name: "normal node direction", sock: normal.Output("Normal"), want: "vec3(0, 1, 0)"},
		{name: "normal node dot", sock: normal.Output("Dot"), want: "dot(vec3(0, 1, 0), vec3(0, 0, 1))"},
		{name: "normal map", sock: g.NewNormalMap(gshade.SpaceTangent).Out(0), want: nmap},
		{name: "normal map object space", sock: g.NewNormalMap(gshade.SpaceObject).Out(0), want: nmap, wantDiag: exprbuild.ErrUnsupported},
	})
}

func TestAttributes(t *testing.T) {
	g := gshade.NewGraph("attributes")
	geom := g.NewGeometry()
	coord := g.NewTexCoord()
	runFormulaTests(t, []formulaTest{
		{name: "position", sock: geom.Output("Position"), want: "P"},
		{name: "normal", sock: geom.Output("Normal"), want: "N"},
		{name: "tangent", sock: geom.Output("Tangent"), want: "N", wantDiag: exprbuild.ErrUnsupported},
		{name: "uv", sock: coord.Output("UV"), want: uv},
		{name: "generated", sock: coord.Output("Generated"), want: uv, wantDiag: exprbuild.ErrUnsupported},
		{name: "uv map", sock: g.NewUVMap("").Out(0), want: uv},
		{name: "named uv map", sock: g.NewUVMap("UVMap.001").Out(0), want: uv, wantDiag: exprbuild.ErrUnsupported},
	})
}

func TestProceduralTextures(t *testing.T) {
	scaled := "(" + uv + "*5)"
	triCoord := "(sum(" + scaled + ")*10 + 0)"
	easeT := "clamp(" + uv + ".x,0,1)"
	g := gshade.NewGraph("textures")
	checker := g.NewTexChecker()
	linkedNoise := g.NewTexNoise(gshade.Dim3D)
	g.Link(g.NewGeometry().Output("Position"), linkedNoise.Input("Vector"))
	runFormulaTests(t, []formulaTest{
		{name: "checker fac", sock: checker.Output("Fac"), want: "checkerboard(" + uv + " * 5)"},
		{name: "checker color", sock: checker.Output("Color"),
			want: "select(checkerboard(" + uv + " * 5) == 1, color(0.8, 0.8, 0.8, 1), color(0.2, 0.2, 0.2, 1))"},
		{name: "noise 2D", sock: g.NewTexNoise(gshade.Dim2D).Output("Fac"), want: "pnoise(abs(" + uv + ".xy*5))"},
		{name: "noise 3D color", sock: g.NewTexNoise(gshade.Dim3D).Output("Color"), want: "cpnoise(abs(" + uv + "*5))"},
		{name: "noise 1D", sock: g.NewTexNoise(gshade.Dim1D).Output("Fac"), want: "pnoise(abs(0*5))"},
		{name: "noise linked", sock: linkedNoise.Output("Fac"), want: "pnoise(abs(P*5))"},
		{name: "noise 4D", sock: g.NewTexNoise(gshade.Dim4D).Output("Fac"), want: "pnoise(abs(" + uv + "*5))", wantDiag: exprbuild.ErrUnsupported},
		{name: "white noise", sock: g.NewTexWhiteNoise(gshade.Dim3D).Output("Value"), want: "noise(" + uv + ")"},
		{name: "white noise color", sock: g.NewTexWhiteNoise(gshade.Dim2D).Output("Color"), want: "cnoise(" + uv + ".xy)"},
		{name: "voronoi", sock: g.NewTexVoronoi(gshade.Dim2D).Output("Distance"), want: "voronoi(abs(" + uv + ".xy*5))"},
		{name: "voronoi color", sock: g.NewTexVoronoi(gshade.Dim2D).Output("Color"), want: "cvoronoi(abs(" + uv + ".xy*5))"},
		{name: "voronoi position", sock: g.NewTexVoronoi(gshade.Dim2D).Output("Position"), want: "vec3(voronoi(abs(" + uv + ".xy*5)))"},
		{name: "voronoi 3D", sock: g.NewTexVoronoi(gshade.Dim3D).Output("Distance"), want: uv, wantDiag: exprbuild.ErrUnsupported},
		{name: "musgrave", sock: g.NewTexMusgrave(gshade.Dim2D).Out(0), want: "fbm(abs(" + uv + ".xy*5))"},
		{name: "musgrave 3D", sock: g.NewTexMusgrave(gshade.Dim3D).Out(0), want: uv, wantDiag: exprbuild.ErrUnsupported},
		{name: "wave bands sin", sock: g.NewTexWave(gshade.WaveBands, gshade.WaveX, gshade.WaveSin).Output("Fac"),
			want: "(0.5 + 0.5 * sin((" + scaled + ".x*20 + 0) - Pi/2))"},
		{name: "wave rings saw", sock: g.NewTexWave(gshade.WaveRings, gshade.WaveDiagonal, gshade.WaveSaw).Output("Color"),
			want: "color(fract(0.5*(length(" + scaled + ")*20 + 0)/Pi))"},
		{name: "wave rings z", sock: g.NewTexWave(gshade.WaveRings, gshade.WaveZ, gshade.WaveSaw).Output("Fac"),
			want: "fract(0.5*(length(" + scaled + ".xy)*20 + 0)/Pi)"},
		{name: "wave bands tri", sock: g.NewTexWave(gshade.WaveBands, gshade.WaveDiagonal, gshade.WaveTri).Output("Fac"),
			want: "2*abs(0.5*" + triCoord + "/Pi - floor(0.5*" + triCoord + "/Pi + 0.5))"},
		{name: "gradient linear", sock: g.NewTexGradient(gshade.GradientLinear).Output("Fac"), want: "clamp(" + uv + ".x, 0, 1)"},
		{name: "gradient easing", sock: g.NewTexGradient(gshade.GradientEasing).Output("Fac"),
			want: "clamp((3*" + easeT + "^2 - 2*" + easeT + "^3), 0, 1)"},
		{name: "gradient quadratic sphere", sock: g.NewTexGradient(gshade.GradientQuadraticSphere).Output("Fac"),
			want: "clamp((max(0, 1-length(" + uv + "))^2), 0, 1)"},
		{name: "gradient radial color", sock: g.NewTexGradient(gshade.GradientRadial).Output("Color"),
			want: "color(clamp((0.5*atan2(" + uv + ".y, " + uv + ".x) / Pi + 0.5), 0, 1))"},
	})
}

func TestCompiledTextIsBalanced(t *testing.T) {
	g := gshade.NewGraph("deep")
	prev := g.NewTexGradient(gshade.GradientDiagonal).Output("Fac")
	for _, op := range []gshade.Operation{gshade.OpPower, gshade.OpInverseSqrt, gshade.OpCompare, gshade.OpRadians} {
		m := g.NewMath(op, true)
		g.Link(prev, m.In(0))
		g.Link(prev, m.In(1))
		prev = m.Out(0)
	}
	sess := exprbuild.NewSession(exprbuild.Config{})
	got := sess.Compile(prev)
	if !balanced(got) {
		t.Error("unbalanced:", got)
	}
	if strings.Count(got, "avg("+uv+".xy)") == 0 {
		t.Error("gradient expression missing:", got)
	}
}
