package gshade

import "github.com/soypat/geometry/ms3"

// The constructors below create nodes with the socket layout and defaults
// of their host counterparts. Sockets are addressed by these names during compilation.

func scalarIn(name string, v float32) SocketSpec {
	return SocketSpec{Name: name, Kind: KindScalar, Default: Float(v)}
}

func intIn(name string, v int) SocketSpec {
	return SocketSpec{Name: name, Kind: KindInteger, Default: Int(v)}
}

func vecIn(name string, v ms3.Vec) SocketSpec {
	return SocketSpec{Name: name, Kind: KindVector, Default: Vec(v)}
}

func colorIn(name string, c Color) SocketSpec {
	return SocketSpec{Name: name, Kind: KindColor, Default: RGBA(c)}
}

func grayIn(name string, v float32) SocketSpec {
	return colorIn(name, Color{R: v, G: v, B: v, A: 1})
}

func scalarOut(names ...string) []SocketSpec { return outs(KindScalar, names) }
func vecOut(names ...string) []SocketSpec    { return outs(KindVector, names) }
func colorOut(names ...string) []SocketSpec  { return outs(KindColor, names) }

func outs(kind ValueKind, names []string) []SocketSpec {
	specs := make([]SocketSpec, len(names))
	for i, name := range names {
		specs[i] = SocketSpec{Name: name, Kind: kind}
	}
	return specs
}

func concat(specs ...[]SocketSpec) (all []SocketSpec) {
	for _, s := range specs {
		all = append(all, s...)
	}
	return all
}

var zvec = ms3.Vec{}

// NewValue adds a constant scalar node.
func (g *Graph) NewValue(v float32) *Node {
	return g.AddNode("Value", &Value{}, nil, []SocketSpec{scalarIn("Value", v)})
}

// NewRGB adds a constant color node.
func (g *Graph) NewRGB(c Color) *Node {
	return g.AddNode("RGB", &RGB{}, nil, []SocketSpec{colorIn("Color", c)})
}

// NewMath adds a scalar math node. All three inputs are named "Value"; address them with [Node.In].
func (g *Graph) NewMath(op Operation, useClamp bool) *Node {
	return g.AddNode("Math", &Math{Operation: op, UseClamp: useClamp},
		[]SocketSpec{scalarIn("Value", 0.5), scalarIn("Value", 0.5), scalarIn("Value", 0.5)},
		scalarOut("Value"),
	)
}

func (g *Graph) NewClamp(typ ClampType) *Node {
	return g.AddNode("Clamp", &Clamp{Type: typ},
		[]SocketSpec{scalarIn("Value", 1), scalarIn("Min", 0), scalarIn("Max", 1)},
		scalarOut("Result"),
	)
}

func (g *Graph) NewMapRange(interp Interpolation, useClamp bool) *Node {
	return g.AddNode("Map Range", &MapRange{Interpolation: interp, UseClamp: useClamp},
		[]SocketSpec{
			scalarIn("Value", 1), scalarIn("From Min", 0), scalarIn("From Max", 1),
			scalarIn("To Min", 0), scalarIn("To Max", 1), scalarIn("Steps", 4),
		},
		scalarOut("Result"),
	)
}

// NewMixRGB adds a color blend node with inputs Fac, Color1 and Color2.
func (g *Graph) NewMixRGB(blend BlendType, useClamp bool) *Node {
	return g.AddNode("Mix", &MixRGB{Blend: blend, UseClamp: useClamp},
		[]SocketSpec{scalarIn("Fac", 0.5), grayIn("Color1", 0.5), grayIn("Color2", 0.5)},
		colorOut("Color"),
	)
}

func (g *Graph) NewInvert() *Node {
	return g.AddNode("Invert", &Invert{},
		[]SocketSpec{scalarIn("Fac", 1), grayIn("Color", 0)},
		colorOut("Color"),
	)
}

func (g *Graph) NewGamma() *Node {
	return g.AddNode("Gamma", &Gamma{},
		[]SocketSpec{grayIn("Color", 1), scalarIn("Gamma", 1)},
		colorOut("Color"),
	)
}

func (g *Graph) NewBrightContrast() *Node {
	return g.AddNode("Bright/Contrast", &BrightContrast{},
		[]SocketSpec{grayIn("Color", 1), scalarIn("Bright", 0), scalarIn("Contrast", 0)},
		colorOut("Color"),
	)
}

func (g *Graph) NewHueSaturation() *Node {
	return g.AddNode("Hue Saturation Value", &HueSaturation{},
		[]SocketSpec{
			scalarIn("Hue", 0.5), scalarIn("Saturation", 1), scalarIn("Value", 1),
			scalarIn("Fac", 1), grayIn("Color", 0.8),
		},
		colorOut("Color"),
	)
}

func (g *Graph) NewBlackbody() *Node {
	return g.AddNode("Blackbody", &Blackbody{},
		[]SocketSpec{scalarIn("Temperature", 1500)},
		colorOut("Color"),
	)
}

func (g *Graph) NewRGBToBW() *Node {
	return g.AddNode("RGB to BW", &RGBToBW{},
		[]SocketSpec{grayIn("Color", 0.5)},
		scalarOut("Val"),
	)
}

// DefaultRamp returns the control points of a new color ramp: opaque black at 0 and white at 1.
func DefaultRamp() []RampElement {
	return []RampElement{
		{Position: 0, Color: Color{A: 1}},
		{Position: 1, Color: Color{R: 1, G: 1, B: 1, A: 1}},
	}
}

// NewColorRamp adds a value to color lookup node. With no elements given the
// ramp is initialized to [DefaultRamp].
func (g *Graph) NewColorRamp(interp Interpolation, elems ...RampElement) *Node {
	if len(elems) == 0 {
		elems = DefaultRamp()
	}
	return g.AddNode("Color Ramp", &ColorRamp{Interpolation: interp, Elements: elems},
		[]SocketSpec{scalarIn("Fac", 0.5)},
		concat(colorOut("Color"), scalarOut("Alpha")),
	)
}

func (g *Graph) NewCombineHSV() *Node {
	return g.AddNode("Combine HSV", &CombineHSV{},
		[]SocketSpec{scalarIn("H", 0), scalarIn("S", 0), scalarIn("V", 0)},
		colorOut("Color"),
	)
}

func (g *Graph) NewCombineRGB() *Node {
	return g.AddNode("Combine RGB", &CombineRGB{},
		[]SocketSpec{scalarIn("R", 0), scalarIn("G", 0), scalarIn("B", 0)},
		colorOut("Image"),
	)
}

func (g *Graph) NewCombineXYZ() *Node {
	return g.AddNode("Combine XYZ", &CombineXYZ{},
		[]SocketSpec{scalarIn("X", 0), scalarIn("Y", 0), scalarIn("Z", 0)},
		vecOut("Vector"),
	)
}

func (g *Graph) NewSeparateHSV() *Node {
	return g.AddNode("Separate HSV", &SeparateHSV{},
		[]SocketSpec{grayIn("Color", 0.8)},
		scalarOut("H", "S", "V"),
	)
}

func (g *Graph) NewSeparateRGB() *Node {
	return g.AddNode("Separate RGB", &SeparateRGB{},
		[]SocketSpec{grayIn("Image", 0.8)},
		scalarOut("R", "G", "B"),
	)
}

func (g *Graph) NewSeparateXYZ() *Node {
	return g.AddNode("Separate XYZ", &SeparateXYZ{},
		[]SocketSpec{vecIn("Vector", zvec)},
		scalarOut("X", "Y", "Z"),
	)
}

func identityMapping(m CurveMapping, ncurves int) CurveMapping {
	for len(m.Curves) < ncurves {
		m.Curves = append(m.Curves, IdentityCurve())
	}
	return m
}

// NewFloatCurve adds a scalar curve node. Missing curves are initialized to [IdentityCurve].
func (g *Graph) NewFloatCurve(m CurveMapping) *Node {
	return g.AddNode("Float Curve", &FloatCurve{Mapping: identityMapping(m, 1)},
		[]SocketSpec{scalarIn("Fac", 1), scalarIn("Value", 1)},
		scalarOut("Value"),
	)
}

// NewRGBCurve adds an RGB curves node. Curves are ordered R, G, B and the combined curve.
func (g *Graph) NewRGBCurve(m CurveMapping) *Node {
	return g.AddNode("RGB Curves", &RGBCurve{Mapping: identityMapping(m, 4)},
		[]SocketSpec{scalarIn("Fac", 1), grayIn("Color", 1)},
		colorOut("Color"),
	)
}

// NewVectorCurve adds a vector curves node. Curves are ordered X, Y, Z.
func (g *Graph) NewVectorCurve(m CurveMapping) *Node {
	return g.AddNode("Vector Curves", &VectorCurve{Mapping: identityMapping(m, 3)},
		[]SocketSpec{scalarIn("Fac", 1), vecIn("Vector", zvec)},
		vecOut("Vector"),
	)
}

func (g *Graph) NewMapping(typ MappingType) *Node {
	return g.AddNode("Mapping", &Mapping{Type: typ},
		[]SocketSpec{
			vecIn("Vector", zvec), vecIn("Location", zvec),
			vecIn("Rotation", zvec), vecIn("Scale", ms3.Vec{X: 1, Y: 1, Z: 1}),
		},
		vecOut("Vector"),
	)
}

// NewVectorMath adds a vector math node. The three vector inputs are named "Vector"; address them with [Node.In].
func (g *Graph) NewVectorMath(op Operation) *Node {
	return g.AddNode("Vector Math", &VectorMath{Operation: op},
		[]SocketSpec{vecIn("Vector", zvec), vecIn("Vector", zvec), vecIn("Vector", zvec), scalarIn("Scale", 1)},
		concat(vecOut("Vector"), scalarOut("Value")),
	)
}

// NewNormal adds a normal node whose direction is dir.
func (g *Graph) NewNormal(dir ms3.Vec) *Node {
	return g.AddNode("Normal", &Normal{},
		[]SocketSpec{vecIn("Normal", ms3.Vec{Z: 1})},
		[]SocketSpec{vecIn("Normal", dir), scalarIn("Dot", 1)},
	)
}

func (g *Graph) NewNormalMap(space Space) *Node {
	return g.AddNode("Normal Map", &NormalMap{Space: space},
		[]SocketSpec{scalarIn("Strength", 1), colorIn("Color", Color{R: 0.5, G: 0.5, B: 1, A: 1})},
		vecOut("Normal"),
	)
}

func (g *Graph) NewTexImage(img *Image, ext Extension, interp TexInterpolation) *Node {
	return g.AddNode("Image Texture", &TexImage{Image: img, Extension: ext, Interpolation: interp},
		[]SocketSpec{vecIn("Vector", zvec)},
		concat(colorOut("Color"), scalarOut("Alpha")),
	)
}

func (g *Graph) NewTexEnvironment(img *Image, interp TexInterpolation) *Node {
	return g.AddNode("Environment Texture", &TexEnvironment{Image: img, Interpolation: interp},
		[]SocketSpec{vecIn("Vector", zvec)},
		colorOut("Color"),
	)
}

func (g *Graph) NewTexChecker() *Node {
	return g.AddNode("Checker Texture", &TexChecker{},
		[]SocketSpec{vecIn("Vector", zvec), grayIn("Color1", 0.8), grayIn("Color2", 0.2), scalarIn("Scale", 5)},
		concat(colorOut("Color"), scalarOut("Fac")),
	)
}

func (g *Graph) NewTexCoord() *Node {
	return g.AddNode("Texture Coordinate", &TexCoord{}, nil,
		vecOut("Generated", "Normal", "UV", "Object", "Camera", "Window", "Reflection"),
	)
}

func (g *Graph) NewTexNoise(dim Dimensions) *Node {
	return g.AddNode("Noise Texture", &TexNoise{Dimensions: dim},
		[]SocketSpec{
			vecIn("Vector", zvec), scalarIn("W", 0), scalarIn("Scale", 5),
			scalarIn("Detail", 2), scalarIn("Roughness", 0.5), scalarIn("Distortion", 0),
		},
		concat(scalarOut("Fac"), colorOut("Color")),
	)
}

func (g *Graph) NewTexWhiteNoise(dim Dimensions) *Node {
	return g.AddNode("White Noise Texture", &TexWhiteNoise{Dimensions: dim},
		[]SocketSpec{vecIn("Vector", zvec), scalarIn("W", 0)},
		concat(scalarOut("Value"), colorOut("Color")),
	)
}

func (g *Graph) NewTexVoronoi(dim Dimensions) *Node {
	return g.AddNode("Voronoi Texture", &TexVoronoi{Dimensions: dim},
		[]SocketSpec{
			vecIn("Vector", zvec), scalarIn("W", 0), scalarIn("Scale", 5),
			scalarIn("Smoothness", 1), scalarIn("Exponent", 0.5), scalarIn("Randomness", 1),
		},
		concat(scalarOut("Distance"), colorOut("Color"), vecOut("Position"), scalarOut("W", "Radius")),
	)
}

func (g *Graph) NewTexMusgrave(dim Dimensions) *Node {
	return g.AddNode("Musgrave Texture", &TexMusgrave{Dimensions: dim},
		[]SocketSpec{
			vecIn("Vector", zvec), scalarIn("W", 0), scalarIn("Scale", 5),
			scalarIn("Detail", 2), scalarIn("Dimension", 2), scalarIn("Lacunarity", 2),
		},
		scalarOut("Fac"),
	)
}

func (g *Graph) NewTexWave(typ WaveType, dir WaveDirection, profile WaveProfile) *Node {
	return g.AddNode("Wave Texture", &TexWave{Type: typ, Direction: dir, Profile: profile},
		[]SocketSpec{
			vecIn("Vector", zvec), scalarIn("Scale", 5), scalarIn("Distortion", 0),
			scalarIn("Detail", 2), scalarIn("Detail Scale", 1), scalarIn("Detail Roughness", 0.5),
			scalarIn("Phase Offset", 0),
		},
		concat(colorOut("Color"), scalarOut("Fac")),
	)
}

func (g *Graph) NewTexGradient(typ GradientType) *Node {
	return g.AddNode("Gradient Texture", &TexGradient{Type: typ},
		[]SocketSpec{vecIn("Vector", zvec)},
		concat(colorOut("Color"), scalarOut("Fac")),
	)
}

func (g *Graph) NewGeometry() *Node {
	return g.AddNode("Geometry", &Geometry{}, nil,
		concat(
			vecOut("Position", "Normal", "Tangent", "True Normal", "Incoming", "Parametric"),
			scalarOut("Backfacing", "Pointiness", "Random Per Island"),
		),
	)
}

func (g *Graph) NewUVMap(uvmap string) *Node {
	return g.AddNode("UV Map", &UVMap{Map: uvmap}, nil, vecOut("UV"))
}

// NewGroupInput adds the Group Input node of a group body. Its outputs are the group's inputs.
func (g *Graph) NewGroupInput(sockets ...SocketSpec) *Node {
	return g.AddNode("Group Input", &GroupInput{}, nil, sockets)
}

// NewGroupOutput adds the Group Output node of a group body. Its inputs are the group's outputs.
func (g *Graph) NewGroupOutput(sockets ...SocketSpec) *Node {
	return g.AddNode("Group Output", &GroupOutput{}, sockets, nil)
}

// NewGroup adds an instance of the group body tree. The instance's inputs mirror
// the tree's Group Input outputs and its outputs mirror the tree's Group Output inputs.
// tree should be fully built before instancing.
func (g *Graph) NewGroup(tree *Graph) *Node {
	var inputs, outputs []SocketSpec
	if tree != nil {
		if gin := tree.GroupInput(); gin != nil {
			inputs = specsOf(gin.outputs)
		}
		if gout := tree.GroupOutput(); gout != nil {
			outputs = specsOf(gout.inputs)
		}
	}
	name := "Group"
	if tree != nil && tree.Name != "" {
		name = tree.Name
	}
	return g.AddNode(name, &Group{Tree: tree}, inputs, outputs)
}

func specsOf(sockets []*Socket) []SocketSpec {
	specs := make([]SocketSpec, len(sockets))
	for i, s := range sockets {
		specs[i] = SocketSpec{Name: s.name, Kind: s.kind, Default: s.def, NoDefault: !s.hasDef}
	}
	return specs
}

// NewReroute adds a pass-through node carrying values of the given kind.
func (g *Graph) NewReroute(kind ValueKind) *Node {
	return g.AddNode("Reroute", &Reroute{},
		[]SocketSpec{{Name: "Input", Kind: kind, NoDefault: true}},
		[]SocketSpec{{Name: "Output", Kind: kind, NoDefault: true}},
	)
}

// NewCustom adds a node of a kind the compiler has no formula for.
func (g *Graph) NewCustom(typ string, inputs, outputs []SocketSpec) *Node {
	return g.AddNode(typ, &Custom{Type: typ}, inputs, outputs)
}
