package gshade

import "github.com/soypat/geometry/ms2"

// NodeKind identifies the formula a node compiles to and carries its parameters.
// The set of kinds is closed; nodes the compiler does not know are [Custom].
type NodeKind interface {
	isNodeKind()
}

// Operation names a scalar or vector math operation.
type Operation string

const (
	OpAdd          Operation = "ADD"
	OpSubtract     Operation = "SUBTRACT"
	OpMultiply     Operation = "MULTIPLY"
	OpDivide       Operation = "DIVIDE"
	OpMultiplyAdd  Operation = "MULTIPLY_ADD"
	OpPower        Operation = "POWER"
	OpLogarithm    Operation = "LOGARITHM"
	OpSqrt         Operation = "SQRT"
	OpInverseSqrt  Operation = "INVERSE_SQRT"
	OpAbsolute     Operation = "ABSOLUTE"
	OpExponent     Operation = "EXPONENT"
	OpMinimum      Operation = "MINIMUM"
	OpMaximum      Operation = "MAXIMUM"
	OpLessThan     Operation = "LESS_THAN"
	OpGreaterThan  Operation = "GREATER_THAN"
	OpSign         Operation = "SIGN"
	OpCompare      Operation = "COMPARE"
	OpRound        Operation = "ROUND"
	OpFloor        Operation = "FLOOR"
	OpCeil         Operation = "CEIL"
	OpTrunc        Operation = "TRUNC"
	OpFraction     Operation = "FRACTION"
	OpModulo       Operation = "MODULO"
	OpSmoothMin    Operation = "SMOOTH_MIN"
	OpSmoothMax    Operation = "SMOOTH_MAX"
	OpWrap         Operation = "WRAP"
	OpSnap         Operation = "SNAP"
	OpPingPong     Operation = "PINGPONG"
	OpSine         Operation = "SINE"
	OpCosine       Operation = "COSINE"
	OpTangent      Operation = "TANGENT"
	OpArcsine      Operation = "ARCSINE"
	OpArccosine    Operation = "ARCCOSINE"
	OpArctangent   Operation = "ARCTANGENT"
	OpSinh         Operation = "SINH"
	OpCosh         Operation = "COSH"
	OpTanh         Operation = "TANH"
	OpArctan2      Operation = "ARCTAN2"
	OpRadians      Operation = "RADIANS"
	OpDegrees      Operation = "DEGREES"
	OpScale        Operation = "SCALE"
	OpCrossProduct Operation = "CROSS_PRODUCT"
	OpProject      Operation = "PROJECT"
	OpReflect      Operation = "REFLECT"
	OpRefract      Operation = "REFRACT"
	OpFaceforward  Operation = "FACEFORWARD"
	OpDotProduct   Operation = "DOT_PRODUCT"
	OpDistance     Operation = "DISTANCE"
	OpLength       Operation = "LENGTH"
	OpNormalize    Operation = "NORMALIZE"
)

// BlendType is the blend mode of a [MixRGB] node.
type BlendType string

const (
	BlendMix         BlendType = "MIX"
	BlendBurn        BlendType = "BURN"
	BlendDarken      BlendType = "DARKEN"
	BlendLighten     BlendType = "LIGHTEN"
	BlendScreen      BlendType = "SCREEN"
	BlendDodge       BlendType = "DODGE"
	BlendOverlay     BlendType = "OVERLAY"
	BlendSoftLight   BlendType = "SOFT_LIGHT"
	BlendLinearLight BlendType = "LINEAR_LIGHT"
	BlendHue         BlendType = "HUE"
	BlendSaturation  BlendType = "SATURATION"
	BlendValue       BlendType = "VALUE"
	BlendColor       BlendType = "COLOR"
	BlendDifference  BlendType = "DIFFERENCE"
	BlendAdd         BlendType = "ADD"
	BlendSubtract    BlendType = "SUBTRACT"
	BlendMultiply    BlendType = "MULTIPLY"
	BlendDivide      BlendType = "DIVIDE"
)

// Interpolation selects how lookups and map ranges interpolate.
type Interpolation string

const (
	InterpLinear       Interpolation = "LINEAR"
	InterpConstant     Interpolation = "CONSTANT"
	InterpEase         Interpolation = "EASE"
	InterpBSpline      Interpolation = "B_SPLINE"
	InterpCardinal     Interpolation = "CARDINAL"
	InterpSmoothstep   Interpolation = "SMOOTHSTEP"
	InterpSmootherstep Interpolation = "SMOOTHERSTEP"
)

// ClampType is the clamping mode of a [Clamp] node.
type ClampType string

const (
	ClampMinMax ClampType = "MINMAX"
	ClampRange  ClampType = "RANGE"
)

// MappingType is the vector type of a [Mapping] node.
type MappingType string

const (
	MappingPoint   MappingType = "POINT"
	MappingTexture MappingType = "TEXTURE"
	MappingVector  MappingType = "VECTOR"
	MappingNormal  MappingType = "NORMAL"
)

// Space is the coordinate space of a [NormalMap] node.
type Space string

const (
	SpaceTangent Space = "TANGENT"
	SpaceObject  Space = "OBJECT"
	SpaceWorld   Space = "WORLD"
)

// Dimensions is the dimensionality of procedural noise textures.
type Dimensions string

const (
	Dim1D Dimensions = "1D"
	Dim2D Dimensions = "2D"
	Dim3D Dimensions = "3D"
	Dim4D Dimensions = "4D"
)

// Extension is the wrapping behaviour of an image texture outside [0,1].
type Extension string

const (
	ExtensionRepeat Extension = "REPEAT"
	ExtensionExtend Extension = "EXTEND"
	ExtensionClip   Extension = "CLIP"
	ExtensionMirror Extension = "MIRROR"
)

// TexInterpolation is the sampling filter of an image texture.
type TexInterpolation string

const (
	TexLinear  TexInterpolation = "Linear"
	TexClosest TexInterpolation = "Closest"
	TexCubic   TexInterpolation = "Cubic"
	TexSmart   TexInterpolation = "Smart"
)

type (
	WaveType      string
	WaveDirection string
	WaveProfile   string
)

const (
	WaveBands WaveType = "BANDS"
	WaveRings WaveType = "RINGS"

	WaveX        WaveDirection = "X"
	WaveY        WaveDirection = "Y"
	WaveZ        WaveDirection = "Z"
	WaveDiagonal WaveDirection = "DIAGONAL"

	WaveSin WaveProfile = "SIN"
	WaveSaw WaveProfile = "SAW"
	WaveTri WaveProfile = "TRI"
)

// GradientType is the shape of a [TexGradient].
type GradientType string

const (
	GradientLinear          GradientType = "LINEAR"
	GradientQuadratic       GradientType = "QUADRATIC"
	GradientEasing          GradientType = "EASING"
	GradientDiagonal        GradientType = "DIAGONAL"
	GradientSpherical       GradientType = "SPHERICAL"
	GradientQuadraticSphere GradientType = "QUADRATIC_SPHERE"
	GradientRadial          GradientType = "RADIAL"
)

// RampElement is a color ramp control point.
type RampElement struct {
	Position float32
	Color    Color
}

// Curve is a list of control points ordered by X. X is the domain position, Y the mapped value.
type Curve struct {
	Points []ms2.Vec
}

// CurveMapping holds the curves of a curve node.
// Float curves use one curve, vector curves X,Y,Z and RGB curves R,G,B and a combined curve last.
type CurveMapping struct {
	Curves      []Curve
	Extrapolate bool
}

// IdentityCurve returns the default diagonal curve from (0,0) to (1,1).
func IdentityCurve() Curve {
	return Curve{Points: []ms2.Vec{{X: 0, Y: 0}, {X: 1, Y: 1}}}
}

type (
	// Value outputs the default of its output socket.
	Value struct{}
	// RGB outputs the default of its color output socket.
	RGB  struct{}
	Math struct {
		Operation Operation
		UseClamp  bool
	}
	Clamp    struct{ Type ClampType }
	MapRange struct {
		Interpolation Interpolation
		UseClamp      bool
	}
	MixRGB struct {
		Blend    BlendType
		UseClamp bool
	}
	Invert         struct{}
	Gamma          struct{}
	BrightContrast struct{}
	HueSaturation  struct{}
	Blackbody      struct{}
	RGBToBW        struct{}
	ColorRamp      struct {
		Interpolation Interpolation
		Elements      []RampElement
	}
	CombineHSV  struct{}
	CombineRGB  struct{}
	CombineXYZ  struct{}
	SeparateHSV struct{}
	SeparateRGB struct{}
	SeparateXYZ struct{}
	FloatCurve  struct{ Mapping CurveMapping }
	RGBCurve    struct{ Mapping CurveMapping }
	VectorCurve struct{ Mapping CurveMapping }
	Mapping     struct{ Type MappingType }
	VectorMath  struct{ Operation Operation }
	// Normal outputs the direction stored in its Normal output default and its dot product with the input.
	Normal    struct{}
	NormalMap struct{ Space Space }
	TexImage  struct {
		Image         *Image
		Extension     Extension
		Interpolation TexInterpolation
	}
	TexEnvironment struct {
		Image         *Image
		Interpolation TexInterpolation
	}
	TexChecker    struct{}
	TexCoord      struct{}
	TexNoise      struct{ Dimensions Dimensions }
	TexWhiteNoise struct{ Dimensions Dimensions }
	TexVoronoi    struct{ Dimensions Dimensions }
	TexMusgrave   struct{ Dimensions Dimensions }
	TexWave       struct {
		Type      WaveType
		Direction WaveDirection
		Profile   WaveProfile
	}
	TexGradient struct{ Type GradientType }
	// Geometry provides surface attributes.
	Geometry struct{}
	UVMap    struct{ Map string }
	// Group instantiates the node tree Tree. Its inputs feed the tree's
	// Group Input node and its outputs read the tree's Group Output node.
	Group       struct{ Tree *Graph }
	GroupInput  struct{}
	GroupOutput struct{}
	Reroute     struct{}
	// Custom is a node kind the compiler has no formula for.
	Custom struct{ Type string }
)

func (*Value) isNodeKind() {}
func (*RGB) isNodeKind() {}
func (*Math) isNodeKind() {}
func (*Clamp) isNodeKind() {}
func (*MapRange) isNodeKind() {}
func (*MixRGB) isNodeKind() {}
func (*Invert) isNodeKind() {}
func (*Gamma) isNodeKind() {}
func (*BrightContrast) isNodeKind() {}
func (*HueSaturation) isNodeKind() {}
func (*Blackbody) isNodeKind() {}
func (*RGBToBW) isNodeKind() {}
func (*ColorRamp) isNodeKind() {}
func (*CombineHSV) isNodeKind() {}
func (*CombineRGB) isNodeKind() {}
func (*CombineXYZ) isNodeKind() {}
func (*SeparateHSV) isNodeKind() {}
func (*SeparateRGB) isNodeKind() {}
func (*SeparateXYZ) isNodeKind() {}
func (*FloatCurve) isNodeKind() {}
func (*RGBCurve) isNodeKind() {}
func (*VectorCurve) isNodeKind() {}
func (*Mapping) isNodeKind() {}
func (*VectorMath) isNodeKind() {}
func (*Normal) isNodeKind() {}
func (*NormalMap) isNodeKind() {}
func (*TexImage) isNodeKind() {}
func (*TexEnvironment) isNodeKind() {}
func (*TexChecker) isNodeKind() {}
func (*TexCoord) isNodeKind() {}
func (*TexNoise) isNodeKind() {}
func (*TexWhiteNoise) isNodeKind() {}
func (*TexVoronoi) isNodeKind() {}
func (*TexMusgrave) isNodeKind() {}
func (*TexWave) isNodeKind() {}
func (*TexGradient) isNodeKind() {}
func (*Geometry) isNodeKind() {}
func (*UVMap) isNodeKind() {}
func (*Group) isNodeKind() {}
func (*GroupInput) isNodeKind() {}
func (*GroupOutput) isNodeKind() {}
func (*Reroute) isNodeKind() {}
func (*Custom) isNodeKind() {}
