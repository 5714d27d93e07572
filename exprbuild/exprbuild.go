// Package exprbuild compiles gshade node graphs into shading expressions of the
// target renderer. A [Session] spans an export and owns the registered texture
// resources and the accumulated diagnostics. Each call to [Session.Compile]
// walks the graph backwards from a socket through its links, emitting the
// formula of every visited node and casting between socket kinds at each link.
//
// Compilation never fails: unsupported nodes, casts and missing resources are
// reported as diagnostics and degrade to a default expression.
package exprbuild

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-logr/logr"
	"github.com/soypat/gshade"
)

var (
	// ErrUnsupported is reported for node kinds, operations and outputs with no formula.
	ErrUnsupported = errors.New("unsupported")
	// ErrMissingResource is reported for texture nodes without an image and failed image materialization.
	ErrMissingResource = errors.New("missing resource")
	// ErrUnsupportedCast is reported for links between socket kinds with no conversion.
	ErrUnsupportedCast = errors.New("unsupported cast")
	// ErrInvalidLiteral is reported for sockets with no default and non-finite defaults.
	ErrInvalidLiteral = errors.New("invalid literal")
)

const (
	DefaultTextureDir   = "Textures"
	DefaultResourceRoot = "Meshes"
)

// AssetStore writes images referenced by texture nodes to a directory.
type AssetStore interface {
	// Materialize writes img into dir and returns the file name it was written under.
	// The file name is used even if err is non-nil.
	Materialize(img *gshade.Image, dir string) (fileName string, err error)
}

// Config configures a [Session]. The zero value is ready to use.
type Config struct {
	// OutputDir is the directory the exported scene is written to.
	OutputDir string
	// TextureDir is the directory relative to OutputDir images are materialized into.
	// Defaults to [DefaultTextureDir].
	TextureDir string
	// ResourceRoot is the prefix of texture file references in [Resource]. Defaults to [DefaultResourceRoot].
	ResourceRoot string
	// Store materializes images. If nil images are not written and are referenced by [gshade.Image.FileName].
	Store AssetStore
	// Logger receives diagnostics. Defaults to [logr.Discard].
	Logger logr.Logger
}

// Session holds the state shared by all compilations of an export.
// A Session is not safe for concurrent use.
type Session struct {
	cfg      Config
	log      logr.Logger
	textures []Resource
	// images maps an image file name to the name it was materialized under.
	images  map[string]string
	nodeTex map[*gshade.Node]string
	errs    []error
}

// NewSession returns a Session configured by cfg.
func NewSession(cfg Config) *Session {
	if cfg.TextureDir == "" {
		cfg.TextureDir = DefaultTextureDir
	}
	if cfg.ResourceRoot == "" {
		cfg.ResourceRoot = DefaultResourceRoot
	}
	if cfg.Store == nil {
		cfg.Store = nopStore{}
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Session{
		cfg:     cfg,
		log:     log,
		images:  make(map[string]string),
		nodeTex: make(map[*gshade.Node]string),
	}
}

// Compile returns the shading expression for the value flowing into sock.
// If sock is an output socket the expression is that of its node's output.
func (s *Session) Compile(sock *gshade.Socket) string {
	return s.NewContext().Compile(sock)
}

// NewContext returns a compile context with an empty group stack.
func (s *Session) NewContext() *Context {
	return &Context{sess: s}
}

// Textures returns the texture resources registered so far in registration order.
func (s *Session) Textures() []Resource {
	return append([]Resource(nil), s.textures...)
}

// Err returns all diagnostics accumulated by the session joined, or nil.
func (s *Session) Err() error {
	if len(s.errs) == 0 {
		return nil
	}
	return errors.Join(s.errs...)
}

// Diagnostics returns the accumulated diagnostics in the order they were reported.
func (s *Session) Diagnostics() []error { return append([]error(nil), s.errs...) }

// ClearErrors discards accumulated diagnostics.
func (s *Session) ClearErrors() { s.errs = s.errs[:0] }

func (s *Session) textureDir() string {
	return filepath.Join(s.cfg.OutputDir, s.cfg.TextureDir)
}

// Context is a single compile invocation. It tracks the stack of group
// instances being compiled, the innermost last.
type Context struct {
	sess  *Session
	stack []*gshade.Node
}

// Depth returns the number of group instances currently entered.
func (c *Context) Depth() int { return len(c.stack) }

// Compile returns the shading expression for the value flowing into sock.
func (c *Context) Compile(sock *gshade.Socket) string {
	return c.CompileExpr(sock).Text
}

// CompileExpr is like Compile but also returns the statically known value of the expression, if any.
func (c *Context) CompileExpr(sock *gshade.Socket) Expr {
	if sock == nil {
		c.diagf(nil, ErrUnsupported, "nil socket")
		return c.lit(nil, 0)
	}
	if sock.IsOutput() {
		e, ok := c.node(sock)
		if !ok {
			return c.defaultOf(sock)
		}
		return e
	}
	link := sock.Link()
	if link == nil {
		return c.defaultOf(sock)
	}
	e, ok := c.node(link.From)
	if !ok {
		return c.defaultOf(sock)
	}
	return c.cast(e, link.From, sock)
}

// node compiles the output out of its node. ok is false if the node
// kind has no formula and the consumer should fall back to its default.
func (c *Context) node(out *gshade.Socket) (e Expr, ok bool) {
	n := out.Node()
	switch kind := n.Kind.(type) {
	case *gshade.Value:
		return c.defaultOf(out), true
	case *gshade.RGB:
		return c.defaultOf(out), true
	case *gshade.Math:
		return c.math(n, kind), true
	case *gshade.Clamp:
		return c.clamp(n, kind), true
	case *gshade.MapRange:
		return c.mapRange(n, kind), true
	case *gshade.MixRGB:
		return c.mixRGB(n, kind), true
	case *gshade.Invert:
		return c.invert(n), true
	case *gshade.Gamma:
		return c.gamma(n), true
	case *gshade.BrightContrast:
		return c.brightContrast(n), true
	case *gshade.HueSaturation:
		return c.hueSaturation(n), true
	case *gshade.Blackbody:
		return text(call("blackbody", c.arg(n, 0))), true
	case *gshade.RGBToBW:
		return text(call("luminance", c.argNamed(n, "Color"))), true
	case *gshade.ColorRamp:
		return c.colorRamp(n, kind, out), true
	case *gshade.CombineHSV:
		return c.combineHSV(n), true
	case *gshade.CombineRGB:
		return c.combineRGB(n), true
	case *gshade.CombineXYZ:
		return c.combineXYZ(n), true
	case *gshade.SeparateHSV:
		return c.separateHSV(n, out), true
	case *gshade.SeparateRGB:
		return c.separateRGB(n, out), true
	case *gshade.SeparateXYZ:
		return c.separateXYZ(n, out), true
	case *gshade.FloatCurve:
		return c.floatCurve(n, kind), true
	case *gshade.RGBCurve:
		return c.rgbCurve(n, kind), true
	case *gshade.VectorCurve:
		return c.vectorCurve(n, kind), true
	case *gshade.Mapping:
		return c.mapping(n, kind), true
	case *gshade.VectorMath:
		return c.vectorMath(n, kind), true
	case *gshade.Normal:
		return c.normal(n, out), true
	case *gshade.NormalMap:
		return c.normalMap(n, kind), true
	case *gshade.TexImage:
		return c.texImage(n, kind, out), true
	case *gshade.TexEnvironment:
		return c.texEnvironment(n, kind), true
	case *gshade.TexChecker:
		return c.texChecker(n, out), true
	case *gshade.TexCoord:
		return c.texCoord(n, out), true
	case *gshade.TexNoise:
		return c.texNoise(n, kind, out), true
	case *gshade.TexWhiteNoise:
		return c.texWhiteNoise(n, kind, out), true
	case *gshade.TexVoronoi:
		return c.texVoronoi(n, kind, out), true
	case *gshade.TexMusgrave:
		return c.texMusgrave(n, kind), true
	case *gshade.TexWave:
		return c.texWave(n, kind, out), true
	case *gshade.TexGradient:
		return c.texGradient(n, kind, out), true
	case *gshade.Geometry:
		return c.geometry(n, out), true
	case *gshade.UVMap:
		return c.uvMap(n, kind), true
	case *gshade.Group:
		return c.group(n, kind, out)
	case *gshade.GroupInput:
		return c.groupInput(n, out)
	case *gshade.Reroute:
		if len(n.Inputs()) == 0 {
			c.diagf(n, ErrUnsupported, "reroute without input")
			return Expr{}, false
		}
		return c.CompileExpr(n.In(0)), true
	case *gshade.Custom:
		c.diagf(n, ErrUnsupported, "node type %q", kind.Type)
	default:
		c.diagf(n, ErrUnsupported, "node kind %T", kind)
	}
	return Expr{}, false
}

// group compiles the output of a group instance by entering its tree and
// compiling the Group Output input named like out.
func (c *Context) group(n *gshade.Node, g *gshade.Group, out *gshade.Socket) (Expr, bool) {
	tree := g.Tree
	if tree == nil {
		c.diagf(n, ErrUnsupported, "group has no node tree")
		return Expr{}, false
	}
	for _, entered := range c.stack {
		if entered.Kind.(*gshade.Group).Tree == tree {
			c.diagf(n, ErrUnsupported, "group %q instantiates itself", tree.Name)
			return Expr{}, false
		}
	}
	gout := tree.GroupOutput()
	if gout == nil {
		c.diagf(n, ErrUnsupported, "group %q has no Group Output", tree.Name)
		return Expr{}, false
	}
	in := gout.Input(out.Name())
	if in == nil {
		c.diagf(n, ErrUnsupported, "group %q has no output %q", tree.Name, out.Name())
		return Expr{}, false
	}
	c.stack = append(c.stack, n)
	e := c.CompileExpr(in)
	c.stack = c.stack[:len(c.stack)-1]
	return e, true
}

// groupInput resolves a Group Input output against the innermost group instance.
// The instance's input is compiled in the scope the instance itself lives in.
func (c *Context) groupInput(n *gshade.Node, out *gshade.Socket) (Expr, bool) {
	if len(c.stack) == 0 {
		c.diagf(n, ErrUnsupported, "group input %q outside of a group", out.Name())
		return Expr{}, false
	}
	top := c.stack[len(c.stack)-1]
	in := top.Input(out.Name())
	if in == nil {
		c.diagf(n, ErrUnsupported, "group %q has no input %q", top.Name, out.Name())
		return Expr{}, false
	}
	c.stack = c.stack[:len(c.stack)-1]
	e := c.CompileExpr(in)
	c.stack = append(c.stack, top)
	return e, true
}

// diagf reports a diagnostic wrapping sentinel for node n, which may be nil.
func (c *Context) diagf(n *gshade.Node, sentinel error, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	var err error
	kv := []any{"depth", len(c.stack)}
	if n != nil {
		err = fmt.Errorf("node %q: %s: %w", n.Name, msg, sentinel)
		kv = append(kv, "node", n.Name)
	} else {
		err = fmt.Errorf("%s: %w", msg, sentinel)
	}
	c.sess.log.Info("degraded shading expression", append(kv, "reason", err.Error())...)
	c.sess.errs = append(c.sess.errs, err)
}

// arg compiles the i'th input of n.
func (c *Context) arg(n *gshade.Node, i int) string { return c.argExpr(n, i).Text }

func (c *Context) argExpr(n *gshade.Node, i int) Expr {
	if i >= len(n.Inputs()) {
		c.diagf(n, ErrUnsupported, "missing input %d", i)
		return c.lit(n, 0)
	}
	return c.CompileExpr(n.In(i))
}

// argNamed compiles the first input of n called name.
func (c *Context) argNamed(n *gshade.Node, name string) string { return c.argNamedExpr(n, name).Text }

func (c *Context) argNamedExpr(n *gshade.Node, name string) Expr {
	in := n.Input(name)
	if in == nil {
		c.diagf(n, ErrUnsupported, "missing input %q", name)
		return c.lit(n, 0)
	}
	return c.CompileExpr(in)
}

// linked reports whether n has a linked input called name.
func linked(n *gshade.Node, name string) bool {
	in := n.Input(name)
	return in != nil && in.Link() != nil
}

// call formats a function call expression.
func call(fn string, args ...string) string {
	b := make([]byte, 0, len(fn)+2+8*len(args))
	b = append(b, fn...)
	b = append(b, '(')
	for i, arg := range args {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, arg...)
	}
	b = append(b, ')')
	return string(b)
}

type nopStore struct{}

func (nopStore) Materialize(img *gshade.Image, dir string) (string, error) {
	return img.FileName(), nil
}
