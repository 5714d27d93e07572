// Package gshade models shader node graphs: nodes with typed input and output
// sockets, links between them, per-socket default literals and nested groups.
// Graphs are compiled into renderer shading expressions by package exprbuild.
package gshade

import (
	"errors"
	"fmt"
	"image"
	"path"
	"strconv"
	"strings"

	"github.com/soypat/geometry/ms3"
)

// ValueKind is the value type carried by a socket.
type ValueKind uint8

const (
	KindUndefined ValueKind = iota
	KindScalar
	KindInteger
	KindVector
	KindColor
)

func (k ValueKind) String() string {
	switch k {
	case KindScalar:
		return "VALUE"
	case KindInteger:
		return "INT"
	case KindVector:
		return "VECTOR"
	case KindColor:
		return "RGBA"
	}
	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// IsNumber reports whether k is a plain number kind, scalar or integer.
func (k ValueKind) IsNumber() bool { return k == KindScalar || k == KindInteger }

// ParseValueKind parses the names returned by [ValueKind.String].
func ParseValueKind(s string) (ValueKind, error) {
	switch strings.ToUpper(s) {
	case "VALUE", "FLOAT", "SCALAR":
		return KindScalar, nil
	case "INT", "INTEGER":
		return KindInteger, nil
	case "VECTOR":
		return KindVector, nil
	case "RGBA", "COLOR":
		return KindColor, nil
	}
	return KindUndefined, fmt.Errorf("unknown socket kind %q", s)
}

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

// Literal is a static socket value. How its components are read depends
// on the kind of the socket it is stored in.
type Literal struct {
	v [4]float32
}

func Float(f float32) Literal { return Literal{v: [4]float32{f}} }
func Int(i int) Literal { return Literal{v: [4]float32{float32(i)}} }
func Vec(v ms3.Vec) Literal { return Literal{v: [4]float32{v.X, v.Y, v.Z}} }
func RGBA(c Color) Literal { return Literal{v: [4]float32{c.R, c.G, c.B, c.A}} }
func Gray(v float32) Literal { return RGBA(Color{R: v, G: v, B: v, A: 1}) }
func (l Literal) Float() float32 { return l.v[0] }
func (l Literal) Vec() ms3.Vec { return ms3.Vec{X: l.v[0], Y: l.v[1], Z: l.v[2]} }
func (l Literal) Color() Color { return Color{R: l.v[0], G: l.v[1], B: l.v[2], A: l.v[3]} }
func (l Literal) Array() [4]float32 { return l.v }

// Socket is a typed named port on a node. Input sockets accept at most one link.
type Socket struct {
	name   string
	kind   ValueKind
	def    Literal
	hasDef bool
	output bool
	node   *Node
	link   *Link   // Incoming, inputs only.
	links  []*Link // Outgoing, outputs only.
}

func (s *Socket) Name() string { return s.name }
func (s *Socket) Kind() ValueKind { return s.kind }
func (s *Socket) Node() *Node { return s.node }
func (s *Socket) IsOutput() bool { return s.output }
func (s *Socket) IsLinked() bool { return s.link != nil || len(s.links) > 0 }
func (s *Socket) Link() *Link { return s.link }
func (s *Socket) Links() []*Link { return s.links }
func (s *Socket) HasDefault() bool { return s.hasDef }

// Default returns the socket's static default and whether it has one.
func (s *Socket) Default() (Literal, bool) { return s.def, s.hasDef }

// SetDefault sets the socket's default literal and returns the socket.
func (s *Socket) SetDefault(l Literal) *Socket {
	s.def = l
	s.hasDef = true
	return s
}

// ClearDefault removes the socket's default literal.
func (s *Socket) ClearDefault() *Socket {
	s.def = Literal{}
	s.hasDef = false
	return s
}

func (s *Socket) String() string {
	dir := "input"
	if s.output {
		dir = "output"
	}
	if s.node == nil {
		return dir + " " + strconv.Quote(s.name)
	}
	return s.node.Name + " " + dir + " " + strconv.Quote(s.name)
}

// Link is a directed edge from an output socket to an input socket.
type Link struct {
	From *Socket
	To   *Socket
}

// SocketSpec describes a socket to be created by [Graph.AddNode].
type SocketSpec struct {
	Name    string
	Kind    ValueKind
	Default Literal
	// NoDefault creates the socket without a default literal.
	NoDefault bool
}

// Node is a graph node. Its Kind determines the formula it compiles to.
type Node struct {
	Name    string
	Kind    NodeKind
	inputs  []*Socket
	outputs []*Socket
	graph   *Graph
}

func (n *Node) Inputs() []*Socket { return n.inputs }
func (n *Node) Outputs() []*Socket { return n.outputs }
func (n *Node) Graph() *Graph { return n.graph }

// Input returns the first input socket with the given name or nil.
func (n *Node) Input(name string) *Socket { return findSocket(n.inputs, name) }

// Output returns the first output socket with the given name or nil.
func (n *Node) Output(name string) *Socket { return findSocket(n.outputs, name) }

// In returns the i'th input socket. Panics if out of range.
func (n *Node) In(i int) *Socket { return n.inputs[i] }

// Out returns the i'th output socket. Panics if out of range.
func (n *Node) Out(i int) *Socket { return n.outputs[i] }

func findSocket(sockets []*Socket, name string) *Socket {
	for _, s := range sockets {
		if s.name == name {
			return s
		}
	}
	return nil
}

// Graph holds nodes and the links between them. A Graph is also the body of a group.
// Misuse such as linking two inputs panics unless NoLinkPanic is set, in which case
// errors are accumulated and returned by Err.
type Graph struct {
	Name        string
	NoLinkPanic bool
	nodes       []*Node
	links       []*Link
	names       map[string]int
	accumErrs   []error
}

// NewGraph returns an empty graph with the given name.
func NewGraph(name string) *Graph {
	return &Graph{Name: name}
}

func (g *Graph) Err() error {
	if len(g.accumErrs) == 0 {
		return nil
	}
	return errors.Join(g.accumErrs...)
}

func (g *Graph) ClearErrors() { g.accumErrs = g.accumErrs[:0] }

func (g *Graph) Nodes() []*Node { return g.nodes }
func (g *Graph) Links() []*Link { return g.links }

// Node returns the node with the given name or nil.
func (g *Graph) Node(name string) *Node {
	for _, n := range g.nodes {
		if n.Name == name {
			return n
		}
	}
	return nil
}

// GroupOutput returns the first Group Output node of the graph or nil.
func (g *Graph) GroupOutput() *Node {
	for _, n := range g.nodes {
		if _, ok := n.Kind.(*GroupOutput); ok {
			return n
		}
	}
	return nil
}

// GroupInput returns the first Group Input node of the graph or nil.
func (g *Graph) GroupInput() *Node {
	for _, n := range g.nodes {
		if _, ok := n.Kind.(*GroupInput); ok {
			return n
		}
	}
	return nil
}

func (g *Graph) linkErrorf(msg string, args ...any) {
	if !g.NoLinkPanic {
		panic(fmt.Sprintf(msg, args...))
	}
	g.accumErrs = append(g.accumErrs, fmt.Errorf(msg, args...))
}

// AddNode adds a node of the given kind with the argument socket layout.
// Node names are made unique within the graph by appending a numeric suffix.
func (g *Graph) AddNode(name string, kind NodeKind, inputs, outputs []SocketSpec) *Node {
	if kind == nil {
		panic("nil node kind for " + name)
	}
	if g.names == nil {
		g.names = make(map[string]int)
	}
	if cnt := g.names[name]; cnt > 0 {
		g.names[name] = cnt + 1
		name = fmt.Sprintf("%s.%03d", name, cnt)
	} else {
		g.names[name] = 1
	}
	n := &Node{Name: name, Kind: kind, graph: g}
	n.inputs = makeSockets(n, inputs, false)
	n.outputs = makeSockets(n, outputs, true)
	g.nodes = append(g.nodes, n)
	return n
}

func makeSockets(n *Node, specs []SocketSpec, output bool) []*Socket {
	sockets := make([]*Socket, len(specs))
	for i, spec := range specs {
		sockets[i] = &Socket{
			name:   spec.Name,
			kind:   spec.Kind,
			def:    spec.Default,
			hasDef: !spec.NoDefault,
			output: output,
			node:   n,
		}
	}
	return sockets
}

// Link connects an output socket of a node in g to an input socket of a node in g.
// Returns nil if the link is invalid.
func (g *Graph) Link(from, to *Socket) *Link {
	switch {
	case from == nil || to == nil:
		g.linkErrorf("nil socket in link")
		return nil
	case !from.output:
		g.linkErrorf("link source %s is not an output", from)
		return nil
	case to.output:
		g.linkErrorf("link destination %s is not an input", to)
		return nil
	case from.node.graph != g || to.node.graph != g:
		g.linkErrorf("link %s -> %s crosses graphs", from, to)
		return nil
	case to.link != nil:
		g.linkErrorf("input %s already linked from %s", to, to.link.From)
		return nil
	case reaches(to.node, from.node):
		g.linkErrorf("link %s -> %s creates a cycle", from, to)
		return nil
	case from.kind == KindUndefined || to.kind == KindUndefined:
		g.linkErrorf("link %s -> %s has undefined socket kind", from, to)
		return nil
	}
	l := &Link{From: from, To: to}
	from.links = append(from.links, l)
	to.link = l
	g.links = append(g.links, l)
	return l
}

// reaches reports whether dst is src or downstream of it.
func reaches(src, dst *Node) bool {
	seen := make(map[*Node]bool)
	stack := []*Node{src}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == dst {
			return true
		} else if seen[n] {
			continue
		}
		seen[n] = true
		for _, out := range n.outputs {
			for _, l := range out.links {
				stack = append(stack, l.To.node)
			}
		}
	}
	return false
}

// Image is an externally backed image referenced by texture nodes.
type Image struct {
	// Name is the host's name for the image.
	Name string
	// FilePath is the image's source path. A leading "//" marks a path relative to the host document.
	FilePath string
	// Data holds decoded pixels. If nil Pixels is used.
	Data image.Image
	// Pixels are float RGBA pixels in rows of Width, first row at the top.
	Pixels        []float32
	Width, Height int
}

// FileName returns the base file name the image is exported under.
// Images with no file path are named after the image with a png extension.
func (img *Image) FileName() string {
	p := strings.ReplaceAll(img.FilePath, "//", "")
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" {
		return img.Name + ".png"
	}
	return path.Base(p)
}
