package gshadeaux

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/gshade"
	"sigs.k8s.io/yaml"
)

// Document is a set of materials and the group trees and images they reference,
// decoded from YAML by [ParseDocument].
type Document struct {
	Images    []*gshade.Image
	Groups    []*gshade.Graph
	Materials []*Material
}

// Material is a material node graph and the output sockets its shading slots read from.
type Material struct {
	Name  string
	Graph *gshade.Graph
	Slots map[string]*gshade.Socket
}

// SlotNames returns the material's slot names in sorted order.
func (m *Material) SlotNames() []string {
	names := make([]string, 0, len(m.Slots))
	for name := range m.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type documentYAML struct {
	Images    []imageYAML `json:"images,omitempty"`
	Groups    []treeYAML  `json:"groups,omitempty"`
	Materials []treeYAML  `json:"materials"`
}

type imageYAML struct {
	Name   string    `json:"name"`
	Path   string    `json:"path,omitempty"`
	Width  int       `json:"width,omitempty"`
	Height int       `json:"height,omitempty"`
	Pixels []float32 `json:"pixels,omitempty"`
}

type treeYAML struct {
	Name  string     `json:"name"`
	Nodes []nodeYAML `json:"nodes"`
	Links []linkYAML `json:"links,omitempty"`
	// Slots maps a shading slot to a "node.output" reference. Materials only.
	Slots map[string]string `json:"slots,omitempty"`
}

type linkYAML struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type nodeYAML struct {
	Name string `json:"name"`
	Type string `json:"type"`

	Operation     string `json:"operation,omitempty"`
	Blend         string `json:"blend,omitempty"`
	UseClamp      bool   `json:"use_clamp,omitempty"`
	ClampType     string `json:"clamp_type,omitempty"`
	Interpolation string `json:"interpolation,omitempty"`
	Extension     string `json:"extension,omitempty"`
	Space         string `json:"space,omitempty"`
	Dimensions    string `json:"dimensions,omitempty"`
	WaveType      string `json:"wave_type,omitempty"`
	WaveDirection string `json:"wave_direction,omitempty"`
	WaveProfile   string `json:"wave_profile,omitempty"`
	Gradient      string `json:"gradient,omitempty"`
	VectorType    string `json:"vector_type,omitempty"`
	UVMap         string `json:"uv_map,omitempty"`
	Image         string `json:"image,omitempty"`
	Group         string `json:"group,omitempty"`
	Kind          string `json:"kind,omitempty"`

	// Value is the stored output of Value, RGB and Normal nodes.
	Value       []float32            `json:"value,omitempty"`
	Ramp        []rampYAML           `json:"ramp,omitempty"`
	Curves      [][][2]float32       `json:"curves,omitempty"`
	Extrapolate bool                 `json:"extrapolate,omitempty"`
	Inputs      []socketYAML         `json:"inputs,omitempty"`
	Outputs     []socketYAML         `json:"outputs,omitempty"`
	Defaults    map[string][]float32 `json:"defaults,omitempty"`
}

type rampYAML struct {
	Position float32   `json:"position"`
	Color    []float32 `json:"color"`
}

type socketYAML struct {
	Name    string    `json:"name"`
	Kind    string    `json:"kind"`
	Default []float32 `json:"default,omitempty"`
}

// LoadDocument reads and parses the YAML document at path.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ParseDocument decodes a YAML document and builds its node graphs.
// Unknown fields, dangling references and invalid links are errors.
func ParseDocument(data []byte) (*Document, error) {
	var raw documentYAML
	if err := yaml.UnmarshalStrict(data, &raw); err != nil {
		return nil, err
	}
	b := docBuilder{
		raw:      &raw,
		images:   make(map[string]*gshade.Image),
		groups:   make(map[string]*gshade.Graph),
		building: make(map[string]bool),
	}
	doc := new(Document)
	for _, im := range raw.Images {
		if im.Name == "" {
			return nil, errors.New("image without name")
		} else if b.images[im.Name] != nil {
			return nil, fmt.Errorf("duplicate image %q", im.Name)
		}
		img := &gshade.Image{Name: im.Name, FilePath: im.Path, Pixels: im.Pixels, Width: im.Width, Height: im.Height}
		b.images[im.Name] = img
		doc.Images = append(doc.Images, img)
	}
	for i := range raw.Groups {
		g, err := b.group(raw.Groups[i].Name)
		if err != nil {
			return nil, err
		}
		doc.Groups = append(doc.Groups, g)
	}
	for i := range raw.Materials {
		m, err := b.material(&raw.Materials[i])
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", raw.Materials[i].Name, err)
		}
		doc.Materials = append(doc.Materials, m)
	}
	return doc, nil
}

type docBuilder struct {
	raw      *documentYAML
	images   map[string]*gshade.Image
	groups   map[string]*gshade.Graph
	building map[string]bool
}

func (b *docBuilder) material(t *treeYAML) (*Material, error) {
	if t.Name == "" {
		return nil, errors.New("material without name")
	} else if len(t.Slots) == 0 {
		return nil, errors.New("material has no slots")
	}
	g, nodes, err := b.tree(t)
	if err != nil {
		return nil, err
	}
	m := &Material{Name: t.Name, Graph: g, Slots: make(map[string]*gshade.Socket, len(t.Slots))}
	for slot, ref := range t.Slots {
		sock, err := resolve(nodes, ref, true)
		if err != nil {
			return nil, fmt.Errorf("slot %q: %w", slot, err)
		}
		m.Slots[slot] = sock
	}
	return m, nil
}

// group builds the named group tree once, building the groups it instances first.
func (b *docBuilder) group(name string) (*gshade.Graph, error) {
	if g := b.groups[name]; g != nil {
		return g, nil
	} else if b.building[name] {
		return nil, fmt.Errorf("group %q instances itself", name)
	}
	var t *treeYAML
	for i := range b.raw.Groups {
		if b.raw.Groups[i].Name == name {
			t = &b.raw.Groups[i]
			break
		}
	}
	if t == nil {
		return nil, fmt.Errorf("undefined group %q", name)
	} else if len(t.Slots) != 0 {
		return nil, fmt.Errorf("group %q: slots are only valid in materials", name)
	}
	b.building[name] = true
	defer delete(b.building, name)
	g, _, err := b.tree(t)
	if err != nil {
		return nil, fmt.Errorf("group %q: %w", name, err)
	}
	b.groups[name] = g
	return g, nil
}

func (b *docBuilder) tree(t *treeYAML) (*gshade.Graph, map[string]*gshade.Node, error) {
	g := gshade.NewGraph(t.Name)
	g.NoLinkPanic = true
	nodes := make(map[string]*gshade.Node, len(t.Nodes))
	for i := range t.Nodes {
		nd := &t.Nodes[i]
		if nd.Name == "" {
			return nil, nil, fmt.Errorf("node %d has no name", i)
		} else if nodes[nd.Name] != nil {
			return nil, nil, fmt.Errorf("duplicate node %q", nd.Name)
		}
		n, err := b.node(g, nd)
		if err != nil {
			return nil, nil, fmt.Errorf("node %q: %w", nd.Name, err)
		}
		n.Name = nd.Name
		nodes[nd.Name] = n
		for ref, v := range nd.Defaults {
			sock := socketRef(n.Inputs(), ref)
			if sock == nil {
				return nil, nil, fmt.Errorf("node %q: default for undefined input %q", nd.Name, ref)
			}
			lit, err := literal(sock.Kind(), v)
			if err != nil {
				return nil, nil, fmt.Errorf("node %q input %q: %w", nd.Name, ref, err)
			}
			sock.SetDefault(lit)
		}
	}
	for _, l := range t.Links {
		from, err := resolve(nodes, l.From, true)
		if err != nil {
			return nil, nil, fmt.Errorf("link from: %w", err)
		}
		to, err := resolve(nodes, l.To, false)
		if err != nil {
			return nil, nil, fmt.Errorf("link to: %w", err)
		}
		g.Link(from, to)
	}
	if err := g.Err(); err != nil {
		return nil, nil, err
	}
	return g, nodes, nil
}

// resolve finds the socket referenced by "node.socket". The socket part may be a socket index.
func resolve(nodes map[string]*gshade.Node, ref string, output bool) (*gshade.Socket, error) {
	i := strings.LastIndexByte(ref, '.')
	if i <= 0 || i == len(ref)-1 {
		return nil, fmt.Errorf("socket reference %q not of form node.socket", ref)
	}
	n := nodes[ref[:i]]
	if n == nil {
		return nil, fmt.Errorf("undefined node %q", ref[:i])
	}
	sockets := n.Inputs()
	if output {
		sockets = n.Outputs()
	}
	sock := socketRef(sockets, ref[i+1:])
	if sock == nil {
		return nil, fmt.Errorf("node %q has no socket %q", n.Name, ref[i+1:])
	}
	return sock, nil
}

func socketRef(sockets []*gshade.Socket, ref string) *gshade.Socket {
	for _, s := range sockets {
		if s.Name() == ref {
			return s
		}
	}
	if i, err := strconv.Atoi(ref); err == nil && i >= 0 && i < len(sockets) {
		return sockets[i]
	}
	return nil
}

func (b *docBuilder) node(g *gshade.Graph, nd *nodeYAML) (*gshade.Node, error) {
	typ := strings.ToLower(strings.NewReplacer(" ", "_", "-", "_").Replace(nd.Type))
	switch typ {
	case "value":
		if nd.Value == nil {
			return g.NewValue(0), nil
		}
		v, err := fixed(nd.Value, 1)
		return g.NewValue(v[0]), err
	case "rgb":
		if nd.Value == nil {
			return g.NewRGB(gshade.Color{A: 1}), nil
		}
		c, err := colorOf(nd.Value)
		return g.NewRGB(c), err
	case "math":
		return g.NewMath(gshade.Operation(or(nd.Operation, "ADD")), nd.UseClamp), nil
	case "clamp":
		return g.NewClamp(gshade.ClampType(or(nd.ClampType, "MINMAX"))), nil
	case "map_range":
		return g.NewMapRange(gshade.Interpolation(or(nd.Interpolation, "LINEAR")), nd.UseClamp), nil
	case "mix_rgb":
		return g.NewMixRGB(gshade.BlendType(or(nd.Blend, "MIX")), nd.UseClamp), nil
	case "invert":
		return g.NewInvert(), nil
	case "gamma":
		return g.NewGamma(), nil
	case "bright_contrast":
		return g.NewBrightContrast(), nil
	case "hue_saturation":
		return g.NewHueSaturation(), nil
	case "blackbody":
		return g.NewBlackbody(), nil
	case "rgb_to_bw":
		return g.NewRGBToBW(), nil
	case "color_ramp":
		elems := make([]gshade.RampElement, len(nd.Ramp))
		for i, r := range nd.Ramp {
			c, err := colorOf(r.Color)
			if err != nil {
				return nil, fmt.Errorf("ramp element %d: %w", i, err)
			}
			elems[i] = gshade.RampElement{Position: r.Position, Color: c}
		}
		return g.NewColorRamp(gshade.Interpolation(or(nd.Interpolation, "LINEAR")), elems...), nil
	case "combine_hsv":
		return g.NewCombineHSV(), nil
	case "combine_rgb":
		return g.NewCombineRGB(), nil
	case "combine_xyz":
		return g.NewCombineXYZ(), nil
	case "separate_hsv":
		return g.NewSeparateHSV(), nil
	case "separate_rgb":
		return g.NewSeparateRGB(), nil
	case "separate_xyz":
		return g.NewSeparateXYZ(), nil
	case "float_curve":
		return g.NewFloatCurve(nd.curveMapping()), nil
	case "rgb_curve":
		return g.NewRGBCurve(nd.curveMapping()), nil
	case "vector_curve":
		return g.NewVectorCurve(nd.curveMapping()), nil
	case "mapping":
		return g.NewMapping(gshade.MappingType(or(nd.VectorType, "POINT"))), nil
	case "vector_math":
		return g.NewVectorMath(gshade.Operation(or(nd.Operation, "ADD"))), nil
	case "normal":
		dir := ms3.Vec{Z: 1}
		if nd.Value != nil {
			v, err := fixed(nd.Value, 3)
			if err != nil {
				return nil, err
			}
			dir = ms3.Vec{X: v[0], Y: v[1], Z: v[2]}
		}
		return g.NewNormal(dir), nil
	case "normal_map":
		return g.NewNormalMap(gshade.Space(or(nd.Space, "TANGENT"))), nil
	case "tex_image":
		img, err := b.image(nd.Image)
		return g.NewTexImage(img, gshade.Extension(or(nd.Extension, "REPEAT")), gshade.TexInterpolation(or(nd.Interpolation, "Linear"))), err
	case "tex_environment":
		img, err := b.image(nd.Image)
		return g.NewTexEnvironment(img, gshade.TexInterpolation(or(nd.Interpolation, "Linear"))), err
	case "tex_checker":
		return g.NewTexChecker(), nil
	case "tex_coord":
		return g.NewTexCoord(), nil
	case "tex_noise":
		return g.NewTexNoise(nd.dimensions()), nil
	case "tex_white_noise":
		return g.NewTexWhiteNoise(nd.dimensions()), nil
	case "tex_voronoi":
		return g.NewTexVoronoi(nd.dimensions()), nil
	case "tex_musgrave":
		return g.NewTexMusgrave(nd.dimensions()), nil
	case "tex_wave":
		return g.NewTexWave(
			gshade.WaveType(or(nd.WaveType, "BANDS")),
			gshade.WaveDirection(or(nd.WaveDirection, "X")),
			gshade.WaveProfile(or(nd.WaveProfile, "SIN")),
		), nil
	case "tex_gradient":
		return g.NewTexGradient(gshade.GradientType(or(nd.Gradient, "LINEAR"))), nil
	case "geometry":
		return g.NewGeometry(), nil
	case "uv_map":
		return g.NewUVMap(nd.UVMap), nil
	case "group":
		tree, err := b.group(nd.Group)
		if err != nil {
			return nil, err
		}
		return g.NewGroup(tree), nil
	case "group_input":
		specs, err := socketSpecs(nd.Outputs)
		return g.NewGroupInput(specs...), err
	case "group_output":
		specs, err := socketSpecs(nd.Inputs)
		return g.NewGroupOutput(specs...), err
	case "reroute":
		kind, err := gshade.ParseValueKind(nd.Kind)
		return g.NewReroute(kind), err
	case "":
		return nil, errors.New("missing node type")
	}
	// Kinds without a formula are kept so that compilation degrades them.
	in, err := socketSpecs(nd.Inputs)
	if err != nil {
		return nil, err
	}
	out, err := socketSpecs(nd.Outputs)
	if err != nil {
		return nil, err
	}
	return g.NewCustom(nd.Type, in, out), nil
}

func (b *docBuilder) image(name string) (*gshade.Image, error) {
	if name == "" {
		return nil, nil
	}
	img := b.images[name]
	if img == nil {
		return nil, fmt.Errorf("undefined image %q", name)
	}
	return img, nil
}

func (nd *nodeYAML) dimensions() gshade.Dimensions {
	return gshade.Dimensions(strings.ToUpper(or(nd.Dimensions, "3D")))
}

func (nd *nodeYAML) curveMapping() gshade.CurveMapping {
	m := gshade.CurveMapping{Extrapolate: nd.Extrapolate}
	for _, pts := range nd.Curves {
		var c gshade.Curve
		for _, p := range pts {
			c.Points = append(c.Points, ms2.Vec{X: p[0], Y: p[1]})
		}
		m.Curves = append(m.Curves, c)
	}
	return m
}

func socketSpecs(socks []socketYAML) ([]gshade.SocketSpec, error) {
	specs := make([]gshade.SocketSpec, len(socks))
	for i, s := range socks {
		kind, err := gshade.ParseValueKind(s.Kind)
		if err != nil {
			return nil, fmt.Errorf("socket %q: %w", s.Name, err)
		}
		specs[i] = gshade.SocketSpec{Name: s.Name, Kind: kind, NoDefault: s.Default == nil}
		if s.Default != nil {
			specs[i].Default, err = literal(kind, s.Default)
			if err != nil {
				return nil, fmt.Errorf("socket %q: %w", s.Name, err)
			}
		}
	}
	return specs, nil
}

// literal converts document values to a literal of the given kind.
// Colors accept a single gray value or RGB with opaque alpha.
func literal(kind gshade.ValueKind, v []float32) (gshade.Literal, error) {
	switch kind {
	case gshade.KindScalar:
		f, err := fixed(v, 1)
		return gshade.Float(f[0]), err
	case gshade.KindInteger:
		f, err := fixed(v, 1)
		return gshade.Int(int(f[0])), err
	case gshade.KindVector:
		f, err := fixed(v, 3)
		return gshade.Vec(ms3.Vec{X: f[0], Y: f[1], Z: f[2]}), err
	case gshade.KindColor:
		c, err := colorOf(v)
		return gshade.RGBA(c), err
	}
	return gshade.Literal{}, fmt.Errorf("no literal for socket kind %s", kind)
}

func fixed(v []float32, n int) ([4]float32, error) {
	var f [4]float32
	if len(v) != n {
		return f, fmt.Errorf("want %d values, got %d", n, len(v))
	}
	copy(f[:], v)
	return f, nil
}

func colorOf(v []float32) (gshade.Color, error) {
	switch len(v) {
	case 1:
		return gshade.Color{R: v[0], G: v[0], B: v[0], A: 1}, nil
	case 3:
		return gshade.Color{R: v[0], G: v[1], B: v[2], A: 1}, nil
	case 4:
		return gshade.Color{R: v[0], G: v[1], B: v[2], A: v[3]}, nil
	}
	return gshade.Color{}, fmt.Errorf("color needs 1, 3 or 4 values, got %d", len(v))
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
