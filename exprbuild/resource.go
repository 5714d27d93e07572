package exprbuild

import (
	"path"
	"strconv"

	"github.com/soypat/gshade"
)

// Resource is a texture registered during compilation and referenced by name in expressions.
type Resource struct {
	Type       string `json:"type"`
	Name       string `json:"name"`
	FileName   string `json:"filename"`
	WrapMode   string `json:"wrap_mode"`
	FilterType string `json:"filter_type"`
}

const (
	WrapClamp      = "clamp"
	WrapRepeat     = "repeat"
	FilterNearest  = "nearest"
	FilterBilinear = "bilinear"
)

func wrapMode(ext gshade.Extension) string {
	switch ext {
	case gshade.ExtensionExtend, gshade.ExtensionClip:
		return WrapClamp
	}
	return WrapRepeat
}

func filterType(interp gshade.TexInterpolation) string {
	if interp == gshade.TexClosest {
		return FilterNearest
	}
	return FilterBilinear
}

// registerTexture returns the resource name of node n's texture, registering
// it on the first visit of n. Each image file is materialized once per session.
func (c *Context) registerTexture(n *gshade.Node, img *gshade.Image, wrap, filter string) string {
	s := c.sess
	if name, ok := s.nodeTex[n]; ok {
		return name
	}
	file := c.materialize(n, img)
	name := "_tex_" + strconv.Itoa(len(s.textures))
	s.textures = append(s.textures, Resource{
		Type:       "image",
		Name:       name,
		FileName:   path.Join(s.cfg.ResourceRoot, s.cfg.TextureDir, file),
		WrapMode:   wrap,
		FilterType: filter,
	})
	s.nodeTex[n] = name
	return name
}

func (c *Context) materialize(n *gshade.Node, img *gshade.Image) string {
	s := c.sess
	key := img.FileName()
	if file, ok := s.images[key]; ok {
		return file
	}
	file, err := s.cfg.Store.Materialize(img, s.textureDir())
	if err != nil {
		c.diagf(n, ErrMissingResource, "materialize image %q: %v", key, err)
	}
	if file == "" {
		file = key
	}
	s.images[key] = file
	return file
}
