// Package gshadeaux provides glue for exporting shading expressions: YAML graph
// documents, a filesystem image store and a one call export of whole documents.
package gshadeaux

import (
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/go-logr/logr"
	"github.com/soypat/gshade/exprbuild"
)

// ExportConfig configures [Export].
type ExportConfig struct {
	// OutputDir is the directory the exported scene is written to. Textures are
	// materialized under OutputDir/TextureDir.
	OutputDir    string
	TextureDir   string
	ResourceRoot string

	// Store materializes images. If nil a [DirStore] rooted at SourceRoot is used.
	Store exprbuild.AssetStore

	// SourceRoot resolves "//" prefixed image paths for the default store.
	SourceRoot string

	// MaxTextureSize limits materialized image dimensions for the default store.
	MaxTextureSize int

	Logger logr.Logger
}

// Manifest is the result of exporting a document. Diagnostics lists the
// degradations reported during compilation.
type Manifest struct {
	Materials   []MaterialExpr       `json:"materials"`
	Textures    []exprbuild.Resource `json:"textures"`
	Diagnostics []string             `json:"diagnostics,omitempty"`
}

// MaterialExpr holds the shading expression compiled for each slot of a material.
type MaterialExpr struct {
	Name  string            `json:"name"`
	Slots map[string]string `json:"slots"`
}

// Export is an auxiliary function that compiles every slot of every material in doc
// through a single session so textures are shared between materials.
// Compilation diagnostics do not make Export fail, they are listed in the manifest
// and returned joined by [Manifest.Err].
func Export(doc *Document, cfg ExportConfig) (*Manifest, error) {
	if doc == nil {
		return nil, errors.New("Export requires a document")
	}
	store := cfg.Store
	if store == nil {
		store = DirStore{SourceRoot: cfg.SourceRoot, MaxSize: cfg.MaxTextureSize}
	}
	log := cfg.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	sess := exprbuild.NewSession(exprbuild.Config{
		OutputDir:    cfg.OutputDir,
		TextureDir:   cfg.TextureDir,
		ResourceRoot: cfg.ResourceRoot,
		Store:        store,
		Logger:       log,
	})
	watch := stopwatch()
	m := &Manifest{Materials: make([]MaterialExpr, 0, len(doc.Materials))}
	for _, mat := range doc.Materials {
		me := MaterialExpr{Name: mat.Name, Slots: make(map[string]string, len(mat.Slots))}
		for _, slot := range mat.SlotNames() {
			me.Slots[slot] = sess.Compile(mat.Slots[slot])
		}
		log.V(1).Info("compiled material", "material", mat.Name, "slots", len(me.Slots))
		m.Materials = append(m.Materials, me)
	}
	m.Textures = sess.Textures()
	if m.Textures == nil {
		m.Textures = []exprbuild.Resource{}
	}
	for _, err := range sess.Diagnostics() {
		m.Diagnostics = append(m.Diagnostics, err.Error())
	}
	log.V(1).Info("export done", "materials", len(m.Materials), "textures", len(m.Textures), "diagnostics", len(m.Diagnostics), "elapsed", watch())
	return m, nil
}

// Err returns the manifest's diagnostics joined, or nil if there are none.
func (m *Manifest) Err() error {
	errs := make([]error, len(m.Diagnostics))
	for i, d := range m.Diagnostics {
		errs[i] = errors.New(d)
	}
	return errors.Join(errs...)
}

// WriteJSON writes the manifest as indented JSON to w.
func (m *Manifest) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(m)
}

func stopwatch() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
