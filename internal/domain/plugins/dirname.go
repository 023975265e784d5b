package plugins

import (
	"context"

	m "github.com/mouse-blink/xform/internal/model"
)

// DirnameID is the id of the Dirname plugin.
const DirnameID = "Dirname"

// Dirname defines __filename and __dirname in ES module output.
type Dirname struct {
	Base

	upsert *UpsertRuntimeVars
}

// NewDirname creates a Dirname plugin backed by an UpsertRuntimeVars.
func NewDirname() (*Dirname, error) {
	upsert, err := NewUpsertRuntimeVars(UpsertConfig{
		ID:     DirnameID,
		Types:  TypeDist,
		Before: `import __xform_url from "url";import __xform_path from "path"`,
		Vars: []Var{
			{Name: "__filename", Value: Expr("__xform_url.fileURLToPath(import.meta.url)")},
			{Name: "__dirname", Value: Expr("__xform_path.dirname(__filename)")},
		},
	})
	if err != nil {
		return nil, err
	}

	base, err := NewBase(DirnameID, TypeDist, WithNested(upsert))
	if err != nil {
		return nil, err
	}

	return &Dirname{Base: base, upsert: upsert}, nil
}

// Callback forwards to the inner upsert plugin.
func (p *Dirname) Callback(ctx context.Context, src *m.Source) error {
	return p.upsert.Callback(ctx, src)
}
