package cmd

import (
	"errors"
	"os"
	"slices"

	"github.com/mouse-blink/xform/internal/domain"
	m "github.com/mouse-blink/xform/internal/model"
)

var errNoPlugins = errors.New("no transformers configured: pass --plugin or add transformers to the config file")

// overrides are the command line settings layered over the config file.
type overrides struct {
	paths        []string
	exclude      []string
	plugins      []string
	tsconfig     string
	parseImports bool
	sync         bool
}

// transformerSpecs builds the transformers of a command. Without configured
// transformers a single "default" one is assembled from the flags.
func transformerSpecs(o overrides, requirePlugins bool) ([]domain.TransformerSpec, error) {
	specs, err := cfg.Specs()
	if err != nil {
		return nil, err
	}

	if len(specs) == 0 {
		if requirePlugins && len(o.plugins) == 0 {
			return nil, errNoPlugins
		}

		spec := domain.TransformerSpec{Name: "default", Include: []string{"."}, Async: cfg.Async}
		for _, id := range o.plugins {
			spec.Plugins = append(spec.Plugins, domain.PluginSpec{ID: id})
		}

		specs = []domain.TransformerSpec{spec}
	} else if len(o.plugins) > 0 {
		specs = onlyPlugins(specs, o.plugins)
		if len(specs) == 0 {
			return nil, errNoPlugins
		}
	}

	for i := range specs {
		s := &specs[i]

		if len(o.paths) > 0 {
			s.Include = slices.Clone(o.paths)
		}

		s.Exclude = append(s.Exclude, o.exclude...)

		if o.tsconfig != "" {
			s.TSConfig = m.Path(o.tsconfig)
		}

		s.ParseImports = s.ParseImports || o.parseImports
		s.Async = s.Async && !o.sync
	}

	return specs, nil
}

// onlyPlugins keeps the named plugins and drops transformers left without any.
func onlyPlugins(specs []domain.TransformerSpec, ids []string) []domain.TransformerSpec {
	out := specs[:0]

	for _, s := range specs {
		kept := make([]domain.PluginSpec, 0, len(s.Plugins))

		for _, p := range s.Plugins {
			if slices.Contains(ids, p.ID) {
				kept = append(kept, p)
			}
		}

		if len(kept) > 0 {
			s.Plugins = kept
			out = append(out, s)
		}
	}

	return out
}

func workingDir() (m.Path, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}

	return m.Path(wd), nil
}
