package plugins

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/xform/internal/model"
)

// runTwice applies p to data twice and returns both results.
func runTwice(t *testing.T, p Plugin, typ m.SourceType, data string) (first, second *m.Source) {
	t.Helper()

	ctx := context.Background()
	require.NoError(t, p.Build(ctx, BuildEnv{}))

	first = m.NewMemorySource("file.js", typ, data)
	require.NoError(t, p.Callback(ctx, first))

	second = m.NewMemorySource("file.js", typ, first.Data)
	require.NoError(t, p.Callback(ctx, second))

	return first, second
}

func TestNewBase(t *testing.T) {
	for _, id := range []string{"Header", "no-debug", "x_1"} {
		_, err := NewBase(id, TypeAll)
		assert.NoError(t, err, id)
	}

	for _, id := range []string{"", "has space", "a/b", "dot.id"} {
		_, err := NewBase(id, TypeAll)
		assert.ErrorIs(t, err, ErrInvalidID, id)
	}

	_, err := NewBase("ok", 0)
	assert.Error(t, err)
}

func TestTypeSet(t *testing.T) {
	assert.True(t, TypeSrc.Has(m.SourceSrc))
	assert.False(t, TypeSrc.Has(m.SourceDist))
	assert.True(t, TypeDist.Has(m.SourceSrc, m.SourceDist))
	assert.True(t, TypeAll.Has(m.SourceDist))
	assert.False(t, TypeAll.Has())
	assert.Equal(t, "src|dist", TypeAll.String())

	set, err := ParseTypes([]string{" SRC ", "dist"}, TypeSrc)
	require.NoError(t, err)
	assert.Equal(t, TypeAll, set)

	set, err = ParseTypes(nil, TypeDist)
	require.NoError(t, err)
	assert.Equal(t, TypeDist, set)

	_, err = ParseTypes([]string{"bin"}, TypeAll)
	assert.Error(t, err)
}

type recordingPlugin struct {
	Base

	built *[]string
	fail  bool
}

func newRecording(t *testing.T, id string, built *[]string, nested ...Plugin) *recordingPlugin {
	t.Helper()

	p := &recordingPlugin{built: built}

	base, err := NewBase(id, TypeAll, WithNested(nested...), WithInit(func(context.Context, BuildEnv) error {
		*built = append(*built, id)
		if p.fail {
			return errors.New("boom")
		}

		return nil
	}))
	require.NoError(t, err)

	p.Base = base

	return p
}

func (p *recordingPlugin) Callback(context.Context, *m.Source) error { return nil }

func TestBase_Build(t *testing.T) {
	t.Run("nested plugins are built before init", func(t *testing.T) {
		var built []string

		inner := newRecording(t, "inner", &built)
		outer := newRecording(t, "outer", &built, inner)

		require.NoError(t, outer.Build(context.Background(), BuildEnv{}))
		assert.Equal(t, []string{"inner", "outer"}, built)
		assert.Len(t, outer.Plugins(), 1)
	})

	t.Run("nested failure is wrapped", func(t *testing.T) {
		var built []string

		inner := newRecording(t, "inner", &built)
		inner.fail = true
		outer := newRecording(t, "outer", &built, inner)

		err := outer.Build(context.Background(), BuildEnv{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "plugin outer")
		assert.Contains(t, err.Error(), "plugin inner: init: boom")
		assert.Equal(t, []string{"inner"}, built)
	})

	t.Run("logger is always usable", func(t *testing.T) {
		var built []string

		p := newRecording(t, "p", &built)
		assert.NotNil(t, p.Logger())
	})
}

func TestCheckUnique(t *testing.T) {
	var built []string

	a := newRecording(t, "a", &built)
	b := newRecording(t, "b", &built)
	dup := newRecording(t, "a", &built)

	assert.NoError(t, CheckUnique([]Plugin{a, b}))
	assert.ErrorIs(t, CheckUnique([]Plugin{a, b, dup}), ErrDuplicateID)
	assert.Error(t, CheckUnique([]Plugin{nil}))
}
