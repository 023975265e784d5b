package plugins

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/xform/internal/model"
)

func fixedNow() time.Time {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
}

func TestHeader_NewFile(t *testing.T) {
	p, err := NewHeader(HeaderConfig{Author: "A"})
	require.NoError(t, err)

	first, second := runTwice(t, p, m.SourceSrc, "export const x = 1;\n")

	assert.Equal(t, "/**\n * @author A\n */\nexport const x = 1;\n", first.Data)
	assert.False(t, second.Changed)
}

func TestHeader_ReplacesOnlyTaggedLine(t *testing.T) {
	ctx := context.Background()

	a, err := NewHeader(HeaderConfig{Author: "A"})
	require.NoError(t, err)
	require.NoError(t, a.Build(ctx, BuildEnv{}))

	b, err := NewHeader(HeaderConfig{Author: "B"})
	require.NoError(t, err)
	require.NoError(t, b.Build(ctx, BuildEnv{}))

	src := m.NewMemorySource("a.ts", m.SourceSrc, "const y = 2;\n")
	require.NoError(t, a.Callback(ctx, src))
	require.NoError(t, b.Callback(ctx, src))

	assert.Equal(t, "/**\n * @author B\n */\nconst y = 2;\n", src.Data)
}

func TestHeader_ExistingBlock(t *testing.T) {
	p, err := NewHeader(HeaderConfig{
		Author:    "B",
		Copyright: &Copyright{Name: "ACME", Start: 2021},
		Now:       fixedNow,
	})
	require.NoError(t, err)

	data := "/**\n * Module docs.\n * @author A\n */\nconst x = 1;\n"
	first, second := runTwice(t, p, m.SourceSrc, data)

	assert.Equal(t,
		"/**\n * Module docs.\n * @author B\n * @copyright © 2021 - 2026 ACME. All rights reserved.\n */\nconst x = 1;\n",
		first.Data)
	assert.False(t, second.Changed)
}

func TestHeader_KeepsCRLF(t *testing.T) {
	p, err := NewHeader(HeaderConfig{
		Author:    "B",
		Copyright: &Copyright{Name: "ACME", Start: 2021},
		Now:       fixedNow,
	})
	require.NoError(t, err)

	first, second := runTwice(t, p, m.SourceSrc, "/**\r\n * @author A\r\n */\r\nconst x = 1;\r\n")

	assert.Equal(t,
		"/**\r\n * @author B\r\n * @copyright © 2021 - 2026 ACME. All rights reserved.\r\n */\r\nconst x = 1;\r\n",
		first.Data)
	assert.False(t, second.Changed)

	fresh, _ := runTwice(t, p, m.SourceSrc, "const y = 2;\r\n")
	assert.Equal(t,
		"/**\r\n * @author B\r\n * @copyright © 2021 - 2026 ACME. All rights reserved.\r\n */\r\nconst y = 2;\r\n",
		fresh.Data)
}

func TestHeader_CopyrightDefaults(t *testing.T) {
	p, err := NewHeader(HeaderConfig{Copyright: &Copyright{Name: "ACME"}, Now: fixedNow})
	require.NoError(t, err)

	first, _ := runTwice(t, p, m.SourceDist, "x();\n")
	assert.Equal(t, "/**\n * @copyright © 2026 - 2026 ACME. All rights reserved.\n */\nx();\n", first.Data)
}

func TestHeader_Invalid(t *testing.T) {
	_, err := NewHeader(HeaderConfig{})
	assert.Error(t, err)

	_, err = NewHeader(HeaderConfig{Copyright: &Copyright{}})
	assert.Error(t, err)

	p, err := NewHeader(HeaderConfig{Author: "A"})
	require.NoError(t, err)
	assert.Error(t, p.Callback(context.Background(), m.NewMemorySource("a.ts", m.SourceSrc, "")))
}
