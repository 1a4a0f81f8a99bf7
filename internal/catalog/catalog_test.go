package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Frames())
	assert.NotEmpty(t, c.Mats())
	assert.NotEmpty(t, c.ShippingOffer().Countries)
}

func TestFrameLookup(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	f, ok := c.Frame("classic")
	require.True(t, ok)
	assert.Equal(t, "classic", f.Style)
	assert.Greater(t, f.Cost, 0)

	_, ok = c.Frame("baroque")
	assert.False(t, ok)
}

func TestMatLookup(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	m, ok := c.Mat("mint")
	require.True(t, ok)
	assert.Equal(t, "Mint", m.Label)
	assert.NotEmpty(t, m.Hex)

	_, ok = c.Mat("chartreuse")
	assert.False(t, ok)
}

func TestDestinationLookup(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	d, ok := c.Destination("AT")
	require.True(t, ok)
	assert.Equal(t, "Austria", d.DisplayName)
	assert.Greater(t, d.Price, 0)

	_, ok = c.Destination("XX")
	assert.False(t, ok)
}

func TestIndexesCoverAllEntries(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	for _, f := range c.Frames() {
		_, ok := c.Frame(f.Style)
		assert.True(t, ok, "frame %s missing from index", f.Style)
	}
	for _, m := range c.Mats() {
		_, ok := c.Mat(m.Color)
		assert.True(t, ok, "mat %s missing from index", m.Color)
	}
	for _, d := range c.ShippingOffer().Countries {
		_, ok := c.Destination(d.ISOCode)
		assert.True(t, ok, "destination %s missing from index", d.ISOCode)
	}
}
