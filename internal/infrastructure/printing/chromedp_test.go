package printing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/suratjalan/internal/domain/printing"
)

func TestNewChromedpRenderer_Defaults(t *testing.T) {
	r, err := NewChromedpRenderer(nil)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, "chromedp", r.Name())
	assert.Equal(t, defaultChromeTimeout, r.config.DefaultTimeout)
	assert.Equal(t, defaultScale, r.config.Scale)
	assert.NotNil(t, r.templates)
	assert.NotNil(t, r.allocCtx)
}

func TestNewChromedpRenderer_Remote(t *testing.T) {
	r, err := NewChromedpRenderer(&ChromedpConfig{
		RemoteURL:      "ws://127.0.0.1:9222",
		DefaultTimeout: 5 * time.Second,
	})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, 5*time.Second, r.config.DefaultTimeout)
}

func TestChromedpRenderer_BuildPrintParams(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{Scale: 1}}
	params := r.buildPrintParams(printing.PageGeometry{
		Paper:    printing.PaperSizeA4,
		FontSize: 9,
	})

	assert.InDelta(t, 8.27, params.paperWidth, 0.01)
	assert.InDelta(t, 11.69, params.paperHeight, 0.01)
	assert.Equal(t, 1.0, params.scale)
}

func TestChromedpRenderer_RejectsEmptyLayout(t *testing.T) {
	r, err := NewChromedpRenderer(nil)
	require.NoError(t, err)
	defer r.Close()

	_, err = r.Render(context.Background(), nil)
	var re *RenderError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeInvalidLayout, re.Code)

	_, err = r.Render(context.Background(), &printing.Layout{})
	require.ErrorAs(t, err, &re)
	assert.Equal(t, ErrCodeInvalidLayout, re.Code)
}

func TestPointsToInches(t *testing.T) {
	assert.Equal(t, 1.0, pointsToInches(72))
	assert.Equal(t, 0.5, pointsToInches(36))
}
