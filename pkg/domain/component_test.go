package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy/pkg/domain"
)

func TestComponent_Type(t *testing.T) {
	c := domain.Component{
		ID:        "t1",
		Component: map[string]any{"Text": map[string]any{"text": "hi"}},
	}

	name, props := c.Type()
	assert.Equal(t, domain.TypeText, name)
	assert.Equal(t, "hi", props["text"])
}

func TestComponent_Type_Empty(t *testing.T) {
	name, props := domain.Component{ID: "x"}.Type()
	assert.Empty(t, name)
	assert.Nil(t, props)
}

func TestComponent_DecodeCatalog(t *testing.T) {
	t.Run("Text", func(t *testing.T) {
		c := domain.Component{
			ID:        "t",
			Component: map[string]any{"Text": map[string]any{"text": "hello", "usageHint": "h3"}},
		}
		record, err := c.DecodeCatalog()
		require.NoError(t, err)

		props, ok := record.(domain.TextProps)
		require.True(t, ok)
		assert.Equal(t, "hello", props.Text)
		assert.Equal(t, "h3", props.UsageHint)
	})

	t.Run("Heading level from JSON number", func(t *testing.T) {
		// JSON decoding yields float64; the level field is an int.
		var c domain.Component
		require.NoError(t, json.Unmarshal([]byte(`{"id":"h","component":{"Heading":{"text":"T","level":3}}}`), &c))

		record, err := c.DecodeCatalog()
		require.NoError(t, err)

		props, ok := record.(domain.HeadingProps)
		require.True(t, ok)
		assert.Equal(t, 3, props.Level)
	})

	t.Run("Row children", func(t *testing.T) {
		c := domain.Component{
			ID:        "r",
			Component: map[string]any{"Row": map[string]any{"children": map[string]any{"explicitList": []any{"a", "b"}}}},
		}
		record, err := c.DecodeCatalog()
		require.NoError(t, err)

		props, ok := record.(domain.RowProps)
		require.True(t, ok)
		assert.Equal(t, []string{"a", "b"}, props.Children.ExplicitList)
	})

	t.Run("Unknown type is tolerated", func(t *testing.T) {
		c := domain.Component{
			ID:        "v",
			Component: map[string]any{"VideoPlayer": map[string]any{"url": "x"}},
		}
		record, err := c.DecodeCatalog()
		assert.NoError(t, err)
		assert.Nil(t, record)
	})

	t.Run("Missing type is an error", func(t *testing.T) {
		_, err := domain.Component{ID: "empty"}.DecodeCatalog()
		assert.Error(t, err)
	})

	t.Run("Extra fields are tolerated", func(t *testing.T) {
		c := domain.Component{
			ID:        "t",
			Component: map[string]any{"Text": map[string]any{"text": "hi", "futureField": 42}},
		}
		_, err := c.DecodeCatalog()
		assert.NoError(t, err)
	})
}

func TestMessage_Kind(t *testing.T) {
	tests := []struct {
		name string
		msg  domain.Message
		want string
	}{
		{"beginRendering", domain.Message{BeginRendering: &domain.BeginRendering{}}, "beginRendering"},
		{"surfaceUpdate", domain.Message{SurfaceUpdate: &domain.SurfaceUpdate{}}, "surfaceUpdate"},
		{"dataModelUpdate", domain.Message{DataModelUpdate: &domain.DataModelUpdate{}}, "dataModelUpdate"},
		{"deleteSurface", domain.Message{DeleteSurface: &domain.DeleteSurface{}}, "deleteSurface"},
		{"malformed", domain.Message{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.msg.Kind())
		})
	}
}
