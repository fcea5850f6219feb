package datamodel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canopyhq/canopy/pkg/datamodel"
	"github.com/canopyhq/canopy/pkg/domain"
)

func strPtr(s string) *string   { return &s }
func numPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool      { return &b }

func TestModel_Update_RootReplacesEntireTree(t *testing.T) {
	m := datamodel.New()
	m.Update("", []domain.DataModelEntry{
		{Key: "name", ValueString: strPtr("Ada")},
		{Key: "age", ValueNumber: numPtr(36)},
	})

	// A root update with new contents drops keys absent from the payload.
	m.Update("/", []domain.DataModelEntry{
		{Key: "name", ValueString: strPtr("Grace")},
	})

	assert.Equal(t, "Grace", m.Get("/name", nil))
	assert.Nil(t, m.Get("/age", nil))
}

func TestModel_Update_SubtreePreservesSiblings(t *testing.T) {
	m := datamodel.New()
	m.Update("", []domain.DataModelEntry{
		{Key: "user", ValueMap: []domain.DataModelEntry{
			{Key: "name", ValueString: strPtr("Ada")},
		}},
		{Key: "theme", ValueString: strPtr("dark")},
	})

	m.Update("/user", []domain.DataModelEntry{
		{Key: "name", ValueString: strPtr("Grace")},
	})

	assert.Equal(t, "Grace", m.Get("/user/name", nil))
	assert.Equal(t, "dark", m.Get("/theme", nil), "siblings must survive a subtree update")
}

func TestModel_Update_CreatesIntermediateNodes(t *testing.T) {
	m := datamodel.New()
	m.Update("/a/b/c", []domain.DataModelEntry{
		{Key: "leaf", ValueBoolean: boolPtr(true)},
	})

	assert.Equal(t, true, m.Get("/a/b/c/leaf", nil))
}

func TestModel_Update_OverwritesScalarIntermediate(t *testing.T) {
	m := datamodel.New()
	m.Update("", []domain.DataModelEntry{
		{Key: "node", ValueString: strPtr("scalar")},
	})

	m.Update("/node/child", []domain.DataModelEntry{
		{Key: "x", ValueNumber: numPtr(1)},
	})

	assert.Equal(t, float64(1), m.Get("/node/child/x", nil))
}

func TestModel_Update_DropsEmptyKeys(t *testing.T) {
	m := datamodel.New()
	m.Update("", []domain.DataModelEntry{
		{Key: "", ValueString: strPtr("ghost")},
		{Key: "kept", ValueString: strPtr("yes")},
	})

	assert.Equal(t, "yes", m.Get("/kept", nil))
	assert.Len(t, m.Tree(), 1)
}

func TestModel_Get_Defaults(t *testing.T) {
	m := datamodel.New()
	m.Update("", []domain.DataModelEntry{
		{Key: "name", ValueString: strPtr("Ada")},
	})

	assert.Equal(t, "fallback", m.Get("/missing", "fallback"))
	assert.Equal(t, "fallback", m.Get("/name/deeper", "fallback"), "scalars are not traversable")
	assert.Equal(t, "Ada", m.Get("//name", nil), "empty segments are ignored")
}

func TestModel_Get_RootReturnsTree(t *testing.T) {
	m := datamodel.New()
	m.Update("", []domain.DataModelEntry{
		{Key: "k", ValueString: strPtr("v")},
	})

	root, ok := m.Get("/", nil).(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "v", root["k"])
}

func TestModel_Resolve(t *testing.T) {
	m := datamodel.New()
	m.Update("", []domain.DataModelEntry{
		{Key: "user", ValueMap: []domain.DataModelEntry{
			{Key: "name", ValueString: strPtr("Rose")},
			{Key: "score", ValueNumber: numPtr(12.5)},
			{Key: "active", ValueBoolean: boolPtr(true)},
		}},
	})

	tests := []struct {
		name  string
		value domain.Value
		def   string
		want  string
	}{
		{"bare string", "hello", "", "hello"},
		{"bare integer-valued number", float64(42), "", "42"},
		{"bare fractional number", 3.14, "", "3.14"},
		{"bare boolean", true, "", "true"},
		{"literalString", map[string]any{"literalString": "tagged"}, "", "tagged"},
		{"literalNumber", map[string]any{"literalNumber": float64(7)}, "", "7"},
		{"literalBoolean", map[string]any{"literalBoolean": false}, "", "false"},
		{"path hit string", map[string]any{"path": "/user/name"}, "", "Rose"},
		{"path hit number", map[string]any{"path": "/user/score"}, "", "12.5"},
		{"path hit boolean", map[string]any{"path": "/user/active"}, "", "true"},
		{"path miss yields default", map[string]any{"path": "/user/missing"}, "n/a", "n/a"},
		{"nil value yields default", nil, "n/a", "n/a"},
		{"empty map yields default", map[string]any{}, "n/a", "n/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Resolve(tt.value, tt.def))
		})
	}
}

func TestModel_Clear(t *testing.T) {
	m := datamodel.New()
	m.Update("", []domain.DataModelEntry{
		{Key: "k", ValueString: strPtr("v")},
	})

	m.Clear()
	assert.Empty(t, m.Tree())
}
