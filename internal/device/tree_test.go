package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stopfield/UCR/internal/backend"
)

func button(title string, index int) backend.BindingReport {
	return backend.BindingReport{
		Title:      title,
		Category:   backend.BindingCategoryMomentary,
		Descriptor: backend.BindingDescriptor{Type: backend.BindingTypeButton, Index: index},
	}
}

func axis(title string, index int) backend.BindingReport {
	return backend.BindingReport{
		Title:      title,
		Category:   backend.BindingCategorySigned,
		Descriptor: backend.BindingDescriptor{Type: backend.BindingTypeAxis, Index: index},
	}
}

func TestBuildBindingTreeEmpty(t *testing.T) {
	tree, ok := BuildBindingTree(nil, IOTypeInput)
	assert.False(t, ok)
	assert.Nil(t, tree)

	tree, ok = BuildBindingTree([]backend.DeviceReportNode{}, IOTypeInput)
	assert.False(t, ok)
	assert.Nil(t, tree)
}

func TestBuildBindingTreeStructure(t *testing.T) {
	nodes := []backend.DeviceReportNode{
		{
			Title:    "Buttons",
			Bindings: []backend.BindingReport{button("Button 1", 0), button("Button 2", 1)},
			Nodes: []backend.DeviceReportNode{
				{Title: "Hat", Bindings: []backend.BindingReport{{
					Title:      "Up",
					Category:   backend.BindingCategoryEvent,
					Descriptor: backend.BindingDescriptor{Type: backend.BindingTypePOV, Index: 0, SubIndex: 1},
				}}},
			},
		},
		{Title: "Axes", Bindings: []backend.BindingReport{axis("X", 0), {
			Title:      "Wheel",
			Category:   backend.BindingCategoryDelta,
			Descriptor: backend.BindingDescriptor{Type: backend.BindingTypeAxis, Index: 5},
		}}},
		{Title: "Empty"},
	}

	tree, ok := BuildBindingTree(nodes, IOTypeInput)
	require.True(t, ok)
	require.Len(t, tree, 3)

	// Nested groups precede the group's own leaves.
	buttons := tree[0]
	assert.Equal(t, "Buttons", buttons.Title)
	assert.Equal(t, NodeGroup, buttons.Kind)
	require.Len(t, buttons.Children, 3)
	assert.Equal(t, "Hat", buttons.Children[0].Title)
	assert.False(t, buttons.Children[0].IsBinding())
	assert.Equal(t, "Button 1", buttons.Children[1].Title)
	assert.Equal(t, "Button 2", buttons.Children[2].Title)

	hatUp := buttons.Children[0].Children[0]
	require.True(t, hatUp.IsBinding())
	assert.Equal(t, int(backend.BindingTypePOV), hatUp.Binding.KeyType)
	assert.Equal(t, 1, hatUp.Binding.KeySubValue)
	assert.Equal(t, CategoryEvent, hatUp.Binding.Category)

	b2 := buttons.Children[2].Binding
	require.NotNil(t, b2)
	assert.False(t, b2.IsBound)
	assert.Equal(t, int(backend.BindingTypeButton), b2.KeyType)
	assert.Equal(t, 1, b2.KeyValue)
	assert.Equal(t, IOTypeInput, b2.IOType)
	assert.Equal(t, CategoryMomentary, b2.Category)

	axes := tree[1]
	require.Len(t, axes.Children, 2)
	assert.Equal(t, CategoryRange, axes.Children[0].Binding.Category)
	assert.Equal(t, CategoryDelta, axes.Children[1].Binding.Category)

	empty := tree[2]
	assert.NotNil(t, empty.Children)
	assert.Empty(t, empty.Children)

	assert.Equal(t, 9, tree.Count())
}

func TestBuildBindingTreeKeepsDuplicates(t *testing.T) {
	nodes := []backend.DeviceReportNode{
		{Title: "Buttons", Bindings: []backend.BindingReport{button("A", 3), button("A", 3)}},
		{Title: "Buttons"},
	}

	tree, ok := BuildBindingTree(nodes, IOTypeOutput)
	require.True(t, ok)
	require.Len(t, tree, 2)
	require.Len(t, tree[0].Children, 2)
	assert.Equal(t, IOTypeOutput, tree[0].Children[0].Binding.IOType)
}

func TestBindingTreeClone(t *testing.T) {
	tree, ok := BuildBindingTree([]backend.DeviceReportNode{
		{Title: "Buttons", Bindings: []backend.BindingReport{button("Trigger", 0)}},
	}, IOTypeInput)
	require.True(t, ok)

	cpy := tree.Clone()
	require.Len(t, cpy, 1)
	assert.NotSame(t, tree[0], cpy[0])
	assert.NotSame(t, tree[0].Children[0].Binding, cpy[0].Children[0].Binding)

	cpy[0].Title = "Changed"
	cpy[0].Children[0].Binding.IsBound = true
	assert.Equal(t, "Buttons", tree[0].Title)
	assert.False(t, tree[0].Children[0].Binding.IsBound)

	assert.Nil(t, BindingTree(nil).Clone())
}

func TestMapCategory(t *testing.T) {
	tests := []struct {
		in   backend.BindingCategory
		want BindingCategory
	}{
		{backend.BindingCategoryMomentary, CategoryMomentary},
		{backend.BindingCategoryEvent, CategoryEvent},
		{backend.BindingCategorySigned, CategoryRange},
		{backend.BindingCategoryUnsigned, CategoryRange},
		{backend.BindingCategoryDelta, CategoryDelta},
	}
	for _, tt := range tests {
		t.Run(tt.in.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, MapCategory(tt.in))
		})
	}
}
