package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Stopfield/UCR/internal/device"
)

const stickID = "6f1c2a4e-1b7d-4c8e-9a3f-0d2b5e7c9a11"
const lightsID = "0a9b8c7d-6e5f-4a3b-8c1d-2e3f4a5b6c7d"

const profileDoc = `
profiles:
  - title: Default
    input_devices: [` + stickID + `]
    plugins:
      - title: Buttons
        assignments:
          - device: ` + stickID + `
            key_type: 1
            key_value: 0
          - device: ` + stickID + `
            key_type: 1
            key_value: 1
            bound: false
    children:
      - title: Combat
        id: 11111111-2222-4333-8444-555555555555
        output_devices: [` + lightsID + `]
        plugins:
          - title: Buttons
            assignments:
              - device: ` + stickID + `
                key_type: 0
                key_value: 2
                category: range
`

func TestLoad(t *testing.T) {
	r, err := Load([]byte(profileDoc))
	require.NoError(t, err)
	require.Equal(t, 2, r.Len())

	root, err := r.Find("Default")
	require.NoError(t, err)
	assert.True(t, root.IsRoot())
	assert.Equal(t, []uuid.UUID{uuid.MustParse(stickID)}, root.InputDevices)
	require.Len(t, root.Plugins, 1)

	assignments := root.Plugins[0].Assignments
	require.Len(t, assignments, 2)
	assert.True(t, assignments[0].Binding.IsBound)
	assert.False(t, assignments[1].Binding.IsBound)
	assert.Equal(t, device.CategoryMomentary, assignments[0].Binding.Category)
	assert.Equal(t, device.IOTypeInput, assignments[0].Binding.IOType)
	assert.Equal(t, root.ID, assignments[0].Binding.Origin.ProfileID)

	combat, err := r.Find("Default > Combat")
	require.NoError(t, err)
	assert.Equal(t, uuid.MustParse("11111111-2222-4333-8444-555555555555"), combat.ID)
	assert.Equal(t, root.ID, combat.ParentID)
	assert.Equal(t, device.CategoryRange, combat.Plugins[0].Assignments[0].Binding.Category)

	// Same plugin title in parent and child yields the same plugin ID.
	assert.Equal(t, root.Plugins[0].ID, combat.Plugins[0].ID)
}

func TestLoadDerivedIDsAreStable(t *testing.T) {
	a, err := Load([]byte(profileDoc))
	require.NoError(t, err)
	b, err := Load([]byte(profileDoc))
	require.NoError(t, err)

	pa, err := a.Find("Default")
	require.NoError(t, err)
	pb, err := b.Find("Default")
	require.NoError(t, err)
	assert.Equal(t, pa.ID, pb.ID)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "profiles: [:"},
		{"bad device id", "profiles:\n  - title: A\n    input_devices: [nope]\n"},
		{"bad assignment device", "profiles:\n  - title: A\n    plugins:\n      - title: P\n        assignments:\n          - device: nope\n"},
		{"bad profile id", "profiles:\n  - title: A\n    id: nope\n"},
		{"missing title", "profiles:\n  - input_devices: []\n"},
		{"duplicate sibling", "profiles:\n  - title: A\n  - title: A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	require.NoError(t, os.WriteFile(path, []byte(profileDoc), 0o600))

	r, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
