package profile

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Stopfield/UCR/internal/device"
)

// File is the on-disk shape of a profile definition file.
//
//	profiles:
//	  - title: Default
//	    input_devices: [6f1c...]
//	    plugins:
//	      - title: Throttle
//	        assignments:
//	          - device: 6f1c...
//	            key_type: 0
//	            key_value: 2
//	    children:
//	      - title: Combat
//
// Profile and plugin IDs may be omitted. A missing profile ID is derived
// from the breadcrumb path, and a missing plugin ID from the plugin title,
// so they stay stable across restarts and a child plugin with the same
// title as an ancestor's overrides it.
type File struct {
	Profiles []FileProfile `yaml:"profiles"`
}

// FileProfile is one profile node in a File.
type FileProfile struct {
	ID            string        `yaml:"id"`
	Title         string        `yaml:"title"`
	InputDevices  []string      `yaml:"input_devices"`
	OutputDevices []string      `yaml:"output_devices"`
	Plugins       []FilePlugin  `yaml:"plugins"`
	Children      []FileProfile `yaml:"children"`
}

// FilePlugin is one plugin in a FileProfile.
type FilePlugin struct {
	ID          string           `yaml:"id"`
	Title       string           `yaml:"title"`
	Assignments []FileAssignment `yaml:"assignments"`
}

// FileAssignment is one binding of a FilePlugin.
type FileAssignment struct {
	Device      string `yaml:"device"`
	KeyType     int    `yaml:"key_type"`
	KeyValue    int    `yaml:"key_value"`
	KeySubValue int    `yaml:"key_sub_value"`
	IOType      string `yaml:"io_type"`
	Category    string `yaml:"category"`
	// Bound defaults to true; set it to false to keep an empty slot.
	Bound *bool `yaml:"bound"`
}

var (
	profileNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ucr:profile"))
	pluginNamespace  = uuid.NewSHA1(uuid.NameSpaceURL, []byte("ucr:plugin"))
)

// LoadFile reads a profile definition file into a new Registry.
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading profile file: %w", err)
	}
	return Load(data)
}

// Load parses a profile definition document into a new Registry.
func Load(data []byte) (*Registry, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing profile file: %w", err)
	}

	r := NewRegistry()
	for i := range f.Profiles {
		if err := addFileProfile(r, &f.Profiles[i], uuid.Nil, ""); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func addFileProfile(r *Registry, fp *FileProfile, parent uuid.UUID, parentPath string) error {
	path := fp.Title
	if parentPath != "" {
		path = parentPath + BreadcrumbSeparator + fp.Title
	}

	id, err := parseOrDerive(fp.ID, profileNamespace, path)
	if err != nil {
		return fmt.Errorf("%w: profile %q id: %v", ErrInvalidProfile, path, err)
	}

	p := &Profile{ID: id, Title: fp.Title, ParentID: parent}
	if p.InputDevices, err = parseIDs(fp.InputDevices); err != nil {
		return fmt.Errorf("%w: profile %q input_devices: %v", ErrInvalidProfile, path, err)
	}
	if p.OutputDevices, err = parseIDs(fp.OutputDevices); err != nil {
		return fmt.Errorf("%w: profile %q output_devices: %v", ErrInvalidProfile, path, err)
	}

	for _, fpl := range fp.Plugins {
		plugin, err := buildPlugin(fpl)
		if err != nil {
			return fmt.Errorf("%w: profile %q: %v", ErrInvalidProfile, path, err)
		}
		p.Plugins = append(p.Plugins, plugin)
	}

	if err := r.Add(p); err != nil {
		return err
	}
	for i := range fp.Children {
		if err := addFileProfile(r, &fp.Children[i], p.ID, path); err != nil {
			return err
		}
	}
	return nil
}

func buildPlugin(fpl FilePlugin) (*Plugin, error) {
	id, err := parseOrDerive(fpl.ID, pluginNamespace, fpl.Title)
	if err != nil {
		return nil, fmt.Errorf("plugin %q id: %w", fpl.Title, err)
	}

	plugin := &Plugin{ID: id, Title: fpl.Title}
	for _, fa := range fpl.Assignments {
		deviceID, err := uuid.Parse(fa.Device)
		if err != nil {
			return nil, fmt.Errorf("plugin %q device %q: %w", fpl.Title, fa.Device, err)
		}
		b := &device.DeviceBinding{
			KeyType:     fa.KeyType,
			KeyValue:    fa.KeyValue,
			KeySubValue: fa.KeySubValue,
			IsBound:     fa.Bound == nil || *fa.Bound,
			IOType:      device.IOType(fa.IOType),
			Category:    device.BindingCategory(fa.Category),
		}
		if b.Category == "" {
			b.Category = device.CategoryMomentary
		}
		plugin.Assignments = append(plugin.Assignments, Assignment{DeviceID: deviceID, Binding: b})
	}
	return plugin, nil
}

func parseOrDerive(raw string, namespace uuid.UUID, name string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.NewSHA1(namespace, []byte(name)), nil
	}
	return uuid.Parse(raw)
}

func parseIDs(raw []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", s, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
