package config

import "sort"

// Presets are named animation windows. "flyby" is the default hourly
// overview; "encounter" zooms into the closest-approach day at 6 minute steps;
// "wide" trades detail for the full span the vector table covers.
var Presets = map[string]*Config{
	"flyby": DefaultConfig(),
	"encounter": {
		DataDir: DefaultDataDir,
		Output:  DefaultOutput,
		Title:   "Voyager 2 Neptune encounter",
		Window: WindowConfig{
			Start: "1989-08-24T00:00:00Z",
			End:   "1989-08-26T12:00:00Z",
			Step:  "6m",
		},
	},
	"wide": {
		DataDir: DefaultDataDir,
		Output:  DefaultOutput,
		Title:   "Voyager 2 approach to the Neptune system",
		Window: WindowConfig{
			Start: "1989-08-23T00:00:00Z",
			End:   "1989-08-27T12:00:00Z",
			Step:  "2h",
		},
	},
}

// GetPreset returns a copy of the named preset, or nil if unknown.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

// ListPresets returns the preset names, sorted.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
