package config

var Presets = map[string]*Config{
	"calm": {
		FPS: 30, Entities: 8,
		MarginX: 2, MarginY: 2,
		MinSpeed: 0.2, MaxSpeed: 0.6,
		MinSize: 6, MaxSize: 14,
		Shape: "ball",
	},
	"busy": {
		FPS: 60, Entities: 40,
		MarginX: 2, MarginY: 2,
		MinSpeed: 0.5, MaxSpeed: 2.0,
		MinSize: 3, MaxSize: 10,
		Shape: "box",
	},
	"storm": {
		FPS: 120, Entities: 100,
		MarginX: 0, MarginY: 0,
		MinSpeed: 1.5, MaxSpeed: 4.0,
		MinSize: 2, MaxSize: 6,
		Shape: "dot",
	},
	"drift": {
		FPS: 24, Entities: 12,
		MarginX: 6, MarginY: 6,
		MinSpeed: 0.1, MaxSpeed: 0.3,
		MinSize: 8, MaxSize: 20,
		Shape: "rect",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
