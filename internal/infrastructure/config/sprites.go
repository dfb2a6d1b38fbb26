package config

// SpritesConfig is the root config for sprites.json (the demo scene)
type SpritesConfig struct {
	Count    int             `json:"count" yaml:"count"`
	Seed     int64           `json:"seed" yaml:"seed"`
	MinSpeed float64         `json:"minSpeed" yaml:"minSpeed"` // pixels per second
	MaxSpeed float64         `json:"maxSpeed" yaml:"maxSpeed"`
	Spin     float64         `json:"spin" yaml:"spin"` // radians per second
	Textures []TextureConfig `json:"textures" yaml:"textures"`
}

// TextureConfig describes a generated solid texture
type TextureConfig struct {
	Name     string   `json:"name" yaml:"name"`
	Width    int      `json:"width" yaml:"width"`
	Height   int      `json:"height" yaml:"height"`
	Color    [4]uint8 `json:"color" yaml:"color"`
	Additive bool     `json:"additive" yaml:"additive"`
}
