package config

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"

	"gopkg.in/yaml.v3"
)

// engineFiles are the names LoadEngine looks for, in order
var engineFiles = []string{"engine.json", "engine.yaml", "engine.yml"}

// GameConfig holds all loaded configurations
type GameConfig struct {
	Engine  *EngineConfig
	Sprites *SpritesConfig
}

// Loader loads configuration files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// decode unmarshals JSON or YAML depending on the file extension
func decode(name string, data []byte, v any) error {
	switch path.Ext(name) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, v)
	case ".json":
		return json.Unmarshal(data, v)
	default:
		return fmt.Errorf("unsupported config format %q", path.Ext(name))
	}
}

func (l *Loader) load(name string, v any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := decode(name, data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// LoadEngineFile loads an engine config from the named file, layered on the
// defaults, and validates it
func (l *Loader) LoadEngineFile(name string) (*EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := l.load(name, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return &cfg, nil
}

// LoadEngine loads the first of engine.json, engine.yaml, engine.yml found
func (l *Loader) LoadEngine() (*EngineConfig, error) {
	for _, name := range engineFiles {
		if _, err := fs.Stat(l.fsys, name); err == nil {
			return l.LoadEngineFile(name)
		}
	}
	return nil, fmt.Errorf("no engine config in %s (tried %v): %w", l.basePath, engineFiles, fs.ErrNotExist)
}

// LoadSprites loads sprites.json
func (l *Loader) LoadSprites() (*SpritesConfig, error) {
	var cfg SpritesConfig
	if err := l.load("sprites.json", &cfg); err != nil {
		return nil, err
	}
	if len(cfg.Textures) == 0 {
		return nil, fmt.Errorf("sprites.json: at least one texture is required")
	}
	return &cfg, nil
}

// LoadAll loads all base configurations (engine, sprites)
func (l *Loader) LoadAll() (*GameConfig, error) {
	engine, err := l.LoadEngine()
	if err != nil {
		return nil, err
	}

	sprites, err := l.LoadSprites()
	if err != nil {
		return nil, err
	}

	return &GameConfig{
		Engine:  engine,
		Sprites: sprites,
	}, nil
}
