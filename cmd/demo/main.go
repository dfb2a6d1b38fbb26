package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/tetra/internal/application/game"
	"github.com/younwookim/tetra/internal/application/loop"
	"github.com/younwookim/tetra/internal/application/replay"
	"github.com/younwookim/tetra/internal/application/scene/sprites"
	"github.com/younwookim/tetra/internal/graphics/batch"
	"github.com/younwookim/tetra/internal/infrastructure/config"
	"github.com/younwookim/tetra/internal/infrastructure/ebitenhost"
	"github.com/younwookim/tetra/internal/infrastructure/headless"
	"github.com/younwookim/tetra/internal/input"
)

const sceneName = "sprites"

type options struct {
	configDir string
	record    string
	replay    string
	headless  int
	verbose   bool
}

// session is one wired-up run: loop, game and optional recorder
type session struct {
	loop     *loop.Loop
	game     *game.Game
	scene    *sprites.Scene
	renderer *batch.Renderer
	recorder *replay.Recorder
	timer    loop.FrameTimer
	platform loop.Platform
	record   string
}

func loadConfig(dir string) (*config.GameConfig, error) {
	if dir != "" {
		return config.NewLoader(dir).LoadAll()
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs").LoadAll()
}

// newSession wires the scene into a loop. timer and platform are the real
// ones; they are wrapped by a recorder or replaced by a replayer as asked.
func newSession(cfg *config.GameConfig, opts options, textures []sprites.Texture, renderer *batch.Renderer, timer loop.FrameTimer, platform loop.Platform) (*session, error) {
	loopCfg := cfg.Engine.LoopConfig()
	spritesCfg := *cfg.Sprites

	s := &session{renderer: renderer, record: opts.record}

	switch {
	case opts.replay != "":
		data, err := replay.LoadReplay(opts.replay)
		if err != nil {
			return nil, err
		}
		spritesCfg.Seed = data.Seed
		if data.Timestep > 0 {
			loopCfg.Timestep = time.Duration(data.Timestep)
		}
		rp := replay.NewReplayer(*data)
		timer, platform = rp, rp
		log.Printf("Replaying %s (%d frames, seed: %d)", opts.replay, rp.TotalFrames(), data.Seed)

	case opts.record != "":
		if spritesCfg.Seed == 0 {
			spritesCfg.Seed = time.Now().UnixNano()
		}
		s.recorder = replay.NewRecorder(spritesCfg.Seed, sceneName, loopCfg.Timestep, timer, platform)
		timer, platform = s.recorder, s.recorder
		log.Printf("Recording enabled: %s (seed: %d)", opts.record, spritesCfg.Seed)
	}

	l, err := loop.New(loopCfg, platform, renderer)
	if err != nil {
		return nil, err
	}
	l.SetTimer(timer)

	sc, err := sprites.New(spritesCfg, textures, cfg.Engine.Window.Width, cfg.Engine.Window.Height, l.Input())
	if err != nil {
		return nil, err
	}

	s.loop = l
	s.scene = sc
	s.game = game.New(sc, renderer)
	s.timer = timer
	s.platform = platform
	return s, nil
}

// update wraps the game update with the F5 save shortcut
func (s *session) update(dt time.Duration) error {
	if s.recorder != nil && s.loop.Input().IsPressed(input.KeyF5) {
		s.saveRecording()
	}
	return s.game.Update(dt)
}

func (s *session) saveRecording() {
	if s.recorder == nil {
		return
	}

	filename := s.record
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	if err := s.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, s.recorder.FrameCount())
	}
}

// runHeadless runs the demo without a window. Without a replay each frame
// measures exactly one timestep and the run ends after opts.headless frames.
func runHeadless(ctx context.Context, cfg *config.GameConfig, opts options) (*session, *headless.Backend, error) {
	table := headless.NewTextures()
	var textures []sprites.Texture
	for _, tc := range cfg.Sprites.Textures {
		textures = append(textures, sprites.Texture{
			ID:       table.Add(tc.Width, tc.Height),
			Width:    float32(tc.Width),
			Height:   float32(tc.Height),
			Additive: tc.Additive,
		})
	}

	backend := headless.NewBackend()
	renderer := batch.NewRenderer(backend, table, cfg.Engine.Renderer.InitialQuads)
	timer := headless.StepTimer{Step: cfg.Engine.Timing.Timestep()}

	s, err := newSession(cfg, opts, textures, renderer, timer, headless.NewPlatform(opts.headless))
	if err != nil {
		return nil, nil, err
	}
	if err := s.loop.Run(ctx, s.update, s.game.Draw); err != nil {
		return s, backend, err
	}
	if s.recorder != nil {
		s.saveRecording()
	}
	return s, backend, nil
}

func runWindowed(cfg *config.GameConfig, opts options) error {
	res := ebitenhost.NewResources()
	var textures []sprites.Texture
	for _, tc := range cfg.Sprites.Textures {
		img := ebiten.NewImage(tc.Width, tc.Height)
		img.Fill(color.RGBA{tc.Color[0], tc.Color[1], tc.Color[2], tc.Color[3]})
		textures = append(textures, sprites.Texture{
			ID:       res.AddTexture(img),
			Width:    float32(tc.Width),
			Height:   float32(tc.Height),
			Additive: tc.Additive,
		})
	}

	backend := ebitenhost.NewBackend(res)
	renderer := batch.NewRenderer(backend, res, cfg.Engine.Renderer.InitialQuads)
	host := ebitenhost.NewSurface(cfg.Engine.Window, backend)

	s, err := newSession(cfg, opts, textures, renderer, host.Timer(), host)
	if err != nil {
		return err
	}
	host.SetTimer(s.timer)
	host.SetEventSource(s.platform)

	err = host.Run(s.loop, s.update, s.game.Draw)
	if s.recorder != nil {
		s.saveRecording()
	}
	return err
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func main() {
	// Parse command line flags
	var opts options
	flag.StringVar(&opts.configDir, "config", "", "Config directory (default: embedded configs)")
	flag.StringVar(&opts.record, "record", "", "Record frames to file (e.g., -record replay.json)")
	flag.StringVar(&opts.replay, "replay", "", "Replay frames from file")
	flag.IntVar(&opts.headless, "headless", 0, "Run N frames without a window")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose logging")
	flag.Parse()

	setupLogging(opts.verbose)

	cfg, err := loadConfig(opts.configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if opts.headless > 0 {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		s, backend, err := runHeadless(ctx, cfg, opts)
		if err != nil {
			log.Fatalf("Headless run failed: %v", err)
		}
		log.Printf("Ran %d frames, %d ticks, %d draw calls, %d quads",
			s.loop.Frames(), s.game.Ticks(), backend.Calls, backend.Quads)
		return
	}

	if err := runWindowed(cfg, opts); err != nil {
		log.Fatalf("Game failed: %v", err)
	}
}
