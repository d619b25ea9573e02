// Package game wires the engine together: window, renderer, terrain,
// scene and the input loop.
package game

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/tundra/internal/config"
	"github.com/Faultbox/tundra/internal/engine/asset"
	"github.com/Faultbox/tundra/internal/engine/model"
	"github.com/Faultbox/tundra/internal/engine/render"
	"github.com/Faultbox/tundra/internal/engine/scene"
	"github.com/Faultbox/tundra/internal/engine/terrain"
	"github.com/Faultbox/tundra/internal/engine/window"
	"github.com/Faultbox/tundra/internal/logger"
)

// titleInterval is how often the FPS readout in the window title
// refreshes, in frames.
const titleInterval = 16

// Game is the running application.
type Game struct {
	cfg      *config.Config
	window   *window.Window
	renderer *render.Renderer
	scene    *scene.Scene

	running    bool
	frames     int
	fps        int
	lastSecond time.Time
}

// New builds the whole stack. Terrain generation runs synchronously
// here; nothing is drawn until it finishes.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{cfg: cfg}

	var err error
	g.window, err = window.New(window.Config{
		Title:      "Tundra",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	g.renderer, err = render.New()
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	g.renderer.AssetDir = cfg.Data.AssetDir
	g.renderer.Resize(cfg.Graphics.Width, cfg.Graphics.Height)

	start := time.Now()
	t := terrain.Generate(terrain.Params{
		Y:      cfg.Terrain.Height,
		Side:   cfg.Terrain.Side,
		NrVert: cfg.Terrain.NrVert,
		Seed:   cfg.Terrain.Seed,
	})
	logger.Info("terrain generated",
		zap.Int("nr_vert", cfg.Terrain.NrVert),
		zap.Int64("seed", cfg.Terrain.Seed),
		zap.Duration("took", time.Since(start)))

	g.scene = scene.New(t)
	g.scene.Autopilot = cfg.Scene.Autopilot

	if err := g.addTerrainGroup(t); err != nil {
		g.Close()
		return nil, err
	}
	if err := g.loadScene(); err != nil {
		g.Close()
		return nil, err
	}

	// Spawn vegetation on the placement markers the terrain automata
	// produced, using whichever loaded groups share their names.
	reg := scene.Registry{}
	for _, grp := range g.scene.Queue.Groups {
		reg[grp.Model.Name] = grp
	}
	g.scene.Instantiate(reg, cfg.Terrain.Seed)

	return g, nil
}

// addTerrainGroup turns the generated landscape mesh into a drawable
// group with a single static entity.
func (g *Game) addTerrainGroup(t *terrain.Terrain) error {
	m, err := model.New(&asset.MeshData{
		Name:      "terrain",
		Vertices:  t.Positions,
		Normals:   t.Normals,
		TexCoords: t.TexCoords,
		Indices:   t.Indices,
	})
	if err != nil {
		return fmt.Errorf("terrain mesh: %w", err)
	}
	txm := model.NewTextured(m, "terrain.png")
	txm.Roughness = 0.9
	txm.Metallic = 0
	g.scene.AddGroup(txm)

	e := model.NewEntity(txm)
	e.Behavior = model.Static{}
	return nil
}

// loadScene reads the scene description and spawns it. A missing scene
// file is not fatal: the terrain alone is a valid scene.
func (g *Game) loadScene() error {
	path := filepath.Join(g.cfg.Data.AssetDir, g.cfg.Scene.File)
	if _, err := os.Stat(path); err != nil {
		logger.Warn("no scene description, starting with terrain only",
			zap.String("path", path))
		return nil
	}

	desc, err := scene.LoadDescription(path)
	if err != nil {
		return err
	}
	return g.scene.Load(desc, resolveMesh)
}

// resolveMesh maps mesh source names to loaded mesh data. Model file
// parsing lives outside the engine; the built-in primitives cover the
// procedural scenes.
func resolveMesh(name string) (*asset.MeshData, error) {
	switch name {
	case "cube":
		return model.CubeMesh(), nil
	case "quad":
		return model.QuadMesh(-0.5, 0, 0, 1, 1), nil
	default:
		return nil, fmt.Errorf("no mesh loader for %q", name)
	}
}

// Run drives the frame loop until an exit is requested.
func (g *Game) Run() error {
	g.running = true
	g.lastSecond = time.Now()
	logger.Info("starting frame loop")

	for g.running {
		g.pollEvents()

		g.scene.Update()
		g.renderer.Render(g.scene)
		g.window.SwapBuffers()

		g.countFrame()
		g.limitFPS()
	}
	return nil
}

func (g *Game) pollEvents() {
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		switch e := ev.(type) {
		case *sdl.QuitEvent:
			g.running = false
		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				g.renderer.Resize(int(e.Data1), int(e.Data2))
			}
		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN {
				g.handleKey(e.Keysym.Sym, sdl.Keymod(e.Keysym.Mod))
			}
		case *sdl.MouseWheelEvent:
			g.scene.Camera.HandleZoom(float32(e.Y))
		case *sdl.MouseMotionEvent:
			if e.State&sdl.ButtonLMask() != 0 {
				g.scene.Camera.HandleDrag(float32(e.XRel), float32(e.YRel))
			}
		}
	}
}

func (g *Game) handleKey(key sdl.Keycode, mod sdl.Keymod) {
	const step = 0.1

	// Focused entities move relative to the camera, not the world axes.
	fwdX, fwdZ := g.scene.Camera.ForwardDirection()
	rightX, rightZ := g.scene.Camera.RightDirection()

	switch key {
	case sdl.K_ESCAPE:
		// Cancel focus first; a second press exits.
		if g.scene.Focus != nil {
			g.scene.FocusCancel()
		} else {
			g.running = false
		}
	case sdl.K_TAB:
		if mod&sdl.KMOD_SHIFT != 0 {
			g.scene.FocusPrev()
		} else {
			g.scene.FocusNext()
		}
	case sdl.K_p:
		g.scene.Autopilot = !g.scene.Autopilot
		logger.Debug("autopilot toggled", zap.Bool("on", g.scene.Autopilot))
	case sdl.K_UP:
		if !g.scene.MoveFocused(-fwdX*step, 0, -fwdZ*step) {
			g.scene.Camera.HandleMovement(1, 0, 0)
		}
	case sdl.K_DOWN:
		if !g.scene.MoveFocused(fwdX*step, 0, fwdZ*step) {
			g.scene.Camera.HandleMovement(-1, 0, 0)
		}
	case sdl.K_RIGHT:
		if !g.scene.MoveFocused(rightX*step, 0, rightZ*step) {
			g.scene.Camera.HandleMovement(0, 1, 0)
		}
	case sdl.K_LEFT:
		if !g.scene.MoveFocused(-rightX*step, 0, -rightZ*step) {
			g.scene.Camera.HandleMovement(0, -1, 0)
		}
	}
}

func (g *Game) countFrame() {
	g.frames++
	if now := time.Now(); now.Sub(g.lastSecond) >= time.Second {
		g.fps = g.frames
		g.frames = 0
		g.lastSecond = now
	}

	if g.cfg.Game.ShowFPS && g.scene.FramesTotal%titleInterval == 0 {
		g.window.SetTitle(fmt.Sprintf("Tundra @%d FPS", g.fps))
	}
}

func (g *Game) limitFPS() {
	if g.cfg.Graphics.FPSLimit <= 0 {
		return
	}
	frame := time.Second / time.Duration(g.cfg.Graphics.FPSLimit)
	elapsed := time.Since(g.lastSecond) % frame
	time.Sleep(frame - elapsed)
}

// Close tears everything down in reverse construction order.
func (g *Game) Close() {
	if g.scene != nil {
		g.scene.Release()
		g.scene = nil
	}
	if g.renderer != nil {
		g.renderer.Destroy()
		g.renderer = nil
	}
	if g.window != nil {
		g.window.Close()
		g.window = nil
	}
}
