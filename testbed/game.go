package testbed

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spaghettifunk/anima-assets/engine"
	"github.com/spaghettifunk/anima-assets/engine/core"
)

type TestGame struct {
	*engine.Game
	out io.Writer
}

type gameState struct {
	last *engine.World
}

// NewTestGame prints a summary of every world the engine loads to out.
func NewTestGame(config *engine.ApplicationConfig, out io.Writer) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             &gameState{},
		},
		out: out,
	}

	tg.FnInitialize = tg.Initialize
	tg.FnOnLoad = tg.OnLoad
	tg.FnOnLoadError = tg.OnLoadError
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) Initialize() error {
	core.LogDebug("TestGame Initialize fn....")
	if g.out == nil {
		return fmt.Errorf("%w: no output for the load summary", core.ErrInvalidConfig)
	}
	return nil
}

func (g *TestGame) OnLoad(world *engine.World) error {
	state := g.State.(*gameState)
	state.last = world

	_, err := io.WriteString(g.out, Summary(world))
	return err
}

func (g *TestGame) OnLoadError(err error) {
	if g.State.(*gameState).last != nil {
		core.LogError("load failed, keeping the previous world: %s", err)
		return
	}
	core.LogError("load failed: %s", err)
}

func (g *TestGame) Shutdown() error {
	if last := g.State.(*gameState).last; last != nil {
		core.LogInfo("last world: scene %s, session %s", last.Scene.ID, last.Report.Session)
	}
	return nil
}

// World returns the last world printed, or nil.
func (g *TestGame) World() *engine.World {
	return g.State.(*gameState).last
}

// Summary renders a world as a short human readable report.
func Summary(world *engine.World) string {
	var sb strings.Builder
	scene := world.Scene
	fmt.Fprintf(&sb, "scene %s (session %s, %s)\n", scene.ID, world.Report.Session, world.Report.Duration.Round(time.Microsecond))

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ENTITY\tNODE\tMESH\tMATERIAL\tPROGRAM\tTEXTURE")
	for _, e := range scene.Entities {
		texture := "-"
		if m := e.Material.DiffuseMap; m != nil && m.Texture != nil {
			texture = m.Texture.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Name, e.Node.Name, e.Mesh.Name, e.Material.Name, e.Material.Program.Name, texture)
	}
	tw.Flush()

	for _, cam := range scene.Cameras {
		p := cam.Projection
		fmt.Fprintf(&sb, "camera %s: fov %g, aspect %.3f, clip [%g, %g]\n", cam.Name, p.FovY, p.Aspect, p.Near, p.Far)
	}
	fmt.Fprintf(&sb, "cached: %d meshes, %d textures, %d programs\n",
		len(world.Report.Meshes), len(world.Report.Textures), len(world.Report.Programs))
	return sb.String()
}
