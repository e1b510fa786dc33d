package ebitenport

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/oomph-ac/protocontroller/controller"
	"github.com/oomph-ac/protocontroller/world"
)

// Game runs a controller inside an ebiten window. Each ebiten tick delivers the polled input events and
// then advances the controller by one physics step.
type Game struct {
	c     *controller.Controller
	body  *world.Body
	in    *Input
	delta float32

	width, height int
}

// NewGame creates a game for a controller driving the given body. delta must match the world step.
func NewGame(c *controller.Controller, body *world.Body, in *Input, delta float32) *Game {
	return &Game{c: c, body: body, in: in, delta: delta, width: 640, height: 360}
}

// Update ...
func (g *Game) Update() error {
	g.Tick(g.in.Poll())
	return nil
}

// Tick delivers the events to the controller and advances it by one step.
func (g *Game) Tick(events []controller.InputEvent) {
	for _, ev := range events {
		g.c.HandleInput(ev)
	}
	g.c.Update(g.delta)
	g.in.SyncCursor()
}

// Draw ...
func (g *Game) Draw(screen *ebiten.Image) {
	ebitenutil.DebugPrint(screen, g.Status())
}

// Layout ...
func (g *Game) Layout(int, int) (int, int) {
	return g.width, g.height
}

// Status returns the debug overlay text.
func (g *Game) Status() string {
	st := g.c.State()
	return fmt.Sprintf(
		"pos %s\nvel %s\nyaw %.1f pitch %.1f\nfloor=%v jumping=%v sprinting=%v crouching=%v noclip=%v\ncoyote %.3f buffer %.3f\nmouse %s\n\nWASD move, space jump, shift sprint, ctrl crouch, N noclip, esc mouse",
		formatVec(g.body.Position()), formatVec(st.Velocity),
		mgl32.RadToDeg(g.body.Yaw()), st.VerticalLookRotation,
		g.body.IsOnFloor(), st.Jumping, st.Sprinting, st.Crouching, st.Noclip,
		st.CoyoteTimer, st.JumpBufferTimer,
		g.in.actions.MouseMode(),
	)
}

func formatVec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X(), v.Y(), v.Z())
}
