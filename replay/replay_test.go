package replay

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/oomph-ac/protocontroller/game"
	"github.com/oomph-ac/protocontroller/oerror"
	"github.com/oomph-ac/protocontroller/settings"
	"github.com/oomph-ac/protocontroller/world"
	"github.com/sirupsen/logrus/hooks/test"
)

func flatLevel(extra ...world.Box) world.Level {
	return world.Level{
		Name:  "flat",
		Boxes: append([]world.Box{{Name: "ground", BBox: cube.Box(-50, -1, -50, 50, 0, 50)}}, extra...),
	}
}

func run(t *testing.T, level world.Level, script Script) Result {
	t.Helper()
	log, _ := test.NewNullLogger()
	res, err := Run(log, settings.DefaultSettings(), level, script)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Frames) != script.Ticks() {
		t.Fatalf("expected %d frames, got %d", script.Ticks(), len(res.Frames))
	}
	return res
}

func last(res Result) Frame {
	return res.Frames[len(res.Frames)-1]
}

func TestWalkAndJump(t *testing.T) {
	script, err := LoadScript(filepath.Join("testdata", "walk.yml"))
	if err != nil {
		t.Fatalf("load script: %v", err)
	}
	res := run(t, flatLevel(), script)

	walked := res.Frames[64]
	if !walked.OnFloor || math.Abs(float64(walked.Velocity.Z()+5)) > 0.01 {
		t.Fatalf("expected to walk forward at base speed, got %v", walked)
	}
	if walked.Position.Z() > -3 {
		t.Fatalf("expected to have walked forward, got %v", walked.Position)
	}

	jumped := res.Frames[65]
	if !jumped.Jumping || jumped.OnFloor || jumped.CoyoteTimer != 0 {
		t.Fatalf("expected to be jumping, got %v", jumped)
	}

	end := last(res)
	if !end.OnFloor || end.Jumping {
		t.Fatalf("expected to have landed, got %v", end)
	}
	// 60 ticks of 10 pixels each.
	if want := -600 * settings.DefaultSettings().Look.MouseSensitivity; math.Abs(float64(end.Yaw-want)) > 1e-3 {
		t.Fatalf("expected mouse to turn the body, got yaw %v", end.Yaw)
	}
	if res.Stats.Jumps != 1 || res.Stats.AirTicks == 0 {
		t.Fatalf("unexpected stats %+v", res.Stats)
	}
	if res.Stats.PeakSpeed < 4.99 || res.Stats.MeanSpeed <= 0 {
		t.Fatalf("unexpected speed stats %+v", res.Stats)
	}
}

func TestSprint(t *testing.T) {
	res := run(t, flatLevel(), Script{TickRate: 60, Frames: []ScriptFrame{
		{Ticks: 5},
		{Ticks: 90, Hold: []string{"move_forward", "move_sprint"}},
	}})

	end := last(res)
	want := -settings.DefaultSettings().Movement.BaseSpeed * settings.DefaultSettings().Movement.SprintMultiplier
	if !end.Sprinting || math.Abs(float64(end.Velocity.Z()-want)) > 0.01 {
		t.Fatalf("expected to sprint at %v, got %v", want, end)
	}
}

func TestCrouchUnderRoof(t *testing.T) {
	roof := world.Box{Name: "roof", BBox: cube.Box(-1, 1.4, -6, 1, 1.6, -2)}
	res := run(t, flatLevel(roof), Script{TickRate: 60, Frames: []ScriptFrame{
		{Ticks: 5},
		{Ticks: 30, Press: []string{"move_crouch"}},
		{Ticks: 45, Hold: []string{"move_forward"}},
		{Ticks: 20, Release: []string{"move_crouch"}},
		{Ticks: 90, Hold: []string{"move_backward"}},
	}})

	under := res.Frames[99]
	if !under.Crouching {
		t.Fatalf("expected to stay crouched under the roof, got %v", under)
	}
	if under.Position.Z() > -2.4 || under.Position.Z() < -5.6 {
		t.Fatalf("expected to be under the roof, got %v", under.Position)
	}
	if under.Height > 1.4 {
		t.Fatalf("expected a crouched collider, got height %v", under.Height)
	}

	end := last(res)
	if end.Crouching || end.Position.Z() < -1.6 {
		t.Fatalf("expected to stand up after leaving the roof, got %v", end)
	}
	if res.Stats.Crouches != 1 {
		t.Fatalf("expected a single crouch, got %d", res.Stats.Crouches)
	}
}

func TestNoclipPassesThroughWalls(t *testing.T) {
	wall := world.Box{Name: "wall", BBox: cube.Box(-5, 0, -3, 5, 3, -2)}
	walk := []ScriptFrame{
		{Ticks: 5},
		{Ticks: 60, Hold: []string{"move_forward"}},
	}

	blocked := last(run(t, flatLevel(wall), Script{TickRate: 60, Frames: walk}))
	if !game.Float32ApproxEq(blocked.Position.Z(), -1.6) {
		t.Fatalf("expected the wall to stop the character, got %v", blocked.Position)
	}

	res := run(t, flatLevel(wall), Script{TickRate: 60, Frames: []ScriptFrame{
		{Ticks: 5},
		{Ticks: 1, Press: []string{"move_noclip"}},
		{Ticks: 60, Release: []string{"move_noclip"}, Hold: []string{"move_forward"}},
	}})
	flying := last(res)
	if !flying.Noclip || flying.Position.Z() > -3.4 {
		t.Fatalf("expected to fly through the wall, got %v", flying)
	}
	if !game.Float32ApproxEq(flying.Position.Y(), 0) {
		t.Fatalf("expected level flight, got %v", flying.Position)
	}
	if res.Stats.NoclipToggle != 1 {
		t.Fatalf("expected a single noclip toggle, got %d", res.Stats.NoclipToggle)
	}
}

func TestMissingActions(t *testing.T) {
	res := run(t, flatLevel(), Script{
		TickRate:     60,
		Unregistered: []string{"move_crouch", "move_noclip"},
		Frames: []ScriptFrame{
			{Ticks: 5},
			{Ticks: 30, Press: []string{"move_crouch", "move_noclip"}},
		},
	})
	end := last(res)
	if end.Crouching || end.Noclip {
		t.Fatalf("expected crouch and noclip to be disabled, got %v", end)
	}
}

func TestInert(t *testing.T) {
	level := flatLevel()
	level.Spawn[1] = 2
	res := run(t, level, Script{TickRate: 60, Inert: true, Frames: []ScriptFrame{
		{Ticks: 30, Hold: []string{"move_forward"}},
	}})
	if end := last(res); end.Position != level.Spawn {
		t.Fatalf("expected an inert controller not to move, got %v", end.Position)
	}
}

func TestDigest(t *testing.T) {
	script := Script{TickRate: 60, Frames: []ScriptFrame{
		{Ticks: 5},
		{Ticks: 30, Hold: []string{"move_forward", "move_left"}, Mouse: [2]float32{3, -2}},
	}}
	a, b := run(t, flatLevel(), script), run(t, flatLevel(), script)
	if a.Digest == "" || a.Digest != b.Digest {
		t.Fatalf("expected a stable digest, got %q and %q", a.Digest, b.Digest)
	}

	var log strings.Builder
	if err := a.WriteLog(&log); err != nil {
		t.Fatalf("write log: %v", err)
	}
	if lines := strings.Count(log.String(), "\n"); lines != len(a.Frames) {
		t.Fatalf("expected a line per frame, got %d", lines)
	}

	script.Frames[1].Hold = []string{"move_forward", "move_right"}
	if c := run(t, flatLevel(), script); c.Digest == a.Digest {
		t.Fatalf("expected different input to change the digest")
	}
}

func TestInvalidScript(t *testing.T) {
	_, err := LoadScript(filepath.Join("testdata", "bad.yml"))
	var cErr *oerror.ControllerError
	if !errors.As(err, &cErr) {
		t.Fatalf("expected a controller error, got %v", err)
	}

	log, _ := test.NewNullLogger()
	if _, err := Run(log, settings.DefaultSettings(), flatLevel(), Script{}); err == nil {
		t.Fatalf("expected a script without a tick rate to be rejected")
	}
}
