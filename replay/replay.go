package replay

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/protocontroller/controller"
	"github.com/oomph-ac/protocontroller/game"
	"github.com/oomph-ac/protocontroller/input"
	"github.com/oomph-ac/protocontroller/internal"
	"github.com/oomph-ac/protocontroller/settings"
	"github.com/oomph-ac/protocontroller/world"
	"github.com/sirupsen/logrus"
	"github.com/zeebo/xxh3"
)

// digestPrecision is the number of decimals frame values are rounded to before hashing, so that digests
// survive small floating point differences between platforms.
const digestPrecision = 4

// Frame is the state of the character after a single tick.
type Frame struct {
	Tick     int
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	// Yaw is the body rotation in degrees and Pitch the camera pitch in degrees.
	Yaw, Pitch float32
	Height     float32

	OnFloor   bool
	Jumping   bool
	Sprinting bool
	Crouching bool
	Noclip    bool

	CoyoteTimer     float32
	JumpBufferTimer float32
}

// String returns the canonical text form of the frame that is fed to the digest.
func (f Frame) String() string {
	p, v := game.RoundVec32(f.Position, digestPrecision), game.RoundVec32(f.Velocity, digestPrecision)
	return fmt.Sprintf("%d pos=%v vel=%v yaw=%v pitch=%v h=%v floor=%v jump=%v sprint=%v crouch=%v noclip=%v coyote=%v buffer=%v",
		f.Tick, p, v,
		game.Round32(f.Yaw, digestPrecision), game.Round32(f.Pitch, digestPrecision), game.Round32(f.Height, digestPrecision),
		f.OnFloor, f.Jumping, f.Sprinting, f.Crouching, f.Noclip,
		game.Round32(f.CoyoteTimer, digestPrecision), game.Round32(f.JumpBufferTimer, digestPrecision),
	)
}

// Stats summarises a replay.
type Stats struct {
	Jumps        int
	Crouches     int
	NoclipToggle int
	AirTicks     int

	// Speeds are horizontal speeds in metres per second.
	MeanSpeed      float64
	MedianSpeed    float64
	PeakSpeed      float64
	SpeedDeviation float64
}

// Result is the outcome of a replay.
type Result struct {
	Frames []Frame
	Stats  Stats
	// Digest is the hex xxh3 hash of the frame log written by WriteLog.
	Digest string
}

// recorder counts controller transitions during a replay.
type recorder struct {
	controller.NopHandler
	stats *Stats
}

func (r recorder) HandleJump(*controller.Controller) {
	r.stats.Jumps++
}

func (r recorder) HandleCrouch(_ *controller.Controller, crouching bool) {
	if crouching {
		r.stats.Crouches++
	}
}

func (r recorder) HandleNoclip(*controller.Controller, bool) {
	r.stats.NoclipToggle++
}

// session holds the collaborators of a running replay.
type session struct {
	c       *controller.Controller
	body    *world.Body
	actions *input.ActionMap
}

// Run plays the script against a controller in a fresh world built from the level and returns a frame
// for every tick.
func Run(log *logrus.Logger, s settings.Settings, level world.Level, script Script) (Result, error) {
	if err := script.Validate(); err != nil {
		return Result{}, err
	}
	if err := s.Validate(); err != nil {
		return Result{}, err
	}
	delta := 1 / float32(script.TickRate)

	w := world.New(log, delta)
	level.Populate(w)
	conf := world.DefaultBodyConfig()
	conf.Position = level.Spawn
	conf.Yaw = mgl32.DegToRad(level.SpawnYaw)
	body := w.NewBody(conf)

	actions := input.NewActionMap()
	for _, name := range ActionNames(s) {
		if !slices.Contains(script.Unregistered, name) {
			actions.Register(name)
		}
	}

	res := Result{Frames: make([]Frame, 0, script.Ticks())}
	sess := session{
		c:       controller.New(log, s, body, body, actions),
		body:    body,
		actions: actions,
	}
	sess.c.Handle(recorder{stats: &res.Stats})
	if script.Inert {
		sess.c.SetMode(controller.ModeInert)
	}
	sess.c.Ready()

	log.WithField("level", level.Name).Infof("replaying %d ticks at %d ticks/s", script.Ticks(), script.TickRate)

	var speeds []float64
	tick := 0
	for i, f := range script.Frames {
		log.Debugf("frame %d: %d ticks hold=%v press=%v release=%v mouse=%v", i, f.Ticks, f.Hold, f.Press, f.Release, f.Mouse)

		for _, name := range f.Release {
			sess.c.HandleInput(actions.Release(name))
		}
		for _, name := range f.Press {
			sess.c.HandleInput(actions.Press(name))
		}
		var held []string
		for _, name := range f.Hold {
			if actions.HasAction(name) && !actions.IsActionPressed(name) {
				held = append(held, name)
			}
			sess.c.HandleInput(actions.Press(name))
		}

		for n := 0; n < f.Ticks; n++ {
			if f.Mouse != [2]float32{} {
				sess.c.HandleInput(actions.Motion(f.Mouse[0], f.Mouse[1]))
			}
			sess.c.Update(delta)
			tick++

			frame := sess.frame(tick)
			res.Frames = append(res.Frames, frame)

			speeds = append(speeds, float64(game.Horizontal(frame.Velocity).Len()))
			if !frame.OnFloor {
				res.Stats.AirTicks++
			}
		}

		for _, name := range held {
			sess.c.HandleInput(actions.Release(name))
		}
	}

	res.Stats.MeanSpeed = game.Mean(speeds)
	res.Stats.MedianSpeed = game.Median(speeds)
	res.Stats.PeakSpeed = game.Max(speeds)
	res.Stats.SpeedDeviation = game.StandardDeviation(speeds)
	res.Digest = res.digest()
	return res, nil
}

// digest hashes the frame log.
func (r Result) digest() string {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)
	buf.Reset()

	r.writeFrames(buf)
	return strconv.FormatUint(xxh3.Hash(buf.Bytes()), 16)
}

// WriteLog writes the text form of every frame, one per line.
func (r Result) WriteLog(w io.Writer) error {
	buf := internal.BufferPool.Get().(*bytes.Buffer)
	defer internal.BufferPool.Put(buf)
	buf.Reset()

	r.writeFrames(buf)
	_, err := w.Write(buf.Bytes())
	return err
}

func (r Result) writeFrames(buf *bytes.Buffer) {
	for _, f := range r.Frames {
		buf.WriteString(f.String())
		buf.WriteByte('\n')
	}
}

func (s session) frame(tick int) Frame {
	st := s.c.State()
	height := st.OriginalHeight
	if capsule, ok := s.body.CollisionShape().(*controller.CapsuleShape); ok {
		height = capsule.Height
	}
	return Frame{
		Tick:            tick,
		Position:        s.body.Position(),
		Velocity:        st.Velocity,
		Yaw:             mgl32.RadToDeg(s.body.Yaw()),
		Pitch:           st.VerticalLookRotation,
		Height:          height,
		OnFloor:         s.body.IsOnFloor(),
		Jumping:         st.Jumping,
		Sprinting:       st.Sprinting,
		Crouching:       st.Crouching,
		Noclip:          st.Noclip,
		CoyoteTimer:     st.CoyoteTimer,
		JumpBufferTimer: st.JumpBufferTimer,
	}
}

// ActionNames returns every action name used by the settings.
func ActionNames(s settings.Settings) []string {
	a := s.Actions
	return []string{a.MoveForward, a.MoveBackward, a.MoveLeft, a.MoveRight, a.Jump, a.Sprint, a.Crouch, a.Noclip, a.Cancel}
}
