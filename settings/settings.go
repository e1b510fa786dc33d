package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/oomph-ac/protocontroller/game"
	"github.com/oomph-ac/protocontroller/oerror"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Settings contains every tunable of a character controller. A controller copies its settings when it is
// created, so changing a Settings value afterwards has no effect on a running session.
type Settings struct {
	Movement     Movement     `toml:"movement" yaml:"movement"`
	Jump         Jump         `toml:"jump" yaml:"jump"`
	Look         Look         `toml:"look" yaml:"look"`
	Capabilities Capabilities `toml:"capabilities" yaml:"capabilities"`
	Actions      Actions      `toml:"actions" yaml:"actions"`
	Physics      Physics      `toml:"physics" yaml:"physics"`
}

// Movement holds the horizontal movement tunables.
type Movement struct {
	// BaseSpeed is the walking speed in metres per second.
	BaseSpeed float32 `toml:"base_speed" yaml:"base_speed"`
	// SprintMultiplier scales BaseSpeed while sprinting.
	SprintMultiplier float32 `toml:"sprint_multiplier" yaml:"sprint_multiplier"`
	// Acceleration is the interpolation rate toward the target velocity while there is movement input.
	Acceleration float32 `toml:"acceleration" yaml:"acceleration"`
	// Deceleration is the interpolation rate toward rest when there is no movement input.
	Deceleration float32 `toml:"deceleration" yaml:"deceleration"`
	// AirControl damps the interpolation rate while airborne.
	AirControl float32 `toml:"air_control" yaml:"air_control"`
	// SlopeMaxAngle is the steepest walkable floor, in degrees.
	SlopeMaxAngle float32 `toml:"slope_max_angle" yaml:"slope_max_angle"`
}

// Jump holds the jump and gravity tunables.
type Jump struct {
	JumpVelocity      float32 `toml:"jump_velocity" yaml:"jump_velocity"`
	GravityMultiplier float32 `toml:"gravity_multiplier" yaml:"gravity_multiplier"`
	// CoyoteTime is how long, in seconds, a jump is still accepted after walking off a ledge.
	CoyoteTime float32 `toml:"coyote_time" yaml:"coyote_time"`
	// JumpBufferTime is how long, in seconds, a jump press is remembered before landing.
	JumpBufferTime float32 `toml:"jump_buffer_time" yaml:"jump_buffer_time"`
}

// Look holds the mouse-look tunables.
type Look struct {
	MouseSensitivity  float32 `toml:"mouse_sensitivity" yaml:"mouse_sensitivity"`
	VerticalLookLimit float32 `toml:"vertical_look_limit" yaml:"vertical_look_limit"`
	InvertY           bool    `toml:"invert_y" yaml:"invert_y"`
}

// Capabilities toggles individual controller features.
type Capabilities struct {
	Movement bool `toml:"movement" yaml:"movement"`
	Jump     bool `toml:"jump" yaml:"jump"`
	Look     bool `toml:"look" yaml:"look"`
	Sprint   bool `toml:"sprint" yaml:"sprint"`
	Crouch   bool `toml:"crouch" yaml:"crouch"`
	Noclip   bool `toml:"noclip" yaml:"noclip"`
}

// Actions names the input actions the controller polls.
type Actions struct {
	MoveForward  string `toml:"move_forward" yaml:"move_forward"`
	MoveBackward string `toml:"move_backward" yaml:"move_backward"`
	MoveLeft     string `toml:"move_left" yaml:"move_left"`
	MoveRight    string `toml:"move_right" yaml:"move_right"`
	Jump         string `toml:"jump" yaml:"jump"`
	Sprint       string `toml:"sprint" yaml:"sprint"`
	Crouch       string `toml:"crouch" yaml:"crouch"`
	Noclip       string `toml:"noclip" yaml:"noclip"`
	// Cancel toggles mouse capture.
	Cancel string `toml:"cancel" yaml:"cancel"`
}

// Physics holds values normally owned by the physics engine.
type Physics struct {
	Gravity float32 `toml:"gravity" yaml:"gravity"`
}

// DefaultSettings returns the default settings of a controller.
func DefaultSettings() Settings {
	s := Settings{}
	s.Movement = Movement{
		BaseSpeed:        5,
		SprintMultiplier: 1.8,
		Acceleration:     15,
		Deceleration:     20,
		AirControl:       0.3,
		SlopeMaxAngle:    40,
	}
	s.Jump = Jump{
		JumpVelocity:      4,
		GravityMultiplier: 1,
		CoyoteTime:        0.15,
		JumpBufferTime:    0.1,
	}
	s.Look = Look{
		MouseSensitivity:  0.1,
		VerticalLookLimit: 90,
	}
	s.Capabilities = Capabilities{
		Movement: true,
		Jump:     true,
		Look:     true,
		Sprint:   true,
		Crouch:   true,
		Noclip:   true,
	}
	s.Actions = Actions{
		MoveForward:  "move_forward",
		MoveBackward: "move_backward",
		MoveLeft:     "move_left",
		MoveRight:    "move_right",
		Jump:         "move_jump",
		Sprint:       "move_sprint",
		Crouch:       "move_crouch",
		Noclip:       "move_noclip",
		Cancel:       "ui_cancel",
	}
	s.Physics.Gravity = game.DefaultGravity
	return s
}

// Validate checks that every value lies in a range the controller can work with.
func (s Settings) Validate() error {
	m := s.Movement
	switch {
	case m.BaseSpeed < 0:
		return oerror.New("movement.base_speed must not be negative, got %v", m.BaseSpeed)
	case m.SprintMultiplier < 0:
		return oerror.New("movement.sprint_multiplier must not be negative, got %v", m.SprintMultiplier)
	case m.Acceleration < 0 || m.Deceleration < 0:
		return oerror.New("movement.acceleration and movement.deceleration must not be negative")
	case m.AirControl < 0 || m.AirControl > 1:
		return oerror.New("movement.air_control must be in [0, 1], got %v", m.AirControl)
	case m.SlopeMaxAngle < 0 || m.SlopeMaxAngle > 90:
		return oerror.New("movement.slope_max_angle must be in [0, 90], got %v", m.SlopeMaxAngle)
	}

	j := s.Jump
	if j.JumpVelocity < 0 || j.GravityMultiplier < 0 || j.CoyoteTime < 0 || j.JumpBufferTime < 0 {
		return oerror.New("jump values must not be negative")
	}

	l := s.Look
	if l.MouseSensitivity < 0.01 || l.MouseSensitivity > 2 {
		return oerror.New("look.mouse_sensitivity must be in [0.01, 2], got %v", l.MouseSensitivity)
	}
	if l.VerticalLookLimit < 70 || l.VerticalLookLimit > 110 {
		return oerror.New("look.vertical_look_limit must be in [70, 110], got %v", l.VerticalLookLimit)
	}
	if s.Physics.Gravity < 0 {
		return oerror.New("physics.gravity must not be negative, got %v", s.Physics.Gravity)
	}

	for name, action := range map[string]string{
		"move_forward":  s.Actions.MoveForward,
		"move_backward": s.Actions.MoveBackward,
		"move_left":     s.Actions.MoveLeft,
		"move_right":    s.Actions.MoveRight,
		"jump":          s.Actions.Jump,
		"sprint":        s.Actions.Sprint,
		"crouch":        s.Actions.Crouch,
		"noclip":        s.Actions.Noclip,
		"cancel":        s.Actions.Cancel,
	} {
		if strings.TrimSpace(action) == "" {
			return oerror.New("actions.%s must not be empty", name)
		}
	}
	return nil
}

// Save writes the settings to the given path, encoded as YAML if the path ends in .yaml or .yml and as
// TOML otherwise.
func Save(path string, s Settings) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = toml.Marshal(s)
	}
	if err != nil {
		return oerror.New("failed encoding settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return oerror.New("failed writing settings file: %w", err)
	}
	return nil
}

// SaveDefault will create and save the default settings file. If the file already exists, it will return an error.
func SaveDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return oerror.New("settings file %s already exists", path)
	}
	return Save(path, DefaultSettings())
}

// Load will load the settings from your settings file, and return an error if the file does not exist.
// Values missing from the file keep their defaults. The loaded settings are validated before they are
// returned.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, oerror.New("error reading settings: %w", err)
	}

	s := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = toml.Unmarshal(data, &s)
	}
	if err != nil {
		return Settings{}, oerror.New("error decoding settings %s: %w", filepath.Base(path), err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings %s: %w", filepath.Base(path), err)
	}
	return s, nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
