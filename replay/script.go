package replay

import (
	"os"

	"github.com/oomph-ac/protocontroller/oerror"
	"gopkg.in/yaml.v3"
)

// Script is a scripted input session. Frames are played in order; each frame lasts a number of ticks.
type Script struct {
	// TickRate is the number of physics ticks per second.
	TickRate int `yaml:"tick_rate"`
	// Unregistered lists actions left out of the input system, to run the controller with missing
	// bindings.
	Unregistered []string `yaml:"unregistered"`
	// Inert runs the controller in inert mode: it is initialised but ignores ticks and input.
	Inert bool `yaml:"inert"`

	Frames []ScriptFrame `yaml:"frames"`
}

// ScriptFrame is a span of ticks with a fixed input.
type ScriptFrame struct {
	Ticks int `yaml:"ticks"`
	// Hold lists actions held for the duration of this frame only.
	Hold []string `yaml:"hold"`
	// Press lists actions pressed at the start of the frame. They stay held until a later frame
	// releases them.
	Press []string `yaml:"press"`
	// Release lists actions released at the start of the frame, before Press is applied.
	Release []string `yaml:"release"`
	// Mouse is the relative mouse movement delivered on every tick of the frame.
	Mouse [2]float32 `yaml:"mouse"`
}

// Validate checks that the script can be played.
func (s Script) Validate() error {
	if s.TickRate <= 0 {
		return oerror.New("tick rate must be positive, got %d", s.TickRate)
	}
	for i, f := range s.Frames {
		if f.Ticks <= 0 {
			return oerror.New("frame %d: ticks must be positive, got %d", i, f.Ticks)
		}
	}
	return nil
}

// Ticks returns the total number of ticks in the script.
func (s Script) Ticks() int {
	var n int
	for _, f := range s.Frames {
		n += f.Ticks
	}
	return n
}

// LoadScript reads and validates a YAML script.
func LoadScript(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, oerror.New("unable to read script %s: %w", path, err)
	}
	s := Script{TickRate: 60}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Script{}, oerror.New("unable to decode script %s: %w", path, err)
	}
	if err := s.Validate(); err != nil {
		return Script{}, oerror.New("script %s: %w", path, err)
	}
	return s, nil
}
