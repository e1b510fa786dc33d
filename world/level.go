package world

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/protocontroller/oerror"
	"gopkg.in/yaml.v3"
)

// Level is the static geometry of a map and the spawn point of the character.
type Level struct {
	Name  string
	Boxes []Box
	// Spawn is the position of the character's feet when it enters the level.
	Spawn mgl32.Vec3
	// SpawnYaw is the initial rotation of the character around world-up in degrees.
	SpawnYaw float32
}

// Populate adds the geometry of the level to the world.
func (l Level) Populate(w *World) {
	for _, b := range l.Boxes {
		w.AddBox(b)
	}
	w.log.WithField("level", l.Name).Infof("loaded %d boxes", len(l.Boxes))
}

type levelFile struct {
	Spawn    [3]float32 `yaml:"spawn"`
	SpawnYaw float32    `yaml:"spawn_yaw"`
	Boxes    []boxFile  `yaml:"boxes"`
}

type boxFile struct {
	Name  string     `yaml:"name"`
	Min   [3]float32 `yaml:"min"`
	Max   [3]float32 `yaml:"max"`
	Layer uint32     `yaml:"layer"`
	// Slope tilts the surface normal of the box by the given angle in degrees. The surface rises toward -Z.
	Slope float32 `yaml:"slope"`
}

// LoadLevel reads a level from a YAML or TMX file, picked by the file extension.
func LoadLevel(path string) (Level, error) {
	if strings.EqualFold(filepath.Ext(path), ".tmx") {
		return LoadTiled(os.DirFS(filepath.Dir(path)), filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, oerror.New("unable to read level %s: %w", path, err)
	}
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return Level{}, oerror.New("unable to decode level %s: %w", path, err)
	}

	l := Level{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Spawn:    mgl32.Vec3(f.Spawn),
		SpawnYaw: f.SpawnYaw,
		Boxes:    make([]Box, 0, len(f.Boxes)),
	}
	for i, b := range f.Boxes {
		if b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2] {
			return Level{}, oerror.New("level %s: box %d has min %v above max %v", path, i, b.Min, b.Max)
		}
		if b.Slope < 0 || b.Slope >= 90 {
			return Level{}, oerror.New("level %s: box %d has slope %v outside [0, 90)", path, i, b.Slope)
		}
		l.Boxes = append(l.Boxes, Box{
			Name:   b.Name,
			BBox:   cube.Box(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2]),
			Layer:  b.Layer,
			Normal: SlopeNormal(b.Slope),
		})
	}
	return l, nil
}

// SlopeNormal returns the normal of a surface tilted by the given angle in degrees that rises toward -Z.
func SlopeNormal(degrees float32) mgl32.Vec3 {
	if degrees == 0 {
		return mgl32.Vec3{}
	}
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), mgl32.Vec3{1, 0, 0}).Rotate(mgl32.Vec3{0, 1, 0})
}
