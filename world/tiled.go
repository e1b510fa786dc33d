package world

import (
	"io/fs"
	"path"
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lafriks/go-tiled"
	"github.com/oomph-ac/protocontroller/oerror"
)

// tileLayer holds the default vertical extent of the tiles on a named TMX layer. Tile properties "base"
// and "top" override them per tile.
type tileLayer struct {
	base, top float32
}

var tileLayers = map[string]tileLayer{
	"floor":   {base: -1, top: 0},
	"walls":   {base: 0, top: 3},
	"ceiling": {base: 2.2, top: 2.6},
}

// LoadTiled reads a floor-plan level from a Tiled TMX map. The map is viewed from above: tile (x, y)
// covers X in [x, x+1] and Z in [y, y+1], so one tile is one metre. Tiles on the floor, walls and
// ceiling layers become boxes; a "slope" tile property tilts the reported floor normal. The first object
// of the PlayerSpawn group is the spawn point, raised by its "elevation" property.
func LoadTiled(fsys fs.FS, tmxPath string) (Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return Level{}, oerror.New("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth == 0 || levelMap.TileHeight == 0 {
		return Level{}, oerror.New("TMX %s has no tile size", tmxPath)
	}

	l := Level{Name: strings.TrimSuffix(path.Base(tmxPath), path.Ext(tmxPath))}
	for _, layer := range levelMap.Layers {
		defaults, ok := tileLayers[layer.Name]
		if !ok {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}

				base, top, slope := defaults.base, defaults.top, float32(0)
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					props := tilesetTile.Properties
					if len(props.Get("base")) > 0 {
						base = float32(props.GetFloat("base"))
					}
					if len(props.Get("top")) > 0 {
						top = float32(props.GetFloat("top"))
					}
					slope = float32(props.GetFloat("slope"))
				}
				if base >= top {
					return Level{}, oerror.New("TMX %s: tile (%d, %d) on %s has base %v not below top %v", tmxPath, x, y, layer.Name, base, top)
				}

				l.Boxes = append(l.Boxes, Box{
					Name:   layer.Name,
					BBox:   cube.Box(float32(x), base, float32(y), float32(x+1), top, float32(y+1)),
					Normal: SlopeNormal(slope),
				})
			}
		}
	}

	for _, og := range levelMap.ObjectGroups {
		if og.Name != "PlayerSpawn" || len(og.Objects) == 0 {
			continue
		}
		o := og.Objects[0]
		l.Spawn = mgl32.Vec3{
			float32(o.X) / float32(levelMap.TileWidth),
			float32(o.Properties.GetFloat("elevation")),
			float32(o.Y) / float32(levelMap.TileHeight),
		}
		l.SpawnYaw = float32(o.Properties.GetFloat("yaw"))
		break
	}
	return l, nil
}
