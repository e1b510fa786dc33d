package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/oomph-ac/protocontroller/controller"
	"github.com/oomph-ac/protocontroller/ebitenport"
	"github.com/oomph-ac/protocontroller/input"
	"github.com/oomph-ac/protocontroller/replay"
	"github.com/oomph-ac/protocontroller/settings"
	"github.com/oomph-ac/protocontroller/world"
	"github.com/sirupsen/logrus"
)

// The following program opens a window and drives a controller in a level with the keyboard and mouse.
func main() {
	config := flag.String("config", "config.toml", "controller settings (.toml or .yml)")
	levelPath := flag.String("level", "", "level to load (.yml or .tmx)")
	debug := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	log.Level = logrus.InfoLevel
	if *debug {
		log.Level = logrus.DebugLevel
	}

	if *levelPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: protoplay -level <level> [-config <config>]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	s := settings.DefaultSettings()
	if _, err := os.Stat(*config); err == nil {
		if s, err = settings.Load(*config); err != nil {
			log.Fatalf("error loading config: %v", err)
		}
	} else {
		log.Infof("%s not found, using default settings", *config)
	}
	level, err := world.LoadLevel(*levelPath)
	if err != nil {
		log.Fatalf("error loading level: %v", err)
	}

	delta := 1 / float32(ebiten.DefaultTPS)
	w := world.New(log, delta)
	level.Populate(w)
	conf := world.DefaultBodyConfig()
	conf.Position = level.Spawn
	conf.Yaw = mgl32.DegToRad(level.SpawnYaw)
	body := w.NewBody(conf)

	actions := input.NewActionMap(replay.ActionNames(s)...)
	c := controller.New(log, s, body, body, actions)
	c.Ready()

	in := ebitenport.NewInput(ebitenport.Ebiten{}, actions, ebitenport.DefaultBindings(s.Actions))
	ebiten.SetWindowSize(1280, 720)
	ebiten.SetWindowTitle("protoplay - " + level.Name)
	if err := ebiten.RunGame(ebitenport.NewGame(c, body, in, delta)); err != nil {
		log.Fatalf("error running game: %v", err)
	}
}
