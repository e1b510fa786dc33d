package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/protocontroller/oerror"
	"github.com/oomph-ac/protocontroller/replay"
	"github.com/oomph-ac/protocontroller/settings"
	"github.com/oomph-ac/protocontroller/worker"
	"github.com/oomph-ac/protocontroller/world"
	"github.com/sirupsen/logrus"
)

type options struct {
	config string
	level  string
	script string
	frames string
	watch  bool
	debug  bool
	inert  bool
}

// The following program replays a scripted input session against a level and reports the resulting
// movement, optionally re-running it whenever one of the input files changes.
func main() {
	var o options
	flag.StringVar(&o.config, "config", "config.toml", "controller settings (.toml or .yml), created with defaults if missing")
	flag.StringVar(&o.level, "level", "", "level to load (.yml or .tmx)")
	flag.StringVar(&o.script, "script", "", "replay script (.yml)")
	flag.StringVar(&o.frames, "frames", "", "write the frame log to this file")
	flag.BoolVar(&o.watch, "watch", false, "re-run the replay when the config, level or script change")
	flag.BoolVar(&o.debug, "v", false, "enable debug logging")
	flag.BoolVar(&o.inert, "inert", false, "run the controller in inert mode")
	flag.Parse()

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true}
	log.Level = logrus.InfoLevel
	if o.debug {
		log.Level = logrus.DebugLevel
	}

	if o.level == "" || o.script == "" {
		fmt.Fprintln(os.Stderr, "Usage: protocontroller -level <level> -script <script> [-config <config>] [-watch]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
			log.Errorf("unable to initialise sentry: %v", err)
		}
		defer sentry.Flush(time.Second * 5)
	}

	if os.Getenv("PPROF_ENABLED") != "" {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr("localhost:8080"))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	if _, err := os.Stat(o.config); os.IsNotExist(err) {
		if err := settings.SaveDefault(o.config); err != nil {
			log.Fatalf("error creating config: %v", err)
		}
		log.Infof("wrote default settings to %s", o.config)
	}

	if err := runOnce(log, o); err != nil {
		log.Error(err)
		if !o.watch {
			os.Exit(1)
		}
	}
	if !o.watch {
		return
	}

	if err := watchLoop(log, o); err != nil {
		log.Fatalf("error watching files: %v", err)
	}
}

// runOnce loads every input file and plays the script.
func runOnce(log *logrus.Logger, o options) (err error) {
	defer func() {
		if v := recover(); v != nil {
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("level", o.level)
				scope.SetTag("script", o.script)
			})
			hub.Recover(v)
			hub.Flush(time.Second * 5)
			err = oerror.New("replay panicked: %v", v)
		}
	}()

	s, err := settings.Load(o.config)
	if err != nil {
		return err
	}
	level, err := world.LoadLevel(o.level)
	if err != nil {
		return err
	}
	script, err := replay.LoadScript(o.script)
	if err != nil {
		return err
	}
	if o.inert {
		script.Inert = true
	}

	start := time.Now()
	res, err := replay.Run(log, s, level, script)
	if err != nil {
		return err
	}

	if o.frames != "" {
		f, err := os.Create(o.frames)
		if err != nil {
			return oerror.New("unable to create frame log: %w", err)
		}
		defer f.Close()
		if err := res.WriteLog(f); err != nil {
			return oerror.New("unable to write frame log: %w", err)
		}
	}

	end := replay.Frame{}
	if len(res.Frames) > 0 {
		end = res.Frames[len(res.Frames)-1]
	}
	log.WithFields(logrus.Fields{
		"ticks":  len(res.Frames),
		"digest": res.Digest,
		"took":   time.Since(start),
	}).Infof("replay finished at %v", end.Position)
	log.WithFields(logrus.Fields{
		"jumps":    res.Stats.Jumps,
		"crouches": res.Stats.Crouches,
		"noclip":   res.Stats.NoclipToggle,
		"air":      res.Stats.AirTicks,
	}).Infof("speed mean=%.2f median=%.2f peak=%.2f dev=%.2f",
		res.Stats.MeanSpeed, res.Stats.MedianSpeed, res.Stats.PeakSpeed, res.Stats.SpeedDeviation)
	return nil
}

// watchLoop re-runs the replay on a single worker whenever an input file changes, until interrupted.
func watchLoop(log *logrus.Logger, o options) error {
	w, err := newWatcher(o.config, o.level, o.script)
	if err != nil {
		return err
	}
	defer w.Close()

	pool := worker.New(1, 1)
	defer pool.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	log.Info("watching for changes, press Ctrl+C to stop")

	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			log.WithField("file", name).Info("change detected, replaying")
			// A run already waiting in the queue will pick up this change as well.
			pool.TrySubmit(func() {
				if err := runOnce(log, o); err != nil {
					log.Error(err)
				}
			})
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watcher error: %v", err)
		case <-interrupt:
			return nil
		}
	}
}
