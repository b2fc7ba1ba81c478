// SPDX-License-Identifier: MIT

// Command fwviz runs Floyd–Warshall on a graph and replays the recorded
// steps, either as status lines in the terminal or as a frame stream for a
// browser renderer.
//
// Usage:
//
//	fwviz [-config fwviz.yaml] [-preset simple | -graph g.json] [-source A -target D]
//	      [-speed 50] [-instant] [-serve] [-addr :8080] [-export out.yaml]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/katalvlaran/fwviz/config"
	"github.com/katalvlaran/fwviz/core"
	"github.com/katalvlaran/fwviz/engine"
	"github.com/katalvlaran/fwviz/matrix"
	"github.com/katalvlaran/fwviz/server"
)

type options struct {
	configPath string
	preset     string
	graphPath  string
	source     string
	target     string
	speed      int
	instant    bool
	serve      bool
	addr       string
	exportPath string
}

func main() {
	var o options
	flag.StringVar(&o.configPath, "config", "", "configuration file (.yaml, .yml or .toml)")
	flag.StringVar(&o.preset, "preset", "", "built-in graph: "+strings.Join(core.PresetNames(), ", "))
	flag.StringVar(&o.graphPath, "graph", "", "graph document (.json, .yaml)")
	flag.StringVar(&o.source, "source", "", "source node of the highlighted path")
	flag.StringVar(&o.target, "target", "", "target node of the highlighted path")
	flag.IntVar(&o.speed, "speed", 0, "playback speed 1..100 (default from config)")
	flag.BoolVar(&o.instant, "instant", false, "skip the animation and print the result")
	flag.BoolVar(&o.serve, "serve", false, "serve the HTTP API and websocket frame stream")
	flag.StringVar(&o.addr, "addr", "", "listen address for -serve (default from config)")
	flag.StringVar(&o.exportPath, "export", "", "write the graph document to this file and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, o, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "fwviz:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o options, out io.Writer) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	applyFlags(cfg, o)

	log, closer, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closer.Close()

	sess := engine.New(
		engine.WithLogger(log),
		engine.WithSpeed(cfg.Playback.Speed),
		engine.WithAutoplay(cfg.AutoplayEnabled() && !o.instant),
		engine.WithCanvas(cfg.Canvas),
	)
	defer sess.Close()

	if err := loadGraph(sess, cfg.Graph); err != nil {
		return err
	}
	sess.SetSelection(cfg.Graph.Source, cfg.Graph.Target)

	if o.exportPath != "" {
		return export(sess.Export(), o.exportPath)
	}
	if o.serve {
		log.Info("serving", "addr", cfg.Server.Addr, "nodes", sess.Graph().Order(), "edges", sess.Graph().Size())
		if sess.Graph().Order() > 0 {
			sess.Run()
		}
		return server.New(sess, cfg.Server, log).ListenAndServe(ctx)
	}

	return animate(ctx, sess, o.instant, out, log)
}

func applyFlags(cfg *config.Config, o options) {
	if o.preset != "" {
		cfg.Graph.Preset, cfg.Graph.File = o.preset, ""
	}
	if o.graphPath != "" {
		cfg.Graph.File, cfg.Graph.Preset = o.graphPath, ""
	}
	if o.source != "" {
		cfg.Graph.Source = o.source
	}
	if o.target != "" {
		cfg.Graph.Target = o.target
	}
	if o.speed != 0 {
		cfg.Playback.Speed = o.speed
	}
	if o.addr != "" {
		cfg.Server.Addr = o.addr
	}
	if cfg.Graph.Preset == "" && cfg.Graph.File == "" {
		cfg.Graph.Preset = core.PresetSimple
	}
}

func loadGraph(sess *engine.Session, g config.GraphConfig) error {
	if g.File != "" {
		doc, err := core.ReadDocument(g.File)
		if err != nil {
			return err
		}
		sess.Import(doc)
		return nil
	}

	return sess.LoadPreset(g.Preset)
}

func export(doc core.Document, path string) error {
	var (
		b   []byte
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		b, err = doc.YAML()
	default:
		b, err = doc.JSON()
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, b, 0o644)
}

// animate prints one status line per frame until the trace finishes.
func animate(ctx context.Context, sess *engine.Session, instant bool, out io.Writer, log *slog.Logger) error {
	finished := make(chan struct{}, 1)
	unsubscribe := sess.Subscribe(func(f engine.Frame) {
		if f.Kind == "" {
			return
		}
		if !instant {
			fmt.Fprintf(out, "[%d/%d] %s\n", f.Index+1, f.Total, f.Status)
		}
		if f.State == "finished" {
			select {
			case finished <- struct{}{}:
			default:
			}
		}
	})
	defer unsubscribe()

	res := sess.Run()
	if res == nil {
		return errors.New("graph has no nodes")
	}
	ctrl := sess.Controller()
	if instant {
		if err := ctrl.SkipToEnd(); err != nil {
			return err
		}
	} else if err := ctrl.Play(); err != nil {
		// Autoplay already started it.
		log.Debug("play", "err", err)
	}

	select {
	case <-finished:
	case <-ctx.Done():
		return ctx.Err()
	}

	fmt.Fprintf(out, "\nvertices: %s\n", strings.Join(res.Index.IDs(), " "))
	fmt.Fprint(out, res.Dist.String())
	if path := sess.Path(); path != nil {
		src, dst := sess.Selection()
		if d, ok := sess.Distance(); ok && len(path) > 0 {
			fmt.Fprintf(out, "shortest %s → %s: %s (%s)\n", src, dst, strings.Join(path, " → "), matrix.FormatDistance(d))
		} else {
			fmt.Fprintf(out, "no path from %s to %s\n", src, dst)
		}
	}
	if cyc := res.NegativeCycle(); len(cyc) > 0 {
		fmt.Fprintf(out, "negative cycle through: %s\n", strings.Join(cyc, " "))
	}

	return nil
}
