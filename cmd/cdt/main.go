// Command cdt triangulates a point file.
//
//	cdt -in points.txt -out mesh.txt -png mesh.png
package main

import (
	"flag"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/plan-systems/klog"

	"github.com/hajimehoshi/go-cdt"
	"github.com/hajimehoshi/go-cdt/pointfile"
	"github.com/hajimehoshi/go-cdt/render"
)

type config struct {
	in     string
	out    string
	png    string
	svg    string
	size   int
	maxOps int
	check  bool
}

func main() {
	fset := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	klog.InitFlags(fset)
	fset.Set("logtostderr", "true")
	klog.SetFormatter(&klog.FmtConstWidth{
		FileNameCharWidth: 16,
		UseColor:          true,
	})

	var cfg config
	fset.StringVar(&cfg.in, "in", "", "input point file (default stdin)")
	fset.StringVar(&cfg.out, "out", "", "output point file (default stdout)")
	fset.StringVar(&cfg.png, "png", "", "write a PNG picture of the result")
	fset.StringVar(&cfg.svg, "svg", "", "write an SVG picture of the result")
	fset.IntVar(&cfg.size, "size", 512, "picture size in pixels")
	fset.IntVar(&cfg.maxOps, "max-ops", 0, "stop after this many insertions and constraints (0: no limit)")
	fset.BoolVar(&cfg.check, "check", false, "verify the mesh adjacency")
	fset.Parse(os.Args[1:])

	err := run(&cfg)
	klog.Flush()
	if err != nil {
		klog.Errorf("%v", err)
		klog.Flush()
		os.Exit(1)
	}
}

func run(cfg *config) error {
	var r io.Reader = os.Stdin
	if cfg.in != "" {
		f, err := os.Open(cfg.in)
		if err != nil {
			return errors.Wrap(err, "cdt: opening input")
		}
		defer f.Close()
		r = f
	}
	doc, err := pointfile.Parse(r)
	if err != nil {
		return err
	}

	t := cdt.NewTriangulator(cdt.Options{
		MaxOperations: cfg.maxOps,
		CheckMesh:     cfg.check,
	})
	t.AddPoints(doc.Points...)
	for _, c := range doc.Constraints {
		t.AddConstraint(c.A, c.B)
	}
	res, err := t.Triangulate()
	if err != nil {
		return err
	}
	klog.Infof("%d points, %d triangles, %d unresolved constraints", len(res.Points), len(res.Triangles), len(res.Unresolved))
	if !res.Complete {
		klog.Warningf("stopped after %d operations", cfg.maxOps)
	}

	var w io.Writer = os.Stdout
	if cfg.out != "" {
		f, err := os.Create(cfg.out)
		if err != nil {
			return errors.Wrap(err, "cdt: creating output")
		}
		defer f.Close()
		w = f
	}
	if err := pointfile.Write(w, res); err != nil {
		return err
	}

	opts := render.Options{Size: cfg.size}
	if cfg.png != "" {
		if err := render.PNG(cfg.png, res, opts); err != nil {
			return err
		}
	}
	if cfg.svg != "" {
		f, err := os.Create(cfg.svg)
		if err != nil {
			return errors.Wrap(err, "cdt: creating SVG")
		}
		defer f.Close()
		if err := render.SVG(f, res, opts); err != nil {
			return err
		}
	}
	return nil
}
