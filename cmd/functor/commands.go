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
	"text/tabwriter"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	functor "github.com/functor-dev/functor"
	"github.com/functor-dev/functor/geometry"
	"github.com/functor-dev/functor/internal/project"
	"github.com/functor-dev/functor/internal/watch"
	"github.com/functor-dev/functor/render"
)

// newFlagSet returns a flag set for a subcommand that reports to stderr.
func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet("functor "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

// runInit records the template in functor.json. The pre-flight check has
// already required the file, so an existing project is reported rather
// than overwritten.
func runInit(e *env, args []string) error {
	fs := newFlagSet(e, "init")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: init takes exactly one template name", errUsage)
	}
	template := fs.Arg(0)

	err := project.Init(e.dir, template)
	switch {
	case errors.Is(err, project.ErrAlreadyInitialized):
		m, lerr := project.Load(e.dir)
		if lerr != nil {
			return lerr
		}
		fmt.Fprintf(e.stdout, "%s is already a functor project (template %q); template %q not applied\n",
			e.dir, m.Template, template)
		return nil
	case err != nil:
		return err
	}
	fmt.Fprintf(e.stdout, "initialized %s with template %q\n", e.dir, template)
	return nil
}

// runBuild loads the metadata, writes the build manifest and prints a
// summary of the scene.
func runBuild(e *env, args []string) error {
	fs := newFlagSet(e, "build")
	if err := parse(fs, args); err != nil {
		return err
	}

	meta, err := project.Load(e.dir)
	if err != nil {
		return err
	}

	scene, err := previewScene()
	if err != nil {
		return err
	}
	man := project.NewManifest(e.dir, meta)
	man.Shapes = summarize(scene)
	path, err := project.WriteManifest(e.dir, man)
	if err != nil {
		return err
	}

	fmt.Fprintf(e.stdout, "built %s", man.Name)
	if man.Version != "" {
		fmt.Fprintf(e.stdout, " %s", man.Version)
	}
	if man.Template != "" {
		fmt.Fprintf(e.stdout, " (template %s)", man.Template)
	}
	fmt.Fprintln(e.stdout)

	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  SHAPE\tVERTICES\tTRIANGLES\tBYTES")
	for _, s := range man.Shapes {
		fmt.Fprintf(tw, "  %s\t%d\t%d\t%d\n", s.Name, s.Vertices, s.Triangles, s.Bytes)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(e.stdout, "manifest: %s\n", path)
	return nil
}

// developOptions are the flags of the develop command.
type developOptions struct {
	backend  string
	frames   int
	width    uint
	height   uint
	watch    bool
	debounce time.Duration
}

// runDevelop renders the preview scene, and with --watch renders it again
// after every change in the project directory until interrupted.
func runDevelop(e *env, args []string) error {
	var opts developOptions
	fs := newFlagSet(e, "develop")
	fs.StringVar(&opts.backend, "backend", "noop", "GPU backend: noop or vulkan")
	fs.IntVar(&opts.frames, "frames", 60, "frames per render; 0 renders until interrupted (needs a positive value with --watch)")
	fs.UintVar(&opts.width, "width", render.DefaultTargetWidth, "target width")
	fs.UintVar(&opts.height, "height", render.DefaultTargetHeight, "target height")
	fs.BoolVar(&opts.watch, "watch", false, "re-render when project files change")
	fs.DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "quiet period before a change re-renders")
	if err := parse(fs, args); err != nil {
		return err
	}

	backend, err := render.ParseBackend(opts.backend)
	if err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	if opts.watch && opts.frames <= 0 {
		return fmt.Errorf("%w: --watch needs a positive --frames", errUsage)
	}
	meta, err := project.Load(e.dir)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dev, err := render.OpenDevice(backend)
	if err != nil {
		return err
	}
	defer dev.Close()

	gctx, err := dev.NewContext()
	if err != nil {
		return err
	}
	defer gctx.Destroy()

	fmt.Fprintf(e.stdout, "developing %s on %s (%s)\n", meta.DisplayName(e.dir), backend, dev.AdapterName())

	var w *watch.Watcher
	if opts.watch {
		w, err = watch.New(e.dir,
			watch.WithDebounce(opts.debounce),
			watch.WithIgnore(isBuildOutput(e.dir)),
		)
		if err != nil {
			return err
		}
		defer w.Close()
	}

	named, err := previewScene()
	if err != nil {
		return err
	}
	scene := shapes(named)
	for pass := 1; ; pass++ {
		if err := renderScene(ctx, e, gctx, scene, opts); err != nil {
			if render.IsCanceled(err) {
				return nil
			}
			return err
		}
		if w == nil {
			return nil
		}

		fmt.Fprintf(e.stdout, "watching %s for changes (Ctrl+C to stop)\n", e.dir)
		select {
		case <-ctx.Done():
			return nil
		case c, ok := <-w.Changes():
			if !ok {
				return nil
			}
			functor.Logger().Info("develop: change detected",
				slog.Int("pass", pass),
				slog.Int("paths", len(c.Paths)),
				slog.String("first", c.Paths[0]))
			if _, err := project.Load(e.dir); err != nil {
				// Keep watching; the next change may repair functor.json.
				fmt.Fprintf(e.stderr, "functor develop: %v\n", err)
			}
		}
	}
}

// renderScene renders opts.frames frames of scene. Shape resources persist
// in gctx between calls.
func renderScene(ctx context.Context, e *env, gctx *render.HALContext, scene []geometry.Geometry, opts developOptions) error {
	bar := newProgress(e.stderr, opts.frames)
	var drawn, skipped int

	r, err := render.NewRenderer(gctx,
		render.WithTargetSize(uint32(opts.width), uint32(opts.height)),
		render.WithFrameCallback(func(s render.FrameStats) {
			drawn += s.Drawn
			skipped += s.Skipped
			if bar != nil {
				_ = bar.Add(1)
			}
		}),
	)
	if err != nil {
		return err
	}
	defer r.Destroy()
	r.Add(scene...)

	start := time.Now()
	err = r.Run(ctx, opts.frames)
	if bar != nil {
		_ = bar.Close()
	}
	if err != nil && !render.IsCanceled(err) {
		return err
	}

	stats := gctx.Stats()
	fmt.Fprintf(e.stdout, "rendered %d frames in %s (%d draws, %d skipped shapes, %d bytes uploaded)\n",
		r.Frames(), time.Since(start).Round(time.Millisecond), drawn, skipped, stats.BytesUploaded)
	return err
}

// newProgress returns a frame progress bar when w is a terminal.
func newProgress(w io.Writer, frames int) *progressbar.ProgressBar {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	total := frames
	if total <= 0 {
		total = -1
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("rendering"),
		progressbar.OptionClearOnFinish(),
	)
}

// isBuildOutput reports paths under the build directory, which build
// itself writes.
func isBuildOutput(dir string) func(string) bool {
	buildDir := filepath.Join(dir, project.BuildDir)
	return func(path string) bool {
		return path == buildDir || strings.HasPrefix(path, buildDir+string(filepath.Separator))
	}
}
