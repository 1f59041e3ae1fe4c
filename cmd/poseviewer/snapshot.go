package main

import (
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Carmen-Shannon/oxy-pose/engine"
	"github.com/Carmen-Shannon/oxy-pose/engine/camera"
	"github.com/Carmen-Shannon/oxy-pose/engine/loop"
	"github.com/Carmen-Shannon/oxy-pose/engine/renderer/software"
	"github.com/Carmen-Shannon/oxy-pose/engine/viewport"
	"github.com/Carmen-Shannon/oxy-pose/internal/config"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/spf13/cobra"
	"golang.org/x/image/bmp"
)

type snapshotOptions struct {
	frames int
	orbit  float32
	out    string
}

func newSnapshotCommand(cfg config.Config, flags *viewerFlags) *cobra.Command {
	opts := snapshotOptions{frames: 1, out: "pose.png"}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the pose to a PNG or BMP file without a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSize(flags.width, flags.height); err != nil {
				return err
			}
			if err := snapshot(cfg, flags.pose, flags.width, flags.height, flags.profile, flags.logger(cmd), opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.out)
			return nil
		},
	}
	cmd.Flags().IntVar(&opts.frames, "frames", opts.frames, "Frames to render before capturing")
	cmd.Flags().Float32Var(&opts.orbit, "orbit", 0, "Camera azimuth around the figure in degrees")
	cmd.Flags().StringVar(&opts.out, "out", opts.out, "Output file, .png or .bmp")
	return cmd
}

// snapshot renders the pose through the software host and writes the last frame.
func snapshot(cfg config.Config, pose string, width, height int, profile bool, logger *log.Logger, opts snapshotOptions) error {
	encode, err := encoderFor(opts.out)
	if err != nil {
		return err
	}
	if opts.frames < 1 {
		opts.frames = 1
	}

	sched := loop.NewScheduler()
	controller := append(controllerOptions(cfg), camera.WithAzimuth(mgl32.DegToRad(opts.orbit)))
	v, err := engine.Activate(viewport.NewStaticContainer(width, height), pose,
		engine.WithHost(software.NewHost(software.WithLogger(logger))),
		engine.WithScheduler(sched),
		engine.WithLogger(logger),
		engine.WithProfiling(profile),
		engine.WithControllerOptions(controller...),
	)
	if err != nil {
		return err
	}
	defer v.Deactivate()

	fps := cfg.FPS
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	now := time.Now()
	for i := range opts.frames {
		sched.Tick(now.Add(time.Duration(i) * interval))
	}

	surface, ok := v.Surface().(*software.Surface)
	if !ok {
		return fmt.Errorf("unexpected surface type %T", v.Surface())
	}
	return writeImage(opts.out, surface.Snapshot(), encode)
}

type encoder func(f *os.File, img image.Image) error

func encoderFor(path string) (encoder, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return func(f *os.File, img image.Image) error { return png.Encode(f, img) }, nil
	case ".bmp":
		return func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (use .png or .bmp)", filepath.Ext(path))
	}
}

func writeImage(path string, img image.Image, encode encoder) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
