package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/Carmen-Shannon/oxy-pose/engine"
	"github.com/Carmen-Shannon/oxy-pose/engine/loop"
	"github.com/Carmen-Shannon/oxy-pose/engine/renderer"
	"github.com/Carmen-Shannon/oxy-pose/engine/scene"
	"github.com/Carmen-Shannon/oxy-pose/engine/viewport"
	"github.com/Carmen-Shannon/oxy-pose/engine/window"
	"github.com/Carmen-Shannon/oxy-pose/internal/config"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spf13/cobra"
)

const fallbackNotice = "3D preview unavailable: no GPU surface could be created on this system."

func newViewCommand(cfg config.Config, flags *viewerFlags) *cobra.Command {
	fps := cfg.FPS
	uncapped := false
	antialias := true
	forceSoftware := cfg.ForceSoftwareAdapter

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the pose viewer window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkSize(flags.width, flags.height); err != nil {
				return err
			}
			logger := flags.logger(cmd)

			win, err := window.NewWindow(windowOptions(cfg, flags)...)
			if err != nil {
				logger.Printf("[poseviewer] %v", err)
				fmt.Fprintln(cmd.OutOrStdout(), fallbackNotice)
				return nil
			}
			defer win.Close()

			presentMode := renderer.PresentModeVSync
			if uncapped {
				presentMode = renderer.PresentModeUncapped
			}
			msaa := renderer.MSAAOff
			if antialias {
				msaa = renderer.MSAA4x
			}
			sched := loop.NewScheduler()
			v, err := engine.Activate(win, flags.pose,
				engine.WithHost(renderer.NewHost(
					renderer.WithPresentMode(presentMode),
					renderer.WithMSAA(msaa),
					renderer.WithForceSoftwareAdapter(forceSoftware),
					renderer.WithLogger(logger),
				)),
				engine.WithScheduler(sched),
				engine.WithLogger(logger),
				engine.WithProfiling(flags.profile),
				engine.WithControllerOptions(controllerOptions(cfg)...),
			)
			if errors.Is(err, viewport.ErrSurfaceAcquisition) {
				logger.Printf("[poseviewer] %v", err)
				fmt.Fprintln(cmd.OutOrStdout(), fallbackNotice)
				return nil
			}
			if err != nil {
				return err
			}
			defer v.Deactivate()

			bindInput(win, v)
			win.SetUpdateCallback(frameTicker(sched, fps))
			win.ProcessMessages()
			return nil
		},
	}
	cmd.Flags().IntVar(&fps, "fps", fps, "Maximum frames per second")
	cmd.Flags().BoolVar(&uncapped, "uncapped", false, "Present without waiting for vertical blank")
	cmd.Flags().BoolVar(&antialias, "msaa", antialias, "Smooth edges with 4x multisampling")
	cmd.Flags().BoolVar(&forceSoftware, "force-software-adapter", forceSoftware, "Use a CPU fallback GPU adapter")
	return cmd
}

// windowOptions sizes the view window from the flags and bounds how far it
// can be shrunk from the config.
func windowOptions(cfg config.Config, flags *viewerFlags) []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle("Pose Viewer - " + scene.PoseKey(flags.pose).Resolve().String()),
		window.WithSize(flags.width, flags.height),
		window.WithMinSize(cfg.MinWidth, cfg.MinHeight),
	}
}

// bindInput routes window events to the viewport. Number keys select poses in
// the order listed by scene.PoseKeys.
func bindInput(win window.Window, v *engine.Viewport) {
	win.SetResizeCallback(v.NotifyResize)
	win.SetDragCallback(v.Drag)
	win.SetScrollCallback(v.Scroll)

	poses := scene.PoseKeys()
	win.SetKeyDownCallback(func(keyCode uint32) {
		i := int(glfw.Key(keyCode) - glfw.Key1)
		if i >= 0 && i < len(poses) {
			v.SetPoseKey(poses[i].String())
		}
	})
}

// frameTicker returns a message loop callback that ticks the scheduler at most
// fps times per second.
func frameTicker(sched *loop.Scheduler, fps int) func() {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	var last time.Time
	return func() {
		now := time.Now()
		if now.Sub(last) < interval {
			return
		}
		last = now
		sched.Tick(now)
	}
}
