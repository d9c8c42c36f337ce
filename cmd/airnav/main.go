package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ayusman/airnav/internal/app"
	"github.com/ayusman/airnav/internal/capture"
	"github.com/ayusman/airnav/internal/engine"
	"github.com/ayusman/airnav/internal/gesture"
	"github.com/ayusman/airnav/internal/nav"
	"github.com/ayusman/airnav/internal/server"
	"github.com/ayusman/airnav/internal/store"
	"github.com/ayusman/airnav/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	device := flag.Int("device", capture.DefaultDeviceID, "camera device id")
	dbFlag := flag.String("db", "", "database path (default ~/.airnav/airnav.db)")
	webFlag := flag.String("web", "", "static files directory (default autodetected)")
	useTray := flag.Bool("tray", false, "show the system tray menu")
	flag.Parse()

	fmt.Println("AirNav - Air Gesture Navigation")

	dbPath := *dbFlag
	if dbPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("Failed to get home directory: %v", err)
		}
		dbPath = filepath.Join(homeDir, ".airnav", "airnav.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// The bridge is the surface gestures are dispatched onto.
	bridge := server.NewBridge()

	engineCfg := engine.DefaultConfig()

	dispatcher, err := nav.NewDispatcher(bridge, nav.Config{
		MirrorX:     true,
		FrameWidth:  engineCfg.SampleWidth,
		FrameHeight: engineCfg.SampleHeight,
	})
	if err != nil {
		log.Fatalf("Failed to build dispatcher: %v", err)
	}

	manager := capture.NewManager(func() capture.VideoSource {
		return capture.NewWebcam(*device, capture.DefaultWidth, capture.DefaultHeight, capture.DefaultFPS)
	})

	eng, err := engine.New(engineCfg, manager, dispatcher)
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}

	a, err := app.New(app.Config{Store: st, Engine: eng, Dispatcher: dispatcher})
	if err != nil {
		log.Fatalf("Failed to build app: %v", err)
	}

	var tr *tray.Tray
	if *useTray {
		tr = tray.New(a.IsEnabled())
	}

	// Inbound UI reports feed the app; the status frame feeds the UI.
	bridge.OnRoute = a.SetRoute
	bridge.OnViewport = a.SetViewport
	bridge.OnToggle = func(enabled bool) {
		if err := a.SetEnabled(enabled); err != nil {
			log.Printf("toggle from UI: %v", err)
		}
		if tr != nil {
			tr.SetEnabled(enabled)
		}
	}
	bridge.StatusFunc = func() any { return a.Status() }

	if tr != nil {
		a.AddGestureListener(func(kind gesture.Kind, route nav.Route, at int64) {
			tr.SetLastGesture(string(kind))
		})
	}

	webDir := *webFlag
	if webDir == "" {
		webDir = findWebDir()
	}
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		App:       a,
		Bridge:    bridge,
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start app: %v", err)
	}
	defer a.Stop()

	fmt.Printf("Starting server on %s\n", *addr)

	if tr == nil {
		go handleSignals(a)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	// With the tray, the server runs in the background and the tray
	// loop owns the main thread.
	go func() {
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	tr.OnToggle(func(enabled bool) {
		if err := a.SetEnabled(enabled); err != nil {
			log.Printf("toggle from tray: %v", err)
		}
	})
	tr.OnSettings(func() {
		log.Printf("settings at http://localhost%s/", *addr)
	})
	tr.OnQuit(func() {
		a.Stop()
	})
	tr.Run()
}

// handleSignals stops the app cleanly on SIGINT or SIGTERM.
func handleSignals(a *app.App) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
	<-ch
	log.Println("shutting down")
	a.Stop()
	os.Exit(0)
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.airnav/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".airnav", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
