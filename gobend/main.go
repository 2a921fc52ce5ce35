package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gobend/pkg/config"
	"github.com/itohio/gobend/pkg/device"
	"github.com/itohio/gobend/pkg/lfo"
	"github.com/itohio/gobend/pkg/midi"
	"github.com/itohio/gobend/pkg/scope"
	"github.com/itohio/gobend/pkg/trace"
	gomidi "gitlab.com/gomidi/midi/v2"
)

func main() {
	var (
		portFlag   = flag.String("p", "", "Serial port override (e.g., COM3 or /dev/ttyACM0)")
		configFlag = flag.String("config", "config.yaml", "Configuration file path")
		mockFlag   = flag.Bool("mock", false, "Use a mocked sink instead of a serial port")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Override serial port if provided via command line
	if *portFlag != "" {
		cfg.Serial.Port = *portFlag
	}

	// Create Fyne application
	application := app.NewWithID("com.itohio.gobend")

	// Create main window
	window := application.NewWindow("MIDI Pitch Bend LFO")
	window.Resize(fyne.NewSize(900, 600))
	window.CenterOnScreen()

	// Create application state
	state := &appState{
		cfg:     cfg,
		cfgPath: *configFlag,
		bounds:  lfo.NewBounds(lfo.DefaultStrength),
		window:  window,
		useMock: *mockFlag,
	}

	// Create toolbar
	toolbar := createToolbar(state)

	// Create scope widget for the emitted stream
	scopeWidget := scope.New(cfg, state.bounds)
	state.scopeWidget = scopeWidget

	// Create the control panel with sliders, footswitch and indicator
	panel := createControlPanel(state)

	// Border layout: toolbar at top, control panel at bottom, scope center
	content := container.NewBorder(
		toolbar,
		panel,
		nil,
		nil,
		scopeWidget,
	)

	window.SetContent(content)
	window.ShowAndRun()
}

// engineChain tracks the components of a running engine for graceful shutdown.
type engineChain struct {
	sink            device.Sink
	recorder        *trace.Recorder
	cancel          context.CancelFunc
	engineGoroutine chan struct{} // Closed when the engine goroutine exits
}

// appState holds the application state.
type appState struct {
	cfg           *config.Config
	cfgPath       string
	bounds        lfo.Bounds
	scopeWidget   *scope.ScopeWidget
	window        fyne.Window
	connectBtn    *widget.Button
	footswitchBtn *widget.Button
	statusLabel   *widget.Label
	panel         *panelControls
	led           *ledIndicator
	useMock       bool
	chain         *engineChain // Current engine chain (nil if not connected)

	// Throttling for scope updates
	lastUpdateTime time.Time
	updateMu       sync.Mutex
}

// createToolbar creates the application toolbar with Connect and Settings
// buttons and the last-frame readout.
func createToolbar(state *appState) fyne.CanvasObject {
	// Connect button with icon
	connectBtn := widget.NewButtonWithIcon("", theme.LoginIcon(), func() {
		handleConnect(state)
	})
	state.connectBtn = connectBtn

	// Settings button with icon
	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	statusLabel := widget.NewLabel("disconnected")
	state.statusLabel = statusLabel

	// Buttons on the left, last emitted frame aligned to the right
	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(connectBtn, settingsBtn), // left
		statusLabel, // right
		nil, // center (spacer)
	)
}

// closeEngineChain gracefully stops a running engine. Cancels the engine
// context, waits for the goroutine to exit, then closes the sink.
func closeEngineChain(chain *engineChain) {
	if chain == nil {
		return
	}

	if chain.cancel != nil {
		chain.cancel()
	}

	// Wait for the engine goroutine to finish before touching the sink
	if chain.engineGoroutine != nil {
		<-chain.engineGoroutine
	}

	if chain.sink != nil {
		chain.sink.Close()
	}
}

// handleConnect handles the connect/disconnect button click.
func handleConnect(state *appState) {
	if state.chain != nil && state.chain.sink.IsConnected() {
		// Disconnect - gracefully stop the engine first
		closeEngineChain(state.chain)
		state.chain = nil
		// Drop back to bypassed so the next connect starts silent
		state.panel.setReleased(true)
		state.led.SetBrightness(0)
		state.footswitchBtn.Disable()
		updateFootswitchButton(state)
		state.statusLabel.SetText("disconnected")
		if state.useMock {
			fmt.Println("Disconnected from mocked sink")
		} else {
			fmt.Println("Disconnected from serial port")
		}
	} else {
		// Connect
		var sink device.Sink
		if state.useMock {
			sink = device.NewMock()
			fmt.Println("Using mocked sink")
		} else {
			sink = device.New(state.cfg.Serial.Port, state.cfg.Serial.Baud)
		}

		if err := sink.Connect(); err != nil {
			if state.useMock {
				dialog.ShowError(fmt.Errorf("failed to connect to mocked sink: %w", err), state.window)
			} else {
				dialog.ShowError(fmt.Errorf("failed to connect to %s: %w", state.cfg.Serial.Port, err), state.window)
			}
			return
		}
		if state.useMock {
			fmt.Printf("Connected to mocked sink\n")
		} else {
			fmt.Printf("Connected to serial port: %s\n", state.cfg.Serial.Port)
		}

		// Enable the footswitch
		state.footswitchBtn.Enable()
		updateFootswitchButton(state)

		// Tap the outgoing stream for the scope. The recorder sits after
		// the sink in the MultiWriter, so it only sees bytes the port took.
		window := time.Duration(state.cfg.Scope.WindowSeconds * float64(time.Second))
		recorder := trace.NewRecorder(window)

		// Register the scope callback before the engine starts
		// Throttle updates to ~60 FPS (16.67ms between updates) to ensure smooth UI
		const updateInterval = 16 * time.Millisecond // ~60 FPS
		recorder.OnUpdate(func(points []trace.Point, last trace.Point) {
			// Throttle updates to prevent UI from being overwhelmed
			state.updateMu.Lock()
			now := time.Now()
			timeSinceLastUpdate := now.Sub(state.lastUpdateTime)
			state.updateMu.Unlock()

			// Skip update if too soon since last update
			if timeSinceLastUpdate < updateInterval {
				return
			}

			// Update timestamp
			state.updateMu.Lock()
			state.lastUpdateTime = now
			state.updateMu.Unlock()

			engaged := !state.panel.Released()
			level := state.led.Level()

			// Render the newest frame the way a MIDI monitor would
			frame := midi.EncodePitchBend(last.Value)
			status := gomidi.Message(frame[:]).String()

			// Update widgets on the main thread
			fyne.Do(func() {
				state.scopeWidget.UpdateData(points, engaged, level)
				state.statusLabel.SetText(status)
			})
		})

		tap := io.MultiWriter(sink, recorder)
		engine := lfo.New(state.panel, tap, state.led)

		// Run the engine until disconnect cancels it
		ctx, cancel := context.WithCancel(context.Background())
		engineDone := make(chan struct{})
		go func() {
			defer close(engineDone)
			if err := engine.Run(ctx); err != nil {
				log.Printf("Engine stopped: %v", err)
			}
		}()

		// Store the chain for graceful shutdown
		state.chain = &engineChain{
			sink:            sink,
			recorder:        recorder,
			cancel:          cancel,
			engineGoroutine: engineDone,
		}
	}
}
