package main

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/itohio/gobend/pkg/device"
)

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	// Create tabs
	tabs := container.NewAppTabs(
		createSerialTab(state),
		createScopeTab(state),
	)

	// Create dialog with tabs as content
	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 360))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 360))
	d.Show()
}

// createSerialTab creates the Serial configuration tab.
func createSerialTab(state *appState) *container.TabItem {
	// Get available serial ports
	ports, err := device.Ports()
	portOptions := []string{}
	portMap := make(map[string]string) // Map display name to actual port name

	if err == nil {
		for _, port := range ports {
			displayName := port.Name
			if port.Description != "" && port.Description != port.Name {
				displayName = fmt.Sprintf("%s (%s)", port.Name, port.Description)
			}
			portOptions = append(portOptions, displayName)
			portMap[displayName] = port.Name
		}
	}

	// Add current port if not in list
	currentPort := state.cfg.Serial.Port
	currentDisplay := currentPort
	found := false
	for _, opt := range portOptions {
		if portMap[opt] == currentPort {
			currentDisplay = opt
			found = true
			break
		}
	}
	if !found && currentPort != "" {
		portOptions = append(portOptions, currentPort)
		portMap[currentPort] = currentPort
		currentDisplay = currentPort
	}

	portSelect := widget.NewSelect(portOptions, func(selected string) {
		// Selection handler - will be called on submit
	})
	if currentDisplay != "" {
		portSelect.SetSelected(currentDisplay)
	}

	baudEntry := widget.NewEntry()
	baudEntry.SetText(strconv.Itoa(state.cfg.Serial.Baud))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Serial Port", Widget: portSelect},
			{Text: "Baud Rate", Widget: baudEntry},
		},
		OnSubmit: func() {
			if baud, err := strconv.Atoi(baudEntry.Text); err == nil {
				state.cfg.Serial.Baud = baud
			}

			if portSelect.Selected != "" {
				selectedPort := portMap[portSelect.Selected]
				if selectedPort == "" {
					selectedPort = portSelect.Selected // Fallback to selected text
				}

				// Check if port changed while the engine is running
				portChanged := state.cfg.Serial.Port != selectedPort
				wasConnected := state.chain != nil && state.chain.sink.IsConnected()

				state.cfg.Serial.Port = selectedPort
				if err := state.cfg.Save(state.cfgPath); err != nil {
					dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
					return
				}

				// If port changed and the engine was running, restart it on the new port
				if portChanged && wasConnected {
					// Gracefully stop the old chain
					closeEngineChain(state.chain)
					state.chain = nil

					// Reconnect with new port
					handleConnect(state)
				}
			}
		},
	}

	return container.NewTabItem("Serial", form)
}

// createScopeTab creates the Scope configuration tab.
func createScopeTab(state *appState) *container.TabItem {
	windowSecondsEntry := widget.NewEntry()
	windowSecondsEntry.SetText(fmt.Sprintf("%.1f", state.cfg.Scope.WindowSeconds))

	maxPointsEntry := widget.NewEntry()
	maxPointsEntry.SetText(fmt.Sprintf("%d", state.cfg.Scope.MaxPoints))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Window (seconds)", Widget: windowSecondsEntry},
			{Text: "Max Points", Widget: maxPointsEntry},
		},
		OnSubmit: func() {
			if ws, err := strconv.ParseFloat(windowSecondsEntry.Text, 64); err == nil {
				state.cfg.Scope.WindowSeconds = ws
			}
			if mp, err := strconv.Atoi(maxPointsEntry.Text); err == nil {
				state.cfg.Scope.MaxPoints = mp
			}
			if err := state.cfg.Save(state.cfgPath); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
			}
			// The recorder window takes effect on the next connect
		},
	}

	return container.NewTabItem("Scope", form)
}
