package device

import (
	"fmt"
	"log"
	"sync"

	"go.bug.st/serial"

	"github.com/itohio/gobend/pkg/midi"
)

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial ships the outgoing frames to a serial MIDI adapter.
type Serial struct {
	port     string
	baudRate int

	conn      serial.Port
	mu        sync.RWMutex
	connected bool
}

// New creates a new Serial sink for the specified port and baud rate.
// A zero baud rate falls back to the classic MIDI rate.
func New(port string, baudRate int) *Serial {
	if baudRate == 0 {
		baudRate = midi.Baud
	}

	return &Serial{
		port:     port,
		baudRate: baudRate,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		// Try to get port description if available
		port, err := serial.Open(name, &serial.Mode{
			BaudRate: midi.Baud,
		})
		if err == nil {
			port.Close()
		}
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect opens the serial port.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	return nil
}

// Close closes the connection.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}

	d.connected = false

	return nil
}

// Write forwards frame bytes to the port.
func (d *Serial) Write(p []byte) (int, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return 0, fmt.Errorf("not connected")
	}

	n, err := d.conn.Write(p)
	if err != nil {
		return n, fmt.Errorf("failed to write to serial port: %w", err)
	}

	return n, nil
}

// IsConnected returns whether the sink is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}
