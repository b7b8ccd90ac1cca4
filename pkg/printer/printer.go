package printer

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"
)

// Link defaults: thermal printers behind slow serial bridges drop bytes when
// fed faster than this.
const (
	DefaultChunkSize  = 64
	DefaultChunkDelay = 80 * time.Millisecond
)

// Printer delivers a complete ESC/POS buffer to a device.
type Printer interface {
	// Print streams data to the printer in chunks. It returns once the last
	// chunk was written or ctx is done.
	Print(ctx context.Context, data []byte) error
	// Close releases the printer connection/handle.
	Close() error
	// IsConnected returns true if the printer is reachable.
	IsConnected() bool
}

// Config selects and tunes a printer transport.
type Config struct {
	Type       string // usb, network or none
	USBPath    string // e.g. /dev/usb/lp0
	Address    string // e.g. 192.168.1.100:9100
	ChunkSize  int
	ChunkDelay time.Duration
}

func (c Config) chunking() (int, time.Duration) {
	size, delay := c.ChunkSize, c.ChunkDelay
	if size <= 0 {
		size = DefaultChunkSize
	}
	if delay < 0 {
		delay = DefaultChunkDelay
	}
	return size, delay
}

// WriteChunked writes data to w in pieces of at most size bytes, waiting
// delay between pieces. A chunk is never started before the previous Write
// returned. It returns the number of chunks written.
func WriteChunked(ctx context.Context, w io.Writer, data []byte, size int, delay time.Duration) (int, error) {
	if size <= 0 {
		size = DefaultChunkSize
	}

	chunks := 0
	for off := 0; off < len(data); off += size {
		if err := ctx.Err(); err != nil {
			return chunks, err
		}

		end := off + size
		if end > len(data) {
			end = len(data)
		}
		if _, err := w.Write(data[off:end]); err != nil {
			return chunks, fmt.Errorf("printer: chunk %d: %w", chunks, err)
		}
		chunks++

		if end < len(data) && delay > 0 {
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return chunks, ctx.Err()
			case <-timer.C:
			}
		}
	}
	return chunks, nil
}

// --- USB Printer (writes to device file, e.g. /dev/usb/lp0) ---

type usbPrinter struct {
	path  string
	size  int
	delay time.Duration
}

// NewUSBPrinter creates a printer that writes to a USB device file.
func NewUSBPrinter(devicePath string, chunkSize int, chunkDelay time.Duration) Printer {
	return &usbPrinter{path: devicePath, size: chunkSize, delay: chunkDelay}
}

func (p *usbPrinter) Print(ctx context.Context, data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: failed to open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := WriteChunked(ctx, f, data, p.size, p.delay); err != nil {
		return fmt.Errorf("printer: failed to write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error {
	return nil // opened per job
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// --- Network Printer (dials TCP, e.g. 192.168.1.100:9100) ---

type networkPrinter struct {
	address string
	timeout time.Duration
	size    int
	delay   time.Duration
}

// NewNetworkPrinter creates a printer that connects via TCP.
func NewNetworkPrinter(address string, chunkSize int, chunkDelay time.Duration) Printer {
	return &networkPrinter{
		address: address,
		timeout: 5 * time.Second,
		size:    chunkSize,
		delay:   chunkDelay,
	}
}

func (p *networkPrinter) Print(ctx context.Context, data []byte) error {
	dialer := net.Dialer{Timeout: p.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", p.address)
	if err != nil {
		return fmt.Errorf("printer: failed to connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
	}

	if _, err := WriteChunked(ctx, conn, data, p.size, p.delay); err != nil {
		return fmt.Errorf("printer: failed to write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil // dialed per job
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, 2*time.Second)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// --- Null Printer (no hardware configured) ---

type nullPrinter struct{}

// NewNullPrinter creates a printer that reports itself disconnected.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(ctx context.Context, data []byte) error {
	return nil
}

func (p *nullPrinter) Close() error {
	return nil
}

func (p *nullPrinter) IsConnected() bool {
	return false
}

// NewPrinterFromConfig creates the Printer selected by cfg.Type.
func NewPrinterFromConfig(cfg Config) (Printer, error) {
	size, delay := cfg.chunking()
	switch cfg.Type {
	case "usb":
		if cfg.USBPath == "" {
			return nil, fmt.Errorf("printer: USB path is required for USB printer type")
		}
		return NewUSBPrinter(cfg.USBPath, size, delay), nil
	case "network":
		if cfg.Address == "" {
			return nil, fmt.Errorf("printer: address is required for network printer type")
		}
		return NewNetworkPrinter(cfg.Address, size, delay), nil
	case "none", "":
		return NewNullPrinter(), nil
	default:
		return nil, fmt.Errorf("printer: unknown printer type %q (use usb, network, or none)", cfg.Type)
	}
}
