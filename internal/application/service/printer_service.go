package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sangkips/pizzeria-pos/internal/domain/entity"
	"github.com/sangkips/pizzeria-pos/internal/metrics"
	"github.com/sangkips/pizzeria-pos/pkg/printer"
)

// Print job kinds, used in logs and metrics.
const (
	PrintKindReceipt = "receipt"
	PrintKindKitchen = "kitchen"
	PrintKindTest    = "test"
)

// drainTimeout bounds how long Stop keeps printing queued jobs.
const drainTimeout = 5 * time.Second

// TicketPrinter accepts documents for printing. Implementations never fail
// the caller; problems are logged.
type TicketPrinter interface {
	PrintReceipt(ctx context.Context, r *entity.Receipt)
	PrintKitchenTicket(ctx context.Context, t *entity.KitchenTicket)
}

type settingsReader interface {
	GetSettings(ctx context.Context) (*entity.AppSettings, error)
}

type printJob struct {
	kind string
	data []byte
}

// PrinterService formats tickets and spools them to the thermal printer.
// Once started, jobs are written by a single worker so a slow chunked
// transport never holds up the request that produced the ticket.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	settings    settingsReader
	queue       chan printJob
	now         func() time.Time

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, queueSize int, settings settingsReader) *PrinterService {
	if queueSize <= 0 {
		queueSize = 16
	}
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		settings:    settings,
		queue:       make(chan printJob, queueSize),
		now:         time.Now,
	}
}

// Start launches the spooler worker.
func (s *PrinterService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.running = true
	go s.run(ctx, s.done)
	slog.Info("print spooler started", "type", s.printerType, "queue", cap(s.queue))
}

// Stop halts the worker after printing whatever is still queued.
func (s *PrinterService) Stop() {
	s.mu.Lock()
	if s.done == nil {
		s.mu.Unlock()
		return
	}
	s.running = false
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	cancel()
	<-done
	slog.Info("print spooler stopped")
}

func (s *PrinterService) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		select {
		case job := <-s.queue:
			s.deliver(ctx, job)
		case <-ctx.Done():
			// Jobs arriving from now on print inline.
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			s.drain()
			return
		}
	}
}

func (s *PrinterService) drain() {
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout)
	defer cancel()
	for {
		select {
		case job := <-s.queue:
			s.deliver(ctx, job)
		default:
			return
		}
	}
}

func (s *PrinterService) deliver(ctx context.Context, job printJob) {
	start := time.Now()
	err := s.printer.Print(ctx, job.data)
	metrics.PrintDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PrintJobs.WithLabelValues(job.kind, "error").Inc()
		slog.Warn("print job failed", "kind", job.kind, "bytes", len(job.data), "error", err)
		return
	}
	metrics.PrintJobs.WithLabelValues(job.kind, "ok").Inc()
	metrics.PrintedBytes.Add(float64(len(job.data)))
	slog.Debug("print job delivered", "kind", job.kind, "bytes", len(job.data))
}

// enqueue hands the job to the worker, or prints inline when the spooler is
// not running. A disconnected printer or a full queue drops the job.
func (s *PrinterService) enqueue(ctx context.Context, kind string, data []byte) {
	if !s.printer.IsConnected() {
		metrics.PrintJobs.WithLabelValues(kind, "skipped").Inc()
		slog.Warn("printer not connected, skipping print", "kind", kind, "type", s.printerType)
		return
	}

	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		s.deliver(ctx, printJob{kind: kind, data: data})
		return
	}
	// Sent under the lock so the worker cannot exit between check and send.
	select {
	case s.queue <- printJob{kind: kind, data: data}:
		s.mu.Unlock()
	default:
		s.mu.Unlock()
		metrics.PrintJobs.WithLabelValues(kind, "dropped").Inc()
		slog.Warn("print queue full, dropping job", "kind", kind, "bytes", len(data))
	}
}

// paperColumns reads the configured paper width; the narrow roll is assumed
// when settings cannot be read.
func (s *PrinterService) paperColumns(ctx context.Context) (int, string) {
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		slog.Warn("reading settings for print failed", "error", err)
		fallback := entity.DefaultAppSettings()
		return fallback.PrinterPaperWidth.Columns(), fallback.BusinessName
	}
	return settings.PrinterPaperWidth.Columns(), settings.BusinessName
}

// PrintReceipt formats and queues a customer receipt.
func (s *PrinterService) PrintReceipt(ctx context.Context, r *entity.Receipt) {
	width, _ := s.paperColumns(ctx)
	s.enqueue(ctx, PrintKindReceipt, FormatReceipt(r, width))
}

// PrintKitchenTicket formats and queues a kitchen ticket.
func (s *PrinterService) PrintKitchenTicket(ctx context.Context, t *entity.KitchenTicket) {
	width, _ := s.paperColumns(ctx)
	s.enqueue(ctx, PrintKindKitchen, FormatKitchenTicket(t, width))
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Spooling   bool   `json:"spooling"`
	Queued     int    `json:"queued"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	s.mu.Lock()
	running := s.running
	s.mu.Unlock()
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Spooling:   running,
		Queued:     len(s.queue),
	}
}

// TestPrintResult describes a queued test page.
type TestPrintResult struct {
	Queued bool `json:"queued"`
	Bytes  int  `json:"bytes"`
}

// TestPrint queues the self-test page. It reports Queued=false when no
// printer is connected.
func (s *PrinterService) TestPrint(ctx context.Context) *TestPrintResult {
	width, businessName := s.paperColumns(ctx)
	data := FormatTestPage(businessName, width, s.now())
	connected := s.printer.IsConnected()
	s.enqueue(ctx, PrintKindTest, data)
	return &TestPrintResult{Queued: connected, Bytes: len(data)}
}
