// Package wayland implements C1's Wayland backend: the wlr-data-control
// protocol bound on the registry's seat, with the offer/selection state
// machine and sticky-image MIME priority from §4.1.
//
// Grounded on the teacher's pkgs/clipboard package (Watch, Client,
// ClipboardParser), generalized to the spec's state machine and MIME
// priority rule, and rebuilt against a best-effort reconstruction of the
// generated wlr-data-control-unstable-v1 bindings (see DESIGN.md).
package wayland

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/Sathamlet92/clipboard/internal/monitor"
	"github.com/Sathamlet92/clipboard/internal/monitor/protocol"
	"github.com/neurlang/wayland/wl"
	"github.com/neurlang/wayland/wlclient"
)

// pipeReadAttempts and pipeReadDelay implement §4.1's bounded retry loop
// for reading an offer's payload pipe.
const (
	pipeReadAttempts = 10
	pipeReadDelay    = 5 * time.Millisecond
	pollTimeoutMS    = 100
)

// Monitor implements monitor.Monitor for the wlr-data-control protocol.
type Monitor struct {
	display  *wl.Display
	registry *wl.Registry
	device   *protocol.ZwlrDataControlDeviceV1

	seatGlobals     map[uint32]uint32
	managerName     uint32
	managerVersion  uint32

	choice  mimeChoice
	mimes   []string
	current *protocol.ZwlrDataControlOfferV1

	emit func(monitor.ClipboardData)
}

// New returns an unconnected Wayland monitor.
func New() *Monitor {
	return &Monitor{seatGlobals: make(map[uint32]uint32)}
}

// Run implements monitor.Monitor: connects, binds the seat and the
// zwlr_data_control_manager_v1 global, then dispatches display events
// until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context, emit func(monitor.ClipboardData)) error {
	m.emit = emit

	display, err := wlclient.DisplayConnect(nil)
	if err != nil {
		return fmt.Errorf("wayland: connect: %w", err)
	}
	defer display.Context().Close()
	m.display = display

	registry, err := display.GetRegistry()
	if err != nil {
		return fmt.Errorf("wayland: get_registry: %w", err)
	}
	defer registry.Context().Close()
	m.registry = registry

	wlclient.RegistryAddListener(registry, m)
	if err := wlclient.DisplayRoundtrip(display); err != nil {
		return fmt.Errorf("wayland: registry roundtrip: %w", err)
	}

	var seat *wl.Seat
	for id, ver := range m.seatGlobals {
		seat = wlclient.RegistryBindSeatInterface(registry, id, ver)
		break
	}
	if seat == nil {
		return errors.New("wayland: no wl_seat global found")
	}
	defer seat.Context().Close()

	if m.managerName == 0 {
		return errors.New("wayland: no zwlr_data_control_manager_v1 global found")
	}
	manager := protocol.NewZwlrDataControlManagerV1(display.Context())
	if err := registry.Bind(m.managerName, "zwlr_data_control_manager_v1", m.managerVersion, manager); err != nil {
		return fmt.Errorf("wayland: bind manager: %w", err)
	}
	if err := wlclient.DisplayRoundtrip(display); err != nil {
		return fmt.Errorf("wayland: registry roundtrip: %w", err)
	}

	device, err := manager.GetDataDevice(seat)
	if err != nil {
		return fmt.Errorf("wayland: get_data_device: %w", err)
	}
	device.AddDataOfferHandler(m)
	device.AddSelectionHandler(m)
	device.AddPrimarySelectionHandler(m)
	device.AddFinishedHandler(m)
	m.device = device

	slog.Info("wayland selection monitor started")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		ready, err := pollDisplay(display, pollTimeoutMS)
		if err != nil {
			return fmt.Errorf("wayland: poll: %w", err)
		}
		if !ready {
			continue
		}
		if err := wlclient.DisplayDispatch(display); err != nil {
			return fmt.Errorf("wayland: dispatch: %w", err)
		}
	}
}

// HandleRegistryGlobal implements wl.RegistryGlobalHandler, recording the
// seat and manager globals as the teacher's client does.
func (m *Monitor) HandleRegistryGlobal(ev wl.RegistryGlobalEvent) {
	switch ev.Interface {
	case "wl_seat":
		m.seatGlobals[ev.Name] = ev.Version
	case "zwlr_data_control_manager_v1":
		m.managerName = ev.Name
		m.managerVersion = ev.Version
	}
}

// HandleRegistryGlobalRemove implements wl.RegistryGlobalRemoveHandler.
func (m *Monitor) HandleRegistryGlobalRemove(ev wl.RegistryGlobalRemoveEvent) {
	delete(m.seatGlobals, ev.Name)
}

// HandleZwlrDataControlOfferV1Offer implements the OFFER_OPEN -> *offer(mime)
// transition: update the sticky-MIME choice for the offer currently open.
func (m *Monitor) HandleZwlrDataControlOfferV1Offer(ev protocol.ZwlrDataControlOfferV1OfferEvent) {
	m.mimes = append(m.mimes, ev.MimeType)
	m.choice.consider(ev.MimeType)
}

// HandleZwlrDataControlDeviceV1DataOffer implements the IDLE -> OFFER_OPEN
// transition: reset per-offer state and attach the offer listener.
func (m *Monitor) HandleZwlrDataControlDeviceV1DataOffer(ev protocol.ZwlrDataControlDeviceV1DataOfferEvent) {
	m.choice.reset()
	m.mimes = nil
	m.current = ev.Id
	ev.Id.AddOfferHandler(m)
}

// HandleZwlrDataControlDeviceV1Selection implements the
// MIME_CHOSEN -> READ_PIPE -> EMIT/DROP transition.
func (m *Monitor) HandleZwlrDataControlDeviceV1Selection(ev protocol.ZwlrDataControlDeviceV1SelectionEvent) {
	if ev.Id == nil || m.choice.chosen == "" {
		return
	}
	if err := wlclient.DisplayRoundtrip(m.display); err != nil {
		slog.Error("wayland: roundtrip before receive failed", "error", err)
		return
	}

	data, err := readOfferPipe(m.display, ev.Id, m.choice.chosen)
	if err != nil {
		slog.Warn("wayland: failed to read selection payload", "mime", m.choice.chosen, "error", err)
		return
	}
	if len(data) == 0 {
		return
	}

	m.emit(monitor.ClipboardData{
		Data:        data,
		TimestampMS: time.Now().UnixMilli(),
		MimeType:    m.choice.chosen,
		Type:        monitor.ClassifyMime(m.choice.chosen),
	})
}

// HandleZwlrDataControlDeviceV1PrimarySelection implements §4.1's "on
// primary_selection: drop" rule.
func (m *Monitor) HandleZwlrDataControlDeviceV1PrimarySelection(protocol.ZwlrDataControlDeviceV1PrimarySelectionEvent) {
}

// HandleZwlrDataControlDeviceV1Finished implements §4.1's best-effort
// cleanup on device loss.
func (m *Monitor) HandleZwlrDataControlDeviceV1Finished(protocol.ZwlrDataControlDeviceV1FinishedEvent) {
	m.current = nil
	m.choice.reset()
}

// readOfferPipe implements §4.1's payload read: a pipe, receive(mime, fd),
// flush, close write end, then a bounded non-blocking retry loop.
func readOfferPipe(display *wl.Display, offer *protocol.ZwlrDataControlOfferV1, mime string) ([]byte, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}
	defer r.Close()

	if err := offer.Receive(mime, w.Fd()); err != nil {
		w.Close()
		return nil, fmt.Errorf("receive: %w", err)
	}
	if err := wlclient.DisplayFlush(display); err != nil {
		w.Close()
		return nil, fmt.Errorf("flush: %w", err)
	}
	w.Close()

	var buf []byte
	chunk := make([]byte, 64*1024)
	for attempt := 0; attempt < pipeReadAttempts; attempt++ {
		_ = wlclient.DisplayDispatchPending(display)

		_ = r.SetReadDeadline(time.Now().Add(pipeReadDelay))
		n, err := r.Read(chunk)
		if n > 0 {
			buf = append(buf, chunk[:n]...)
		}
		if errors.Is(err, os.ErrDeadlineExceeded) {
			continue
		}
		if errors.Is(err, os.ErrClosed) {
			break
		}
		if n == 0 && err != nil {
			break
		}
		time.Sleep(pipeReadDelay)
	}
	return buf, nil
}
