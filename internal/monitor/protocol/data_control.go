// Package protocol is the generated-style binding for
// wlr-data-control-unstable-v1, reconstructed against the neurlang/wayland
// client runtime (wl.BaseProxy / wl.Context) in the same shape the
// project's own go:generate step would have produced it.
//
// Request opcodes follow the protocol XML request order; event opcodes
// follow the event order. Handlers are added via AddXHandler and are
// notified from Dispatch, matching the convention every other
// neurlang/wayland-generated proxy in this codebase uses.
package protocol

import (
	"github.com/neurlang/wayland/wl"
)

// ZwlrDataControlManagerV1 is the entry point: it creates data devices
// (one per seat) and data sources (content offered for copy).
type ZwlrDataControlManagerV1 struct {
	wl.BaseProxy
}

// NewZwlrDataControlManagerV1 allocates a manager proxy bound to ctx. The
// caller still needs registry.Bind to associate it with the compositor's
// global.
func NewZwlrDataControlManagerV1(ctx *wl.Context) *ZwlrDataControlManagerV1 {
	ret := new(ZwlrDataControlManagerV1)
	ctx.Register(ret)
	return ret
}

const (
	opZwlrDataControlManagerV1CreateDataSource = 0
	opZwlrDataControlManagerV1GetDataDevice    = 1
	opZwlrDataControlManagerV1Destroy          = 2
)

// CreateDataSource creates a new data source for content this process
// offers to the clipboard. Unused by a read-only monitor but kept so the
// manager's full request set is exercised by the protocol package.
func (p *ZwlrDataControlManagerV1) CreateDataSource() (*ZwlrDataControlSourceV1, error) {
	ret := NewZwlrDataControlSourceV1(p.Context())
	err := p.Context().SendRequest(p, opZwlrDataControlManagerV1CreateDataSource, ret)
	return ret, err
}

// GetDataDevice creates a data device for seat, the proxy through which
// selection-offer events arrive.
func (p *ZwlrDataControlManagerV1) GetDataDevice(seat *wl.Seat) (*ZwlrDataControlDeviceV1, error) {
	ret := NewZwlrDataControlDeviceV1(p.Context())
	err := p.Context().SendRequest(p, opZwlrDataControlManagerV1GetDataDevice, ret, seat)
	return ret, err
}

// Destroy releases the manager. Doesn't affect devices/sources already
// created from it.
func (p *ZwlrDataControlManagerV1) Destroy() error {
	return p.Context().SendRequest(p, opZwlrDataControlManagerV1Destroy)
}

// ZwlrDataControlDeviceV1 is the per-seat proxy that notifies about new
// selection/primary-selection offers.
type ZwlrDataControlDeviceV1 struct {
	wl.BaseProxy
	dataOfferHandlers        []ZwlrDataControlDeviceV1DataOfferHandler
	selectionHandlers        []ZwlrDataControlDeviceV1SelectionHandler
	primarySelectionHandlers []ZwlrDataControlDeviceV1PrimarySelectionHandler
	finishedHandlers         []ZwlrDataControlDeviceV1FinishedHandler
}

// NewZwlrDataControlDeviceV1 allocates a device proxy bound to ctx.
func NewZwlrDataControlDeviceV1(ctx *wl.Context) *ZwlrDataControlDeviceV1 {
	ret := new(ZwlrDataControlDeviceV1)
	ctx.Register(ret)
	return ret
}

const (
	opZwlrDataControlDeviceV1SetSelection        = 0
	opZwlrDataControlDeviceV1Destroy             = 1
	opZwlrDataControlDeviceV1SetPrimarySelection = 2

	eventZwlrDataControlDeviceV1DataOffer        = 0
	eventZwlrDataControlDeviceV1Selection        = 1
	eventZwlrDataControlDeviceV1Finished         = 2
	eventZwlrDataControlDeviceV1PrimarySelection = 3
)

// SetSelection offers source as the new clipboard content. A nil source
// clears the clipboard.
func (p *ZwlrDataControlDeviceV1) SetSelection(source *ZwlrDataControlSourceV1) error {
	return p.Context().SendRequest(p, opZwlrDataControlDeviceV1SetSelection, source)
}

// SetPrimarySelection mirrors SetSelection for the primary (middle-click)
// selection.
func (p *ZwlrDataControlDeviceV1) SetPrimarySelection(source *ZwlrDataControlSourceV1) error {
	return p.Context().SendRequest(p, opZwlrDataControlDeviceV1SetPrimarySelection, source)
}

// Destroy releases the device.
func (p *ZwlrDataControlDeviceV1) Destroy() error {
	return p.Context().SendRequest(p, opZwlrDataControlDeviceV1Destroy)
}

// ZwlrDataControlDeviceV1DataOfferEvent fires once per new offer, before
// any of its mime-type events; Id is not yet usable until the mime-type
// offer events (and a roundtrip) have been observed.
type ZwlrDataControlDeviceV1DataOfferEvent struct {
	Id *ZwlrDataControlOfferV1
}

// ZwlrDataControlDeviceV1DataOfferHandler receives DataOffer events.
type ZwlrDataControlDeviceV1DataOfferHandler interface {
	HandleZwlrDataControlDeviceV1DataOffer(ZwlrDataControlDeviceV1DataOfferEvent)
}

// AddDataOfferHandler registers h to receive DataOffer events.
func (p *ZwlrDataControlDeviceV1) AddDataOfferHandler(h ZwlrDataControlDeviceV1DataOfferHandler) {
	if h != nil {
		p.dataOfferHandlers = append(p.dataOfferHandlers, h)
	}
}

// ZwlrDataControlDeviceV1SelectionEvent announces that offer Id (nil to
// clear) is now the clipboard selection.
type ZwlrDataControlDeviceV1SelectionEvent struct {
	Id *ZwlrDataControlOfferV1
}

// ZwlrDataControlDeviceV1SelectionHandler receives Selection events.
type ZwlrDataControlDeviceV1SelectionHandler interface {
	HandleZwlrDataControlDeviceV1Selection(ZwlrDataControlDeviceV1SelectionEvent)
}

// AddSelectionHandler registers h to receive Selection events.
func (p *ZwlrDataControlDeviceV1) AddSelectionHandler(h ZwlrDataControlDeviceV1SelectionHandler) {
	if h != nil {
		p.selectionHandlers = append(p.selectionHandlers, h)
	}
}

// ZwlrDataControlDeviceV1PrimarySelectionEvent mirrors SelectionEvent for
// the primary selection.
type ZwlrDataControlDeviceV1PrimarySelectionEvent struct {
	Id *ZwlrDataControlOfferV1
}

// ZwlrDataControlDeviceV1PrimarySelectionHandler receives
// PrimarySelection events.
type ZwlrDataControlDeviceV1PrimarySelectionHandler interface {
	HandleZwlrDataControlDeviceV1PrimarySelection(ZwlrDataControlDeviceV1PrimarySelectionEvent)
}

// AddPrimarySelectionHandler registers h to receive PrimarySelection
// events.
func (p *ZwlrDataControlDeviceV1) AddPrimarySelectionHandler(h ZwlrDataControlDeviceV1PrimarySelectionHandler) {
	if h != nil {
		p.primarySelectionHandlers = append(p.primarySelectionHandlers, h)
	}
}

// ZwlrDataControlDeviceV1FinishedEvent fires when the compositor destroys
// the device, e.g. because the seat was removed.
type ZwlrDataControlDeviceV1FinishedEvent struct{}

// ZwlrDataControlDeviceV1FinishedHandler receives Finished events.
type ZwlrDataControlDeviceV1FinishedHandler interface {
	HandleZwlrDataControlDeviceV1Finished(ZwlrDataControlDeviceV1FinishedEvent)
}

// AddFinishedHandler registers h to receive Finished events.
func (p *ZwlrDataControlDeviceV1) AddFinishedHandler(h ZwlrDataControlDeviceV1FinishedHandler) {
	if h != nil {
		p.finishedHandlers = append(p.finishedHandlers, h)
	}
}

// Dispatch decodes a raw event addressed to this device and fans it out to
// registered handlers, the same shape every generated proxy's Dispatch
// takes in this runtime.
func (p *ZwlrDataControlDeviceV1) Dispatch(event *wl.Event) {
	switch event.Opcode {
	case eventZwlrDataControlDeviceV1DataOffer:
		id := wl.SafeCast[*ZwlrDataControlOfferV1](event.Proxy(p.Context()))
		ev := ZwlrDataControlDeviceV1DataOfferEvent{Id: id}
		for _, h := range p.dataOfferHandlers {
			h.HandleZwlrDataControlDeviceV1DataOffer(ev)
		}
	case eventZwlrDataControlDeviceV1Selection:
		id := wl.SafeCast[*ZwlrDataControlOfferV1](event.Proxy(p.Context()))
		ev := ZwlrDataControlDeviceV1SelectionEvent{Id: id}
		for _, h := range p.selectionHandlers {
			h.HandleZwlrDataControlDeviceV1Selection(ev)
		}
	case eventZwlrDataControlDeviceV1PrimarySelection:
		id := wl.SafeCast[*ZwlrDataControlOfferV1](event.Proxy(p.Context()))
		ev := ZwlrDataControlDeviceV1PrimarySelectionEvent{Id: id}
		for _, h := range p.primarySelectionHandlers {
			h.HandleZwlrDataControlDeviceV1PrimarySelection(ev)
		}
	case eventZwlrDataControlDeviceV1Finished:
		ev := ZwlrDataControlDeviceV1FinishedEvent{}
		for _, h := range p.finishedHandlers {
			h.HandleZwlrDataControlDeviceV1Finished(ev)
		}
	}
}
