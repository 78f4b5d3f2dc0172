package protocol

import (
	"github.com/neurlang/wayland/wl"
)

// ZwlrDataControlSourceV1 represents content this process offers to the
// clipboard. The selection monitor never creates one (it only reads), but
// the type is part of the manager's full request surface, so it is
// reconstructed alongside it.
type ZwlrDataControlSourceV1 struct {
	wl.BaseProxy
	sendHandlers      []ZwlrDataControlSourceV1SendHandler
	cancelledHandlers []ZwlrDataControlSourceV1CancelledHandler
}

// NewZwlrDataControlSourceV1 allocates a source proxy bound to ctx.
func NewZwlrDataControlSourceV1(ctx *wl.Context) *ZwlrDataControlSourceV1 {
	ret := new(ZwlrDataControlSourceV1)
	ctx.Register(ret)
	return ret
}

const (
	opZwlrDataControlSourceV1Offer   = 0
	opZwlrDataControlSourceV1Destroy = 1

	eventZwlrDataControlSourceV1Send      = 0
	eventZwlrDataControlSourceV1Cancelled = 1
)

// Offer advertises mimeType as available from this source.
func (p *ZwlrDataControlSourceV1) Offer(mimeType string) error {
	return p.Context().SendRequest(p, opZwlrDataControlSourceV1Offer, mimeType)
}

// Destroy releases the source.
func (p *ZwlrDataControlSourceV1) Destroy() error {
	return p.Context().SendRequest(p, opZwlrDataControlSourceV1Destroy)
}

// ZwlrDataControlSourceV1SendEvent requests that this process write the
// content for MimeType into Fd.
type ZwlrDataControlSourceV1SendEvent struct {
	MimeType string
	Fd       uintptr
	FdError  error
}

// ZwlrDataControlSourceV1SendHandler receives Send events.
type ZwlrDataControlSourceV1SendHandler interface {
	HandleZwlrDataControlSourceV1Send(ZwlrDataControlSourceV1SendEvent)
}

// AddSendHandler registers h to receive Send events.
func (p *ZwlrDataControlSourceV1) AddSendHandler(h ZwlrDataControlSourceV1SendHandler) {
	if h != nil {
		p.sendHandlers = append(p.sendHandlers, h)
	}
}

// ZwlrDataControlSourceV1CancelledEvent announces this source is no longer
// the selection and may be destroyed.
type ZwlrDataControlSourceV1CancelledEvent struct{}

// ZwlrDataControlSourceV1CancelledHandler receives Cancelled events.
type ZwlrDataControlSourceV1CancelledHandler interface {
	HandleZwlrDataControlSourceV1Cancelled(ZwlrDataControlSourceV1CancelledEvent)
}

// AddCancelledHandler registers h to receive Cancelled events.
func (p *ZwlrDataControlSourceV1) AddCancelledHandler(h ZwlrDataControlSourceV1CancelledHandler) {
	if h != nil {
		p.cancelledHandlers = append(p.cancelledHandlers, h)
	}
}

// Dispatch decodes a raw event addressed to this source.
func (p *ZwlrDataControlSourceV1) Dispatch(event *wl.Event) {
	switch event.Opcode {
	case eventZwlrDataControlSourceV1Send:
		ev := ZwlrDataControlSourceV1SendEvent{MimeType: event.String()}
		ev.Fd, ev.FdError = event.FD()
		for _, h := range p.sendHandlers {
			h.HandleZwlrDataControlSourceV1Send(ev)
		}
	case eventZwlrDataControlSourceV1Cancelled:
		ev := ZwlrDataControlSourceV1CancelledEvent{}
		for _, h := range p.cancelledHandlers {
			h.HandleZwlrDataControlSourceV1Cancelled(ev)
		}
	}
}
