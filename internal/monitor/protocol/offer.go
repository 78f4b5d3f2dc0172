package protocol

import (
	"github.com/neurlang/wayland/wl"
)

// ZwlrDataControlOfferV1 represents one clipboard content offer: a set of
// available mime types, with Receive retrieving the bytes for one of them
// over a pipe fd.
type ZwlrDataControlOfferV1 struct {
	wl.BaseProxy
	offerHandlers []ZwlrDataControlOfferV1OfferHandler
}

// NewZwlrDataControlOfferV1 allocates an offer proxy bound to ctx. The
// device's DataOffer event is what actually produces one of these; callers
// never construct it directly in normal use.
func NewZwlrDataControlOfferV1(ctx *wl.Context) *ZwlrDataControlOfferV1 {
	ret := new(ZwlrDataControlOfferV1)
	ctx.Register(ret)
	return ret
}

const (
	opZwlrDataControlOfferV1Receive = 0
	opZwlrDataControlOfferV1Destroy = 1

	eventZwlrDataControlOfferV1Offer = 0
)

// Receive asks the compositor to write the offer's content for mimeType
// into fd. The caller owns fd's write end and must close it after sending
// the request so the read side observes EOF.
func (p *ZwlrDataControlOfferV1) Receive(mimeType string, fd uintptr) error {
	return p.Context().SendRequest(p, opZwlrDataControlOfferV1Receive, mimeType, fd)
}

// Destroy releases the offer. Safe to call once its content has been
// retrieved (or abandoned).
func (p *ZwlrDataControlOfferV1) Destroy() error {
	return p.Context().SendRequest(p, opZwlrDataControlOfferV1Destroy)
}

// ZwlrDataControlOfferV1OfferEvent announces one mime type available on
// this offer; a given offer raises one of these per supported type before
// the data-offer is usable.
type ZwlrDataControlOfferV1OfferEvent struct {
	MimeType string
}

// ZwlrDataControlOfferV1OfferHandler receives Offer events.
type ZwlrDataControlOfferV1OfferHandler interface {
	HandleZwlrDataControlOfferV1Offer(ZwlrDataControlOfferV1OfferEvent)
}

// AddOfferHandler registers h to receive Offer events.
func (p *ZwlrDataControlOfferV1) AddOfferHandler(h ZwlrDataControlOfferV1OfferHandler) {
	if h != nil {
		p.offerHandlers = append(p.offerHandlers, h)
	}
}

// Dispatch decodes a raw event addressed to this offer.
func (p *ZwlrDataControlOfferV1) Dispatch(event *wl.Event) {
	if event.Opcode != eventZwlrDataControlOfferV1Offer {
		return
	}
	ev := ZwlrDataControlOfferV1OfferEvent{MimeType: event.String()}
	for _, h := range p.offerHandlers {
		h.HandleZwlrDataControlOfferV1Offer(ev)
	}
}
