// Package x11 implements C1's X11 fallback backend: an XFixes
// selection-owner-change subscription on the CLIPBOARD atom, followed by a
// synchronous ConvertSelection/SelectionNotify round trip, built on
// github.com/jezek/xgb (the out-of-pack, ecosystem-standard low-level X11
// binding named in the spec's external interfaces).
package x11

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Sathamlet92/clipboard/internal/monitor"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xfixes"
	"github.com/jezek/xgb/xproto"
)

// selectionNotifyTimeout is §4.1's "waits up to 1s for SelectionNotify".
const selectionNotifyTimeout = time.Second

// Monitor implements monitor.Monitor via XFixes selection-owner
// notifications.
type Monitor struct{}

// New returns an unconnected X11 monitor.
func New() *Monitor { return &Monitor{} }

// Run implements monitor.Monitor: opens the default display, creates a
// 1x1 invisible window, subscribes to clipboard ownership changes via
// XFixes, and converts+reads the selection on each notification.
func (m *Monitor) Run(ctx context.Context, emit func(monitor.ClipboardData)) error {
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("x11: connect: %w", err)
	}
	defer conn.Close()

	if err := xfixes.Init(conn); err != nil {
		return fmt.Errorf("x11: xfixes extension unavailable: %w", err)
	}
	if _, err := xfixes.QueryVersion(conn, 5, 0).Reply(); err != nil {
		return fmt.Errorf("x11: xfixes query_version: %w", err)
	}

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	win, err := xproto.NewWindowId(conn)
	if err != nil {
		return fmt.Errorf("x11: new_window_id: %w", err)
	}
	err = xproto.CreateWindowChecked(
		conn, screen.RootDepth, win, screen.Root,
		0, 0, 1, 1, 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		0, nil,
	).Check()
	if err != nil {
		return fmt.Errorf("x11: create_window: %w", err)
	}
	defer xproto.DestroyWindow(conn, win)

	clipboardAtom, err := internAtom(conn, "CLIPBOARD")
	if err != nil {
		return err
	}
	utf8Atom, err := internAtom(conn, "UTF8_STRING")
	if err != nil {
		return err
	}
	stringAtom, err := internAtom(conn, "XA_STRING")
	if err != nil {
		return err
	}
	imagePNGAtom, err := internAtom(conn, "image/png")
	if err != nil {
		return err
	}
	propertyAtom, err := internAtom(conn, "CLIPVAULT_SELECTION")
	if err != nil {
		return err
	}

	if err := xfixes.SelectSelectionInputChecked(
		conn, win, clipboardAtom,
		xfixes.SelectionEventMaskSetSelectionOwner,
	).Check(); err != nil {
		return fmt.Errorf("x11: select_selection_input: %w", err)
	}

	slog.Info("x11 selection monitor started")

	events := make(chan xgb.Event, 16)
	errs := make(chan error, 1)
	go func() {
		for {
			ev, err := conn.WaitForEvent()
			if err != nil {
				if isBadWindow(err) {
					continue
				}
				errs <- err
				return
			}
			if ev == nil {
				continue
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errs:
			return fmt.Errorf("x11: connection lost: %w", err)
		case ev := <-events:
			notif, ok := ev.(xfixes.SelectionNotifyEvent)
			if !ok {
				continue
			}
			if notif.Selection != clipboardAtom {
				continue
			}
			data, mimeAtom, err := readSelection(conn, events, win, clipboardAtom, propertyAtom, utf8Atom)
			if err != nil {
				slog.Warn("x11: failed to read selection", "error", err)
				continue
			}
			if len(data) == 0 {
				continue
			}

			var mime string
			var ct monitor.ContentType
			switch mimeAtom {
			case utf8Atom, stringAtom:
				mime = "text/plain"
				ct = monitor.TextContent
			case imagePNGAtom:
				mime = "image/png"
				ct = monitor.ImageContent
			default:
				mime = ""
				ct = monitor.Unknown
			}

			emit(monitor.ClipboardData{
				Data:        data,
				TimestampMS: time.Now().UnixMilli(),
				MimeType:    mime,
				Type:        ct,
			})
		}
	}
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("x11: intern_atom %s: %w", name, err)
	}
	return reply.Atom, nil
}

// readSelection implements §4.1's convert-and-wait: ConvertSelection to
// UTF8_STRING, wait up to 1s for SelectionNotify (drained from the shared
// event channel the caller's single reader goroutine feeds), then
// GetProperty. Non-SelectionNotify events seen while waiting are dropped;
// this backend does not interleave clipboard reads with other X11 work.
func readSelection(conn *xgb.Conn, events <-chan xgb.Event, win xproto.Window, selection, property, target xproto.Atom) ([]byte, xproto.Atom, error) {
	if err := xproto.ConvertSelectionChecked(conn, win, selection, target, property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, 0, fmt.Errorf("convert_selection: %w", err)
	}

	deadline := time.After(selectionNotifyTimeout)
	for {
		notified := false
		select {
		case ev := <-events:
			if sn, ok := ev.(xproto.SelectionNotifyEvent); ok && sn.Requestor == win {
				notified = true
			}
		case <-deadline:
			return nil, 0, errors.New("timed out waiting for SelectionNotify")
		}
		if notified {
			break
		}
	}

	reply, err := xproto.GetProperty(conn, false, win, property, xproto.GetPropertyTypeAny, 0, 1<<20).Reply()
	if err != nil {
		return nil, 0, fmt.Errorf("get_property: %w", err)
	}
	if reply == nil {
		return nil, 0, nil
	}
	return reply.Value, reply.Type, nil
}

func isBadWindow(err error) bool {
	_, ok := err.(xproto.WindowError)
	return ok
}
