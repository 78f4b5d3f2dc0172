package wayland

import (
	"github.com/neurlang/wayland/wl"
	"golang.org/x/sys/unix"
)

// pollDisplay implements §4.1's event loop: poll() on the display's
// connection fd with a bounded timeout, so the caller can check its stop
// condition between dispatches. EINTR is treated as "not ready, try
// again", matching the spec's "EINTR is non-fatal" rule.
func pollDisplay(display *wl.Display, timeoutMS int) (ready bool, err error) {
	fds := []unix.PollFd{{Fd: int32(display.Context().Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, timeoutMS)
	if err == unix.EINTR {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
