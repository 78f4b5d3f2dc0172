package wayland

import "strings"

// mimeTier ranks a mime type by §4.1's priority table, lowest number wins.
// Metadata mime types return -1 and are never chosen.
func mimeTier(mime string) int {
	switch {
	case isMetadataMime(mime):
		return -1
	case strings.HasPrefix(mime, "image/"):
		return 0
	case mime == "text/plain" || mime == "text/plain;charset=utf-8":
		return 1
	case mime == "UTF8_STRING" || mime == "STRING" || mime == "TEXT":
		return 2
	case strings.HasPrefix(mime, "text/"):
		return 3
	default:
		return 4
	}
}

func isMetadataMime(mime string) bool {
	switch mime {
	case "SAVE_TARGETS", "TARGETS", "MULTIPLE", "TIMESTAMP":
		return true
	}
	return strings.HasPrefix(mime, "chromium/")
}

// mimeChoice tracks the running best MIME for one offer, implementing the
// "sticky image" rule: once an image/* mime is chosen, no later offer(mime)
// event can displace it.
type mimeChoice struct {
	chosen    string
	tier      int
	haveImage bool
}

// consider updates the choice with a newly-announced mime, per §4.1's
// priority order.
func (c *mimeChoice) consider(mime string) {
	if c.haveImage {
		return
	}
	tier := mimeTier(mime)
	if tier < 0 {
		return
	}
	if c.chosen == "" || tier < c.tier {
		c.chosen = mime
		c.tier = tier
		if tier == 0 {
			c.haveImage = true
		}
	}
}

// reset clears the choice, per §4.1's data_offer transition.
func (c *mimeChoice) reset() {
	*c = mimeChoice{}
}
