// Package history keeps the navigation trail of visited URLs, most
// recent last, bounded so an endless session cannot grow it forever.
package history

import (
	"fmt"
	"sync"
)

// DefaultLimit is how many entries a history holds before the oldest
// ones are dropped.
const DefaultLimit = 100

type History struct {
	sync.Mutex
	urls  []string
	pos   int
	limit int
}

func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{limit: limit}
}

// Add records a newly visited URL, discarding any forward entries.
func (h *History) Add(surl string) {
	h.Lock()
	defer h.Unlock()
	if len(h.urls) == 0 && h.pos == 0 {
		h.pos = -1
	}
	h.urls = append(h.urls[:h.pos+1], surl)
	if h.limit > 0 && len(h.urls) > h.limit {
		h.urls = h.urls[len(h.urls)-h.limit:]
	}
	h.pos = len(h.urls) - 1
}

func (h *History) Back() (string, bool) {
	h.Lock()
	defer h.Unlock()
	if h.pos > 0 {
		h.pos--
		return h.urls[h.pos], true
	}
	return "", false
}

func (h *History) Forward() (string, bool) {
	h.Lock()
	defer h.Unlock()
	if h.pos < len(h.urls)-1 {
		h.pos++
		return h.urls[h.pos], true
	}
	return "", false
}

func (h *History) Current() string {
	h.Lock()
	defer h.Unlock()
	if len(h.urls) == 0 {
		return ""
	}
	return h.urls[h.pos]
}

func (h *History) Status() string {
	h.Lock()
	defer h.Unlock()
	return fmt.Sprintf("%d/%d", h.pos+1, len(h.urls))
}
