// Package tui provides a Bubble Tea terminal UI for a wayfarer session.
package tui

// History remembers submitted commands for Up/Down recall. Only the newest
// entries are kept, in a fixed ring sized from the history_size setting.
type History struct {
	ring  []string
	next  int // slot the next Push writes
	count int
	back  int    // steps taken back from the newest entry; 0 when not browsing
	draft string // input line that was being edited when browsing began
}

// NewHistory returns a history holding up to size commands.
func NewHistory(size int) *History {
	return &History{ring: make([]string, max(size, 1))}
}

// Len returns the number of remembered commands.
func (h *History) Len() int {
	return h.count
}

// at returns the entry i steps back from the newest; at(1) is the newest.
func (h *History) at(i int) string {
	n := len(h.ring)
	return h.ring[((h.next-i)%n+n)%n]
}

// Push records a submitted command and ends browsing. Empty lines and
// repeats of the newest entry are not recorded.
func (h *History) Push(cmd string) {
	h.back, h.draft = 0, ""
	if cmd == "" || (h.count > 0 && h.at(1) == cmd) {
		return
	}
	h.ring[h.next] = cmd
	h.next = (h.next + 1) % len(h.ring)
	h.count = min(h.count+1, len(h.ring))
}

// Older steps back one entry, stopping at the oldest. current is kept as the
// draft when browsing starts.
func (h *History) Older(current string) (string, bool) {
	if h.count == 0 {
		return "", false
	}
	if h.back == 0 {
		h.draft = current
	}
	if h.back < h.count {
		h.back++
	}
	return h.at(h.back), true
}

// Newer steps forward one entry. Stepping past the newest entry returns the
// draft; it reports false when not browsing.
func (h *History) Newer() (string, bool) {
	if h.back == 0 {
		return "", false
	}
	h.back--
	if h.back == 0 {
		return h.draft, true
	}
	return h.at(h.back), true
}
