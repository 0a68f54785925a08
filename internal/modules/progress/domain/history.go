package domain

import "fmt"

// History is the append-only log of committed focus blocks. The only
// in-place change allowed is Upgrade of the open brief entry.
type History []Entry

// Append adds e and returns its index.
func (h *History) Append(e Entry) int {
	*h = append(*h, e)
	return len(*h) - 1
}

// Upgrade rewrites the open brief entry at idx as a deep block.
func (h History) Upgrade(idx int, e Entry) error {
	if idx < 0 || idx >= len(h) {
		return fmt.Errorf("upgrade history: index %d out of range [0,%d)", idx, len(h))
	}
	if h[idx].Tipo != KindMini {
		return fmt.Errorf("upgrade history: entry %d is %q, not an open brief block", idx, h[idx].Tipo)
	}
	if e.Tipo != KindDeep {
		return fmt.Errorf("upgrade history: replacement must be deep, got %q", e.Tipo)
	}
	h[idx] = e
	return nil
}
