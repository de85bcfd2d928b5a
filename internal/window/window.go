// Package window discovers on-screen application windows across operating
// systems and normalizes them into a common handle the capture layer can
// work with.
package window

import (
	"fmt"
	"sort"
	"strings"
)

// Rect is a window's position and size in screen coordinates.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Handle is a normalized reference to an on-screen window. Handles are
// created fresh on every enumeration and never mutated; re-enumerate to get
// current bounds.
type Handle struct {
	Title    string
	Bounds   Rect
	Visible  bool
	Category Category

	// HasBounds is false when the OS would not report dimensions. Such
	// windows are still listed but flagged for diagnostics.
	HasBounds bool

	// HWND is the native Windows handle, zero elsewhere.
	HWND uintptr
	// NativeID is the X11 window id on Linux, empty elsewhere.
	NativeID string
}

func (h Handle) String() string {
	return fmt.Sprintf("%s (%dx%d at %d,%d)", h.Title, h.Bounds.Width, h.Bounds.Height, h.Bounds.Left, h.Bounds.Top)
}

// Registry enumerates and normalizes on-screen windows.
type Registry struct{}

// NewRegistry creates a window registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// List returns all capturable windows sorted case-insensitively by title.
// Shell and desktop-manager windows are filtered out, as are windows with
// empty titles. On enumeration failure an empty slice and the error are
// returned; callers treat this as recoverable.
func (r *Registry) List() ([]Handle, error) {
	raw, err := enumerateWindows()
	if err != nil {
		return nil, fmt.Errorf("window enumeration failed: %w", err)
	}
	return normalize(raw), nil
}

// normalize trims, filters, categorizes and sorts raw enumeration results.
func normalize(raw []Handle) []Handle {
	windows := make([]Handle, 0, len(raw))
	for _, w := range raw {
		title := strings.TrimSpace(w.Title)
		if title == "" {
			continue
		}
		if isSystemWindow(title) {
			continue
		}
		w.Title = title
		w.HasBounds = w.Bounds.Width > 0 && w.Bounds.Height > 0
		w.Category = Categorize(title)
		windows = append(windows, w)
	}

	sort.Slice(windows, func(i, j int) bool {
		return strings.ToLower(windows[i].Title) < strings.ToLower(windows[j].Title)
	})

	return windows
}

// Refresh re-enumerates and returns the current handle for the same window,
// matched by title. Needed after activation since coordinates may shift.
// Returns the original handle when the window can no longer be found.
func (r *Registry) Refresh(h Handle) Handle {
	windows, err := r.List()
	if err != nil {
		return h
	}
	for _, w := range windows {
		if w.Title == h.Title {
			return w
		}
	}
	return h
}

// FindByTitle returns the first window whose title contains the given
// substring (case-insensitive).
func (r *Registry) FindByTitle(substr string) (Handle, error) {
	windows, err := r.List()
	if err != nil {
		return Handle{}, err
	}
	needle := strings.ToLower(substr)
	for _, w := range windows {
		if strings.Contains(strings.ToLower(w.Title), needle) {
			return w, nil
		}
	}
	return Handle{}, fmt.Errorf("no window matching %q", substr)
}

func isSystemWindow(title string) bool {
	for _, excluded := range systemWindowTitles() {
		if title == excluded {
			return true
		}
	}
	return false
}
