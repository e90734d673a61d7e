package surface

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/waypoint/pkg/domain"
)

// Node is an in-memory View.
type Node struct {
	mu       sync.RWMutex
	id       string
	alpha    float64
	frame    domain.Rect
	children []View
	frozen   bool
}

// NewNode creates a fully opaque view with the given frame.
func NewNode(id string, frame domain.Rect) *Node {
	return &Node{id: id, alpha: 1, frame: frame}
}

func (n *Node) ID() string { return n.id }

func (n *Node) Alpha() float64 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.alpha
}

func (n *Node) SetAlpha(alpha float64) {
	n.mu.Lock()
	n.alpha = alpha
	n.mu.Unlock()
}

func (n *Node) Frame() domain.Rect {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.frame
}

func (n *Node) SetFrame(frame domain.Rect) {
	n.mu.Lock()
	n.frame = frame
	n.mu.Unlock()
}

// AddSubview appends v. Snapshots are flat bitmaps and ignore subviews.
func (n *Node) AddSubview(v View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.frozen {
		return
	}
	n.children = append(n.children, v)
}

func (n *Node) RemoveSubview(v View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.children = slices.DeleteFunc(n.children, func(c View) bool { return c == v })
}

func (n *Node) Subviews() []View {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return slices.Clone(n.children)
}

// Snapshot freezes the current alpha and frame into a new childless node.
func (n *Node) Snapshot() (View, error) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return &Node{
		id:     n.id + "#snapshot",
		alpha:  n.alpha,
		frame:  n.frame,
		frozen: true,
	}, nil
}

// IsSnapshot reports whether the node was produced by Snapshot.
func (n *Node) IsSnapshot() bool {
	return n.frozen
}

// Scene is an in-memory Window.
type Scene struct {
	mu        sync.RWMutex
	bounds    domain.Rect
	root      View
	presented []View
	layers    []View
	swaps     int
}

// NewScene creates an empty window of the given size.
func NewScene(bounds domain.Rect) *Scene {
	return &Scene{bounds: bounds}
}

func (s *Scene) Bounds() domain.Rect { return s.bounds }

func (s *Scene) Root() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

// SetRoot replaces the root and dismisses every presented overlay.
func (s *Scene) SetRoot(v View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.root = v
	s.presented = nil
	s.layers = slices.DeleteFunc(s.layers, func(l View) bool { return l == v })
	s.swaps++
}

// RootSwaps counts SetRoot calls.
func (s *Scene) RootSwaps() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.swaps
}

func (s *Scene) Presented() []View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.presented)
}

func (s *Scene) Present(v View) {
	s.mu.Lock()
	s.presented = append(s.presented, v)
	s.mu.Unlock()
}

func (s *Scene) DismissAll() {
	s.mu.Lock()
	s.presented = nil
	s.mu.Unlock()
}

func (s *Scene) AddLayer(v View) {
	s.mu.Lock()
	s.layers = append(s.layers, v)
	s.mu.Unlock()
}

func (s *Scene) RemoveLayer(v View) {
	s.mu.Lock()
	s.layers = slices.DeleteFunc(s.layers, func(l View) bool { return l == v })
	s.mu.Unlock()
}

func (s *Scene) Layers() []View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.layers)
}

// Describe renders the hierarchy ids for logs and the CLI simulator.
func (s *Scene) Describe() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	root := "<none>"
	if s.root != nil {
		root = s.root.ID()
	}
	ids := func(vs []View) []string {
		out := make([]string, 0, len(vs))
		for _, v := range vs {
			out = append(out, v.ID())
		}
		return out
	}
	return fmt.Sprintf("root=%s presented=%v layers=%v", root, ids(s.presented), ids(s.layers))
}
