package listing

// Rect is an on-screen bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Point is an on-screen position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// menuGap separates the menu from its trigger button.
const menuGap = 4

// MenuAnchors places the per-row action menu. It maps row ids to the
// measured bounds of their trigger buttons; entries only live while a menu
// is open.
type MenuAnchors struct {
	width, height float64
	bounds        map[string]Rect
	openRow       string
	position      Point
}

// NewMenuAnchors creates anchors for a menu of the given size
func NewMenuAnchors(width, height float64) *MenuAnchors {
	return &MenuAnchors{
		width:  width,
		height: height,
		bounds: make(map[string]Rect),
	}
}

// Open opens the menu for rowID whose trigger currently sits at trigger.
// The position is only recomputed when the open target changes.
func (m *MenuAnchors) Open(rowID string, trigger Rect, viewportHeight float64) Point {
	if m.openRow == rowID {
		return m.position
	}
	m.bounds = map[string]Rect{rowID: trigger}
	m.openRow = rowID
	m.position = m.place(trigger, viewportHeight)
	return m.position
}

// place right-aligns the menu under the trigger, flipping above it when it
// would overflow the viewport.
func (m *MenuAnchors) place(trigger Rect, viewportHeight float64) Point {
	x := trigger.X + trigger.Width - m.width
	if x < 0 {
		x = 0
	}
	y := trigger.Y + trigger.Height + menuGap
	if viewportHeight > 0 && y+m.height > viewportHeight {
		if above := trigger.Y - m.height - menuGap; above >= 0 {
			y = above
		}
	}
	return Point{X: x, Y: y}
}

// Close closes the menu and forgets measured bounds
func (m *MenuAnchors) Close() {
	m.openRow = ""
	m.position = Point{}
	m.bounds = make(map[string]Rect)
}

// OpenRow returns the row whose menu is open
func (m *MenuAnchors) OpenRow() (string, bool) {
	return m.openRow, m.openRow != ""
}

// Bounds returns the measured trigger bounds for rowID while its menu is open
func (m *MenuAnchors) Bounds(rowID string) (Rect, bool) {
	r, ok := m.bounds[rowID]
	return r, ok
}
