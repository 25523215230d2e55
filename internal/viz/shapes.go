package viz

// Shape is the render payload tag associating an entity with its visual
// representation. Cycling shapes swaps how entities draw, never the entity
// geometry itself.
type Shape int

const (
	ShapeBox Shape = iota // filled rectangle
	ShapeRect             // rectangle outline
	ShapeBall             // ellipse inscribed in the bounding box
	ShapeStreak           // diagonal line across the bounding box
	ShapeDot              // single dot at the anchor
	shapeCount
)

var shapeNames = map[Shape]string{
	ShapeBox:    "box",
	ShapeRect:   "rect",
	ShapeBall:   "ball",
	ShapeStreak: "streak",
	ShapeDot:    "dot",
}

func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// Next returns the following shape, wrapping around.
func (s Shape) Next() Shape {
	return (s + 1) % shapeCount
}

// ParseShape maps a config/flag name to a Shape; unknown names fall back to
// the default box.
func ParseShape(name string) Shape {
	for s, n := range shapeNames {
		if n == name {
			return s
		}
	}
	return ShapeBox
}

// ShapeNames lists the accepted shape names in cycling order.
func ShapeNames() []string {
	names := make([]string, 0, int(shapeCount))
	for s := Shape(0); s < shapeCount; s++ {
		names = append(names, s.String())
	}
	return names
}

// DrawShape renders one entity bounding box (in dot coordinates) with the
// given payload.
func (c *Canvas) DrawShape(s Shape, x, y, w, h int) {
	switch s {
	case ShapeRect:
		c.DrawRect(x, y, w, h)
	case ShapeBall:
		c.DrawEllipse(x, y, w, h)
	case ShapeStreak:
		c.DrawLine(x, y, x+w-1, y+h-1)
	case ShapeDot:
		c.Set(x, y)
	default:
		c.FillRect(x, y, w, h)
	}
}
