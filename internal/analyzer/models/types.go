package models

// ============================================================
// Floor Plan Document
// ============================================================

// WallSide — сторона комнаты, на которой стоит стена
type WallSide string

const (
	SideNorth WallSide = "north"
	SideSouth WallSide = "south"
	SideEast  WallSide = "east"
	SideWest  WallSide = "west"
)

// Valid сообщает, что сторона одна из четырех допустимых.
func (s WallSide) Valid() bool {
	switch s {
	case SideNorth, SideSouth, SideEast, SideWest:
		return true
	}
	return false
}

// Horizontal: северные и южные стены лежат вдоль ширины комнаты.
func (s WallSide) Horizontal() bool {
	return s == SideNorth || s == SideSouth
}

// WallType — конструктивный тип стены
type WallType string

const (
	WallBuilding WallType = "building"
	WallExterior WallType = "exterior"
	WallInterior WallType = "interior"
	WallNone     WallType = "none"
)

// ============================================================
// Geometry primitives
// ============================================================

// Bounds — прямоугольник комнаты, origin в левом верхнем углу плана
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ============================================================
// Plan elements
// ============================================================

type Wall struct {
	Side WallSide `json:"side"`
	Type WallType `json:"type"`
}

// Opening — дверь или окно; Position — смещение вдоль стены до начала проема
type Opening struct {
	Wall     WallSide `json:"wall"`
	Type     string   `json:"type"` // door, window
	Position float64  `json:"position"`
	Width    float64  `json:"width"`
}

// Room держит Bounds указателем: отсутствие bounds — ошибка валидации,
// а не нулевой прямоугольник.
type Room struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"` // bedroom, kitchen, ...
	Bounds   *Bounds   `json:"bounds,omitempty"`
	Walls    []Wall    `json:"walls,omitempty"`
	Openings []Opening `json:"openings,omitempty"`
}

// Apartment — корневой документ. Создается и сериализуется снаружи,
// все операции получают его по ссылке и не копируют.
type Apartment struct {
	Meta  map[string]any `json:"meta,omitempty"`
	Rooms []Room         `json:"rooms"`
}

// MetaName достает meta.name, пустая строка если его нет.
func (a *Apartment) MetaName() string {
	if a.Meta == nil {
		return ""
	}
	if name, ok := a.Meta["name"].(string); ok {
		return name
	}
	return ""
}
