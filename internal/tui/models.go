package tui

type View int

const (
	ViewSearch View = iota
	ViewDetail
	ViewTrending
)

func (v View) String() string {
	switch v {
	case ViewDetail:
		return "detail"
	case ViewTrending:
		return "trending"
	default:
		return "search"
	}
}
