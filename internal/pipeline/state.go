package pipeline

// State is a step of a digest run. A run moves through the states in
// declaration order and always ends in StateDone.
type State int

const (
	StateInit State = iota
	StateScraping
	StateAggregating
	StateDeduplicating
	StateRanking
	StateRendering
	StateDelivering
	StateDone
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateScraping:
		return "scraping"
	case StateAggregating:
		return "aggregating"
	case StateDeduplicating:
		return "deduplicating"
	case StateRanking:
		return "ranking"
	case StateRendering:
		return "rendering"
	case StateDelivering:
		return "delivering"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
