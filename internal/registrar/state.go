package registrar

// State is the registrar's lifecycle position.
type State int

const (
	// Unregistered is the initial state and the state after Deactivate.
	Unregistered State = iota
	// BaseRegistered means base capabilities are live and the native
	// module was not available.
	BaseRegistered
	// FullyRegistered means dependent capabilities are live as well.
	FullyRegistered
)

func (s State) String() string {
	switch s {
	case Unregistered:
		return "unregistered"
	case BaseRegistered:
		return "base registered"
	case FullyRegistered:
		return "fully registered"
	default:
		return "unknown"
	}
}
