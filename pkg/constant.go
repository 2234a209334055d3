package pkg

// enum of vertex group
type Group uint8

const (
	UNASSIGNED Group = iota
	GROUP_A
	GROUP_B
)

func (g Group) String() string {
	switch g {
	case GROUP_A:
		return "A"
	case GROUP_B:
		return "B"
	default:
		return "unassigned"
	}
}

// Other returns the opposite side of a bisection. UNASSIGNED has no opposite side.
func (g Group) Other() Group {
	switch g {
	case GROUP_A:
		return GROUP_B
	case GROUP_B:
		return GROUP_A
	default:
		return UNASSIGNED
	}
}

type PartitionState uint8

const (
	INITIALIZING PartitionState = iota
	SPLITTING
	IMPROVING
	CONVERGED
)

func (s PartitionState) String() string {
	switch s {
	case INITIALIZING:
		return "initializing"
	case SPLITTING:
		return "splitting"
	case IMPROVING:
		return "improving"
	default:
		return "converged"
	}
}

const (
	DEFAULT_PASSES  = 1
	MAX_PASSES      = 64
	DEFAULT_WORKERS = 1
	NO_SHUFFLE      = -1

	// about a second of swap selection per request on one core
	DEFAULT_MAX_VERTICES = 2000
)
