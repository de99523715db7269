package lock

// Access is one of the six lock modes a target can be requested or held
// under. The order below is load-bearing: the compatibility matrix is
// indexed by it, and re-ordering these constants without updating compat
// would silently change lock semantics.
type Access int

const (
	Shared Access = iota
	Exclusive
	Update
	IntentShared
	IntentExclusive
	SharedIntentExclusive

	numAccessModes = int(SharedIntentExclusive) + 1
)

func (a Access) String() string {
	switch a {
	case Shared:
		return "S"
	case Exclusive:
		return "X"
	case Update:
		return "U"
	case IntentShared:
		return "IS"
	case IntentExclusive:
		return "IX"
	case SharedIntentExclusive:
		return "SIX"
	default:
		return "?"
	}
}

// compat[request][existing] reports whether a request for the row mode is
// compatible with an already-held column mode. This literal table must be
// preserved bit-for-bit; it is not derived or computed.
var compat = [numAccessModes][numAccessModes]bool{
	Shared:                {true, true, true, true, true, false},
	Exclusive:             {true, true, true, false, false, false},
	Update:                {true, true, false, false, false, false},
	IntentShared:          {true, false, false, true, false, false},
	IntentExclusive:       {true, false, false, false, false, false},
	SharedIntentExclusive: {false, false, false, false, false, false},
}

// Compatible reports whether request can be granted given existing is
// already held by some transaction (possibly the same one requesting it —
// the matrix does not exempt self-held modes).
func Compatible(request, existing Access) bool {
	return compat[request][existing]
}
