package xmltok

// State is the lexing context that selects the dispatch table for the next
// character. Exactly one state is active at a time.
type State uint8

const (
	StateOutsideTag State = iota
	StateInStartTag
	StateAttlist
	StateTypeAttlist
	StateEntityList
	StateInDoctype
	StateInternalSubset
	StateInElementType
	StateInNotationType
	StateInAttlistType
	StateInEntityType
	StateInExternalID
	StateInProlog
)

var stateNames = [...]string{
	StateOutsideTag:     "OutsideTag",
	StateInStartTag:     "InStartTag",
	StateAttlist:        "Attlist",
	StateTypeAttlist:    "TypeAttlist",
	StateEntityList:     "EntityList",
	StateInDoctype:      "InDoctype",
	StateInternalSubset: "InternalSubset",
	StateInElementType:  "InElementType",
	StateInNotationType: "InNotationType",
	StateInAttlistType:  "InAttlistType",
	StateInEntityType:   "InEntityType",
	StateInExternalID:   "InExternalId",
	StateInProlog:       "InProlog",
}

// String returns a stable name for the state, suitable for debugging.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// quoted reports whether the state lexes the inside of a quoted literal.
func (s State) quoted() bool {
	return s == StateAttlist || s == StateTypeAttlist || s == StateEntityList
}

// declaration reports whether the state lexes a markup declaration body.
func (s State) declaration() bool {
	switch s {
	case StateInElementType, StateInNotationType, StateInAttlistType, StateInEntityType:
		return true
	default:
		return false
	}
}

// dtd reports whether the state belongs to a DOCTYPE declaration.
func (s State) dtd() bool {
	return s == StateInDoctype || s == StateInternalSubset || s == StateInExternalID || s.declaration()
}
