package models

// libraryID is the wire/CLI spelling of the library parent. It is reserved:
// no routine may use it as an id.
const libraryID = "library"

// ParentRef identifies the single collection that owns a stack: either the
// unscheduled library or one routine. The zero value is the library.
type ParentRef struct {
	routineID string
}

// Library returns the reference to the unscheduled-stack library.
func Library() ParentRef {
	return ParentRef{}
}

// RoutineParent returns a reference to the routine with the given id.
func RoutineParent(id string) ParentRef {
	return ParentRef{routineID: id}
}

// ParseParentRef maps the CLI/storage spelling of a parent to a ParentRef.
// The literal "library" (or an empty string) means the library.
func ParseParentRef(s string) ParentRef {
	if s == "" || s == libraryID {
		return Library()
	}
	return ParentRef{routineID: s}
}

// IsLibrary reports whether the reference points at the library.
func (p ParentRef) IsLibrary() bool {
	return p.routineID == ""
}

// RoutineID returns the routine id and true when the reference points at a
// routine.
func (p ParentRef) RoutineID() (string, bool) {
	if p.routineID == "" {
		return "", false
	}
	return p.routineID, true
}

func (p ParentRef) String() string {
	if p.routineID == "" {
		return libraryID
	}
	return p.routineID
}

// IsReservedRoutineID reports whether an id collides with the library
// spelling and therefore may not name a routine.
func IsReservedRoutineID(id string) bool {
	return id == libraryID
}
