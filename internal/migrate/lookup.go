package migrate

import (
	"github.com/openmined/drivemirror/internal/remote"
)

type LookupResult int

const (
	LookupAbsent LookupResult = iota
	LookupUnique
	LookupAmbiguous
)

func (r LookupResult) String() string {
	switch r {
	case LookupAbsent:
		return "absent"
	case LookupUnique:
		return "unique"
	case LookupAmbiguous:
		return "ambiguous"
	}
	return "unknown"
}

// Lookup is the outcome of finding a child by name. Entry is set only when Result is LookupUnique.
type Lookup struct {
	Result  LookupResult
	Entry   *remote.Entry
	Matches []*remote.Entry
}

func lookupOf(matches []*remote.Entry) Lookup {
	switch len(matches) {
	case 0:
		return Lookup{Result: LookupAbsent}
	case 1:
		return Lookup{Result: LookupUnique, Entry: matches[0], Matches: matches}
	default:
		return Lookup{Result: LookupAmbiguous, Matches: matches}
	}
}

// childIndex groups the children of a single folder by name. It lives only as long as the
// synchronize call that built it.
type childIndex map[string][]*remote.Entry

func newChildIndex(children []*remote.Entry) childIndex {
	idx := make(childIndex, len(children))
	for _, c := range children {
		idx[c.Name] = append(idx[c.Name], c)
	}
	return idx
}

func (idx childIndex) lookup(name string) Lookup {
	return lookupOf(idx[name])
}
