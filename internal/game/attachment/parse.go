package attachment

import "iter"

// Source is a read-only view of the attachments available per firearm.
// Traversal order must be deterministic.
type Source interface {
	All() iter.Seq2[string, []Identifier]
}

// TryParse returns the first identifier in src whose Name renders exactly as
// s. Matching is case-sensitive with no trimming. On a miss it returns the
// zero Identifier and false.
func TryParse(src Source, s string) (Identifier, bool) {
	if src == nil {
		return Identifier{}, false
	}
	for _, ids := range src.All() {
		for _, id := range ids {
			if id.name.String() == s {
				return id, true
			}
		}
	}
	return Identifier{}, false
}

// TryParseName is TryParse returning only the matched Name.
func TryParseName(src Source, s string) (Name, bool) {
	id, ok := TryParse(src, s)
	if !ok {
		return NameNone, false
	}
	return id.name, true
}
