package domain

import "fmt"

// ParticipantKind tags which account table a participant reference
// resolves against. Students and mentors share the integer id range,
// so the kind can never be inferred from the id alone.
type ParticipantKind string

const (
	KindStudent ParticipantKind = "student"
	KindMentor  ParticipantKind = "mentor"
)

// Valid reports whether the kind is one of the two known tags.
func (k ParticipantKind) Valid() bool {
	return k == KindStudent || k == KindMentor
}

// ParticipantRef is a polymorphic reference to either a student or a
// mentor account. It is not a database foreign key; the resolver
// validates it against the account tables at the application boundary.
type ParticipantRef struct {
	ID   int             `json:"id"`
	Kind ParticipantKind `json:"kind"`
}

// Key returns the canonical string form, e.g. "student:42".
// Used as the WebSocket hub and cache key.
func (p ParticipantRef) Key() string {
	return fmt.Sprintf("%s:%d", p.Kind, p.ID)
}

// Equal reports whether two references point at the same account.
func (p ParticipantRef) Equal(o ParticipantRef) bool {
	return p.ID == o.ID && p.Kind == o.Kind
}

// Less defines the stable total order used to canonicalize direct chat
// pairs: kind first (lexical), then id. All callers must order pairs
// through this comparator so (A,B) and (B,A) hit the same row.
func (p ParticipantRef) Less(o ParticipantRef) bool {
	if p.Kind != o.Kind {
		return p.Kind < o.Kind
	}
	return p.ID < o.ID
}

// CanonicalPair orders two participant references into the (A, B)
// positions of a direct chat row.
func CanonicalPair(x, y ParticipantRef) (a, b ParticipantRef) {
	if y.Less(x) {
		return y, x
	}
	return x, y
}

// Account is the resolved view of a participant reference, backed by
// either a student or a mentor row.
type Account struct {
	ID    int             `json:"id"`
	Kind  ParticipantKind `json:"kind"`
	Name  string          `json:"name"`
	Email string          `json:"email"`
}

// Ref returns the participant reference for this account.
func (a *Account) Ref() ParticipantRef {
	return ParticipantRef{ID: a.ID, Kind: a.Kind}
}
