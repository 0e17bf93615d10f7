package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPairStable(t *testing.T) {
	s1 := ParticipantRef{ID: 1, Kind: KindStudent}
	m2 := ParticipantRef{ID: 2, Kind: KindMentor}

	// Both orderings resolve to the same (A, B) assignment.
	a1, b1 := CanonicalPair(s1, m2)
	a2, b2 := CanonicalPair(m2, s1)

	assert.Equal(t, a1, a2)
	assert.Equal(t, b1, b2)
	assert.Equal(t, m2, a1) // "mentor" sorts before "student"
	assert.Equal(t, s1, b1)
}

func TestCanonicalPairSameKindOrdersByID(t *testing.T) {
	s5 := ParticipantRef{ID: 5, Kind: KindStudent}
	s9 := ParticipantRef{ID: 9, Kind: KindStudent}

	a, b := CanonicalPair(s9, s5)

	assert.Equal(t, s5, a)
	assert.Equal(t, s9, b)
}

func TestParticipantKey(t *testing.T) {
	assert.Equal(t, "student:42", ParticipantRef{ID: 42, Kind: KindStudent}.Key())
	assert.Equal(t, "mentor:42", ParticipantRef{ID: 42, Kind: KindMentor}.Key())
}

func TestKindValid(t *testing.T) {
	assert.True(t, KindStudent.Valid())
	assert.True(t, KindMentor.Valid())
	assert.False(t, ParticipantKind("parent").Valid())
	assert.False(t, ParticipantKind("").Valid())
}

func TestChatSideHelpers(t *testing.T) {
	chat := &DirectChat{AID: 2, AKind: KindMentor, BID: 1, BKind: KindStudent}

	side, ok := chat.SideOf(ParticipantRef{ID: 2, Kind: KindMentor})
	assert.True(t, ok)
	assert.Equal(t, SideA, side)

	assert.Equal(t, ParticipantRef{ID: 1, Kind: KindStudent}, chat.Other(side))

	// The same id under the other kind is a different participant.
	_, ok = chat.SideOf(ParticipantRef{ID: 2, Kind: KindStudent})
	assert.False(t, ok)
}

func TestMessageConversationTaggedUnion(t *testing.T) {
	chatID := 10
	groupID := 3

	chatMsg := &Message{ChatID: &chatID}
	assert.Equal(t, ConversationRef{Type: ConversationChat, ID: 10}, chatMsg.Conversation())

	groupMsg := &Message{GroupID: &groupID}
	assert.Equal(t, ConversationRef{Type: ConversationGroup, ID: 3}, groupMsg.Conversation())
}
