package projector

import (
	"testing"

	"taskboard/internal/client"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func board() *Projector {
	lists := []client.List{{ID: "A", Position: 0}, {ID: "B", Position: 1}}
	cards := map[string][]client.Card{
		"A": {{ID: "a1", ListID: "A", Position: 0}, {ID: "a2", ListID: "A", Position: 1}, {ID: "a3", ListID: "A", Position: 2}},
		"B": {{ID: "b1", ListID: "B", Position: 0}, {ID: "b2", ListID: "B", Position: 1}},
	}
	return New(lists, cards)
}

func ids(cards []client.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

func TestDrop_ProjectsBeforeConfirmation(t *testing.T) {
	p := board()

	require.NoError(t, p.BeginDrag("a2"))
	move, ok := p.Drop("B")

	require.True(t, ok)
	assert.Equal(t, []string{"a1", "a3"}, ids(p.Cards("A")))
	assert.Equal(t, []string{"b1", "b2", "a2"}, ids(p.Cards("B")))
	assert.Equal(t, "B", p.Cards("B")[2].ListID)
	assert.Equal(t, 2, move.TargetPosition)
	assert.Equal(t, "a2", move.CardID)
	assert.Equal(t, "A", move.SourceListID)
	assert.Equal(t, "B", move.TargetListID)
	assert.NotEqual(t, uuid.Nil, move.ID)
	assert.Len(t, p.Pending(), 1)

	_, dragging := p.Dragging()
	assert.False(t, dragging)
}

func TestConfirm_KeepsProjection(t *testing.T) {
	p := board()
	require.NoError(t, p.BeginDrag("a1"))
	move, _ := p.Drop("B")

	assert.True(t, p.Confirm(move.ID))
	assert.False(t, p.Confirm(move.ID))

	assert.Empty(t, p.Pending())
	assert.Equal(t, []string{"b1", "b2", "a1"}, ids(p.Cards("B")))
}

func TestRollback_RestoresSourceIndex(t *testing.T) {
	p := board()
	require.NoError(t, p.BeginDrag("a2"))
	move, _ := p.Drop("B")

	assert.True(t, p.Rollback(move.ID))

	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(p.Cards("A")))
	assert.Equal(t, []string{"b1", "b2"}, ids(p.Cards("B")))
	assert.Equal(t, "A", p.Cards("A")[1].ListID)
	assert.Equal(t, 1, p.Cards("A")[1].Position)
	assert.Empty(t, p.Pending())
	assert.False(t, p.Rollback(move.ID))
}

func TestRollback_OutOfOrder(t *testing.T) {
	p := board()
	require.NoError(t, p.BeginDrag("a1"))
	first, _ := p.Drop("B")
	require.NoError(t, p.BeginDrag("a3"))
	second, _ := p.Drop("B")
	assert.Equal(t, 3, second.TargetPosition)

	require.True(t, p.Confirm(second.ID))
	require.True(t, p.Rollback(first.ID))

	assert.Equal(t, []string{"a1", "a2"}, ids(p.Cards("A")))
	assert.Equal(t, []string{"b1", "b2", "a3"}, ids(p.Cards("B")))
}

func TestDrop_OutsideTargetChangesNothing(t *testing.T) {
	p := board()
	require.NoError(t, p.BeginDrag("a1"))

	move, ok := p.Drop("nowhere")

	assert.False(t, ok)
	assert.Nil(t, move)
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(p.Cards("A")))
	assert.Equal(t, []string{"b1", "b2"}, ids(p.Cards("B")))
	assert.Empty(t, p.Pending())
	_, dragging := p.Dragging()
	assert.False(t, dragging)
}

func TestDrop_SameListIsNoop(t *testing.T) {
	p := board()
	require.NoError(t, p.BeginDrag("a3"))

	_, ok := p.Drop("A")

	assert.False(t, ok)
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(p.Cards("A")))
	assert.Empty(t, p.Pending())
}

func TestDrop_WithoutDrag(t *testing.T) {
	p := board()

	_, ok := p.Drop("B")

	assert.False(t, ok)
}

func TestBeginDrag_Errors(t *testing.T) {
	p := board()

	assert.ErrorIs(t, p.BeginDrag("zz"), ErrUnknownCard)
	require.NoError(t, p.BeginDrag("b1"))
	assert.ErrorIs(t, p.BeginDrag("a1"), ErrAlreadyDragging)

	source, ok := p.DragSource()
	assert.True(t, ok)
	assert.Equal(t, "B", source)

	p.Cancel()
	assert.NoError(t, p.BeginDrag("a1"))
}

func TestDrop_IntoEmptyList(t *testing.T) {
	p := board()
	p.AddList(client.List{ID: "C", Position: 2})
	require.NoError(t, p.BeginDrag("b2"))

	move, ok := p.Drop("C")

	require.True(t, ok)
	assert.Equal(t, 0, move.TargetPosition)
	assert.Equal(t, []string{"b2"}, ids(p.Cards("C")))
	assert.Len(t, p.Lists(), 3)
}

func TestAddCard(t *testing.T) {
	p := board()

	p.AddCard(client.Card{ID: "b3", ListID: "B", Position: 2})
	p.AddCard(client.Card{ID: "x", ListID: "missing"})

	assert.Equal(t, []string{"b1", "b2", "b3"}, ids(p.Cards("B")))
	assert.Empty(t, p.Cards("missing"))
}

func TestReset_DropsPendingAndDrag(t *testing.T) {
	p := board()
	require.NoError(t, p.BeginDrag("a1"))
	_, _ = p.Drop("B")
	require.NoError(t, p.BeginDrag("a2"))

	p.Reset([]client.List{{ID: "A"}}, map[string][]client.Card{"A": {{ID: "a1", ListID: "A"}}})

	assert.Empty(t, p.Pending())
	_, dragging := p.Dragging()
	assert.False(t, dragging)
	assert.Equal(t, []string{"a1"}, ids(p.Cards("A")))
}

func TestSnapshotsAreCopies(t *testing.T) {
	p := board()

	cards := p.Cards("A")
	cards[0].ID = "mutated"

	assert.Equal(t, "a1", p.Cards("A")[0].ID)
}

func TestBeginDrag_RejectsCardWithPendingMove(t *testing.T) {
	p := board()
	p.AddList(client.List{ID: "C", Position: 2})
	require.NoError(t, p.BeginDrag("a1"))
	first, _ := p.Drop("B")

	assert.ErrorIs(t, p.BeginDrag("a1"), ErrMovePending)
	_, dragging := p.Dragging()
	assert.False(t, dragging)

	_, ok := p.Drop("C")
	assert.False(t, ok)
	require.Len(t, p.Pending(), 1)

	require.True(t, p.Rollback(first.ID))
	assert.Equal(t, []string{"a1", "a2", "a3"}, ids(p.Cards("A")))
	assert.Equal(t, []string{"b1", "b2"}, ids(p.Cards("B")))
	assert.Empty(t, p.Cards("C"))
}

func TestBeginDrag_AllowedAgainAfterConfirm(t *testing.T) {
	p := board()
	p.AddList(client.List{ID: "C", Position: 2})
	require.NoError(t, p.BeginDrag("a1"))
	first, _ := p.Drop("B")
	require.True(t, p.Confirm(first.ID))

	require.NoError(t, p.BeginDrag("a1"))
	second, ok := p.Drop("C")

	require.True(t, ok)
	assert.Equal(t, "B", second.SourceListID)
	require.True(t, p.Rollback(second.ID))
	assert.Equal(t, []string{"b1", "b2", "a1"}, ids(p.Cards("B")))
	assert.Empty(t, p.Cards("C"))
}
