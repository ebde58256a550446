// Package projector keeps the client's local copy of a board and applies card
// moves to it before the server has confirmed them.
//
// A move goes Idle -> Dragging -> Dropped. Dropping on another list mutates the
// local view at once and returns a PendingMove; the caller sends it to the
// server and then calls Confirm or Rollback with its ID. Rollback restores the
// card to the list and index it was dragged from.
package projector

import (
	"errors"

	"taskboard/internal/client"

	"github.com/google/uuid"
)

var (
	ErrUnknownCard     = errors.New("card is not on this board")
	ErrAlreadyDragging = errors.New("another card is being dragged")
	ErrMovePending     = errors.New("card is still waiting for the server to confirm its last move")
)

// PendingMove is a move applied locally but not yet confirmed by the server.
type PendingMove struct {
	ID             uuid.UUID
	CardID         string
	SourceListID   string
	TargetListID   string
	TargetPosition int

	original    client.Card
	sourceIndex int
}

type drag struct {
	cardID string
	listID string
}

type Projector struct {
	lists   []client.List
	cards   map[string][]client.Card
	drag    *drag
	pending []*PendingMove
}

// New builds a projector over lists (in display order) and each list's cards
// keyed by list id.
func New(lists []client.List, cards map[string][]client.Card) *Projector {
	p := &Projector{}
	p.Reset(lists, cards)
	return p
}

// Reset replaces the local view with a fresh server snapshot. Any drag in
// progress and all pending moves are forgotten.
func (p *Projector) Reset(lists []client.List, cards map[string][]client.Card) {
	p.lists = append([]client.List(nil), lists...)
	p.cards = make(map[string][]client.Card, len(lists))
	for _, l := range lists {
		p.cards[l.ID] = append([]client.Card(nil), cards[l.ID]...)
	}
	p.drag = nil
	p.pending = nil
}

func (p *Projector) Lists() []client.List {
	return append([]client.List(nil), p.lists...)
}

func (p *Projector) Cards(listID string) []client.Card {
	return append([]client.Card(nil), p.cards[listID]...)
}

func (p *Projector) AddList(list client.List) {
	p.lists = append(p.lists, list)
	if _, ok := p.cards[list.ID]; !ok {
		p.cards[list.ID] = nil
	}
}

// AddCard appends card to its list. Cards for unknown lists are ignored.
func (p *Projector) AddCard(card client.Card) {
	if !p.hasList(card.ListID) {
		return
	}
	p.cards[card.ListID] = append(p.cards[card.ListID], card)
}

// BeginDrag picks up cardID. A card with an unconfirmed move stays put until
// that move is confirmed or rolled back.
func (p *Projector) BeginDrag(cardID string) error {
	if p.drag != nil {
		return ErrAlreadyDragging
	}
	if p.hasPending(cardID) {
		return ErrMovePending
	}
	listID, _, ok := p.locate(cardID)
	if !ok {
		return ErrUnknownCard
	}
	p.drag = &drag{cardID: cardID, listID: listID}
	return nil
}

// Dragging returns the id of the card being dragged.
func (p *Projector) Dragging() (string, bool) {
	if p.drag == nil {
		return "", false
	}
	return p.drag.cardID, true
}

// DragSource returns the list the dragged card was picked up from.
func (p *Projector) DragSource() (string, bool) {
	if p.drag == nil {
		return "", false
	}
	return p.drag.listID, true
}

// Cancel ends a drag without changing anything.
func (p *Projector) Cancel() {
	p.drag = nil
}

// Drop releases the dragged card over targetListID. The card leaves its list
// and is appended to the target, and the returned move carries the target's
// length before the append as the position to send. Dropping on an unknown
// list or on the card's own list ends the drag with no change and returns false.
func (p *Projector) Drop(targetListID string) (*PendingMove, bool) {
	d := p.drag
	p.drag = nil
	if d == nil || !p.hasList(targetListID) || targetListID == d.listID {
		return nil, false
	}

	sourceIndex := p.indexIn(d.listID, d.cardID)
	if sourceIndex < 0 {
		return nil, false
	}
	original := p.cards[d.listID][sourceIndex]
	p.cards[d.listID] = removeAt(p.cards[d.listID], sourceIndex)

	position := len(p.cards[targetListID])
	moved := original
	moved.ListID = targetListID
	moved.Position = position
	p.cards[targetListID] = append(p.cards[targetListID], moved)

	move := &PendingMove{
		ID:             uuid.New(),
		CardID:         original.ID,
		SourceListID:   d.listID,
		TargetListID:   targetListID,
		TargetPosition: position,
		original:       original,
		sourceIndex:    sourceIndex,
	}
	p.pending = append(p.pending, move)
	return move, true
}

// Pending returns unconfirmed moves, oldest first.
func (p *Projector) Pending() []PendingMove {
	out := make([]PendingMove, len(p.pending))
	for i, m := range p.pending {
		out[i] = *m
	}
	return out
}

// Confirm forgets a move the server accepted.
func (p *Projector) Confirm(id uuid.UUID) bool {
	_, ok := p.takePending(id)
	return ok
}

// Rollback undoes a move the server rejected: the card goes back to its source
// list at the index it was dragged from.
func (p *Projector) Rollback(id uuid.UUID) bool {
	move, ok := p.takePending(id)
	if !ok {
		return false
	}

	if listID, idx, found := p.locate(move.CardID); found {
		p.cards[listID] = removeAt(p.cards[listID], idx)
	}
	if !p.hasList(move.SourceListID) {
		return true
	}

	cards := p.cards[move.SourceListID]
	idx := min(move.sourceIndex, len(cards))
	cards = append(cards, client.Card{})
	copy(cards[idx+1:], cards[idx:])
	cards[idx] = move.original
	p.cards[move.SourceListID] = cards
	return true
}

func (p *Projector) hasPending(cardID string) bool {
	for _, m := range p.pending {
		if m.CardID == cardID {
			return true
		}
	}
	return false
}

func (p *Projector) takePending(id uuid.UUID) (*PendingMove, bool) {
	for i, m := range p.pending {
		if m.ID == id {
			p.pending = append(p.pending[:i], p.pending[i+1:]...)
			return m, true
		}
	}
	return nil, false
}

func (p *Projector) hasList(listID string) bool {
	_, ok := p.cards[listID]
	return ok
}

func (p *Projector) indexIn(listID, cardID string) int {
	for i, c := range p.cards[listID] {
		if c.ID == cardID {
			return i
		}
	}
	return -1
}

func (p *Projector) locate(cardID string) (string, int, bool) {
	for _, l := range p.lists {
		if idx := p.indexIn(l.ID, cardID); idx >= 0 {
			return l.ID, idx, true
		}
	}
	return "", -1, false
}

func removeAt(cards []client.Card, i int) []client.Card {
	out := make([]client.Card, 0, len(cards)-1)
	out = append(out, cards[:i]...)
	return append(out, cards[i+1:]...)
}
