// Package tui is the terminal board client. Cards are moved with the keyboard:
// space picks a card up, h/l choose the target list and enter drops it there.
package tui

import (
	"fmt"
	"strings"

	"taskboard/internal/client"
	"taskboard/internal/projector"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type appState int

const (
	statePicker appState = iota // choosing a board
	stateBoard                  // looking at one board
)

type inputKind int

const (
	inputNone inputKind = iota
	inputBoard
	inputList
	inputCard
)

type boardItem struct {
	board client.Board
}

func (i boardItem) Title() string       { return i.board.Name }
func (i boardItem) Description() string { return "created " + i.board.CreatedAt.Local().Format("2006-01-02 15:04") }
func (i boardItem) FilterValue() string { return i.board.Name }

// App is the bubbletea model for the whole client.
type App struct {
	api   BoardAPI
	state appState

	picker list.Model
	input  textinput.Model
	inputs inputKind

	board     client.Board
	view      *projector.Projector
	focusList int
	focusCard int
	// dropTarget is the list index under the dragged card.
	dropTarget int

	statusMsg string
	loading   bool

	width  int
	height int
}

func NewApp(api BoardAPI) *App {
	picker := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	picker.Title = "Boards"
	picker.SetShowStatusBar(false)
	picker.SetFilteringEnabled(false)

	input := textinput.New()
	input.CharLimit = 200

	return &App{
		api:    api,
		state:  statePicker,
		picker: picker,
		input:  input,
		view:   projector.New(nil, nil),
	}
}

func (a *App) Init() tea.Cmd {
	a.loading = true
	return a.loadBoards()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.picker.SetSize(max(0, msg.Width-4), max(0, msg.Height-6))
		return a, nil

	case boardsLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Loading boards failed: %v", msg.err)
			return a, nil
		}
		items := make([]list.Item, len(msg.boards))
		for i, b := range msg.boards {
			items[i] = boardItem{board: b}
		}
		a.picker.SetItems(items)
		if len(items) == 0 {
			a.statusMsg = "No boards yet. Press n to create one."
		} else {
			a.statusMsg = ""
		}
		return a, nil

	case boardLoadedMsg:
		a.loading = false
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Loading %s failed: %v", msg.board.Name, msg.err)
			return a, nil
		}
		a.state = stateBoard
		a.board = msg.board
		a.view.Reset(msg.lists, msg.cards)
		a.focusList = min(a.focusList, max(0, len(msg.lists)-1))
		a.clampCard()
		a.statusMsg = ""
		return a, nil

	case boardCreatedMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Creating board failed: %v", msg.err)
			return a, nil
		}
		a.picker.InsertItem(len(a.picker.Items()), boardItem{board: *msg.board})
		a.picker.Select(len(a.picker.Items()) - 1)
		a.statusMsg = fmt.Sprintf("Created board %s", msg.board.Name)
		return a, nil

	case listCreatedMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Creating list failed: %v", msg.err)
			return a, nil
		}
		if msg.list.BoardID == a.board.ID {
			a.view.AddList(*msg.list)
			a.focusList = len(a.view.Lists()) - 1
			a.clampCard()
		}
		a.statusMsg = fmt.Sprintf("Added list %s", msg.list.Name)
		return a, nil

	case cardCreatedMsg:
		if msg.err != nil {
			a.statusMsg = fmt.Sprintf("Creating card failed: %v", msg.err)
			return a, nil
		}
		a.view.AddCard(*msg.card)
		a.statusMsg = "Card added"
		return a, nil

	case moveResultMsg:
		if msg.err != nil {
			if a.view.Rollback(msg.moveID) {
				a.clampCard()
				if client.IsNotFound(msg.err) {
					a.statusMsg = "Move failed: card or list no longer available, press r to reload"
				} else {
					a.statusMsg = fmt.Sprintf("Move failed, card put back: %v", msg.err)
				}
			}
			return a, nil
		}
		a.view.Confirm(msg.moveID)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.inputs != inputNone {
			return a.updateInput(msg)
		}
		if a.state == stateBoard {
			return a.updateBoard(msg)
		}
		return a.updatePicker(msg)
	}

	if a.inputs != inputNone {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		a.loading = true
		return a, a.loadBoards()
	case "n":
		return a, a.startInput(inputBoard, "Board name")
	case "enter":
		item, ok := a.picker.SelectedItem().(boardItem)
		if !ok {
			return a, nil
		}
		a.loading = true
		a.focusList, a.focusCard = 0, 0
		a.statusMsg = fmt.Sprintf("Opening %s...", item.board.Name)
		return a, a.loadBoard(item.board)
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)
	return a, cmd
}

func (a *App) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	lists := a.view.Lists()
	_, dragging := a.view.Dragging()

	if dragging {
		switch msg.String() {
		case "left", "h":
			if a.dropTarget > 0 {
				a.dropTarget--
			}
		case "right", "l":
			if a.dropTarget < len(lists)-1 {
				a.dropTarget++
			}
		case "enter":
			return a.drop()
		case "esc":
			a.view.Cancel()
			a.statusMsg = "Move cancelled"
		case "q":
			return a, tea.Quit
		}
		return a, nil
	}

	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc":
		a.state = statePicker
		a.view.Reset(nil, nil)
		a.statusMsg = ""
		return a, a.loadBoards()
	case "r":
		a.loading = true
		return a, a.loadBoard(a.board)
	case "left", "h":
		if a.focusList > 0 {
			a.focusList--
			a.clampCard()
		}
	case "right", "l":
		if a.focusList < len(lists)-1 {
			a.focusList++
			a.clampCard()
		}
	case "up", "k":
		if a.focusCard > 0 {
			a.focusCard--
		}
	case "down", "j":
		if a.focusCard < len(a.focusedCards())-1 {
			a.focusCard++
		}
	case " ":
		card, ok := a.focusedCard()
		if !ok {
			return a, nil
		}
		if err := a.view.BeginDrag(card.ID); err != nil {
			a.statusMsg = err.Error()
			return a, nil
		}
		a.dropTarget = a.focusList
		a.statusMsg = fmt.Sprintf("Moving %q: h/l choose a list, enter drops, esc cancels", card.Content)
	case "a":
		if len(lists) == 0 {
			a.statusMsg = "Add a list first (L)"
			return a, nil
		}
		return a, a.startInput(inputCard, "Card content")
	case "L":
		return a, a.startInput(inputList, "List name")
	}
	return a, nil
}

// drop releases the dragged card over the current drop target. The local view
// changes before the move request is issued.
func (a *App) drop() (tea.Model, tea.Cmd) {
	lists := a.view.Lists()
	target := ""
	if a.dropTarget >= 0 && a.dropTarget < len(lists) {
		target = lists[a.dropTarget].ID
	}
	source, _ := a.view.DragSource()

	move, ok := a.view.Drop(target)
	if !ok {
		a.statusMsg = ""
		if target != "" && target == source {
			a.statusMsg = "Card is already in that list"
		}
		return a, nil
	}

	a.focusList = a.dropTarget
	a.focusCard = move.TargetPosition
	a.clampCard()
	a.statusMsg = ""
	return a, a.confirmMove(*move)
}

func (a *App) startInput(kind inputKind, placeholder string) tea.Cmd {
	a.inputs = kind
	a.input.Reset()
	a.input.Placeholder = placeholder
	return a.input.Focus()
}

func (a *App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.inputs = inputNone
		a.input.Blur()
		return a, nil
	case "enter":
		value := strings.TrimSpace(a.input.Value())
		kind := a.inputs
		a.inputs = inputNone
		a.input.Blur()
		if value == "" {
			return a, nil
		}
		switch kind {
		case inputBoard:
			return a, a.createBoard(value)
		case inputList:
			return a, a.createList(a.board.ID, value)
		case inputCard:
			lists := a.view.Lists()
			if a.focusList >= len(lists) {
				return a, nil
			}
			return a, a.createCard(lists[a.focusList].ID, value)
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) focusedCards() []client.Card {
	lists := a.view.Lists()
	if a.focusList < 0 || a.focusList >= len(lists) {
		return nil
	}
	return a.view.Cards(lists[a.focusList].ID)
}

func (a *App) focusedCard() (client.Card, bool) {
	cards := a.focusedCards()
	if a.focusCard < 0 || a.focusCard >= len(cards) {
		return client.Card{}, false
	}
	return cards[a.focusCard], true
}

func (a *App) clampCard() {
	n := len(a.focusedCards())
	if a.focusCard >= n {
		a.focusCard = n - 1
	}
	if a.focusCard < 0 {
		a.focusCard = 0
	}
}
