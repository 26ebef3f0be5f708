package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func press(t *testing.T, m model, keys ...string) model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEscape}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "left":
			msg = tea.KeyMsg{Type: tea.KeyLeft}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestModelCursor(t *testing.T) {
	m := newModel(ParseBoard(StandardLayout), NewSampler(NewSeededSource(1)))
	if m.cursor != (Position{0, 7}) {
		t.Fatalf("cursor starts at %v, want a1", m.cursor)
	}

	m = press(t, m, "left", "down")
	if m.cursor != (Position{0, 7}) {
		t.Errorf("cursor left the board: %v", m.cursor)
	}

	m = press(t, m, "up", "k", "right", "l")
	if m.cursor != (Position{2, 5}) {
		t.Errorf("cursor = %v, want c3", m.cursor)
	}
}

func TestModelSelectAndMove(t *testing.T) {
	m := newModel(ParseBoard(StandardLayout), NewSampler(NewSeededSource(1)))

	// Select the b1 knight.
	m = press(t, m, "right", "enter")
	if m.selected == nil || *m.selected != (Position{1, 7}) {
		t.Fatalf("selected = %v, want b1", m.selected)
	}
	if len(m.targets) != 2 {
		t.Errorf("targets = %v, want two knight moves", m.targets)
	}

	// b1 to b3 is not a knight move.
	m = press(t, m, "up", "up", "enter")
	if !strings.Contains(m.status, "Illegal move") {
		t.Errorf("status = %q, want an illegal move report", m.status)
	}
	if m.selected == nil {
		t.Fatal("illegal move should keep the selection")
	}

	// b1 to c3.
	m = press(t, m, "right", "enter")
	if m.selected != nil {
		t.Error("selection should clear after a move")
	}
	if p, _ := m.board.At(Position{2, 5}).Piece(); p != (Piece{Knight, White}) {
		t.Errorf("c3 = %v, want White Knight", p)
	}
	if !m.board.At(Position{1, 7}).Empty() {
		t.Error("b1 should be empty")
	}
	if !strings.Contains(m.status, "Last move") {
		t.Errorf("status = %q, want last move", m.status)
	}
}

func TestModelDeselect(t *testing.T) {
	m := newModel(ParseBoard(StandardLayout), NewSampler(NewSeededSource(1)))

	m = press(t, m, "enter", "esc")
	if m.selected != nil || m.targets != nil {
		t.Error("esc should clear the selection")
	}
	m = press(t, m, "enter", "enter")
	if m.selected != nil {
		t.Error("choosing the selected square again should deselect")
	}

	// Empty squares cannot be selected.
	m = press(t, m, "up", "up", "enter")
	if m.selected != nil {
		t.Error("selected an empty square")
	}
}

func TestModelRandomMove(t *testing.T) {
	start := ParseBoard(StandardLayout)
	src := &countingSource{vals: []int{4, 6, 4, 5}}
	m := newModel(start, NewSampler(src))

	m = press(t, m, "r")
	if m.board.At(Position{4, 5}).Empty() {
		t.Fatalf("random move not applied:\n%s", m.board)
	}

	// The stub only ever proposes e2-e3, which is now gone.
	before := *m.board
	m = press(t, m, "n")
	if *m.board != before {
		t.Error("exhausted sampler changed the board")
	}
	if m.status != "No legal move found" {
		t.Errorf("status = %q", m.status)
	}
}

func TestModelQuit(t *testing.T) {
	m := newModel(ParseBoard(StandardLayout), NewSampler(NewSeededSource(1)))

	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("%v: expected a quit command", msg)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%v: expected tea.QuitMsg", msg)
		}
	}
}

func TestModelView(t *testing.T) {
	reg := NewSessionRegistry()
	m := newModel(ParseBoard(StandardLayout), NewSampler(NewSeededSource(1)))
	m.session = reg.Open("alice")
	m.registry = reg

	v := m.View()
	for _, want := range []string{"raychess", "alice", "1 connected", "Cursor: a1 (White Rook)", "♚", "♔"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}

	// c2-c3 is recorded against the session.
	m = press(t, m, "right", "right", "up", "enter")
	if !strings.Contains(m.View(), "Selected: c2") {
		t.Errorf("view missing selection:\n%s", m.View())
	}
	m = press(t, m, "up", "enter")
	if got := reg.Snapshot()[0].Moves; got != 1 {
		t.Errorf("session moves = %d, want 1", got)
	}
}
