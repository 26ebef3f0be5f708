package main

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	cursorStyle   = lipgloss.NewStyle().Background(lipgloss.Color("1"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("3"))
	targetStyle   = lipgloss.NewStyle().Background(lipgloss.Color("2"))
	lightStyle    = lipgloss.NewStyle().Background(lipgloss.Color("8"))
	darkStyle     = lipgloss.NewStyle().Background(lipgloss.Color("0"))
	titleStyle    = lipgloss.NewStyle().Bold(true)
)

type model struct {
	board   *Board
	sampler *Sampler

	cursor   Position
	selected *Position
	targets  []Position
	status   string

	// Set when served over SSH.
	session  *Session
	registry *SessionRegistry
}

func newModel(board Board, sampler *Sampler) model {
	return model{
		board:   &board,
		sampler: sampler,
		cursor:  Position{File: 0, Rank: 7},
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEscape:
		m.deselect()
		return m, nil
	}

	switch key.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor.Rank > 0 {
			m.cursor.Rank--
		}
	case "down", "j":
		if m.cursor.Rank < 7 {
			m.cursor.Rank++
		}
	case "left", "h":
		if m.cursor.File > 0 {
			m.cursor.File--
		}
	case "right", "l":
		if m.cursor.File < 7 {
			m.cursor.File++
		}
	case "enter", " ":
		m.choose()
	case "r", "n":
		m.deselect()
		mv, err := m.sampler.Move(m.board)
		if err != nil {
			log.Warn("board left unchanged", "err", err)
			m.status = "No legal move found"
			return m, nil
		}
		m.play(mv)
	}

	return m, nil
}

// choose selects the piece under the cursor, or moves the selected piece
// there.
func (m *model) choose() {
	if m.selected == nil {
		if m.board.At(m.cursor).Empty() {
			return
		}
		from := m.cursor
		m.selected = &from
		m.targets = m.board.Destinations(from)
		return
	}

	if *m.selected == m.cursor {
		m.deselect()
		return
	}

	mv := Move{*m.selected, m.cursor}
	if err := m.board.Check(mv); err != nil {
		m.status = fmt.Sprintf("Illegal move %s: %s", mv, reason(err))
		return
	}
	m.deselect()
	m.play(mv)
}

func (m *model) play(mv Move) {
	piece, _ := m.board.At(mv.From).Piece()
	if !m.board.ApplyMove(mv) {
		return
	}
	m.status = fmt.Sprintf("Last move: %s %s", piece, mv)
	if m.session != nil && m.registry != nil {
		m.registry.RecordMove(m.session.ID)
	}
}

func (m *model) deselect() {
	m.selected = nil
	m.targets = nil
}

func reason(err error) string {
	switch {
	case errors.Is(err, ErrEmptySource):
		return "no piece there"
	case errors.Is(err, ErrInvalidPosition):
		return "off the board"
	default:
		return "not how that piece moves"
	}
}

func (m model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("raychess"))
	s.WriteString("\n")
	if m.session != nil && m.registry != nil {
		fmt.Fprintf(&s, "Playing as %s, %d connected\n", m.session.User, m.registry.Count())
	}
	s.WriteString("Arrows move, ENTER/SPACE select/move, ESC deselect, R random move, Q quit\n\n")

	s.WriteString(m.renderBoard())
	s.WriteString("\n")

	if piece, ok := m.board.At(m.cursor).Piece(); ok {
		fmt.Fprintf(&s, "Cursor: %s (%s)\n", m.cursor, piece)
	} else {
		fmt.Fprintf(&s, "Cursor: %s\n", m.cursor)
	}
	if m.selected != nil {
		fmt.Fprintf(&s, "Selected: %s, %d moves\n", m.selected, len(m.targets))
	}
	if m.status != "" {
		s.WriteString(m.status)
		s.WriteString("\n")
	}

	return s.String()
}

func (m model) renderBoard() string {
	var s strings.Builder

	s.WriteString("   A  B  C  D  E  F  G  H\n")
	for rank := range 8 {
		fmt.Fprintf(&s, " %d", 8-rank)
		for file := range 8 {
			pos := Position{file, rank}

			glyph := " "
			if piece, ok := m.board.At(pos).Piece(); ok {
				glyph = piece.Glyph()
			}

			style := lightStyle
			switch {
			case pos == m.cursor:
				style = cursorStyle
			case m.selected != nil && *m.selected == pos:
				style = selectedStyle
			case slices.Contains(m.targets, pos):
				style = targetStyle
			case (file+rank)%2 == 1:
				style = darkStyle
			}
			s.WriteString(style.Render(" " + glyph + " "))
		}
		s.WriteString("\n")
	}

	return s.String()
}

func setupLogger(level log.Level) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "raychess",
	})
	logger.SetLevel(level)
	log.SetDefault(logger)
}

func main() {
	cfg, err := loadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogger(cfg.LogLevel)

	board, err := cfg.initialBoard()
	if err != nil {
		log.Fatal("failed to build initial board", "err", err)
	}

	switch cfg.Mode {
	case modeLine:
		sampler := NewSampler(NewSeededSource(cfg.Seed))
		if err := runLoop(os.Stdin, os.Stdout, &board, sampler); err != nil {
			log.Fatal("session failed", "err", err)
		}
	case modeTUI:
		sampler := NewSampler(NewSeededSource(cfg.Seed))
		if _, err := tea.NewProgram(newModel(board, sampler), tea.WithAltScreen()).Run(); err != nil {
			log.Fatal("tui failed", "err", err)
		}
	case modeSSH:
		if err := runSSHServer(cfg, board); err != nil {
			log.Fatal("ssh server failed", "err", err)
		}
	}
}
