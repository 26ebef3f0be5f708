package main

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition = errors.New("position is off the board")
	ErrEmptySource     = errors.New("no piece on source square")
	ErrIllegalMove     = errors.New("illegal move for piece")
)

type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// direction is the rank step a pawn of this color advances by. Rank 0 is
// Black's back rank, so White moves up the layout.
func (c Color) direction() int {
	if c == White {
		return -1
	}
	return 1
}

type PieceKind int

const (
	Pawn PieceKind = iota
	Knight
	Rook
	Bishop
	Queen
	King
)

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "Pawn"
	case Knight:
		return "Knight"
	case Rook:
		return "Rook"
	case Bishop:
		return "Bishop"
	case Queen:
		return "Queen"
	case King:
		return "King"
	}
	return fmt.Sprintf("PieceKind(%d)", int(k))
}

type Piece struct {
	Kind  PieceKind
	Color Color
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s", p.Color, p.Kind)
}

// Cell is one square of the board. The zero value is an empty cell.
type Cell struct {
	piece    Piece
	occupied bool
}

func Occupied(p Piece) Cell {
	return Cell{piece: p, occupied: true}
}

func (c Cell) Empty() bool {
	return !c.occupied
}

func (c Cell) Piece() (Piece, bool) {
	return c.piece, c.occupied
}

type Position struct {
	File, Rank int
}

func (p Position) Valid() bool {
	return p.File >= 0 && p.File < 8 && p.Rank >= 0 && p.Rank < 8
}

func (p Position) String() string {
	if !p.Valid() {
		return "invalid"
	}
	return fmt.Sprintf("%c%d", 'a'+p.File, 8-p.Rank)
}

type Move struct {
	From, To Position
}

// NoMove is returned alongside an error when no move could be produced.
var NoMove = Move{}

func (m Move) String() string {
	return m.From.String() + "-" + m.To.String()
}

// Board is indexed [rank][file]. It is a plain array, so assigning a Board
// copies all 64 cells.
type Board [8][8]Cell

func (b *Board) Get(pos Position) (Cell, error) {
	if !pos.Valid() {
		return Cell{}, fmt.Errorf("read %v: %w", pos, ErrInvalidPosition)
	}
	return b[pos.Rank][pos.File], nil
}

func (b *Board) Set(pos Position, cell Cell) error {
	if !pos.Valid() {
		return fmt.Errorf("write %v: %w", pos, ErrInvalidPosition)
	}
	b[pos.Rank][pos.File] = cell
	return nil
}

// At is a lenient Get: off-board positions read as empty.
func (b *Board) At(pos Position) Cell {
	if !pos.Valid() {
		return Cell{}
	}
	return b[pos.Rank][pos.File]
}

func (b *Board) IsEmpty(pos Position) bool {
	return pos.Valid() && b.At(pos).Empty()
}

func (b *Board) IsEnemy(pos Position, color Color) bool {
	p, ok := b.At(pos).Piece()
	return ok && p.Color != color
}

// landable reports whether a piece of the given color may end on pos.
func (b *Board) landable(pos Position, color Color) bool {
	return b.IsEmpty(pos) || b.IsEnemy(pos, color)
}

type direction struct {
	df, dr int
}

var (
	orthogonal = []direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
	diagonal   = []direction{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	compass    = append(append([]direction{}, orthogonal...), diagonal...)
)

// castRay appends to dst every square reachable from `from` stepping along
// dir: empty squares, then at most one enemy square. A friendly piece stops
// the ray without being included.
func (b *Board) castRay(from Position, dir direction, color Color, dst []Position) []Position {
	pos := from
	for {
		pos = Position{pos.File + dir.df, pos.Rank + dir.dr}
		if !pos.Valid() {
			return dst
		}
		if b.IsEmpty(pos) {
			dst = append(dst, pos)
			continue
		}
		if b.IsEnemy(pos, color) {
			dst = append(dst, pos)
		}
		return dst
	}
}

func (b *Board) reaches(from, to Position, color Color, dirs []direction, buf []Position) bool {
	for _, dir := range dirs {
		buf = b.castRay(from, dir, color, buf)
	}
	for _, pos := range buf {
		if pos == to {
			return true
		}
	}
	return false
}

func (b *Board) isValidPieceMove(piece Piece, from, to Position) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}

	switch piece.Kind {
	case Pawn:
		return b.isValidPawnMove(from, to, piece.Color)
	case Knight:
		return b.isValidKnightMove(from, to, piece.Color)
	case Rook:
		return b.isValidRookMove(from, to, piece.Color)
	case Bishop:
		return b.isValidBishopMove(from, to, piece.Color)
	case Queen:
		return b.isValidQueenMove(from, to, piece.Color)
	case King:
		return b.isValidKingMove(from, to, piece.Color)
	}
	return false
}

func (b *Board) isValidPawnMove(from, to Position, color Color) bool {
	dx := to.File - from.File
	dy := to.Rank - from.Rank
	if dy != color.direction() {
		return false
	}

	if dx == 0 {
		return b.IsEmpty(to)
	}
	return abs(dx) == 1 && b.IsEnemy(to, color)
}

func (b *Board) isValidKnightMove(from, to Position, color Color) bool {
	dx := abs(to.File - from.File)
	dy := abs(to.Rank - from.Rank)
	return dx != 0 && dy != 0 && dx+dy == 3 && b.landable(to, color)
}

func (b *Board) isValidKingMove(from, to Position, color Color) bool {
	dx := abs(to.File - from.File)
	dy := abs(to.Rank - from.Rank)
	if dx == 0 && dy == 0 {
		return false
	}
	return dx <= 1 && dy <= 1 && b.landable(to, color)
}

func (b *Board) isValidRookMove(from, to Position, color Color) bool {
	var buf [14]Position
	return b.reaches(from, to, color, orthogonal, buf[:0])
}

func (b *Board) isValidBishopMove(from, to Position, color Color) bool {
	var buf [14]Position
	return b.reaches(from, to, color, diagonal, buf[:0])
}

func (b *Board) isValidQueenMove(from, to Position, color Color) bool {
	var buf [28]Position
	return b.reaches(from, to, color, compass, buf[:0])
}

// Check explains why a move is not legal, or returns nil if it is. Whose
// turn it is never matters.
func (b *Board) Check(m Move) error {
	if !m.From.Valid() || !m.To.Valid() {
		return fmt.Errorf("move %v -> %v: %w", m.From, m.To, ErrInvalidPosition)
	}

	piece, ok := b.At(m.From).Piece()
	if !ok {
		return fmt.Errorf("move %v: %w", m, ErrEmptySource)
	}

	if !b.isValidPieceMove(piece, m.From, m.To) {
		return fmt.Errorf("move %v with %v: %w", m, piece, ErrIllegalMove)
	}
	return nil
}

func (b *Board) IsValidMove(m Move) bool {
	return b.Check(m) == nil
}

// ApplyMove plays m if it is legal and reports whether the board changed.
// Illegal moves are ignored. A capture simply overwrites the destination.
func (b *Board) ApplyMove(m Move) bool {
	if !b.IsValidMove(m) {
		return false
	}

	b[m.To.Rank][m.To.File] = b[m.From.Rank][m.From.File]
	b[m.From.Rank][m.From.File] = Cell{}
	return true
}

// Destinations lists every square the piece on from may legally move to.
func (b *Board) Destinations(from Position) []Position {
	var moves []Position

	for rank := range 8 {
		for file := range 8 {
			to := Position{file, rank}
			if b.IsValidMove(Move{from, to}) {
				moves = append(moves, to)
			}
		}
	}

	return moves
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
