package main

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/corentings/chess/v2"
)

// StandardLayout is the opening position in the letter layout read by
// ParseBoard. Uppercase is Black and sits on the top rows.
const StandardLayout = "RNBKQBNRPPPPPPPP" + "                                " + "pppppppprnbqkbnr"

// ParseBoard reads up to 64 runes row-major, top row first. Letters PNRBQK
// in either case are pieces: lowercase White, uppercase Black. Anything else,
// and any square past the end of s, is empty.
func ParseBoard(s string) Board {
	var board Board

	i := 0
	for _, r := range s {
		if i == 64 {
			break
		}
		if piece, ok := pieceFromRune(r); ok {
			board[i/8][i%8] = Occupied(piece)
		}
		i++
	}

	return board
}

func pieceFromRune(r rune) (Piece, bool) {
	var kind PieceKind
	switch unicode.ToUpper(r) {
	case 'P':
		kind = Pawn
	case 'N':
		kind = Knight
	case 'R':
		kind = Rook
	case 'B':
		kind = Bishop
	case 'Q':
		kind = Queen
	case 'K':
		kind = King
	default:
		return Piece{}, false
	}

	color := Black
	if unicode.IsLower(r) {
		color = White
	}
	return Piece{kind, color}, true
}

var (
	whiteGlyphs = [...]string{
		Pawn:   "♟",
		Knight: "♞",
		Rook:   "♜",
		Bishop: "♝",
		Queen:  "♛",
		King:   "♚",
	}
	blackGlyphs = [...]string{
		Pawn:   "♙",
		Knight: "♘",
		Rook:   "♖",
		Bishop: "♗",
		Queen:  "♕",
		King:   "♔",
	}
)

// Glyph returns the chess symbol for the piece. White uses the filled set.
func (p Piece) Glyph() string {
	if p.Kind < Pawn || p.Kind > King {
		return "?"
	}
	if p.Color == White {
		return whiteGlyphs[p.Kind]
	}
	return blackGlyphs[p.Kind]
}

const darkSquare = "■"

// squareGlyph is what a cell shows in text form: its piece, or the square
// shading when empty.
func squareGlyph(cell Cell, file, rank int) string {
	if piece, ok := cell.Piece(); ok {
		return piece.Glyph()
	}
	if (file+rank*9)%2 == 1 {
		return darkSquare
	}
	return " "
}

func (b Board) String() string {
	var s strings.Builder
	s.Grow(11 * 9 * 3)

	s.WriteString("   A B C D E F G H \n")
	for rank := range 8 {
		fmt.Fprintf(&s, " %d", 8-rank)
		for file := range 8 {
			s.WriteByte(' ')
			s.WriteString(squareGlyph(b[rank][file], file, rank))
		}
		s.WriteByte('\n')
	}

	return s.String()
}

// ParseFEN builds a board from the piece placement of a FEN record. Any
// further fields are ignored without being checked, since the rules here have
// no side to move, castling rights, en passant square or clocks.
func ParseFEN(fen string) (Board, error) {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return Board{}, errors.New("parse FEN: empty record")
	}
	fen = fields[0] + " w - - 0 1"

	var pos chess.Position
	if err := pos.UnmarshalText([]byte(fen)); err != nil {
		return Board{}, fmt.Errorf("parse FEN %q: %w", fen, err)
	}

	var board Board
	cb := pos.Board()
	for rank := range 8 {
		for file := range 8 {
			// FEN rank 8 is our top row.
			sq := chess.Square(file + 8*(7-rank))
			p := cb.Piece(sq)
			if p == chess.NoPiece {
				continue
			}
			piece, ok := pieceFromFEN(p)
			if !ok {
				return Board{}, fmt.Errorf("parse FEN: unsupported piece %v on %v", p, sq)
			}
			board[rank][file] = Occupied(piece)
		}
	}

	return board, nil
}

var fenKinds = map[chess.PieceType]PieceKind{
	chess.Pawn:   Pawn,
	chess.Knight: Knight,
	chess.Rook:   Rook,
	chess.Bishop: Bishop,
	chess.Queen:  Queen,
	chess.King:   King,
}

func pieceFromFEN(p chess.Piece) (Piece, bool) {
	kind, ok := fenKinds[p.Type()]
	if !ok {
		return Piece{}, false
	}
	color := White
	if p.Color() == chess.Black {
		color = Black
	}
	return Piece{kind, color}, true
}
