package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

const quitLine = "q\n"

// runLoop prints the board, then plays one random legal move per input line
// until it reads exactly "q\n" or the input ends.
func runLoop(in io.Reader, out io.Writer, b *Board, s *Sampler) error {
	if _, err := fmt.Fprintln(out, b); err != nil {
		return fmt.Errorf("write board: %w", err)
	}

	r := bufio.NewReader(in)
	for {
		line, err := r.ReadString('\n')
		if errors.Is(err, io.EOF) {
			log.Debug("input closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		if line == quitLine {
			return nil
		}

		m, err := s.Move(b)
		if err != nil {
			log.Warn("board left unchanged", "err", err)
		} else {
			b.ApplyMove(m)
			log.Debug("random move", "move", m)
		}

		if _, err := fmt.Fprintln(out, b); err != nil {
			return fmt.Errorf("write board: %w", err)
		}
	}
}
