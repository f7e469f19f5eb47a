package osc

import (
	"fmt"
	"math"
	"strconv"
)

// Letter is a note of the chromatic scale. C is first since standard
// notation begins octaves at C.
type Letter int

// Chromatic scale letters.
const (
	C Letter = iota
	Csh
	D
	Dsh
	E
	F
	Fsh
	G
	Gsh
	A
	Ash
	B
)

const numNotes = 12

// a4Idx is the index of the A above middle C, the 440 Hz reference.
var a4Idx = noteIdx(A, 4)

// Note is a letter pitched at an octave.
type Note struct {
	Letter Letter
	Octave int
}

// NewNote returns a note of letter at octave.
func NewNote(letter Letter, octave int) Note {
	return Note{Letter: letter, Octave: octave}
}

// Freq returns the equal-temperament frequency of the note, tuned to
// A4 = 440 Hz.
func (n Note) Freq() float64 {
	offset := float64(noteIdx(n.Letter, n.Octave) - a4Idx)
	return 440 * math.Exp2(offset/numNotes)
}

func noteIdx(letter Letter, octave int) int {
	return numNotes*octave + int(letter)
}

// ParseNote parses notes like "C4", "F#3" or "Ab2".
func ParseNote(s string) (Note, error) {
	if len(s) < 2 || len(s) > 3 {
		return Note{}, fmt.Errorf("invalid note: %q", s)
	}

	var base int
	switch s[0] {
	case 'C':
		base = int(C)
	case 'D':
		base = int(D)
	case 'E':
		base = int(E)
	case 'F':
		base = int(F)
	case 'G':
		base = int(G)
	case 'A':
		base = int(A)
	case 'B':
		base = int(B)
	default:
		return Note{}, fmt.Errorf("invalid note letter: %q", s)
	}

	rest := s[1:]
	if len(s) == 3 {
		switch s[1] {
		case '#':
			base++
		case 'b':
			base--
		default:
			return Note{}, fmt.Errorf("invalid note modifier: %q", s)
		}
		rest = s[2:]
	}
	if base < 0 {
		base += numNotes
	}

	octave, err := strconv.Atoi(rest)
	if err != nil || octave < 0 {
		return Note{}, fmt.Errorf("invalid note octave: %q", s)
	}

	// base may be 12 here ("B#"), which pitches as C of the next octave
	return NewNote(Letter(base), octave), nil
}
