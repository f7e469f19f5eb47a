package music

import (
	"fmt"
	"io/ioutil"
	"math"

	yaml "gopkg.in/yaml.v2"

	"github.com/dudk/chord/osc"
)

type fileFormat struct {
	BPM           *int            `yaml:"bpm"`
	TimeSignature []int           `yaml:"time-signature"`
	Gain          *float64        `yaml:"gain"`
	Instruments   []instrumentDef `yaml:"instruments"`
	Patterns      []patternDef    `yaml:"patterns"`
	Tracks        []trackDef      `yaml:"tracks"`
}

type instrumentDef struct {
	Name   string   `yaml:"name"`
	Source string   `yaml:"source"`
	Adsr   *adsrDef `yaml:"adsr"`
}

type adsrDef struct {
	Attack  *float64 `yaml:"attack"`
	Decay   *float64 `yaml:"decay"`
	Sustain *float64 `yaml:"sustain"`
	Release *float64 `yaml:"release"`
}

type patternDef struct {
	Name     string          `yaml:"name"`
	Commands [][]interface{} `yaml:"commands"`
}

type trackDef struct {
	Name       string          `yaml:"name"`
	Instrument string          `yaml:"instrument"`
	Gain       *float64        `yaml:"gain"`
	Commands   [][]interface{} `yaml:"commands"`
}

// noteValue is a duration as a fraction of a whole note, e.g. {1, 4} is a
// quarter note.
type noteValue struct {
	count    int
	dividend int
}

func (v noteValue) value() float64 {
	return float64(v.count) / float64(v.dividend)
}

// command names shared by pattern and track command lists.
const (
	cmdPlay      = "play"
	cmdDelay     = "delay"
	cmdRepeat    = "repeat"
	cmdEndRepeat = "end-repeat"
)

// command is a single parsed pattern or track command. Play commands carry
// a note inside patterns and a pattern name inside tracks.
type command struct {
	name        string
	note        osc.Note
	patternName string
	duration    noteValue
	count       int
}

// Import reads and parses the description at path. File errors are
// returned as is, malformed content as a *ParseError.
func Import(path string) (*Music, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, &ParseError{Path: path, Msg: err.Error()}
	}

	m := &Music{
		BPM:           DefaultBPM,
		TimeSignature: TimeSignature{BeatsPerBar: 4, BeatValue: 4},
		Gain:          1,
	}
	if ff.BPM != nil {
		m.BPM = *ff.BPM
	}
	if ff.Gain != nil {
		m.Gain = *ff.Gain
	}
	if ff.TimeSignature != nil {
		if len(ff.TimeSignature) != 2 {
			return nil, parseErrorf(path, "time-signature", "expected 2 values, got %v", len(ff.TimeSignature))
		}
		m.TimeSignature = TimeSignature{
			BeatsPerBar: ff.TimeSignature[0],
			BeatValue:   ff.TimeSignature[1],
		}
	}

	for i, def := range ff.Instruments {
		instrument, err := parseInstrument(path, fmt.Sprintf("instruments[%v]", i), def)
		if err != nil {
			return nil, err
		}
		m.Instruments = append(m.Instruments, instrument)
	}

	for i, def := range ff.Patterns {
		pattern, err := parsePattern(path, fmt.Sprintf("patterns[%v]", i), def, m.TimeSignature)
		if err != nil {
			return nil, err
		}
		m.Patterns = append(m.Patterns, pattern)
	}

	for i, def := range ff.Tracks {
		track, err := parseTrack(path, fmt.Sprintf("tracks[%v]", i), def, m)
		if err != nil {
			return nil, err
		}
		m.Tracks = append(m.Tracks, track)
	}

	return m, nil
}

func parseInstrument(path, where string, def instrumentDef) (Instrument, error) {
	if def.Name == "" {
		return Instrument{}, parseErrorf(path, where, "instrument without a name")
	}

	var instrumentType InstrumentType
	switch def.Source {
	case "sine":
		instrumentType = Sine
	case "triangle":
		instrumentType = Triangle
	case "square":
		instrumentType = Square
	case "saw":
		instrumentType = Saw
	case "piano":
		instrumentType = Piano
	default:
		return Instrument{}, parseErrorf(path, where, "unknown source: %q", def.Source)
	}

	adsr := DefaultAdsr
	if def.Adsr != nil {
		if def.Adsr.Attack != nil {
			adsr.Attack = *def.Adsr.Attack
		}
		if def.Adsr.Decay != nil {
			adsr.Decay = *def.Adsr.Decay
		}
		if def.Adsr.Sustain != nil {
			adsr.Sustain = *def.Adsr.Sustain
		}
		if def.Adsr.Release != nil {
			adsr.Release = *def.Adsr.Release
		}
	}

	return Instrument{Name: def.Name, Type: instrumentType, Adsr: adsr}, nil
}

func parsePattern(path, where string, def patternDef, signature TimeSignature) (Pattern, error) {
	if def.Name == "" {
		return Pattern{}, parseErrorf(path, where, "pattern without a name")
	}

	commands, err := parseCommands(path, where, def.Commands, false)
	if err != nil {
		return Pattern{}, err
	}
	commands, err = expandRepeats(path, where, commands)
	if err != nil {
		return Pattern{}, err
	}

	pattern := Pattern{Name: def.Name}
	beatValue := float64(signature.BeatValue)

	// elapsed resolution time as float for precision until the final floor
	elapsed := 0.0
	maxEnd := 0
	for _, c := range commands {
		switch c.name {
		case cmdDelay:
			elapsed += beatValue * c.duration.value() * ResolutionPerBeat
		case cmdPlay:
			// play does not advance time, simultaneous notes form chords
			duration := beatValue * c.duration.value() * ResolutionPerBeat
			note := NoteEvent{
				Start: int(math.Floor(elapsed)),
				End:   int(math.Floor(elapsed + duration)),
				Note:  c.note,
			}
			pattern.Notes = append(pattern.Notes, note)
			if note.End > maxEnd {
				maxEnd = note.End
			}
		}
	}

	pattern.Duration = int(math.Floor(elapsed))
	if maxEnd > pattern.Duration {
		pattern.Duration = maxEnd
	}
	return pattern, nil
}

func parseTrack(path, where string, def trackDef, m *Music) (Track, error) {
	if def.Name == "" {
		return Track{}, parseErrorf(path, where, "track without a name")
	}

	instrumentIdx := -1
	for i, instrument := range m.Instruments {
		if instrument.Name == def.Instrument {
			instrumentIdx = i
			break
		}
	}
	if instrumentIdx < 0 {
		return Track{}, parseErrorf(path, where, "unknown instrument: %q", def.Instrument)
	}

	track := Track{Name: def.Name, InstrumentIdx: instrumentIdx, Gain: 1}
	if def.Gain != nil {
		track.Gain = *def.Gain
	}

	commands, err := parseCommands(path, where, def.Commands, true)
	if err != nil {
		return Track{}, err
	}
	commands, err = expandRepeats(path, where, commands)
	if err != nil {
		return Track{}, err
	}

	beatValue := float64(m.TimeSignature.BeatValue)
	elapsed := 0.0
	for _, c := range commands {
		switch c.name {
		case cmdDelay:
			elapsed += beatValue * c.duration.value() * ResolutionPerBeat
		case cmdPlay:
			patternIdx := -1
			for i, pattern := range m.Patterns {
				if pattern.Name == c.patternName {
					patternIdx = i
					break
				}
			}
			if patternIdx < 0 {
				return Track{}, parseErrorf(path, where, "unknown pattern: %q", c.patternName)
			}

			duration := m.Patterns[patternIdx].Duration
			track.Patterns = append(track.Patterns, PatternEvent{
				PatternIdx: patternIdx,
				Start:      int(math.Floor(elapsed)),
				End:        int(math.Floor(elapsed)) + duration,
			})

			// patterns cannot overlap, play advances the track
			elapsed += float64(duration)
		}
	}

	return track, nil
}

func parseCommands(path, where string, raw [][]interface{}, isTrack bool) ([]command, error) {
	commands := make([]command, 0, len(raw))
	for i, node := range raw {
		cwhere := fmt.Sprintf("%v.commands[%v]", where, i)
		c, err := parseCommand(path, cwhere, node, isTrack)
		if err != nil {
			return nil, err
		}
		commands = append(commands, c)
	}
	return commands, nil
}

func parseCommand(path, where string, node []interface{}, isTrack bool) (command, error) {
	if len(node) == 0 {
		return command{}, parseErrorf(path, where, "empty command")
	}
	name, ok := node[0].(string)
	if !ok {
		return command{}, parseErrorf(path, where, "command name must be a string")
	}

	switch name {
	case cmdDelay:
		if len(node) != 2 {
			return command{}, parseErrorf(path, where, "delay expects a duration")
		}
		duration, ok := parseNoteValue(node[1])
		if !ok {
			return command{}, parseErrorf(path, where, "invalid delay duration")
		}
		return command{name: cmdDelay, duration: duration}, nil

	case cmdRepeat:
		if len(node) != 2 {
			return command{}, parseErrorf(path, where, "repeat expects a count")
		}
		count, ok := toInt(node[1])
		if !ok {
			return command{}, parseErrorf(path, where, "repeat count must be an integer")
		}
		return command{name: cmdRepeat, count: count}, nil

	case cmdEndRepeat:
		if len(node) != 1 {
			return command{}, parseErrorf(path, where, "end-repeat takes no arguments")
		}
		return command{name: cmdEndRepeat}, nil

	case cmdPlay:
		if isTrack {
			if len(node) != 2 {
				return command{}, parseErrorf(path, where, "play expects a pattern name")
			}
			patternName, ok := node[1].(string)
			if !ok {
				return command{}, parseErrorf(path, where, "pattern name must be a string")
			}
			return command{name: cmdPlay, patternName: patternName}, nil
		}

		if len(node) != 3 {
			return command{}, parseErrorf(path, where, "play expects a note and a duration")
		}
		noteStr, ok := node[1].(string)
		if !ok {
			return command{}, parseErrorf(path, where, "note must be a string")
		}
		note, err := osc.ParseNote(noteStr)
		if err != nil {
			return command{}, parseErrorf(path, where, "%v", err)
		}
		duration, ok := parseNoteValue(node[2])
		if !ok {
			return command{}, parseErrorf(path, where, "invalid note duration")
		}
		return command{name: cmdPlay, note: note, duration: duration}, nil
	}

	return command{}, parseErrorf(path, where, "unknown command: %q", name)
}

func parseNoteValue(node interface{}) (noteValue, bool) {
	pair, ok := node.([]interface{})
	if !ok || len(pair) != 2 {
		return noteValue{}, false
	}
	count, ok := toInt(pair[0])
	if !ok {
		return noteValue{}, false
	}
	dividend, ok := toInt(pair[1])
	if !ok || dividend == 0 {
		return noteValue{}, false
	}
	return noteValue{count: count, dividend: dividend}, true
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	}
	return 0, false
}

// expandRepeats rewrites repeat/end-repeat blocks by repeating their
// contents in place. Blocks nest.
func expandRepeats(path, where string, commands []command) ([]command, error) {
	final := make([]command, 0, len(commands))

	// every stack entry starts with the repeat command that opened it so
	// the count travels with the block
	var stack [][]command
	target := &final

	for _, c := range commands {
		switch c.name {
		case cmdRepeat:
			stack = append(stack, []command{c})
			target = &stack[len(stack)-1]
		case cmdEndRepeat:
			if len(stack) == 0 {
				return nil, parseErrorf(path, where, "end-repeat without repeat")
			}
			block := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				target = &final
			} else {
				target = &stack[len(stack)-1]
			}

			count := block[0].count
			for ; count > 0; count-- {
				*target = append(*target, block[1:]...)
			}
		default:
			*target = append(*target, c)
		}
	}

	if len(stack) != 0 {
		return nil, parseErrorf(path, where, "repeat without end-repeat")
	}
	return final, nil
}
