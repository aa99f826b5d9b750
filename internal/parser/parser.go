// Package parser parses KDE kglobalshortcutsrc documents into line records.
//
// The format looks like INI but is not: a shortcut record carries three
// comma-separated fields after the '=' and records may follow each other
// without a line break. The grammar is:
//
//	document        := (blank_lines record)*
//	blank_lines     := (whitespace* '\n')*
//	record          := section_header | friendly_name | shortcut_record
//	section_header  := '[' text_until(']') ']'
//	friendly_name   := "_k_friendly_name=" text_until('\n' | EOF)
//	shortcut_record := id '=' shortcut_field ',' default_field ',' label
//
// Parsing is strict: any input the grammar does not describe is a
// *SyntaxError and no partial result is returned.
package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gerunddev/exabind/internal/log"
)

// Format constants.
const (
	sectionOpen        = '['
	sectionClose       = ']'
	friendlyNamePrefix = "_k_friendly_name="
	idSeparator        = '='
	fieldSeparator     = ','
)

// ErrSyntax is wrapped by every error describing a grammar violation.
var ErrSyntax = errors.New("syntax error")

// SyntaxError reports where a document stops matching the grammar.
// Line and Column are 1-based; Column counts runes.
type SyntaxError struct {
	Line   int
	Column int
	Reason string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Reason)
}

// Unwrap makes errors.Is(err, ErrSyntax) hold.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// LineKind identifies the record type of a Line.
type LineKind uint8

const (
	SectionHeader LineKind = iota + 1
	FriendlyName
	Shortcut
)

func (k LineKind) String() string {
	switch k {
	case SectionHeader:
		return "section header"
	case FriendlyName:
		return "friendly name"
	case Shortcut:
		return "shortcut"
	default:
		return "unknown"
	}
}

// ShortcutRecord holds the raw fields of an `id=shortcut,default,label` record.
type ShortcutRecord struct {
	ID      string // machine identifier of the action
	Field   string // active shortcut field, e.g. `Ctrl+F7\tMeta+F7`
	Default string // default shortcut field; parsed but carries no meaning here
	Label   string // user-facing action name
}

// Line is one parsed record.
type Line struct {
	Kind LineKind
	// Number is the 1-based source line the record starts on.
	Number int
	// Name is set for SectionHeader and FriendlyName records.
	Name string
	// Record is set for Shortcut records.
	Record ShortcutRecord
}

// Parse parses a complete kglobalshortcutsrc document.
func Parse(input string) ([]Line, error) {
	s := &scanner{input: input, line: 1}

	var lines []Line
	for {
		s.skipBlankLines()
		if s.atEnd() {
			break
		}

		line, err := s.record()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	log.Debug("parsed shortcut document", "records", len(lines), "source_lines", s.line)
	return lines, nil
}

// scanner walks the input keeping track of line and column positions.
type scanner struct {
	input     string
	pos       int
	line      int
	lineStart int
}

func (s *scanner) atEnd() bool {
	return s.pos >= len(s.input)
}

func (s *scanner) rest() string {
	return s.input[s.pos:]
}

// advance moves to byte offset end, counting any newlines passed over.
func (s *scanner) advance(end int) {
	for i := s.pos; i < end; i++ {
		if s.input[i] == '\n' {
			s.line++
			s.lineStart = i + 1
		}
	}
	s.pos = end
}

// skipBlankLines consumes whole lines made only of whitespace. Whitespace
// left at the very end of the input is consumed as well.
func (s *scanner) skipBlankLines() {
	for {
		i := s.pos
		for i < len(s.input) && isBlank(s.input[i]) {
			i++
		}
		switch {
		case i == len(s.input):
			s.advance(i)
			return
		case s.input[i] == '\n':
			s.advance(i + 1)
		default:
			return
		}
	}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func (s *scanner) errorf(at int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Line:   s.line,
		Column: utf8.RuneCountInString(s.input[s.lineStart:at]) + 1,
		Reason: fmt.Sprintf(format, args...),
	}
}

func (s *scanner) record() (Line, error) {
	rest := s.rest()
	switch {
	case rest[0] == sectionOpen:
		return s.sectionHeader()
	case strings.HasPrefix(rest, friendlyNamePrefix):
		return s.friendlyName(), nil
	default:
		return s.shortcut()
	}
}

func (s *scanner) sectionHeader() (Line, error) {
	start := s.pos + 1
	end, err := s.until(start, sectionClose, "section header")
	if err != nil {
		return Line{}, err
	}

	line := Line{Kind: SectionHeader, Number: s.line, Name: s.input[start:end]}
	s.advance(end + 1)
	return line, nil
}

func (s *scanner) friendlyName() Line {
	start := s.pos + len(friendlyNamePrefix)
	end := s.endOfLine(start)

	line := Line{Kind: FriendlyName, Number: s.line, Name: trimCR(s.input[start:end])}
	s.advance(end)
	return line
}

func (s *scanner) shortcut() (Line, error) {
	idEnd, err := s.until(s.pos, idSeparator, "shortcut record id")
	if err != nil {
		return Line{}, err
	}
	fieldStart := idEnd + 1
	fieldEnd, err := s.until(fieldStart, fieldSeparator, "shortcut field")
	if err != nil {
		return Line{}, err
	}
	defaultStart := fieldEnd + 1
	defaultEnd, err := s.until(defaultStart, fieldSeparator, "default shortcut field")
	if err != nil {
		return Line{}, err
	}
	labelStart := defaultEnd + 1
	labelEnd := s.endOfLine(labelStart)

	line := Line{
		Kind:   Shortcut,
		Number: s.line,
		Record: ShortcutRecord{
			ID:      s.input[s.pos:idEnd],
			Field:   s.input[fieldStart:fieldEnd],
			Default: s.input[defaultStart:defaultEnd],
			Label:   trimCR(s.input[labelStart:labelEnd]),
		},
	}
	s.advance(labelEnd)
	return line, nil
}

// until returns the offset of the first delim at or after from. Records never
// span lines, so reaching a newline or the end of input is a syntax error.
func (s *scanner) until(from int, delim byte, what string) (int, error) {
	for i := from; i < len(s.input); i++ {
		switch s.input[i] {
		case delim:
			return i, nil
		case '\n':
			return 0, s.errorf(i, "unterminated %s: expected %q before end of line", what, delim)
		}
	}
	return 0, s.errorf(len(s.input), "unterminated %s: expected %q before end of input", what, delim)
}

func (s *scanner) endOfLine(from int) int {
	if i := strings.IndexByte(s.input[from:], '\n'); i >= 0 {
		return from + i
	}
	return len(s.input)
}

func trimCR(v string) string {
	return strings.TrimSuffix(v, "\r")
}
