package parser

import (
	"errors"
	"fmt"
)

// ErrNoSection is returned when a shortcut record appears before the first
// section header.
var ErrNoSection = errors.New("shortcut record outside of any section")

// Entry is a shortcut record paired with its resolved category.
type Entry struct {
	Category string
	Line     int
	Record   ShortcutRecord
}

// Resolve attaches a category to every shortcut record.
//
// A section header starts a new category named after the header. A friendly
// name replaces that category for the remaining records of the section. A
// shortcut record with no header before it is an error wrapping both
// ErrNoSection and ErrSyntax.
func Resolve(lines []Line) ([]Entry, error) {
	var (
		category   string
		seenHeader bool
		entries    = make([]Entry, 0, len(lines))
	)

	for _, line := range lines {
		switch line.Kind {
		case SectionHeader:
			category = line.Name
			seenHeader = true
		case FriendlyName:
			category = line.Name
		case Shortcut:
			if !seenHeader {
				return nil, fmt.Errorf("line %d: %w: %w", line.Number, ErrSyntax, ErrNoSection)
			}
			entries = append(entries, Entry{
				Category: category,
				Line:     line.Number,
				Record:   line.Record,
			})
		}
	}

	return entries, nil
}

// ResolveSections attaches a category to every shortcut record, letting a
// friendly name label its whole section regardless of where it appears.
// KConfig sorts keys when it writes the file, so "_k_friendly_name" often
// follows the records it names. The last friendly name of a section wins.
func ResolveSections(lines []Line) ([]Entry, error) {
	entries := make([]Entry, 0, len(lines))
	sectionStart := 0
	category := ""

	flush := func() {
		for i := sectionStart; i < len(entries); i++ {
			entries[i].Category = category
		}
		sectionStart = len(entries)
	}

	seenHeader := false
	for _, line := range lines {
		switch line.Kind {
		case SectionHeader:
			flush()
			category = line.Name
			seenHeader = true
		case FriendlyName:
			category = line.Name
		case Shortcut:
			if !seenHeader {
				return nil, fmt.Errorf("line %d: %w: %w", line.Number, ErrSyntax, ErrNoSection)
			}
			entries = append(entries, Entry{Line: line.Number, Record: line.Record})
		}
	}
	flush()

	return entries, nil
}
