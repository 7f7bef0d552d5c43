package view

import (
	"fmt"
	"strings"
)

// Mode selects what the camera is anchored to.
type Mode int

const (
	// Follow keeps the camera close to the home body.
	Follow Mode = iota
	// Overview frames the whole system from a fixed vantage point.
	Overview
)

func (m Mode) String() string {
	switch m {
	case Follow:
		return "follow"
	case Overview:
		return "overview"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "follow", "daynight", "day-night", "earth":
		return Follow, nil
	case "overview", "solar":
		return Overview, nil
	}
	return Follow, fmt.Errorf("unknown view mode %q", s)
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(b []byte) error {
	v, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
