package config

// This file holds flag.Value adapters for the enum fields so the CLI can
// bind them directly. Each adapter also satisfies pflag.Value through its
// Type method.

import (
	"fmt"
	"strings"
)

// ModeValue adapts a *Mode for flag parsing.
type ModeValue struct{ P *Mode }

func (v ModeValue) String() string {
	if v.P == nil {
		return ""
	}
	return string(*v.P)
}

func (v ModeValue) Set(s string) error {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		if hint := SuggestMode(s); hint != "" {
			return fmt.Errorf("invalid mode %q (did you mean %q?)", s, hint)
		}
		return fmt.Errorf("invalid mode %q (use pad, crop or stretch)", s)
	}
	*v.P = m
	return nil
}

func (ModeValue) Type() string { return "mode" }

// ColorModeValue adapts a *ColorMode for flag parsing.
type ColorModeValue struct{ P *ColorMode }

func (v ColorModeValue) String() string {
	if v.P == nil {
		return ""
	}
	return string(*v.P)
}

func (v ColorModeValue) Set(s string) error {
	switch c := ColorMode(strings.ToLower(s)); c {
	case ColorAuto, ColorAlways, ColorNever:
		*v.P = c
		return nil
	}
	return fmt.Errorf("invalid color mode %q (use auto, always or never)", s)
}

func (ColorModeValue) Type() string { return "when" }
