// Copyright 2026 Bob Vawter (bob@vawter.org)
// SPDX-License-Identifier: Apache-2.0

package enums

type color int

const (
	red color = iota
	green
	blue
)

func (c color) String() string {
	switch c {
	case red:
		return "RED"
	case green:
		return "GREEN"
	case blue:
		return "BLUE"
	default:
		return "UNKNOWN"
	}
}

var colors = MustDefine("color", red, green, blue)

// A type without a String method.
type weekday string

var weekdays = MustDefine("", weekday("mon"), weekday("tue"), weekday("wed"),
	weekday("thu"), weekday("fri"))
