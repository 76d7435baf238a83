package engine

import (
	"fmt"
	"strings"
)

type Stat string

const (
	StatSTR Stat = "str"
	StatVIT Stat = "vit"
	StatAGI Stat = "agi"
	StatINT Stat = "int"
	StatPER Stat = "per"

	// StatAll tags quests that train everything. It never maps to a counter.
	StatAll Stat = "all"
)

// AllStats lists the five counters in display order.
var AllStats = []Stat{StatSTR, StatVIT, StatAGI, StatINT, StatPER}

// IsValid reports whether s names one of the five counters.
func (s Stat) IsValid() bool {
	switch s {
	case StatSTR, StatVIT, StatAGI, StatINT, StatPER:
		return true
	default:
		return false
	}
}

func (s Stat) Label() string {
	return strings.ToUpper(string(s))
}

// ParseStat parses user input to a Stat. Empty input yields "" (no stat).
func ParseStat(input string) (Stat, error) {
	s := Stat(strings.TrimSpace(strings.ToLower(input)))
	switch {
	case s == "":
		return "", nil
	case s.IsValid():
		return s, nil
	default:
		return "", ValidationError{Field: "stat", Reason: fmt.Sprintf("unknown stat %q (want str|vit|agi|int|per)", input)}
	}
}

// StatBlock holds one integer per stat.
type StatBlock struct {
	Str int `json:"str"`
	Vit int `json:"vit"`
	Agi int `json:"agi"`
	Int int `json:"int"`
	Per int `json:"per"`
}

func (b StatBlock) Get(s Stat) int {
	switch s {
	case StatSTR:
		return b.Str
	case StatVIT:
		return b.Vit
	case StatAGI:
		return b.Agi
	case StatINT:
		return b.Int
	case StatPER:
		return b.Per
	default:
		return 0
	}
}

// Add adds n to the counter for s. It reports false for tags without a counter.
func (b *StatBlock) Add(s Stat, n int) bool {
	switch s {
	case StatSTR:
		b.Str += n
	case StatVIT:
		b.Vit += n
	case StatAGI:
		b.Agi += n
	case StatINT:
		b.Int += n
	case StatPER:
		b.Per += n
	default:
		return false
	}
	return true
}

func (b StatBlock) Total() int {
	return b.Str + b.Vit + b.Agi + b.Int + b.Per
}
