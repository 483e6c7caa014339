package program

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DayKey identifies one projected program day.
type DayKey struct {
	Week int
	Day  int
}

func (k DayKey) String() string {
	return fmt.Sprintf("%d-%d", k.Week, k.Day)
}

// ParseDayKey parses the "{week}-{day}" form produced by DayKey.String.
func ParseDayKey(s string) (DayKey, error) {
	weekStr, dayStr, ok := strings.Cut(s, "-")
	if !ok {
		return DayKey{}, fmt.Errorf("invalid day key [%s]", s)
	}
	week, err := strconv.Atoi(weekStr)
	if err != nil {
		return DayKey{}, fmt.Errorf("invalid day key [%s] week: %w", s, err)
	}
	day, err := strconv.Atoi(dayStr)
	if err != nil {
		return DayKey{}, fmt.Errorf("invalid day key [%s] day: %w", s, err)
	}
	return DayKey{Week: week, Day: day}, nil
}

// Ledger is the set of completed days of a schedule.
// The zero value is an empty ledger ready to use.
type Ledger struct {
	days map[DayKey]struct{}
}

func NewLedger(keys ...DayKey) Ledger {
	l := Ledger{}
	for _, k := range keys {
		l.MarkComplete(k.Week, k.Day)
	}
	return l
}

func (l *Ledger) MarkComplete(week, day int) {
	if l.days == nil {
		l.days = make(map[DayKey]struct{})
	}
	l.days[DayKey{Week: week, Day: day}] = struct{}{}
}

func (l *Ledger) MarkIncomplete(week, day int) {
	delete(l.days, DayKey{Week: week, Day: day})
}

func (l Ledger) IsComplete(week, day int) bool {
	_, ok := l.days[DayKey{Week: week, Day: day}]
	return ok
}

func (l Ledger) Count() int {
	return len(l.days)
}

// Days returns the completed days ordered by week, then day.
func (l Ledger) Days() []DayKey {
	keys := make([]DayKey, 0, len(l.days))
	for k := range l.days {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Week != keys[j].Week {
			return keys[i].Week < keys[j].Week
		}
		return keys[i].Day < keys[j].Day
	})
	return keys
}

// Keys returns the ordered "{week}-{day}" storage form of the ledger.
func (l Ledger) Keys() []string {
	days := l.Days()
	keys := make([]string, len(days))
	for i, d := range days {
		keys[i] = d.String()
	}
	return keys
}

// Clone returns an independent copy.
func (l Ledger) Clone() Ledger {
	return NewLedger(l.Days()...)
}

func (l Ledger) Equal(other Ledger) bool {
	if l.Count() != other.Count() {
		return false
	}
	for k := range l.days {
		if !other.IsComplete(k.Week, k.Day) {
			return false
		}
	}
	return true
}

func (l Ledger) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Keys())
}

func (l *Ledger) UnmarshalJSON(data []byte) error {
	var keys []string
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	parsed := Ledger{}
	for _, k := range keys {
		dk, err := ParseDayKey(k)
		if err != nil {
			return err
		}
		parsed.MarkComplete(dk.Week, dk.Day)
	}
	*l = parsed
	return nil
}

// Within returns the ledger restricted to [1,weeks]x[1,daysPerWeek] and the
// number of dropped entries.
func (l Ledger) Within(weeks, daysPerWeek int) (Ledger, int) {
	kept := Ledger{}
	dropped := 0
	for k := range l.days {
		if k.Week < 1 || k.Week > weeks || k.Day < 1 || k.Day > daysPerWeek {
			dropped++
			continue
		}
		kept.MarkComplete(k.Week, k.Day)
	}
	return kept, dropped
}
