package formation

import (
	"fmt"
	"strings"
)

// FillRule names, for each slot, the ordered sources allowed to refill it
// ranks and slotsPerRank describe the formation being populated
type FillRule func(ref SlotRef, ranks, slotsPerRank int) []SlotRef

// Built-in rule names accepted by RuleByName
const (
	RuleNameBehind         = "behind"
	RuleNameBehindDiagonal = "behind-diagonal"
	RuleNameNone           = "none"
)

// RuleBehind refills a slot from the same slot of the next rank back
// The back rank is terminal
func RuleBehind(ref SlotRef, ranks, _ int) []SlotRef {
	if ref.Rank+1 >= ranks {
		return nil
	}
	return []SlotRef{{Rank: ref.Rank + 1, Slot: ref.Slot}}
}

// RuleBehindDiagonal tries directly behind, then behind-left, then behind-right
func RuleBehindDiagonal(ref SlotRef, ranks, slotsPerRank int) []SlotRef {
	if ref.Rank+1 >= ranks {
		return nil
	}
	next := ref.Rank + 1
	out := []SlotRef{{Rank: next, Slot: ref.Slot}}
	if ref.Slot-1 >= 0 {
		out = append(out, SlotRef{Rank: next, Slot: ref.Slot - 1})
	}
	if ref.Slot+1 < slotsPerRank {
		out = append(out, SlotRef{Rank: next, Slot: ref.Slot + 1})
	}
	return out
}

// RuleNone never refills; every slot is terminal
func RuleNone(SlotRef, int, int) []SlotRef { return nil }

// Table builds a rule from an explicit per-slot table; missing slots are terminal
// The returned lists are copies so the table may be reused
func Table(table map[SlotRef][]SlotRef) FillRule {
	return func(ref SlotRef, _, _ int) []SlotRef {
		src := table[ref]
		if len(src) == 0 {
			return nil
		}
		out := make([]SlotRef, len(src))
		copy(out, src)
		return out
	}
}

// RuleByName resolves a built-in rule
func RuleByName(name string) (FillRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case RuleNameBehind, "":
		return RuleBehind, nil
	case RuleNameBehindDiagonal:
		return RuleBehindDiagonal, nil
	case RuleNameNone:
		return RuleNone, nil
	default:
		return nil, fmt.Errorf("unknown fill rule %q", name)
	}
}
