package pipeline

import "sort"

// Splice applies adjustments to text and returns the result together with
// the adjustments it refused to apply.
//
// Adjustments are applied from the highest start offset down, so a
// replacement never moves the offsets of spans still waiting to be applied.
// Ties on the start offset go to the longer span, then to the earlier
// adjustment in adjs.
//
// Spans are expected not to overlap. An adjustment that overlaps one
// already applied, or that does not fit the text, is skipped and returned
// in dropped. The input slice is not reordered.
func Splice(text string, adjs []Adjustment) (out string, dropped []Adjustment) {
	if len(adjs) == 0 {
		return text, nil
	}

	ordered := append([]Adjustment(nil), adjs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i].Span, ordered[j].Span
		if a.Start != b.Start {
			return a.Start > b.Start
		}
		return a.End > b.End
	})

	runes := []rune(text)
	// floor is the lowest start offset applied so far; any later span must
	// end at or before it.
	floor := len(runes)
	for _, adj := range ordered {
		s := adj.Span
		if s.Start < 0 || s.End < s.Start || s.End > len(runes) || s.End > floor {
			dropped = append(dropped, adj)
			continue
		}
		runes = replaceRunes(runes, s, []rune(adj.Replacement))
		floor = s.Start
	}
	return string(runes), dropped
}

// replaceRunes returns a new slice with runes[s.Start:s.End] replaced by repl.
func replaceRunes(runes []rune, s Span, repl []rune) []rune {
	out := make([]rune, 0, len(runes)-s.Len()+len(repl))
	out = append(out, runes[:s.Start]...)
	out = append(out, repl...)
	out = append(out, runes[s.End:]...)
	return out
}
