package chord

import (
	"sort"

	"github.com/jsphweid/capo/util"
)

// intervals above the root for each type, ascending
var templates = map[Type][]int{
	Maj:  {0, 4, 7},
	Min:  {0, 3, 7},
	Dom7: {0, 4, 7, 10},
	Min7: {0, 3, 7, 10},
	Maj7: {0, 4, 7, 11},
}

// a4 is the MIDI key of pitch class 0
const a4 = 69

func PitchClassOfKey(key uint8) int {
	return util.Mod(int(key)-a4, 12)
}

// Intervals returns the chord's pitch classes starting from the root.
func Intervals(t Type) []int {
	res := make([]int, len(templates[t]))
	copy(res, templates[t])
	return res
}

// PitchClasses returns the sorted pitch classes sounding in c.
func PitchClasses(c Chord) []int {
	var res []int
	for _, interval := range templates[c.Type] {
		res = append(res, util.Mod(c.Num+interval, 12))
	}
	sort.Ints(res)
	return res
}

// Identify names a set of pitch classes. Duplicates (octave doublings) are
// ignored. The second return is false when the set is not one of the
// recognised chord shapes.
func Identify(pitchClasses []int) (Chord, bool) {
	set := make(map[int]bool)
	for _, pc := range pitchClasses {
		set[util.Mod(pc, 12)] = true
	}
	unique := util.SortedKeys(set)

	for _, t := range Types() {
		if len(templates[t]) != len(unique) {
			continue
		}
		for root := 0; root < 12; root++ {
			c := Chord{Num: root, Type: t}
			if equalInts(PitchClasses(c), unique) {
				return c, true
			}
		}
	}
	return Chord{}, false
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
