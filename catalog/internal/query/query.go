package query

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/brickset/brickset/catalog/internal/store"
	"github.com/brickset/brickset/pkg/types"
)

// PieceThreshold splits PartitionByHundredPieces: counts above it go to true.
const PieceThreshold = 100

// CountWithTag returns the number of sets whose tag list is present and
// contains tag. Matching is exact and case-sensitive.
func CountWithTag(s *store.Store, tag string) int {
	n := 0
	for _, set := range s.All() {
		if set.HasTag(tag) {
			n++
		}
	}
	return n
}

// ThemeExists reports whether any set's theme equals name. An absent name
// matches only sets whose theme is absent.
func ThemeExists(s *store.Store, name types.Optional[string]) bool {
	return slices.ContainsFunc(s.All(), func(set types.LegoSet) bool {
		return set.HasTheme(name)
	})
}

// Tags yields every tag of every set with a present tag list, each value
// once, in order of first appearance. The sequence is lazy: stopping early
// stops the scan.
func Tags(s *store.Store) iter.Seq[string] {
	return func(yield func(string) bool) {
		seen := make(map[string]struct{})
		for _, set := range s.All() {
			tags, ok := set.Tags.Get()
			if !ok {
				continue
			}
			for _, tag := range tags {
				if _, dup := seen[tag]; dup {
					continue
				}
				seen[tag] = struct{}{}
				if !yield(tag) {
					return
				}
			}
		}
	}
}

// DistinctTags collects Tags into a slice.
func DistinctTags(s *store.Store) []string {
	return slices.Collect(Tags(s))
}

// PrintTags writes each distinct tag to w on its own line.
func PrintTags(w io.Writer, s *store.Store) error {
	bw := bufio.NewWriter(w)
	for tag := range Tags(s) {
		if _, err := fmt.Fprintln(bw, tag); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// SumPieces returns the total piece count across all sets. Absent counts
// contribute 0; negative counts are added as-is.
func SumPieces(s *store.Store) int {
	total := 0
	for _, set := range s.All() {
		total += set.Pieces
	}
	return total
}

// PartitionByHundredPieces splits the piece counts of all sets into those
// above PieceThreshold (true) and the rest (false), keeping load order.
// A count of 0 means "not given" and is left out of both groups.
// The result always has both keys.
func PartitionByHundredPieces(s *store.Store) map[bool][]int {
	out := map[bool][]int{true: {}, false: {}}
	for _, set := range s.All() {
		if set.Pieces == 0 {
			continue
		}
		big := set.Pieces > PieceThreshold
		out[big] = append(out[big], set.Pieces)
	}
	return out
}

// CountByTheme returns how many sets carry each theme. Sets without a theme
// are not counted.
func CountByTheme(s *store.Store) map[string]int {
	out := make(map[string]int)
	for _, set := range s.All() {
		if theme, ok := set.Theme.Get(); ok {
			out[theme]++
		}
	}
	return out
}
