package main

import (
	"sort"

	"github.com/maruel/natural"
)

// SortMethod selects how gallery images are ordered.
type SortMethod int

const (
	SortNatural    SortMethod = iota // file1, file2, file10
	SortSimple                       // lexicographical
	SortEntryOrder                   // as found on disk or in the archive
	sortMethodCount
)

// SortStrategy orders image paths.
type SortStrategy interface {
	// Sort returns a new sorted slice without modifying the original
	Sort(images []ImagePath) []ImagePath
	Name() string
	Method() SortMethod
}

type lessSort struct {
	name   string
	method SortMethod
	less   func(a, b string) bool
}

func (s lessSort) Sort(images []ImagePath) []ImagePath {
	result := make([]ImagePath, len(images))
	copy(result, images)
	if s.less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return s.less(result[i].Path, result[j].Path)
		})
	}
	return result
}

func (s lessSort) Name() string { return s.name }
func (s lessSort) Method() SortMethod { return s.method }

var sortStrategies = [sortMethodCount]SortStrategy{
	SortNatural:    lessSort{name: "Natural", method: SortNatural, less: natural.Less},
	SortSimple:     lessSort{name: "Simple", method: SortSimple, less: func(a, b string) bool { return a < b }},
	SortEntryOrder: lessSort{name: "Entry Order", method: SortEntryOrder},
}

// Valid reports whether m names a known sort method.
func (m SortMethod) Valid() bool {
	return m >= 0 && m < sortMethodCount
}

// Next returns the method that follows m in the cycle.
func (m SortMethod) Next() SortMethod {
	if !m.Valid() {
		return SortNatural
	}
	return (m + 1) % sortMethodCount
}

func (m SortMethod) String() string {
	return GetSortStrategy(m).Name()
}

// GetSortStrategy returns the strategy for m, falling back to natural order.
func GetSortStrategy(m SortMethod) SortStrategy {
	if !m.Valid() {
		return sortStrategies[SortNatural]
	}
	return sortStrategies[m]
}

// GetAllSortStrategies returns every strategy in cycle order.
func GetAllSortStrategies() []SortStrategy {
	return sortStrategies[:]
}

func sortImagePaths(images []ImagePath, m SortMethod) []ImagePath {
	return GetSortStrategy(m).Sort(images)
}
