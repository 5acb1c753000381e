package main

import (
	"reflect"
	"testing"
)

func getTestImagePaths() []ImagePath {
	return []ImagePath{
		{Path: "test/01.png"},
		{Path: "test/04.zip:a.png", ArchivePath: "test/04.zip", EntryPath: "a.png"},
		{Path: "test/08.png"},
		{Path: "test/09.png"},
		{Path: "test/2.png"},
		{Path: "test/３.png"},
	}
}

func pathsToStrings(paths []ImagePath) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.Path
	}
	return out
}

func TestSortStrategies(t *testing.T) {
	tests := []struct {
		method   SortMethod
		name     string
		expected []string
	}{
		{
			SortNatural, "Natural",
			[]string{"test/01.png", "test/2.png", "test/04.zip:a.png", "test/08.png", "test/09.png", "test/３.png"},
		},
		{
			SortSimple, "Simple",
			[]string{"test/01.png", "test/04.zip:a.png", "test/08.png", "test/09.png", "test/2.png", "test/３.png"},
		},
		{
			SortEntryOrder, "Entry Order",
			[]string{"test/01.png", "test/04.zip:a.png", "test/08.png", "test/09.png", "test/2.png", "test/３.png"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := GetSortStrategy(tt.method)
			if strategy.Name() != tt.name {
				t.Errorf("Name() = %q, want %q", strategy.Name(), tt.name)
			}
			if strategy.Method() != tt.method {
				t.Errorf("Method() = %d, want %d", strategy.Method(), tt.method)
			}

			input := getTestImagePaths()
			original := getTestImagePaths()
			result := pathsToStrings(strategy.Sort(input))
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("sort order mismatch")
				t.Logf("Expected: %v", tt.expected)
				t.Logf("Got:      %v", result)
			}
			if !reflect.DeepEqual(input, original) {
				t.Error("input slice was modified")
			}
			if got := strategy.Sort(nil); len(got) != 0 {
				t.Errorf("Sort(nil) = %v, want empty", got)
			}
		})
	}
}

func TestGetSortStrategyFallback(t *testing.T) {
	for _, m := range []SortMethod{-1, 3, 99} {
		if got := GetSortStrategy(m).Method(); got != SortNatural {
			t.Errorf("GetSortStrategy(%d) = %d, want natural", m, got)
		}
	}
}

func TestSortMethodCycle(t *testing.T) {
	m := SortNatural
	var names []string
	for i := 0; i < 4; i++ {
		names = append(names, m.String())
		m = m.Next()
	}
	want := []string{"Natural", "Simple", "Entry Order", "Natural"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("cycle = %v, want %v", names, want)
	}
	if SortMethod(42).Next() != SortNatural {
		t.Error("invalid method should restart the cycle")
	}
	if len(GetAllSortStrategies()) != 3 {
		t.Errorf("expected 3 strategies, got %d", len(GetAllSortStrategies()))
	}
}
