package algo

import (
	"reflect"
	"testing"
)

func names(b Bucket) []string {
	var out []string
	for _, it := range b.Items {
		out = append(out, it.Name)
	}
	return out
}

func TestFirstFit(t *testing.T) {
	tests := []struct {
		name     string
		items    []Item
		maxSize  int64
		maxItems int
		expected [][]string
	}{
		{
			name:     "Empty",
			items:    nil,
			maxSize:  10,
			expected: nil,
		},
		{
			name:     "All Fit",
			items:    []Item{{"a.dll", 2}, {"b.dll", 3}, {"c.dll", 4}},
			maxSize:  10,
			expected: [][]string{{"c.dll", "b.dll", "a.dll"}},
		},
		{
			name:     "Limit Is Exclusive",
			items:    []Item{{"a.dll", 5}, {"b.dll", 5}},
			maxSize:  10,
			expected: [][]string{{"a.dll"}, {"b.dll"}},
		},
		{
			name:    "First Bucket With Room",
			items:   []Item{{"a", 6}, {"b", 5}, {"c", 3}, {"d", 2}},
			maxSize: 10,
			// a opens 0, b opens 1, c joins 0 (9), d skips 0 (11) and joins 1 (7).
			expected: [][]string{{"a", "c"}, {"b", "d"}},
		},
		{
			name:     "Oversized Items Stand Alone",
			items:    []Item{{"small", 1}, {"huge", 50}, {"exact", 10}},
			maxSize:  10,
			expected: [][]string{{"huge"}, {"exact"}, {"small"}},
		},
		{
			name:     "Item Count Limit",
			items:    []Item{{"a", 1}, {"b", 1}, {"c", 1}},
			maxSize:  100,
			maxItems: 2,
			expected: [][]string{{"a", "b"}, {"c"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FirstFit(tt.items, tt.maxSize, tt.maxItems)

			var gotNames [][]string
			for _, b := range got {
				gotNames = append(gotNames, names(b))
			}
			if !reflect.DeepEqual(gotNames, tt.expected) {
				t.Errorf("FirstFit() = %v, want %v", gotNames, tt.expected)
			}
		})
	}
}

func TestFirstFit_Invariants(t *testing.T) {
	var items []Item
	var total int64
	for i := int64(1); i <= 40; i++ {
		size := (i * 37) % 23
		items = append(items, Item{Name: string(rune('A' + i)), Size: size})
		total += size
	}
	input := append([]Item(nil), items...)

	buckets := FirstFit(items, 30, 0)

	if !reflect.DeepEqual(items, input) {
		t.Errorf("FirstFit() modified its input")
	}

	var sum int64
	count := 0
	for i, b := range buckets {
		var bs int64
		for _, it := range b.Items {
			bs += it.Size
		}
		if bs != b.Size {
			t.Errorf("bucket %d: Size = %d, items sum to %d", i, b.Size, bs)
		}
		if len(b.Items) > 1 && b.Size >= 30 {
			t.Errorf("bucket %d exceeds the limit: %d", i, b.Size)
		}
		sum += b.Size
		count += len(b.Items)
	}
	if sum != total || count != len(items) {
		t.Errorf("items lost: %d/%d bytes, %d/%d items", sum, total, count, len(items))
	}
}
