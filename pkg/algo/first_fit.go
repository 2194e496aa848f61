package algo

import (
	"sort"
)

// DefaultMaxItems is the largest number of items FirstFit puts in one bucket
// when no explicit limit is given.
const DefaultMaxItems = 1500

// Item is a named, sized unit to be packed (typically a file).
type Item struct {
	Name string
	Size int64
}

// Bucket is a group of items whose total size stays below the limit.
type Bucket struct {
	Items []Item
	Size  int64
}

// FirstFit partitions items into buckets whose total size is below maxSize.
// The algorithm is the classic first-fit decreasing heuristic:
// 1. Sorts items by size, largest first (ties by name).
// 2. Places each item into the first bucket with room for it and fewer than maxItems entries.
// 3. Opens a new bucket when none fits. An item of at least maxSize always gets its own bucket.
//
// It does not look for the tightest fit. maxItems <= 0 means DefaultMaxItems.
func FirstFit(items []Item, maxSize int64, maxItems int) []Bucket {
	if len(items) == 0 {
		return nil
	}
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}

	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Size != sorted[j].Size {
			return sorted[i].Size > sorted[j].Size
		}
		return sorted[i].Name < sorted[j].Name
	})

	var buckets []Bucket
	for _, it := range sorted {
		placed := false
		if it.Size < maxSize {
			for i := range buckets {
				b := &buckets[i]
				if b.Size+it.Size < maxSize && len(b.Items) < maxItems {
					b.Items = append(b.Items, it)
					b.Size += it.Size
					placed = true
					break
				}
			}
		}
		if !placed {
			buckets = append(buckets, Bucket{Items: []Item{it}, Size: it.Size})
		}
	}
	return buckets
}
