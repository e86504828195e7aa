package publicfiles

import (
	"sort"
	"strings"
)

const (
	DefaultItemsPerPage = 20
	MinItemsPerPage     = 1
	MaxItemsPerPage     = 100
)

type SortPolicy int

const (
	// NameAscendingFoldersFirst lists folders before files, each group by
	// case-insensitive name.
	NameAscendingFoldersFirst SortPolicy = iota
	// PriorityThenRecency lists images, then other files, then folders,
	// newest first within a priority.
	PriorityThenRecency
)

func (s SortPolicy) String() string {
	switch s {
	case NameAscendingFoldersFirst:
		return "folders_first_and_name"
	case PriorityThenRecency:
		return "priority_and_modification_time"
	default:
		return "unknown"
	}
}

func matchesSearch(name, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(search))
}

func lessByName(a, b Entry) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

// orderEntries combines the scanned folders and files into one ordered slice.
func orderEntries(scan scanResult, policy SortPolicy) []Entry {
	items := make([]Entry, 0, scan.total())

	switch policy {
	case PriorityThenRecency:
		items = append(items, scan.files...)
		items = append(items, scan.folders...)
		sort.Slice(items, func(i, j int) bool {
			if items[i].SortPriority != items[j].SortPriority {
				return items[i].SortPriority < items[j].SortPriority
			}
			if !items[i].ModifiedAt.Equal(items[j].ModifiedAt) {
				return items[i].ModifiedAt.After(items[j].ModifiedAt)
			}
			return lessByName(items[i], items[j])
		})
	default:
		folders := append([]Entry(nil), scan.folders...)
		files := append([]Entry(nil), scan.files...)
		sort.Slice(folders, func(i, j int) bool { return lessByName(folders[i], folders[j]) })
		sort.Slice(files, func(i, j int) bool { return lessByName(files[i], files[j]) })
		items = append(items, folders...)
		items = append(items, files...)
	}

	return items
}

// Page describes one page of an ordered listing.
type Page struct {
	CurrentPage  int
	TotalPages   int
	ItemsPerPage int
	TotalItems   int
	Offset       int
}

func clampItemsPerPage(perPage int) int {
	if perPage < MinItemsPerPage {
		return MinItemsPerPage
	}
	if perPage > MaxItemsPerPage {
		return MaxItemsPerPage
	}
	return perPage
}

// Paginate clamps the requested page and page size and computes the page
// bounds for total items. It never fails on out-of-range input.
func Paginate(total, page, perPage int) Page {
	if total < 0 {
		total = 0
	}
	perPage = clampItemsPerPage(perPage)
	if page < 1 {
		page = 1
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}

	return Page{
		CurrentPage:  page,
		TotalPages:   totalPages,
		ItemsPerPage: perPage,
		TotalItems:   total,
		Offset:       (page - 1) * perPage,
	}
}

func (p Page) ShowingFrom() int {
	return p.Offset + 1
}

func (p Page) ShowingTo() int {
	return min(p.Offset+p.ItemsPerPage, p.TotalItems)
}

func (p Page) HasPrevious() bool {
	return p.CurrentPage > 1
}

func (p Page) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

func (p Page) PreviousPage() *int {
	if !p.HasPrevious() {
		return nil
	}
	prev := p.CurrentPage - 1
	return &prev
}

func (p Page) NextPage() *int {
	if !p.HasNext() {
		return nil
	}
	next := p.CurrentPage + 1
	return &next
}

// Slice returns the items on this page, truncated at the end of items.
func (p Page) Slice(items []Entry) []Entry {
	if p.Offset >= len(items) {
		return []Entry{}
	}
	end := min(p.Offset+p.ItemsPerPage, len(items))
	return items[p.Offset:end]
}
