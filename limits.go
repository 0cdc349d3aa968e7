package gogrid

const (
	MaxPageSize     = 100
	DefaultPageSize = 20
)

// IsNormalizedPageSizeMax clamps a requested page size into
// [1, maxPageSize]. Non-positive sizes become DefaultPageSize. The boolean
// reports whether the size was accepted unchanged.
func IsNormalizedPageSizeMax(pageSize int, maxPageSize int) (int, bool) {
	if pageSize <= 0 {
		return min(DefaultPageSize, maxPageSize), false
	} else if pageSize > maxPageSize {
		return maxPageSize, false
	}

	return pageSize, true
}

func NormalizePageSizeMax(pageSize int, maxPageSize int) int {
	ret, _ := IsNormalizedPageSizeMax(pageSize, maxPageSize)
	return ret
}

// NormalizePageSize is meant for untrusted request payloads. The engine
// itself never normalizes: it rejects non-positive sizes.
func NormalizePageSize(pageSize int) int {
	return NormalizePageSizeMax(pageSize, MaxPageSize)
}

// NormalizePage maps non-positive page numbers to the first page.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}

	return page
}
