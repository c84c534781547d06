package bsd

// Category is one of the four fixed radar classifications. The labels and
// predicates come from the field team's triage sheet; see
// internal/bsd/categorize for the threshold rules.
type Category int

const (
	// CategoryNear: y below the near boundary with nonzero velocity.
	CategoryNear Category = iota
	// CategoryMid: y within [near, far] with nonzero velocity.
	CategoryMid
	// CategoryFar: y above the far boundary with nonzero velocity.
	CategoryFar
	// CategoryStationary: the all-zero returns (x=0, y=0, velocity=0).
	CategoryStationary
)

// AllCategories is the canonical iteration order for reports and exports.
var AllCategories = []Category{CategoryNear, CategoryMid, CategoryFar, CategoryStationary}

func (c Category) String() string {
	switch c {
	case CategoryNear:
		return "Category 1 (y < 20 and velocity != 0)"
	case CategoryMid:
		return "Category 2 (20 <= y <= 80 and velocity != 0)"
	case CategoryFar:
		return "Category 3 (y > 80 and velocity != 0)"
	case CategoryStationary:
		return "Category 4 (x = 0, y = 0, and velocity = 0)"
	default:
		return "unknown category"
	}
}

// Slug returns a filesystem- and database-safe name for the category.
func (c Category) Slug() string {
	switch c {
	case CategoryNear:
		return "category_1"
	case CategoryMid:
		return "category_2"
	case CategoryFar:
		return "category_3"
	case CategoryStationary:
		return "category_4"
	default:
		return "category_unknown"
	}
}
