package catalog

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

// Resolve finds a category by URL token. A slug match wins; the hex id is the
// fallback for legacy links and slug-less documents. Returns nil when neither
// matches: a missing category is an expected state, not an error.
func Resolve(token string, categories []models.Category) *models.Category {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	for i := range categories {
		if categories[i].Slug != "" && categories[i].Slug == token {
			return &categories[i]
		}
	}
	for i := range categories {
		if categories[i].ID.Hex() == token {
			return &categories[i]
		}
	}
	return nil
}

// CanonicalPath returns the canonical listing path for a category, preserving
// the query string. A category reached via its id redirects here as soon as it
// has a slug, so old id links converge on one URL over time.
func CanonicalPath(category *models.Category, rawQuery string) string {
	token := category.ID.Hex()
	if category.Slug != "" {
		token = category.Slug
	}
	path := "/category/" + token
	if rawQuery != "" {
		path += "?" + rawQuery
	}
	return path
}

// ChildrenOf returns the direct children only. The tree is walked one level
// at a time, matching the strict level-1 → level-2 → level-3 hierarchy.
func ChildrenOf(category *models.Category, categories []models.Category) []models.Category {
	children := make([]models.Category, 0)
	for _, c := range categories {
		if c.ParentCategory != nil && *c.ParentCategory == category.ID {
			children = append(children, c)
		}
	}
	return children
}

// ParentChain returns ancestors root-first for breadcrumbs. With three levels
// this is at most two hops; it is not a general N-level walk.
func ParentChain(category *models.Category, categories []models.Category) []models.Category {
	chain := make([]models.Category, 0, 2)
	current := category
	for hops := 0; hops < 2 && current.ParentCategory != nil; hops++ {
		parent := FindByID(*current.ParentCategory, categories)
		if parent == nil {
			// dangling parent reference, e.g. a deleted ancestor
			break
		}
		chain = append([]models.Category{*parent}, chain...)
		current = parent
	}
	return chain
}

// FindByID looks a category up by its object id.
func FindByID(id primitive.ObjectID, categories []models.Category) *models.Category {
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i]
		}
	}
	return nil
}

// ValidateHierarchy rejects level/parent combinations the catalog tree does
// not allow: a level-1 category must have no parent, and a deeper category's
// parent must sit exactly one level above it.
func ValidateHierarchy(level int, parent *models.Category) error {
	if level < 1 || level > 3 {
		return fmt.Errorf("level must be 1, 2 or 3")
	}
	if level == 1 {
		if parent != nil {
			return fmt.Errorf("level-1 category cannot have a parent")
		}
		return nil
	}
	if parent == nil {
		return fmt.Errorf("level-%d category requires a parent", level)
	}
	if parent.Level != level-1 {
		return fmt.Errorf("level-%d category requires a level-%d parent", level, level-1)
	}
	return nil
}
