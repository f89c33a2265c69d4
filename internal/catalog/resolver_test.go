package catalog

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/protyayrd/tweestbd-sub003/internal/models"
)

func testTree() []models.Category {
	men := models.Category{ID: primitive.NewObjectID(), Slug: "men", Name: "Men", Level: 1}
	shirts := models.Category{ID: primitive.NewObjectID(), Slug: "men-shirts", Name: "Shirts", Level: 2, ParentCategory: &men.ID}
	casual := models.Category{ID: primitive.NewObjectID(), Slug: "men-shirts-casual", Name: "Casual", Level: 3, ParentCategory: &shirts.ID}
	legacy := models.Category{ID: primitive.NewObjectID(), Name: "Legacy", Level: 1}
	return []models.Category{men, shirts, casual, legacy}
}

func TestResolvePrefersSlug(t *testing.T) {
	categories := testTree()
	got := Resolve("men", categories)
	if got == nil || got.Name != "Men" {
		t.Fatalf("expected Men, got %+v", got)
	}
}

func TestResolveFallsBackToID(t *testing.T) {
	categories := testTree()
	legacy := categories[3]
	got := Resolve(legacy.ID.Hex(), categories)
	if got == nil || got.ID != legacy.ID {
		t.Fatalf("expected legacy category, got %+v", got)
	}
}

func TestResolveMissingReturnsNil(t *testing.T) {
	categories := testTree()
	if got := Resolve("no-such-category", categories); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
	if got := Resolve("", categories); got != nil {
		t.Fatalf("expected nil for empty token, got %+v", got)
	}
}

func TestCanonicalizationIsIdempotent(t *testing.T) {
	categories := testTree()
	men := categories[0]

	byID := Resolve(men.ID.Hex(), categories)
	if byID == nil {
		t.Fatal("resolve by id failed")
	}

	canonical := CanonicalPath(byID, "pageNumber=3")
	if canonical != "/category/men?pageNumber=3" {
		t.Fatalf("unexpected canonical path: %s", canonical)
	}

	bySlug := Resolve("men", categories)
	if bySlug == nil || bySlug.ID != byID.ID {
		t.Fatal("slug resolution after canonicalization yielded a different category")
	}
}

func TestCanonicalPathWithoutSlugUsesID(t *testing.T) {
	categories := testTree()
	legacy := categories[3]
	got := CanonicalPath(&legacy, "")
	want := "/category/" + legacy.ID.Hex()
	if got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
}

func TestChildrenOfReturnsDirectChildrenOnly(t *testing.T) {
	categories := testTree()
	men := categories[0]

	children := ChildrenOf(&men, categories)
	if len(children) != 1 {
		t.Fatalf("expected 1 direct child, got %d", len(children))
	}
	if children[0].Name != "Shirts" {
		t.Fatalf("expected Shirts, got %s", children[0].Name)
	}
}

func TestParentChainRootFirst(t *testing.T) {
	categories := testTree()
	casual := categories[2]

	chain := ParentChain(&casual, categories)
	if len(chain) != 2 {
		t.Fatalf("expected 2 ancestors, got %d", len(chain))
	}
	if chain[0].Name != "Men" || chain[1].Name != "Shirts" {
		t.Fatalf("expected [Men Shirts], got [%s %s]", chain[0].Name, chain[1].Name)
	}
}

func TestParentChainStopsAtDanglingReference(t *testing.T) {
	missing := primitive.NewObjectID()
	orphan := models.Category{ID: primitive.NewObjectID(), Name: "Orphan", Level: 2, ParentCategory: &missing}

	chain := ParentChain(&orphan, []models.Category{orphan})
	if len(chain) != 0 {
		t.Fatalf("expected empty chain for dangling parent, got %d entries", len(chain))
	}
}

func TestDeletedParentLeavesChildrenResolvable(t *testing.T) {
	categories := testTree()
	// drop the level-2 Shirts category, leaving Casual with a dangling parent
	remaining := []models.Category{categories[0], categories[2], categories[3]}

	casual := Resolve("men-shirts-casual", remaining)
	if casual == nil {
		t.Fatal("child should still resolve after its parent is deleted")
	}
	if chain := ParentChain(casual, remaining); len(chain) != 0 {
		t.Fatalf("expected empty chain past the deleted parent, got %d entries", len(chain))
	}
}

func TestValidateHierarchy(t *testing.T) {
	level1 := models.Category{ID: primitive.NewObjectID(), Level: 1}
	level2 := models.Category{ID: primitive.NewObjectID(), Level: 2}

	if err := ValidateHierarchy(1, nil); err != nil {
		t.Fatalf("level 1 without parent should be valid: %v", err)
	}
	if err := ValidateHierarchy(1, &level1); err == nil {
		t.Fatal("level 1 with parent should be rejected")
	}
	if err := ValidateHierarchy(2, nil); err == nil {
		t.Fatal("level 2 without parent should be rejected")
	}
	if err := ValidateHierarchy(2, &level1); err != nil {
		t.Fatalf("level 2 with level-1 parent should be valid: %v", err)
	}
	if err := ValidateHierarchy(3, &level1); err == nil {
		t.Fatal("level 3 with level-1 parent should be rejected")
	}
	if err := ValidateHierarchy(3, &level2); err != nil {
		t.Fatalf("level 3 with level-2 parent should be valid: %v", err)
	}
	if err := ValidateHierarchy(4, nil); err == nil {
		t.Fatal("level 4 should be rejected")
	}
}
