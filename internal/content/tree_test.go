package content

import (
	"errors"
	"strings"
	"testing"

	"github.com/werewolves/lupus/internal/blocks"
	"github.com/werewolves/lupus/internal/models"
)

func TestAddBlockOrdersSiblings(t *testing.T) {
	db := setupTestDB(t)
	site := createSite(t, db, "pack")
	page, _ := CreatePage(db, site.ID, "/rules", "Rules")

	first, err := AddBlock(db, site.ID, page.ID, nil, "header", "")
	if err != nil {
		t.Fatalf("AddBlock failed: %v", err)
	}
	second, _ := AddBlock(db, site.ID, page.ID, nil, "section", `{"background":"alternative-colors"}`)
	inner, _ := AddBlock(db, site.ID, page.ID, &second.ID, "text", "")

	if first.Order != 0 || second.Order != 1 {
		t.Errorf("expected top-level orders 0 and 1, got %d and %d", first.Order, second.Order)
	}
	if inner.Order != 0 {
		t.Errorf("first inner block should start at 0, got %d", inner.Order)
	}
	if first.Data != "{}" || inner.Data != `{"content":""}` {
		t.Errorf("expected default data, got %q and %q", first.Data, inner.Data)
	}
}

func TestAddBlockValidation(t *testing.T) {
	db := setupTestDB(t)
	site := createSite(t, db, "pack")
	other := createSite(t, db, "other")
	page, _ := CreatePage(db, site.ID, "/rules", "Rules")
	otherPage, _ := CreatePage(db, site.ID, "/roles", "Roles")

	header, _ := AddBlock(db, site.ID, page.ID, nil, "header", "")
	text, _ := AddBlock(db, site.ID, page.ID, nil, "text", "")

	tests := []struct {
		name     string
		siteID   uint
		pageID   uint
		parentID *uint
		typ      string
		data     string
		want     error
	}{
		{"unknown type", site.ID, page.ID, nil, "gallery", "", blocks.ErrUnknownType},
		{"section in header", site.ID, page.ID, &header.ID, "section", "", ErrNestingNotAllowed},
		{"child of text", site.ID, page.ID, &text.ID, "text", "", ErrNestingNotAllowed},
		{"bad attributes", site.ID, page.ID, nil, "section", `{"background":"plaid"}`, blocks.ErrInvalidAttributes},
		{"page of another site", other.ID, page.ID, nil, "text", "", ErrNotFound},
		{"parent on another page", site.ID, otherPage.ID, &header.ID, "text", "", ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AddBlock(db, tt.siteID, tt.pageID, tt.parentID, tt.typ, tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := AddBlock(db, site.ID, page.ID, &header.ID, "text", ""); err != nil {
		t.Errorf("text inside header should be allowed: %v", err)
	}
}

func TestUpdateBlock(t *testing.T) {
	db := setupTestDB(t)
	site := createSite(t, db, "pack")
	other := createSite(t, db, "other")
	page, _ := CreatePage(db, site.ID, "/rules", "Rules")
	block, _ := AddBlock(db, site.ID, page.ID, nil, "section", "")

	updated, err := UpdateBlock(db, site.ID, block.ID, `{"backgroundFeature":"background-message","backgroundMessage":"AWOO"}`)
	if err != nil {
		t.Fatalf("UpdateBlock failed: %v", err)
	}
	if !strings.Contains(updated.Data, "AWOO") {
		t.Errorf("data not stored: %s", updated.Data)
	}

	if _, err := UpdateBlock(db, site.ID, block.ID, `{"horizontal":"yes"}`); !errors.Is(err, blocks.ErrInvalidAttributes) {
		t.Errorf("expected ErrInvalidAttributes, got %v", err)
	}
	if _, err := UpdateBlock(db, other.ID, block.ID, `{}`); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound across sites, got %v", err)
	}
}

func TestDeleteBlockRemovesInnerBlocks(t *testing.T) {
	db := setupTestDB(t)
	site := createSite(t, db, "pack")
	page, _ := CreatePage(db, site.ID, "/rules", "Rules")

	outer, _ := AddBlock(db, site.ID, page.ID, nil, "section", "")
	nested, _ := AddBlock(db, site.ID, page.ID, &outer.ID, "section", "")
	AddBlock(db, site.ID, page.ID, &nested.ID, "text", "")
	keep, _ := AddBlock(db, site.ID, page.ID, nil, "text", "")

	if err := DeleteBlock(db, site.ID, outer.ID); err != nil {
		t.Fatalf("DeleteBlock failed: %v", err)
	}

	remaining, _ := ListBlocks(db, page.ID)
	if len(remaining) != 1 || remaining[0].ID != keep.ID {
		t.Errorf("expected only the unrelated block to remain, got %+v", remaining)
	}
}

func TestMoveBlock(t *testing.T) {
	db := setupTestDB(t)
	site := createSite(t, db, "pack")
	page, _ := CreatePage(db, site.ID, "/rules", "Rules")

	a, _ := AddBlock(db, site.ID, page.ID, nil, "text", `{"content":"a"}`)
	b, _ := AddBlock(db, site.ID, page.ID, nil, "text", `{"content":"b"}`)
	section, _ := AddBlock(db, site.ID, page.ID, nil, "section", "")
	inner, _ := AddBlock(db, site.ID, page.ID, &section.ID, "text", `{"content":"inner"}`)

	order := func() []uint {
		tree, err := LoadTree(db, page.ID)
		if err != nil {
			t.Fatalf("LoadTree failed: %v", err)
		}
		var ids []uint
		for _, n := range tree {
			ids = append(ids, n.ID)
		}
		return ids
	}

	if err := MoveBlock(db, site.ID, b.ID, Up); err != nil {
		t.Fatalf("MoveBlock failed: %v", err)
	}
	if got := order(); got[0] != b.ID || got[1] != a.ID {
		t.Errorf("expected b before a, got %v", got)
	}

	// already first: no-op
	if err := MoveBlock(db, site.ID, b.ID, Up); err != nil {
		t.Fatalf("MoveBlock failed: %v", err)
	}
	if got := order(); got[0] != b.ID {
		t.Errorf("expected b to stay first, got %v", got)
	}

	if err := MoveBlock(db, site.ID, a.ID, Down); err != nil {
		t.Fatalf("MoveBlock failed: %v", err)
	}
	if got := order(); got[1] != section.ID || got[2] != a.ID {
		t.Errorf("expected a last, got %v", got)
	}

	// an only child has no siblings to swap with
	if err := MoveBlock(db, site.ID, inner.ID, Up); err != nil {
		t.Errorf("MoveBlock on an only child failed: %v", err)
	}
}

func TestBuildTree(t *testing.T) {
	parent := uint(1)
	missing := uint(99)
	list := []models.Block{
		{ID: 3, Type: "text", Order: 1, ParentID: &parent},
		{ID: 1, Type: "section", Order: 0},
		{ID: 2, Type: "text", Order: 0, ParentID: &parent},
		{ID: 4, Type: "header", Order: 1},
		{ID: 5, Type: "text", Order: 0, ParentID: &missing},
	}

	tree := BuildTree(list)
	if len(tree) != 2 || tree[0].ID != 1 || tree[1].ID != 4 {
		t.Fatalf("unexpected roots: %+v", tree)
	}
	children := tree[0].Children
	if len(children) != 2 || children[0].ID != 2 || children[1].ID != 3 {
		t.Errorf("unexpected children: %+v", children)
	}
}

func TestRenderPage(t *testing.T) {
	db := setupTestDB(t)
	site := createSite(t, db, "pack")
	page, _ := CreatePage(db, site.ID, "/rules", "Rules")

	section, _ := AddBlock(db, site.ID, page.ID, nil, "section", `{"backgroundFeature":"background-message","backgroundMessage":"Hi"}`)
	AddBlock(db, site.ID, page.ID, &section.ID, "text", `{"content":"inside"}`)

	saved, err := RenderPage(db, page.ID, blocks.ModeSave)
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	if !strings.Contains(saved, "inside") || !strings.Contains(saved, "Hi&#160;") {
		t.Errorf("saved markup missing content: %s", saved)
	}

	preview, err := RenderPage(db, page.ID, blocks.ModePreview)
	if err != nil {
		t.Fatalf("RenderPage failed: %v", err)
	}
	if strings.Contains(preview, "&#160;") {
		t.Errorf("preview should use edit padding: %s", preview)
	}
}
