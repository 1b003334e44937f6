package content

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/werewolves/lupus/internal/blocks"
	"github.com/werewolves/lupus/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Direction moves a block among its siblings
type Direction int

const (
	Up Direction = iota
	Down
)

// "order" is a reserved word; clause.Column quotes it per dialect
var orderColumn = clause.Column{Name: "order"}

// GetBlock loads a block whose page belongs to siteID
func GetBlock(db *gorm.DB, siteID, blockID uint) (*models.Block, error) {
	var block models.Block
	err := db.Joins("JOIN pages ON pages.id = blocks.page_id AND pages.deleted_at IS NULL").
		Where("blocks.id = ? AND pages.site_id = ?", blockID, siteID).
		First(&block).Error
	if err != nil {
		return nil, notFound("block", err)
	}
	return &block, nil
}

// ListBlocks returns every block on a page in sibling order
func ListBlocks(db *gorm.DB, pageID uint) ([]models.Block, error) {
	var list []models.Block
	err := db.Where("page_id = ?", pageID).
		Order(clause.OrderByColumn{Column: orderColumn}).
		Order("id ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}
	return list, nil
}

// AddBlock appends a block to the end of its siblings. parentID nil adds a
// top-level block; otherwise the parent must be on the same page and accept
// the block type. Empty data gets the block type's defaults.
func AddBlock(db *gorm.DB, siteID, pageID uint, parentID *uint, blockType, data string) (*models.Block, error) {
	page, err := GetPage(db, siteID, pageID)
	if err != nil {
		return nil, err
	}
	if !blocks.IsKnownType(blockType) {
		return nil, fmt.Errorf("%w: %s", blocks.ErrUnknownType, blockType)
	}

	if parentID != nil {
		parent, err := GetBlock(db, siteID, *parentID)
		if err != nil {
			return nil, err
		}
		if parent.PageID != page.ID {
			return nil, fmt.Errorf("parent block %w on this page", ErrNotFound)
		}
		if err := blocks.CheckNesting(parent.Type, blockType); err != nil {
			return nil, err
		}
	}

	if emptyData(data) {
		data = defaultData(blockType)
	}
	if err := blocks.Validate(blockType, data); err != nil {
		return nil, err
	}

	block := &models.Block{
		PageID:   page.ID,
		ParentID: parentID,
		Type:     blockType,
		Data:     data,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var last models.Block
		err := siblings(tx, page.ID, parentID).
			Order(clause.OrderByColumn{Column: orderColumn, Desc: true}).
			First(&last).Error
		switch {
		case err == nil:
			block.Order = last.Order + 1
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("failed to find block order: %w", err)
		}

		if err := tx.Create(block).Error; err != nil {
			return fmt.Errorf("failed to create block: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return block, nil
}

// UpdateBlock replaces a block's attribute data
func UpdateBlock(db *gorm.DB, siteID, blockID uint, data string) (*models.Block, error) {
	block, err := GetBlock(db, siteID, blockID)
	if err != nil {
		return nil, err
	}
	if emptyData(data) {
		data = defaultData(block.Type)
	}
	if err := blocks.Validate(block.Type, data); err != nil {
		return nil, err
	}
	if err := db.Model(block).Update("data", data).Error; err != nil {
		return nil, fmt.Errorf("failed to update block: %w", err)
	}
	return block, nil
}

// DeleteBlock deletes a block and its inner blocks
func DeleteBlock(db *gorm.DB, siteID, blockID uint) error {
	block, err := GetBlock(db, siteID, blockID)
	if err != nil {
		return err
	}

	all, err := ListBlocks(db, block.PageID)
	if err != nil {
		return err
	}
	ids := descendants(all, block.ID)
	ids = append(ids, block.ID)

	if err := db.Where("id IN ?", ids).Delete(&models.Block{}).Error; err != nil {
		return fmt.Errorf("failed to delete block: %w", err)
	}
	return nil
}

// MoveBlock swaps a block with its previous or next sibling.
// Moving past either end is a no-op.
func MoveBlock(db *gorm.DB, siteID, blockID uint, dir Direction) error {
	block, err := GetBlock(db, siteID, blockID)
	if err != nil {
		return err
	}

	current := block.Order

	return db.Transaction(func(tx *gorm.DB) error {
		query := siblings(tx, block.PageID, block.ParentID)
		if dir == Up {
			query = query.Where(clause.Lt{Column: orderColumn, Value: block.Order}).
				Order(clause.OrderByColumn{Column: orderColumn, Desc: true})
		} else {
			query = query.Where(clause.Gt{Column: orderColumn, Value: block.Order}).
				Order(clause.OrderByColumn{Column: orderColumn})
		}

		var neighbour models.Block
		if err := query.First(&neighbour).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to find neighbouring block: %w", err)
		}

		if err := tx.Model(block).Update("order", neighbour.Order).Error; err != nil {
			return fmt.Errorf("failed to update block order: %w", err)
		}
		if err := tx.Model(&neighbour).Update("order", current).Error; err != nil {
			return fmt.Errorf("failed to update block order: %w", err)
		}
		return nil
	})
}

// BuildTree nests blocks under their parents, siblings sorted by order.
// Blocks whose parent is missing are dropped.
func BuildTree(list []models.Block) []*blocks.Node {
	nodes := make(map[uint]*blocks.Node, len(list))
	for _, b := range list {
		nodes[b.ID] = &blocks.Node{ID: b.ID, Type: b.Type, Data: b.Data}
	}

	sorted := make([]models.Block, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID < sorted[j].ID
	})

	var roots []*blocks.Node
	for _, b := range sorted {
		n := nodes[b.ID]
		if b.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		if parent, ok := nodes[*b.ParentID]; ok {
			parent.Children = append(parent.Children, n)
		}
	}
	return roots
}

// LoadTree loads a page's blocks as a tree
func LoadTree(db *gorm.DB, pageID uint) ([]*blocks.Node, error) {
	list, err := ListBlocks(db, pageID)
	if err != nil {
		return nil, err
	}
	return BuildTree(list), nil
}

// RenderPage renders a page's block tree
func RenderPage(db *gorm.DB, pageID uint, mode blocks.Mode) (string, error) {
	tree, err := LoadTree(db, pageID)
	if err != nil {
		return "", err
	}
	return blocks.RenderAll(tree, mode), nil
}

func siblings(tx *gorm.DB, pageID uint, parentID *uint) *gorm.DB {
	query := tx.Model(&models.Block{}).Where("page_id = ?", pageID)
	if parentID == nil {
		return query.Where("parent_id IS NULL")
	}
	return query.Where("parent_id = ?", *parentID)
}

func descendants(all []models.Block, id uint) []uint {
	var out []uint
	for _, b := range all {
		if b.ParentID != nil && *b.ParentID == id {
			out = append(out, b.ID)
			out = append(out, descendants(all, b.ID)...)
		}
	}
	return out
}

func emptyData(data string) bool {
	data = strings.TrimSpace(data)
	return data == "" || data == "null"
}

func defaultData(blockType string) string {
	if blockType == blocks.TypeText {
		return `{"content":""}`
	}
	return `{}`
}
