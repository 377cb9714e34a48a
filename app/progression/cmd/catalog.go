package main

import (
	"fmt"
	"os"

	"github.com/lk2023060901/xdooria-progression/app/progression/internal/model"
	"gopkg.in/yaml.v3"
)

// catalogFile 物品文件，目录服务本身不在本工具范围内
//
//	items:
//	  - id: 1001
//	    name: Iron Sword
//	    slot: WEAPON
//	    bonuses: {STR: 4, DEX: 1}
//	    requirements:
//	      min_level: 3
//	      min_attributes: {CON: 12}
type catalogFile struct {
	Items []catalogItem `yaml:"items"`
}

type catalogItem struct {
	ID           int64            `yaml:"id"`
	Name         string           `yaml:"name"`
	Slot         string           `yaml:"slot"`
	Bonuses      map[string]int32 `yaml:"bonuses"`
	Requirements struct {
		MinLevel      *int32           `yaml:"min_level"`
		MinAttributes map[string]int32 `yaml:"min_attributes"`
	} `yaml:"requirements"`
}

// loadCatalogItem 读取物品文件；文件只有一个物品时 itemID 可为 0
func loadCatalogItem(path string, itemID int64) (*model.CatalogItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read item file: %w", err)
	}
	return parseCatalogItem(data, itemID)
}

func parseCatalogItem(data []byte, itemID int64) (*model.CatalogItem, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse item file: %w", err)
	}

	switch {
	case len(file.Items) == 0:
		return nil, fmt.Errorf("item file contains no items")
	case itemID == 0 && len(file.Items) == 1:
		return file.Items[0].toModel()
	case itemID == 0:
		return nil, fmt.Errorf("item file contains %d items, pass --item", len(file.Items))
	}

	for i := range file.Items {
		if file.Items[i].ID == itemID {
			return file.Items[i].toModel()
		}
	}
	return nil, fmt.Errorf("item %d not found in item file", itemID)
}

func (c *catalogItem) toModel() (*model.CatalogItem, error) {
	slot, err := model.ParseSlotType(c.Slot)
	if err != nil {
		return nil, err
	}
	bonuses, err := parseAttributeMap(c.Bonuses)
	if err != nil {
		return nil, err
	}

	item := &model.CatalogItem{
		ID:      c.ID,
		Name:    c.Name,
		Slot:    slot,
		Bonuses: bonuses,
		Requirements: model.Requirements{
			MinLevel: model.FromPtr(c.Requirements.MinLevel),
		},
	}
	if len(c.Requirements.MinAttributes) > 0 {
		item.Requirements.MinAttributes = make(map[model.AttributeCode]int32, len(c.Requirements.MinAttributes))
		for k, v := range c.Requirements.MinAttributes {
			code, err := model.ParseAttributeCode(k)
			if err != nil {
				return nil, err
			}
			item.Requirements.MinAttributes[code] = v
		}
	}
	return item, nil
}

func parseAttributeMap(m map[string]int32) (model.Attributes, error) {
	var out model.Attributes
	for k, v := range m {
		code, err := model.ParseAttributeCode(k)
		if err != nil {
			return model.Attributes{}, err
		}
		out.Set(code, v)
	}
	return out, nil
}
