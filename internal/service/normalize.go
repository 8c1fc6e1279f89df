package service

import "cs2-inventory-api/internal/model"

const (
	// DefaultIconBase is the economy image CDN prefix for description icon paths.
	DefaultIconBase = "https://steamcommunity-a.akamaihd.net/economy/image/"

	// UnknownItemName is used when a description carries no usable name.
	UnknownItemName = "Unknown item"

	rarityCategory = "Rarity"
)

// descriptionKey joins assets to descriptions. A struct key keeps
// ("1","23") and ("12","3") distinct.
type descriptionKey struct {
	classID    model.Text
	instanceID model.Text
}

// NormalizeItems joins assets with their descriptions into display items.
// The result has one item per asset in asset order. When several
// descriptions share a key the last one wins. Missing descriptions degrade
// to defaults; it never fails.
func NormalizeItems(assets []model.Asset, descriptions []model.Description, iconBase string) []model.Item {
	byKey := make(map[descriptionKey]*model.Description, len(descriptions))
	for i := range descriptions {
		d := &descriptions[i]
		byKey[descriptionKey{classID: d.ClassID, instanceID: d.InstanceID}] = d
	}

	items := make([]model.Item, len(assets))
	for i, asset := range assets {
		d := byKey[descriptionKey{classID: asset.ClassID, instanceID: asset.InstanceID}]
		if d == nil {
			d = &model.Description{}
		}

		item := model.Item{
			ID:             string(asset.AssetID),
			Name:           itemName(d),
			MarketHashName: optional(string(d.MarketHashName)),
			Type:           optional(string(d.Type)),
			Tradable:       d.Tradable == 1,
			Rarity:         rarity(d.Tags),
		}
		if d.IconURL != "" {
			iconURL := iconBase + string(d.IconURL)
			item.IconURL = &iconURL
		}
		items[i] = item
	}

	return items
}

func itemName(d *model.Description) string {
	switch {
	case d.Name != "":
		return string(d.Name)
	case d.MarketHashName != "":
		return string(d.MarketHashName)
	default:
		return UnknownItemName
	}
}

// rarity reads the first Rarity tag, preferring its localized name.
func rarity(tags []model.Tag) *string {
	for _, tag := range tags {
		if tag.Category != rarityCategory {
			continue
		}
		if tag.LocalizedTagName != "" {
			return optional(string(tag.LocalizedTagName))
		}
		return optional(string(tag.Name))
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
