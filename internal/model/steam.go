package model

import (
	"bytes"
	"encoding/json"
)

// SteamInventory is a validated community inventory payload.
type SteamInventory struct {
	Assets       []Asset
	Descriptions []Description
}

// Asset is a single owned item instance.
type Asset struct {
	AssetID    Text `json:"assetid"`
	ClassID    Text `json:"classid"`
	InstanceID Text `json:"instanceid"`
}

// Description holds the data shared by all assets of one class/instance pair.
type Description struct {
	ClassID        Text `json:"classid"`
	InstanceID     Text `json:"instanceid"`
	Name           Text `json:"name"`
	MarketHashName Text `json:"market_hash_name"`
	Type           Text `json:"type"`
	Tradable       Flag `json:"tradable"`
	IconURL        Text `json:"icon_url"`
	Tags           Tags `json:"tags"`
}

// Tag classifies a description (Rarity, Quality, Weapon, ...).
type Tag struct {
	Category         Text `json:"category"`
	Name             Text `json:"name"`
	LocalizedTagName Text `json:"localized_tag_name"`
}

// Text is a string field that also accepts a JSON number verbatim.
// Any other JSON type decodes to "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0:
		*t = ""
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		*t = Text(data)
	default:
		*t = ""
	}
	return nil
}

// Flag is 1 only for the JSON number 1 and 0 for anything else.
type Flag int

func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = 0
	var n float64
	if err := json.Unmarshal(data, &n); err == nil && n == 1 {
		*f = 1
	}
	return nil
}

// Tags decodes an array of tags, skipping entries that are not objects.
// A value that is not an array decodes to no tags.
type Tags []Tag

func (ts *Tags) UnmarshalJSON(data []byte) error {
	*ts = nil
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}
	for _, r := range raw {
		var tag Tag
		if err := json.Unmarshal(r, &tag); err != nil {
			continue
		}
		*ts = append(*ts, tag)
	}
	return nil
}
