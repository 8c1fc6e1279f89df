package model

// Item is a display-ready inventory entry built from an asset and its description.
// Nullable fields serialize as JSON null when unknown.
type Item struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	MarketHashName *string `json:"marketHashName"`
	Type           *string `json:"type"`
	Tradable       bool    `json:"tradable"`
	IconURL        *string `json:"iconUrl"`
	Rarity         *string `json:"rarity"`
}

// Inventory is the result envelope returned to clients and stored in cache.
type Inventory struct {
	Items []Item `json:"items"`
}
