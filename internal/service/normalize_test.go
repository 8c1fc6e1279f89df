package service

import (
	"testing"

	"cs2-inventory-api/internal/model"
)

func strOrNil(s *string) string {
	if s == nil {
		return "<nil>"
	}
	return *s
}

func TestNormalizeItems_preservesAssetOrderAndLength(t *testing.T) {
	t.Parallel()

	assets := []model.Asset{
		{AssetID: "3", ClassID: "1", InstanceID: "0"},
		{AssetID: "1", ClassID: "2", InstanceID: "0"},
		{AssetID: "2", ClassID: "1", InstanceID: "0"},
		{AssetID: "9", ClassID: "404", InstanceID: "0"},
	}
	descriptions := []model.Description{
		{ClassID: "2", InstanceID: "0", Name: "B"},
		{ClassID: "1", InstanceID: "0", Name: "A"},
	}

	items := NormalizeItems(assets, descriptions, DefaultIconBase)
	if len(items) != len(assets) {
		t.Fatalf("len got %d, want %d", len(items), len(assets))
	}
	for i := range assets {
		if items[i].ID != string(assets[i].AssetID) {
			t.Fatalf("items[%d].ID got %q, want %q", i, items[i].ID, assets[i].AssetID)
		}
	}
	if items[0].Name != "A" || items[1].Name != "B" || items[2].Name != "A" {
		t.Fatalf("names got %q %q %q", items[0].Name, items[1].Name, items[2].Name)
	}
}

func TestNormalizeItems_emptyInputs(t *testing.T) {
	t.Parallel()

	items := NormalizeItems(nil, nil, DefaultIconBase)
	if items == nil || len(items) != 0 {
		t.Fatalf("items got %#v, want empty non-nil slice", items)
	}
}

func TestNormalizeItems_missingDescriptionDegrades(t *testing.T) {
	t.Parallel()

	items := NormalizeItems([]model.Asset{{AssetID: "1", ClassID: "10", InstanceID: "0"}}, nil, DefaultIconBase)

	got := items[0]
	if got.Name != UnknownItemName {
		t.Fatalf("Name got %q, want %q", got.Name, UnknownItemName)
	}
	if got.Tradable {
		t.Fatalf("Tradable got true, want false")
	}
	if got.IconURL != nil || got.Rarity != nil || got.MarketHashName != nil || got.Type != nil {
		t.Fatalf("nullable fields got icon=%s rarity=%s mhn=%s type=%s",
			strOrNil(got.IconURL), strOrNil(got.Rarity), strOrNil(got.MarketHashName), strOrNil(got.Type))
	}
}

func TestNormalizeItems_lastDuplicateDescriptionWins(t *testing.T) {
	t.Parallel()

	descriptions := []model.Description{
		{ClassID: "10", InstanceID: "0", Name: "first", Tradable: 0, IconURL: "one"},
		{ClassID: "10", InstanceID: "0", Name: "second", Tradable: 1, IconURL: "two"},
	}

	items := NormalizeItems([]model.Asset{{AssetID: "1", ClassID: "10", InstanceID: "0"}}, descriptions, "base/")

	got := items[0]
	if got.Name != "second" {
		t.Fatalf("Name got %q, want %q", got.Name, "second")
	}
	if !got.Tradable {
		t.Fatalf("Tradable got false, want true")
	}
	if strOrNil(got.IconURL) != "base/two" {
		t.Fatalf("IconURL got %q, want %q", strOrNil(got.IconURL), "base/two")
	}
}

func TestNormalizeItems_joinKeyDoesNotCollide(t *testing.T) {
	t.Parallel()

	descriptions := []model.Description{
		{ClassID: "1", InstanceID: "23", Name: "one-twentythree"},
		{ClassID: "12", InstanceID: "3", Name: "twelve-three"},
	}
	assets := []model.Asset{
		{AssetID: "a", ClassID: "1", InstanceID: "23"},
		{AssetID: "b", ClassID: "12", InstanceID: "3"},
	}

	items := NormalizeItems(assets, descriptions, DefaultIconBase)
	if items[0].Name != "one-twentythree" || items[1].Name != "twelve-three" {
		t.Fatalf("names got %q %q", items[0].Name, items[1].Name)
	}
}

func TestNormalizeItems_nameFallbacks(t *testing.T) {
	t.Parallel()

	descriptions := []model.Description{
		{ClassID: "1", InstanceID: "0", Name: "Display", MarketHashName: "Market"},
		{ClassID: "2", InstanceID: "0", MarketHashName: "Market only"},
		{ClassID: "3", InstanceID: "0"},
	}
	assets := []model.Asset{
		{AssetID: "a", ClassID: "1", InstanceID: "0"},
		{AssetID: "b", ClassID: "2", InstanceID: "0"},
		{AssetID: "c", ClassID: "3", InstanceID: "0"},
	}

	items := NormalizeItems(assets, descriptions, DefaultIconBase)

	want := []string{"Display", "Market only", UnknownItemName}
	for i, w := range want {
		if items[i].Name != w {
			t.Fatalf("items[%d].Name got %q, want %q", i, items[i].Name, w)
		}
	}
	if strOrNil(items[0].MarketHashName) != "Market" {
		t.Fatalf("MarketHashName got %q, want %q", strOrNil(items[0].MarketHashName), "Market")
	}
}

func TestNormalizeItems_tradableOnlyWhenOne(t *testing.T) {
	t.Parallel()

	descriptions := []model.Description{
		{ClassID: "1", InstanceID: "0", Tradable: 1},
		{ClassID: "2", InstanceID: "0", Tradable: 0},
		{ClassID: "3", InstanceID: "0", Tradable: 2},
	}
	assets := []model.Asset{
		{AssetID: "a", ClassID: "1", InstanceID: "0"},
		{AssetID: "b", ClassID: "2", InstanceID: "0"},
		{AssetID: "c", ClassID: "3", InstanceID: "0"},
	}

	items := NormalizeItems(assets, descriptions, DefaultIconBase)
	if !items[0].Tradable || items[1].Tradable || items[2].Tradable {
		t.Fatalf("tradable got %v %v %v", items[0].Tradable, items[1].Tradable, items[2].Tradable)
	}
}

func TestNormalizeItems_rarity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		tags []model.Tag
		want string
	}{
		{
			name: "first rarity tag wins",
			tags: []model.Tag{
				{Category: "Type", LocalizedTagName: "Rifle"},
				{Category: "Rarity", LocalizedTagName: "Classified", Name: "Rarity_Legendary"},
				{Category: "Rarity", LocalizedTagName: "Covert"},
			},
			want: "Classified",
		},
		{
			name: "falls back to raw name",
			tags: []model.Tag{{Category: "Rarity", Name: "Restricted"}},
			want: "Restricted",
		},
		{
			name: "no rarity category",
			tags: []model.Tag{{Category: "Quality", LocalizedTagName: "Normal"}},
			want: "<nil>",
		},
		{
			name: "category match is exact",
			tags: []model.Tag{{Category: "rarity", LocalizedTagName: "Covert"}},
			want: "<nil>",
		},
		{
			name: "no tags",
			want: "<nil>",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			items := NormalizeItems(
				[]model.Asset{{AssetID: "1", ClassID: "1", InstanceID: "0"}},
				[]model.Description{{ClassID: "1", InstanceID: "0", Tags: tc.tags}},
				DefaultIconBase,
			)
			if got := strOrNil(items[0].Rarity); got != tc.want {
				t.Fatalf("Rarity got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestNormalizeItems_iconURL(t *testing.T) {
	t.Parallel()

	items := NormalizeItems(
		[]model.Asset{
			{AssetID: "a", ClassID: "1", InstanceID: "0"},
			{AssetID: "b", ClassID: "2", InstanceID: "0"},
		},
		[]model.Description{
			{ClassID: "1", InstanceID: "0", IconURL: "-9a81dlWLwJ2"},
			{ClassID: "2", InstanceID: "0"},
		},
		DefaultIconBase,
	)

	if got := strOrNil(items[0].IconURL); got != DefaultIconBase+"-9a81dlWLwJ2" {
		t.Fatalf("IconURL got %q", got)
	}
	if items[1].IconURL != nil {
		t.Fatalf("IconURL got %q, want nil", *items[1].IconURL)
	}
}
