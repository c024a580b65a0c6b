package models

// Game is one of the fixed tournament categories.
type Game string

const (
	GameValorant  Game = "valorant"
	GameEAFCSolo  Game = "eafc-solo"
	GameEAFCDupla Game = "eafc-dupla"
)

// GameInfo describes one entry of the closed game catalog.
type GameInfo struct {
	Game       Game   `json:"game"`
	Label      string `json:"label"`
	MinPlayers int    `json:"min_players"`
	PriceCents int    `json:"price_cents"`
	PriceLabel string `json:"price_label"`
}

// GameCatalog is the fixed set of categories open for registration.
var GameCatalog = []GameInfo{
	{Game: GameValorant, Label: "Valorant", MinPlayers: 5, PriceCents: 7500, PriceLabel: "R$ 75,00 por equipe"},
	{Game: GameEAFCDupla, Label: "EA FC Dupla", MinPlayers: 2, PriceCents: 3000, PriceLabel: "R$ 30,00 por dupla"},
	{Game: GameEAFCSolo, Label: "EA FC Solo", MinPlayers: 1, PriceCents: 1500, PriceLabel: "R$ 15,00 individual"},
}

// Info returns the catalog entry for g, or nil for an unknown game.
func (g Game) Info() *GameInfo {
	for i := range GameCatalog {
		if GameCatalog[i].Game == g {
			return &GameCatalog[i]
		}
	}
	return nil
}

// Valid reports whether g is part of the catalog.
func (g Game) Valid() bool {
	return g.Info() != nil
}

// Label returns the display name used in the admin views and CSV export.
func (g Game) Label() string {
	if info := g.Info(); info != nil {
		return info.Label
	}
	return string(g)
}

// MinPlayers returns the minimum roster size for the category.
func (g Game) MinPlayers() int {
	if info := g.Info(); info != nil {
		return info.MinPlayers
	}
	return 0
}
