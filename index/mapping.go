package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Searchable projection of a game record. Doc ID is the decimal game id;
// full snapshots live in the document store and are joined after search.
type gameDoc struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	MinPlayers  int      `json:"minplayers"`
	MaxPlayers  int      `json:"maxplayers"`
	MinAge      int      `json:"minage"`
	PlayingTime int      `json:"playingtime"`
	Categories  []string `json:"categories"`
	Mechanics   []string `json:"mechanics"`
}

// buildIndexMapping defines how game fields are analyzed: name and
// description as full text, categories and mechanics as keywords (exact
// term match), the player/age/time attributes as numerics.
func buildIndexMapping() mapping.IndexMapping {
	textField := bleve.NewTextFieldMapping()
	keywordField := bleve.NewKeywordFieldMapping()
	numericField := bleve.NewNumericFieldMapping()

	game := bleve.NewDocumentMapping()
	game.AddFieldMappingsAt("name", textField)
	game.AddFieldMappingsAt("description", textField)
	game.AddFieldMappingsAt("categories", keywordField)
	game.AddFieldMappingsAt("mechanics", keywordField)
	game.AddFieldMappingsAt("minplayers", numericField)
	game.AddFieldMappingsAt("maxplayers", numericField)
	game.AddFieldMappingsAt("minage", numericField)
	game.AddFieldMappingsAt("playingtime", numericField)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = game
	return indexMapping
}
