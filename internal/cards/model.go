package cards

// Category values of Entity.Category.
const (
	CategorySpellcaster = "spellcaster"
	CategoryUnit        = "unit"
	CategorySpell       = "spell"
	CategoryTitan       = "titan"
)

type Entity struct {
	EntityID    string   `json:"entity_id"`
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	School      string   `json:"school"`
	Rank        string   `json:"rank"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
}

type PatchChange struct {
	EntityID string `json:"entity_id"`
	Note     string `json:"note"`
}

// Patch is one changelog entry of the game.
type Patch struct {
	Version string        `json:"version"`
	Date    string        `json:"date"`
	Title   string        `json:"title"`
	Changes []PatchChange `json:"changes"`
}

// Dataset is the document served by the external data host.
type Dataset struct {
	Entities []Entity `json:"entities"`
	Patches  []Patch  `json:"patches"`
}
