package team

// SlotCount is the number of fixed entity slots in a deck.
const SlotCount = 5

// DeckCount is the number of decks in a team.
const DeckCount = 3

// DeckIdentity is the shareable projection of a deck: ids and a label only.
type DeckIdentity struct {
	SpellcasterID string            `json:"spellcaster_id"`
	SlotIDs       [SlotCount]string `json:"slot_ids"`
	Name          string            `json:"name"`
}

// IsEmpty reports whether no field of the deck is set.
func (d DeckIdentity) IsEmpty() bool {
	return d == DeckIdentity{}
}

// TeamIdentity is the shareable projection of a team: a label and three decks.
type TeamIdentity struct {
	Name  string                  `json:"name"`
	Decks [DeckCount]DeckIdentity `json:"decks"`
}

// IsEmpty reports whether the team has no name and only empty decks.
func (t TeamIdentity) IsEmpty() bool {
	return t == TeamIdentity{}
}
