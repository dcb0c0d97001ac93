package deck

import (
	"errors"
	"fmt"

	"github.com/youruser/spellhub/internal/cards"
	"github.com/youruser/spellhub/internal/team"
)

var ErrInvalidDeck = errors.New("invalid deck")

// Lookup resolves entity ids. *cards.Catalog implements it.
type Lookup interface {
	Lookup(id string) (cards.Entity, bool)
}

type Deck struct {
	Name        string                        `json:"name"`
	Spellcaster *cards.Entity                 `json:"spellcaster"`
	Slots       [team.SlotCount]*cards.Entity `json:"slots"`
}

// Team is the runtime form of a shared team.
type Team struct {
	Name  string               `json:"name"`
	Decks [team.DeckCount]Deck `json:"decks"`
}

// FromIdentity resolves a deck identity. Ids that lookup does not know are
// left empty and returned as missing.
func FromIdentity(lookup Lookup, id team.DeckIdentity) (Deck, []string) {
	var missing []string
	resolve := func(eid string) *cards.Entity {
		if eid == "" {
			return nil
		}
		e, ok := lookup.Lookup(eid)
		if !ok {
			missing = append(missing, eid)
			return nil
		}
		return &e
	}

	d := Deck{Name: id.Name, Spellcaster: resolve(id.SpellcasterID)}
	for i, sid := range id.SlotIDs {
		d.Slots[i] = resolve(sid)
	}
	return d, missing
}

func TeamFromIdentity(lookup Lookup, id team.TeamIdentity) (Team, []string) {
	t := Team{Name: id.Name}
	var missing []string
	for i, di := range id.Decks {
		d, m := FromIdentity(lookup, di)
		t.Decks[i] = d
		missing = append(missing, m...)
	}
	return t, missing
}

// Identity projects the deck onto its shareable form.
func (d Deck) Identity() team.DeckIdentity {
	id := team.DeckIdentity{Name: d.Name}
	if d.Spellcaster != nil {
		id.SpellcasterID = d.Spellcaster.EntityID
	}
	for i, e := range d.Slots {
		if e != nil {
			id.SlotIDs[i] = e.EntityID
		}
	}
	return id
}

func (t Team) Identity() team.TeamIdentity {
	id := team.TeamIdentity{Name: t.Name}
	for i, d := range t.Decks {
		id.Decks[i] = d.Identity()
	}
	return id
}

// Validate checks slot placement: a spellcaster in the caster slot, a titan
// only in the last slot, units or spells elsewhere, and no repeats.
func (d Deck) Validate() error {
	if d.Spellcaster != nil && d.Spellcaster.Category != cards.CategorySpellcaster {
		return fmt.Errorf("%w: %s is not a spellcaster", ErrInvalidDeck, d.Spellcaster.EntityID)
	}
	seen := map[string]bool{}
	last := len(d.Slots) - 1
	for i, e := range d.Slots {
		if e == nil {
			continue
		}
		if seen[e.EntityID] {
			return fmt.Errorf("%w: %s appears twice", ErrInvalidDeck, e.EntityID)
		}
		seen[e.EntityID] = true

		switch e.Category {
		case cards.CategoryTitan:
			if i != last {
				return fmt.Errorf("%w: titan %s must be in slot %d", ErrInvalidDeck, e.EntityID, last+1)
			}
		case cards.CategoryUnit, cards.CategorySpell:
			if i == last {
				return fmt.Errorf("%w: slot %d only holds a titan", ErrInvalidDeck, last+1)
			}
		default:
			return fmt.Errorf("%w: %s cannot fill slot %d", ErrInvalidDeck, e.EntityID, i+1)
		}
	}
	return nil
}
