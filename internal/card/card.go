package card

// Category is the top-level card kind
type Category string

const (
	Monster Category = "Monster"
	Spell   Category = "Spell"
	Trap    Category = "Trap"
)

// Categories lists every category in display order
var Categories = []Category{Monster, Spell, Trap}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case Monster, Spell, Trap:
		return true
	}
	return false
}

// Icons are the Spell/Trap subtypes
var Icons = []string{"Normal", "Quick-Play", "Field", "Equip", "Continuous", "Counter", "Ritual"}

// CardTypes are the monster subtypes offered by the filter panel
var CardTypes = []string{"Normal", "Effect", "Flip", "Spirit", "Tuner", "Pendulum", "Fusion", "Synchro", "Xyz", "Link"}

// MonsterTypes are the creature types offered by the filter panel
var MonsterTypes = []string{
	"Dragon", "Spellcaster", "Warrior", "Beast", "Beast-Warrior", "Aqua", "Machine", "Fairy", "Fiend", "Zombie", "Rock", "Plant",
	"Psychic", "Thunder", "Pyro", "Reptile", "Sea Serpent", "Wyrm", "Dinosaur", "Cyberse", "Illusion", "Creator God",
}

// Attributes are the monster attributes
var Attributes = []string{"LIGHT", "DARK", "EARTH", "WATER", "FIRE", "WIND", "DIVINE"}

// Legal holds the optional ban list flags of a card
type Legal struct {
	Banned      bool `json:"banned,omitempty"`
	Limited     bool `json:"limited,omitempty"`
	SemiLimited bool `json:"semiLimited,omitempty"`
}

// Timestamps holds optional bookkeeping dates
type Timestamps struct {
	Added string `json:"added,omitempty"` // YYYY-MM-DD
}

// Card represents a catalog entry. Nullable stats are nil when unknown.
type Card struct {
	ID    string `json:"id"`    // Unique ID (e.g., CARD-0001)
	Name  string `json:"name"`  // Display name
	Image string `json:"image"` // Image path relative to the assets root

	Set       string `json:"set,omitempty"`       // Set code and name
	Archetype string `json:"archetype,omitempty"` // Thematic grouping

	Category Category `json:"category"`
	Icon     string   `json:"icon,omitempty"` // Spell/Trap icon

	CardTypes   []string `json:"cardTypes,omitempty"`   // e.g. Effect, Xyz
	MonsterType []string `json:"monsterType,omitempty"` // e.g. Machine
	Attribute   string   `json:"attribute,omitempty"`

	Level      *int  `json:"level"`
	Rank       *int  `json:"rank"`
	LinkRating *int  `json:"linkRating"`
	LinkArrows []int `json:"linkArrows,omitempty"` // Arrow indices, see Arrow
	Scale      *int  `json:"scale"`

	ATK *int `json:"atk"`
	DEF *int `json:"def"`

	Text     string   `json:"text,omitempty"`
	Keywords []string `json:"keywords,omitempty"`

	Legal      *Legal      `json:"legal,omitempty"`
	Timestamps *Timestamps `json:"timestamps,omitempty"`
}

// BanStatus returns the derived ban list classification
func (c *Card) BanStatus() BanStatus {
	if c.Legal == nil {
		return Unrestricted
	}
	switch {
	case c.Legal.Banned:
		return Forbidden
	case c.Legal.Limited:
		return Limited
	case c.Legal.SemiLimited:
		return SemiLimited
	}
	return Unrestricted
}

// Added returns the added date, or "" when the card has none
func (c *Card) Added() string {
	if c.Timestamps == nil {
		return ""
	}
	return c.Timestamps.Added
}

// IsLink reports whether the card carries link data
func (c *Card) IsLink() bool {
	return c.LinkRating != nil || len(c.LinkArrows) > 0
}
