package validator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arcanaland/ccgcatalog/internal/card"
	"github.com/arcanaland/ccgcatalog/internal/catalog"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	DataDir   string
	AssetsDir string
	Results   ValidationResults

	cards []card.Card
	sets  []card.SetInfo
}

func NewValidator(dataDir, assetsDir string) *Validator {
	return &Validator{
		DataDir:   dataDir,
		AssetsDir: assetsDir,
		Results:   ValidationResults{},
	}
}

// Validate checks the data directory. A returned error means the
// directory could not be read at all; findings go into the results.
func (v *Validator) Validate() (ValidationResults, error) {
	if err := v.loadCards(); err != nil {
		return v.Results, err
	}

	v.loadSets()
	v.validateNews()
	v.validateCards()
	v.validateSets()
	v.validateBanlist()

	return v.Results, nil
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

func (v *Validator) loadCards() error {
	path := filepath.Join(v.DataDir, catalog.CardsFile)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%s not found in %s", catalog.CardsFile, v.DataDir)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading %s: %w", catalog.CardsFile, err)
	}
	if err := json.Unmarshal(data, &v.cards); err != nil {
		return fmt.Errorf("error parsing %s: %w", catalog.CardsFile, err)
	}
	if len(v.cards) == 0 {
		v.warnf("%s contains no cards", catalog.CardsFile)
	}
	return nil
}

func (v *Validator) loadSets() {
	path := filepath.Join(v.DataDir, catalog.SetsFile)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		v.warnf("%s not found", catalog.SetsFile)
		return
	}
	if err != nil {
		v.errorf("error reading %s: %v", catalog.SetsFile, err)
		return
	}
	if err := json.Unmarshal(data, &v.sets); err != nil {
		v.errorf("error parsing %s: %v", catalog.SetsFile, err)
	}
}

func (v *Validator) validateNews() {
	data, err := os.ReadFile(filepath.Join(v.DataDir, catalog.NewsFile))
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		v.errorf("error reading %s: %v", catalog.NewsFile, err)
		return
	}

	var news []card.NewsItem
	if err := json.Unmarshal(data, &news); err != nil {
		v.errorf("error parsing %s: %v", catalog.NewsFile, err)
		return
	}
	for i, n := range news {
		if n.Title == "" {
			v.errorf("news[%d]: title is required", i)
		}
		if n.Date != "" && !isISODate(n.Date) {
			v.warnf("news[%d]: date %q is not YYYY-MM-DD", i, n.Date)
		}
	}
}

// validateCards checks identity, categories, stats and references
func (v *Validator) validateCards() {
	seen := make(map[string]bool, len(v.cards))
	for i := range v.cards {
		c := &v.cards[i]
		label := c.ID
		if label == "" {
			label = fmt.Sprintf("cards[%d]", i)
			v.errorf("%s: id is required", label)
		} else if seen[c.ID] {
			v.errorf("duplicate card id: %s", c.ID)
		}
		seen[c.ID] = true

		if c.Name == "" {
			v.errorf("%s: name is required", label)
		}

		if !c.Category.Valid() {
			v.errorf("%s: unknown category %q (expected Monster, Spell or Trap)", label, c.Category)
		}

		if c.Icon != "" {
			if c.Category == card.Monster {
				v.warnf("%s: monster has a spell/trap icon %q", label, c.Icon)
			} else if !contains(card.Icons, c.Icon) {
				v.errorf("%s: unknown icon %q", label, c.Icon)
			}
		}

		if c.Attribute != "" && !containsFold(card.Attributes, c.Attribute) {
			v.warnf("%s: unknown attribute %q", label, c.Attribute)
		}

		stats := 0
		for _, p := range []*int{c.Level, c.Rank, c.LinkRating} {
			if p != nil {
				stats++
			}
		}
		if stats > 1 {
			v.warnf("%s: more than one of level, rank and linkRating is set", label)
		}

		for _, a := range c.LinkArrows {
			if a < 0 || a >= len(card.ArrowCodes) {
				v.errorf("%s: link arrow %d out of range 0-%d", label, a, len(card.ArrowCodes)-1)
			}
		}

		if added := c.Added(); added != "" && !isISODate(added) {
			v.errorf("%s: timestamps.added %q is not YYYY-MM-DD", label, added)
		}

		if c.Set != "" && len(v.sets) > 0 && !v.knownSet(c.Set) {
			v.warnf("%s: set %q does not start with a known set code", label, c.Set)
		}

		v.validateImage(label, c.Image)
	}
}

func (v *Validator) validateImage(label, image string) {
	if image == "" {
		v.warnf("%s: no image", label)
		return
	}
	if v.AssetsDir == "" || strings.Contains(image, "://") {
		return
	}
	path := filepath.Join(v.AssetsDir, filepath.FromSlash(strings.TrimPrefix(image, "/")))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		v.warnf("%s: image not found: %s", label, image)
	}
}

func (v *Validator) validateSets() {
	seen := make(map[string]bool, len(v.sets))
	for i, s := range v.sets {
		if s.Code == "" {
			v.errorf("sets[%d]: code is required", i)
			continue
		}
		if seen[s.Code] {
			v.errorf("duplicate set code: %s", s.Code)
		}
		seen[s.Code] = true

		if s.Name == "" {
			v.warnf("set %s: name is missing", s.Code)
		}
		if s.ReleaseDate != "" && !isISODate(s.ReleaseDate) {
			v.errorf("set %s: releaseDate %q is not YYYY-MM-DD", s.Code, s.ReleaseDate)
		}
	}
}

// validateBanlist checks the optional TCG ban list dataset
func (v *Validator) validateBanlist() {
	data, err := os.ReadFile(filepath.Join(v.DataDir, catalog.BanlistFile))
	if os.IsNotExist(err) {
		v.warnf("%s not found; the ban list will fail to load", catalog.BanlistFile)
		return
	}
	if err != nil {
		v.errorf("error reading %s: %v", catalog.BanlistFile, err)
		return
	}

	var tcg []card.Card
	if err := json.Unmarshal(data, &tcg); err != nil {
		v.errorf("error parsing %s: %v", catalog.BanlistFile, err)
		return
	}
	for i, c := range tcg {
		if c.ID == "" {
			v.errorf("%s[%d]: id is required", catalog.BanlistFile, i)
		}
	}
}

func (v *Validator) knownSet(set string) bool {
	for _, s := range v.sets {
		if strings.HasPrefix(strings.ToLower(set), strings.ToLower(s.Code)) {
			return true
		}
	}
	return false
}

func isISODate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// contains checks if a string is in a slice
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func containsFold(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
