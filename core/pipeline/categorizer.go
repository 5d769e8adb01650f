package pipeline

import (
	"strings"

	"github.com/siherrmann/adam/model"
)

// Categorizer scores message text against a keyword taxonomy and suggests
// storage paths. Categories are evaluated in the taxonomy's declared order,
// so equal scores resolve to the earlier category.
type Categorizer struct {
	taxonomy *model.Taxonomy
}

// entity name hints nudge the score beyond plain keyword hits
var (
	workEntityNames     = []string{"finops", "devops", "api"}
	personalEntityNames = []string{"maría", "marco", "juan"}
)

// NewCategorizer creates a categorizer. A nil taxonomy falls back to the
// default one.
func NewCategorizer(taxonomy *model.Taxonomy) *Categorizer {
	if taxonomy == nil {
		taxonomy = model.DefaultTaxonomy()
	}
	return &Categorizer{taxonomy: taxonomy}
}

// Categorize returns the best matching category for the text, falling back
// to "general" when nothing scores.
func (c *Categorizer) Categorize(text string, entities []model.Entity) string {
	lowered := strings.ToLower(text)

	best := "general"
	bestScore := 0.0
	for _, category := range c.taxonomy.Order() {
		score := c.score(lowered, category, entities)
		if score > bestScore {
			best = category
			bestScore = score
		}
	}

	return best
}

func (c *Categorizer) score(lowered string, category string, entities []model.Entity) float64 {
	config, ok := c.taxonomy.Category(category)
	if !ok {
		return 0
	}

	var score float64
	for _, keyword := range config.Keywords {
		if strings.Contains(lowered, keyword) {
			score += config.Weight
		}
	}

	for _, entity := range entities {
		switch category {
		case "work":
			if entity.Type == model.EntityTypeProject || entity.Type == model.EntityTypeCompany {
				score += 0.5
			}
			if containsFold(workEntityNames, entity.Name) {
				score += 0.3
			}
		case "personal":
			if entity.Type == model.EntityTypePerson {
				score += 0.3
			}
			if containsFold(personalEntityNames, entity.Name) {
				score += 0.2
			}
		case "events":
			if entity.Type == model.EntityTypeDate {
				score += 0.2
			}
		}
	}

	return score
}

// Subcategory returns the best matching subcategory of a category, or the
// empty string when none of its keyword sets match.
func (c *Categorizer) Subcategory(text string, category string) string {
	lowered := strings.ToLower(text)

	order, subcategories := c.taxonomy.Subcategories(category)
	best := ""
	bestCount := 0
	for _, name := range order {
		count := 0
		for _, keyword := range subcategories[name] {
			if strings.Contains(lowered, keyword) {
				count++
			}
		}
		if count > bestCount {
			best = name
			bestCount = count
		}
	}

	return best
}

// SuggestCategoryPath builds a storage path of the form
// category[/subcategory][/entity] from the categorization result and the
// first person or project entity.
func (c *Categorizer) SuggestCategoryPath(text string, entities []model.Entity) string {
	category := c.Categorize(text, entities)

	parts := []string{category}
	if subcategory := c.Subcategory(text, category); len(subcategory) > 0 {
		parts = append(parts, subcategory)
	}

	for _, entity := range entities {
		if entity.Type == model.EntityTypePerson || entity.Type == model.EntityTypeProject {
			cleaned := strings.ToLower(entity.Name)
			cleaned = strings.ReplaceAll(cleaned, " ", "")
			cleaned = strings.ReplaceAll(cleaned, "-", "")
			parts = append(parts, cleaned)
			break
		}
	}

	return strings.Join(parts, "/")
}

// UpdateCategories merges new category definitions into the taxonomy.
func (c *Categorizer) UpdateCategories(updates map[string]model.CategoryConfig) {
	c.taxonomy.Merge(updates)
}

// Hierarchy exposes the current category hierarchy.
func (c *Categorizer) Hierarchy() map[string]interface{} {
	return c.taxonomy.Hierarchy()
}

func containsFold(list []string, value string) bool {
	for _, item := range list {
		if strings.EqualFold(item, value) {
			return true
		}
	}
	return false
}
