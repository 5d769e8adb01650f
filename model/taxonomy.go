package model

import "sort"

// CategoryConfig holds the keyword set and weight of one category.
type CategoryConfig struct {
	Keywords []string `json:"keywords"`
	Weight   float64  `json:"weight"`
}

// Taxonomy maps categories to keyword configurations and subcategories.
// Categories are iterated in a fixed declared order so that scoring ties
// resolve deterministically.
type Taxonomy struct {
	order         []string
	categories    map[string]CategoryConfig
	subOrder      map[string][]string
	subcategories map[string]map[string][]string
}

// NewTaxonomy creates an empty taxonomy.
func NewTaxonomy() *Taxonomy {
	return &Taxonomy{
		categories:    map[string]CategoryConfig{},
		subOrder:      map[string][]string{},
		subcategories: map[string]map[string][]string{},
	}
}

// Order returns the category names in their declared order.
func (t *Taxonomy) Order() []string {
	order := make([]string, len(t.order))
	copy(order, t.order)
	return order
}

// Category returns the configuration of a category.
func (t *Taxonomy) Category(name string) (CategoryConfig, bool) {
	config, ok := t.categories[name]
	return config, ok
}

// Add registers a category at the end of the declared order.
// Adding an existing category replaces its configuration in place.
func (t *Taxonomy) Add(name string, config CategoryConfig) {
	if _, ok := t.categories[name]; !ok {
		t.order = append(t.order, name)
	}
	t.categories[name] = config
}

// AddSubcategory registers a subcategory keyword set under a category.
func (t *Taxonomy) AddSubcategory(category string, name string, keywords []string) {
	if _, ok := t.subcategories[category]; !ok {
		t.subcategories[category] = map[string][]string{}
	}
	if _, ok := t.subcategories[category][name]; !ok {
		t.subOrder[category] = append(t.subOrder[category], name)
	}
	t.subcategories[category][name] = keywords
}

// Subcategories returns the subcategory names of a category in declared
// order together with their keyword sets. The map is nil if the category
// has no registered subcategories.
func (t *Taxonomy) Subcategories(category string) ([]string, map[string][]string) {
	return t.subOrder[category], t.subcategories[category]
}

// Merge applies new category definitions with shallow-overwrite semantics:
// known categories get the provided fields overwritten in place (keywords
// replace, they do not accumulate), unknown categories are appended to the
// declared order. Subcategory sets are untouched.
func (t *Taxonomy) Merge(updates map[string]CategoryConfig) {
	names := make([]string, 0, len(updates))
	for name := range updates {
		names = append(names, name)
	}
	// New categories are appended in name order to keep merges deterministic.
	sort.Strings(names)

	for _, name := range names {
		update := updates[name]
		existing, ok := t.categories[name]
		if !ok {
			t.Add(name, update)
			continue
		}
		if update.Keywords != nil {
			existing.Keywords = update.Keywords
		}
		if update.Weight != 0 {
			existing.Weight = update.Weight
		}
		t.categories[name] = existing
	}
}

// Hierarchy returns the full category hierarchy as a plain map, for
// inspection and serialization.
func (t *Taxonomy) Hierarchy() map[string]interface{} {
	hierarchy := map[string]interface{}{}
	for _, name := range t.order {
		config := t.categories[name]
		subs := map[string][]string{}
		for sub, keywords := range t.subcategories[name] {
			subs[sub] = keywords
		}
		hierarchy[name] = map[string]interface{}{
			"keywords":      config.Keywords,
			"weight":        config.Weight,
			"subcategories": subs,
		}
	}
	return hierarchy
}

// DefaultTaxonomy returns the base categories and subcategories of the
// memory assistant. Keyword lists are bilingual (Spanish/English) because
// messages arrive in both languages.
func DefaultTaxonomy() *Taxonomy {
	t := NewTaxonomy()

	t.Add("work", CategoryConfig{
		Keywords: []string{
			"reunión", "meeting", "proyecto", "project", "trabajo", "work",
			"deadline", "fecha límite", "presentación", "demo", "código",
			"desarrollo", "development", "api", "database", "frontend",
			"backend", "devops", "finops", "presupuesto", "budget",
		},
		Weight: 1.0,
	})
	t.Add("personal", CategoryConfig{
		Keywords: []string{
			"familia", "family", "amigos", "friends", "cumpleaños", "birthday",
			"vacaciones", "vacation", "casa", "home", "hobby", "pasatiempo",
		},
		Weight: 1.0,
	})
	t.Add("health", CategoryConfig{
		Keywords: []string{
			"ejercicio", "exercise", "gimnasio", "gym", "médico", "doctor",
			"salud", "health", "dieta", "diet", "bienestar", "wellness",
		},
		Weight: 1.0,
	})
	t.Add("learning", CategoryConfig{
		Keywords: []string{
			"estudiar", "study", "curso", "course", "libro", "book",
			"aprender", "learn", "investigación", "research", "tutorial",
		},
		Weight: 1.0,
	})
	t.Add("finance", CategoryConfig{
		Keywords: []string{
			"dinero", "money", "inversión", "investment", "ahorro", "saving",
			"gasto", "expense", "presupuesto", "budget", "finanzas", "finance",
		},
		Weight: 1.0,
	})
	t.Add("links", CategoryConfig{
		Keywords: []string{
			"http", "www", "link", "url", "sitio", "website", "artículo",
			"article", "recurso", "resource", "documentación", "docs",
		},
		Weight: 1.0,
	})
	t.Add("tasks", CategoryConfig{
		Keywords: []string{
			"tarea", "task", "hacer", "do", "completar", "complete",
			"pendiente", "pending", "lista", "list", "checklist",
		},
		Weight: 1.0,
	})
	t.Add("events", CategoryConfig{
		Keywords: []string{
			"evento", "event", "conferencia", "conference", "seminario",
			"seminar", "workshop", "taller", "cita", "appointment",
		},
		Weight: 1.0,
	})

	t.AddSubcategory("work", "development", []string{"código", "programming", "desarrollo", "development"})
	t.AddSubcategory("work", "meetings", []string{"reunión", "meeting", "call", "llamada"})
	t.AddSubcategory("work", "projects", []string{"proyecto", "project", "finops", "devops"})
	t.AddSubcategory("work", "planning", []string{"planificación", "planning", "roadmap", "estrategia"})
	t.AddSubcategory("personal", "family", []string{"familia", "family", "hijos", "children"})
	t.AddSubcategory("personal", "friends", []string{"amigos", "friends", "social", "sociales"})
	t.AddSubcategory("personal", "hobbies", []string{"hobby", "pasatiempo", "interés", "interest"})

	return t
}
