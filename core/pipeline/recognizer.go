package pipeline

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/siherrmann/adam/model"
)

// entityPattern binds a compiled regex to the entity type it produces.
// Name-shape patterns are case sensitive on purpose: a lowercase "maría"
// is caught by the gazetteer, not by the capitalized-name shapes.
type entityPattern struct {
	entityType model.EntityType
	regex      *regexp.Regexp
	confidence float64
}

// phrasePattern extracts the first capture group as the entity name, so
// "proyecto FinOps" yields "FinOps" at the offset of the group.
type phrasePattern struct {
	entityType model.EntityType
	regex      *regexp.Regexp
	confidence float64
	context    string
}

// gazetteer is a fixed keyword list scanned case-insensitively.
type gazetteer struct {
	entityType model.EntityType
	keywords   []string
	confidence float64
}

// Recognizer extracts typed entities from message text using shape
// patterns, keyword gazetteers and phrase extractors. Recognition is
// deterministic: all rule tables are ordered and ties resolve by rule
// order.
type Recognizer struct {
	patterns   []entityPattern
	gazetteers []gazetteer
	phrases    []phrasePattern
}

// NewRecognizer creates a recognizer with the default Spanish/English
// rule set.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		patterns: []entityPattern{
			{model.EntityTypePerson, regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`), 0.8},
			{model.EntityTypePerson, regexp.MustCompile(`\b[A-Z][a-z]+\b`), 0.8},
			{model.EntityTypeProject, regexp.MustCompile(`\b[A-Z][a-z]+[A-Z][a-z]+\b`), 0.8},
			{model.EntityTypeProject, regexp.MustCompile(`\b[A-Z]{2,}\b`), 0.8},
			{model.EntityTypeCompany, regexp.MustCompile(`\b[A-Z][a-z]+ (?:Inc|Corp|GmbH|SL|SA)\b`), 0.8},
			{model.EntityTypeDate, regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{2,4}\b`), 0.8},
			{model.EntityTypeDate, regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{2,4}\b`), 0.8},
			{model.EntityTypeDate, regexp.MustCompile(`(?i)\b\d{1,2} de [a-záéíóúñ]+\b`), 0.8},
			{model.EntityTypeDate, regexp.MustCompile(`(?i)\b(?:lunes|martes|miércoles|jueves|viernes|sábado|domingo)\b`), 0.8},
			{model.EntityTypeDate, regexp.MustCompile(`(?i)\b(?:hoy|mañana|ayer)\b`), 0.8},
			{model.EntityTypeDate, regexp.MustCompile(`\b\d{4}\b`), 0.8},
			{model.EntityTypeURL, regexp.MustCompile(`(?i)https?://\S+`), 0.8},
			{model.EntityTypeURL, regexp.MustCompile(`(?i)\bwww\.\S+`), 0.8},
			{model.EntityTypeEmail, regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`), 0.8},
			{model.EntityTypePhone, regexp.MustCompile(`\+?\d[\d\s-]{7,}\d`), 0.8},
		},
		gazetteers: []gazetteer{
			{model.EntityTypePerson, []string{"marco", "maría", "juan", "ana", "pedro", "lisa", "carlos"}, 0.9},
			{model.EntityTypeProject, []string{"finops", "devops", "frontend", "backend", "api", "database"}, 0.9},
			{model.EntityTypeCompany, []string{"google", "microsoft", "apple", "amazon", "meta"}, 0.9},
		},
		phrases: []phrasePattern{
			{model.EntityTypePerson, regexp.MustCompile(`(?i)cumpleaños de ([A-Z][a-z]+)`), 0.9, "birthday"},
			{model.EntityTypePerson, regexp.MustCompile(`(?i)birthday of ([A-Z][a-z]+)`), 0.9, "birthday"},
			{model.EntityTypePerson, regexp.MustCompile(`(?i)([A-Z][a-z]+) cumple años`), 0.9, "birthday"},
			{model.EntityTypeDate, regexp.MustCompile(`(?i)deadline ([a-z]+ \d{1,2})`), 0.8, "deadline"},
			{model.EntityTypeDate, regexp.MustCompile(`(?i)fecha límite ([a-z]+ \d{1,2})`), 0.8, "deadline"},
			{model.EntityTypeDate, regexp.MustCompile(`(?i)entrega ([a-z]+ \d{1,2})`), 0.8, "deadline"},
			{model.EntityTypeProject, regexp.MustCompile(`(?i)proyecto ([A-Z][a-zA-Z]+)`), 0.8, "development"},
			{model.EntityTypeProject, regexp.MustCompile(`(?i)project ([A-Z][a-zA-Z]+)`), 0.8, "development"},
			{model.EntityTypeProject, regexp.MustCompile(`(?i)trabajando en ([A-Z][a-zA-Z]+)`), 0.8, "development"},
			{model.EntityTypeProject, regexp.MustCompile(`(?i)desarrollando ([A-Z][a-zA-Z]+)`), 0.8, "development"},
		},
	}
}

// Recognize extracts all entities from the given text. Candidates with the
// same name (case insensitive), type and start offset are collapsed into
// the first one found, and the result is ordered by start offset.
func (r *Recognizer) Recognize(text string) []model.Entity {
	var candidates []model.Entity

	// Phrase extractors first so their metadata survives deduplication
	// against the plain shape patterns.
	for _, phrase := range r.phrases {
		for _, match := range phrase.regex.FindAllStringSubmatchIndex(text, -1) {
			if len(match) < 4 || match[2] < 0 {
				continue
			}
			candidates = append(candidates, model.Entity{
				Name:       text[match[2]:match[3]],
				Type:       phrase.entityType,
				Start:      match[2],
				End:        match[3],
				Confidence: phrase.confidence,
				Metadata:   model.Metadata{"context": phrase.context},
			})
		}
	}

	for _, pattern := range r.patterns {
		for _, match := range pattern.regex.FindAllStringIndex(text, -1) {
			candidates = append(candidates, model.Entity{
				Name:       text[match[0]:match[1]],
				Type:       pattern.entityType,
				Start:      match[0],
				End:        match[1],
				Confidence: pattern.confidence,
			})
		}
	}

	for _, g := range r.gazetteers {
		candidates = append(candidates, r.scanKeywords(text, g)...)
	}

	seen := map[entityKey]bool{}
	entities := make([]model.Entity, 0, len(candidates))
	for _, candidate := range candidates {
		key := entityKey{strings.ToLower(candidate.Name), candidate.Type, candidate.Start}
		if seen[key] {
			continue
		}
		seen[key] = true
		entities = append(entities, candidate)
	}

	sort.SliceStable(entities, func(i, j int) bool {
		return entities[i].Start < entities[j].Start
	})

	return entities
}

type entityKey struct {
	name       string
	entityType model.EntityType
	start      int
}

// scanKeywords finds gazetteer keywords in the text case-insensitively.
// The scan is done by hand because the keywords end in accented characters
// for which an ASCII word boundary does not hold.
func (r *Recognizer) scanKeywords(text string, g gazetteer) []model.Entity {
	lowered := strings.ToLower(text)

	var entities []model.Entity
	for _, keyword := range g.keywords {
		offset := 0
		for {
			index := strings.Index(lowered[offset:], keyword)
			if index < 0 {
				break
			}
			start := offset + index
			end := start + len(keyword)

			if isWordBounded(lowered, start, end) {
				entities = append(entities, model.Entity{
					Name:       text[start:end],
					Type:       g.entityType,
					Start:      start,
					End:        end,
					Confidence: g.confidence,
				})
			}

			offset = start + len(keyword)
		}
	}

	return entities
}

// isWordBounded reports whether text[start:end] is not embedded in a
// longer word.
func isWordBounded(text string, start int, end int) bool {
	if start > 0 {
		before, _ := utf8.DecodeLastRuneInString(text[:start])
		if unicode.IsLetter(before) || unicode.IsDigit(before) {
			return false
		}
	}
	if end < len(text) {
		after, _ := utf8.DecodeRuneInString(text[end:])
		if unicode.IsLetter(after) || unicode.IsDigit(after) {
			return false
		}
	}
	return true
}

// Stats summarizes a recognition result.
func (r *Recognizer) Stats(entities []model.Entity) model.EntityStats {
	stats := model.EntityStats{
		Total:  len(entities),
		ByType: map[model.EntityType]int{},
	}

	if len(entities) == 0 {
		return stats
	}

	var confidenceSum float64
	for _, entity := range entities {
		stats.ByType[entity.Type]++
		confidenceSum += entity.Confidence
	}
	stats.ConfidenceAvg = confidenceSum / float64(len(entities))

	return stats
}
