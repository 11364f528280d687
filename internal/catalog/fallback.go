package catalog

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"mathclasses-backend/internal/domain"
)

// Fallback is the immutable in-process catalog served whenever the live data
// source is unavailable or empty. It is built once at startup and is safe for
// unsynchronized concurrent reads; every accessor returns copies.
type Fallback struct {
	topics        []domain.Topic
	topicsByID    map[string]domain.Topic
	resources     map[string][]domain.Resource // topic ID -> resources
	resourcesByID map[string]domain.Resource
	related       map[string][]string // topic ID -> related topic IDs
}

// DefaultFallback returns the built-in catalog shipped with the application.
func DefaultFallback() *Fallback {
	now := time.Now()

	topics := []domain.Topic{
		{
			ID:              "algebra",
			Name:            "Algebra",
			Description:     "Linear equations, polynomials, factoring, and more",
			LongDescription: "Algebra is a branch of mathematics dealing with symbols and the rules for manipulating these symbols. In elementary algebra, those symbols represent quantities without fixed values, known as variables. The study of algebra helps develop logical thinking and problem-solving skills that are valuable in many fields.",
			Icon:            "➗",
			Color:           "bg-blue-50",
			TextColor:       "text-blue-600",
			CreatedAt:       now,
		},
		{
			ID:              "geometry",
			Name:            "Geometry",
			Description:     "Shapes, angles, area, perimeter, and volume",
			LongDescription: "Geometry is a branch of mathematics concerned with questions of shape, size, relative position of figures, and the properties of space. Geometry is one of the oldest mathematical sciences and has applications in architecture, engineering, physics, and many other fields.",
			Icon:            "📐",
			Color:           "bg-green-50",
			TextColor:       "text-green-600",
			CreatedAt:       now,
		},
		{
			ID:              "arithmetic",
			Name:            "Arithmetic",
			Description:     "Basic operations, fractions, decimals, and percentages",
			LongDescription: "Arithmetic is a branch of mathematics that consists of the study of numbers, especially the properties of traditional operations on them—addition, subtraction, multiplication, division, exponentiation, and extraction of roots. Arithmetic is an elementary part of number theory.",
			Icon:            "🔢",
			Color:           "bg-amber-50",
			TextColor:       "text-amber-600",
			CreatedAt:       now,
		},
		{
			ID:              "statistics",
			Name:            "Statistics",
			Description:     "Data analysis, probability, and graphing",
			LongDescription: "Statistics is the discipline that concerns the collection, organization, analysis, interpretation, and presentation of data. Statistics deals with all aspects of this, including the planning of data collection in terms of the design of surveys and experiments.",
			Icon:            "📊",
			Color:           "bg-purple-50",
			TextColor:       "text-purple-600",
			CreatedAt:       now,
		},
		{
			ID:              "trigonometry",
			Name:            "Trigonometry",
			Description:     "Sine, cosine, tangent, and triangles",
			LongDescription: "Trigonometry is a branch of mathematics that studies relationships between side lengths and angles of triangles. The field emerged in the Hellenistic world during the 3rd century BC from applications of geometry to astronomical studies.",
			Icon:            "📏",
			Color:           "bg-rose-50",
			TextColor:       "text-rose-600",
			CreatedAt:       now,
		},
		{
			ID:              "calculus",
			Name:            "Calculus",
			Description:     "Limits, derivatives, integrals, and applications",
			LongDescription: "Calculus is the mathematical study of continuous change. It has two major branches: differential calculus (concerning rates of change and slopes of curves), and integral calculus (concerning accumulation of quantities and the areas under and between curves).",
			Icon:            "∫",
			Color:           "bg-teal-50",
			TextColor:       "text-teal-600",
			CreatedAt:       now,
		},
	}

	resources := map[string][]domain.Resource{
		"algebra": {
			{
				ID:          "alg-1",
				TopicID:     "algebra",
				Title:       "Algebra Fundamentals",
				Description: "A comprehensive introduction to algebraic concepts",
				FilePath:    "algebra/fundamentals.pdf",
				FileSize:    "2.3 MB",
				FileType:    "pdf",
				CreatedAt:   now,
			},
			{
				ID:          "alg-2",
				TopicID:     "algebra",
				Title:       "Solving Equations Worksheet",
				Description: "Practice problems for linear and quadratic equations",
				FilePath:    "algebra/equations.pdf",
				FileSize:    "1.1 MB",
				FileType:    "pdf",
				CreatedAt:   now,
			},
		},
		"geometry": {
			{
				ID:          "geo-1",
				TopicID:     "geometry",
				Title:       "Geometry Basics",
				Description: "Introduction to points, lines, planes, and angles",
				FilePath:    "geometry/basics.pdf",
				FileSize:    "3.2 MB",
				FileType:    "pdf",
				CreatedAt:   now,
			},
		},
	}

	related := map[string][]string{
		"algebra":      {"calculus", "trigonometry"},
		"geometry":     {"trigonometry", "algebra"},
		"arithmetic":   {"algebra"},
		"statistics":   {"algebra"},
		"trigonometry": {"geometry", "calculus"},
		"calculus":     {"algebra", "trigonometry"},
	}

	return newFallback(topics, resources, related)
}

// fallbackFile is the YAML shape of an override catalog.
type fallbackFile struct {
	Topics []struct {
		ID              string `yaml:"id"`
		Name            string `yaml:"name"`
		Description     string `yaml:"description"`
		LongDescription string `yaml:"long_description"`
		Icon            string `yaml:"icon"`
		Color           string `yaml:"color"`
		TextColor       string `yaml:"text_color"`
	} `yaml:"topics"`
	Resources map[string][]struct {
		ID          string `yaml:"id"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		FilePath    string `yaml:"file_path"`
		FileSize    string `yaml:"file_size"`
		FileType    string `yaml:"file_type"`
	} `yaml:"resources"`
	RelatedTopics map[string][]string `yaml:"related_topics"`
}

// LoadFallback reads an override catalog from a YAML file. Used by
// deployments that want region-specific offline data; the result is still
// immutable after this call.
func LoadFallback(path string) (*Fallback, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fallback catalog: %w", err)
	}

	var file fallbackFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse fallback catalog: %w", err)
	}
	if len(file.Topics) == 0 {
		return nil, fmt.Errorf("fallback catalog %s contains no topics", path)
	}

	now := time.Now()
	topics := make([]domain.Topic, 0, len(file.Topics))
	for _, t := range file.Topics {
		topics = append(topics, domain.Topic{
			ID:              t.ID,
			Name:            t.Name,
			Description:     t.Description,
			LongDescription: t.LongDescription,
			Icon:            t.Icon,
			Color:           t.Color,
			TextColor:       t.TextColor,
			CreatedAt:       now,
		})
	}

	resources := make(map[string][]domain.Resource, len(file.Resources))
	for topicID, rs := range file.Resources {
		for _, r := range rs {
			resources[topicID] = append(resources[topicID], domain.Resource{
				ID:          r.ID,
				TopicID:     topicID,
				Title:       r.Title,
				Description: r.Description,
				FilePath:    r.FilePath,
				FileSize:    r.FileSize,
				FileType:    r.FileType,
				CreatedAt:   now,
			})
		}
	}

	return newFallback(topics, resources, file.RelatedTopics), nil
}

func newFallback(topics []domain.Topic, resources map[string][]domain.Resource, related map[string][]string) *Fallback {
	f := &Fallback{
		topics:        topics,
		topicsByID:    make(map[string]domain.Topic, len(topics)),
		resources:     resources,
		resourcesByID: make(map[string]domain.Resource),
		related:       related,
	}
	for _, t := range topics {
		f.topicsByID[t.ID] = t
	}
	for _, rs := range resources {
		for _, r := range rs {
			f.resourcesByID[r.ID] = r
		}
	}
	return f
}

// Topics returns all fallback topics ordered by name.
func (f *Fallback) Topics() []domain.Topic {
	topics := append([]domain.Topic(nil), f.topics...)
	sort.Slice(topics, func(i, j int) bool { return topics[i].Name < topics[j].Name })
	return topics
}

// Topic looks up a single topic by identifier.
func (f *Fallback) Topic(topicID string) (*domain.Topic, bool) {
	t, exists := f.topicsByID[topicID]
	if !exists {
		return nil, false
	}
	return &t, true
}

// Resources returns the fallback resources for a topic ordered by title.
func (f *Fallback) Resources(topicID string) []domain.Resource {
	resources := append([]domain.Resource(nil), f.resources[topicID]...)
	sort.Slice(resources, func(i, j int) bool { return resources[i].Title < resources[j].Title })
	return resources
}

// Resource looks up a single resource by identifier.
func (f *Fallback) Resource(resourceID string) (*domain.Resource, bool) {
	r, exists := f.resourcesByID[resourceID]
	if !exists {
		return nil, false
	}
	return &r, true
}

// RelatedTopicIDs returns the related-topic identifier list for a topic.
func (f *Fallback) RelatedTopicIDs(topicID string) []string {
	return append([]string(nil), f.related[topicID]...)
}

// RelatedTopics resolves the related-identifier list to full topic records,
// keeping the list order. Identifiers without a fallback topic are skipped.
func (f *Fallback) RelatedTopics(topicID string) []domain.Topic {
	var topics []domain.Topic
	for _, id := range f.related[topicID] {
		if t, exists := f.topicsByID[id]; exists {
			topics = append(topics, t)
		}
	}
	return topics
}
