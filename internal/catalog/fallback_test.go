package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultFallback(t *testing.T) {
	f := DefaultFallback()

	t.Run("TopicsOrderedByName", func(t *testing.T) {
		topics := f.Topics()
		require.Len(t, topics, 6)
		names := make([]string, len(topics))
		for i, topic := range topics {
			names[i] = topic.Name
		}
		assert.Equal(t, []string{"Algebra", "Arithmetic", "Calculus", "Geometry", "Statistics", "Trigonometry"}, names)
	})

	t.Run("TopicLookup", func(t *testing.T) {
		topic, ok := f.Topic("algebra")
		require.True(t, ok)
		assert.Equal(t, "Algebra", topic.Name)

		_, ok = f.Topic("chemistry")
		assert.False(t, ok)
	})

	t.Run("ResourcesOrderedByTitle", func(t *testing.T) {
		resources := f.Resources("algebra")
		require.Len(t, resources, 2)
		assert.Equal(t, "Algebra Fundamentals", resources[0].Title)
		assert.Equal(t, "Solving Equations Worksheet", resources[1].Title)

		assert.Empty(t, f.Resources("statistics"))
	})

	t.Run("ResourceLookup", func(t *testing.T) {
		resource, ok := f.Resource("geo-1")
		require.True(t, ok)
		assert.Equal(t, "geometry/basics.pdf", resource.FilePath)
		assert.Equal(t, "geometry", resource.TopicID)
	})

	t.Run("RelatedTopicsKeepListOrder", func(t *testing.T) {
		related := f.RelatedTopics("trigonometry")
		require.Len(t, related, 2)
		assert.Equal(t, "geometry", related[0].ID)
		assert.Equal(t, "calculus", related[1].ID)
	})

	t.Run("AccessorsReturnCopies", func(t *testing.T) {
		topics := f.Topics()
		topics[0].Name = "Mutated"

		again := f.Topics()
		assert.Equal(t, "Algebra", again[0].Name)
	})
}

func TestLoadFallback(t *testing.T) {
	t.Run("LoadsOverrideFile", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		contents := `
topics:
  - id: mechanics
    name: Mechanics
    description: Forces and motion
    long_description: Newtonian mechanics for secondary school students.
    icon: "F"
    color: bg-slate-50
    text_color: text-slate-600
resources:
  mechanics:
    - id: mech-1
      title: Forces Worksheet
      description: Practice problems
      file_path: mechanics/forces.pdf
      file_size: 1.0 MB
      file_type: pdf
related_topics:
  mechanics: []
`
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

		f, err := LoadFallback(path)
		require.NoError(t, err)

		topics := f.Topics()
		require.Len(t, topics, 1)
		assert.Equal(t, "Mechanics", topics[0].Name)

		resources := f.Resources("mechanics")
		require.Len(t, resources, 1)
		assert.Equal(t, "mechanics/forces.pdf", resources[0].FilePath)
		assert.Equal(t, "mechanics", resources[0].TopicID)
	})

	t.Run("RejectsEmptyCatalog", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "catalog.yaml")
		require.NoError(t, os.WriteFile(path, []byte("topics: []\n"), 0o600))

		_, err := LoadFallback(path)
		assert.Error(t, err)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := LoadFallback(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.Error(t, err)
	})
}
