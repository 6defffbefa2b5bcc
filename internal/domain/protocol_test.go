package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func blockIDs(s Section) []string {
	ids := make([]string, len(s.Blocks))
	for i, b := range s.Blocks {
		ids[i] = b.ID
	}
	return ids
}

func protocolWithBlocks(t *testing.T, n int) (*Protocol, string) {
	t.Helper()
	p := NewProtocol()
	require.Len(t, p.Sections, 1)
	sectionID := p.Sections[0].ID
	for i := 0; i < n; i++ {
		require.NotNil(t, p.AddBlock(sectionID, BlockText))
	}
	return p, sectionID
}

func TestNewProtocolDefaults(t *testing.T) {
	p := NewProtocol()

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "Novo Protocolo Sem Título", p.Title)
	require.Len(t, p.Sections, 1)
	assert.Equal(t, "Dia 1", p.Sections[0].Title)
	assert.Empty(t, p.Sections[0].Blocks)
	assert.False(t, p.IsTemplate)
}

func TestNewBlockVariants(t *testing.T) {
	text := NewBlock(BlockText)
	assert.Equal(t, BlockText, text.Type)
	assert.Empty(t, text.Content)

	training := NewBlock(BlockTraining)
	assert.Equal(t, BlockTraining, training.Type)
	assert.Equal(t, "Novo Treino", training.Title)
	assert.NotNil(t, training.Exercises)
	assert.Empty(t, training.Exercises)

	meal := NewBlock(BlockMeal)
	assert.Equal(t, BlockMeal, meal.Type)
	assert.Equal(t, "Nova Refeição", meal.Title)
	assert.NotNil(t, meal.Items)
	assert.Empty(t, meal.Items)
}

func TestReorderBlocks(t *testing.T) {
	p, sectionID := protocolWithBlocks(t, 3)
	ids := blockIDs(p.Sections[0])
	a, b, c := ids[0], ids[1], ids[2]

	// Moving the first block to the end: [A,B,C] -> [B,C,A].
	p.ReorderBlocks(sectionID, 0, 2)
	assert.Equal(t, []string{b, c, a}, blockIDs(p.Sections[0]))

	// And back to the front.
	p.ReorderBlocks(sectionID, 2, 0)
	assert.Equal(t, []string{a, b, c}, blockIDs(p.Sections[0]))
}

func TestReorderBlocksClampsIndices(t *testing.T) {
	p, sectionID := protocolWithBlocks(t, 3)
	ids := blockIDs(p.Sections[0])

	// Way out of range on both ends: clamped to first -> last.
	p.ReorderBlocks(sectionID, -5, 99)
	assert.Equal(t, []string{ids[1], ids[2], ids[0]}, blockIDs(p.Sections[0]))
}

func TestReorderBlocksUnknownSectionIsFullNoOp(t *testing.T) {
	p, _ := protocolWithBlocks(t, 2)
	stale := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	p.UpdatedAt = stale

	p.ReorderBlocks("nope", 0, 1)
	// Unlike the other no-ops, reorder on a missing section does not even
	// bump the timestamp.
	assert.Equal(t, stale, p.UpdatedAt)
}

func TestRemoveSectionUnknownIDBumpsUpdatedAt(t *testing.T) {
	p := NewProtocol()
	stale := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	p.UpdatedAt = stale

	p.RemoveSection("nope")
	assert.Len(t, p.Sections, 1)
	assert.True(t, p.UpdatedAt.After(stale))
}

func TestAddBlockUnknownSection(t *testing.T) {
	p := NewProtocol()
	stale := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
	p.UpdatedAt = stale

	assert.Nil(t, p.AddBlock("nope", BlockText))
	assert.Empty(t, p.Sections[0].Blocks)
	assert.True(t, p.UpdatedAt.After(stale))
}

func TestRemoveSectionDropsBlocks(t *testing.T) {
	p := NewProtocol()
	sectionID := p.Sections[0].ID
	secondID := p.AddSection("Dia 2").ID
	p.AddBlock(sectionID, BlockTraining)

	p.RemoveSection(sectionID)
	require.Len(t, p.Sections, 1)
	assert.Equal(t, secondID, p.Sections[0].ID)
}

func TestUpdateBlockMergesPartialFields(t *testing.T) {
	p := NewProtocol()
	sectionID := p.Sections[0].ID
	block := p.AddBlock(sectionID, BlockTraining)
	require.NotNil(t, block)

	title := "Treino A - Inferiores"
	exercises := []Exercise{{ID: "e1", Name: "Agachamento", Sets: 4, Reps: "8-10"}}
	p.UpdateBlock(sectionID, block.ID, BlockUpdate{Title: &title, Exercises: &exercises})

	got := p.Sections[0].Blocks[0]
	assert.Equal(t, BlockTraining, got.Type, "variant tag must survive patching")
	assert.Equal(t, title, got.Title)
	assert.Equal(t, exercises, got.Exercises)

	// Patching one field leaves the others alone.
	newTitle := "Treino B"
	p.UpdateBlock(sectionID, block.ID, BlockUpdate{Title: &newTitle})
	got = p.Sections[0].Blocks[0]
	assert.Equal(t, newTitle, got.Title)
	assert.Equal(t, exercises, got.Exercises)
}

func TestUpdateBlockLeavesOtherBlocksUntouched(t *testing.T) {
	p, sectionID := protocolWithBlocks(t, 2)
	first := p.Sections[0].Blocks[0].ID

	content := "aquecimento 10min"
	p.UpdateBlock(sectionID, first, BlockUpdate{Content: &content})

	assert.Equal(t, content, p.Sections[0].Blocks[0].Content)
	assert.Empty(t, p.Sections[0].Blocks[1].Content)
}

func TestRemoveBlock(t *testing.T) {
	p, sectionID := protocolWithBlocks(t, 3)
	ids := blockIDs(p.Sections[0])

	p.RemoveBlock(sectionID, ids[1])
	assert.Equal(t, []string{ids[0], ids[2]}, blockIDs(p.Sections[0]))
}

func TestCloneIsDeep(t *testing.T) {
	p := NewProtocol()
	sectionID := p.Sections[0].ID
	block := p.AddBlock(sectionID, BlockMeal)
	require.NotNil(t, block)

	items := []MealItem{{ID: "m1", Name: "Aveia", Quantity: "50", Unit: "g"}}
	macros := Macros{Protein: 30, Carbs: 60, Fats: 10, Calories: 450}
	p.UpdateBlock(sectionID, block.ID, BlockUpdate{Items: &items, Macros: &macros})

	clone := p.Clone()
	p.Sections[0].Blocks[0].Items[0].Name = "Arroz"
	p.Sections[0].Blocks[0].Macros.Protein = 0

	assert.Equal(t, "Aveia", clone.Sections[0].Blocks[0].Items[0].Name)
	assert.Equal(t, 30.0, clone.Sections[0].Blocks[0].Macros.Protein)
}
