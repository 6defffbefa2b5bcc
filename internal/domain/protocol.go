package domain

import (
	"time"

	"github.com/google/uuid"
)

// BlockType tags the variant of a protocol block.
type BlockType string

const (
	BlockText     BlockType = "text"
	BlockTraining BlockType = "training"
	BlockMeal     BlockType = "meal"
)

// Exercise is one prescribed exercise inside a training block.
type Exercise struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Sets  int    `bson:"sets" json:"sets"`
	Reps  string `bson:"reps" json:"reps"`
	RPE   string `bson:"rpe,omitempty" json:"rpe,omitempty"`
	Rest  string `bson:"rest,omitempty" json:"rest,omitempty"`
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// MealItem is one food entry inside a meal block.
type MealItem struct {
	ID       string `bson:"id" json:"id"`
	Name     string `bson:"name" json:"name"`
	Quantity string `bson:"quantity" json:"quantity"`
	Unit     string `bson:"unit,omitempty" json:"unit,omitempty"`
}

// Macros is the optional macro summary of a meal block.
type Macros struct {
	Protein  float64 `bson:"protein" json:"protein"`
	Carbs    float64 `bson:"carbs" json:"carbs"`
	Fats     float64 `bson:"fats" json:"fats"`
	Calories float64 `bson:"calories" json:"calories"`
}

// Block is a tagged variant: exactly one of the per-type payloads is
// meaningful depending on Type. Content belongs to text blocks; Title and
// Exercises to training blocks; Title, Time, Items and Macros to meal
// blocks. The ID and Type of a block never change after creation.
type Block struct {
	ID   string    `bson:"id" json:"id"`
	Type BlockType `bson:"type" json:"type"`

	Content string `bson:"content,omitempty" json:"content,omitempty"`

	Title     string     `bson:"title,omitempty" json:"title,omitempty"`
	Exercises []Exercise `bson:"exercises,omitempty" json:"exercises,omitempty"`

	Time   string     `bson:"time,omitempty" json:"time,omitempty"`
	Items  []MealItem `bson:"items,omitempty" json:"items,omitempty"`
	Macros *Macros    `bson:"macros,omitempty" json:"macros,omitempty"`
}

// BlockUpdate is a partial patch applied to a block. Nil fields are left
// untouched; the block's ID and Type cannot be patched.
type BlockUpdate struct {
	Content   *string     `json:"content,omitempty"`
	Title     *string     `json:"title,omitempty"`
	Exercises *[]Exercise `json:"exercises,omitempty"`
	Time      *string     `json:"time,omitempty"`
	Items     *[]MealItem `json:"items,omitempty"`
	Macros    *Macros     `json:"macros,omitempty"`
}

// Section is an ordered group of blocks, e.g. "Dia 1" or "Fase 1".
type Section struct {
	ID     string  `bson:"id" json:"id"`
	Title  string  `bson:"title" json:"title"`
	Blocks []Block `bson:"blocks" json:"blocks"`
}

// Protocol is a coach-authored training/diet plan document: an ordered list
// of sections, each holding an ordered list of blocks. Block order is
// significant and only changes through explicit reordering.
type Protocol struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Sections    []Section `bson:"sections" json:"sections"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
	IsTemplate  bool      `bson:"isTemplate" json:"isTemplate"`
}

// NewProtocol returns a fresh untitled protocol with a single empty section,
// matching what the editor opens with.
func NewProtocol() *Protocol {
	now := time.Now().UTC()
	return &Protocol{
		ID:    uuid.NewString(),
		Title: "Novo Protocolo Sem Título",
		Sections: []Section{
			{ID: uuid.NewString(), Title: "Dia 1", Blocks: []Block{}},
		},
		CreatedAt:  now,
		UpdatedAt:  now,
		IsTemplate: false,
	}
}

// NewBlock constructs an empty block of the given variant. Unknown types
// fall back to a text block.
func NewBlock(t BlockType) Block {
	b := Block{ID: uuid.NewString()}
	switch t {
	case BlockTraining:
		b.Type = BlockTraining
		b.Title = "Novo Treino"
		b.Exercises = []Exercise{}
	case BlockMeal:
		b.Type = BlockMeal
		b.Title = "Nova Refeição"
		b.Items = []MealItem{}
	default:
		b.Type = BlockText
		b.Content = ""
	}
	return b
}

// SetTitle renames the protocol.
func (p *Protocol) SetTitle(title string) {
	p.Title = title
	p.touch()
}

// AddSection appends an empty section with the given title.
func (p *Protocol) AddSection(title string) *Section {
	p.Sections = append(p.Sections, Section{
		ID:     uuid.NewString(),
		Title:  title,
		Blocks: []Block{},
	})
	p.touch()
	return &p.Sections[len(p.Sections)-1]
}

// RemoveSection drops the section with the given id, blocks included.
// Removing an unknown section leaves the sections untouched but still bumps
// UpdatedAt, mirroring the editor it replaces.
func (p *Protocol) RemoveSection(sectionID string) {
	kept := p.Sections[:0]
	for _, s := range p.Sections {
		if s.ID != sectionID {
			kept = append(kept, s)
		}
	}
	p.Sections = kept
	p.touch()
}

// AddBlock appends an empty block of the given type to the target section.
// If the section does not exist the document structure is unchanged.
func (p *Protocol) AddBlock(sectionID string, t BlockType) *Block {
	var added *Block
	if s := p.section(sectionID); s != nil {
		s.Blocks = append(s.Blocks, NewBlock(t))
		added = &s.Blocks[len(s.Blocks)-1]
	}
	p.touch()
	return added
}

// UpdateBlock shallow-merges the patch into the matching block. The block's
// variant tag is preserved; blocks with other ids are untouched.
func (p *Protocol) UpdateBlock(sectionID, blockID string, patch BlockUpdate) {
	if s := p.section(sectionID); s != nil {
		for i := range s.Blocks {
			if s.Blocks[i].ID != blockID {
				continue
			}
			b := &s.Blocks[i]
			if patch.Content != nil {
				b.Content = *patch.Content
			}
			if patch.Title != nil {
				b.Title = *patch.Title
			}
			if patch.Exercises != nil {
				b.Exercises = *patch.Exercises
			}
			if patch.Time != nil {
				b.Time = *patch.Time
			}
			if patch.Items != nil {
				b.Items = *patch.Items
			}
			if patch.Macros != nil {
				b.Macros = patch.Macros
			}
			break
		}
	}
	p.touch()
}

// RemoveBlock filters the block out of its section's list.
func (p *Protocol) RemoveBlock(sectionID, blockID string) {
	if s := p.section(sectionID); s != nil {
		kept := s.Blocks[:0]
		for _, b := range s.Blocks {
			if b.ID != blockID {
				kept = append(kept, b)
			}
		}
		s.Blocks = kept
	}
	p.touch()
}

// ReorderBlocks removes the block at from and reinserts it at to within the
// same section. Out-of-range indices are clamped. Reordering within an
// unknown section is a full no-op and does not bump UpdatedAt.
func (p *Protocol) ReorderBlocks(sectionID string, from, to int) {
	s := p.section(sectionID)
	if s == nil {
		return
	}
	n := len(s.Blocks)
	if n == 0 {
		p.touch()
		return
	}
	from = clamp(from, 0, n-1)
	to = clamp(to, 0, n-1)

	moved := s.Blocks[from]
	rest := append(s.Blocks[:from:from], s.Blocks[from+1:]...)
	blocks := make([]Block, 0, n)
	blocks = append(blocks, rest[:to]...)
	blocks = append(blocks, moved)
	blocks = append(blocks, rest[to:]...)
	s.Blocks = blocks
	p.touch()
}

// Clone returns a deep copy of the protocol, safe to hand out while the
// original keeps being mutated.
func (p *Protocol) Clone() Protocol {
	out := *p
	out.Sections = make([]Section, len(p.Sections))
	for i, s := range p.Sections {
		cs := s
		cs.Blocks = make([]Block, len(s.Blocks))
		for j, b := range s.Blocks {
			cb := b
			if b.Exercises != nil {
				cb.Exercises = append([]Exercise(nil), b.Exercises...)
			}
			if b.Items != nil {
				cb.Items = append([]MealItem(nil), b.Items...)
			}
			if b.Macros != nil {
				m := *b.Macros
				cb.Macros = &m
			}
			cs.Blocks[j] = cb
		}
		out.Sections[i] = cs
	}
	return out
}

func (p *Protocol) section(id string) *Section {
	for i := range p.Sections {
		if p.Sections[i].ID == id {
			return &p.Sections[i]
		}
	}
	return nil
}

func (p *Protocol) touch() {
	p.UpdatedAt = time.Now().UTC()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
