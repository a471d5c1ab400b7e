// Package textures keeps the scene's bounded table of GPU textures. A texture's
// position in the table is the texture unit it is bound to, so load order is
// bind order.
package textures

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// MaxSlots is the number of texture units a baseline GL context guarantees.
const MaxSlots = 16

// NoSlot is returned by FindSlot for unknown tags. It is pushed to the shader
// unchanged, which samples an unbound unit instead of failing.
const NoSlot = -1

var (
	ErrCapacityExceeded  = errors.New("texture table is full")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrDuplicateTag      = errors.New("texture tag already registered")
)

// Slot is one registered texture.
type Slot struct {
	Tag    string
	Handle Handle
}

// slotTable is an append-only sequence with a hard capacity of MaxSlots.
type slotTable struct {
	entries [MaxSlots]Slot
	n       int
}

func (t *slotTable) append(s Slot) error {
	if t.n >= MaxSlots {
		return ErrCapacityExceeded
	}
	t.entries[t.n] = s
	t.n++
	return nil
}

func (t *slotTable) index(tag string) int {
	for i := 0; i < t.n; i++ {
		if t.entries[i].Tag == tag {
			return i
		}
	}
	return NoSlot
}

func (t *slotTable) slots() []Slot {
	return t.entries[:t.n]
}

func (t *slotTable) reset() {
	t.entries = [MaxSlots]Slot{}
	t.n = 0
}

// Registry maps tags to GPU textures. It is populated once during scene setup
// and read by the draw phase; it is not safe for concurrent use.
type Registry struct {
	decoder Decoder
	backend Backend
	table   slotTable
}

func NewRegistry(decoder Decoder, backend Backend) *Registry {
	return &Registry{
		decoder: decoder,
		backend: backend,
	}
}

// Load decodes the image at path, uploads it and appends it under tag at the
// next free slot. On any error the table is left unchanged.
func (r *Registry) Load(path, tag string) error {
	if err := r.load(path, tag); err != nil {
		log.Warn().Err(err).Str("path", path).Str("tag", tag).Msg("could not load texture")
		return err
	}
	return nil
}

func (r *Registry) load(path, tag string) error {
	if r.table.index(tag) != NoSlot {
		return fmt.Errorf("load %q: %w", tag, ErrDuplicateTag)
	}
	if r.table.n >= MaxSlots {
		return fmt.Errorf("load %q: %w (%d slots)", tag, ErrCapacityExceeded, MaxSlots)
	}

	img, err := r.decoder.Decode(path)
	if err != nil {
		return fmt.Errorf("load %q: %w", tag, err)
	}
	if img.Channels != 3 && img.Channels != 4 {
		return fmt.Errorf("load %q: %w: %d channels", tag, ErrUnsupportedFormat, img.Channels)
	}

	handle, err := r.backend.Upload(img)
	if err != nil {
		return fmt.Errorf("load %q: %w", tag, err)
	}
	if err := r.table.append(Slot{Tag: tag, Handle: handle}); err != nil {
		r.backend.Release(handle)
		return fmt.Errorf("load %q: %w", tag, err)
	}

	log.Info().
		Str("path", path).
		Str("tag", tag).
		Int("slot", r.table.n-1).
		Int("width", img.Width).
		Int("height", img.Height).
		Int("channels", img.Channels).
		Msg("loaded texture")
	return nil
}

// BindAll binds every slot's texture to the unit equal to its slot index.
// Call it after the last Load and before drawing.
func (r *Registry) BindAll() {
	for i, s := range r.table.slots() {
		r.backend.Bind(i, s.Handle)
		log.Debug().Int("unit", i).Str("tag", s.Tag).Msg("bound texture")
	}
}

// FindHandle returns the handle of the first slot tagged tag.
func (r *Registry) FindHandle(tag string) (Handle, bool) {
	i := r.table.index(tag)
	if i == NoSlot {
		return 0, false
	}
	return r.table.entries[i].Handle, true
}

// FindSlot returns the slot index (and texture unit) for tag, or NoSlot.
func (r *Registry) FindSlot(tag string) int {
	return r.table.index(tag)
}

// ReleaseAll frees every GPU texture and empties the table.
func (r *Registry) ReleaseAll() {
	for _, s := range r.table.slots() {
		r.backend.Release(s.Handle)
	}
	r.table.reset()
}

// Len is the number of occupied slots.
func (r *Registry) Len() int {
	return r.table.n
}

// Tags lists registered tags in slot order.
func (r *Registry) Tags() []string {
	tags := make([]string, 0, r.table.n)
	for _, s := range r.table.slots() {
		tags = append(tags, s.Tag)
	}
	return tags
}
