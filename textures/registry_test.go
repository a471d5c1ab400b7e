package textures

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDecoder struct {
	images map[string]*Image
}

func (d *fakeDecoder) Decode(path string) (*Image, error) {
	img, ok := d.images[path]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", path, os.ErrNotExist)
	}
	return img, nil
}

type bindCall struct {
	unit   int
	handle Handle
}

type fakeBackend struct {
	next     Handle
	uploads  int
	binds    []bindCall
	released []Handle
	failNext bool
}

func (b *fakeBackend) Upload(img *Image) (Handle, error) {
	if b.failNext {
		b.failNext = false
		return 0, errors.New("out of memory")
	}
	b.uploads++
	b.next++
	return b.next + 100, nil
}

func (b *fakeBackend) Bind(unit int, h Handle) {
	b.binds = append(b.binds, bindCall{unit: unit, handle: h})
}

func (b *fakeBackend) Release(h Handle) {
	b.released = append(b.released, h)
}

func rgb() *Image  { return &Image{Pix: make([]byte, 2*2*3), Width: 2, Height: 2, Channels: 3} }
func rgba() *Image { return &Image{Pix: make([]byte, 2*2*4), Width: 2, Height: 2, Channels: 4} }

func newTestRegistry(images map[string]*Image) (*Registry, *fakeBackend) {
	backend := &fakeBackend{}
	return NewRegistry(&fakeDecoder{images: images}, backend), backend
}

func TestLoadAssignsSlotsInOrder(t *testing.T) {
	r, _ := newTestRegistry(map[string]*Image{
		"wood.jpg":   rgb(),
		"candle.png": rgba(),
	})

	require.NoError(t, r.Load("wood.jpg", "wood"))
	require.NoError(t, r.Load("candle.png", "candle"))

	assert.Equal(t, 0, r.FindSlot("wood"))
	assert.Equal(t, 1, r.FindSlot("candle"))

	h, ok := r.FindHandle("candle")
	assert.True(t, ok)
	assert.NotZero(t, h)
	assert.Equal(t, []string{"wood", "candle"}, r.Tags())
}

func TestLoadRejectsUnsupportedChannels(t *testing.T) {
	for _, channels := range []int{1, 2, 5} {
		t.Run(fmt.Sprintf("%d channels", channels), func(t *testing.T) {
			r, backend := newTestRegistry(map[string]*Image{
				"gray.png": {Pix: make([]byte, 4*channels), Width: 2, Height: 2, Channels: channels},
			})

			err := r.Load("gray.png", "gray")
			assert.ErrorIs(t, err, ErrUnsupportedFormat)
			assert.Equal(t, 0, r.Len())
			assert.Equal(t, 0, backend.uploads)
			assert.Equal(t, NoSlot, r.FindSlot("gray"))
		})
	}
}

func TestFindOnUnknownTag(t *testing.T) {
	r, _ := newTestRegistry(nil)

	h, ok := r.FindHandle("nope")
	assert.False(t, ok)
	assert.Zero(t, h)
	assert.Equal(t, NoSlot, r.FindSlot("nope"))
}

func TestLoadBeyondCapacity(t *testing.T) {
	images := make(map[string]*Image)
	for i := 0; i <= MaxSlots; i++ {
		images[fmt.Sprintf("tex%d.png", i)] = rgb()
	}
	r, backend := newTestRegistry(images)

	for i := 0; i < MaxSlots; i++ {
		require.NoError(t, r.Load(fmt.Sprintf("tex%d.png", i), fmt.Sprintf("tex%d", i)))
	}
	require.Equal(t, MaxSlots, r.Len())

	err := r.Load(fmt.Sprintf("tex%d.png", MaxSlots), "overflow")
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Equal(t, MaxSlots, r.Len())
	assert.Equal(t, MaxSlots, backend.uploads, "no texture is created for a rejected load")
	assert.Equal(t, NoSlot, r.FindSlot("overflow"))
	assert.Equal(t, MaxSlots-1, r.FindSlot(fmt.Sprintf("tex%d", MaxSlots-1)))
}

func TestLoadMissingFile(t *testing.T) {
	r := NewRegistry(NewFileDecoder(), &fakeBackend{})

	err := r.Load(filepath.Join(t.TempDir(), "missing.png"), "x")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Equal(t, NoSlot, r.FindSlot("x"))
	assert.Equal(t, 0, r.Len())
}

func TestLoadDuplicateTag(t *testing.T) {
	r, backend := newTestRegistry(map[string]*Image{"a.png": rgb(), "b.png": rgb()})

	require.NoError(t, r.Load("a.png", "pages"))
	err := r.Load("b.png", "pages")
	assert.ErrorIs(t, err, ErrDuplicateTag)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 1, backend.uploads)
}

func TestLoadUploadFailure(t *testing.T) {
	r, backend := newTestRegistry(map[string]*Image{"a.png": rgb()})
	backend.failNext = true

	assert.Error(t, r.Load("a.png", "a"))
	assert.Equal(t, 0, r.Len())

	require.NoError(t, r.Load("a.png", "a"))
	assert.Equal(t, 0, r.FindSlot("a"))
}

func TestBindAllUsesSlotIndexAsUnit(t *testing.T) {
	r, backend := newTestRegistry(map[string]*Image{"a.png": rgb(), "b.png": rgb(), "c.png": rgba()})
	for _, tag := range []string{"a", "b", "c"} {
		require.NoError(t, r.Load(tag+".png", tag))
	}

	r.BindAll()

	require.Len(t, backend.binds, 3)
	for i, tag := range []string{"a", "b", "c"} {
		h, _ := r.FindHandle(tag)
		assert.Equal(t, bindCall{unit: i, handle: h}, backend.binds[i])
	}
}

func TestReleaseAllFreesEveryHandle(t *testing.T) {
	r, backend := newTestRegistry(map[string]*Image{"a.png": rgb(), "b.png": rgb()})
	require.NoError(t, r.Load("a.png", "a"))
	require.NoError(t, r.Load("b.png", "b"))
	ha, _ := r.FindHandle("a")
	hb, _ := r.FindHandle("b")

	r.ReleaseAll()

	assert.Equal(t, []Handle{ha, hb}, backend.released)
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, NoSlot, r.FindSlot("a"))

	// the table is usable again after teardown
	require.NoError(t, r.Load("b.png", "b"))
	assert.Equal(t, 0, r.FindSlot("b"))
}
