package renderer

import (
	"fmt"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/rs/zerolog/log"

	"github.com/richinsley/deskscene/binder"
	"github.com/richinsley/deskscene/gpu"
	"github.com/richinsley/deskscene/graphics"
	"github.com/richinsley/deskscene/materials"
	options "github.com/richinsley/deskscene/options"
	"github.com/richinsley/deskscene/scene"
	"github.com/richinsley/deskscene/textures"
)

// Ensures gl.Init() is called only once per process.
var glInitOnce sync.Once

// Renderer draws a scene into a graphics.Context. The context it is given is
// shut down by the caller.
type Renderer struct {
	context   graphics.Context
	program   *gpu.Program
	composer  *scene.Composer
	offscreen *OffscreenRenderer
	width     int
	height    int
}

func NewRenderer(options *options.SceneOptions, ctx graphics.Context) (*Renderer, error) {
	r := &Renderer{
		context: ctx,
		width:   *options.Width,
		height:  *options.Height,
	}

	// Make the context current BEFORE initializing OpenGL.
	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Info().
		Str("version", gl.GoStr(gl.GetString(gl.VERSION))).
		Str("renderer", gl.GoStr(gl.GetString(gl.RENDERER))).
		Msg("OpenGL initialized")

	return r, nil
}

// InitScene compiles the scene program, builds the registries and loads
// everything m needs. Relative texture paths resolve against baseDir.
func (r *Renderer) InitScene(m *scene.Manifest, baseDir string) error {
	program, err := gpu.NewSceneProgram(r.context.IsGLES())
	if err != nil {
		return fmt.Errorf("failed to create scene program: %w", err)
	}
	r.program = program
	// lights and materials are pushed during Prepare
	r.program.Use()

	tex := textures.NewRegistry(textures.NewFileDecoder(), gpu.NewTextureBackend())
	mats := materials.NewRegistry()
	b := binder.New(r.program, tex, mats)
	r.composer = scene.NewComposer(m, tex, mats, b, gpu.NewMeshLibrary())

	if err := r.composer.Prepare(baseDir); err != nil {
		return fmt.Errorf("failed to prepare scene: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	return nil
}

// RenderFrame clears the bound framebuffer and draws the scene at the given
// size.
func (r *Renderer) RenderFrame(width, height int) {
	bg := r.composer.Background()
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.composer.Resize(width, height)
	r.composer.Render()
}

// Run renders into the window until it is asked to close.
func (r *Renderer) Run() {
	startTime := r.context.Time()
	frameCount := 0

	for !r.context.ShouldClose() {
		fbWidth, fbHeight := r.context.GetFramebufferSize()
		r.RenderFrame(fbWidth, fbHeight)
		r.context.EndFrame()
		frameCount++
	}

	elapsed := r.context.Time() - startTime
	ev := log.Info().Int("frames", frameCount).Float64("seconds", elapsed)
	if elapsed > 0 {
		ev = ev.Float64("fps", float64(frameCount)/elapsed)
	}
	ev.Msg("render loop finished")
}

// Snapshot renders one frame offscreen at the configured size and writes it
// to path as PNG, JPEG or WebP depending on the extension.
func (r *Renderer) Snapshot(path string) error {
	if r.offscreen == nil {
		or, err := NewOffscreenRenderer(r.width, r.height)
		if err != nil {
			return fmt.Errorf("failed to create offscreen renderer: %w", err)
		}
		r.offscreen = or
	}

	r.offscreen.Bind()
	r.RenderFrame(r.offscreen.width, r.offscreen.height)
	gl.Finish()
	img := r.offscreen.ReadPixels()
	opaque(img)

	if err := writeImage(path, img); err != nil {
		return fmt.Errorf("snapshot %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("width", r.width).Int("height", r.height).Msg("snapshot written")
	return nil
}

func (r *Renderer) Shutdown() {
	if r.composer != nil {
		r.composer.Destroy()
	}
	if r.program != nil {
		r.program.Delete()
	}
	if r.offscreen != nil {
		r.offscreen.Destroy()
	}
}
