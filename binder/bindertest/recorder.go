// Package bindertest provides an in-memory binder.Uniforms for tests.
package bindertest

import "github.com/go-gl/mathgl/mgl32"

// Push is one recorded uniform write.
type Push struct {
	Name  string
	Value any
}

// Recorder keeps every write in order and the last value per name, the way a
// GL program retains uniform state.
type Recorder struct {
	Pushes []Push
	Values map[string]any
}

func NewRecorder() *Recorder {
	return &Recorder{Values: make(map[string]any)}
}

func (r *Recorder) set(name string, v any) {
	r.Pushes = append(r.Pushes, Push{Name: name, Value: v})
	r.Values[name] = v
}

func (r *Recorder) SetInt(name string, v int32)          { r.set(name, v) }
func (r *Recorder) SetFloat(name string, v float32)      { r.set(name, v) }
func (r *Recorder) SetBool(name string, v bool)          { r.set(name, v) }
func (r *Recorder) SetVec2(name string, v mgl32.Vec2)    { r.set(name, v) }
func (r *Recorder) SetVec3(name string, v mgl32.Vec3)    { r.set(name, v) }
func (r *Recorder) SetVec4(name string, v mgl32.Vec4)    { r.set(name, v) }
func (r *Recorder) SetMat4(name string, v mgl32.Mat4)    { r.set(name, v) }
func (r *Recorder) SetSampler2D(name string, slot int32) { r.set(name, slot) }

// Names lists the written uniform names in write order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.Pushes))
	for i, p := range r.Pushes {
		names[i] = p.Name
	}
	return names
}

// Reset forgets the write log but keeps the retained values.
func (r *Recorder) Reset() {
	r.Pushes = nil
}
