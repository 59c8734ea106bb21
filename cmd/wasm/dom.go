//go:build js && wasm

package main

import (
	"errors"
	"math"
	"strings"
	"syscall/js"
	"time"

	"github.com/san-kum/springsim/internal/sim"
)

var (
	window   = js.Global()
	document = js.Global().Get("document")
)

// missingElementError names the element a page lacks.
type missingElementError struct{ id string }

func (e *missingElementError) Error() string { return "element #" + e.id + " not found" }

func (e *missingElementError) Is(target error) bool { return target == sim.ErrMissingElement }

func byID(id string) (js.Value, error) {
	el := document.Call("getElementById", id)
	if !el.Truthy() {
		return js.Undefined(), &missingElementError{id: id}
	}
	return el, nil
}

// on adds listener for every space-separated event name.
func on(target js.Value, events string, listener js.Func) {
	for _, ev := range strings.Fields(events) {
		target.Call("addEventListener", ev, listener)
	}
}

func off(target js.Value, events string, listener js.Func) {
	for _, ev := range strings.Fields(events) {
		target.Call("removeEventListener", ev, listener)
	}
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// timelineClock reads document.timeline.currentTime.
type timelineClock struct{}

func (timelineClock) Now() (time.Duration, error) {
	t := document.Get("timeline").Get("currentTime")
	if t.Type() != js.TypeNumber {
		return 0, errors.New("document.timeline.currentTime is not a number")
	}
	return msToDuration(t.Float()), nil
}

// animationFrames schedules frames with requestAnimationFrame.
type animationFrames struct {
	next    sim.FrameID
	handles map[sim.FrameID]int
	funcs   map[sim.FrameID]js.Func
}

func newAnimationFrames() *animationFrames {
	return &animationFrames{handles: map[sim.FrameID]int{}, funcs: map[sim.FrameID]js.Func{}}
}

func (a *animationFrames) RequestFrame(fn sim.FrameFunc) sim.FrameID {
	a.next++
	id := a.next
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) any {
		a.release(id)
		fn(msToDuration(args[0].Float()))
		return nil
	})
	a.funcs[id] = cb
	a.handles[id] = window.Call("requestAnimationFrame", cb).Int()
	return id
}

func (a *animationFrames) CancelFrame(id sim.FrameID) {
	if h, ok := a.handles[id]; ok {
		window.Call("cancelAnimationFrame", h)
	}
	a.release(id)
}

func (a *animationFrames) release(id sim.FrameID) {
	if cb, ok := a.funcs[id]; ok {
		cb.Release()
	}
	delete(a.funcs, id)
	delete(a.handles, id)
}

const (
	pivotColor = "#333"
	bobColor   = "#ccc"
	rodWidth   = 3
)

// canvasSurface draws frames on a 2D canvas context in meters.
type canvasSurface struct {
	canvas js.Value
	ctx    js.Value
}

func (s *canvasSurface) Draw(f sim.Frame) {
	s.Clear()
	ctx := s.ctx
	px := f.Params.PxPerM

	ctx.Call("beginPath")
	ctx.Call("scale", px, px)
	ctx.Call("arc", f.Pivot.X, f.Pivot.Y, f.Params.RPivot, 0, 2*math.Pi)
	ctx.Set("fillStyle", pivotColor)
	ctx.Call("fill")

	ctx.Call("moveTo", f.Pivot.X, f.Pivot.Y)
	ctx.Set("lineWidth", rodWidth/px)
	ctx.Call("lineTo", f.Bob.X, f.Bob.Y)
	ctx.Set("strokeStyle", pivotColor)
	ctx.Call("stroke")

	ctx.Call("beginPath")
	ctx.Call("arc", f.Bob.X, f.Bob.Y, f.Params.RBob, 0, 2*math.Pi)
	ctx.Set("fillStyle", bobColor)
	ctx.Call("fill")

	ctx.Call("setTransform", 1, 0, 0, 1, 0, 0)
}

func (s *canvasSurface) Clear() {
	s.ctx.Call("clearRect", 0, 0, s.canvas.Get("width"), s.canvas.Get("height"))
}

// pointerAt reads client coordinates from a mouse or touch event.
func pointerAt(e js.Value) sim.PointerEvent {
	if touches := e.Get("touches"); !touches.IsUndefined() {
		t := touches.Index(0)
		if !t.Truthy() {
			t = e.Get("changedTouches").Index(0)
		}
		return sim.PointerEvent{Kind: sim.Touch, X: t.Get("clientX").Float(), Y: t.Get("clientY").Float()}
	}
	return sim.PointerEvent{Kind: sim.Mouse, X: e.Get("clientX").Float(), Y: e.Get("clientY").Float()}
}
