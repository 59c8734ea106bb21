//go:build js && wasm

// Command wasm runs the pendulum in a browser page. The page provides the
// canvas, the control panel and the coordinate readout.
package main

import (
	"errors"
	"fmt"
	"strconv"
	"syscall/js"

	"go.uber.org/zap"

	"github.com/san-kum/springsim/internal/config"
	"github.com/san-kum/springsim/internal/logging"
	"github.com/san-kum/springsim/internal/physics"
	"github.com/san-kum/springsim/internal/sim"
)

const (
	dragStart = "touchstart mousedown"
	dragMove  = "touchmove mousemove"
	dragEnd   = "touchend mouseup"
)

type page struct {
	controls, cssOutput, coords, toggle, reset, clear, canvas js.Value

	ctrl *sim.Controller
	log  *zap.Logger

	panelPos  [2]float64
	panelDrag [2]float64
}

func main() {
	log, err := logging.New("info", "")
	if err != nil {
		log = logging.Nop()
	}
	if err := start(log); err != nil {
		log.Error("startup failed", zap.Error(err))
		js.Global().Get("console").Call("error", err.Error())
		return
	}
	c := make(chan struct{})
	<-c
}

func start(log *zap.Logger) error {
	p := &page{log: log}
	for _, el := range []struct {
		dst *js.Value
		id  string
	}{
		{&p.controls, "controls"},
		{&p.cssOutput, "css-output"},
		{&p.coords, "output-coords"},
		{&p.toggle, "toggle-animation"},
		{&p.reset, "reset-canvas"},
		{&p.clear, "clear-canvas"},
		{&p.canvas, "canvas"},
	} {
		v, err := byID(el.id)
		if err != nil {
			return err
		}
		*el.dst = v
	}

	clock := timelineClock{}
	if _, err := clock.Now(); err != nil {
		return fmt.Errorf("startup: %w: %v", sim.ErrClockUnavailable, err)
	}

	cfg := config.DefaultConfig()
	cfg.Controller.NotDraggingMessage = p.coords.Get("innerHTML").String()
	surface := &canvasSurface{canvas: p.canvas, ctx: p.canvas.Call("getContext", "2d")}
	session := sim.NewSession(cfg.Params, cfg.Options(), clock, log)
	p.ctrl = sim.NewController(session, newAnimationFrames(), surface, log)

	p.resize()
	on(window, "resize", js.FuncOf(func(js.Value, []js.Value) any {
		p.resize()
		return nil
	}))
	on(window, "blur", js.FuncOf(func(js.Value, []js.Value) any {
		p.handle(p.ctrl.Blur())
		return nil
	}))
	on(window, "focus", js.FuncOf(func(js.Value, []js.Value) any {
		p.ctrl.Focus()
		return nil
	}))

	p.bindPanel()
	p.bindParams()
	p.bindButtons()
	p.bindCanvas()

	p.registerCallbacks()
	p.ctrl.SetAnimating(p.toggle.Get("checked").Bool())
	log.Info("page started")
	return nil
}

func (p *page) resize() {
	w, h := window.Get("innerWidth").Float(), window.Get("innerHeight").Float()
	p.canvas.Set("width", w)
	p.canvas.Set("height", h)
	p.ctrl.Resize(w, h)
}

func (p *page) handle(err error) {
	if err == nil {
		return
	}
	if errors.Is(err, sim.ErrClockUnavailable) {
		p.ctrl.SetAnimating(false)
	}
	p.log.Error("input failed", zap.Error(err))
}

// drag installs start on el and follows the gesture on the document until
// it ends or the window loses focus.
func drag(el js.Value, start, move, end func(js.Value)) {
	var moveFn, endFn js.Func
	moveFn = js.FuncOf(func(this js.Value, args []js.Value) any {
		args[0].Call("preventDefault")
		move(args[0])
		return nil
	})
	endFn = js.FuncOf(func(this js.Value, args []js.Value) any {
		end(args[0])
		off(document, dragMove+" "+dragEnd, moveFn)
		off(document, dragEnd, endFn)
		off(window, "blur", endFn)
		return nil
	})
	on(el, dragStart, js.FuncOf(func(this js.Value, args []js.Value) any {
		args[0].Call("preventDefault")
		start(args[0])
		on(document, dragMove, moveFn)
		on(document, dragEnd, endFn)
		on(window, "blur", endFn)
		return nil
	}))
}

func (p *page) bindCanvas() {
	readout := func() {
		p.coords.Set("innerHTML", p.ctrl.Session().Readout())
	}
	drag(p.canvas, func(e js.Value) {
		p.handle(p.ctrl.PointerDown(pointerAt(e)))
		readout()
	}, func(e js.Value) {
		p.handle(p.ctrl.PointerMove(pointerAt(e)))
		readout()
	}, func(e js.Value) {
		// a blur has already ended the gesture
		if e.Get("type").String() != "blur" && p.ctrl.Session().Mode() != sim.Idle {
			p.handle(p.ctrl.PointerUp(pointerAt(e)))
		}
		readout()
	})
}

// bindPanel makes the panel header drag the panel, clamped inside the
// body, and the toggle button collapse it.
func (p *page) bindPanel() {
	rect := p.controls.Call("getBoundingClientRect")
	p.panelPos = [2]float64{rect.Get("left").Float(), rect.Get("top").Float()}

	body := document.Get("body")
	clamped := func() (float64, float64) {
		maxX := body.Get("clientWidth").Float() - p.controls.Get("clientWidth").Float()
		maxY := body.Get("clientHeight").Float() - p.controls.Get("clientHeight").Float()
		return clampAxis(p.panelPos[0], maxX), clampAxis(p.panelPos[1], maxY)
	}

	header := p.controls.Call("getElementsByTagName", "header").Index(0)
	classes := p.controls.Get("classList")
	drag(header, func(e js.Value) {
		ev := pointerAt(e)
		p.panelDrag = [2]float64{ev.X, ev.Y}
		classes.Call("add", "currentlyDragging")
	}, func(e js.Value) {
		ev := pointerAt(e)
		p.panelPos[0] += ev.X - p.panelDrag[0]
		p.panelPos[1] += ev.Y - p.panelDrag[1]
		p.panelDrag = [2]float64{ev.X, ev.Y}
		x, y := clamped()
		p.controls.Get("style").Set("transform", fmt.Sprintf("translate(%gpx,%gpx)", x, y))
	}, func(js.Value) {
		classes.Call("remove", "currentlyDragging")
		p.panelPos[0], p.panelPos[1] = clamped()
	})

	if toggle := p.controls.Call("getElementsByClassName", "toggle-dropdown").Index(0); toggle.Truthy() {
		on(toggle, "click", js.FuncOf(func(js.Value, []js.Value) any {
			classes.Call("toggle", "closed")
			return nil
		}))
	}

	// each list item contributes 2em to the open height
	list := p.controls.Call("getElementsByTagName", "ul").Index(0)
	if list.Truthy() {
		rows := list.Get("childElementCount").Int()
		p.cssOutput.Set("innerHTML", fmt.Sprintf("#controls>ul{max-height:%dem;}", rows*2))
	}
}

// clampAxis keeps v in [0, limit]. A negative limit wins over zero, as it
// does for a panel larger than the window.
func clampAxis(v, limit float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > limit:
		return limit
	}
	return v
}

// bindParams pairs every [data-param] input with its next sibling. Typing
// in either updates the other and the session.
func (p *page) bindParams() {
	for _, name := range physics.ParamNames {
		input := p.controls.Call("querySelector", `[data-param="`+name+`"]`)
		if !input.Truthy() {
			continue
		}
		sib := input.Get("nextElementSibling")
		if !sib.Truthy() || sib.Get("tagName").String() != "INPUT" {
			continue
		}
		pair := [2]js.Value{input, sib}
		for i, el := range pair {
			other := pair[1-i]
			on(el, "input", js.FuncOf(func(js.Value, []js.Value) any {
				raw := el.Get("value").String()
				other.Set("value", raw)
				v, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					return nil
				}
				if err := p.ctrl.SetParam(name, v); err != nil {
					p.log.Warn("param rejected", zap.String("name", name), zap.Error(err))
				}
				return nil
			}))
		}
	}
	p.syncParams()
}

func (p *page) syncParams() {
	params := p.ctrl.Session().Params()
	for _, name := range physics.ParamNames {
		input := p.controls.Call("querySelector", `[data-param="`+name+`"]`)
		if !input.Truthy() {
			continue
		}
		v, _ := params.Get(name)
		s := strconv.FormatFloat(v, 'g', -1, 64)
		input.Set("value", s)
		if sib := input.Get("nextElementSibling"); sib.Truthy() {
			sib.Set("value", s)
		}
	}
}

func (p *page) bindButtons() {
	on(p.toggle, "change", js.FuncOf(func(js.Value, []js.Value) any {
		p.ctrl.SetAnimating(p.toggle.Get("checked").Bool())
		return nil
	}))
	on(p.reset, "click", js.FuncOf(func(js.Value, []js.Value) any {
		p.ctrl.Reset()
		p.syncParams()
		return nil
	}))
	on(p.clear, "click", js.FuncOf(func(js.Value, []js.Value) any {
		p.ctrl.Clear()
		return nil
	}))
}

// registerCallbacks exposes the session to page scripts.
func (p *page) registerCallbacks() {
	js.Global().Set("springsimState", js.FuncOf(func(js.Value, []js.Value) any {
		s := p.ctrl.Session()
		st := s.State()
		obj := js.Global().Get("Object").New()
		obj.Set("x", st.X)
		obj.Set("theta", st.Theta)
		obj.Set("xPrime", st.XPrime)
		obj.Set("thetaPrime", st.ThetaPrime)
		obj.Set("energy", physics.Energy(st, s.Params()))
		obj.Set("mode", s.Mode().String())
		return obj
	}))
	js.Global().Set("springsimSetParam", js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) < 2 {
			return "springsimSetParam: need name and value"
		}
		if err := p.ctrl.SetParam(args[0].String(), args[1].Float()); err != nil {
			return err.Error()
		}
		p.syncParams()
		return nil
	}))
}
