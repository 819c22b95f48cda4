package softhost

import (
	"reflect"
	"testing"

	"github.com/gogpu/invcolors"
)

func recordingHook(log *[]string, name string) invcolors.DrawHook {
	return invcolors.DrawHook{
		Before: func(invcolors.Canvas, invcolors.Node) { *log = append(*log, name+".before") },
		After:  func(invcolors.Canvas, invcolors.Node) { *log = append(*log, name+".after") },
	}
}

func TestHost_HookUnknownMethod(t *testing.T) {
	h := NewHost()
	if _, err := h.HookMethod("android.widget.TextView", "onDraw", invcolors.DrawHook{}); err == nil {
		t.Error("hooking an unknown method should fail")
	}
	if h.TotalHooks() != 0 {
		t.Errorf("TotalHooks() = %d", h.TotalHooks())
	}
}

func TestHost_InvokeOrder(t *testing.T) {
	h := NewHost()
	var log []string
	_, _ = h.HookMethod(ViewClass, DrawMethod, recordingHook(&log, "a"))
	_, _ = h.HookMethod(ViewClass, DrawMethod, recordingHook(&log, "b"))

	h.Invoke(ViewClass, DrawMethod, nil, nil, func() { log = append(log, "body") })

	want := []string{"a.before", "b.before", "body", "b.after", "a.after"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
}

func TestHost_AfterRunsOnPanic(t *testing.T) {
	h := NewHost()
	var log []string
	_, _ = h.HookMethod(ViewGroupClass, DispatchMethod, recordingHook(&log, "a"))

	func() {
		defer func() {
			if recover() == nil {
				t.Error("body panic not propagated")
			}
		}()
		h.Invoke(ViewGroupClass, DispatchMethod, nil, nil, func() { panic("draw failed") })
	}()

	want := []string{"a.before", "a.after"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
}

func TestHost_AfterSkippedWhenBeforePanics(t *testing.T) {
	h := NewHost()
	var log []string
	_, _ = h.HookMethod(ViewClass, DrawMethod, recordingHook(&log, "a"))
	_, _ = h.HookMethod(ViewClass, DrawMethod, invcolors.DrawHook{
		Before: func(invcolors.Canvas, invcolors.Node) { panic("before failed") },
		After:  func(invcolors.Canvas, invcolors.Node) { log = append(log, "b.after") },
	})

	func() {
		defer func() { _ = recover() }()
		h.Invoke(ViewClass, DrawMethod, nil, nil, func() { log = append(log, "body") })
	}()

	want := []string{"a.before", "a.after"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
}

func TestHost_Unhook(t *testing.T) {
	h := NewHost()
	var log []string
	unhookA, err := h.HookMethod(ViewClass, DrawMethod, recordingHook(&log, "a"))
	if err != nil {
		t.Fatal(err)
	}
	_, _ = h.HookMethod(ViewClass, DrawMethod, recordingHook(&log, "b"))

	unhookA()
	unhookA()
	if got := h.HookCount(ViewClass, DrawMethod); got != 1 {
		t.Fatalf("HookCount() = %d, want 1", got)
	}

	h.Invoke(ViewClass, DrawMethod, nil, nil, func() {})
	want := []string{"b.before", "b.after"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
}

func TestHost_PartialHooks(t *testing.T) {
	h := NewHost()
	ran := false
	_, _ = h.HookMethod(ViewClass, DrawMethod, invcolors.DrawHook{
		Before: func(invcolors.Canvas, invcolors.Node) { ran = true },
	})
	h.Invoke(ViewClass, DrawMethod, nil, nil, func() {})
	if !ran {
		t.Error("before-only hook not run")
	}
}

func TestView_Tree(t *testing.T) {
	h := NewHost()
	win := NewWindow(h, 10, 10)
	a := win.AddView(NewView(h, FrameLayoutType))
	b := a.AddView(NewView(h, TextViewType))

	if win.Parent() == nil || win.Parent().TypeName() != ViewRootType {
		t.Errorf("window parent = %v", win.Parent())
	}
	if a.Parent() != invcolors.Node(win) {
		t.Error("child parent is not the window")
	}
	if !invcolors.IsRoot(win) || invcolors.IsRoot(a) || invcolors.IsRoot(b) {
		t.Error("only the DecorView should be a root")
	}

	// Re-parenting detaches from the previous parent.
	win.AddView(b)
	if len(a.Children()) != 0 || len(win.Children()) != 2 {
		t.Errorf("children: a=%d win=%d", len(a.Children()), len(win.Children()))
	}

	win.RemoveView(b)
	if b.Parent() != nil {
		t.Error("removed view still has a parent")
	}
	if !invcolors.IsRoot(b) {
		t.Error("detached view should be treated as a root")
	}
}

func TestView_DrawOrder(t *testing.T) {
	h := NewHost()
	var log []string
	_, _ = h.HookMethod(ViewClass, DrawMethod, invcolors.DrawHook{
		Before: func(_ invcolors.Canvas, n invcolors.Node) {
			log = append(log, "draw "+invcolors.SimpleName(n.TypeName()))
		},
	})
	_, _ = h.HookMethod(ViewGroupClass, DispatchMethod, invcolors.DrawHook{
		Before: func(_ invcolors.Canvas, n invcolors.Node) {
			log = append(log, "dispatch "+invcolors.SimpleName(n.TypeName()))
		},
	})

	win := NewWindow(h, 4, 4)
	frame := win.AddView(NewView(h, FrameLayoutType))
	frame.AddView(NewView(h, TextViewType))
	win.Draw(NewCanvas(4, 4))

	want := []string{
		"draw DecorView", "dispatch DecorView",
		"draw FrameLayout", "dispatch FrameLayout",
		"draw TextView",
	}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
}

func TestView_Background(t *testing.T) {
	h := NewHost()
	win := NewWindow(h, 4, 4)
	win.SetBackground(invcolors.White)
	child := win.AddView(NewView(h, FrameLayoutType))
	child.SetBounds(invcolors.Rect{Left: 1.5, Top: 1.5, Right: 2.5, Bottom: 2.5})
	child.SetBackground(invcolors.Red)

	c := NewCanvas(4, 4)
	win.Draw(c)

	if got := c.Surface().Pixel(0, 0); got != invcolors.White {
		t.Errorf("Pixel(0, 0) = %s, want white", got)
	}
	// Fractional bounds round outwards.
	for _, pt := range [][2]int{{1, 1}, {2, 2}} {
		if got := c.Surface().Pixel(pt[0], pt[1]); got != invcolors.Red {
			t.Errorf("Pixel%v = %s, want red", pt, got)
		}
	}
}
