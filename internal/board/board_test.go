package board

import (
	"errors"
	"testing"
	"time"
)

func newTestBoard() *Board {
	b := New()
	for _, id := range []string{"dashboard", "products"} {
		b.AddSection(id)
		b.AddNav(id, id)
	}
	b.AddElement("system-status", "checking")
	b.AddCanvas("categoryChart")
	return b
}

func TestShowAndNav(t *testing.T) {
	t.Parallel()

	b := newTestBoard()
	b.HideAll()
	if err := b.Show("products"); err != nil {
		t.Fatalf("Show: %v", err)
	}
	if err := b.SetActiveNav("products"); err != nil {
		t.Fatalf("SetActiveNav: %v", err)
	}

	if got := b.VisibleSections(); len(got) != 1 || got[0] != "products" {
		t.Fatalf("visible = %v, want [products]", got)
	}
	active := 0
	for _, n := range b.Nav() {
		if n.Active {
			active++
			if n.Target != "products" {
				t.Fatalf("active nav = %s", n.Target)
			}
		}
	}
	if active != 1 {
		t.Fatalf("active nav items = %d, want 1", active)
	}
}

func TestMissingTargets(t *testing.T) {
	t.Parallel()

	b := newTestBoard()
	var missing *TargetMissingError

	if err := b.Show("settings"); !errors.As(err, &missing) || missing.Kind != "section" {
		t.Fatalf("Show(settings) err = %v", err)
	}
	if err := b.SetText("nope", "x"); !errors.As(err, &missing) || missing.ID != "nope" {
		t.Fatalf("SetText(nope) err = %v", err)
	}
	if _, err := b.Canvas("nope"); !errors.As(err, &missing) {
		t.Fatalf("Canvas(nope) err = %v", err)
	}
	if err := b.SetActiveNav("settings"); !errors.As(err, &missing) {
		t.Fatalf("SetActiveNav(settings) err = %v", err)
	}
	for _, n := range b.Nav() {
		if n.Active {
			t.Fatalf("nav %s still active after missing target", n.Target)
		}
	}
}

func TestCloneAndReplaceCanvas(t *testing.T) {
	t.Parallel()

	b := newTestBoard()
	orig, err := b.Canvas("categoryChart")
	if err != nil {
		t.Fatal(err)
	}
	clone := b.CloneCanvas(orig)
	if clone == orig || clone.Serial() == orig.Serial() || clone.ID != orig.ID {
		t.Fatalf("clone not distinct: %+v vs %+v", clone, orig)
	}
	if err := b.ReplaceCanvas(orig, clone); err != nil {
		t.Fatalf("ReplaceCanvas: %v", err)
	}
	got, _ := b.Canvas("categoryChart")
	if got != clone {
		t.Fatal("canvas not replaced")
	}
	if err := b.ReplaceCanvas(orig, clone); err == nil {
		t.Fatal("replacing a detached canvas should fail")
	}
}

func TestReadyClosesOnce(t *testing.T) {
	t.Parallel()

	b := New()
	select {
	case <-b.Ready():
		t.Fatal("ready before mount")
	default:
	}
	b.MarkReady()
	b.MarkReady()
	select {
	case <-b.Ready():
	case <-time.After(time.Second):
		t.Fatal("ready not closed")
	}
}

func TestMutationsCounted(t *testing.T) {
	t.Parallel()

	b := newTestBoard()
	before := b.Mutations()
	_ = b.SetText("system-status", "online")
	_ = b.SetClass("system-status", "success")
	_ = b.SetText("missing", "x")
	if got := b.Mutations() - before; got != 2 {
		t.Fatalf("mutations = %d, want 2", got)
	}
	if b.Text("system-status") != "online" || b.Class("system-status") != "success" {
		t.Fatal("element not updated")
	}
}
