package world

import (
	"testing"
)

func testIndex() *Index {
	rooms := []*Room{
		{ID: "entry_hall", Description: "A grand entry hall.", Bounds: AABB{Min: Vec3{0, 0, 0}, Max: Vec3{1000, 1000, 400}}},
		{ID: "gallery", Description: "A long gallery.", Bounds: AABB{Min: Vec3{1000, 0, 0}, Max: Vec3{2000, 1000, 400}}},
		{ID: "gallery_annex", Description: "A small annex.", Bounds: AABB{Min: Vec3{2000, 0, 0}, Max: Vec3{3000, 1000, 400}}},
	}
	doors := []Door{
		{Room1: "entry_hall", Room2: "gallery", Description: "archway"},
		{Room1: "gallery", Room2: "gallery_annex", Description: "door"},
	}
	ix := NewIndex(rooms, doors)
	_ = ix.RegisterObject("gallery", &Object{ID: "marble_statue", Description: "A statue.", Position: Vec3{X: 1500, Y: 500}})
	_ = ix.RegisterObject("gallery", &Object{ID: "old_painting", Description: "A painting.", Position: Vec3{X: 1100, Y: 100}})
	return ix
}

func TestRoomByID(t *testing.T) {
	ix := testIndex()

	tests := []struct {
		name string
		id   string
		want string // empty means nil expected
	}{
		{"exact match", "gallery", "gallery"},
		{"exact match beats substring", "entry_hall", "entry_hall"},
		{"case-insensitive substring", "GALLERY", "gallery"},
		{"abbreviation", "hall", "entry_hall"},
		{"substring first in order", "galler", "gallery"},
		{"no match", "dungeon", ""},
		{"empty id", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ix.RoomByID(tt.id)
			if tt.want == "" {
				if got != nil {
					t.Fatalf("RoomByID(%q) = %v, want nil", tt.id, got.ID)
				}
				return
			}
			if got == nil || got.ID != tt.want {
				t.Fatalf("RoomByID(%q) = %v, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestRoomAt(t *testing.T) {
	ix := testIndex()

	if r := ix.RoomAt(Vec3{X: 500, Y: 500, Z: 100}); r == nil || r.ID != "entry_hall" {
		t.Errorf("expected entry_hall, got %v", r)
	}
	if r := ix.RoomAt(Vec3{X: 1500, Y: 500, Z: 100}); r == nil || r.ID != "gallery" {
		t.Errorf("expected gallery, got %v", r)
	}
	if r := ix.RoomAt(Vec3{X: -100, Y: 0, Z: 0}); r != nil {
		t.Errorf("expected nil outside all rooms, got %v", r.ID)
	}
}

func TestDoorsAt(t *testing.T) {
	ix := testIndex()

	doors := ix.DoorsAt("gallery")
	if len(doors) != 2 {
		t.Fatalf("expected 2 doors at gallery, got %d", len(doors))
	}
	if doors[0].Other("gallery") != "entry_hall" {
		t.Errorf("expected other endpoint entry_hall, got %s", doors[0].Other("gallery"))
	}
	if doors[1].Other("gallery") != "gallery_annex" {
		t.Errorf("expected other endpoint gallery_annex, got %s", doors[1].Other("gallery"))
	}

	if doors := ix.DoorsAt("gallery_annex"); len(doors) != 1 {
		t.Errorf("expected 1 door at gallery_annex, got %d", len(doors))
	}
	if doors := ix.DoorsAt("nowhere"); len(doors) != 0 {
		t.Errorf("expected no doors for unknown room, got %d", len(doors))
	}
}

func TestObjectsAt(t *testing.T) {
	ix := testIndex()

	if objs := ix.ObjectsAt("gallery"); len(objs) != 2 {
		t.Errorf("expected 2 objects in gallery, got %d", len(objs))
	}
	if objs := ix.ObjectsAt("entry_hall"); len(objs) != 0 {
		t.Errorf("expected no objects in entry_hall, got %d", len(objs))
	}
	if objs := ix.ObjectsAt("nowhere"); objs != nil {
		t.Errorf("expected nil for unknown room, got %v", objs)
	}
}

func TestObjectByID(t *testing.T) {
	ix := testIndex()

	if o := ix.ObjectByID("gallery", "marble_statue"); o == nil || o.ID != "marble_statue" {
		t.Errorf("exact match failed: %v", o)
	}
	if o := ix.ObjectByID("gallery", "statue"); o == nil || o.ID != "marble_statue" {
		t.Errorf("substring match failed: %v", o)
	}
	if o := ix.ObjectByID("gallery", "PAINTING"); o == nil || o.ID != "old_painting" {
		t.Errorf("case-insensitive match failed: %v", o)
	}
	if o := ix.ObjectByID("gallery", "fountain"); o != nil {
		t.Errorf("expected nil for missing object, got %v", o.ID)
	}
	if o := ix.ObjectByID("nowhere", "statue"); o != nil {
		t.Errorf("expected nil for unknown room, got %v", o.ID)
	}
}

func TestRegisterObject(t *testing.T) {
	ix := testIndex()

	if err := ix.RegisterObject("entry_hall", &Object{ID: "ticket_desk", Description: "A desk."}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ix.ObjectsAt("entry_hall")) != 1 {
		t.Error("object was not registered")
	}

	if err := ix.RegisterObject("nowhere", &Object{ID: "ghost", Description: "?"}); err == nil {
		t.Error("expected error registering into unknown room")
	}
}

func TestAABB(t *testing.T) {
	b := AABB{Min: Vec3{0, 0, 0}, Max: Vec3{10, 20, 30}}

	if !b.Contains(Vec3{X: 5, Y: 10, Z: 15}) {
		t.Error("expected point inside")
	}
	if !b.Contains(Vec3{X: 0, Y: 0, Z: 0}) {
		t.Error("boundary should be inclusive")
	}
	if b.Contains(Vec3{X: 11, Y: 10, Z: 15}) {
		t.Error("expected point outside")
	}

	c := b.Center()
	if c.X != 5 || c.Y != 10 || c.Z != 15 {
		t.Errorf("unexpected center: %+v", c)
	}

	if (AABB{Min: Vec3{1, 0, 0}, Max: Vec3{0, 0, 0}}).IsValid() {
		t.Error("inverted bounds should not be valid")
	}
}

func TestDist2D(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 3, Y: 4, Z: 1000}

	if d := a.Dist2D(b); d != 5 {
		t.Errorf("Dist2D = %f, want 5 (vertical axis ignored)", d)
	}
	if d := a.Dist(Vec3{X: 0, Y: 0, Z: 2}); d != 2 {
		t.Errorf("Dist = %f, want 2", d)
	}
}
