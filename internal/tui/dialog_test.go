package tui

import (
	"testing"

	"mineboard/internal/model"
)

func TestDialogState_SingleActiveKind(t *testing.T) {
	var d dialogState
	if d.isOpen() {
		t.Fatalf("zero value should be closed")
	}

	ad := model.Ad{ID: "ad-1", Title: "Spring promo"}
	d.openForEdit(ad)
	if d.kind != dialogEditing || d.record == nil {
		t.Fatalf("edit open: %+v", d)
	}

	// Opening another dialog replaces the previous one wholesale; there is
	// no way to be editing and deleting at once.
	d.openForDelete(ad)
	if d.kind != dialogDeleting {
		t.Fatalf("kind = %v, want deleting", d.kind)
	}

	d.openForCreate()
	if d.kind != dialogCreating {
		t.Fatalf("kind = %v, want creating", d.kind)
	}
	if d.record != nil {
		t.Fatalf("create must not carry a record, got %v", d.record)
	}
}

func TestDialogState_CloseClearsRecord(t *testing.T) {
	var d dialogState
	d.openForPreview(model.Article{ID: "a-1"})
	d.close()
	if d.isOpen() || d.record != nil {
		t.Fatalf("close should clear everything: %+v", d)
	}
	d.close() // idempotent
	if d.isOpen() {
		t.Fatalf("double close reopened the dialog")
	}
}

func TestDialogKindString(t *testing.T) {
	cases := map[dialogKind]string{
		dialogClosed:     "closed",
		dialogCreating:   "creating",
		dialogEditing:    "editing",
		dialogDeleting:   "deleting",
		dialogPreviewing: "previewing",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}
