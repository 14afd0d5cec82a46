package tui

// Dialog state is a tagged union, not a pile of isOpen booleans: a panel's
// dialog is Closed, Creating, or holds exactly one selected record for
// editing/deleting/previewing. Two simultaneously-open dialogs cannot be
// represented.

type dialogKind int

const (
	dialogClosed dialogKind = iota
	dialogCreating
	dialogEditing
	dialogDeleting
	dialogPreviewing
)

func (k dialogKind) String() string {
	switch k {
	case dialogCreating:
		return "creating"
	case dialogEditing:
		return "editing"
	case dialogDeleting:
		return "deleting"
	case dialogPreviewing:
		return "previewing"
	default:
		return "closed"
	}
}

type dialogState struct {
	kind dialogKind
	// record is the selected record for editing/deleting/previewing; nil
	// while closed or creating.
	record any
}

func (d dialogState) isOpen() bool { return d.kind != dialogClosed }

// openForCreate opens the create dialog. Opening over an already-open dialog
// replaces it (the prior one closes first); the caller resets the form to
// schema defaults.
func (d *dialogState) openForCreate() {
	d.kind = dialogCreating
	d.record = nil
}

func (d *dialogState) openForEdit(record any) {
	d.kind = dialogEditing
	d.record = record
}

func (d *dialogState) openForDelete(record any) {
	d.kind = dialogDeleting
	d.record = record
}

func (d *dialogState) openForPreview(record any) {
	d.kind = dialogPreviewing
	d.record = record
}

// close always clears the selected record. Idempotent; runs on cancel and on
// successful submit alike; success does not skip the reset.
func (d *dialogState) close() {
	d.kind = dialogClosed
	d.record = nil
}
