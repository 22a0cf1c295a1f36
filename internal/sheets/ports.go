package sheets

import (
	"context"

	"gagyebu/internal/core"
)

// Ports for outbound adapters.
type (
	// EntryMirror keeps a spreadsheet copy of ledger entries. Both
	// operations are idempotent so redelivered events are harmless.
	EntryMirror interface {
		AppendEntry(ctx context.Context, e core.Entry) error
		DeleteEntry(ctx context.Context, id int64) error
	}

	// EntryLister reads back the mirrored rows.
	EntryLister interface {
		ListEntries(ctx context.Context) ([]core.Entry, error)
	}
)
