package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gagyebu/internal/amqp"
	"gagyebu/internal/sheets"
	"gagyebu/internal/storage"
)

// MirrorWorker copies ledger entries into a spreadsheet as entry events arrive.
type MirrorWorker struct {
	store  storage.EntryStore
	mirror sheets.EntryMirror
}

func NewMirrorWorker(store storage.EntryStore, mirror sheets.EntryMirror) *MirrorWorker {
	return &MirrorWorker{store: store, mirror: mirror}
}

// HandleEntryEvent applies one entry event to the mirror. Returning an error
// asks the broker to redeliver.
func (w *MirrorWorker) HandleEntryEvent(ctx context.Context, msg *amqp.EntryEventMessage) error {
	slog.InfoContext(ctx, "Processing entry event",
		"type", msg.Type,
		"id", msg.EntryID,
		"user_id", msg.UserID)

	switch msg.Type {
	case amqp.EventEntryCreated:
		return w.mirrorCreated(ctx, msg.EntryID)
	case amqp.EventEntryDeleted:
		if err := w.mirror.DeleteEntry(ctx, msg.EntryID); err != nil {
			return fmt.Errorf("delete entry %d from mirror: %w", msg.EntryID, err)
		}
		return nil
	default:
		slog.WarnContext(ctx, "Ignoring unknown entry event", "type", msg.Type, "id", msg.EntryID)
		return nil
	}
}

func (w *MirrorWorker) mirrorCreated(ctx context.Context, id int64) error {
	e, err := w.store.GetEntry(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted before we got here; the delete event follows.
		slog.InfoContext(ctx, "Entry no longer exists, skipping mirror", "id", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get entry from storage: %w", err)
	}

	if err := w.mirror.AppendEntry(ctx, e); err != nil {
		return fmt.Errorf("append entry %d to mirror: %w", id, err)
	}
	return nil
}

// ReconcileResult counts the repairs made by Reconcile.
type ReconcileResult struct {
	Appended int
	Removed  int
}

// Reconcile repairs drift between the store and the mirror for the given
// users, covering events lost while the worker was down. Mirrored rows whose
// entry no longer exists are removed; stored entries missing from the
// mirror are appended.
func (w *MirrorWorker) Reconcile(ctx context.Context, lister sheets.EntryLister, userIDs []string) (ReconcileResult, error) {
	var res ReconcileResult

	rows, err := lister.ListEntries(ctx)
	if err != nil {
		return res, fmt.Errorf("list mirrored entries: %w", err)
	}

	mirrored := make(map[int64]bool, len(rows))
	users := make(map[string]bool)
	for _, id := range userIDs {
		users[id] = true
	}
	for _, row := range rows {
		mirrored[row.ID] = true
		users[row.UserID] = true

		_, err := w.store.GetEntry(ctx, row.ID)
		if errors.Is(err, storage.ErrNotFound) {
			if err := w.mirror.DeleteEntry(ctx, row.ID); err != nil {
				return res, fmt.Errorf("remove stale row %d: %w", row.ID, err)
			}
			res.Removed++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("get entry %d: %w", row.ID, err)
		}
	}

	for userID := range users {
		entries, err := w.store.ListByUser(ctx, userID)
		if err != nil {
			return res, fmt.Errorf("list entries for %s: %w", userID, err)
		}
		for _, e := range entries {
			if mirrored[e.ID] {
				continue
			}
			if err := w.mirror.AppendEntry(ctx, e); err != nil {
				return res, fmt.Errorf("append entry %d: %w", e.ID, err)
			}
			res.Appended++
		}
	}

	slog.InfoContext(ctx, "Mirror reconciled",
		"rows", len(rows),
		"appended", res.Appended,
		"removed", res.Removed)
	return res, nil
}
