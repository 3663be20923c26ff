// Package files owns the on-disk state of the application: the persisted
// definitions workbook and generated report files.
//
// RosterStore serializes access to the saved workbook. Uploads are validated
// by loading them before anything touches disk, and every write goes through
// WriteFileAtomic so readers never observe a partial file.
//
//	store := files.NewRosterStore(paths, dataprocessing.NewRosterLoader(logger), logger)
//	summary, err := store.Save(ctx, upload)
//	roster, err := store.Load(ctx)
package files
