// Package state holds every mutation of models.AppState.
//
// Each function takes the current snapshot and returns the next one. Maps and slices
// that change are copied first, so the previous snapshot stays valid for readers
// still holding it. Unknown ids are no-ops, never errors.
package state
