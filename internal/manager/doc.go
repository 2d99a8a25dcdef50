// Package manager owns the serving lifecycle of one fitted artifact set. It
// is structured into small files by concern:
//
//   - manager.go: core Manager type, constructor, simple getters.
//   - config.go: Config and package defaults.
//   - types.go: State and Prediction.
//   - errors.go: ErrNotReady and helpers (IsNotReady, Outcome).
//   - load.go: Load (startup) and Reload (hot swap).
//   - watch.go: fsnotify-driven reloads.
//   - predict.go: Predict with the optional prediction cache.
//   - labels.go: encoding-table domains for interactive clients.
//   - status_report.go: Status for /status.
//   - metrics.go: prometheus collectors.
//
// The artifact set lives behind one atomic pointer. Serving paths load it
// once per call and never take a lock; a reload builds the new set off to the
// side and swaps it in as a unit.
package manager
