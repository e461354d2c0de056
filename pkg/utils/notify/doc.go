// Package notify writes formatted notifications for CLI users.
//
// [WriteMessage] and its helpers (Errorf, Warningf, Successf, ...) print one line per
// message with a type-specific symbol and color: success (✔), error (✗), warning (⚠),
// info (ℹ), activity (►), generate (✚) and emoji-prefixed titles.
//
// [Spinner] is the single progress indicator shown while a project is generated. It
// animates in place on a terminal and degrades to plain state-change lines elsewhere.
//
// [StageSeparatingWriter] inserts a blank line before each title after the first one.
package notify
