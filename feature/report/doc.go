// Package report archives the outcome of a reconciliation run as a
// JSON object in storage, keeping a history of what each run saw and
// decided. Uploading is best-effort: a failed archive never fails the
// run that produced it.
package report
