// Package scraper defines the producer contract and assembles the
// observed batch for one reconciliation run.
//
// A Batch tracks completeness: when any producer fails, the run is
// partial and the reconciliation engine must skip removal detection,
// otherwise listings missed by the failed producer would be tombstoned
// as if they had left the market.
package scraper
