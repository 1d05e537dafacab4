// Package aggregates declares the ledger write boundaries: the settlement of a
// job and the client deposit, plus the coded errors both return.
package aggregates
