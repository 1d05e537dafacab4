// Package aggregates implements the ledger aggregates on gorm. Each write runs
// as a chain of guarded UPDATEs inside one TxRunner transaction.
package aggregates
