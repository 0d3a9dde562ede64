// Package model defines the report types shared by htmlmend's packages.
//
// This package contains the following main types:
//   - PairReport: non-ASCII pair counts of a document
//   - ContextReport: context around probe sequences
//   - StripResult: what a strip removed
//   - PairComparison: the change between two saved pair reports
//   - MendReport: the combined result of a mend run
//
// All types serialize to JSON for report output and history storage.
package model
