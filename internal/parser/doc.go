// Package parser folds leveled, tagged GEDCOM lines into record.Store values.
//
// Parsing happens in two steps:
//
//  1. Classify assigns every raw line one of four shapes (argument
//     attribute, no-argument attribute, record start, structural) or marks
//     it unrecognized. Shapes are tried in that fixed order and the first
//     match wins.
//  2. Builder consumes classified lines in order, tracking the open record
//     and the open event attribute that level-2 lines attach to.
//
// The fold is single-pass with no lookahead. Unrecognized lines are skipped,
// never fatal: one malformed line does not invalidate the document.
//
// # Usage
//
//	store := parser.Parse([]string{
//	    "0 I1 INDI",
//	    "1 NAME John /Doe/",
//	    "1 BIRT",
//	    "2 DATE 1 JAN 1980",
//	})
//	ind, _ := store.FindIndividual("I1")
package parser
