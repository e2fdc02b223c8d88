// Package record provides the typed genealogical record model for gedcheck.
//
// This package contains the Individual and Family record types, the Event
// attribute bundle, and the Store that owns every record once a document has
// been parsed. All other internal packages import record; record imports
// nothing internal.
//
// Key design constraints:
//   - Attributes are addressed through the closed Attr enumeration, never by
//     field name strings
//   - A Record carries its Kind, decided once when the record is created
//   - A Store is read-only after construction and safe for concurrent readers
//   - Lookups of unknown identifiers report absence, they never fail
package record
