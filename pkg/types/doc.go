// Package types defines the Store, Table, and GameAdapter interfaces, the
// entity types shared across seasons, the transportable event document
// format, and the standard error types for the scoutbase storage system.
package types
