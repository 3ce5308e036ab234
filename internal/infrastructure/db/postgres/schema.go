package postgres

import _ "embed"

// Schema is the DDL for the patients table. It is applied by operators
// (see the "schema" command); the service never alters the schema itself.
//
//go:embed schema.sql
var Schema string
