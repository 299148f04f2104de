// Package schema derives generic create/edit record schemas from model
// descriptors.
//
// A Schema mirrors a descriptor's field list one-to-one and knows how
// to validate and coerce submitted string values into typed values
// ready for persistence. It is the single form layer shared by the
// server-rendered UI and the REST API; no per-model form code exists
// anywhere.
package schema
