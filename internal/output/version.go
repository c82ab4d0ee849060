package output

// SchemaVersion is the current version of the NDJSON entry schema.
// Increment this when making breaking changes to the line format.
const SchemaVersion = 1
