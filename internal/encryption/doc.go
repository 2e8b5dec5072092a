// Package encryption applies the resource cipher to a resolved set of files.
// Files are transformed in memory first (optionally in parallel) and only
// written back, each with an atomic rename, once every file succeeded.
package encryption
