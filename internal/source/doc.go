// Package source provides the fetch collaborators that resolve a source
// file identifier into a decoded wide table: a local-directory fetcher for
// mounted or synced data, and an HTTP fetcher with client-side rate limiting
// for remote buckets. Tables are decoded by file extension, CSV by default
// and XLSX via excelize.
package source
