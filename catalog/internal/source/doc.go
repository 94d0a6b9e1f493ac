// Package source resolves a dataset resource name to something that can be
// opened as a JSON byte stream.
//
// Resolution order (Resolve):
//   - s3://bucket/key            — S3 object fetched with GetObject
//   - http:// or https:// URL    — fetched with GET
//   - an existing local path     — File
//   - a name in the bundled data — Embedded (brickset.json ships in the binary)
//   - anything else              — File, so that opening reports not-found
//
// Every Source returned by Resolve decompresses gzip streams according to
// the configured mode (see config.DatasetConfig.Gzip).
package source
