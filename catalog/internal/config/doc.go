// Package config loads the catalog configuration from the `catalog:` section
// of a YAML file.
//
// Config fields:
//   - Dataset.Resource  — dataset name: "brickset.json" (bundled), a file
//     path, an http(s):// URL or s3://bucket/key (default "brickset.json")
//   - Dataset.Gzip      — auto | true | false (default auto)
//   - Dataset.Watch     — reload the dataset when its file changes
//   - Dataset.S3        — region, endpoint override and path-style addressing
//   - HTTP.Port         — port for the read API and /metrics (default 8080)
//   - Log.Level         — debug | info | warn | error (default info)
//
// Load(path) applies defaults before unmarshalling, then validates.
// Default() returns the same defaults for callers running without a file.
package config
