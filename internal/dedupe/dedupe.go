package dedupe

// Package dedupe provides shared singleflight groups used to collapse
// concurrent requests for the same row. A player joining from two tabs at
// once must not create two player records.

import "golang.org/x/sync/singleflight"

// PlayerGroup deduplicates player registration keyed by "player:<key>".
var PlayerGroup singleflight.Group

// PlayerKey returns the singleflight key for a canonical player key.
func PlayerKey(key string) string { return "player:" + key }
