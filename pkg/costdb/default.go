package costdb

import (
	_ "embed"
	"sync"
)

//go:embed data/block_costs.json
var defaultData []byte

var (
	defaultOnce sync.Once
	defaultDB   *DB
)

// Default returns the embedded vanilla cost table.
// The table is parsed once and shared; it must not be mutated.
func Default() *DB {
	defaultOnce.Do(func() {
		db, err := Parse(defaultData)
		if err != nil {
			panic("embedded cost table is malformed: " + err.Error())
		}
		defaultDB = db
	})
	return defaultDB
}
