// refdata/loader.go
package refdata

import (
	"encoding/json"
	"os"
	"path/filepath"

	logger "github.com/joshmo01/FX-MS/logging"
)

const snapshotFile = "refdata.json"

// Load reads reference data from dir/refdata.json, filling any section the
// file omits from the built-in defaults. A missing file yields the defaults;
// a malformed file is an error.
func Load(dir string) (*Snapshot, error) {
	defaults := DefaultSnapshot()
	if dir == "" {
		return defaults, nil
	}

	path := filepath.Join(dir, snapshotFile)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("No reference data file at " + path + ", using built-in defaults")
			return defaults, nil
		}
		return nil, err
	}

	var loaded Snapshot
	if err := json.Unmarshal(data, &loaded); err != nil {
		logger.Error("Failed to parse reference data file " + path + ": " + err.Error())
		return nil, err
	}

	merge(&loaded, defaults)
	loaded.buildIndexes()
	logger.Info("Loaded reference data from " + path)
	return &loaded, nil
}

// merge copies default sections into any the file left empty.
func merge(dst, def *Snapshot) {
	if len(dst.Providers) == 0 {
		dst.Providers = def.Providers
	}
	if len(dst.CBDCs) == 0 {
		dst.CBDCs = def.CBDCs
	}
	if len(dst.Stablecoins) == 0 {
		dst.Stablecoins = def.Stablecoins
	}
	if len(dst.Rates) == 0 {
		dst.Rates = def.Rates
	}
	if len(dst.Segments) == 0 {
		dst.Segments = def.Segments
	}
	if len(dst.AmountTiers) == 0 {
		dst.AmountTiers = def.AmountTiers
	}
	if len(dst.CurrencyMarkups) == 0 {
		dst.CurrencyMarkups = def.CurrencyMarkups
	}
	if len(dst.CategoryMembers) == 0 {
		dst.CategoryMembers = def.CategoryMembers
	}
	if len(dst.STPThresholds) == 0 {
		dst.STPThresholds = def.STPThresholds
	}
}
