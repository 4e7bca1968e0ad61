// rules/loader.go
package rules

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	apperrors "github.com/joshmo01/FX-MS/errors"
	logger "github.com/joshmo01/FX-MS/logging"
	"github.com/joshmo01/FX-MS/model"
	"github.com/joshmo01/FX-MS/util"
)

// Loader reads rule files from a directory and installs them into the
// repository. Malformed rules are skipped with a warning rather than failing
// the whole load, so one bad rule cannot take the engine down.
type Loader struct {
	dir        string
	repo       *Repository
	validation *util.ValidationUtil
}

func NewLoader(dir string, repo *Repository, validation *util.ValidationUtil) *Loader {
	return &Loader{dir: dir, repo: repo, validation: validation}
}

// Load parses every *.json file in the rules directory (sorted by name so
// load order is deterministic) and atomically replaces the active rule set.
func (l *Loader) Load() (int, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", apperrors.ErrRuleReloadFailed, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	var loaded []*model.Rule
	seen := make(map[string]bool)
	for _, name := range files {
		path := filepath.Join(l.dir, name)
		rulesInFile, err := l.loadFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable rule file",
				zap.String("file", path),
				zap.Error(err))
			continue
		}
		for _, rule := range rulesInFile {
			if seen[rule.ID] {
				logger.Warn("Skipping duplicate rule ID",
					zap.String("ruleID", rule.ID),
					zap.String("file", path))
				continue
			}
			if err := l.validation.ValidateRule(rule); err != nil {
				logger.Warn("Skipping invalid rule",
					zap.String("ruleID", rule.ID),
					zap.String("file", path),
					zap.Error(err))
				continue
			}
			seen[rule.ID] = true
			loaded = append(loaded, rule)
		}
	}

	l.repo.Replace(loaded)
	logger.Info("Rule set loaded",
		zap.Int("rules", len(loaded)),
		zap.Int("files", len(files)),
		zap.String("dir", l.dir))
	return len(loaded), nil
}

// loadFile accepts either a JSON array of rules or an object with a "rules"
// array.
func (l *Loader) loadFile(path string) ([]*model.Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var asList []*model.Rule
	if err := json.Unmarshal(data, &asList); err == nil {
		return asList, nil
	}

	var asDoc struct {
		Rules []*model.Rule `json:"rules"`
	}
	if err := json.Unmarshal(data, &asDoc); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidRuleData, err)
	}
	return asDoc.Rules, nil
}
