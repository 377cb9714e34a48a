package gameconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lk2023060901/xdooria-progression/pkg/logger"
)

const (
	racesFile           = "races.json"
	transformationsFile = "transformations.json"
)

type raceRow struct {
	Code string `json:"code"`
	Race
}

type transformationRow struct {
	ID string `json:"id"`
	Transformation
}

// LoadTables 从 DataDir 读取表数据并合并进规则，缺失的表文件视为空表
func LoadTables(r *Rules, l logger.Logger) error {
	if r.DataDir == "" {
		return nil
	}

	var races []raceRow
	if err := readTable(filepath.Join(r.DataDir, racesFile), &races, l); err != nil {
		return err
	}
	for _, row := range races {
		if row.Code == "" {
			return fmt.Errorf("%s: race row without code", racesFile)
		}
		r.Races[strings.ToUpper(row.Code)] = row.Race
	}

	var trans []transformationRow
	if err := readTable(filepath.Join(r.DataDir, transformationsFile), &trans, l); err != nil {
		return err
	}
	for _, row := range trans {
		if row.ID == "" {
			return fmt.Errorf("%s: transformation row without id", transformationsFile)
		}
		r.Transformations[strings.ToUpper(row.ID)] = row.Transformation
	}

	l.Info("game tables loaded",
		"data_dir", r.DataDir,
		"races", len(r.Races),
		"transformations", len(r.Transformations),
	)
	return r.Validate()
}

func readTable(path string, dest any, l logger.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			l.Warn("optional table file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("failed to read table file %s: %w", path, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal table file %s: %w", path, err)
	}
	return nil
}
