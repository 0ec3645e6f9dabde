package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"stock-backtest/internal/api/models"
	"stock-backtest/internal/config"

	"github.com/gin-gonic/gin"
)

// StrategyDir resolves the preset directory from STRATEGY_DIR, falling back
// to examples/strategies under the working directory.
func StrategyDir() string {
	dir := os.Getenv("STRATEGY_DIR")
	if dir == "" {
		wd, err := os.Getwd()
		if err == nil {
			dir = filepath.Join(wd, "examples", "strategies")
		} else {
			dir = "./examples/strategies"
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

// presetPath maps a preset ID such as "golden_cross" to its file.
// IDs are plain file stems; anything with a path separator is rejected.
func presetPath(dir, id string) (string, error) {
	id = strings.TrimSuffix(strings.TrimSpace(id), ".yaml")
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("invalid strategy_file %q", id)
	}
	return filepath.Join(dir, id+".yaml"), nil
}

// PresetHandler lists the strategy presets shipped as YAML files.
type PresetHandler struct {
	dir string
}

func NewPresetHandler(dir string) *PresetHandler {
	log.Printf("PresetHandler: Using strategy directory: %s", dir)
	return &PresetHandler{dir: dir}
}

// ListPresets handles GET /api/v1/strategies/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []models.StrategyPreset{}

	entries, err := os.ReadDir(h.dir)
	if err != nil {
		log.Printf("PresetHandler: Failed to read strategy directory %s: %v", h.dir, err)
		c.JSON(http.StatusOK, gin.H{"presets": presets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(h.dir, entry.Name())
		preset, err := config.LoadPreset(path)
		if err != nil {
			log.Printf("PresetHandler: Failed to load strategy file %s: %v", path, err)
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".yaml")
		name := preset.Name
		if name == "" {
			name = id
		}
		presets = append(presets, models.StrategyPreset{
			ID:       id,
			Name:     name,
			Strategy: preset.Strategy.Name,
			Params:   preset.Strategy.Params,
		})
	}

	c.JSON(http.StatusOK, gin.H{"presets": presets})
}
