package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/biogenesis/config"
)

// DeathRecord is one row of deaths.csv.
type DeathRecord struct {
	RunID      string  `csv:"run_id"`
	Generation int     `csv:"generation"`
	Name       string  `csv:"name"`
	Age        int     `csv:"age"`
	Fitness    float64 `csv:"fitness"`
	Cause      string  `csv:"cause"`
	Sequence   string  `csv:"sequence"`
}

// csvLog appends records to one CSV file, writing the header on first use.
type csvLog struct {
	file          *os.File
	headerWritten bool
}

func openCSVLog(dir, name string) (*csvLog, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvLog{file: f}, nil
}

// write marshals a slice of csv-tagged structs.
func (l *csvLog) write(records any) error {
	if !l.headerWritten {
		if err := gocsv.Marshal(records, l.file); err != nil {
			return err
		}
		l.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, l.file)
}

// OutputManager handles structured experiment output with CSV logging.
// CSV files are created on their first write, so a run that never records
// deaths leaves no deaths.csv behind.
type OutputManager struct {
	dir  string
	logs map[string]*csvLog
	// order keeps Close deterministic
	order []string
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled). All methods are no-ops on nil.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &OutputManager{dir: dir, logs: make(map[string]*csvLog)}, nil
}

// WriteRecords appends a slice of csv-tagged structs to the named CSV file.
// The header comes from the first write; later writes must use the same type.
func (om *OutputManager) WriteRecords(name string, records any) error {
	if om == nil {
		return nil
	}
	l, ok := om.logs[name]
	if !ok {
		var err error
		if l, err = openCSVLog(om.dir, name); err != nil {
			return err
		}
		om.logs[name] = l
		om.order = append(om.order, name)
	}
	return l.write(records)
}

// WriteConfig saves the current configuration as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	return om.WriteConfigAs("config.yaml", cfg)
}

// WriteConfigAs saves cfg as YAML under the given file name.
func (om *OutputManager) WriteConfigAs(name string, cfg *config.Config) error {
	if om == nil {
		return nil
	}
	if err := cfg.WriteYAML(filepath.Join(om.dir, name)); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// WriteGeneration writes a generation stats record to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}
	if err := om.WriteRecords("generations.csv", []GenerationStats{stats}); err != nil {
		return fmt.Errorf("writing generation: %w", err)
	}
	return nil
}

// WriteDeaths writes death records to deaths.csv.
func (om *OutputManager) WriteDeaths(records []DeathRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	if err := om.WriteRecords("deaths.csv", records); err != nil {
		return fmt.Errorf("writing deaths: %w", err)
	}
	return nil
}

// WriteBookmark writes a bookmark record to bookmarks.csv.
func (om *OutputManager) WriteBookmark(b Bookmark) error {
	if om == nil {
		return nil
	}
	if err := om.WriteRecords("bookmarks.csv", []Bookmark{b}); err != nil {
		return fmt.Errorf("writing bookmark: %w", err)
	}
	return nil
}

// WriteHallOfFame saves the hall of fame as JSON.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}

	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "hall_of_fame.json"), data, 0644); err != nil {
		return fmt.Errorf("writing hall_of_fame.json: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, name := range om.order {
		if err := om.logs[name].file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
