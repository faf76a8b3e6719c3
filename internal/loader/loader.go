package loader

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/zerr"

	"github.com/napolitain/solver-slayer/internal/models"
)

// TaskFile is a decoded task menu with its optimizer settings.
type TaskFile struct {
	Settings models.Settings
	Tasks    []*models.Task
}

// taskFileDTO is the shared on-disk shape of YAML and TOML task files
type taskFileDTO struct {
	TaskPointRevenue float64   `yaml:"task_point_revenue" toml:"task_point_revenue"`
	BlockSlots       int       `yaml:"block_slots" toml:"block_slots"`
	SkipPrice        *float64  `yaml:"skip_price" toml:"skip_price"`
	Tasks            []taskDTO `yaml:"tasks" toml:"tasks"`
}

// taskDTO is one task entry. Exactly one of hours (fixed duration) or the
// min_hours/max_hours pair (boss range) is given; weight defaults to 1.
type taskDTO struct {
	Name         string   `yaml:"name" toml:"name"`
	ValuePerHour float64  `yaml:"value_per_hour" toml:"value_per_hour"`
	Weight       *float64 `yaml:"weight" toml:"weight"`
	Boss         bool     `yaml:"boss" toml:"boss"`
	Hours        *float64 `yaml:"hours" toml:"hours"`
	MinHours     *float64 `yaml:"min_hours" toml:"min_hours"`
	MaxHours     *float64 `yaml:"max_hours" toml:"max_hours"`
}

// Load reads a task file, picking the decoder from the file extension
// (.yaml, .yml, .toml or .json).
func Load(path string) (*TaskFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read task file"), "path", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".toml":
		return ParseTOML(data)
	case ".json":
		return ParseJSON(data)
	default:
		return nil, zerr.With(zerr.Wrap(models.ErrUnsupportedFormat, "expected .yaml, .yml, .toml or .json"), "extension", ext)
	}
}

func (d taskFileDTO) toTaskFile() (*TaskFile, error) {
	settings := models.Settings{
		TaskPointRevenue: d.TaskPointRevenue,
		BlockSlots:       d.BlockSlots,
		SkipPrice:        models.DefaultSkipPrice,
	}
	if d.SkipPrice != nil {
		settings.SkipPrice = *d.SkipPrice
	}

	tasks := make([]*models.Task, 0, len(d.Tasks))
	for _, td := range d.Tasks {
		task, err := td.toTask()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return newTaskFile(settings, tasks)
}

func (td taskDTO) toTask() (*models.Task, error) {
	weight := 1.0
	if td.Weight != nil {
		weight = *td.Weight
	}

	var minHours, maxHours float64
	switch {
	case td.Hours != nil && (td.MinHours != nil || td.MaxHours != nil):
		return nil, zerr.With(fieldError("hours", "give either hours or min_hours and max_hours"), "task_name", td.Name)
	case td.Hours != nil:
		minHours, maxHours = *td.Hours, *td.Hours
	case td.MinHours != nil && td.MaxHours != nil:
		minHours, maxHours = *td.MinHours, *td.MaxHours
	case td.MinHours != nil:
		return nil, zerr.With(fieldError("max_hours", "min_hours needs max_hours"), "task_name", td.Name)
	case td.MaxHours != nil:
		return nil, zerr.With(fieldError("min_hours", "max_hours needs min_hours"), "task_name", td.Name)
	}

	return models.NewTask(td.Name, td.ValuePerHour, weight, minHours, maxHours, td.Boss)
}

// newTaskFile validates the assembled settings and menu.
func newTaskFile(settings models.Settings, tasks []*models.Task) (*TaskFile, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if err := models.CheckUniqueNames(tasks); err != nil {
		return nil, err
	}
	return &TaskFile{Settings: settings, Tasks: tasks}, nil
}
