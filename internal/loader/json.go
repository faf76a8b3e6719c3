package loader

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"
	"go.trai.ch/zerr"

	"github.com/napolitain/solver-slayer/internal/models"
)


// ParseJSON decodes a JSON task file. Unknown keys are ignored, so request
// bodies that embed a task file with extra fields parse the same way.
// Known keys must carry the JSON type the YAML and TOML decoders require.
func ParseJSON(data []byte) (*TaskFile, error) {
	if !gjson.ValidBytes(data) {
		return nil, zerr.With(zerr.Wrap(models.ErrInvalidTaskFile, "malformed JSON"), "format", "json")
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, zerr.With(zerr.Wrap(models.ErrInvalidTaskFile, "expected a JSON object"), "format", "json")
	}

	settings := models.Settings{SkipPrice: models.DefaultSkipPrice}

	revenue, _, err := JSONNumber(root, "task_point_revenue")
	if err != nil {
		return nil, err
	}
	settings.TaskPointRevenue = revenue

	// Negative slots are left to Settings.Validate, as in YAML and TOML.
	slots, _, err := JSONInt(root, "block_slots", math.MinInt32, math.MaxInt32)
	if err != nil {
		return nil, err
	}
	settings.BlockSlots = slots

	if skip, ok, err := JSONNumber(root, "skip_price"); err != nil {
		return nil, err
	} else if ok {
		settings.SkipPrice = skip
	}

	list := root.Get("tasks")
	if present(list) && !list.IsArray() {
		return nil, fieldError("tasks", "expected an array")
	}

	var tasks []*models.Task
	for i, v := range list.Array() {
		task, err := parseJSONTask(v, fmt.Sprintf("tasks.%d", i))
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return newTaskFile(settings, tasks)
}

func parseJSONTask(v gjson.Result, path string) (*models.Task, error) {
	if !v.IsObject() {
		return nil, fieldError(path, "expected an object")
	}

	var td taskDTO
	if name := v.Get("name"); present(name) {
		if name.Type != gjson.String {
			return nil, fieldError(path+".name", "expected a string")
		}
		td.Name = name.String()
	}

	value, _, err := number(v, "value_per_hour", path+".value_per_hour")
	if err != nil {
		return nil, err
	}
	td.ValuePerHour = value

	if boss := v.Get("boss"); present(boss) {
		if boss.Type != gjson.True && boss.Type != gjson.False {
			return nil, fieldError(path+".boss", "expected a boolean")
		}
		td.Boss = boss.Bool()
	}

	for _, f := range []struct {
		key string
		dst **float64
	}{
		{"weight", &td.Weight},
		{"hours", &td.Hours},
		{"min_hours", &td.MinHours},
		{"max_hours", &td.MaxHours},
	} {
		n, ok, err := number(v, f.key, path+"."+f.key)
		if err != nil {
			return nil, err
		}
		if ok {
			*f.dst = &n
		}
	}

	return td.toTask()
}

// JSONNumber reads an optional numeric field of obj. Absent and null
// fields report ok=false; any other non-number is an ErrInvalidTaskFile.
func JSONNumber(obj gjson.Result, key string) (float64, bool, error) {
	return number(obj, key, key)
}

// JSONInt reads an optional whole-number field of obj within [lo, hi].
func JSONInt(obj gjson.Result, key string, lo, hi int) (int, bool, error) {
	f, ok, err := JSONNumber(obj, key)
	if err != nil || !ok {
		return 0, ok, err
	}
	if f != math.Trunc(f) {
		return 0, false, fieldError(key, "expected a whole number")
	}
	if f < float64(lo) || f > float64(hi) {
		err := zerr.With(fieldError(key, "out of range"), "min", lo)
		return 0, false, zerr.With(err, "max", hi)
	}
	return int(f), true, nil
}

func number(obj gjson.Result, key, field string) (float64, bool, error) {
	r := obj.Get(key)
	if !present(r) {
		return 0, false, nil
	}
	if r.Type != gjson.Number {
		return 0, false, fieldError(field, "expected a number")
	}
	return r.Float(), true, nil
}

func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

func fieldError(field, reason string) error {
	return zerr.With(zerr.Wrap(models.ErrInvalidTaskFile, reason), "field", field)
}
