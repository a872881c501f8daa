// Package taskfile loads planning task sets from JSON files or external
// commands.
package taskfile

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"

	"github.com/joshharrison/latepack/internal/task"
)

// taskSchema is the shape every task record must satisfy before field
// extraction. Status spellings and dependency key aliases are resolved after
// validation, so the schema stays permissive about them.
const taskSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "deadline", "duration"],
    "properties": {
      "id": {"type": ["string", "integer"]},
      "title": {"type": "string"},
      "deadline": {"type": "number"},
      "duration": {"type": "number"},
      "priority": {"type": "integer", "minimum": 1, "maximum": 5},
      "status": {"type": "string"},
      "depends_on": {"type": "array", "items": {"type": ["string", "integer"]}},
      "deps": {"type": "array", "items": {"type": ["string", "integer"]}},
      "dependencies": {"type": "array", "items": {"type": ["string", "integer"]}}
    }
  }
}`

var schema = jsonschema.MustCompileString("tasks.schema.json", taskSchema)

// Load reads a JSON task array from a file.
func Load(path string) ([]*task.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return Parse(data)
}

// LoadCommand runs an external command and parses its output as a task array.
// Any task tracker that can list tasks as JSON works as a source.
func LoadCommand(bin string, args ...string) ([]*task.Task, error) {
	cmd := exec.Command(bin, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w\n%s", bin, strings.Join(args, " "), err, string(out))
	}
	return Parse(out)
}

// Parse validates raw JSON against the task schema and extracts the task set.
// Duplicate ids are rejected here; the core assumes unique ids. Dependency
// lists may use any of the depends_on/deps/dependencies keys, and ids may be
// numbers or strings.
func Parse(data []byte) ([]*task.Task, error) {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse task JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("task file schema: %w", err)
	}

	var tasks []*task.Task
	var loadErr error
	seen := make(map[string]bool)

	gjson.ParseBytes(data).ForEach(func(_, item gjson.Result) bool {
		id := item.Get("id").String()
		if seen[id] {
			loadErr = fmt.Errorf("duplicate task id %q", id)
			return false
		}
		seen[id] = true

		status := task.StatusTodo
		if s := item.Get("status"); s.Exists() {
			st, err := task.ParseStatus(s.String())
			if err != nil {
				loadErr = fmt.Errorf("task %q: %w", id, err)
				return false
			}
			status = st
		}

		priority := 3
		if p := item.Get("priority"); p.Exists() {
			priority = int(p.Int())
		}

		tasks = append(tasks, &task.Task{
			ID:        id,
			Title:     item.Get("title").String(),
			Deadline:  item.Get("deadline").Float(),
			Duration:  item.Get("duration").Float(),
			Priority:  priority,
			Status:    status,
			DependsOn: depList(item),
		})
		return true
	})

	if loadErr != nil {
		return nil, loadErr
	}
	return tasks, nil
}

// depList reads the first dependency key alias present on the record.
func depList(item gjson.Result) []string {
	for _, key := range []string{"depends_on", "deps", "dependencies"} {
		if arr := item.Get(key); arr.Exists() {
			var deps []string
			arr.ForEach(func(_, dep gjson.Result) bool {
				deps = append(deps, dep.String())
				return true
			})
			return deps
		}
	}
	return nil
}
