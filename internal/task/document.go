package task

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

// DocumentVersion is written into every stored document.
const DocumentVersion = 1

// document is the serialized form of the collection. NextID is stored so
// that ids are never reused after the newest task is deleted.
//
// Task ids stop one short of math.MaxInt64 so that the id after the highest
// stored one always fits in NextID.
type document struct {
	Version int    `json:"version"`
	NextID  int64  `json:"next_id"`
	Tasks   []Task `json:"tasks"`
}

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "task": {
      "type": "object",
      "required": ["id", "text", "completed"],
      "properties": {
        "id": {"type": "integer", "minimum": 1, "maximum": 9223372036854775806},
        "text": {"type": "string"},
        "completed": {"type": "boolean"}
      }
    },
    "tasks": {
      "type": "array",
      "items": {"$ref": "#/definitions/task"}
    }
  },
  "oneOf": [
    {"$ref": "#/definitions/tasks"},
    {
      "type": "object",
      "required": ["version", "next_id", "tasks"],
      "properties": {
        "version": {"const": 1},
        "next_id": {"type": "integer", "minimum": 1, "maximum": 9223372036854775807},
        "tasks": {"$ref": "#/definitions/tasks"}
      }
    }
  ]
}`

var schema = jsonschema.MustCompileString("tasks.schema.json", schemaJSON)

// encode serializes tasks and nextID.
func encode(tasks []Task, nextID int64) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(document{Version: DocumentVersion, NextID: nextID, Tasks: tasks})
	if err != nil {
		return "", fmt.Errorf("marshal tasks: %w", err)
	}
	return string(data), nil
}

// decode parses a stored value. It accepts the current document format and
// the legacy bare array of tasks, and returns the tasks in stored order with
// the next id to assign.
func decode(raw string) ([]Task, int64, error) {
	var v any
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return nil, 0, fmt.Errorf("parse tasks: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return nil, 0, fmt.Errorf("validate tasks: %w", err)
	}

	var tasks []Task
	var nextID int64
	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return nil, 0, fmt.Errorf("parse tasks: %w", err)
		}
	} else {
		var doc document
		if err := json.Unmarshal(trimmed, &doc); err != nil {
			return nil, 0, fmt.Errorf("parse tasks: %w", err)
		}
		tasks = doc.Tasks
		nextID = doc.NextID
	}

	seen := make(map[int64]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			return nil, 0, fmt.Errorf("duplicate task id %d", t.ID)
		}
		seen[t.ID] = true
		if t.ID >= nextID {
			nextID = t.ID + 1
		}
	}
	if nextID < 1 {
		nextID = 1
	}
	return tasks, nextID, nil
}
