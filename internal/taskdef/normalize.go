package taskdef

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// RemovedFields are assigned by the registry when a revision is registered
// and are rejected when the descriptor is submitted again.
var RemovedFields = []string{
	"taskDefinitionArn",
	"revision",
	"status",
	"requiresAttributes",
	"placementConstraints",
	"compatibilities",
	"registeredAt",
	"registeredBy",
	"deregisteredAt",
}

const (
	ContainerDefinitionsKey = "containerDefinitions"
	CPUKey                  = "cpu"
	EnvironmentKey          = "environment"

	TargetVarName  = "NEXT_PUBLIC_API_URL"
	TargetVarValue = "https://api.zimmzimmgames.com"
)

// Correction records one environment variable overwritten in the first container.
type Correction struct {
	// Index is the position of the variable in the environment list
	Index int

	Name     string
	Previous string
	Value    string
}

// Report describes what Normalize changed.
type Report struct {
	// RemovedFields lists the top-level keys that were present and removed, in removal order
	RemovedFields []string

	// RemovedCPU is true when the first container carried a cpu key
	RemovedCPU bool

	Corrections []Correction
}

// Changed reports whether the document was modified at all.
func (r *Report) Changed() bool {
	return len(r.RemovedFields) > 0 || r.RemovedCPU || len(r.Corrections) > 0
}

// Normalize strips registry-assigned fields from doc and fixes the API URL
// of its first container. Missing keys are skipped; only a container section
// with the wrong shape is an error.
func Normalize(doc *Document) (*Report, error) {
	report := &Report{}

	for _, field := range RemovedFields {
		removed, err := doc.Delete(field)
		if err != nil {
			return nil, err
		}
		if removed {
			report.RemovedFields = append(report.RemovedFields, field)
		}
	}

	// Edits land on the first occurrence while JSON decoders keep the last,
	// so a repeated container list cannot be fixed reliably.
	if n := doc.Count(ContainerDefinitionsKey); n > 1 {
		return nil, malformed("%s appears %d times", ContainerDefinitionsKey, n)
	}

	defs := doc.Get(ContainerDefinitionsKey)
	if !defs.Exists() {
		return report, nil
	}
	if !defs.IsArray() {
		return nil, malformed("%s must be an array, got %s", ContainerDefinitionsKey, describe(defs))
	}
	containers := defs.Array()
	if len(containers) == 0 {
		return report, nil
	}
	if !containers[0].IsObject() {
		return nil, malformed("%s[0] must be an object, got %s", ContainerDefinitionsKey, describe(containers[0]))
	}

	removed, err := doc.Delete(firstContainerPath(CPUKey))
	if err != nil {
		return nil, err
	}
	report.RemovedCPU = removed

	corrections, err := fixEnvironment(doc)
	if err != nil {
		return nil, err
	}
	report.Corrections = corrections

	return report, nil
}

// fixEnvironment overwrites the value of every target variable in the first
// container's environment list.
func fixEnvironment(doc *Document) ([]Correction, error) {
	env := doc.Get(firstContainerPath(EnvironmentKey))
	if !env.Exists() {
		return nil, nil
	}
	if !env.IsArray() {
		return nil, malformed("%s[0].%s must be an array, got %s", ContainerDefinitionsKey, EnvironmentKey, describe(env))
	}

	var corrections []Correction
	for i, entry := range env.Array() {
		if !entry.IsObject() {
			return nil, malformed("%s[0].%s[%d] must be an object, got %s", ContainerDefinitionsKey, EnvironmentKey, i, describe(entry))
		}
		name := entry.Get("name")
		if name.Type != gjson.String || name.Str != TargetVarName {
			continue
		}

		path := firstContainerPath(fmt.Sprintf("%s.%d.value", EnvironmentKey, i))
		if err := doc.SetString(path, TargetVarValue); err != nil {
			return nil, err
		}
		corrections = append(corrections, Correction{
			Index:    i,
			Name:     name.Str,
			Previous: entry.Get("value").String(),
			Value:    TargetVarValue,
		})
	}
	return corrections, nil
}

func firstContainerPath(rest string) string {
	return ContainerDefinitionsKey + ".0." + rest
}
