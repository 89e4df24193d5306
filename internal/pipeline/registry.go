// ABOUTME: Stage registry for registering and retrieving pipeline stages.
// ABOUTME: Stages register themselves in init() functions.

package pipeline

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registry = make(map[string]Stage)
	mu       sync.RWMutex
)

// Register adds a stage to the registry
func Register(s Stage) {
	mu.Lock()
	defer mu.Unlock()

	name := s.Name()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("stage %q already registered", name))
	}
	registry[name] = s
}

// Get retrieves a stage by name
func Get(name string) (Stage, bool) {
	mu.RLock()
	defer mu.RUnlock()
	s, ok := registry[name]
	return s, ok
}

// All returns all registered stages in run order
func All() []Stage {
	mu.RLock()
	defer mu.RUnlock()

	stages := make([]Stage, 0, len(registry))
	for _, s := range registry {
		stages = append(stages, s)
	}
	sortStages(stages)
	return stages
}

// Names returns all registered stage names in run order
func Names() []string {
	stages := All()
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name()
	}
	return names
}

func sortStages(stages []Stage) {
	sort.SliceStable(stages, func(i, j int) bool {
		if stages[i].Order() != stages[j].Order() {
			return stages[i].Order() < stages[j].Order()
		}
		return stages[i].Name() < stages[j].Name()
	})
}
