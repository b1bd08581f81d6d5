package modulemanager

import (
	"fmt"
	"sort"
)

// initializationOrder sorts modules so that every module comes after the
// modules it depends on. Ties are broken by module ID.
func initializationOrder(modules map[string]Module) ([]Module, error) {
	ids := make([]string, 0, len(modules))
	for id := range modules {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(modules))
	order := make([]Module, 0, len(modules))

	var visit func(id string, path []string) error
	visit = func(id string, path []string) error {
		switch state[id] {
		case done:
			return nil
		case visiting:
			return fmt.Errorf("circular dependency detected: %v", append(path, id))
		}
		state[id] = visiting
		path = append(path, id)

		module := modules[id]
		if provider, ok := module.(DependencyProvider); ok {
			deps := append([]string(nil), provider.Dependencies()...)
			sort.Strings(deps)
			for _, dep := range deps {
				if _, exists := modules[dep]; !exists {
					return fmt.Errorf("module %s depends on non-existent module %s", id, dep)
				}
				if err := visit(dep, path); err != nil {
					return err
				}
			}
		}

		state[id] = done
		order = append(order, module)
		return nil
	}

	for _, id := range ids {
		if err := visit(id, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}
