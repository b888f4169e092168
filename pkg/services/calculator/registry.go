package calculator

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/samber/lo"
)

var ErrNotRegistered = errors.New("calculator is not registered")

// Registry manages the calculators exposed over HTTP and the CLI
type Registry interface {
	// Register adds a calculator under its Name
	Register(c Calculator) error
	// Get returns the calculator registered under name
	Get(name string) (Calculator, error)
	// List returns the registered names in sorted order
	List() []string
}

type registry struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
}

// NewRegistry creates a registry holding the given calculators
func NewRegistry(calculators ...Calculator) (Registry, error) {
	r := &registry{calculators: make(map[string]Calculator)}
	for _, c := range calculators {
		if err := r.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *registry) Register(c Calculator) error {
	if c == nil {
		return fmt.Errorf("calculator cannot be nil")
	}
	name := c.Name()
	if name == "" {
		return fmt.Errorf("calculator name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.calculators[name]; exists {
		return fmt.Errorf("calculator %q is already registered", name)
	}

	r.calculators[name] = c
	return nil
}

func (r *registry) Get(name string) (Calculator, error) {
	r.mu.RLock()
	c, exists := r.calculators[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return c, nil
}

func (r *registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := lo.Keys(r.calculators)
	sort.Strings(names)
	return names
}
