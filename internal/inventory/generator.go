package inventory

import (
	_ "embed"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/bongibault-romain/trading-game-server/internal/shared"
)

const (
	MinItems = 5
	MaxItems = 15
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Items []string `yaml:"items"`
}

// ParseCatalog decodes a YAML item catalog. Blank names are skipped.
func ParseCatalog(data []byte) ([]string, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	names := make([]string, 0, len(f.Items))
	for _, n := range f.Items {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return nil, errors.New("catalog has no items")
	}
	return names, nil
}

// Generator hands out random starting inventories. Safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	catalog []string
	rng     *rand.Rand
}

func NewGenerator(catalog []string, seed int64) *Generator {
	return &Generator{
		catalog: append([]string(nil), catalog...),
		rng:     rand.New(rand.NewSource(seed)),
	}
}

// NewDefaultGenerator uses the embedded catalog and a time-based seed.
func NewDefaultGenerator() (*Generator, error) {
	names, err := ParseCatalog(defaultCatalog)
	if err != nil {
		return nil, err
	}
	return NewGenerator(names, time.Now().UnixNano()), nil
}

// Generate returns between MinItems and MaxItems items, each with a fresh id.
func (g *Generator) Generate() []shared.Item {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := g.rng.Intn(MaxItems-MinItems+1) + MinItems
	items := make([]shared.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, shared.Item{
			ID:   uuid.NewString(),
			Name: g.catalog[g.rng.Intn(len(g.catalog))],
		})
	}
	return items
}
