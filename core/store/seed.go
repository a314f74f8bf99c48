package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/floodops/dispatch/core/model"
)

// Seed describes the initial incidents and units loaded into a MemoryStore.
type Seed struct {
	Incidents []model.Incident   `json:"incidents"`
	Units     []model.RescueUnit `json:"units"`
}

// LoadSeed reads a seed file in JSON format.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed: %w", err)
	}
	var s Seed
	if err := json.Unmarshal(data, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	return s, nil
}

// Apply inserts the seed contents into the store.
func (s Seed) Apply(m *MemoryStore) error {
	for _, inc := range s.Incidents {
		if err := m.PutIncident(inc); err != nil {
			return err
		}
	}
	for _, u := range s.Units {
		if err := m.PutUnit(u); err != nil {
			return err
		}
	}
	return nil
}
