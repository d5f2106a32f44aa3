package lpmodel

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// WriteSnapshot encodes cfg as YAML so that every written model can be
// paired with the exact configuration that produced it.
func WriteSnapshot(w io.Writer, cfg any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("lpmodel: snapshot: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("lpmodel: snapshot: %w", err)
	}

	return nil
}
