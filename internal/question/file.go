package question

import (
	"fmt"
	"os"
)

// LoadFile reads and decodes a quiz file.
func LoadFile(path string) (Quiz, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Quiz{}, fmt.Errorf("read quiz: %w", err)
	}
	quiz, err := Decode(data)
	if err != nil {
		return Quiz{}, fmt.Errorf("%s: %w", path, err)
	}
	return quiz, nil
}

// SaveFile writes records to path in named object form, replacing any
// existing file.
func SaveFile(path string, qs []Question) error {
	data, err := Encode(qs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write quiz: %w", err)
	}
	return nil
}
