package lender

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

type configFile struct {
	Lenders []Config `yaml:"lenders"`
}

// LoadFromFile reads a lender set from YAML, attaches the default validation
// predicate to every lender that has none, and validates structural
// invariants. The file is read once at startup; the returned slice is treated
// as immutable for the life of the process.
func LoadFromFile(path string) ([]Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lender config %s: %w", path, err)
	}
	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse lender config %s: %w", path, err)
	}
	if len(file.Lenders) == 0 {
		return nil, fmt.Errorf("lender config %s contains no lenders", path)
	}
	for i := range file.Lenders {
		if file.Lenders[i].ValidateDeal == nil {
			file.Lenders[i].ValidateDeal = DefaultValidator(file.Lenders[i])
		}
		if err := file.Lenders[i].Validate(); err != nil {
			return nil, err
		}
	}
	return file.Lenders, nil
}

// LoadOrDefault loads the YAML lender set, falling back to the built-in
// lenders when the file is absent. A malformed file is still an error;
// silently masking a bad config with defaults would be worse than failing.
func LoadOrDefault(path string) ([]Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("[LENDER] %s not found, using built-in lender set\n", path)
		return BuiltinLenders(), nil
	}
	lenders, err := LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	fmt.Printf("[LENDER] Loaded %d lenders from %s\n", len(lenders), path)
	return lenders, nil
}
