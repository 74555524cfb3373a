package league

import "fmt"

// League is one round-robin competition with its own roster and scoring rules.
type League struct {
	ID     string
	Name   string
	Season string
	Rules  Rules
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if err := l.Rules.Validate(); err != nil {
		return fmt.Errorf("league %s: %w", l.ID, err)
	}

	return nil
}
