package library

import (
	"fmt"

	"github.com/TriM-Organization/bedrock-structure-editor/structure"
)

// Edit loads the structure stored under name, lets fn change it and
// stores the result. It holds the lease of name meanwhile, so two
// Edit calls on the same name never interleave.
//
// Nothing is stored when fn fails or when the edited document does
// not validate.
func (l *Library) Edit(name string, fn func(doc *structure.Document) error) error {
	release, err := l.Require(name)
	if err != nil {
		return fmt.Errorf("Edit: %w", err)
	}
	defer release()

	_, data, err := l.get(name)
	if err != nil {
		return fmt.Errorf("Edit: %w", err)
	}
	doc, err := structure.Import(data)
	if err != nil {
		return fmt.Errorf("Edit: %w", err)
	}

	if err = fn(doc); err != nil {
		return fmt.Errorf("Edit: %w", err)
	}

	edited, err := structure.Export(doc)
	if err != nil {
		return fmt.Errorf("Edit: %w", err)
	}
	if _, err = l.validateAndPut(name, edited); err != nil {
		return fmt.Errorf("Edit: %w", err)
	}
	return nil
}
