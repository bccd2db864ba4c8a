package recipe

import "strings"

// Ingredient is a single ingredient line: a quantity, a unit and a
// free-text description ("2 cups rice"). Externally sourced recipes
// often carry partial measurements, so quantity and unit are optional
// in the general case.
type Ingredient struct {
	Quantity    float64
	Unit        string
	Description string
}

// Validate checks the rules that apply to every ingredient.
func (i Ingredient) Validate() error {
	if strings.TrimSpace(i.Description) == "" {
		return ErrIngredientDescriptionRequired
	}
	if i.Quantity < 0 {
		return ErrIngredientQuantityNegative
	}
	return nil
}

// ValidateMeasured additionally requires a usable measurement. Applied
// to AI-generated drafts, where the model is instructed to emit full
// quantities and units.
func (i Ingredient) ValidateMeasured() error {
	if err := i.Validate(); err != nil {
		return err
	}
	if i.Quantity <= 0 {
		return ErrIngredientQuantityRequired
	}
	if strings.TrimSpace(i.Unit) == "" {
		return ErrIngredientUnitRequired
	}
	return nil
}
