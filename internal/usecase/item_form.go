package usecase

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/valuecompare/backend/internal/domain"
)

// ItemInput is the raw item a user submits before it becomes a domain.Item.
// Upper bounds keep total size and unit price finite for every unit.
type ItemInput struct {
	Name     string      `json:"name" validate:"required"`
	Price    float64     `json:"price" validate:"gt=0,lte=1000000"`
	Quantity int         `json:"quantity" validate:"gte=1,lte=10000"`
	Size     float64     `json:"size" validate:"gt=0,lte=1000000"`
	Unit     domain.Unit `json:"unit" validate:"required,unit"`
}

// Fields are checked in form order and the first failure is reported
var itemFieldOrder = []string{"Name", "Price", "Quantity", "Size", "Unit"}

var itemFieldMessages = map[string]struct {
	field   string
	message string
}{
	"Name":     {"name", "Please enter a product name"},
	"Price":    {"price", "Please enter a valid price"},
	"Quantity": {"quantity", "Please enter a valid quantity"},
	"Size":     {"size", "Please enter a valid size"},
	"Unit":     {"unit", "Please select a valid unit"},
}

var itemValidator = newItemValidator()

func newItemValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Registration only fails for empty tags or nil funcs
	_ = v.RegisterValidation("unit", func(fl validator.FieldLevel) bool {
		return domain.Unit(fl.Field().String()).Valid()
	})
	return v
}

// NewItem validates the input and assigns it a fresh id
func NewItem(input ItemInput) (domain.Item, error) {
	if err := ValidateItemInput(input); err != nil {
		return domain.Item{}, err
	}

	return domain.Item{
		ID:       "item-" + uuid.NewString(),
		Name:     input.Name,
		Price:    input.Price,
		Quantity: input.Quantity,
		Size:     input.Size,
		Unit:     input.Unit,
	}, nil
}

// ValidateItemInput returns a *domain.ValidationError for the first invalid field
func ValidateItemInput(input ItemInput) error {
	err := itemValidator.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	failed := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		failed[fe.StructField()] = true
	}
	for _, name := range itemFieldOrder {
		if failed[name] {
			m := itemFieldMessages[name]
			return &domain.ValidationError{Field: m.field, Message: m.message}
		}
	}
	return domain.ErrInvalidItem
}
