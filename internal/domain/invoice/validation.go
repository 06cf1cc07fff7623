package invoice

import (
	"fmt"
	"strings"

	"github.com/billfold/billfold/internal/types"
)

// ValidationError carries every rule violation found in a candidate
// invoice: a human readable message list plus a field-keyed map that
// mirrors the invoice's shape (payee.name, items[<resourceID>].quantity,
// ...) so the UI can highlight each offending input at once.
type ValidationError struct {
	Errors []string
	Fields map[string]bool
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Errors, "; ")
}

func (e *ValidationError) add(field, message string) {
	e.Errors = append(e.Errors, message)
	e.Fields[field] = true
}

// Details renders the field map as reportable error details.
func (e *ValidationError) Details() map[string]any {
	details := make(map[string]any, len(e.Fields)+1)
	for field := range e.Fields {
		details[field] = true
	}
	details["errors"] = e.Errors
	return details
}

// Validate checks the candidate against every business rule. All rules
// run; nothing short-circuits, so the returned *ValidationError holds
// the complete set of violations. A nil return means the candidate is
// valid.
func (c *Candidate) Validate() error {
	ve := &ValidationError{Fields: make(map[string]bool)}

	if c.Payee.Name == "" {
		ve.add("payee.name", "Your name is missing. Please include your name.")
	}

	if c.Payor.Name == "" {
		ve.add("payor.name", "BILL TO name is missing. Please include a name to bill.")
	}

	if c.Payor.Email != "" && !types.IsValidEmail(c.Payor.Email) {
		ve.add("payor.email", "BILL TO email is invalid. Please enter a valid email address.")
	}

	if _, ok := types.ParseDate(c.DateIssued); !ok {
		ve.add("dateIssued", "Invalid date issued. Please make sure the date is valid and has format YYYY-MM-DD.")
	}

	if c.DateDue != "" {
		if _, ok := types.ParseDate(c.DateDue); !ok {
			ve.add("dateDue", "Invalid date due. Please make sure the date is valid and has format YYYY-MM-DD.")
		}
	}

	c.validateItems(ve)

	if c.Discount.IsNegative() {
		ve.add("discount", "Discount provided is less than 0. Please include a discount greater than or equal to 0.")
	}

	if c.TaxPercent.IsNegative() {
		ve.add("taxPercent", "Tax provided is less than 0. Please include a tax greater than or equal to 0.")
	}

	if c.Shipping.IsNegative() {
		ve.add("shipping", "Shipping cost provided is less than 0. Please include a shipping cost greater than or equal to 0.")
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func (c *Candidate) validateItems(ve *ValidationError) {
	for i, item := range c.Items {
		itemNumber := i + 1

		if item.Name == "" {
			ve.add(itemField(item, "name"),
				fmt.Sprintf("Item %d is missing an Item name.", itemNumber))
		}

		if item.Quantity == nil {
			ve.add(itemField(item, "quantity"),
				fmt.Sprintf("Item %d is missing a Quantity.", itemNumber))
		} else if !item.Quantity.IsPositive() {
			ve.add(itemField(item, "quantity"),
				fmt.Sprintf("Item %d has Quantity less than or equal to 0. Please include a positive quantity.", itemNumber))
		}

		if item.UnitPrice == nil {
			ve.add(itemField(item, "unitPrice"),
				fmt.Sprintf("Item %d is missing a Price.", itemNumber))
		} else if item.UnitPrice.IsNegative() {
			ve.add(itemField(item, "unitPrice"),
				fmt.Sprintf("Item %d has Price less than 0. Please include a price greater than or equal to 0.", itemNumber))
		}
	}
}

func itemField(item *Item, field string) string {
	return fmt.Sprintf("items[%s].%s", item.ResourceID, field)
}
