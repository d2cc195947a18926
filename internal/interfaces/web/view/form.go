package view

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"

	catalogapp "github.com/edusite/backend/internal/application/catalog"
)

// Form field names, shared by the HTML form, the write endpoint and the console client
const (
	FieldID            = "id"
	FieldName          = "name"
	FieldBrand         = "brand"
	FieldPrice         = "price"
	FieldOriginalPrice = "originalPrice"
	FieldImageURL      = "imageUrl"
)

// Submit button labels
const (
	LabelAdd    = "Add Product"
	LabelUpdate = "Update Product"
)

// ErrUnknownField is returned by Change for a field the form does not have
var ErrUnknownField = errors.New("unknown form field")

// ErrSubmitInFlight is returned by Submit while a previous submission is pending
var ErrSubmitInFlight = errors.New("form is already being submitted")

// State is the state of the admin form
type State int

const (
	// StateViewing shows the listing with an empty form
	StateViewing State = iota
	// StateEditing has a draft the admin is working on
	StateEditing
	// StateSubmitting waits for the write request to finish
	StateSubmitting
)

func (s State) String() string {
	switch s {
	case StateViewing:
		return "viewing"
	case StateEditing:
		return "editing"
	case StateSubmitting:
		return "submitting"
	default:
		return "unknown"
	}
}

// Draft is the product form as typed, never persisted.
// A non-empty ID means the draft edits an existing product.
type Draft struct {
	ID            string
	Name          string
	Brand         string
	Price         string
	OriginalPrice string
	ImageURL      string
}

// DraftFromProduct copies every field of a product, including its ID, into a draft
func DraftFromProduct(p catalogapp.ProductResponse) Draft {
	return Draft{
		ID:            strconv.FormatInt(p.ID, 10),
		Name:          p.Name,
		Brand:         p.Brand,
		Price:         p.Price.String(),
		OriginalPrice: p.OriginalPrice.String(),
		ImageURL:      p.ImageURL,
	}
}

// IsUpdate reports whether submitting the draft updates an existing product
func (d Draft) IsUpdate() bool {
	return d.ID != ""
}

// SubmitLabel returns the label of the submit button
func (d Draft) SubmitLabel() string {
	if d.IsUpdate() {
		return LabelUpdate
	}
	return LabelAdd
}

// Values encodes the draft as a form payload for the write endpoint.
// The id field is only sent when the draft edits an existing product.
func (d Draft) Values() url.Values {
	values := url.Values{
		FieldName:          {d.Name},
		FieldBrand:         {d.Brand},
		FieldPrice:         {d.Price},
		FieldOriginalPrice: {d.OriginalPrice},
		FieldImageURL:      {d.ImageURL},
	}
	if d.IsUpdate() {
		values.Set(FieldID, d.ID)
	}
	return values
}

// DraftFromInput rebuilds a draft from a rejected submission so the form keeps what was typed
func DraftFromInput(in catalogapp.SaveProductInput) Draft {
	return Draft{
		ID:            in.ID,
		Name:          in.Name,
		Brand:         in.Brand,
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		ImageURL:      in.ImageURL,
	}
}

// set updates exactly one field
func (d *Draft) set(field, value string) error {
	switch field {
	case FieldID:
		d.ID = value
	case FieldName:
		d.Name = value
	case FieldBrand:
		d.Brand = value
	case FieldPrice:
		d.Price = value
	case FieldOriginalPrice:
		d.OriginalPrice = value
	case FieldImageURL:
		d.ImageURL = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Form is the admin form state machine for one client session:
// Viewing and Editing alternate, Submitting ends with a reload back to Viewing.
type Form struct {
	draft        Draft
	state        State
	beforeSubmit State
}

// NewForm returns an empty form in the Viewing state
func NewForm() *Form {
	return &Form{state: StateViewing}
}

// State returns the current state
func (f *Form) State() State {
	return f.state
}

// Draft returns a copy of the current draft
func (f *Form) Draft() Draft {
	return f.draft
}

// SubmitLabel returns the label of the submit button for the current draft
func (f *Form) SubmitLabel() string {
	return f.draft.SubmitLabel()
}

// Edit replaces the draft with the fields of p, switching the form to update mode
func (f *Form) Edit(p catalogapp.ProductResponse) {
	f.draft = DraftFromProduct(p)
	f.state = StateEditing
}

// Change updates a single field of the draft
func (f *Form) Change(field, value string) error {
	if f.state == StateSubmitting {
		return ErrSubmitInFlight
	}
	if err := f.draft.set(field, value); err != nil {
		return err
	}
	f.state = StateEditing
	return nil
}

// Submit packages the draft for the write endpoint and enters the Submitting state
func (f *Form) Submit() (url.Values, error) {
	if f.state == StateSubmitting {
		return nil, ErrSubmitInFlight
	}
	f.beforeSubmit = f.state
	f.state = StateSubmitting
	return f.draft.Values(), nil
}

// Fail returns a rejected submission to the state it was submitted from, keeping the draft
func (f *Form) Fail() {
	if f.state == StateSubmitting {
		f.state = f.beforeSubmit
	}
}

// Reset discards the draft, which is what a reload does
func (f *Form) Reset() {
	f.draft = Draft{}
	f.state = StateViewing
}
