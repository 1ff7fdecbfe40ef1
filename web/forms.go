package web

import (
	"errors"
	"reflect"

	"github.com/go-playground/validator/v10"

	"cafewifi/client"
)

// AddCafeForm is the add-cafe submission. Checkbox fields bind to false
// when absent; everything else is required before the create request is
// ever sent upstream.
type AddCafeForm struct {
	Name         string `form:"name" validate:"required"`
	Location     string `form:"location" validate:"required"`
	MapURL       string `form:"map_url" validate:"required,url"`
	ImgURL       string `form:"img_url" validate:"required,url"`
	Seats        string `form:"seats" validate:"required"`
	CoffeePrice  string `form:"coffee_price" validate:"required"`
	APIKey       string `form:"api_key" validate:"required"`
	HasWifi      bool   `form:"wifi"`
	HasSockets   bool   `form:"sockets"`
	HasToilet    bool   `form:"toilet"`
	CanTakeCalls bool   `form:"calls"`
}

func (f AddCafeForm) params() client.AddCafeParams {
	return client.AddCafeParams{
		Name:         f.Name,
		MapURL:       f.MapURL,
		ImgURL:       f.ImgURL,
		Location:     f.Location,
		Seats:        f.Seats,
		HasWifi:      f.HasWifi,
		HasSockets:   f.HasSockets,
		HasToilet:    f.HasToilet,
		CanTakeCalls: f.CanTakeCalls,
		CoffeePrice:  f.CoffeePrice,
		APIKey:       f.APIKey,
	}
}

// NewFormValidator reports field errors under the form field names the
// templates render next to each input.
func NewFormValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("form")
	})
	return v
}

// CheckForm runs validation and flattens the result into a field-name to
// message map for inline rendering.
func CheckForm(v *validator.Validate, form any) map[string]string {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrors := map[string]string{}
	var invalid validator.ValidationErrors
	if !errors.As(err, &invalid) {
		fieldErrors[""] = "Invalid submission"
		return fieldErrors
	}
	for _, fe := range invalid {
		fieldErrors[fe.Field()] = fieldMessage(fe)
	}
	return fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "url":
		return "Must be a well-formed URL"
	}
	return "Invalid value"
}
