package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Product represents a catalog product. Products are owned entirely by the
// backend; the client only holds transient copies fetched into the cache.
type Product struct {
	// MongoID is the crudcrud-style identifier; ID is the json-server
	// style one. Which is populated depends on the backend in use.
	MongoID      string  `json:"_id,omitempty"`
	ID           ID      `json:"id,omitzero"`
	CategoryID   int     `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Weight       float64 `json:"weight"`
	Width        float64 `json:"width"`
	Length       float64 `json:"length"`
	Height       float64 `json:"height"`
	Image        string  `json:"image,omitempty"`
	Price        float64 `json:"price"`
}

// Identifier returns whichever id shape the backend populated, as it
// appears in request paths.
func (p Product) Identifier() string {
	if p.MongoID != "" {
		return p.MongoID
	}
	return p.ID.String()
}

// CreateProductInput is the payload for creating or updating a product,
// validated before any network call.
type CreateProductInput struct {
	CategoryID   int     `json:"categoryId" validate:"gte=0"`
	CategoryName string  `json:"categoryName" validate:"required"`
	SKU          string  `json:"sku" validate:"required"`
	Name         string  `json:"name" validate:"required"`
	Description  string  `json:"description,omitempty"`
	Weight       float64 `json:"weight" validate:"gt=0"`
	Width        float64 `json:"width" validate:"gt=0"`
	Length       float64 `json:"length" validate:"gt=0"`
	Height       float64 `json:"height" validate:"gt=0"`
	Image        string  `json:"image,omitempty" validate:"omitempty,url"`
	Price        float64 `json:"price" validate:"gt=0"`
}

var productValidate = newProductValidator()

func newProductValidator() *validator.Validate {
	v := validator.New()
	// Report fields under their JSON names so screens can attach messages
	// to form inputs directly.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// productMessages maps field+tag to the message shown next to the field.
var productMessages = map[string]string{
	"categoryId.gte":        "Category ID harus 0 atau lebih",
	"categoryName.required": "Nama kategori wajib diisi",
	"sku.required":          "SKU wajib diisi",
	"name.required":         "Nama produk wajib diisi",
	"weight.gt":             "Berat harus lebih dari 0",
	"width.gt":              "Lebar harus lebih dari 0",
	"length.gt":             "Panjang harus lebih dari 0",
	"height.gt":             "Tinggi harus lebih dari 0",
	"image.url":             "Format URL gambar tidak valid",
	"price.gt":              "Harga harus lebih dari 0",
}

// ValidateCreateProduct trims the free-text fields and validates the input,
// returning per-field messages. A nil result means the input is valid.
func ValidateCreateProduct(input *CreateProductInput) map[string]string {
	input.CategoryName = strings.TrimSpace(input.CategoryName)
	input.SKU = strings.TrimSpace(input.SKU)
	input.Name = strings.TrimSpace(input.Name)

	err := productValidate.Struct(input)
	if err == nil {
		return nil
	}

	messages := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fe := range validationErrors {
			if msg, ok := productMessages[fe.Field()+"."+fe.Tag()]; ok {
				messages[fe.Field()] = msg
			} else {
				messages[fe.Field()] = "Nilai tidak valid"
			}
		}
	}
	return messages
}
