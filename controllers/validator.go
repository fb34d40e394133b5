package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/5ecured/e-commerce/models"
	"github.com/5ecured/e-commerce/services"
)

// MaxPhotoBytes caps the uploaded product photo size.
const MaxPhotoBytes = 1000000

// createProductForm defines the expected multipart fields for creating a
// product. All fields are required on create.
type createProductForm struct {
	Name        string   `form:"name" validate:"required,max=32"`
	Description string   `form:"description" validate:"required,max=2000"`
	Price       *float64 `form:"price" validate:"required"`
	Category    string   `form:"category" validate:"required"`
	Quantity    *int     `form:"quantity" validate:"required"`
	Shipping    *bool    `form:"shipping" validate:"required"`
}

// updateProductForm is the partial variant: nil fields were not supplied.
type updateProductForm struct {
	Name        *string  `form:"name"`
	Description *string  `form:"description"`
	Price       *float64 `form:"price"`
	Category    *string  `form:"category"`
	Quantity    *int     `form:"quantity"`
	Shipping    *bool    `form:"shipping"`
}

// RequestValidator handles input validation for the catalog endpoints.
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

// ParseListQuery parses the sortBy/order/limit listing parameters. A missing
// or zero limit falls back to the service default; a negative one passes
// through to the store untouched.
func (rv *RequestValidator) ParseListQuery(c *gin.Context) (services.ListParams, error) {
	params := services.ListParams{
		SortBy: c.Query("sortBy"),
		Order:  c.Query("order"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return services.ListParams{}, errors.New("invalid limit value")
		}
		params.Limit = limit
	}
	return params, nil
}

// ParseCreateProductForm validates and parses a multipart product create.
func (rv *RequestValidator) ParseCreateProductForm(c *gin.Context) (services.ProductInput, error) {
	var form createProductForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ProductInput{}, fmt.Errorf("invalid form data: %w", err)
	}
	if err := rv.validate.Struct(&form); err != nil {
		return services.ProductInput{}, errors.New("please fill all fields")
	}

	categoryID, err := primitive.ObjectIDFromHex(form.Category)
	if err != nil {
		return services.ProductInput{}, errors.New("invalid category id")
	}

	photo, err := rv.photoFromForm(c)
	if err != nil {
		return services.ProductInput{}, err
	}

	return services.ProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       *form.Price,
		Category:    categoryID,
		Quantity:    *form.Quantity,
		Shipping:    form.Shipping,
		Photo:       photo,
	}, nil
}

// ParseUpdateProductForm parses a partial multipart product update.
func (rv *RequestValidator) ParseUpdateProductForm(c *gin.Context) (services.ProductUpdate, error) {
	var form updateProductForm
	if err := c.ShouldBind(&form); err != nil {
		return services.ProductUpdate{}, fmt.Errorf("invalid form data: %w", err)
	}
	if form.Name != nil && len(*form.Name) > models.MaxProductNameLen {
		return services.ProductUpdate{}, errors.New("name too long")
	}
	if form.Description != nil && len(*form.Description) > models.MaxProductDescriptionLen {
		return services.ProductUpdate{}, errors.New("description too long")
	}

	update := services.ProductUpdate{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Quantity:    form.Quantity,
		Shipping:    form.Shipping,
	}
	if form.Category != nil {
		categoryID, err := primitive.ObjectIDFromHex(*form.Category)
		if err != nil {
			return services.ProductUpdate{}, errors.New("invalid category id")
		}
		update.Category = &categoryID
	}

	photo, err := rv.photoFromForm(c)
	if err != nil {
		return services.ProductUpdate{}, err
	}
	update.Photo = photo

	return update, nil
}

// photoFromForm reads the optional photo upload. A missing file is not an
// error; an oversized one is.
func (rv *RequestValidator) photoFromForm(c *gin.Context) (*models.Photo, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, errors.New("image could not be uploaded")
	}
	if fileHeader.Size > MaxPhotoBytes {
		return nil, errors.New("image must be less than 1MB in size")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("image could not be uploaded")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.New("image could not be uploaded")
	}

	return &models.Photo{
		Data:        data,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}
