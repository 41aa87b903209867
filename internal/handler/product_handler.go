package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"inventory_tracker/internal/middleware"
	"inventory_tracker/internal/model"
	"inventory_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductHandler serves the product CRUD pages.
type ProductHandler struct {
	service service.ProductService
	images  *service.ImageStore
	log     zerolog.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(s service.ProductService, images *service.ImageStore, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{service: s, images: images, log: log}
}

// productForm carries raw submitted values so re-rendered forms show
// exactly what the user typed.
type productForm struct {
	Name        string
	Price       string
	Description string
}

func parseProductForm(c *gin.Context) (productForm, model.ProductInput, []string) {
	form := productForm{
		Name:        strings.TrimSpace(c.PostForm("name")),
		Price:       strings.TrimSpace(c.PostForm("price")),
		Description: c.PostForm("description"),
	}

	var fieldErrors []string
	var input model.ProductInput

	if form.Name == "" {
		fieldErrors = append(fieldErrors, "Product name is required.")
	}
	input.Name = form.Name

	price, err := decimal.NewFromString(form.Price)
	if err != nil || price.IsNegative() {
		fieldErrors = append(fieldErrors, "Price must be a non-negative number.")
	} else {
		input.Price = price
	}

	// The limit is characters, matching the VARCHAR(255) column.
	if utf8.RuneCountInString(form.Description) > model.MaxDescriptionLength {
		fieldErrors = append(fieldErrors, "Description must not exceed 255 characters.")
	} else if form.Description != "" {
		desc := form.Description
		input.Description = &desc
	}

	return form, input, fieldErrors
}

// saveUploadedImage stores the optional image field. It returns the
// generated filename (nil when no file was sent) or a user-facing
// validation message.
func (h *ProductHandler) saveUploadedImage(c *gin.Context) (*string, string) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, "" // no file uploaded
	}
	fileName, err := h.images.Save(fileHeader)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFileType) || errors.Is(err, service.ErrFileSizeExceeded) {
			return nil, "The image must be a JPEG or PNG smaller than 5 MB."
		}
		h.log.Error().Err(err).Msg("failed to store uploaded image")
		return nil, "Could not store the uploaded image. Please try again."
	}
	return &fileName, ""
}

// List renders every product, newest first.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("failed to list products")
		h.renderError(c, http.StatusInternalServerError, "Could not load the product list.")
		return
	}
	c.HTML(http.StatusOK, "products_list.html", gin.H{
		"title":    "Products",
		"username": middleware.SessionFrom(c).Username,
		"products": products,
	})
}

// NewForm renders the empty creation form.
func (h *ProductHandler) NewForm(c *gin.Context) {
	c.HTML(http.StatusOK, "product_new.html", gin.H{
		"title":    "New Product",
		"username": middleware.SessionFrom(c).Username,
	})
}

// Create validates the form, stores the optional image, and persists
// the product. Validation and upload failures re-render the form with
// the submitted values; nothing is written before they pass.
func (h *ProductHandler) Create(c *gin.Context) {
	form, input, fieldErrors := parseProductForm(c)
	if len(fieldErrors) > 0 {
		h.renderNewForm(c, form, fieldErrors)
		return
	}

	imagePath, uploadErr := h.saveUploadedImage(c)
	if uploadErr != "" {
		h.renderNewForm(c, form, []string{uploadErr})
		return
	}
	input.ImagePath = imagePath

	if _, err := h.service.Create(c.Request.Context(), input); err != nil {
		h.log.Error().Err(err).Msg("failed to create product")
		h.renderNewForm(c, form, []string{"Could not save the product. Please try again."})
		return
	}
	c.Redirect(http.StatusFound, "/products")
}

// EditForm renders the edit form for an existing product, or an
// explicit 404 when the id does not resolve.
func (h *ProductHandler) EditForm(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			h.renderError(c, http.StatusNotFound, "Product not found.")
			return
		}
		h.log.Error().Err(err).Msg("failed to load product for edit")
		h.renderError(c, http.StatusInternalServerError, "Could not load the product.")
		return
	}

	c.HTML(http.StatusOK, "product_edit.html", gin.H{
		"title":    "Edit Product",
		"username": middleware.SessionFrom(c).Username,
		"product":  product,
		"form": productForm{
			Name:        product.Name,
			Price:       product.Price.String(),
			Description: derefOrEmpty(product.Description),
		},
	})
}

// Edit applies the partial update. An edit without a new upload keeps
// the stored image; validation failures re-render with the submitted
// values merged over the stored product.
func (h *ProductHandler) Edit(c *gin.Context) {
	id, ok := h.productID(c)
	if !ok {
		return
	}

	form, input, fieldErrors := parseProductForm(c)
	if len(fieldErrors) > 0 {
		h.renderEditForm(c, id, form, fieldErrors)
		return
	}

	imagePath, uploadErr := h.saveUploadedImage(c)
	if uploadErr != "" {
		h.renderEditForm(c, id, form, []string{uploadErr})
		return
	}
	input.ImagePath = imagePath

	if err := h.service.Update(c.Request.Context(), id, input); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			h.renderError(c, http.StatusNotFound, "Product not found.")
			return
		}
		h.log.Error().Err(err).Msg("failed to update product")
		h.renderError(c, http.StatusInternalServerError, "Could not save the changes.")
		return
	}
	c.Redirect(http.StatusFound, "/products")
}

func (h *ProductHandler) productID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.renderError(c, http.StatusNotFound, "Product not found.")
		return 0, false
	}
	return id, true
}

func (h *ProductHandler) renderNewForm(c *gin.Context, form productForm, fieldErrors []string) {
	c.HTML(http.StatusOK, "product_new.html", gin.H{
		"title":    "New Product",
		"username": middleware.SessionFrom(c).Username,
		"form":     form,
		"errors":   fieldErrors,
	})
}

func (h *ProductHandler) renderEditForm(c *gin.Context, id int64, form productForm, fieldErrors []string) {
	// Re-fetch so the view keeps the stored image; submitted fields win.
	product, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			h.renderError(c, http.StatusNotFound, "Product not found.")
			return
		}
		h.log.Error().Err(err).Msg("failed to reload product for edit form")
		h.renderError(c, http.StatusInternalServerError, "Could not load the product.")
		return
	}

	c.HTML(http.StatusOK, "product_edit.html", gin.H{
		"title":    "Edit Product",
		"username": middleware.SessionFrom(c).Username,
		"product":  product,
		"form":     form,
		"errors":   fieldErrors,
	})
}

func (h *ProductHandler) renderError(c *gin.Context, status int, message string) {
	c.HTML(status, "error.html", gin.H{
		"title":   "Error",
		"message": message,
	})
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// RegisterProductRoutes wires the gated product routes.
func (h *ProductHandler) RegisterProductRoutes(router *gin.Engine, authMW gin.HandlerFunc) {
	products := router.Group("/products")
	products.Use(authMW)
	{
		products.GET("", h.List)
		products.GET("/new", h.NewForm)
		products.POST("/new", h.Create)
		products.GET("/edit/:id", h.EditForm)
		products.POST("/edit/:id", h.Edit)
	}
}
