package admin

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/example/bakeshop/pkg/models"
	"github.com/go-playground/validator/v10"
)

var (
	ErrSaveInProgress   = errors.New("a save is already in progress")
	ErrDeleteNotArmed   = errors.New("delete has not been confirmed")
	ErrValidationFailed = errors.New("Please fill in all required fields (Name, Category, Price, Image)")
)

// Catalog is the write path the product console uses; satisfied by the
// REST client.
type Catalog interface {
	List(ctx context.Context) ([]models.Product, error)
	Create(ctx context.Context, p models.Product) (*models.Product, error)
	Update(ctx context.Context, id string, p models.Product) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

// ProductForm is the modal's working copy. Numeric fields stay as text
// until save, when they are coerced with explicit fallbacks.
type ProductForm struct {
	Name             string
	Category         string
	Price            string
	OriginalPrice    string
	Discount         string
	Rating           string
	Reviews          string
	Image            string
	ShortDescription string
	FullDescription  string
	Features         []string
	Specifications   map[string]string
	Featured         bool
	ProductType      string
	InStock          bool
	FreshnessTag     string
	IsFresh          bool
}

func NewProductForm() ProductForm {
	return ProductForm{
		Category:       models.CategoryCakes,
		ProductType:    models.ProductTypeRegular,
		InStock:        true,
		Features:       []string{},
		Specifications: map[string]string{},
	}
}

// FormFromProduct pre-populates the form from an existing record. The
// features slice and specifications map are deep-copied so in-progress
// edits never reach the source record.
func FormFromProduct(p models.Product) ProductForm {
	form := ProductForm{
		Name:             p.Name,
		Category:         p.Category,
		Price:            formatNumber(p.Price),
		OriginalPrice:    formatNumber(p.OriginalPrice),
		Discount:         formatNumber(p.Discount),
		Rating:           formatNumber(p.Rating),
		Reviews:          strconv.Itoa(p.Reviews),
		Image:            p.Image,
		ShortDescription: p.ShortDescription,
		FullDescription:  p.FullDescription,
		Features:         append([]string{}, p.Features...),
		Specifications:   make(map[string]string, len(p.Specifications)),
		Featured:         p.Featured,
		ProductType:      p.ProductType,
		InStock:          p.InStock,
		FreshnessTag:     p.FreshnessTag,
		IsFresh:          p.IsFresh,
	}
	if form.Category == "" {
		form.Category = models.CategoryCakes
	}
	if form.ProductType == "" {
		form.ProductType = models.ProductTypeRegular
	}
	for k, v := range p.Specifications {
		form.Specifications[k] = v
	}
	return form
}

func formatNumber(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// AddFeature appends a text entry. Duplicates are allowed.
func (f *ProductForm) AddFeature(feature string) {
	feature = strings.TrimSpace(feature)
	if feature == "" {
		return
	}
	f.Features = append(f.Features, feature)
}

// RemoveFeature removes one entry by index.
func (f *ProductForm) RemoveFeature(index int) {
	if index < 0 || index >= len(f.Features) {
		return
	}
	f.Features = append(f.Features[:index], f.Features[index+1:]...)
}

// SetSpec inserts a key/value pair. Keys are trimmed; an existing key is
// overwritten, not appended.
func (f *ProductForm) SetSpec(key, value string) {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return
	}
	if f.Specifications == nil {
		f.Specifications = map[string]string{}
	}
	f.Specifications[key] = value
}

func (f *ProductForm) RemoveSpec(key string) {
	delete(f.Specifications, key)
}

// requiredFields is what the save gate checks.
type requiredFields struct {
	Name     string `validate:"required"`
	Category string `validate:"required"`
	Price    string `validate:"required"`
	Image    string `validate:"required"`
}

// Build coerces the form into a product. Unparsable numerics fall back:
// originalPrice to price, discount/rating/reviews to 0.
func (f *ProductForm) Build() models.Product {
	price, _ := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	original, err := strconv.ParseFloat(strings.TrimSpace(f.OriginalPrice), 64)
	if err != nil || original == 0 {
		original = price
	}
	discount, _ := strconv.ParseFloat(strings.TrimSpace(f.Discount), 64)
	rating, _ := strconv.ParseFloat(strings.TrimSpace(f.Rating), 64)
	reviews, _ := strconv.Atoi(strings.TrimSpace(f.Reviews))

	return models.Product{
		Name:             f.Name,
		Category:         f.Category,
		Price:            price,
		OriginalPrice:    original,
		Discount:         discount,
		Rating:           rating,
		Reviews:          reviews,
		Image:            f.Image,
		ShortDescription: f.ShortDescription,
		FullDescription:  f.FullDescription,
		Features:         append([]string{}, f.Features...),
		Specifications:   copySpecs(f.Specifications),
		Featured:         f.Featured,
		ProductType:      f.ProductType,
		InStock:          f.InStock,
		FreshnessTag:     f.FreshnessTag,
		IsFresh:          f.IsFresh,
	}
}

func copySpecs(specs map[string]string) map[string]string {
	out := make(map[string]string, len(specs))
	for k, v := range specs {
		out[k] = v
	}
	return out
}

// ProductConsole drives the admin product screen: full-collection list,
// client-side search, and the create/edit/delete modal flow.
type ProductConsole struct {
	mu       sync.Mutex
	catalog  Catalog
	validate *validator.Validate

	products []models.Product
	loading  bool
	errMsg   string

	form          ProductForm
	editingID     string
	saving        bool
	pendingDelete string
}

func NewProductConsole(catalog Catalog) *ProductConsole {
	return &ProductConsole{
		catalog:  catalog,
		validate: validator.New(),
		form:     NewProductForm(),
	}
}

// Load fetches the full collection, no pagination.
func (c *ProductConsole) Load(ctx context.Context) {
	c.mu.Lock()
	c.loading = true
	c.errMsg = ""
	c.mu.Unlock()

	products, err := c.catalog.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.errMsg = err.Error()
		return
	}
	c.products = products
}

// Search filters the loaded list by substring over name, category, and
// short description, case-insensitively.
func (c *ProductConsole) Search(query string) []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return c.products
	}
	var out []models.Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.ShortDescription), q) {
			out = append(out, p)
		}
	}
	return out
}

// BeginCreate opens the modal with a blank form.
func (c *ProductConsole) BeginCreate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editingID = ""
	c.form = NewProductForm()
}

// BeginEdit opens the modal pre-populated from an existing record.
func (c *ProductConsole) BeginEdit(p models.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editingID = p.ID
	c.form = FormFromProduct(p)
}

// Form exposes the working copy for editing.
func (c *ProductConsole) Form() *ProductForm {
	return &c.form
}

// Save validates and writes the form. A validation violation blocks the
// save before any network call and surfaces a single aggregated message.
// A second Save while one is in flight is rejected, and the modal's
// destructive controls stay disabled until the write finishes.
func (c *ProductConsole) Save(ctx context.Context) error {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrSaveInProgress
	}

	gate := requiredFields{
		Name:     strings.TrimSpace(c.form.Name),
		Category: strings.TrimSpace(c.form.Category),
		Price:    strings.TrimSpace(c.form.Price),
		Image:    strings.TrimSpace(c.form.Image),
	}
	if err := c.validate.Struct(gate); err != nil {
		c.errMsg = ErrValidationFailed.Error()
		c.mu.Unlock()
		return ErrValidationFailed
	}

	c.saving = true
	c.errMsg = ""
	product := c.form.Build()
	editingID := c.editingID
	c.mu.Unlock()

	var saved *models.Product
	var err error
	if editingID != "" {
		saved, err = c.catalog.Update(ctx, editingID, product)
	} else {
		saved, err = c.catalog.Create(ctx, product)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.saving = false
	if err != nil {
		c.errMsg = err.Error()
		return err
	}

	if editingID != "" {
		for i := range c.products {
			if c.products[i].ID == editingID {
				c.products[i] = *saved
				break
			}
		}
	} else {
		c.products = append(c.products, *saved)
	}
	return nil
}

// Saving reports whether a write is in flight; close, cancel, and confirm
// controls are disabled while it is.
func (c *ProductConsole) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// CanClose reports whether the modal may be dismissed.
func (c *ProductConsole) CanClose() bool {
	return !c.Saving()
}

// RequestDelete arms the confirmation step for one product.
func (c *ProductConsole) RequestDelete(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = id
}

// CancelDelete disarms the confirmation.
func (c *ProductConsole) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pendingDelete = ""
}

// ConfirmDelete deletes the armed product. It refuses to act when no
// delete was requested, so the confirmation step cannot be bypassed.
func (c *ProductConsole) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.saving {
		c.mu.Unlock()
		return ErrSaveInProgress
	}
	id := c.pendingDelete
	if id == "" {
		c.mu.Unlock()
		return ErrDeleteNotArmed
	}
	c.saving = true
	c.mu.Unlock()

	err := c.catalog.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.saving = false
	c.pendingDelete = ""
	if err != nil {
		c.errMsg = err.Error()
		return err
	}

	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			break
		}
	}
	return nil
}

func (c *ProductConsole) Products() []models.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.products
}

func (c *ProductConsole) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *ProductConsole) Error() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *ProductConsole) DismissError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errMsg = ""
}
