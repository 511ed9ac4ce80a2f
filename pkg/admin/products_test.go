package admin

import (
	"context"
	"errors"
	"testing"

	"github.com/example/bakeshop/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) List(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *mockCatalog) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	args := m.Called(ctx, p)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockCatalog) Update(ctx context.Context, id string, p models.Product) (*models.Product, error) {
	args := m.Called(ctx, id, p)
	product, _ := args.Get(0).(*models.Product)
	return product, args.Error(1)
}

func (m *mockCatalog) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestFormFromProductDeepCopies(t *testing.T) {
	p := models.Product{
		Name:           "Croissant",
		Category:       models.CategoryPastries,
		Price:          3.5,
		Features:       []string{"buttery"},
		Specifications: map[string]string{"Weight": "80g"},
	}

	form := FormFromProduct(p)
	form.AddFeature("flaky")
	form.Features[0] = "changed"
	form.SetSpec("Weight", "90g")

	// Edits to the working copy never reach the source record.
	assert.Equal(t, []string{"buttery"}, p.Features)
	assert.Equal(t, "80g", p.Specifications["Weight"])
}

func TestFormFromProductDefaultsEmptyFields(t *testing.T) {
	form := FormFromProduct(models.Product{Name: "Bare"})
	assert.Equal(t, models.CategoryCakes, form.Category)
	assert.Equal(t, models.ProductTypeRegular, form.ProductType)
	assert.Equal(t, "", form.Price)
}

func TestFeatureEditor(t *testing.T) {
	form := NewProductForm()

	form.AddFeature("  gluten free ")
	form.AddFeature("gluten free")
	form.AddFeature("")
	assert.Equal(t, []string{"gluten free", "gluten free"}, form.Features)

	form.RemoveFeature(0)
	assert.Equal(t, []string{"gluten free"}, form.Features)

	// Out-of-range indices are ignored.
	form.RemoveFeature(5)
	form.RemoveFeature(-1)
	assert.Len(t, form.Features, 1)
}

func TestSpecEditorOverwrites(t *testing.T) {
	form := NewProductForm()

	form.SetSpec(" Weight ", " 1kg ")
	form.SetSpec("Weight", "2kg")

	// One entry, last write wins.
	assert.Equal(t, map[string]string{"Weight": "2kg"}, form.Specifications)

	form.SetSpec("", "value")
	form.SetSpec("Size", "")
	assert.Len(t, form.Specifications, 1)

	form.RemoveSpec("Weight")
	assert.Empty(t, form.Specifications)
}

func TestFormBuildCoercesNumerics(t *testing.T) {
	form := NewProductForm()
	form.Name = "Tart"
	form.Price = "12.5"
	form.OriginalPrice = "not-a-number"
	form.Discount = ""
	form.Rating = "4.5"
	form.Reviews = "12"

	p := form.Build()
	assert.Equal(t, 12.5, p.Price)
	// Unparsable originalPrice falls back to price.
	assert.Equal(t, 12.5, p.OriginalPrice)
	assert.Equal(t, 0.0, p.Discount)
	assert.Equal(t, 4.5, p.Rating)
	assert.Equal(t, 12, p.Reviews)
}

func validForm(c *ProductConsole) {
	f := c.Form()
	f.Name = "Tart"
	f.Category = models.CategoryCakes
	f.Price = "12.5"
	f.Image = "/media/tart.jpg"
}

func TestSaveValidationGateBlocksNetworkCall(t *testing.T) {
	catalog := new(mockCatalog)
	c := NewProductConsole(catalog)

	c.BeginCreate()
	c.Form().Name = "Tart"
	// Price and Image missing.

	err := c.Save(context.Background())
	require.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, "Please fill in all required fields (Name, Category, Price, Image)", c.Error())

	// The gate fires before any catalog call is issued.
	catalog.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	assert.False(t, c.Saving())
}

func TestSaveCreateAppendsToList(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("List", mock.Anything).Return([]models.Product{{ID: "p1", Name: "Existing"}}, nil)
	catalog.On("Create", mock.Anything, mock.Anything).Return(&models.Product{ID: "p2", Name: "Tart"}, nil)

	c := NewProductConsole(catalog)
	c.Load(context.Background())
	c.BeginCreate()
	validForm(c)

	require.NoError(t, c.Save(context.Background()))
	products := c.Products()
	require.Len(t, products, 2)
	assert.Equal(t, "p2", products[1].ID)
	catalog.AssertExpectations(t)
}

func TestSaveEditUpdatesInPlace(t *testing.T) {
	existing := models.Product{ID: "p1", Name: "Old Name", Category: models.CategoryCakes, Price: 10, Image: "/media/a.jpg"}
	catalog := new(mockCatalog)
	catalog.On("List", mock.Anything).Return([]models.Product{existing}, nil)
	catalog.On("Update", mock.Anything, "p1", mock.Anything).Return(&models.Product{ID: "p1", Name: "New Name"}, nil)

	c := NewProductConsole(catalog)
	c.Load(context.Background())
	c.BeginEdit(existing)
	c.Form().Name = "New Name"

	require.NoError(t, c.Save(context.Background()))
	products := c.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "New Name", products[0].Name)
}

func TestSaveRejectsDoubleSubmit(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})

	catalog := new(mockCatalog)
	catalog.On("Create", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(entered)
			<-release
		}).Return(&models.Product{ID: "p1"}, nil).Once()

	c := NewProductConsole(catalog)
	c.BeginCreate()
	validForm(c)

	done := make(chan error, 1)
	go func() {
		done <- c.Save(context.Background())
	}()
	<-entered

	assert.True(t, c.Saving())
	assert.False(t, c.CanClose())
	require.ErrorIs(t, c.Save(context.Background()), ErrSaveInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.False(t, c.Saving())
	assert.True(t, c.CanClose())
	catalog.AssertExpectations(t)
}

func TestSaveFailureSurfacesError(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("catalog write failed"))

	c := NewProductConsole(catalog)
	c.BeginCreate()
	validForm(c)

	require.Error(t, c.Save(context.Background()))
	assert.Equal(t, "catalog write failed", c.Error())
	assert.Empty(t, c.Products())
}

func TestSearchFiltersLoadedList(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("List", mock.Anything).Return([]models.Product{
		{ID: "p1", Name: "Chocolate Cake", Category: models.CategoryCakes, ShortDescription: "rich"},
		{ID: "p2", Name: "Baguette", Category: models.CategoryBreads, ShortDescription: "crusty chocolate notes"},
		{ID: "p3", Name: "Muffin", Category: models.CategoryMuffins, ShortDescription: "plain"},
	}, nil)

	c := NewProductConsole(catalog)
	c.Load(context.Background())

	assert.Len(t, c.Search("CHOCOLATE"), 2)
	assert.Len(t, c.Search("breads"), 1)
	assert.Len(t, c.Search(""), 3)
	assert.Empty(t, c.Search("pizza"))
}

func TestConfirmDeleteRequiresArming(t *testing.T) {
	catalog := new(mockCatalog)
	c := NewProductConsole(catalog)

	require.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrDeleteNotArmed)
	catalog.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestConfirmDeleteRemovesProduct(t *testing.T) {
	catalog := new(mockCatalog)
	catalog.On("List", mock.Anything).Return([]models.Product{
		{ID: "p1"}, {ID: "p2"},
	}, nil)
	catalog.On("Delete", mock.Anything, "p1").Return(nil)

	c := NewProductConsole(catalog)
	c.Load(context.Background())

	c.RequestDelete("p1")
	require.NoError(t, c.ConfirmDelete(context.Background()))

	products := c.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "p2", products[0].ID)

	// The confirmation is single-use.
	require.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrDeleteNotArmed)
}

func TestCancelDeleteDisarms(t *testing.T) {
	catalog := new(mockCatalog)
	c := NewProductConsole(catalog)

	c.RequestDelete("p1")
	c.CancelDelete()
	require.ErrorIs(t, c.ConfirmDelete(context.Background()), ErrDeleteNotArmed)
	catalog.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
