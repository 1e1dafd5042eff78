package inventory_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rogerio-castellano/inventory-store/internal/config"
	"github.com/rogerio-castellano/inventory-store/internal/inventory"
	"github.com/rogerio-castellano/inventory-store/internal/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newMemoryService(t *testing.T) (*inventory.Service, *repo.InMemoryProductRepository) {
	t.Helper()
	products := repo.NewInMemoryProductRepository()
	users := repo.NewInMemoryUserRepository()
	summary := repo.NewInMemorySummaryRepository(products, users)
	return inventory.NewService(products, users, summary, zaptest.NewLogger(t)), products
}

func TestAddProduct_Valid(t *testing.T) {
	svc, products := newMemoryService(t)

	require.NoError(t, svc.AddProduct("  Laptop ", 1, ""))

	all := products.GetAllProducts()
	require.Len(t, all, 1)
	assert.Equal(t, "Laptop", all[0].Name)
	assert.Equal(t, 1, all[0].Quantity)
}

func TestAddProduct_Invalid(t *testing.T) {
	svc, products := newMemoryService(t)

	tests := []struct {
		name           string
		product        string
		quantity       int
		expectedFields []string
	}{
		{name: "Empty name", product: "", quantity: 1, expectedFields: []string{"name"}},
		{name: "Blank name", product: "   ", quantity: 1, expectedFields: []string{"name"}},
		{name: "Negative quantity", product: "Keyboard", quantity: -1, expectedFields: []string{"quantity"}},
		{name: "Empty name and negative quantity", product: "", quantity: -1, expectedFields: []string{"name", "quantity"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.AddProduct(tt.product, tt.quantity, "")

			var verrs inventory.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			fields := make([]string, len(verrs))
			for i, e := range verrs {
				fields[i] = e.Field
			}
			assert.Equal(t, tt.expectedFields, fields)
		})
	}

	assert.Empty(t, products.GetAllProducts())
}

func TestEditAndRemoveProduct(t *testing.T) {
	svc, _ := newMemoryService(t)
	require.NoError(t, svc.AddProduct("Widget", 10, ""))
	id := svc.ListProducts()[0].ID

	require.NoError(t, svc.EditProduct(id, "Widget", 5, "updated"))
	p := svc.ListProducts()[0]
	assert.Equal(t, 5, p.Quantity)
	assert.Equal(t, "updated", p.Description)

	require.ErrorIs(t, svc.EditProduct(id+1, "Widget", 5, ""), inventory.ErrProductNotChanged)

	require.NoError(t, svc.RemoveProduct(id))
	require.ErrorIs(t, svc.RemoveProduct(id), inventory.ErrProductNotChanged)
	assert.Empty(t, svc.ListProducts())
}

func TestRegister(t *testing.T) {
	svc, _ := newMemoryService(t)

	require.NoError(t, svc.Register(" alice ", " alice@x.com ", " secret ", "secret"))
	require.NoError(t, svc.Login("alice", "secret"))
	require.ErrorIs(t, svc.Login("alice", "wrong"), inventory.ErrInvalidCredentials)
	require.ErrorIs(t, svc.Register("bob", "alice@x.com", "pw", "pw"), inventory.ErrRegistrationRejected)
}

func TestRegister_Invalid(t *testing.T) {
	svc, _ := newMemoryService(t)

	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		field    string
	}{
		{name: "Blank username", username: "  ", password: "pw", confirm: "pw", field: "username"},
		{name: "Blank password", username: "alice", password: " ", confirm: "", field: "password"},
		{name: "Mismatched confirmation", username: "alice", password: "pw", confirm: "pw2", field: "confirm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.Register(tt.username, "a@x.com", tt.password, tt.confirm)

			var verrs inventory.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			assert.Equal(t, tt.field, verrs[0].Field)
		})
	}

	require.ErrorIs(t, svc.Login("alice", "pw"), inventory.ErrInvalidCredentials)
}

func TestSummary(t *testing.T) {
	svc, _ := newMemoryService(t)
	require.NoError(t, svc.AddProduct("Widget", 10, ""))
	require.NoError(t, svc.Register("alice", "alice@x.com", "secret", "secret"))

	m, err := svc.Summary()
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalProducts)
	assert.Equal(t, 10, m.TotalQuantity)
	assert.Equal(t, 1, m.TotalUsers)
}

func TestServiceOverSQLiteStore(t *testing.T) {
	store, err := repo.Open(config.StoreConfig{
		Driver:         config.DriverSQLite,
		Path:           filepath.Join(t.TempDir(), "inventory.db"),
		SchemaVersion:  repo.SchemaVersion,
		OpTimeout:      3 * time.Second,
		PasswordScheme: config.SchemePlain,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	svc := inventory.NewService(store, store, store, zaptest.NewLogger(t))

	require.NoError(t, svc.AddProduct("Widget", 10, ""))
	products := svc.ListProducts()
	require.Len(t, products, 1)
	assert.Equal(t, "", products[0].Description)

	require.NoError(t, svc.Register("alice", "alice@x.com", "secret", "secret"))
	require.NoError(t, svc.Login("alice", "secret"))
	require.ErrorIs(t, svc.Register("bob", "alice@x.com", "pw", "pw"), inventory.ErrRegistrationRejected)
}
