package cart

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dinehall/internal/catalog"
	"dinehall/internal/domain"
)

func newTestService(t *testing.T) (*Service, *catalog.MemoryStore) {
	t.Helper()
	cat := catalog.NewMemoryStore()
	ctx := context.Background()
	_, err := cat.Create(ctx, domain.MenuItem{Name: "Margherita", Price: 8.99, Category: "pizza", IsAvailable: true})
	require.NoError(t, err)
	_, err = cat.Create(ctx, domain.MenuItem{Name: "Ribeye", Price: 22.99, Category: "mains", IsAvailable: true})
	require.NoError(t, err)
	_, err = cat.Create(ctx, domain.MenuItem{Name: "Off Menu Special", Price: 15.00, Category: "mains", IsAvailable: false})
	require.NoError(t, err)
	return NewService(NewMemoryStore(), cat), cat
}

func TestServiceAddResolvesCatalogItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	sum, err := svc.Add(ctx, "sess-1", 1, 2, "extra cheese")
	require.NoError(t, err)
	require.Len(t, sum.Lines, 1)
	assert.Equal(t, "Margherita", sum.Lines[0].Name)
	assert.Equal(t, 8.99, sum.Lines[0].UnitPrice)
	assert.Equal(t, "extra cheese", sum.Lines[0].SpecialInstructions)
	assert.Equal(t, 17.98, sum.Subtotal)
}

func TestServiceAddErrors(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-1", 99, 1, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	var unavailable *domain.ItemUnavailableError
	_, err = svc.Add(ctx, "sess-1", 3, 1, "")
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, int64(3), unavailable.MenuItemID)

	var invalid *domain.ValidationError
	_, err = svc.Add(ctx, "sess-1", 1, 0, "")
	assert.ErrorAs(t, err, &invalid)
}

func TestServiceSetQuantityAndRemove(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-1", 1, 2, "")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "sess-1", 2, 1, "")
	require.NoError(t, err)

	sum, err := svc.SetQuantity(ctx, "sess-1", 1, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Lines[0].Quantity)

	sum, err = svc.Remove(ctx, "sess-1", 1)
	require.NoError(t, err)
	require.Len(t, sum.Lines, 1)
	assert.Equal(t, int64(2), sum.Lines[0].MenuItemID)

	_, err = svc.SetQuantity(ctx, "sess-1", 99, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServiceCartsAreSessionScoped(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-1", 1, 1, "")
	require.NoError(t, err)

	other, err := svc.Summary(ctx, "sess-2")
	require.NoError(t, err)
	assert.Empty(t, other.Lines)
}

func TestServiceClear(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Add(ctx, "sess-1", 1, 1, "")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "sess-1"))

	sum, err := svc.Summary(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, sum.Lines)
	assert.Equal(t, 0.0, sum.Subtotal)
}
