package memory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-service/internal/core/domain"
)

var base = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func property(id, owner string, price float64, city string, created time.Time) *domain.Property {
	return &domain.Property{
		ID: id, Title: "t-" + id, Price: price, OwnerID: owner,
		Location:     domain.Location{Address: "1 Main", City: city, State: "TX", ZipCode: "73301"},
		PropertyType: domain.PropertyTypeHouse, Status: domain.ListingForSale,
		Features:  domain.Features{Bedrooms: 2, Bathrooms: 1, SquareFeet: 900},
		Images:    []string{"https://img/" + id},
		CreatedAt: created, UpdatedAt: created,
	}
}

func TestPropertyStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewPropertyStore()

	p := property("p1", "u1", 100, "Austin", base)
	require.NoError(t, s.Create(ctx, p))

	got, err := s.FindByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, *p, *got)

	got.Images[0] = "mutated"
	again, _ := s.FindByID(ctx, "p1")
	assert.Equal(t, "https://img/p1", again.Images[0])

	upd := *got
	upd.Title = "new title"
	upd.OwnerID = "attacker"
	upd.CreatedAt = base.Add(time.Hour)
	require.NoError(t, s.Update(ctx, &upd))
	again, _ = s.FindByID(ctx, "p1")
	assert.Equal(t, "new title", again.Title)
	assert.Equal(t, "u1", again.OwnerID)
	assert.Equal(t, base, again.CreatedAt)

	require.NoError(t, s.Delete(ctx, "p1"))
	_, err = s.FindByID(ctx, "p1")
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "p1"), domain.ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, &upd), domain.ErrPropertyNotFound)
}

func TestPropertyStore_CitySubstringIgnoresCase(t *testing.T) {
	ctx := context.Background()
	s := NewPropertyStore()
	require.NoError(t, s.Create(ctx, property("p1", "u1", 100, "San Antonio", base)))
	require.NoError(t, s.Create(ctx, property("p2", "u1", 100, "Austin", base.Add(time.Minute))))

	items, total, err := s.FindWithFilters(ctx, domain.PropertyQuery{
		Predicate:  domain.PropertyPredicate{City: "ANTON"},
		Pagination: domain.Pagination{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
}

func TestPropertyStore_SortTieBreakIsDeterministic(t *testing.T) {
	ctx := context.Background()
	s := NewPropertyStore()
	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Create(ctx, property(id, "u1", 100, "Austin", base)))
	}

	newest, _, err := s.FindWithFilters(ctx, domain.PropertyQuery{Sort: domain.SortNewest})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids(newest))

	byPrice, _, err := s.FindWithFilters(ctx, domain.PropertyQuery{Sort: domain.SortPriceDesc})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, ids(byPrice))
}

func TestPropertyStore_PageBeyondEnd(t *testing.T) {
	ctx := context.Background()
	s := NewPropertyStore()
	require.NoError(t, s.Create(ctx, property("p1", "u1", 100, "Austin", base)))

	items, total, err := s.FindWithFilters(ctx, domain.PropertyQuery{Pagination: domain.Pagination{Page: 5, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, items)
}

func TestPropertyStore_HugePageIsEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewPropertyStore()
	require.NoError(t, s.Create(ctx, property("p1", "u1", 100, "Austin", base)))

	items, total, err := s.FindWithFilters(ctx, domain.PropertyQuery{Pagination: domain.Pagination{Page: math.MaxInt, Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Empty(t, items)
}

func TestInquiryStore_DeleteByProperty(t *testing.T) {
	ctx := context.Background()
	s := NewInquiryStore()
	require.NoError(t, s.Create(ctx, &domain.Inquiry{ID: "i1", PropertyID: "p1", CreatedAt: base}))
	require.NoError(t, s.Create(ctx, &domain.Inquiry{ID: "i2", PropertyID: "p1", CreatedAt: base.Add(time.Second)}))
	require.NoError(t, s.Create(ctx, &domain.Inquiry{ID: "i3", PropertyID: "p2", CreatedAt: base}))

	list, err := s.FindByProperties(ctx, []string{"p1", "p2"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "i2", list[0].ID)

	n, err := s.DeleteByProperty(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err = s.FindByProperties(ctx, []string{"p1", "p2"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "i3", list[0].ID)
}

func TestInquiryStore_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := NewInquiryStore()
	require.NoError(t, s.Create(ctx, &domain.Inquiry{ID: "i1", Status: domain.InquiryNew}))

	later := base.Add(time.Hour)
	require.NoError(t, s.UpdateStatus(ctx, "i1", domain.InquiryReplied, later))
	got, err := s.FindByID(ctx, "i1")
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryReplied, got.Status)
	assert.Equal(t, later, got.UpdatedAt)

	assert.ErrorIs(t, s.UpdateStatus(ctx, "missing", domain.InquiryRead, later), domain.ErrInquiryNotFound)
}

func TestContactStore_FindAllNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewContactStore()
	require.NoError(t, s.Create(ctx, &domain.Contact{ID: "c1", CreatedAt: base}))
	require.NoError(t, s.Create(ctx, &domain.Contact{ID: "c2", CreatedAt: base.Add(time.Minute)}))

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "c2", all[0].ID)

	require.NoError(t, s.Delete(ctx, "c1"))
	assert.ErrorIs(t, s.Delete(ctx, "c1"), domain.ErrContactNotFound)
}

func TestUserDirectory_SkipsUnknown(t *testing.T) {
	d := NewUserDirectory(domain.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: domain.RoleUser})
	got, err := d.FindSummaries(context.Background(), []string{"u1", "ghost"})
	require.NoError(t, err)
	assert.Equal(t, map[string]domain.OwnerSummary{"u1": {ID: "u1", Name: "Ann", Email: "ann@example.com"}}, got)
}

func ids(items []domain.Property) []string {
	out := make([]string, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}
