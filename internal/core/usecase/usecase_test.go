package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-service/internal/adapters/memory"
	"listing-service/internal/core/access"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/filter"
	"listing-service/internal/core/lifecycle"
	"listing-service/internal/core/port"
	"listing-service/internal/core/query"
)

var (
	alice = domain.Principal{UserID: "alice", Email: "alice@example.com", Role: domain.RoleUser}
	bob   = domain.Principal{UserID: "bob", Email: "bob@example.com", Role: domain.RoleUser}
	admin = domain.Principal{UserID: "root", Email: "root@example.com", Role: domain.RoleAdmin}
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.Event
	err    error
}

func (r *recordingPublisher) Publish(_ context.Context, e domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recordingPublisher) types() []domain.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.EventType, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Type)
	}
	return out
}

type engine struct {
	properties *memory.PropertyStore
	inquiries  *memory.InquiryStore
	contacts   *memory.ContactStore
	events     *recordingPublisher

	list          *ListPropertiesUseCase
	get           *GetPropertyUseCase
	create        *CreatePropertyUseCase
	update        *UpdatePropertyUseCase
	remove        *DeletePropertyUseCase
	mine          *ListMyPropertiesUseCase
	inquire       *CreateInquiryUseCase
	myInquiries   *ListMyInquiriesUseCase
	propInquiries *ListPropertyInquiriesUseCase
	inquiryStatus *UpdateInquiryStatusUseCase
	dropInquiry   *DeleteInquiryUseCase
	contact       *CreateContactUseCase
	listContacts  *ListContactsUseCase
	contactStatus *UpdateContactStatusUseCase
	dropContact   *DeleteContactUseCase
}

func newEngine(propertyStore port.PropertyStoragePort) *engine {
	e := &engine{
		properties: memory.NewPropertyStore(),
		inquiries:  memory.NewInquiryStore(),
		contacts:   memory.NewContactStore(),
		events:     &recordingPublisher{},
	}
	var props port.PropertyStoragePort = e.properties
	if propertyStore != nil {
		props = propertyStore
	}
	users := memory.NewUserDirectory(
		domain.User{ID: "alice", Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser},
		domain.User{ID: "bob", Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser},
	)
	guard := access.NewGuard()
	manager := lifecycle.NewManager()
	executor := query.NewExecutor(props, users)

	e.list = NewListPropertiesUseCase(filter.NewCompiler(filter.DefaultOptions), executor)
	e.get = NewGetPropertyUseCase(props, executor)
	e.create = NewCreatePropertyUseCase(props, guard, e.events, executor)
	e.update = NewUpdatePropertyUseCase(props, guard, e.events, executor)
	e.remove = NewDeletePropertyUseCase(props, e.inquiries, guard, e.events)
	e.mine = NewListMyPropertiesUseCase(guard, executor)
	e.inquire = NewCreateInquiryUseCase(props, e.inquiries, guard, manager, e.events)
	e.myInquiries = NewListMyInquiriesUseCase(guard, executor, e.inquiries)
	e.propInquiries = NewListPropertyInquiriesUseCase(props, e.inquiries, guard)
	e.inquiryStatus = NewUpdateInquiryStatusUseCase(props, e.inquiries, guard, manager, e.events)
	e.dropInquiry = NewDeleteInquiryUseCase(props, e.inquiries, guard, e.events)
	e.contact = NewCreateContactUseCase(e.contacts, guard, manager, e.events)
	e.listContacts = NewListContactsUseCase(e.contacts, guard)
	e.contactStatus = NewUpdateContactStatusUseCase(e.contacts, guard, manager, e.events)
	e.dropContact = NewDeleteContactUseCase(e.contacts, guard, e.events)
	return e
}

func draft(title string) domain.PropertyDraft {
	return domain.PropertyDraft{
		Title:        title,
		Description:  "Bright and quiet",
		Price:        250000,
		Location:     domain.Location{Address: "12 Oak St", City: "Austin", State: "TX", ZipCode: "73301"},
		PropertyType: domain.PropertyTypeHouse,
		Status:       domain.ListingForSale,
		Features:     domain.Features{Bedrooms: 3, Bathrooms: 2, SquareFeet: 1400},
		Images:       []string{"https://cdn.example.com/1.jpg"},
	}
}

func inquiryInput() domain.InquiryInput {
	return domain.InquiryInput{Name: "Carol", Email: "carol@example.com", Phone: "555-0101", Message: "Can I visit on Friday?"}
}

func TestCreateProperty_OwnerForcedToPrincipal(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()

	p, err := e.create.Execute(ctx, alice, draft("Family home"))
	require.NoError(t, err)
	assert.Equal(t, "alice", p.OwnerID)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	assert.Equal(t, domain.OwnerSummary{ID: "alice", Name: "Alice", Email: "alice@example.com"}, p.Owner)

	stored, err := e.properties.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.OwnerID)
	assert.Equal(t, []domain.EventType{domain.EventPropertyCreated}, e.events.types())
}

func TestCreateProperty_RequiresAuthentication(t *testing.T) {
	e := newEngine(nil)
	_, err := e.create.Execute(context.Background(), domain.Anonymous, draft("x"))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	assert.Empty(t, e.events.types())
}

func TestCreateProperty_InvalidDraft(t *testing.T) {
	e := newEngine(nil)
	d := draft("x")
	d.Price = -5
	_, err := e.create.Execute(context.Background(), alice, d)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "price", vErr.Field)
}

func TestGetProperty_EmbedsOwnerSummary(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Loft"))
	require.NoError(t, err)

	view, err := e.get.Execute(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OwnerSummary{ID: "alice", Name: "Alice", Email: "alice@example.com"}, view.Owner)

	_, err = e.get.Execute(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestDeleteProperty_NonOwnerIsForbiddenAndListingRemains(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Keep me"))
	require.NoError(t, err)

	err = e.remove.Execute(ctx, bob, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.properties.FindByID(ctx, p.ID)
	assert.NoError(t, err)
}

func TestUpdateProperty_NonOwnerForbiddenRegardlessOfPayload(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Original"))
	require.NoError(t, err)

	title := "Hijacked"
	badPrice := -1.0
	for _, patch := range []domain.PropertyPatch{{}, {Title: &title}, {Price: &badPrice}} {
		_, err := e.update.Execute(ctx, bob, p.ID, patch)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	}

	stored, _ := e.properties.FindByID(ctx, p.ID)
	assert.Equal(t, "Original", stored.Title)
}

func TestUpdateProperty_OwnerAppliesPatchAndKeepsIdentity(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Original"))
	require.NoError(t, err)

	title := "Renovated"
	price := 275000.0
	rent := domain.ListingForRent
	updated, err := e.update.Execute(ctx, alice, p.ID, domain.PropertyPatch{Title: &title, Price: &price, Status: &rent})
	require.NoError(t, err)

	assert.Equal(t, "Renovated", updated.Title)
	assert.Equal(t, 275000.0, updated.Price)
	assert.Equal(t, domain.ListingForRent, updated.Status)
	assert.Equal(t, p.ID, updated.ID)
	assert.Equal(t, "alice", updated.OwnerID)
	assert.Equal(t, "Alice", updated.Owner.Name)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(p.UpdatedAt))
}

func TestUpdateProperty_ErrorPrecedence(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Original"))
	require.NoError(t, err)

	_, err = e.update.Execute(ctx, domain.Anonymous, "missing", domain.PropertyPatch{})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = e.update.Execute(ctx, bob, "missing", domain.PropertyPatch{})
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)

	empty := ""
	_, err = e.update.Execute(ctx, alice, p.ID, domain.PropertyPatch{Title: &empty})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)
}

func TestDeleteProperty_CascadesInquiries(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Sold soon"))
	require.NoError(t, err)
	_, err = e.inquire.Execute(ctx, p.ID, inquiryInput())
	require.NoError(t, err)

	require.NoError(t, e.remove.Execute(ctx, alice, p.ID))

	_, err = e.properties.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
	left, err := e.inquiries.FindByProperties(ctx, []string{p.ID})
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Contains(t, e.events.types(), domain.EventPropertyDeleted)
}

func TestInquiry_VisibleToOwnerAsNew(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Cottage"))
	require.NoError(t, err)

	inq, err := e.inquire.Execute(ctx, p.ID, inquiryInput())
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryNew, inq.Status)

	mine, err := e.myInquiries.Execute(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, inq.ID, mine[0].ID)
	assert.Equal(t, domain.InquiryNew, mine[0].Status)
	assert.Equal(t, "Cottage", mine[0].Property.Title)
	assert.Equal(t, []string{"https://cdn.example.com/1.jpg"}, mine[0].Property.Images)

	others, err := e.myInquiries.Execute(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestCreateInquiry_UnknownPropertyPersistsNothing(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()

	_, err := e.inquire.Execute(ctx, "ghost", inquiryInput())
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)

	left, err := e.inquiries.FindByProperties(ctx, []string{"ghost"})
	require.NoError(t, err)
	assert.Empty(t, left)
	assert.Empty(t, e.events.types())
}

func TestCreateInquiry_InvalidInput(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Cottage"))
	require.NoError(t, err)

	in := inquiryInput()
	in.Message = ""
	_, err = e.inquire.Execute(ctx, p.ID, in)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "message", vErr.Field)
}

func TestListPropertyInquiries_OwnerOnly(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Cottage"))
	require.NoError(t, err)
	_, err = e.inquire.Execute(ctx, p.ID, inquiryInput())
	require.NoError(t, err)

	list, err := e.propInquiries.Execute(ctx, alice, p.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = e.propInquiries.Execute(ctx, bob, p.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.propInquiries.Execute(ctx, domain.Anonymous, p.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = e.propInquiries.Execute(ctx, alice, "ghost")
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestInquiryStatusAndDelete(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Cottage"))
	require.NoError(t, err)
	inq, err := e.inquire.Execute(ctx, p.ID, inquiryInput())
	require.NoError(t, err)

	_, err = e.inquiryStatus.Execute(ctx, bob, inq.ID, domain.StatusChange[domain.InquiryStatus]{Status: domain.InquiryRead})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := e.inquiryStatus.Execute(ctx, alice, inq.ID, domain.StatusChange[domain.InquiryStatus]{Status: domain.InquiryReplied})
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryReplied, updated.Status)

	_, err = e.inquiryStatus.Execute(ctx, alice, inq.ID, domain.StatusChange[domain.InquiryStatus]{Status: "archived"})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	stored, err := e.inquiries.FindByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryReplied, stored.Status)

	assert.ErrorIs(t, e.dropInquiry.Execute(ctx, bob, inq.ID), domain.ErrForbidden)
	require.NoError(t, e.dropInquiry.Execute(ctx, alice, inq.ID))
	assert.ErrorIs(t, e.dropInquiry.Execute(ctx, alice, inq.ID), domain.ErrInquiryNotFound)
}

func TestStatusChange_MalformedReportedAfterAccessCheck(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Cottage"))
	require.NoError(t, err)
	inq, err := e.inquire.Execute(ctx, p.ID, inquiryInput())
	require.NoError(t, err)

	malformed := domain.NewValidationError("status", "must be one of new, read, replied")
	change := domain.StatusChange[domain.InquiryStatus]{Malformed: malformed}

	_, err = e.inquiryStatus.Execute(ctx, domain.Anonymous, inq.ID, change)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = e.inquiryStatus.Execute(ctx, bob, inq.ID, change)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = e.inquiryStatus.Execute(ctx, alice, inq.ID, change)
	assert.Same(t, malformed, err)

	stored, err := e.inquiries.FindByID(ctx, inq.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InquiryNew, stored.Status)
}

func TestContacts_AdminOnly(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()

	c, err := e.contact.Execute(ctx, domain.ContactInput{Name: "Dan", Email: "dan@example.com", Subject: "Fees", Message: "What are your fees?"})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactNew, c.Status)

	_, err = e.listContacts.Execute(ctx, domain.Anonymous)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	_, err = e.listContacts.Execute(ctx, alice)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	list, err := e.listContacts.Execute(ctx, admin)
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = e.contactStatus.Execute(ctx, alice, c.ID, domain.StatusChange[domain.ContactStatus]{Status: domain.ContactResolved})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	updated, err := e.contactStatus.Execute(ctx, admin, c.ID, domain.StatusChange[domain.ContactStatus]{Status: domain.ContactInReview})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactInReview, updated.Status)

	_, err = e.contactStatus.Execute(ctx, admin, "ghost", domain.StatusChange[domain.ContactStatus]{Status: domain.ContactResolved})
	assert.ErrorIs(t, err, domain.ErrContactNotFound)
	assert.EqualError(t, domain.ErrContactNotFound, "contact message not found")

	assert.ErrorIs(t, e.dropContact.Execute(ctx, alice, c.ID), domain.ErrForbidden)
	require.NoError(t, e.dropContact.Execute(ctx, admin, c.ID))
	assert.ErrorIs(t, e.dropContact.Execute(ctx, admin, c.ID), domain.ErrContactNotFound)
}

func TestListMyProperties(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	_, err := e.create.Execute(ctx, alice, draft("A1"))
	require.NoError(t, err)
	_, err = e.create.Execute(ctx, bob, draft("B1"))
	require.NoError(t, err)

	_, err = e.mine.Execute(ctx, domain.Anonymous)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	mine, err := e.mine.Execute(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "A1", mine[0].Title)
}

func TestListProperties_HugePageIsEmpty(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	_, err := e.create.Execute(ctx, alice, draft("Only one"))
	require.NoError(t, err)

	page, err := e.list.Execute(ctx, map[string]string{"page": "9223372036854775807"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)
}

func TestListProperties_RejectsBadFilter(t *testing.T) {
	e := newEngine(nil)
	_, err := e.list.Execute(context.Background(), map[string]string{"minPrice": "10", "maxPrice": "5"})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestPublishFailureDoesNotFailWrite(t *testing.T) {
	e := newEngine(nil)
	e.events.err = errors.New("broker down")

	p, err := e.create.Execute(context.Background(), alice, draft("Still saved"))
	require.NoError(t, err)
	_, err = e.properties.FindByID(context.Background(), p.ID)
	assert.NoError(t, err)
}

type failingPropertyStore struct {
	*memory.PropertyStore
}

func (failingPropertyStore) FindWithFilters(context.Context, domain.PropertyQuery) ([]domain.Property, int, error) {
	return nil, 0, errors.New("connection reset")
}

func (failingPropertyStore) FindByID(context.Context, string) (*domain.Property, error) {
	return nil, errors.New("connection reset")
}

func TestStoreFailuresSurfaceAsStoreError(t *testing.T) {
	e := newEngine(failingPropertyStore{memory.NewPropertyStore()})
	ctx := context.Background()

	_, err := e.list.Execute(ctx, nil)
	var sErr *domain.StoreError
	require.ErrorAs(t, err, &sErr)

	_, err = e.get.Execute(ctx, "p1")
	require.ErrorAs(t, err, &sErr)

	err = e.remove.Execute(ctx, alice, "p1")
	require.ErrorAs(t, err, &sErr)

	_, err = e.inquire.Execute(ctx, "p1", inquiryInput())
	require.ErrorAs(t, err, &sErr)
}

func TestUpdateProperty_MalformedBodyReportedOnlyToOwner(t *testing.T) {
	e := newEngine(nil)
	ctx := context.Background()
	p, err := e.create.Execute(ctx, alice, draft("Original"))
	require.NoError(t, err)

	patch := domain.PropertyPatch{Malformed: domain.NewValidationError("price", "must be a number")}

	_, err = e.update.Execute(ctx, bob, p.ID, patch)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = e.update.Execute(ctx, alice, p.ID, patch)
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "price", validationErr.Field)
}
