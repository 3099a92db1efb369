package access

import (
	"fmt"

	"listing-service/internal/core/domain"
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	// ActionReadOwned - выборка в пределах ресурсов субъекта ("мои объявления", "мои запросы")
	ActionReadOwned Action = "read-owned"
	ActionUpdate    Action = "update"
	ActionDelete    Action = "delete"
)

type Kind string

const (
	KindProperty Kind = "property"
	KindInquiry  Kind = "inquiry"
	KindContact  Kind = "contact"
)

// Resource - то, над чем выполняется действие.
// Для запросов (inquiry) OwnerID - владелец объявления, к которому относится запрос.
// Missing выставляется, когда цель действия не найдена: объявление при создании и
// чтении запросов, сам запрос при смене статуса и удалении.
type Resource struct {
	Kind    Kind
	ID      string
	OwnerID string
	Missing bool
}

type Reason string

const (
	ReasonNone             Reason = ""
	ReasonUnauthenticated  Reason = "unauthenticated"
	ReasonNotOwner         Reason = "not the owner"
	ReasonInsufficientRole Reason = "insufficient role"
	ReasonNotFound         Reason = "target not found"
	ReasonUnknownAction    Reason = "action not permitted"
)

// Scope - границы разрешенной мутации
type Scope struct {
	ResourceID string
	OwnerID    string
}

type Decision struct {
	Allowed bool
	Reason  Reason
	Scope   Scope

	notFound error
}

// Err переводит отказ в доменную ошибку; для разрешения возвращает nil.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case ReasonUnauthenticated:
		return domain.ErrUnauthenticated
	case ReasonNotFound:
		if d.notFound != nil {
			return d.notFound
		}
		return domain.ErrNotFound
	default:
		return fmt.Errorf("%w: %s", domain.ErrForbidden, d.Reason)
	}
}

func allow(scope Scope) Decision {
	return Decision{Allowed: true, Scope: scope}
}

func deny(reason Reason) Decision {
	return Decision{Reason: reason}
}

func missing(kind Kind, action Action) Decision {
	d := deny(ReasonNotFound)
	switch {
	case kind == KindContact:
		d.notFound = domain.ErrContactNotFound
	case kind == KindInquiry && (action == ActionUpdate || action == ActionDelete):
		d.notFound = domain.ErrInquiryNotFound
	default:
		d.notFound = domain.ErrPropertyNotFound
	}
	return d
}

// Guard - чистая функция политики доступа, без обращения к хранилищу.
type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

func (g *Guard) Decide(principal domain.Principal, action Action, res Resource) Decision {
	switch res.Kind {
	case KindProperty:
		return g.decideProperty(principal, action, res)
	case KindInquiry:
		return g.decideInquiry(principal, action, res)
	case KindContact:
		return g.decideContact(principal, action, res)
	}
	return deny(ReasonUnknownAction)
}

func (g *Guard) decideProperty(principal domain.Principal, action Action, res Resource) Decision {
	switch action {
	case ActionRead:
		return allow(Scope{ResourceID: res.ID})
	case ActionCreate:
		if !principal.Authenticated() {
			return deny(ReasonUnauthenticated)
		}
		// владелец всегда принудительно равен субъекту
		return allow(Scope{OwnerID: principal.UserID})
	case ActionReadOwned:
		if !principal.Authenticated() {
			return deny(ReasonUnauthenticated)
		}
		return allow(Scope{OwnerID: principal.UserID})
	case ActionUpdate, ActionDelete:
		if !principal.Authenticated() {
			return deny(ReasonUnauthenticated)
		}
		if res.Missing {
			return missing(KindProperty, action)
		}
		if res.OwnerID != principal.UserID {
			return deny(ReasonNotOwner)
		}
		return allow(Scope{ResourceID: res.ID, OwnerID: res.OwnerID})
	}
	return deny(ReasonUnknownAction)
}

func (g *Guard) decideInquiry(principal domain.Principal, action Action, res Resource) Decision {
	switch action {
	case ActionCreate:
		if res.Missing {
			return missing(KindInquiry, action)
		}
		return allow(Scope{ResourceID: res.ID, OwnerID: res.OwnerID})
	case ActionReadOwned:
		if !principal.Authenticated() {
			return deny(ReasonUnauthenticated)
		}
		return allow(Scope{OwnerID: principal.UserID})
	case ActionRead, ActionUpdate, ActionDelete:
		if !principal.Authenticated() {
			return deny(ReasonUnauthenticated)
		}
		if res.Missing {
			return missing(KindInquiry, action)
		}
		if res.OwnerID != principal.UserID {
			return deny(ReasonNotOwner)
		}
		return allow(Scope{ResourceID: res.ID, OwnerID: res.OwnerID})
	}
	return deny(ReasonUnknownAction)
}

func (g *Guard) decideContact(principal domain.Principal, action Action, res Resource) Decision {
	switch action {
	case ActionCreate:
		return allow(Scope{})
	case ActionRead, ActionUpdate, ActionDelete:
		if !principal.Authenticated() {
			return deny(ReasonUnauthenticated)
		}
		if principal.Role != domain.RoleAdmin {
			return deny(ReasonInsufficientRole)
		}
		if res.Missing {
			return missing(KindContact, action)
		}
		return allow(Scope{ResourceID: res.ID})
	}
	return deny(ReasonUnknownAction)
}
