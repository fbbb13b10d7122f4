package handler

import (
	accountdomain "family-tree-go/internal/domain/account"
	authdomain "family-tree-go/internal/domain/auth"
	eventdomain "family-tree-go/internal/domain/event"
	familydomain "family-tree-go/internal/domain/family"
	historydomain "family-tree-go/internal/domain/history"
	marriagedomain "family-tree-go/internal/domain/marriage"
	mediadomain "family-tree-go/internal/domain/media"
	memberdomain "family-tree-go/internal/domain/member"
	reldomain "family-tree-go/internal/domain/relationship"
	"family-tree-go/pkg/logger"
)

type Handlers struct {
	Auth          *authdomain.Service
	Families      *familydomain.Service
	Members       *memberdomain.Service
	Marriages     *marriagedomain.Service
	Relationships *reldomain.Service
	Accounts      *accountdomain.Service
	Events        *eventdomain.Service
	History       *historydomain.Service
	Media         *mediadomain.Service
	log           logger.Logger
}

func New(
	auth *authdomain.Service,
	families *familydomain.Service,
	members *memberdomain.Service,
	marriages *marriagedomain.Service,
	relationships *reldomain.Service,
	accounts *accountdomain.Service,
	events *eventdomain.Service,
	history *historydomain.Service,
	media *mediadomain.Service,
	log logger.Logger,
) *Handlers {
	return &Handlers{
		Auth:          auth,
		Families:      families,
		Members:       members,
		Marriages:     marriages,
		Relationships: relationships,
		Accounts:      accounts,
		Events:        events,
		History:       history,
		Media:         media,
		log:           log,
	}
}
