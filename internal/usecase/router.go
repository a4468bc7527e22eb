package usecase

import "servicehub/internal/domain/entity"

// Page names match the screens of the client application.
type Page string

const (
	PageHome            Page = "home"
	PageRegister        Page = "register"
	PageBuyerDashboard  Page = "buyer-dashboard"
	PageSellerDashboard Page = "seller-dashboard"
	PageAddService      Page = "add-service"
	PageListingDetail   Page = "view-service"
	PageChatList        Page = "chat-list"
	PageChatWindow      Page = "chat-window"
)

// Route is the client's navigation state: a page plus the selection that
// page is scoped to. It replaces ad hoc current-page/current-selection
// variables with one explicit value.
type Route struct {
	Page      Page   `json:"page"`
	ListingID string `json:"listing_id,omitempty"`
	ChatID    string `json:"chat_id,omitempty"`
}

// NavEvent is a navigation intent. Transition is the only interpreter;
// events that make no sense for the current route leave it unchanged.
type NavEvent interface {
	isNavEvent()
}

type ProfileResolved struct{ Role string }
type ProfileMissing struct{}
type Registered struct{ Role string }
type OpenListing struct{ ListingID string }
type OpenChats struct{}
type OpenChat struct{ ChatID string }
type OpenAddService struct{}
type GoHome struct{ Role string }
type Back struct{}
type SignedOut struct{}

func (ProfileResolved) isNavEvent() {}
func (ProfileMissing) isNavEvent()  {}
func (Registered) isNavEvent()      {}
func (OpenListing) isNavEvent()     {}
func (OpenChats) isNavEvent()       {}
func (OpenChat) isNavEvent()        {}
func (OpenAddService) isNavEvent()  {}
func (GoHome) isNavEvent()          {}
func (Back) isNavEvent()            {}
func (SignedOut) isNavEvent()       {}

// Transition is a pure function from (route, event) to the next route.
func Transition(current Route, event NavEvent) Route {
	switch e := event.(type) {
	case ProfileResolved:
		return dashboardFor(e.Role)
	case ProfileMissing:
		return Route{Page: PageRegister}
	case Registered:
		return dashboardFor(e.Role)
	case OpenListing:
		return Route{Page: PageListingDetail, ListingID: e.ListingID}
	case OpenChats:
		return Route{Page: PageChatList}
	case OpenChat:
		return Route{Page: PageChatWindow, ChatID: e.ChatID}
	case OpenAddService:
		if current.Page == PageSellerDashboard {
			return Route{Page: PageAddService}
		}
		return current
	case GoHome:
		return dashboardFor(e.Role)
	case Back:
		switch current.Page {
		case PageListingDetail:
			return Route{Page: PageBuyerDashboard}
		case PageAddService:
			return Route{Page: PageSellerDashboard}
		case PageChatWindow:
			return Route{Page: PageChatList}
		}
		return current
	case SignedOut:
		return Route{Page: PageHome}
	}
	return current
}

func dashboardFor(role string) Route {
	switch role {
	case entity.RoleBuyer:
		return Route{Page: PageBuyerDashboard}
	case entity.RoleSeller:
		return Route{Page: PageSellerDashboard}
	}
	return Route{Page: PageHome}
}
