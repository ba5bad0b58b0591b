package grpcserver

import "workoutLists/models"

// Empty is returned by operations whose only result is success.
type Empty struct{}

type AllListsRequest struct{}

type AllListsResponse struct {
	Lists []models.ListSummary `json:"lists"`
}

type ListRequest struct {
	ListID int64 `json:"list_id"`
}

type GetListResponse struct {
	List models.ListDetail `json:"list"`
}

type EntryRequest struct {
	ListID  int64 `json:"list_id"`
	EntryID int64 `json:"entry_id"`
}

type EntryResponse struct {
	Entry models.Entry `json:"entry"`
}

type CompleteAllResponse struct {
	// Outcome is "updated" or "noop"; an unknown list is a NotFound error.
	Outcome string `json:"outcome"`
}

type CreateEntryRequest struct {
	ListID int64  `json:"list_id"`
	Title  string `json:"title"`
	models.EntryAttrs
}

type CreateListRequest struct {
	Title string `json:"title"`
}

type RenameListRequest struct {
	ListID int64  `json:"list_id"`
	Title  string `json:"title"`
}

type TitleExistsRequest struct {
	Title string `json:"title"`
}

type TitleExistsResponse struct {
	Exists bool `json:"exists"`
}

type SignInRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SignInResponse struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}
