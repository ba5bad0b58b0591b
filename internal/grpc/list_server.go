package grpcserver

import (
	"context"
	"log"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"workoutLists/internal/auth"
	"workoutLists/internal/db"
	"workoutLists/models"
	"workoutLists/repository"
)

// ListServer implements ListServiceServer. Every call builds a repository
// scoped to the authenticated principal.
type ListServer struct {
	Lists repository.ListScope
}

var (
	errNotFound       = status.Error(codes.NotFound, "not found")
	errDuplicateTitle = status.Error(codes.AlreadyExists, "list title must be unique")
)

// scoped returns the caller's repository.
func (s *ListServer) scoped(ctx context.Context) (repository.ListRepositoryI, error) {
	p, err := auth.RequirePrincipal(ctx)
	if err != nil {
		return nil, err
	}
	return s.Lists(p.Name), nil
}

// internalError logs a storage failure and hides its details from the caller.
func internalError(op string, err error) error {
	log.Printf("grpc %s: %v", op, err)
	return status.Error(codes.Internal, "internal error")
}

func (s *ListServer) AllLists(ctx context.Context, _ *AllListsRequest) (*AllListsResponse, error) {
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	lists, err := repo.AllLists(ctx)
	if err != nil {
		return nil, internalError("all lists", err)
	}
	return &AllListsResponse{Lists: models.Summaries(lists)}, nil
}

// GetList returns the list with its entries in display order.
func (s *ListServer) GetList(ctx context.Context, req *ListRequest) (*GetListResponse, error) {
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	l, err := repo.GetList(ctx, req.ListID)
	if err != nil {
		return nil, internalError("get list", err)
	}
	if l == nil {
		return nil, errNotFound
	}
	sorted, err := repo.SortedEntries(ctx, l.ID)
	if err != nil {
		return nil, internalError("sorted entries", err)
	}
	l.Entries = sorted
	return &GetListResponse{List: l.Detail()}, nil
}

func (s *ListServer) GetEntry(ctx context.Context, req *EntryRequest) (*EntryResponse, error) {
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	e, err := repo.GetEntry(ctx, req.ListID, req.EntryID)
	if err != nil {
		return nil, internalError("get entry", err)
	}
	if e == nil {
		return nil, errNotFound
	}
	return &EntryResponse{Entry: *e}, nil
}

// ToggleEntry flips the entry and returns its new state.
func (s *ListServer) ToggleEntry(ctx context.Context, req *EntryRequest) (*EntryResponse, error) {
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	ok, err := repo.ToggleEntry(ctx, req.ListID, req.EntryID)
	if err != nil {
		return nil, internalError("toggle entry", err)
	}
	if !ok {
		return nil, errNotFound
	}
	e, err := repo.GetEntry(ctx, req.ListID, req.EntryID)
	if err != nil {
		return nil, internalError("get entry", err)
	}
	if e == nil {
		// deleted between the two round-trips
		return nil, errNotFound
	}
	return &EntryResponse{Entry: *e}, nil
}

func (s *ListServer) DeleteEntry(ctx context.Context, req *EntryRequest) (*Empty, error) {
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	ok, err := repo.DeleteEntry(ctx, req.ListID, req.EntryID)
	if err != nil {
		return nil, internalError("delete entry", err)
	}
	if !ok {
		return nil, errNotFound
	}
	return &Empty{}, nil
}

// CompleteAllEntries reports "noop" for an owned list with nothing left to do
// instead of folding it into NotFound.
func (s *ListServer) CompleteAllEntries(ctx context.Context, req *ListRequest) (*CompleteAllResponse, error) {
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	out, err := repo.CompleteAllEntriesOutcome(ctx, req.ListID)
	if err != nil {
		return nil, internalError("complete all", err)
	}
	if out == repository.CompleteNotFound {
		return nil, errNotFound
	}
	return &CompleteAllResponse{Outcome: out.String()}, nil
}

func (s *ListServer) CreateEntry(ctx context.Context, req *CreateEntryRequest) (*Empty, error) {
	title, err := models.NormalizeTitle(req.Title)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "entry %v", err)
	}
	if err := req.EntryAttrs.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	ok, err := repo.CreateEntry(ctx, req.ListID, title, req.EntryAttrs)
	if err != nil {
		return nil, internalError("create entry", err)
	}
	if !ok {
		return nil, errNotFound
	}
	return &Empty{}, nil
}

func (s *ListServer) DeleteList(ctx context.Context, req *ListRequest) (*Empty, error) {
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	ok, err := repo.DeleteList(ctx, req.ListID)
	if err != nil {
		return nil, internalError("delete list", err)
	}
	if !ok {
		return nil, errNotFound
	}
	return &Empty{}, nil
}

func (s *ListServer) RenameList(ctx context.Context, req *RenameListRequest) (*Empty, error) {
	title, err := models.NormalizeTitle(req.Title)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "list %v", err)
	}
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	exists, err := repo.ListTitleExists(ctx, title)
	if err != nil {
		return nil, internalError("title exists", err)
	}
	if exists {
		return nil, errDuplicateTitle
	}
	ok, err := repo.RenameList(ctx, req.ListID, title)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, errDuplicateTitle
		}
		return nil, internalError("rename list", err)
	}
	if !ok {
		return nil, errNotFound
	}
	return &Empty{}, nil
}

func (s *ListServer) ListTitleExists(ctx context.Context, req *TitleExistsRequest) (*TitleExistsResponse, error) {
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	exists, err := repo.ListTitleExists(ctx, req.Title)
	if err != nil {
		return nil, internalError("title exists", err)
	}
	return &TitleExistsResponse{Exists: exists}, nil
}

func (s *ListServer) CreateList(ctx context.Context, req *CreateListRequest) (*Empty, error) {
	title, err := models.NormalizeTitle(req.Title)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "list %v", err)
	}
	repo, err := s.scoped(ctx)
	if err != nil {
		return nil, err
	}
	exists, err := repo.ListTitleExists(ctx, title)
	if err != nil {
		return nil, internalError("title exists", err)
	}
	if exists {
		return nil, errDuplicateTitle
	}
	created, err := repo.CreateList(ctx, title)
	if err != nil {
		return nil, internalError("create list", err)
	}
	if !created {
		return nil, errDuplicateTitle
	}
	return &Empty{}, nil
}
