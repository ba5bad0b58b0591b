package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"workoutLists/internal/db"
	"workoutLists/models"
)

var errNotFound = echo.NewHTTPError(http.StatusNotFound, "Not found.")

const msgDuplicateTitle = "The list title must be unique."

// titleError maps a title validation failure to the message shown to the user.
func titleError(kind string, err error) error {
	msg := fmt.Sprintf("%s title must be between 1 and %d characters.", kind, models.MaxTitleLength)
	if errors.Is(err, models.ErrTitleRequired) {
		msg = fmt.Sprintf("The %s title is required.", strings.ToLower(kind))
	}
	return echo.NewHTTPError(http.StatusUnprocessableEntity, msg)
}

// pathID parses a numeric path parameter. Anything else can never resolve, so it is a 404.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errNotFound
	}
	return id, nil
}

func (s *Server) AllLists(c echo.Context) error {
	lists, err := store(c).AllLists(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"lists": models.Summaries(lists)})
}

type listForm struct {
	Title string `json:"title" form:"title"`
}

func (s *Server) CreateList(c echo.Context) error {
	var f listForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request.")
	}
	title, err := models.NormalizeTitle(f.Title)
	if err != nil {
		return titleError("List", err)
	}
	ctx := c.Request().Context()
	repo := store(c)
	exists, err := repo.ListTitleExists(ctx, title)
	if err != nil {
		return err
	}
	if exists {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, msgDuplicateTitle)
	}
	created, err := repo.CreateList(ctx, title)
	if err != nil {
		return err
	}
	if !created {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, msgDuplicateTitle)
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "The list has been created."})
}

// GetList renders one list with its entries in display order.
func (s *Server) GetList(c echo.Context) error {
	id, err := pathID(c, "listId")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	repo := store(c)
	l, err := repo.GetList(ctx, id)
	if err != nil {
		return err
	}
	if l == nil {
		return errNotFound
	}
	if l.Entries, err = repo.SortedEntries(ctx, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"list": l.Detail()})
}

func (s *Server) RenameList(c echo.Context) error {
	id, err := pathID(c, "listId")
	if err != nil {
		return err
	}
	var f listForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request.")
	}
	title, err := models.NormalizeTitle(f.Title)
	if err != nil {
		return titleError("List", err)
	}
	ctx := c.Request().Context()
	repo := store(c)
	exists, err := repo.ListTitleExists(ctx, title)
	if err != nil {
		return err
	}
	if exists {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, msgDuplicateTitle)
	}
	updated, err := repo.RenameList(ctx, id, title)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, msgDuplicateTitle)
		}
		return err
	}
	if !updated {
		return errNotFound
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "List updated."})
}

func (s *Server) DeleteList(c echo.Context) error {
	id, err := pathID(c, "listId")
	if err != nil {
		return err
	}
	deleted, err := store(c).DeleteList(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !deleted {
		return errNotFound
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "List deleted."})
}

// CompleteAll keeps the two-way contract: a list with nothing left to complete
// answers 404 exactly like an unknown list.
func (s *Server) CompleteAll(c echo.Context) error {
	id, err := pathID(c, "listId")
	if err != nil {
		return err
	}
	completed, err := store(c).CompleteAllEntries(c.Request().Context(), id)
	if err != nil {
		return err
	}
	if !completed {
		return errNotFound
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "All entries have been marked as done."})
}

// formNumber is an optional numeric field accepted from form values and from JSON
// numbers or strings. An empty string or null means the attribute is absent.
type formNumber string

func (n *formNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = formNumber(strings.TrimSpace(s))
		return nil
	}
	*n = formNumber(b)
	return nil
}

type entryForm struct {
	Title    string     `json:"title" form:"title"`
	Sets     formNumber `json:"sets" form:"sets"`
	Reps     formNumber `json:"reps" form:"reps"`
	Duration formNumber `json:"duration" form:"duration"`
	Weight   formNumber `json:"weight" form:"weight"`
}

func (f entryForm) attrs() (models.EntryAttrs, error) {
	var a models.EntryAttrs
	var err error
	if a.Sets, err = optionalInt("Sets", f.Sets); err != nil {
		return a, err
	}
	if a.Reps, err = optionalInt("Reps", f.Reps); err != nil {
		return a, err
	}
	if a.Duration, err = optionalFloat("Duration", f.Duration); err != nil {
		return a, err
	}
	if a.Weight, err = optionalFloat("Weight", f.Weight); err != nil {
		return a, err
	}
	if err := a.Validate(); err != nil {
		return a, echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return a, nil
}

func optionalInt(field string, n formNumber) (*int64, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, field+" must be a whole number.")
	}
	return &v, nil
}

func optionalFloat(field string, n formNumber) (*float64, error) {
	s := strings.TrimSpace(string(n))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, field+" must be a number.")
	}
	return &v, nil
}

func (s *Server) CreateEntry(c echo.Context) error {
	id, err := pathID(c, "listId")
	if err != nil {
		return err
	}
	var f entryForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request.")
	}
	title, err := models.NormalizeTitle(f.Title)
	if err != nil {
		return titleError("Entry", err)
	}
	attrs, err := f.attrs()
	if err != nil {
		return err
	}
	created, err := store(c).CreateEntry(c.Request().Context(), id, title, attrs)
	if err != nil {
		return err
	}
	if !created {
		return errNotFound
	}
	return c.JSON(http.StatusCreated, echo.Map{"message": "The entry has been created."})
}

func entryIDs(c echo.Context) (int64, int64, error) {
	listID, err := pathID(c, "listId")
	if err != nil {
		return 0, 0, err
	}
	entryID, err := pathID(c, "entryId")
	if err != nil {
		return 0, 0, err
	}
	return listID, entryID, nil
}

func (s *Server) GetEntry(c echo.Context) error {
	listID, entryID, err := entryIDs(c)
	if err != nil {
		return err
	}
	e, err := store(c).GetEntry(c.Request().Context(), listID, entryID)
	if err != nil {
		return err
	}
	if e == nil {
		return errNotFound
	}
	return c.JSON(http.StatusOK, echo.Map{"entry": e})
}

// ToggleEntry flips the entry and reports its new state.
func (s *Server) ToggleEntry(c echo.Context) error {
	listID, entryID, err := entryIDs(c)
	if err != nil {
		return err
	}
	ctx := c.Request().Context()
	repo := store(c)
	toggled, err := repo.ToggleEntry(ctx, listID, entryID)
	if err != nil {
		return err
	}
	if !toggled {
		return errNotFound
	}
	e, err := repo.GetEntry(ctx, listID, entryID)
	if err != nil {
		return err
	}
	if e == nil {
		return errNotFound
	}
	msg := fmt.Sprintf("%q marked as NOT done!", e.Title)
	if e.Done {
		msg = fmt.Sprintf("%q marked done.", e.Title)
	}
	return c.JSON(http.StatusOK, echo.Map{"entry": e, "message": msg})
}

func (s *Server) DeleteEntry(c echo.Context) error {
	listID, entryID, err := entryIDs(c)
	if err != nil {
		return err
	}
	deleted, err := store(c).DeleteEntry(c.Request().Context(), listID, entryID)
	if err != nil {
		return err
	}
	if !deleted {
		return errNotFound
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "The entry has been deleted."})
}
