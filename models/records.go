// Package models defines the typed records stored in the workbook and owns
// the positional column-order contract: append operations pass a flat ordered
// value list that must match the destination worksheet's column order exactly.
// ToRow/FromRow centralize that ordering so the rest of the code only ever
// touches named fields.
package models

import (
	"strconv"
	"time"

	"estate-crm/normalize"
)

// Worksheet names inside the workbook resource, one per entity type.
const (
	ListingsSheet = "Listings"
	ClientsSheet  = "Clients"
	TasksSheet    = "Tasks"
)

// DateLayout is the storage format for all date columns.
const DateLayout = "2006-01-02"

// Status is the sale/rent polarity of a listing.
type Status string

const (
	StatusForSale Status = "ForSale"
	StatusForRent Status = "ForRent"
)

// PropertyType classifies a listing.
type PropertyType string

const (
	TypeApartment  PropertyType = "Apartment"
	TypeVilla      PropertyType = "Villa"
	TypeLand       PropertyType = "Land"
	TypeCommercial PropertyType = "Commercial"
	TypeOffice     PropertyType = "Office"
	TypeStore      PropertyType = "Store"
)

// TaskStatus is the state of an agenda item.
type TaskStatus string

const (
	TaskPending TaskStatus = "Pending"
	TaskDone    TaskStatus = "Done"
)

// Priority ranks agenda items.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityNormal Priority = "Normal"
	PriorityHigh   Priority = "High"
)

// Column headers, in storage order. The index of a header in these slices is
// the 0-based column position; the storage layer numbers columns from 1.
var (
	ListingColumns = []string{"Date", "Title", "Type", "Price", "Location", "AreaSqm", "RoomLayout", "Status", "ImageURL", "Latitude", "Longitude"}
	ClientColumns  = []string{"Date", "FullName", "Phone", "Intent", "BudgetRange", "Notes"}
	TaskColumns    = []string{"Date", "Time", "Description", "Status", "Priority"}
)

// 1-based positions of the lookup columns used by delete operations.
const (
	ListingTitleColumn    = 2
	TaskDescriptionColumn = 3
)

// Listing is one property record. Title is the lookup key for deletion and is
// assumed unique within the worksheet; the store never establishes a true
// identifier (see DESIGN.md).
type Listing struct {
	Date       time.Time
	Title      string
	Type       PropertyType
	Price      int64
	Location   string
	AreaSqm    float64
	RoomLayout string
	Status     Status
	ImageURL   string
	Latitude   *float64
	Longitude  *float64
}

// Client is one buyer/renter/seller request. FullName is the practical lookup
// key for selection; uniqueness is not guaranteed.
type Client struct {
	Date        time.Time
	FullName    string
	Phone       string
	Intent      string
	BudgetRange string
	Notes       string
}

// Task is one agenda item, deleted by Description.
type Task struct {
	Date        time.Time
	Time        string
	Description string
	Status      TaskStatus
	Priority    Priority
}

// ToRow returns the listing's values in storage column order.
func (l *Listing) ToRow() []any {
	return []any{
		l.Date.Format(DateLayout),
		l.Title,
		string(l.Type),
		strconv.FormatInt(l.Price, 10),
		l.Location,
		strconv.FormatFloat(l.AreaSqm, 'f', -1, 64),
		l.RoomLayout,
		string(l.Status),
		l.ImageURL,
		coordCell(l.Latitude),
		coordCell(l.Longitude),
	}
}

// ToRow returns the client's values in storage column order.
func (c *Client) ToRow() []any {
	return []any{
		c.Date.Format(DateLayout),
		c.FullName,
		c.Phone,
		c.Intent,
		c.BudgetRange,
		c.Notes,
	}
}

// ToRow returns the task's values in storage column order.
func (t *Task) ToRow() []any {
	return []any{
		t.Date.Format(DateLayout),
		t.Time,
		t.Description,
		string(t.Status),
		string(t.Priority),
	}
}

// ListingFromRow converts one raw worksheet row mapping into a typed Listing.
// Malformed cells degrade through the normalizer rather than failing: dirty
// prices become their digit concatenation, unparseable coordinates are absent.
func ListingFromRow(row map[string]string) *Listing {
	l := &Listing{
		Date:       parseDate(row["Date"]),
		Title:      row["Title"],
		Type:       PropertyType(row["Type"]),
		Price:      normalize.Currency(row["Price"]),
		Location:   row["Location"],
		RoomLayout: row["RoomLayout"],
		Status:     Status(row["Status"]),
		ImageURL:   row["ImageURL"],
	}
	if v, err := strconv.ParseFloat(row["AreaSqm"], 64); err == nil {
		l.AreaSqm = v
	}
	if v, ok := normalize.Coordinate(row["Latitude"]); ok {
		l.Latitude = &v
	}
	if v, ok := normalize.Coordinate(row["Longitude"]); ok {
		l.Longitude = &v
	}
	return l
}

// ClientFromRow converts one raw worksheet row mapping into a typed Client.
func ClientFromRow(row map[string]string) *Client {
	return &Client{
		Date:        parseDate(row["Date"]),
		FullName:    row["FullName"],
		Phone:       row["Phone"],
		Intent:      row["Intent"],
		BudgetRange: row["BudgetRange"],
		Notes:       row["Notes"],
	}
}

// TaskFromRow converts one raw worksheet row mapping into a typed Task.
func TaskFromRow(row map[string]string) *Task {
	return &Task{
		Date:        parseDate(row["Date"]),
		Time:        row["Time"],
		Description: row["Description"],
		Status:      TaskStatus(row["Status"]),
		Priority:    Priority(row["Priority"]),
	}
}

func parseDate(s string) time.Time {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func coordCell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
