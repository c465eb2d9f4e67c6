package domain

// Section is the top level of the studio catalog (e.g. "Photography").
type Section struct {
	ID    string
	Name  string
	Order int
}

// Category groups catalog items under a section and a stage.
type Category struct {
	ID        string
	SectionID string
	Name      string
	Stage     Stage
	Order     int
	// AcceptsTasks is false for categories that only hold undated items;
	// their rows end in a static placeholder instead of a day grid.
	AcceptsTasks bool
}

type CatalogItem struct {
	ID         string
	CategoryID string
	Name       string
	Order      int
}

// EventItem is a catalog item assigned to an event. Tasks hang off the
// event item; removing a task never removes the item.
type EventItem struct {
	ID            string
	EventID       string
	CatalogItemID string
	Name          string
}

type CrewMember struct {
	ID    string
	Name  string
	Email string
}
