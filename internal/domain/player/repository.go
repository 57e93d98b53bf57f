package player

import "context"

// Filter narrows listing queries. Zero-value fields are ignored.
type Filter struct {
	Season        string
	ParentTeam    string
	League        string
	PositionGroup string
	Limit         int
}

// Repository describes read access to the player reference table.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Record, error)
	FindByName(ctx context.Context, season, name string) (Record, bool, error)
	Seasons(ctx context.Context) ([]string, error)
}
