package postgres

import (
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/mbarese/transfer-sim/internal/domain/player"
)

type playerTableModel struct {
	ID            int64     `db:"id"`
	Name          string    `db:"name"`
	ParentTeam    string    `db:"parent_team"`
	Team          string    `db:"team"`
	League        string    `db:"league"`
	Season        string    `db:"season"`
	Age           int       `db:"age"`
	Position      string    `db:"position"`
	PositionGroup string    `db:"position_group"`
	MinutesPlayed int       `db:"minutes_played"`
	Metrics       string    `db:"metrics"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

func (m playerTableModel) toDomain() (player.Record, error) {
	metrics, err := decodeMetrics(m.Metrics)
	if err != nil {
		return player.Record{}, fmt.Errorf("decode metrics for player %s: %w", m.Name, err)
	}

	return player.Record{
		Name:          m.Name,
		ParentTeam:    m.ParentTeam,
		Team:          m.Team,
		League:        m.League,
		Season:        m.Season,
		Age:           m.Age,
		Position:      m.Position,
		PositionGroup: m.PositionGroup,
		MinutesPlayed: m.MinutesPlayed,
		Metrics:       metrics,
	}, nil
}

// encodeMetrics stores the metric map as JSONB. Missing samples are kept as
// JSON nulls so reads can tell "absent" apart from zero.
func encodeMetrics(metrics map[string]*float64) (string, error) {
	if len(metrics) == 0 {
		return "{}", nil
	}
	encoded, err := sonic.Marshal(metrics)
	if err != nil {
		return "", fmt.Errorf("marshal metrics: %w", err)
	}
	return string(encoded), nil
}

func decodeMetrics(raw string) (map[string]*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "{}" {
		return map[string]*float64{}, nil
	}
	out := make(map[string]*float64)
	if err := sonic.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}
