package universe

import (
	"encoding/hex"
	"encoding/json"

	"lukechampine.com/blake3"

	"stars-server/internal/planet"
	"stars-server/internal/spatial"
)

// Universe is the generated galaxy. Only Boundary and Planets are filled at
// creation; the other collections are populated during turn processing.
type Universe struct {
	Boundary       Boundary        `json:"boundary"`
	Planets        []planet.Planet `json:"planets"`
	Wormholes      []Wormhole      `json:"wormholes"`
	MineFields     []MineField     `json:"mine_fields"`
	Salvage        []Salvage       `json:"salvage"`
	MineralPackets []MineralPacket `json:"mineral_packets"`
}

type Wormhole struct {
	ID            int                `json:"id"`
	Position      spatial.Coordinate `json:"position"`
	DestinationID int                `json:"destination_id"`
	Stability     int                `json:"stability"`
}

type MineFieldKind string

const (
	MineFieldStandard  MineFieldKind = "standard"
	MineFieldHeavy     MineFieldKind = "heavy"
	MineFieldSpeedBump MineFieldKind = "speed_bump"
)

type MineField struct {
	ID       int                `json:"id"`
	Owner    int                `json:"owner"`
	Kind     MineFieldKind      `json:"kind"`
	Position spatial.Coordinate `json:"position"`
	Mines    int                `json:"mines"`
}

type Salvage struct {
	ID       int                `json:"id"`
	Owner    int                `json:"owner"`
	Position spatial.Coordinate `json:"position"`
	Cargo    planet.Minerals    `json:"cargo"`
}

type MineralPacket struct {
	ID            int                `json:"id"`
	Owner         int                `json:"owner"`
	Position      spatial.Coordinate `json:"position"`
	DestinationID int                `json:"destination_id"`
	WarpSpeed     int                `json:"warp_speed"`
	Cargo         planet.Minerals    `json:"cargo"`
}

// Assemble wraps a finished planet list into a Universe with empty
// collections for the turn-time objects.
func Assemble(bounds Boundary, planets []planet.Planet) *Universe {
	return &Universe{
		Boundary:       bounds,
		Planets:        planets,
		Wormholes:      []Wormhole{},
		MineFields:     []MineField{},
		Salvage:        []Salvage{},
		MineralPackets: []MineralPacket{},
	}
}

func (u *Universe) Homeworlds() []planet.Planet {
	var out []planet.Planet
	for _, p := range u.Planets {
		if p.Homeworld {
			out = append(out, p)
		}
	}
	return out
}

func (u *Universe) Planet(id int) (*planet.Planet, bool) {
	for i := range u.Planets {
		if u.Planets[i].ID == id {
			return &u.Planets[i], true
		}
	}
	return nil, false
}

// Fingerprint is a blake3 digest of the planet list in its JSON form. Two
// universes with the same fingerprint have identical planets.
func (u *Universe) Fingerprint() (string, error) {
	data, err := json.Marshal(u.Planets)
	if err != nil {
		return "", err
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
