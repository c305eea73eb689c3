package gameserver

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Resources is the server-confirmed resource triple.
type Resources struct {
	TCorvax float64 `json:"tcorvax"`
	CatNips float64 `json:"catNips"`
	Energy  float64 `json:"energy"`
}

// Flag decodes both JSON booleans and the 0/1 integers the server stores.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("decoding flag %s: %w", data, err)
		}
		*f = n != 0
	}
	return nil
}

type Machine struct {
	ID            int64   `json:"id"`
	Type          string  `json:"type"`
	Level         int     `json:"level"`
	X             float64 `json:"x"`
	Y             float64 `json:"y"`
	LastActivated *int64  `json:"lastActivated"`
	IsOffline     Flag    `json:"isOffline"`
}

type GameState struct {
	Resources
	Machines []Machine `json:"machines"`
}

type WhoAmI struct {
	LoggedIn  bool   `json:"loggedIn"`
	FirstName string `json:"firstName"`
}

type BuildRequest struct {
	MachineType string  `json:"machineType"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
}

type BuildResponse struct {
	NewResources Resources `json:"newResources"`
}

type UpgradeRequest struct {
	MachineID int64 `json:"machineId"`
}

type UpgradeResponse struct {
	NewResources Resources `json:"newResources"`
	NewLevel     int       `json:"newLevel"`
}

type ActivateRequest struct {
	MachineID int64   `json:"machineId"`
	StakedCvx float64 `json:"stakedCvx"`
}

type ActivateResponse struct {
	Message          string     `json:"message,omitempty"`
	UpdatedResources *Resources `json:"updatedResources,omitempty"`
	Reward           float64    `json:"reward,omitempty"`
	NewLastActivated *int64     `json:"newLastActivated,omitempty"`
}

type MachinePosition struct {
	ID int64   `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type SyncLayoutRequest struct {
	Machines []MachinePosition `json:"machines"`
}

// errorPayload is the body of every non-2xx response.
type errorPayload struct {
	Error       string `json:"error"`
	RemainingMs int64  `json:"remainingMs"`
}
