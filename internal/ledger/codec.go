package ledger

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// SyncState is the portable part of the ledger: everything except the
// session and the static animal table. The blob format is JSON wrapped
// in base64 so it survives copy-paste between instances; importing a
// blob replaces these three collections wholesale (last-import-wins,
// no merge).
type SyncState struct {
	Users []User `json:"users"`
	Bets  []Bet  `json:"bets"`
	Draws []Draw `json:"draws"`
}

// EncodeBlob serializes a SyncState into the portable blob.
func EncodeBlob(state SyncState) (string, error) {
	raw, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("encode sync blob: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// DecodeBlob reverses EncodeBlob. Anything that is not valid base64
// over valid JSON is reported as ErrMalformedSnapshot; callers must
// reject the import and keep their current state.
func DecodeBlob(blob string) (SyncState, error) {
	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return SyncState{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	var state SyncState
	if err := json.Unmarshal(raw, &state); err != nil {
		return SyncState{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}
	return state, nil
}
