// Package session holds the client's only mutable game state: a cached copy
// of the latest server snapshot plus the two fields that gate the turn
// controls. The server response is the sole writer; Apply replaces
// everything wholesale and nothing ever merges.
package session

import "github.com/sugolab/probwalk/pkg/types"

type State struct {
	CurrentPlayerIndex int
	IsOver             bool

	snapshot types.GameSnapshot
	applied  bool
}

func New() *State {
	return &State{}
}

func (s *State) Apply(snap types.GameSnapshot) {
	s.snapshot = snap
	s.CurrentPlayerIndex = snap.CurrentPlayerIndex
	s.IsOver = snap.IsOver
	s.applied = true
}

func (s *State) Snapshot() types.GameSnapshot {
	return s.snapshot
}

func (s *State) CurrentPlayer() (types.PlayerView, bool) {
	if !s.applied || s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.snapshot.Players) {
		return types.PlayerView{}, false
	}
	return s.snapshot.Players[s.CurrentPlayerIndex], true
}
