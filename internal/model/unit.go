package model

// UnitKind identifies what a downloadable unit's identifier refers to.
// Execution jobs receive track ids and episode ids through different
// parameters, so batches must remember their origin.
type UnitKind int

const (
	// UnitTrack is a single music track id.
	UnitTrack UnitKind = iota

	// UnitEpisode is a single podcast episode id.
	UnitEpisode
)

// Unit is the atomic item an execution job processes: one playable track
// or one podcast episode. Units are produced transiently during expansion
// and never persisted.
type Unit struct {
	Kind UnitKind
	ID   string
}

// TrackUnit builds a track unit.
func TrackUnit(id string) Unit { return Unit{Kind: UnitTrack, ID: id} }

// EpisodeUnit builds an episode unit.
func EpisodeUnit(id string) Unit { return Unit{Kind: UnitEpisode, ID: id} }
