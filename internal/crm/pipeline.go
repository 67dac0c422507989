package crm

// Pipelines a lead can belong to. Owners correspond to people selling a
// property through us, they are never matched against the inventory.
const (
	PipelineBuyers = "buyers"
	PipelineOwners = "owners"
)

// Pipeline stages for the buyers pipeline, in funnel order.
const (
	StageNew       = "New"
	StageContacted = "Contacted"
	StageQualified = "Qualified"
	StageViewing   = "Viewing"
	StageOffer     = "Offer"
	StageWon       = "Won"
	StageLost      = "Lost"
)

var activeStages = map[string]struct{}{
	StageNew:       {},
	StageContacted: {},
	StageQualified: {},
	StageViewing:   {},
	StageOffer:     {},
}

// IsActiveStage reports whether a lead in the given stage is still worth
// matching, i.e. the deal is neither won nor lost.
func IsActiveStage(stage string) bool {
	_, ok := activeStages[stage]
	return ok
}

// ActiveStages returns the stages considered active, in funnel order.
func ActiveStages() []string {
	return []string{StageNew, StageContacted, StageQualified, StageViewing, StageOffer}
}
