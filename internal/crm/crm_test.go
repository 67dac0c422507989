package crm

import "testing"

func TestIsActiveStage(t *testing.T) {
	t.Parallel()

	for _, stage := range ActiveStages() {
		if !IsActiveStage(stage) {
			t.Fatalf("expected %s to be active", stage)
		}
	}

	for _, stage := range []string{StageWon, StageLost, "", "Archived"} {
		if IsActiveStage(stage) {
			t.Fatalf("expected %q to be inactive", stage)
		}
	}
}

func TestLeadsActive(t *testing.T) {
	t.Parallel()

	leads := &Leads{
		Items: []*Lead{
			{ID: "l1", Pipeline: PipelineBuyers, Stage: StageQualified},
			{ID: "l2", Pipeline: PipelineBuyers, Stage: StageWon},
			{ID: "l3", Pipeline: PipelineOwners, Stage: StageNew},
			{ID: "l4", Pipeline: PipelineBuyers, Stage: StageViewing},
		},
	}

	active := leads.Active()
	if active.Len() != 2 {
		t.Fatalf("expected 2 active leads, got %d", active.Len())
	}
	if active.Items[0].ID != "l1" || active.Items[1].ID != "l4" {
		t.Fatalf("unexpected active leads: %s, %s", active.Items[0].ID, active.Items[1].ID)
	}
}

func TestLeadsFindByID(t *testing.T) {
	t.Parallel()

	leads := &Leads{Items: []*Lead{{ID: "l1"}, {ID: "l2"}}}

	if lead := leads.FindByID("l2"); lead == nil || lead.ID != "l2" {
		t.Fatalf("expected to find l2, got %+v", lead)
	}
	if lead := leads.FindByID("nope"); lead != nil {
		t.Fatalf("expected nil for unknown id, got %+v", lead)
	}
}

func TestPropertiesAvailable(t *testing.T) {
	t.Parallel()

	properties := &Properties{
		Items: []*Property{
			{ID: "p1", IsAvailable: true},
			{ID: "p2", IsAvailable: false},
			{ID: "p3", IsAvailable: true},
		},
	}

	available := properties.Available()
	if available.Len() != 2 {
		t.Fatalf("expected 2 available, got %d", available.Len())
	}
	if available.Items[0].ID != "p1" || available.Items[1].ID != "p3" {
		t.Fatalf("encounter order broken: %s, %s", available.Items[0].ID, available.Items[1].ID)
	}
}

func TestPropertyHasPrice(t *testing.T) {
	t.Parallel()

	if (&Property{Price: 0}).HasPrice() {
		t.Fatalf("zero price must mean unknown")
	}
	if !(&Property{Price: 450_000}).HasPrice() {
		t.Fatalf("expected a usable price")
	}
}
