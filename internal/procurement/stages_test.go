package procurement

import (
	"errors"
	"strings"
	"testing"
)

func TestStagesOrder(t *testing.T) {
	want := []Stage{
		StageBusinessToTechnical,
		StageRFPGeneration,
		StageVendorMatching,
		StageTenderEmail,
		StageBidEvaluation,
		StageNegotiationStrategy,
		StageRiskContract,
	}
	got := Stages()
	if len(got) != len(want) {
		t.Fatalf("expected %d stages, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stage %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestStageSpecsComplete(t *testing.T) {
	for _, stage := range Stages() {
		if stage.Title() == "" {
			t.Fatalf("stage %s has no title", stage)
		}
		if stage.InputLabel() == "" {
			t.Fatalf("stage %s has no input label", stage)
		}
		if stage.ResultHeading() == "" {
			t.Fatalf("stage %s has no result heading", stage)
		}
		tpl := stage.Template()
		if !strings.Contains(tpl, contextSlot) || !strings.Contains(tpl, questionSlot) {
			t.Fatalf("stage %s template missing substitution slots", stage)
		}
		if !strings.Contains(tpl, "TransGlobal Industries") {
			t.Fatalf("stage %s template missing company framing", stage)
		}
	}
}

func TestStagePredecessors(t *testing.T) {
	for _, tc := range []struct {
		stage Stage
		want  []Stage
	}{
		{stage: StageBusinessToTechnical, want: nil},
		{stage: StageRFPGeneration, want: []Stage{StageBusinessToTechnical}},
		{stage: StageVendorMatching, want: []Stage{StageRFPGeneration}},
		{stage: StageTenderEmail, want: []Stage{StageRFPGeneration, StageVendorMatching}},
		{stage: StageBidEvaluation, want: nil},
		{stage: StageNegotiationStrategy, want: []Stage{StageBidEvaluation}},
		{stage: StageRiskContract, want: []Stage{StageBidEvaluation, StageNegotiationStrategy}},
	} {
		got := tc.stage.Predecessors()
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %d predecessors, got %d", tc.stage, len(tc.want), len(got))
		}
		for i := range tc.want {
			if got[i] != tc.want[i] {
				t.Fatalf("%s predecessor %d: expected %s, got %s", tc.stage, i, tc.want[i], got[i])
			}
		}
	}
}

func TestParseStage(t *testing.T) {
	stage, err := ParseStage(" rfp_generation ")
	if err != nil {
		t.Fatalf("ParseStage: %v", err)
	}
	if stage != StageRFPGeneration {
		t.Fatalf("expected rfp_generation, got %s", stage)
	}
}

func TestParseStageRejectsUnknown(t *testing.T) {
	_, err := ParseStage("purchase_order")
	if err == nil {
		t.Fatal("expected error for unknown stage")
	}
	if !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("expected ErrUnknownStage, got %v", err)
	}
}

func TestComposePrompt(t *testing.T) {
	prompt, err := ComposePrompt(StageRFPGeneration, "passage one\n\npassage two", "100 laptops, $120k budget")
	if err != nil {
		t.Fatalf("ComposePrompt: %v", err)
	}
	if strings.Contains(prompt, contextSlot) || strings.Contains(prompt, questionSlot) {
		t.Fatal("expected substitution slots to be filled")
	}
	if !strings.Contains(prompt, "passage one\n\npassage two") {
		t.Fatal("expected retrieved context in prompt")
	}
	if !strings.Contains(prompt, "100 laptops, $120k budget") {
		t.Fatal("expected question text in prompt")
	}
}

func TestComposePromptUnknownStage(t *testing.T) {
	if _, err := ComposePrompt(Stage("bogus"), "ctx", "q"); !errors.Is(err, ErrUnknownStage) {
		t.Fatalf("expected ErrUnknownStage, got %v", err)
	}
}

func TestSeededInputLabelFallsBack(t *testing.T) {
	if got := StageBusinessToTechnical.SeededInputLabel(); got != StageBusinessToTechnical.InputLabel() {
		t.Fatalf("expected fallback to plain label, got %q", got)
	}
	if got := StageRFPGeneration.SeededInputLabel(); got != "Technical Requirements for RFP:" {
		t.Fatalf("unexpected seeded label: %q", got)
	}
}
