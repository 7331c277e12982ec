package decode_test

import (
	"testing"

	"github.com/JaimeStill/neurocore/pkg/decode"
)

func TestFromMap(t *testing.T) {
	type event struct {
		Node  string `json:"node"`
		Steps int    `json:"steps"`
	}

	got, err := decode.FromMap[event](map[string]any{"node": "reason", "steps": 3})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	if got.Node != "reason" || got.Steps != 3 {
		t.Errorf("FromMap() = %+v", got)
	}
}

func TestFrom_TypeMismatch(t *testing.T) {
	type event struct {
		Steps int `json:"steps"`
	}

	if _, err := decode.From[event](map[string]any{"steps": "three"}); err == nil {
		t.Error("From() should fail on a type mismatch")
	}
}
