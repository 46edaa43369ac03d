package gates

import (
	"testing"

	"courtlens/domain/player"
	"courtlens/domain/reference"
)

func TestRoute(t *testing.T) {
	ref := buildRef(t)
	params := DefaultRouterParams()

	tests := []struct {
		name string
		v    player.FeatureVector
		want Path
	}{
		{
			"rim pressure routes physicality",
			player.FeatureVector{
				RimPressureRate: player.Some(0.40),
				CreationTax:     player.Some(0.10),
			},
			PathPhysicality, // rim check wins before tax is consulted
		},
		{
			"creation tax routes skill",
			player.FeatureVector{
				RimPressureRate: player.Some(0.12),
				CreationTax:     player.Some(0.10),
			},
			PathSkill,
		},
		{
			"neither routes default",
			player.FeatureVector{
				RimPressureRate: player.Some(0.12),
				CreationTax:     player.Some(-0.03),
			},
			PathDefault,
		},
		{
			"missing metrics route default",
			player.FeatureVector{},
			PathDefault,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Route(tt.v, ref, params); got != tt.want {
				t.Errorf("Route() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRoute_EmptyReferenceFallsBackToDefault(t *testing.T) {
	empty, err := reference.Build(player.Dataset{}, reference.DefaultConfig())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	v := player.FeatureVector{
		RimPressureRate: player.Some(0.40),
		CreationTax:     player.Some(0.10),
	}
	if got := Route(v, empty, DefaultRouterParams()); got != PathDefault {
		t.Errorf("undefined percentiles should route Default, got %s", got)
	}
}
