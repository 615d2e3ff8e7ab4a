package variant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lari-oliv/olive-beauty/models"
)

func v(stock int, attrs models.Attributes) models.ProductVariant {
	return models.ProductVariant{ID: uuid.New(), Attributes: attrs, Stock: stock}
}

func TestResolve_ExactMatch(t *testing.T) {
	variants := []models.ProductVariant{
		v(5, models.Attributes{"color": "red", "size": "M"}),
		v(5, models.Attributes{"color": "red", "size": "L"}),
	}

	got := Resolve(variants, models.Attributes{"color": "red", "size": "M"}, "size", "L")

	require.NotNil(t, got)
	assert.Equal(t, variants[1].ID, got.ID)
}

func TestResolve_AbsentKeyIsWildcard(t *testing.T) {
	variants := []models.ProductVariant{
		v(3, models.Attributes{"color": "red"}),
		v(0, models.Attributes{"color": "blue", "size": "L"}),
	}

	got := Resolve(variants, models.Attributes{"color": "red", "size": "L"}, "color", "red")

	require.NotNil(t, got)
	assert.Equal(t, variants[0].ID, got.ID, "sizeless variant should be an acceptable candidate")
}

func TestResolve_WildcardExampleBothCandidates(t *testing.T) {
	sizeless := v(2, models.Attributes{"color": "red"})
	sized := v(2, models.Attributes{"color": "red", "size": "L"})

	// The merged selection {color:red,size:L} matches the sized variant exactly.
	got := Resolve([]models.ProductVariant{sizeless, sized}, models.Attributes{"color": "red", "size": "L"}, "color", "red")
	require.NotNil(t, got)
	assert.Equal(t, sized.ID, got.ID)

	// Without the exact variant, the sizeless one is chosen through the absence rule.
	got = Resolve([]models.ProductVariant{sizeless}, models.Attributes{"color": "red", "size": "L"}, "color", "red")
	require.NotNil(t, got)
	assert.Equal(t, sizeless.ID, got.ID)
}

func TestResolve_BestEffortPrefersStock(t *testing.T) {
	variants := []models.ProductVariant{
		v(0, models.Attributes{"color": "blue", "size": "S"}),
		v(4, models.Attributes{"color": "blue", "size": "M"}),
	}

	// {color:blue} has no exact match, both blue variants are candidates.
	got := Resolve(variants, models.Attributes{"color": "red"}, "color", "blue")

	require.NotNil(t, got)
	assert.Equal(t, variants[1].ID, got.ID)
}

func TestResolve_BestEffortFallsBackToFirstCandidate(t *testing.T) {
	variants := []models.ProductVariant{
		v(0, models.Attributes{"color": "blue", "finish": "matte"}),
		v(0, models.Attributes{"color": "blue", "finish": "gloss"}),
	}

	got := Resolve(variants, models.Attributes{"color": "red"}, "color", "blue")

	require.NotNil(t, got)
	assert.Equal(t, variants[0].ID, got.ID)
}

func TestResolve_ConflictingSelectionExcludesCandidate(t *testing.T) {
	variants := []models.ProductVariant{
		v(5, models.Attributes{"color": "blue", "size": "S"}),
	}

	got := Resolve(variants, models.Attributes{"color": "red", "size": "M"}, "color", "blue")

	assert.Nil(t, got)
}

func TestResolve_UnknownValue(t *testing.T) {
	variants := []models.ProductVariant{
		v(5, models.Attributes{"color": "red"}),
	}

	assert.Nil(t, Resolve(variants, models.Attributes{"color": "red"}, "color", "green"))
	assert.Nil(t, Resolve(nil, models.Attributes{}, "color", "red"))
}

func TestResolve_DoesNotMutateSelection(t *testing.T) {
	variants := []models.ProductVariant{v(1, models.Attributes{"size": "L"})}
	selected := models.Attributes{"size": "M"}

	_ = Resolve(variants, selected, "size", "L")

	assert.Equal(t, "M", selected["size"])
}

func TestExactMatch_KeyMissingOnOneSideIsMismatch(t *testing.T) {
	variants := []models.ProductVariant{
		v(1, models.Attributes{"color": "red"}),
	}

	assert.Nil(t, ExactMatch(variants, models.Attributes{"color": "red", "size": "M"}))
	assert.NotNil(t, ExactMatch(variants, models.Attributes{"color": "red"}))
}

func TestDefaultSelection(t *testing.T) {
	variants := []models.ProductVariant{
		v(0, models.Attributes{"color": "red"}),
		v(2, models.Attributes{"color": "blue"}),
	}
	assert.Equal(t, models.Attributes{"color": "blue"}, DefaultSelection(variants))

	variants[1].Stock = 0
	assert.Equal(t, models.Attributes{"color": "red"}, DefaultSelection(variants))

	assert.Equal(t, models.Attributes{}, DefaultSelection(nil))
}
