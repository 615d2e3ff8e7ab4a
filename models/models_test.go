package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAttributes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Attributes
	}{
		{"object", `{"color":"red","size":"M"}`, Attributes{"color": "red", "size": "M"}},
		{"scalars stringified", `{"size":30,"vegan":true,"notes":null,"meta":{"a":1}}`, Attributes{"size": "30", "vegan": "true"}},
		{"malformed", `{"color":`, Attributes{}},
		{"array", `["red"]`, Attributes{}},
		{"empty", ``, Attributes{}},
		{"null", `null`, Attributes{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAttributes(tt.raw))
		})
	}
}

func TestAttributes_CanonicalIsKeyOrderIndependent(t *testing.T) {
	a := Attributes{"size": "M", "color": "red"}
	b := Attributes{"color": "red", "size": "M"}

	assert.Equal(t, `{"color":"red","size":"M"}`, a.Canonical())
	assert.Equal(t, a.Canonical(), b.Canonical())
	assert.Equal(t, "{}", Attributes(nil).Canonical())
}

func TestAttributes_Scan(t *testing.T) {
	var a Attributes
	require.NoError(t, a.Scan([]byte(`{"color":"red"}`)))
	assert.Equal(t, Attributes{"color": "red"}, a)

	require.NoError(t, a.Scan("not json"))
	assert.Equal(t, Attributes{}, a)

	require.NoError(t, a.Scan(nil))
	assert.Equal(t, Attributes{}, a)

	assert.Error(t, a.Scan(42))
}

func TestAttributes_WithDoesNotMutate(t *testing.T) {
	base := Attributes{"color": "red", "size": "M"}
	next := base.With("size", "L")

	assert.Equal(t, "M", base["size"])
	assert.Equal(t, "L", next["size"])
	assert.True(t, base.Equal(Attributes{"size": "M", "color": "red"}))
	assert.False(t, base.Equal(next))
}

func TestNewCartView_PriceFallback(t *testing.T) {
	product := &Product{BasePrice: decimal.RequireFromString("10.00")}
	variant := &ProductVariant{Price: decimal.RequireFromString("12.50")}

	cart := &Cart{Items: []CartItem{
		{Product: product, ProductVariant: variant, Quantity: 2},
		{Product: product, Quantity: 3},
	}}

	view := NewCartView(cart)
	assert.True(t, decimal.RequireFromString("55").Equal(view.Subtotal), "got %s", view.Subtotal)
	assert.Equal(t, 5, view.ItemCount)
}

func TestPinItem(t *testing.T) {
	a, b, c := CartItem{ID: uuid.New()}, CartItem{ID: uuid.New()}, CartItem{ID: uuid.New()}
	items := []CartItem{a, b, c}

	pinned := PinItem(items, c.ID)
	assert.Equal(t, []uuid.UUID{c.ID, a.ID, b.ID}, ids(pinned))
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, ids(items), "input must not be reordered")

	assert.Equal(t, ids(items), ids(PinItem(items, uuid.New())))
	assert.Equal(t, ids(items), ids(PinItem(items, a.ID)))
}

func TestCartItem_SameLine(t *testing.T) {
	productID, variantID := uuid.New(), uuid.New()
	other := uuid.New()

	withVariant := CartItem{ProductID: productID, ProductVariantID: &variantID}
	withoutVariant := CartItem{ProductID: productID}

	assert.True(t, withVariant.SameLine(productID, &variantID))
	assert.False(t, withVariant.SameLine(productID, &other))
	assert.False(t, withVariant.SameLine(productID, nil))
	assert.True(t, withoutVariant.SameLine(productID, nil))
	assert.False(t, withoutVariant.SameLine(uuid.New(), nil))
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	body, err := json.Marshal(DailyRevenue{Date: "2024-05-01", Revenue: decimal.RequireFromString("100.50")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-05-01","revenue":100.5}`, string(body))
}

func ids(items []CartItem) []uuid.UUID {
	out := make([]uuid.UUID, len(items))
	for i := range items {
		out[i] = items[i].ID
	}
	return out
}

func TestAttributes_Validate(t *testing.T) {
	assert.NoError(t, Attributes{"color": "red"}.Validate())
	assert.NoError(t, Attributes{}.Validate())
	assert.Error(t, Attributes{"": "red"}.Validate())
	assert.Error(t, Attributes{"color": ""}.Validate())
	assert.Error(t, Attributes{" color": "red"}.Validate())

	tooMany := Attributes{}
	for i := 0; i <= MaxAttributes; i++ {
		tooMany[string(rune('a'+i))] = "x"
	}
	assert.Error(t, tooMany.Validate())
}
