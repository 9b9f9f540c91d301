package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDate_CSVRoundTrip(t *testing.T) {
	var d Date
	require.NoError(t, d.UnmarshalCSV("2024-02-29"))
	assert.Equal(t, NewDate(2024, time.February, 29), d)

	out, err := d.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", out)

	assert.Error(t, d.UnmarshalCSV("yesterday"))
}

func TestDate_ZeroIsEmpty(t *testing.T) {
	out, err := Date{}.MarshalCSV()
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestDate_JSONAndYAML(t *testing.T) {
	d := NewDate(2023, time.July, 4)

	j, err := json.Marshal(struct {
		D Date `json:"d"`
	}{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"d":"2023-07-04"}`, string(j))

	y, err := yaml.Marshal(map[string]Date{"d": d})
	require.NoError(t, err)
	var back map[string]string
	require.NoError(t, yaml.Unmarshal(y, &back))
	assert.Equal(t, "2023-07-04", back["d"])
}

func TestSale_ExpectedRevenue(t *testing.T) {
	s := Sale{Quantity: 3, Price: decimal.RequireFromString("19.99")}
	assert.True(t, decimal.RequireFromString("59.97").Equal(s.ExpectedRevenue()))

	s.Revenue = s.ExpectedRevenue()
	assert.InDelta(t, 59.97, s.RevenueFloat(), 1e-9)
}

func TestSale_Key(t *testing.T) {
	base := Sale{
		Date:     NewDate(2024, time.January, 5),
		Product:  "Laptop",
		Category: "Electronics",
		Region:   "North",
		Quantity: 2,
		Price:    decimal.NewFromInt(1000),
		Revenue:  decimal.NewFromInt(2000),
	}

	derived := base
	derived.Year, derived.Month, derived.DayOfWeek = 2024, 1, "Friday"
	assert.Equal(t, base.Key(), derived.Key())

	other := base
	other.Region = "South"
	assert.NotEqual(t, base.Key(), other.Key())
}

func TestCustomer_Key(t *testing.T) {
	c := Customer{CustomerID: "C001", Age: 40, Gender: "F", Income: 52000.5,
		MemberSince: NewDate(2020, time.March, 1), SatisfactionScore: 4.2, PurchaseFrequency: 12}

	withDays := c
	withDays.MembershipDays = 900
	assert.Equal(t, c.Key(), withDays.Key())

	changed := c
	changed.Income = 52000.6
	assert.NotEqual(t, c.Key(), changed.Key())
}

func TestAgeGroupOf(t *testing.T) {
	tests := []struct {
		age   int
		want  AgeGroup
		found bool
	}{
		{0, "", false},
		{1, AgeUnder30, true},
		{30, AgeUnder30, true},
		{31, Age30To40, true},
		{40, Age30To40, true},
		{41, Age40To50, true},
		{50, Age40To50, true},
		{51, Age50AndOver, true},
		{100, Age50AndOver, true},
		{101, "", false},
		{-5, "", false},
	}

	for _, tt := range tests {
		got, ok := AgeGroupOf(tt.age)
		assert.Equal(t, tt.found, ok, "age %d", tt.age)
		assert.Equal(t, tt.want, got, "age %d", tt.age)
	}
}
