package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shipping = Shipping{Name: "name", Address: "address", City: "city", Country: "country", Zip: "zip"}

func TestNew(t *testing.T) {
	date := time.Date(2019, 9, 17, 21, 6, 0, 0, time.UTC)
	o, err := New(shipping, date, []Line{{ProductID: 1, Quantity: 2}, {ProductID: 3, Quantity: 1}})
	require.NoError(t, err)

	assert.Zero(t, o.ID)
	assert.Equal(t, "name", o.Name)
	assert.Equal(t, "zip", o.Zip)
	assert.Equal(t, date, o.Date)
	assert.Equal(t, 3, o.Units())
}

func TestNewRejects(t *testing.T) {
	noCity := shipping
	noCity.City = " "
	_, err := New(noCity, time.Now(), []Line{{ProductID: 1, Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidShipping)

	noZip := shipping
	noZip.Zip = ""
	_, err = New(noZip, time.Now(), []Line{{ProductID: 1, Quantity: 1}})
	assert.NoError(t, err)

	_, err = New(shipping, time.Now(), nil)
	assert.ErrorIs(t, err, ErrNoLines)

	_, err = New(shipping, time.Now(), []Line{{ProductID: 0, Quantity: 1}})
	assert.ErrorIs(t, err, ErrInvalidLine)

	_, err = New(shipping, time.Now(), []Line{{ProductID: 1, Quantity: 0}})
	assert.ErrorIs(t, err, ErrInvalidLine)
}

func TestCloneIsolatesLines(t *testing.T) {
	o := &Order{ID: 1, Lines: []Line{{ProductID: 1, Quantity: 1}}}
	c := o.Clone()
	c.Lines[0].Quantity = 5
	assert.Equal(t, 1, o.Lines[0].Quantity)
}

func TestNewPlacedEvent(t *testing.T) {
	o := &Order{ID: 7, Lines: []Line{{ProductID: 1, Quantity: 1}}}
	evt := NewPlacedEvent(o)
	o.Lines[0].Quantity = 9

	assert.Equal(t, "order.placed", evt.EventName())
	assert.Equal(t, 7, evt.OrderID)
	assert.Equal(t, 1, evt.Lines[0].Quantity)
	assert.NotEmpty(t, evt.EventID)
}
