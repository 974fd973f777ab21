package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday.
func at(day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, time.UTC)
}

func TestIsOpen(t *testing.T) {
	schedule := DefaultWeekSchedule("b1")
	closedSunday := DefaultWeekSchedule("b1")
	closedSunday.Days[6].IsClosed = true

	overnight := DefaultWeekSchedule("b1")
	overnight.Days[4] = DaySchedule{Day: Friday, OpenTime: "18:00", CloseTime: "02:00"}

	tests := []struct {
		name     string
		schedule WeekSchedule
		now      time.Time
		want     bool
	}{
		{name: "monday just before close", schedule: schedule, now: at(1, 21, 59), want: true},
		{name: "monday at close", schedule: schedule, now: at(1, 22, 0), want: false},
		{name: "monday before open", schedule: schedule, now: at(1, 8, 59), want: false},
		{name: "monday at open", schedule: schedule, now: at(1, 9, 0), want: true},
		{name: "closed day", schedule: closedSunday, now: at(7, 12, 0), want: false},
		{name: "overnight evening", schedule: overnight, now: at(5, 23, 30), want: true},
		{name: "overnight after midnight", schedule: overnight, now: at(6, 1, 30), want: true},
		{name: "overnight after close", schedule: overnight, now: at(6, 2, 0), want: false},
		{name: "overnight before open", schedule: overnight, now: at(5, 17, 59), want: false},
		{name: "overnight gap", schedule: overnight, now: at(6, 5, 0), want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.want, IsOpen(testCase.schedule, testCase.now))
		})
	}
}

func TestIsOpenUsesClockOfGivenTime(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	schedule := DefaultWeekSchedule("b1")

	assert.True(t, IsOpen(schedule, time.Date(2024, 1, 1, 10, 0, 0, 0, loc)))
	assert.False(t, IsOpen(schedule, time.Date(2024, 1, 1, 23, 0, 0, 0, loc)))
}

func TestNextOpening(t *testing.T) {
	schedule := DefaultWeekSchedule("b1")
	schedule.Days[1].IsClosed = true

	next, ok := NextOpening(schedule, at(1, 23, 0))
	require.True(t, ok)
	assert.Equal(t, at(3, 9, 0), next)

	next, ok = NextOpening(schedule, at(1, 12, 0))
	require.True(t, ok)
	assert.Equal(t, at(1, 12, 0), next)

	for i := range schedule.Days {
		schedule.Days[i].IsClosed = true
	}
	_, ok = NextOpening(schedule, at(1, 12, 0))
	assert.False(t, ok)
}

func TestWeekScheduleValidate(t *testing.T) {
	duplicate := DefaultWeekSchedule("b1")
	duplicate.Days[1].Day = Monday

	badTime := DefaultWeekSchedule("b1")
	badTime.Days[0].OpenTime = "9:00"

	sameTimes := DefaultWeekSchedule("b1")
	sameTimes.Days[0].CloseTime = "09:00"

	closedSameTimes := DefaultWeekSchedule("b1")
	closedSameTimes.Days[0].CloseTime = "09:00"
	closedSameTimes.Days[0].IsClosed = true

	tests := []struct {
		name     string
		schedule WeekSchedule
		wantErr  bool
	}{
		{name: "default", schedule: DefaultWeekSchedule("b1")},
		{name: "missing days", schedule: WeekSchedule{Days: DefaultWeekSchedule("b1").Days[:6]}, wantErr: true},
		{name: "duplicate day", schedule: duplicate, wantErr: true},
		{name: "malformed time", schedule: badTime, wantErr: true},
		{name: "empty interval", schedule: sameTimes, wantErr: true},
		{name: "empty interval on closed day", schedule: closedSameTimes},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			err := testCase.schedule.Validate()
			if testCase.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSchedule)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseClock(t *testing.T) {
	minutes, err := ParseClock("21:59")
	require.NoError(t, err)
	assert.Equal(t, 21*60+59, minutes)

	for _, bad := range []string{"24:00", "12:60", "1200", "ab:cd", ""} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestStockGate(t *testing.T) {
	stock := []StockItem{
		{ID: "s1", ProductID: "p1", BranchID: "b1", Quantity: 3},
		{ID: "s2", ProductID: "p1", BranchID: "b2", Quantity: 0},
	}

	assert.Equal(t, 3, AvailableQuantity(stock, "p1", "b1"))
	assert.Equal(t, 0, AvailableQuantity(stock, "p1", "b2"))
	assert.Equal(t, 0, AvailableQuantity(stock, "p2", "b1"))

	for available := -1; available <= 5; available++ {
		got := Clamp(4, available)
		assert.LessOrEqual(t, got, available)
		assert.Equal(t, available <= 0, got <= 0)
	}
	assert.Equal(t, 3, Clamp(5, 3))
	assert.Equal(t, 2, Clamp(2, 3))
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCartMergeAndTotal(t *testing.T) {
	pizza := Product{ID: "p1", Name: "Pizza", Price: price("10.00")}
	soda := Product{ID: "p2", Name: "Soda", Price: price("2.50")}
	cheese := SelectedExtra{ExtraID: "e1", Name: "Cheese", Price: price("1.50"), Quantity: 1}

	var cart Cart
	first := cart.Add(pizza, 2, []SelectedExtra{cheese})
	cart.Add(soda, 1, nil)
	merged := cart.Add(pizza, 1, []SelectedExtra{cheese})

	require.Len(t, cart.Items, 2)
	assert.Equal(t, first, merged)
	assert.Equal(t, 0, merged)
	assert.Equal(t, 3, cart.Items[0].Quantity)
	assert.True(t, price("37.00").Equal(cart.Total()), cart.Total().String())

	plain := cart.Add(pizza, 1, nil)
	assert.Equal(t, 2, plain)
	assert.Equal(t, 4, cart.QuantityOf("p1"))
	assert.Equal(t, 5, cart.Count())
}

func TestCartTotalScenario(t *testing.T) {
	var cart Cart
	cart.Add(Product{ID: "p", Price: price("10.00")}, 2, []SelectedExtra{{ExtraID: "e", Price: price("1.50"), Quantity: 1}})

	assert.Equal(t, "23.00", cart.Total().StringFixed(2))
}

func TestCartExtrasOrderDoesNotMatter(t *testing.T) {
	a := SelectedExtra{ExtraID: "a", Price: price("1"), Quantity: 1}
	b := SelectedExtra{ExtraID: "b", Price: price("1"), Quantity: 2}
	product := Product{ID: "p", Price: price("5")}

	var cart Cart
	cart.Add(product, 1, []SelectedExtra{a, b})
	cart.Add(product, 1, []SelectedExtra{b, a})
	cart.Add(product, 1, []SelectedExtra{a, {ExtraID: "b", Quantity: 1}})

	require.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartRemoveThenAddRestores(t *testing.T) {
	product := Product{ID: "p", Price: price("4")}
	extras := []SelectedExtra{{ExtraID: "e", Price: price("1"), Quantity: 1}}

	var cart Cart
	cart.Add(product, 2, extras)
	original := Cart{Items: append([]CartItem(nil), cart.Items...)}

	assert.False(t, cart.Remove("p", nil))
	assert.True(t, cart.Remove("p", extras))
	assert.True(t, cart.IsEmpty())

	cart.Add(product, 2, extras)
	assert.Equal(t, original, cart)
}

func TestCartUpdateQuantity(t *testing.T) {
	product := Product{ID: "p", Price: price("3")}

	var cart Cart
	cart.Add(product, 1, nil)
	cart.Add(Product{ID: "q", Price: price("1")}, 1, nil)

	assert.True(t, cart.UpdateQuantity(0, 10, 4))
	assert.Equal(t, 4, cart.Items[0].Quantity)

	assert.False(t, cart.UpdateQuantity(5, 1, 4))

	assert.True(t, cart.UpdateQuantity(0, 0, 4))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "q", cart.Items[0].Product.ID)

	assert.True(t, cart.UpdateQuantity(0, 2, 0))
	assert.True(t, cart.IsEmpty())
	assert.True(t, cart.Total().IsZero())
}

func TestResolveExtras(t *testing.T) {
	size := Extra{ID: "size", Name: "Size", Price: price("0"), Min: 1, Max: 1, Required: true}
	sauce := Extra{ID: "sauce", Name: "Sauce", Price: price("0.75"), Min: 0, Max: 3}
	product := Product{ID: "p", Name: "Burger", Price: price("8"), Extras: []Extra{size}, ExtraGroupIDs: []string{"g"}}
	groups := []ExtraGroup{{ID: "g", Name: "Sauces", Extras: []Extra{sauce}}}

	tests := []struct {
		name      string
		selection []ExtraSelection
		wantLen   int
		wantErr   bool
	}{
		{name: "required only", selection: []ExtraSelection{{ExtraID: "size", Quantity: 1}}, wantLen: 1},
		{name: "with group extra", selection: []ExtraSelection{{ExtraID: "sauce", Quantity: 2}, {ExtraID: "size", Quantity: 1}}, wantLen: 2},
		{name: "missing required", selection: []ExtraSelection{{ExtraID: "sauce", Quantity: 1}}, wantErr: true},
		{name: "above max", selection: []ExtraSelection{{ExtraID: "size", Quantity: 1}, {ExtraID: "sauce", Quantity: 4}}, wantErr: true},
		{name: "unknown extra", selection: []ExtraSelection{{ExtraID: "size", Quantity: 1}, {ExtraID: "x", Quantity: 1}}, wantErr: true},
		{name: "duplicate", selection: []ExtraSelection{{ExtraID: "size", Quantity: 1}, {ExtraID: "size", Quantity: 1}}, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			resolved, err := ResolveExtras(product, groups, testCase.selection)
			if testCase.wantErr {
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Len(t, resolved, testCase.wantLen)
		})
	}

	resolved, err := ResolveExtras(product, groups, []ExtraSelection{{ExtraID: "size", Quantity: 1}, {ExtraID: "sauce", Quantity: 2}})
	require.NoError(t, err)
	assert.Equal(t, "Sauce", resolved[0].Name)
	assert.True(t, price("0.75").Equal(resolved[0].Price))
}

func TestExtraValidate(t *testing.T) {
	assert.NoError(t, Extra{ID: "e", Name: "Egg", Min: 0, Max: 2}.Validate())
	assert.Error(t, Extra{ID: "e", Name: "Egg", Min: 0, Max: 2, Required: true}.Validate())
	assert.Error(t, Extra{ID: "e", Name: "Egg", Min: 2, Max: 1}.Validate())
	assert.Error(t, Extra{ID: "e", Name: "Egg", Price: price("-1"), Max: 1}.Validate())
}

func TestTransitionPermissive(t *testing.T) {
	created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	order := Order{ID: "o1", Status: StatusPending, PaymentStatus: PaymentPaid, IsNew: true, CreatedAt: created, UpdatedAt: created}

	first, err := Transition(&order, StatusDelivered, PermissivePolicy{}, created.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, StatusDelivered, order.Status)
	assert.False(t, order.IsNew)
	assert.Equal(t, created.Add(time.Minute), order.UpdatedAt)
	assert.Empty(t, first.Warning)

	second, err := Transition(&order, StatusPending, PermissivePolicy{}, created.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, created.Add(2*time.Minute), order.UpdatedAt)
	assert.Equal(t, "delivered", second.From)
	assert.Equal(t, "pending", second.To)
	assert.NotEmpty(t, second.Warning)
	assert.Equal(t, PaymentPaid, order.PaymentStatus)

	_, err = Transition(&order, OrderStatus("lost"), PermissivePolicy{}, created)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionStrict(t *testing.T) {
	order := Order{ID: "o1", Status: StatusPending}
	now := time.Now()

	_, err := Transition(&order, StatusDelivered, StrictPolicy{}, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusPending, order.Status)

	for _, next := range []OrderStatus{StatusConfirmed, StatusPreparing, StatusReady, StatusDelivered} {
		_, err := Transition(&order, next, StrictPolicy{}, now)
		require.NoError(t, err)
	}

	_, err = Transition(&order, StatusCancelled, StrictPolicy{}, now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSetPaymentStatus(t *testing.T) {
	order := Order{ID: "o1", Status: StatusReady, PaymentStatus: PaymentPending, IsNew: true}
	now := time.Now()

	record, err := SetPaymentStatus(&order, PaymentPaid, now)
	require.NoError(t, err)
	assert.Equal(t, FieldPayment, record.Field)
	assert.Equal(t, StatusReady, order.Status)
	assert.False(t, order.IsNew)

	_, err = SetPaymentStatus(&order, PaymentStatus("refunded"), now)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCustomerInfoValidate(t *testing.T) {
	valid := CustomerInfo{Name: "Ana", Email: "ana@example.com", Phone: "+34 600-123-456", Address: "Calle 1"}

	tests := []struct {
		name   string
		mutate func(*CustomerInfo)
		field  string
	}{
		{name: "valid", mutate: func(*CustomerInfo) {}},
		{name: "blank name", mutate: func(c *CustomerInfo) { c.Name = "  " }, field: "name"},
		{name: "bad email", mutate: func(c *CustomerInfo) { c.Email = "ana@" }, field: "email"},
		{name: "named email", mutate: func(c *CustomerInfo) { c.Email = "Ana <ana@example.com>" }, field: "email"},
		{name: "bad phone", mutate: func(c *CustomerInfo) { c.Phone = "call me" }, field: "phone"},
		{name: "missing address", mutate: func(c *CustomerInfo) { c.Address = "" }, field: "address"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			info := valid
			testCase.mutate(&info)
			err := info.Validate()
			if testCase.field == "" {
				assert.NoError(t, err)
				return
			}
			var verr ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, testCase.field, verr.Field)
		})
	}
}
